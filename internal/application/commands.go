package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/borski/ha-lucidmotors/internal/domain"
	"github.com/borski/ha-lucidmotors/internal/domain/entities"
	"github.com/borski/ha-lucidmotors/internal/ports/input"
	"github.com/borski/ha-lucidmotors/internal/ports/output"
)

var _ input.VehicleControl = (*CommandService)(nil)

// CommandService validates and forwards vehicle commands. After each
// accepted command it arms a coordinator probe so state converges fast.
type CommandService struct {
	api    output.VehicleAPI
	coord  *Coordinator
	logger *slog.Logger
}

// NewCommandService wires the command use case.
func NewCommandService(api output.VehicleAPI, coord *Coordinator, logger *slog.Logger) *CommandService {
	return &CommandService{
		api:    api,
		coord:  coord,
		logger: logger,
	}
}

func (s *CommandService) vehicle(vin string) (entities.Vehicle, error) {
	return s.coord.Vehicle(vin)
}

func (s *CommandService) LockDoors(ctx context.Context, vin string) error {
	if _, err := s.vehicle(vin); err != nil {
		return err
	}
	if err := s.api.LockDoors(ctx, vin); err != nil {
		return fmt.Errorf("lock doors: %w", err)
	}
	s.logger.Info("doors locked", "vin", vin)
	s.coord.ExpectChange(vin, func(_, cur entities.Vehicle) bool {
		return cur.State.Body.DoorLocks == entities.LockStateLocked
	})
	return nil
}

func (s *CommandService) UnlockDoors(ctx context.Context, vin string) error {
	if _, err := s.vehicle(vin); err != nil {
		return err
	}
	if err := s.api.UnlockDoors(ctx, vin); err != nil {
		return fmt.Errorf("unlock doors: %w", err)
	}
	s.logger.Info("doors unlocked", "vin", vin)
	s.coord.ExpectChange(vin, func(_, cur entities.Vehicle) bool {
		return cur.State.Body.DoorLocks == entities.LockStateUnlocked
	})
	return nil
}

func (s *CommandService) StartCharging(ctx context.Context, vin string) error {
	if _, err := s.vehicle(vin); err != nil {
		return err
	}
	if err := s.api.ChargeControl(ctx, vin, true); err != nil {
		return fmt.Errorf("start charging: %w", err)
	}
	s.coord.ExpectChange(vin, func(_, cur entities.Vehicle) bool {
		return cur.State.Charging.State == entities.ChargeStateCharging
	})
	return nil
}

func (s *CommandService) StopCharging(ctx context.Context, vin string) error {
	if _, err := s.vehicle(vin); err != nil {
		return err
	}
	if err := s.api.ChargeControl(ctx, vin, false); err != nil {
		return fmt.Errorf("stop charging: %w", err)
	}
	s.coord.ExpectChange(vin, func(_, cur entities.Vehicle) bool {
		return cur.State.Charging.State != entities.ChargeStateCharging
	})
	return nil
}

func (s *CommandService) SetChargeLimit(ctx context.Context, vin string, percent int) error {
	if _, err := s.vehicle(vin); err != nil {
		return err
	}
	if percent < 50 || percent > 100 {
		return fmt.Errorf("charge limit %d%% outside 50-100: %w", percent, domain.ErrCommandRejected)
	}
	if err := s.api.SetChargeLimit(ctx, vin, percent); err != nil {
		return fmt.Errorf("set charge limit: %w", err)
	}
	target := float64(percent)
	s.coord.ExpectChange(vin, func(_, cur entities.Vehicle) bool {
		return cur.State.Charging.TargetPercent == target
	})
	return nil
}

func (s *CommandService) SetFrunkOpen(ctx context.Context, vin string, open bool) error {
	if _, err := s.vehicle(vin); err != nil {
		return err
	}
	if err := s.api.FrunkControl(ctx, vin, open); err != nil {
		return fmt.Errorf("frunk control: %w", err)
	}
	s.coord.ExpectChange(vin, func(_, cur entities.Vehicle) bool {
		return cur.State.Body.FrontCargo.IsOpen() == open
	})
	return nil
}

func (s *CommandService) SetTrunkOpen(ctx context.Context, vin string, open bool) error {
	if _, err := s.vehicle(vin); err != nil {
		return err
	}
	if err := s.api.TrunkControl(ctx, vin, open); err != nil {
		return fmt.Errorf("trunk control: %w", err)
	}
	s.coord.ExpectChange(vin, func(_, cur entities.Vehicle) bool {
		return cur.State.Body.RearCargo.IsOpen() == open
	})
	return nil
}

func (s *CommandService) SetChargePortOpen(ctx context.Context, vin string, open bool) error {
	if _, err := s.vehicle(vin); err != nil {
		return err
	}
	if err := s.api.ChargePortControl(ctx, vin, open); err != nil {
		return fmt.Errorf("charge port control: %w", err)
	}
	s.coord.ExpectChange(vin, func(_, cur entities.Vehicle) bool {
		return cur.State.Body.ChargePortDoor.IsOpen() == open
	})
	return nil
}

func (s *CommandService) SetWindows(ctx context.Context, vin string, position entities.WindowPosition) error {
	if _, err := s.vehicle(vin); err != nil {
		return err
	}
	if err := s.api.WindowControl(ctx, vin, position); err != nil {
		return fmt.Errorf("window control: %w", err)
	}
	s.coord.ExpectChange(vin, func(_, cur entities.Vehicle) bool {
		return cur.State.Body.Windows.LeftFront == position
	})
	return nil
}

func (s *CommandService) SetHeadlights(ctx context.Context, vin string, on bool) error {
	if _, err := s.vehicle(vin); err != nil {
		return err
	}
	state := entities.LightsOff
	if on {
		state = entities.LightsOn
	}
	if err := s.api.LightsControl(ctx, vin, state); err != nil {
		return fmt.Errorf("lights control: %w", err)
	}
	s.coord.ExpectChange(vin, func(_, cur entities.Vehicle) bool {
		return cur.State.Chassis.Headlights == state
	})
	return nil
}

func (s *CommandService) FlashLights(ctx context.Context, vin string) error {
	if _, err := s.vehicle(vin); err != nil {
		return err
	}
	if err := s.api.LightsControl(ctx, vin, entities.LightsFlash); err != nil {
		return fmt.Errorf("flash lights: %w", err)
	}
	return nil
}

func (s *CommandService) HonkHorn(ctx context.Context, vin string) error {
	if _, err := s.vehicle(vin); err != nil {
		return err
	}
	if err := s.api.HonkHorn(ctx, vin); err != nil {
		return fmt.Errorf("honk horn: %w", err)
	}
	return nil
}

func (s *CommandService) WakeUp(ctx context.Context, vin string) error {
	if _, err := s.vehicle(vin); err != nil {
		return err
	}
	if err := s.api.WakeUp(ctx, vin); err != nil {
		return fmt.Errorf("wake up: %w", err)
	}
	s.coord.ExpectChange(vin, func(old, cur entities.Vehicle) bool {
		return cur.State.PowerState != old.State.PowerState
	})
	return nil
}

func (s *CommandService) SetAlarmMode(ctx context.Context, vin string, mode entities.AlarmMode) error {
	if _, err := s.vehicle(vin); err != nil {
		return err
	}
	if err := s.api.AlarmControl(ctx, vin, mode); err != nil {
		return fmt.Errorf("alarm control: %w", err)
	}
	s.coord.ExpectChange(vin, func(_, cur entities.Vehicle) bool {
		return cur.State.Alarm.Mode == mode
	})
	return nil
}

// seatTarget applies one zone's level on top of the current seat state.
func seatTarget(cur entities.SeatClimateState, seat entities.SeatPosition, level entities.SeatClimateLevel) entities.SeatClimateState {
	switch seat {
	case entities.SeatDriverBackrest:
		cur.DriverBackrest = level
	case entities.SeatDriverCushion:
		cur.DriverCushion = level
	case entities.SeatPassengerBackrest:
		cur.PassengerBackrest = level
	case entities.SeatPassengerCushion:
		cur.PassengerCushion = level
	case entities.SeatRearLeft:
		cur.RearLeft = level
	case entities.SeatRearCenter:
		cur.RearCenter = level
	case entities.SeatRearRight:
		cur.RearRight = level
	}
	return cur
}

func (s *CommandService) SetSeatHeater(ctx context.Context, vin string, seat entities.SeatPosition, level entities.SeatClimateLevel) error {
	veh, err := s.vehicle(vin)
	if err != nil {
		return err
	}
	switch seat {
	case entities.SeatDriverBackrest, entities.SeatDriverCushion,
		entities.SeatPassengerBackrest, entities.SeatPassengerCushion:
		if !veh.Config.FrontSeatsHeating {
			return fmt.Errorf("no front seat heating: %w", domain.ErrCommandRejected)
		}
	case entities.SeatRearLeft, entities.SeatRearRight:
		if !veh.Config.SecondRowHeatedSeats {
			return fmt.Errorf("no rear seat heating: %w", domain.ErrCommandRejected)
		}
	case entities.SeatRearCenter:
		if !veh.Config.SecondRowHeatedSeats || !veh.HasRearCenterSeat() {
			return fmt.Errorf("no rear center seat heater: %w", domain.ErrCommandRejected)
		}
	default:
		return fmt.Errorf("unknown seat %q: %w", seat, domain.ErrCommandRejected)
	}
	target := seatTarget(veh.State.Hvac.Seats, seat, level)
	if err := s.api.SeatClimateControl(ctx, vin, target); err != nil {
		return fmt.Errorf("seat climate control: %w", err)
	}
	s.coord.ExpectChange(vin, func(_, cur entities.Vehicle) bool {
		return cur.State.Hvac.Seats == target
	})
	return nil
}

func (s *CommandService) SetSteeringHeater(ctx context.Context, vin string, level entities.SeatClimateLevel) error {
	veh, err := s.vehicle(vin)
	if err != nil {
		return err
	}
	if !veh.Config.HeatedSteeringWheel {
		return fmt.Errorf("no heated steering wheel: %w", domain.ErrCommandRejected)
	}
	if err := s.api.SteeringHeaterControl(ctx, vin, level); err != nil {
		return fmt.Errorf("steering heater control: %w", err)
	}
	s.coord.ExpectChange(vin, func(_, cur entities.Vehicle) bool {
		return cur.State.Hvac.SteeringHeater == level
	})
	return nil
}

func (s *CommandService) SetClimatePower(ctx context.Context, vin string, on bool) error {
	veh, err := s.vehicle(vin)
	if err != nil {
		return err
	}
	power := entities.HvacOff
	if on {
		power = entities.HvacPrecondition
	}
	if err := s.api.HvacControl(ctx, vin, power, veh.State.Hvac.TargetTemp); err != nil {
		return fmt.Errorf("hvac control: %w", err)
	}
	s.coord.ExpectChange(vin, func(_, cur entities.Vehicle) bool {
		return cur.State.Hvac.Power.Running() == on
	})
	return nil
}

func (s *CommandService) SetClimateTemp(ctx context.Context, vin string, targetC float64) error {
	veh, err := s.vehicle(vin)
	if err != nil {
		return err
	}
	if err := s.api.HvacControl(ctx, vin, veh.State.Hvac.Power, targetC); err != nil {
		return fmt.Errorf("hvac control: %w", err)
	}
	s.coord.ExpectChange(vin, func(_, cur entities.Vehicle) bool {
		return cur.State.Hvac.TargetTemp == targetC
	})
	return nil
}

func (s *CommandService) SetDefrost(ctx context.Context, vin string, on bool) error {
	if _, err := s.vehicle(vin); err != nil {
		return err
	}
	if err := s.api.DefrostControl(ctx, vin, on); err != nil {
		return fmt.Errorf("defrost control: %w", err)
	}
	want := entities.DefrostOff
	if on {
		want = entities.DefrostOn
	}
	s.coord.ExpectChange(vin, func(_, cur entities.Vehicle) bool {
		return cur.State.Hvac.Defrost == want
	})
	return nil
}

func (s *CommandService) SetMaxAC(ctx context.Context, vin string, on bool) error {
	if _, err := s.vehicle(vin); err != nil {
		return err
	}
	if err := s.api.MaxACControl(ctx, vin, on); err != nil {
		return fmt.Errorf("max ac control: %w", err)
	}
	want := entities.MaxACOff
	if on {
		want = entities.MaxACOn
	}
	s.coord.ExpectChange(vin, func(_, cur entities.Vehicle) bool {
		return cur.State.Hvac.MaxAC == want
	})
	return nil
}

func (s *CommandService) StartSoftwareUpdate(ctx context.Context, vin string) error {
	veh, err := s.vehicle(vin)
	if err != nil {
		return err
	}
	if !veh.State.Software.UpdateAvailable() {
		return fmt.Errorf("no update offered: %w", domain.ErrCommandRejected)
	}
	if err := s.api.ApplySoftwareUpdate(ctx, vin); err != nil {
		return fmt.Errorf("apply software update: %w", err)
	}
	s.coord.ExpectChange(vin, func(_, cur entities.Vehicle) bool {
		return cur.State.Software.State == entities.UpdateStateInProgress
	})
	return nil
}
