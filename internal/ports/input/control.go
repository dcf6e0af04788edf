package input

import (
	"context"

	"github.com/borski/ha-lucidmotors/internal/domain/entities"
)

// VehicleControl is the command surface exposed to adapters. Calls
// validate the vehicle's feature set first and return
// domain.ErrCommandRejected when the car lacks the hardware.
type VehicleControl interface {
	LockDoors(ctx context.Context, vin string) error
	UnlockDoors(ctx context.Context, vin string) error

	StartCharging(ctx context.Context, vin string) error
	StopCharging(ctx context.Context, vin string) error
	SetChargeLimit(ctx context.Context, vin string, percent int) error

	SetFrunkOpen(ctx context.Context, vin string, open bool) error
	SetTrunkOpen(ctx context.Context, vin string, open bool) error
	SetChargePortOpen(ctx context.Context, vin string, open bool) error
	// SetWindows moves all windows together; per-window motion is not
	// exposed by the vehicle.
	SetWindows(ctx context.Context, vin string, position entities.WindowPosition) error

	SetHeadlights(ctx context.Context, vin string, on bool) error
	FlashLights(ctx context.Context, vin string) error
	HonkHorn(ctx context.Context, vin string) error
	WakeUp(ctx context.Context, vin string) error

	SetAlarmMode(ctx context.Context, vin string, mode entities.AlarmMode) error

	SetSeatHeater(ctx context.Context, vin string, seat entities.SeatPosition, level entities.SeatClimateLevel) error
	SetSteeringHeater(ctx context.Context, vin string, level entities.SeatClimateLevel) error

	SetClimatePower(ctx context.Context, vin string, on bool) error
	SetClimateTemp(ctx context.Context, vin string, targetC float64) error
	SetDefrost(ctx context.Context, vin string, on bool) error
	SetMaxAC(ctx context.Context, vin string, on bool) error

	StartSoftwareUpdate(ctx context.Context, vin string) error
}
