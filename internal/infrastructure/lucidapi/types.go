package lucidapi

import (
	"time"

	"github.com/borski/ha-lucidmotors/internal/domain/entities"
)

// Wire DTOs for the owner API. Enum fields carry the SCREAMING_SNAKE
// names verbatim, so mapping into the domain is a cast.

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Session codes the gateway returns inside error payloads.
const codeSessionExpired = 16

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	DeviceID string `json:"device_id,omitempty"`
}

type sessionInfo struct {
	IDToken       string `json:"id_token"`
	ExpiryTimeSec int64  `json:"expiry_time_sec"`
}

type loginResponse struct {
	UID             string       `json:"uid"`
	SessionInfo     sessionInfo  `json:"session_info"`
	UserVehicleData []vehicleDTO `json:"user_vehicle_data"`
}

type vehiclesResponse struct {
	UserVehicleData []vehicleDTO `json:"user_vehicle_data"`
}

type vehicleDTO struct {
	VIN    string           `json:"vin"`
	Config vehicleConfigDTO `json:"vehicle_config"`
	State  vehicleStateDTO  `json:"vehicle_state"`
}

type vehicleConfigDTO struct {
	Nickname             string `json:"nickname"`
	Model                string `json:"model"`
	Variant              string `json:"variant"`
	PaintColor           string `json:"paint_color"`
	Look                 string `json:"look"`
	Wheels               string `json:"wheels"`
	FrontSeatsHeating    bool   `json:"front_seats_heating"`
	SecondRowHeatedSeats bool   `json:"second_row_heated_seats"`
	HeatedSteeringWheel  bool   `json:"heated_steering_wheel"`
	RearSeatConfig       string `json:"rear_seat_config"`
}

type batteryDTO struct {
	RemainingPercent float64 `json:"remaining_percent"`
	RemainingKwh     float64 `json:"remaining_kwh"`
	CapacityKwh      float64 `json:"capacity_kwh"`
	RemainingRangeKm float64 `json:"remaining_range_km"`
	MaxCellTempC     float64 `json:"max_cell_temp_c"`
	MinCellTempC     float64 `json:"min_cell_temp_c"`
	HealthLevel      string  `json:"health_level"`
}

type chargingDTO struct {
	ChargeState         string    `json:"charge_state"`
	SessionKwh          float64   `json:"session_kwh"`
	SessionRangeKm      float64   `json:"session_range_km"`
	RateKw              float64   `json:"rate_kw"`
	RateKmPerHour       float64   `json:"rate_km_per_hour"`
	TimeToTargetMinutes uint32    `json:"time_to_target_minutes"`
	TargetPercent       float64   `json:"target_percent"`
	EnergyType          string    `json:"energy_type"`
	SessionStarted      time.Time `json:"session_started"`
}

type windowsDTO struct {
	LeftFront  string `json:"left_front"`
	RightFront string `json:"right_front"`
	LeftRear   string `json:"left_rear"`
	RightRear  string `json:"right_rear"`
}

type bodyDTO struct {
	FrontLeftDoor  string     `json:"front_left_door"`
	FrontRightDoor string     `json:"front_right_door"`
	RearLeftDoor   string     `json:"rear_left_door"`
	RearRightDoor  string     `json:"rear_right_door"`
	FrontCargo     string     `json:"front_cargo"`
	RearCargo      string     `json:"rear_cargo"`
	ChargePortDoor string     `json:"charge_port_door"`
	DoorLocks      string     `json:"door_locks"`
	WalkawayLock   string     `json:"walkaway_lock"`
	Windows        windowsDTO `json:"windows"`
}

type cabinDTO struct {
	InteriorTempC float64 `json:"interior_temp_c"`
	ExteriorTempC float64 `json:"exterior_temp_c"`
}

type seatsDTO struct {
	DriverBackrest    string `json:"driver_backrest"`
	DriverCushion     string `json:"driver_cushion"`
	PassengerBackrest string `json:"passenger_backrest"`
	PassengerCushion  string `json:"passenger_cushion"`
	RearLeft          string `json:"rear_left"`
	RearCenter        string `json:"rear_center"`
	RearRight         string `json:"rear_right"`
}

type hvacDTO struct {
	Power          string   `json:"power"`
	Defrost        string   `json:"defrost"`
	MaxAC          string   `json:"max_ac"`
	TargetTempC    float64  `json:"target_temp_c"`
	Seats          seatsDTO `json:"seats"`
	SteeringHeater string   `json:"steering_heater"`
}

type chassisDTO struct {
	OdometerKm                float64 `json:"odometer_km"`
	SpeedKmh                  float64 `json:"speed_kmh"`
	FrontLeftTirePressureBar  float64 `json:"front_left_tire_pressure_bar"`
	FrontRightTirePressureBar float64 `json:"front_right_tire_pressure_bar"`
	RearLeftTirePressureBar   float64 `json:"rear_left_tire_pressure_bar"`
	RearRightTirePressureBar  float64 `json:"rear_right_tire_pressure_bar"`
	Headlights                string  `json:"headlights"`
	SoftwareVersion           string  `json:"software_version"`
}

type gpsDTO struct {
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	HeadingDeg   float64   `json:"heading_deg"`
	ElevationM   float64   `json:"elevation_m"`
	PositionTime time.Time `json:"position_time"`
}

type alarmDTO struct {
	Mode   string `json:"mode"`
	Status string `json:"status"`
}

type softwareDTO struct {
	InstalledVersion    string `json:"installed_version"`
	AvailableVersion    string `json:"available_version"`
	AvailableVersionRaw int64  `json:"available_version_raw"`
	DownloadStatus      string `json:"download_status"`
	State               string `json:"state"`
	PercentComplete     int    `json:"percent_complete"`
}

type vehicleStateDTO struct {
	PowerState     string      `json:"power_state"`
	GearPosition   string      `json:"gear_position"`
	DriveMode      string      `json:"drive_mode"`
	Battery        batteryDTO  `json:"battery"`
	Charging       chargingDTO `json:"charging"`
	Body           bodyDTO     `json:"body"`
	Cabin          cabinDTO    `json:"cabin"`
	Hvac           hvacDTO     `json:"hvac"`
	Chassis        chassisDTO  `json:"chassis"`
	Gps            gpsDTO      `json:"gps"`
	Alarm          alarmDTO    `json:"alarm"`
	SoftwareUpdate softwareDTO `json:"software_update"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

func (d vehicleDTO) toDomain() entities.Vehicle {
	return entities.Vehicle{
		VIN: d.VIN,
		Config: entities.VehicleConfig{
			Nickname:             d.Config.Nickname,
			Model:                entities.Model(d.Config.Model),
			Variant:              entities.ModelVariant(d.Config.Variant),
			PaintColor:           entities.PaintColor(d.Config.PaintColor),
			Look:                 entities.Look(d.Config.Look),
			Wheels:               entities.Wheels(d.Config.Wheels),
			FrontSeatsHeating:    d.Config.FrontSeatsHeating,
			SecondRowHeatedSeats: d.Config.SecondRowHeatedSeats,
			HeatedSteeringWheel:  d.Config.HeatedSteeringWheel,
			RearSeatConfig:       entities.RearSeatConfig(d.Config.RearSeatConfig),
		},
		State: entities.VehicleState{
			PowerState:   entities.PowerState(d.State.PowerState),
			GearPosition: entities.GearPosition(d.State.GearPosition),
			DriveMode:    entities.DriveMode(d.State.DriveMode),
			Battery: entities.BatteryState{
				RemainingPercent: d.State.Battery.RemainingPercent,
				RemainingEnergy:  d.State.Battery.RemainingKwh,
				Capacity:         d.State.Battery.CapacityKwh,
				RemainingRange:   d.State.Battery.RemainingRangeKm,
				MaxCellTemp:      d.State.Battery.MaxCellTempC,
				MinCellTemp:      d.State.Battery.MinCellTempC,
				HealthLevel:      entities.BatteryHealthLevel(d.State.Battery.HealthLevel),
			},
			Charging: entities.ChargingState{
				State:          entities.ChargeState(d.State.Charging.ChargeState),
				SessionEnergy:  d.State.Charging.SessionKwh,
				SessionRange:   d.State.Charging.SessionRangeKm,
				Rate:           d.State.Charging.RateKw,
				RateDistance:   d.State.Charging.RateKmPerHour,
				TimeRemaining:  d.State.Charging.TimeToTargetMinutes,
				TargetPercent:  d.State.Charging.TargetPercent,
				EnergyType:     entities.EnergyType(d.State.Charging.EnergyType),
				SessionStarted: d.State.Charging.SessionStarted,
			},
			Body: entities.BodyState{
				FrontLeftDoor:  entities.DoorState(d.State.Body.FrontLeftDoor),
				FrontRightDoor: entities.DoorState(d.State.Body.FrontRightDoor),
				RearLeftDoor:   entities.DoorState(d.State.Body.RearLeftDoor),
				RearRightDoor:  entities.DoorState(d.State.Body.RearRightDoor),
				FrontCargo:     entities.DoorState(d.State.Body.FrontCargo),
				RearCargo:      entities.DoorState(d.State.Body.RearCargo),
				ChargePortDoor: entities.DoorState(d.State.Body.ChargePortDoor),
				DoorLocks:      entities.LockState(d.State.Body.DoorLocks),
				WalkawayLock:   entities.WalkawayState(d.State.Body.WalkawayLock),
				Windows: entities.WindowsState{
					LeftFront:  entities.WindowPosition(d.State.Body.Windows.LeftFront),
					RightFront: entities.WindowPosition(d.State.Body.Windows.RightFront),
					LeftRear:   entities.WindowPosition(d.State.Body.Windows.LeftRear),
					RightRear:  entities.WindowPosition(d.State.Body.Windows.RightRear),
				},
			},
			Cabin: entities.CabinState{
				InteriorTemp: d.State.Cabin.InteriorTempC,
				ExteriorTemp: d.State.Cabin.ExteriorTempC,
			},
			Hvac: entities.HvacState{
				Power:          entities.HvacPower(d.State.Hvac.Power),
				Defrost:        entities.DefrostState(d.State.Hvac.Defrost),
				MaxAC:          entities.MaxACState(d.State.Hvac.MaxAC),
				TargetTemp:     d.State.Hvac.TargetTempC,
				SteeringHeater: entities.SeatClimateLevel(d.State.Hvac.SteeringHeater),
				Seats: entities.SeatClimateState{
					DriverBackrest:    entities.SeatClimateLevel(d.State.Hvac.Seats.DriverBackrest),
					DriverCushion:     entities.SeatClimateLevel(d.State.Hvac.Seats.DriverCushion),
					PassengerBackrest: entities.SeatClimateLevel(d.State.Hvac.Seats.PassengerBackrest),
					PassengerCushion:  entities.SeatClimateLevel(d.State.Hvac.Seats.PassengerCushion),
					RearLeft:          entities.SeatClimateLevel(d.State.Hvac.Seats.RearLeft),
					RearCenter:        entities.SeatClimateLevel(d.State.Hvac.Seats.RearCenter),
					RearRight:         entities.SeatClimateLevel(d.State.Hvac.Seats.RearRight),
				},
			},
			Chassis: entities.ChassisState{
				OdometerKm:             d.State.Chassis.OdometerKm,
				SpeedKmh:               d.State.Chassis.SpeedKmh,
				FrontLeftTirePressure:  d.State.Chassis.FrontLeftTirePressureBar,
				FrontRightTirePressure: d.State.Chassis.FrontRightTirePressureBar,
				RearLeftTirePressure:   d.State.Chassis.RearLeftTirePressureBar,
				RearRightTirePressure:  d.State.Chassis.RearRightTirePressureBar,
				Headlights:             entities.LightState(d.State.Chassis.Headlights),
				SoftwareVersion:        d.State.Chassis.SoftwareVersion,
			},
			Gps: entities.GpsState{
				Latitude:     d.State.Gps.Latitude,
				Longitude:    d.State.Gps.Longitude,
				HeadingDeg:   d.State.Gps.HeadingDeg,
				ElevationM:   d.State.Gps.ElevationM,
				PositionTime: d.State.Gps.PositionTime,
			},
			Alarm: entities.AlarmState{
				Mode:   entities.AlarmMode(d.State.Alarm.Mode),
				Status: entities.AlarmStatus(d.State.Alarm.Status),
			},
			Software: entities.SoftwareState{
				InstalledVersion:    d.State.SoftwareUpdate.InstalledVersion,
				AvailableVersion:    d.State.SoftwareUpdate.AvailableVersion,
				AvailableVersionRaw: d.State.SoftwareUpdate.AvailableVersionRaw,
				DownloadStatus:      entities.UpdateDownloadState(d.State.SoftwareUpdate.DownloadStatus),
				State:               entities.UpdateState(d.State.SoftwareUpdate.State),
				PercentComplete:     d.State.SoftwareUpdate.PercentComplete,
			},
			UpdatedAt: d.State.UpdatedAt,
		},
	}
}

func mapVehicles(dtos []vehicleDTO) []entities.Vehicle {
	out := make([]entities.Vehicle, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out
}
