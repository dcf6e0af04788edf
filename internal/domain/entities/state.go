package entities

import "time"

// Sentinel values the API uses for fields it cannot measure. Consumers
// must render these as unknown, never as the raw number.
const (
	TirePressureUnknownBar       = 6.375
	ChargeSessionTimeUnknownMins = 65535
)

// TirePressureKnown reports whether a tire pressure reading is usable.
func TirePressureKnown(bar float64) bool {
	return bar > 0 && bar < TirePressureUnknownBar
}

// ChargeTimeKnown reports whether the remaining charge time is usable.
func ChargeTimeKnown(minutes uint32) bool {
	return minutes < ChargeSessionTimeUnknownMins
}

// BatteryState carries pack telemetry. Energies are kWh, temperatures
// Celsius, range km.
type BatteryState struct {
	RemainingPercent float64
	RemainingEnergy  float64
	Capacity         float64
	RemainingRange   float64
	MaxCellTemp      float64
	MinCellTemp      float64
	HealthLevel      BatteryHealthLevel
}

// ChargingState carries the active or last charge session. Session range
// is km, rate kW, speed km of range per hour, time remaining minutes.
type ChargingState struct {
	State          ChargeState
	SessionEnergy  float64
	SessionRange   float64
	Rate           float64
	RateDistance   float64
	TimeRemaining  uint32
	TargetPercent  float64
	EnergyType     EnergyType
	SessionStarted time.Time
}

// WindowsState is the position of each power window.
type WindowsState struct {
	LeftFront  WindowPosition
	RightFront WindowPosition
	LeftRear   WindowPosition
	RightRear  WindowPosition
}

// BodyState covers closures and locking.
type BodyState struct {
	FrontLeftDoor  DoorState
	FrontRightDoor DoorState
	RearLeftDoor   DoorState
	RearRightDoor  DoorState
	FrontCargo     DoorState
	RearCargo      DoorState
	ChargePortDoor DoorState
	DoorLocks      LockState
	WalkawayLock   WalkawayState
	Windows        WindowsState
}

// CabinState carries cabin and ambient temperatures in Celsius.
type CabinState struct {
	InteriorTemp float64
	ExteriorTemp float64
}

// SeatClimateState is the per-seat heater levels. Front seats expose
// separate backrest and cushion zones.
type SeatClimateState struct {
	DriverBackrest    SeatClimateLevel
	DriverCushion     SeatClimateLevel
	PassengerBackrest SeatClimateLevel
	PassengerCushion  SeatClimateLevel
	RearLeft          SeatClimateLevel
	RearCenter        SeatClimateLevel
	RearRight         SeatClimateLevel
}

// HvacState carries the climate system. TargetTemp is Celsius.
type HvacState struct {
	Power          HvacPower
	Defrost        DefrostState
	MaxAC          MaxACState
	TargetTemp     float64
	Seats          SeatClimateState
	SteeringHeater SeatClimateLevel
}

// ChassisState carries running gear telemetry. Odometer km, speed km/h,
// tire pressures bar.
type ChassisState struct {
	OdometerKm             float64
	SpeedKmh               float64
	FrontLeftTirePressure  float64
	FrontRightTirePressure float64
	RearLeftTirePressure   float64
	RearRightTirePressure  float64
	Headlights             LightState
	SoftwareVersion        string
}

// GpsState is the last reported position fix.
type GpsState struct {
	Latitude     float64
	Longitude    float64
	HeadingDeg   float64
	ElevationM   float64
	PositionTime time.Time
}

// AlarmState is the anti-theft system.
type AlarmState struct {
	Mode   AlarmMode
	Status AlarmStatus
}

// SoftwareState is the OTA update channel. AvailableVersionRaw zero means
// no update is offered.
type SoftwareState struct {
	InstalledVersion    string
	AvailableVersion    string
	AvailableVersionRaw int64
	DownloadStatus      UpdateDownloadState
	State               UpdateState
	PercentComplete     int
}

// UpdateAvailable reports whether the vehicle is offered a newer build.
func (s SoftwareState) UpdateAvailable() bool { return s.AvailableVersionRaw != 0 }

// VehicleState is one polled snapshot of everything the API reports.
type VehicleState struct {
	PowerState   PowerState
	GearPosition GearPosition
	DriveMode    DriveMode
	Battery      BatteryState
	Charging     ChargingState
	Body         BodyState
	Cabin        CabinState
	Hvac         HvacState
	Chassis      ChassisState
	Gps          GpsState
	Alarm        AlarmState
	Software     SoftwareState
	UpdatedAt    time.Time
}
