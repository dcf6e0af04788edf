package entities

import "strings"

// The API reports most discrete fields as SCREAMING_SNAKE enum names.
// Each typed string below keeps the wire value as-is; Label turns it into
// the human form shown by the mobile app ("CHARGE_STATE_CHARGING" with the
// CHARGE_STATE_ prefix stripped becomes "Charging").

func humanize(wire, prefix string) string {
	s := strings.TrimPrefix(string(wire), prefix)
	if s == "" {
		return "Unknown"
	}
	s = strings.ToLower(strings.ReplaceAll(s, "_", " "))
	return strings.ToUpper(s[:1]) + s[1:]
}

// ChargeState reports the charge session status.
type ChargeState string

const (
	ChargeStateUnknown        ChargeState = "CHARGE_STATE_UNKNOWN"
	ChargeStateNotConnected   ChargeState = "CHARGE_STATE_NOT_CONNECTED"
	ChargeStateCableConnected ChargeState = "CHARGE_STATE_CABLE_CONNECTED"
	ChargeStateCharging       ChargeState = "CHARGE_STATE_CHARGING"
	ChargeStateComplete       ChargeState = "CHARGE_STATE_CHARGING_COMPLETE"
	ChargeStateDischarging    ChargeState = "CHARGE_STATE_DISCHARGING"
)

func (c ChargeState) Label() string { return humanize(string(c), "CHARGE_STATE_") }

// EnergyType distinguishes AC and DC charge sessions.
type EnergyType string

const (
	EnergyTypeUnknown EnergyType = "ENERGY_TYPE_UNKNOWN"
	EnergyTypeAC      EnergyType = "ENERGY_TYPE_AC"
	EnergyTypeDC      EnergyType = "ENERGY_TYPE_DC"
)

func (e EnergyType) Label() string {
	switch e {
	case EnergyTypeAC:
		return "AC"
	case EnergyTypeDC:
		return "DC"
	}
	return "Unknown"
}

// PowerState is the vehicle-wide power mode.
type PowerState string

const (
	PowerStateUnknown     PowerState = "POWER_STATE_UNKNOWN"
	PowerStateSleep       PowerState = "POWER_STATE_SLEEP"
	PowerStateSleepCharge PowerState = "POWER_STATE_SLEEP_CHARGE"
	PowerStateSleepUpdate PowerState = "POWER_STATE_SLEEP_UPDATE"
	PowerStateWink        PowerState = "POWER_STATE_WINK"
	PowerStateMonitor     PowerState = "POWER_STATE_MONITOR"
	PowerStateAccessory   PowerState = "POWER_STATE_ACCESSORY"
	PowerStateDrive       PowerState = "POWER_STATE_DRIVE"
	PowerStateLiveCharge  PowerState = "POWER_STATE_LIVE_CHARGE"
)

func (p PowerState) Label() string { return humanize(string(p), "POWER_STATE_") }

// GearPosition is the selected gear.
type GearPosition string

const (
	GearUnknown GearPosition = "GEAR_UNKNOWN"
	GearPark    GearPosition = "GEAR_PARK"
	GearReverse GearPosition = "GEAR_REVERSE"
	GearNeutral GearPosition = "GEAR_NEUTRAL"
	GearDrive   GearPosition = "GEAR_DRIVE"
)

func (g GearPosition) Label() string { return humanize(string(g), "GEAR_") }

// DriveMode is the selected driving profile.
type DriveMode string

const (
	DriveModeUnknown DriveMode = "DRIVE_MODE_UNKNOWN"
	DriveModeSmooth  DriveMode = "DRIVE_MODE_SMOOTH"
	DriveModeSwift   DriveMode = "DRIVE_MODE_SWIFT"
	DriveModeSprint  DriveMode = "DRIVE_MODE_SPRINT"
	DriveModeWinter  DriveMode = "DRIVE_MODE_WINTER"
	DriveModeValet   DriveMode = "DRIVE_MODE_VALET"
)

func (d DriveMode) Label() string { return humanize(string(d), "DRIVE_MODE_") }

// AlarmMode is the configured anti-theft behavior.
type AlarmMode string

const (
	AlarmModeUnknown AlarmMode = "ALARM_MODE_UNKNOWN"
	AlarmModeOff     AlarmMode = "ALARM_MODE_OFF"
	AlarmModeOn      AlarmMode = "ALARM_MODE_ON"
	// Silent mode raises push notifications without sounding the horn.
	AlarmModeSilent AlarmMode = "ALARM_MODE_SILENT"
)

func (a AlarmMode) Label() string { return humanize(string(a), "ALARM_MODE_") }

// AlarmStatus is the momentary armed state.
type AlarmStatus string

const (
	AlarmStatusUnknown   AlarmStatus = "ALARM_STATUS_UNKNOWN"
	AlarmStatusDisarmed  AlarmStatus = "ALARM_STATUS_DISARMED"
	AlarmStatusArmed     AlarmStatus = "ALARM_STATUS_ARMED"
	AlarmStatusPreAlarm  AlarmStatus = "ALARM_STATUS_PRE_ALARM"
	AlarmStatusTriggered AlarmStatus = "ALARM_STATUS_TRIGGERED"
)

func (a AlarmStatus) Label() string { return humanize(string(a), "ALARM_STATUS_") }

// LockState covers the central locking system.
type LockState string

const (
	LockStateUnknown  LockState = "LOCK_STATE_UNKNOWN"
	LockStateUnlocked LockState = "LOCK_STATE_UNLOCKED"
	LockStateLocked   LockState = "LOCK_STATE_LOCKED"
)

// DoorState covers doors, cargo lids and the charge port door.
type DoorState string

const (
	DoorStateUnknown DoorState = "DOOR_STATE_UNKNOWN"
	DoorStateClosed  DoorState = "DOOR_STATE_CLOSED"
	DoorStateOpen    DoorState = "DOOR_STATE_OPEN"
	DoorStateAjar    DoorState = "DOOR_STATE_AJAR"
)

// IsOpen treats an ajar door as open, matching the in-app warning.
func (d DoorState) IsOpen() bool { return d == DoorStateOpen || d == DoorStateAjar }

// WalkawayState reports the automatic walk-away locking feature.
type WalkawayState string

const (
	WalkawayUnknown WalkawayState = "WALKAWAY_UNKNOWN"
	WalkawayIdle    WalkawayState = "WALKAWAY_IDLE"
	WalkawayActive  WalkawayState = "WALKAWAY_ACTIVE"
)

// WindowPosition is the discrete window travel position.
type WindowPosition string

const (
	WindowUnknown        WindowPosition = "WINDOW_UNKNOWN"
	WindowFullyClosed    WindowPosition = "WINDOW_FULLY_CLOSED"
	WindowAboveShortDrop WindowPosition = "WINDOW_ABOVE_SHORT_DROP_POSITION"
	WindowShortDrop      WindowPosition = "WINDOW_SHORT_DROP_POSITION"
	WindowBelowShortDrop WindowPosition = "WINDOW_BELOW_SHORT_DROP_POSITION"
	WindowFullyOpen      WindowPosition = "WINDOW_FULLY_OPEN"
)

// PercentOpen maps the discrete position onto the 0-100 scale used by
// position-aware cover consumers. Unknown positions report false.
func (w WindowPosition) PercentOpen() (int, bool) {
	switch w {
	case WindowFullyClosed:
		return 0, true
	case WindowAboveShortDrop:
		return 25, true
	case WindowShortDrop:
		return 50, true
	case WindowBelowShortDrop:
		return 75, true
	case WindowFullyOpen:
		return 100, true
	}
	return 0, false
}

// HvacPower is the cabin climate power mode.
type HvacPower string

const (
	HvacUnknown      HvacPower = "HVAC_UNKNOWN"
	HvacOff          HvacPower = "HVAC_OFF"
	HvacOn           HvacPower = "HVAC_ON"
	HvacPrecondition HvacPower = "HVAC_PRECONDITION"
	HvacKeepTemp     HvacPower = "HVAC_KEEP_TEMP"
)

// Running reports whether the climate system is actively conditioning.
func (h HvacPower) Running() bool {
	return h == HvacOn || h == HvacPrecondition || h == HvacKeepTemp
}

// DefrostState is the max-defrost mode.
type DefrostState string

const (
	DefrostUnknown DefrostState = "DEFROST_UNKNOWN"
	DefrostOff     DefrostState = "DEFROST_OFF"
	DefrostOn      DefrostState = "DEFROST_ON"
)

// MaxACState is the max cooling override.
type MaxACState string

const (
	MaxACUnknown MaxACState = "MAX_AC_UNKNOWN"
	MaxACOff     MaxACState = "MAX_AC_OFF"
	MaxACOn      MaxACState = "MAX_AC_ON"
)

// SeatClimateLevel is the heater intensity shared by seats and the
// steering wheel.
type SeatClimateLevel string

const (
	SeatClimateUnknown SeatClimateLevel = "SEAT_CLIMATE_UNKNOWN"
	SeatClimateOff     SeatClimateLevel = "SEAT_CLIMATE_OFF"
	SeatClimateLow     SeatClimateLevel = "SEAT_CLIMATE_LOW"
	SeatClimateMedium  SeatClimateLevel = "SEAT_CLIMATE_MEDIUM"
	SeatClimateHigh    SeatClimateLevel = "SEAT_CLIMATE_HIGH"
)

func (s SeatClimateLevel) Label() string { return humanize(string(s), "SEAT_CLIMATE_") }

// SeatClimateLevelFromLabel is the inverse of Label, for command input.
func SeatClimateLevelFromLabel(label string) (SeatClimateLevel, bool) {
	for _, l := range []SeatClimateLevel{SeatClimateOff, SeatClimateLow, SeatClimateMedium, SeatClimateHigh} {
		if l.Label() == label {
			return l, true
		}
	}
	return SeatClimateUnknown, false
}

// SeatPosition identifies one heated seat zone.
type SeatPosition string

const (
	SeatDriverBackrest    SeatPosition = "SEAT_DRIVER_BACKREST"
	SeatDriverCushion     SeatPosition = "SEAT_DRIVER_CUSHION"
	SeatPassengerBackrest SeatPosition = "SEAT_PASSENGER_BACKREST"
	SeatPassengerCushion  SeatPosition = "SEAT_PASSENGER_CUSHION"
	SeatRearLeft          SeatPosition = "SEAT_REAR_LEFT"
	SeatRearCenter        SeatPosition = "SEAT_REAR_CENTER"
	SeatRearRight         SeatPosition = "SEAT_REAR_RIGHT"
)

// LightState covers the headlight group.
type LightState string

const (
	LightsUnknown LightState = "LIGHTS_UNKNOWN"
	LightsOff     LightState = "LIGHTS_OFF"
	LightsOn      LightState = "LIGHTS_ON"
	LightsFlash   LightState = "LIGHTS_FLASH"
)

// UpdateDownloadState is the OTA payload download progress.
type UpdateDownloadState string

const (
	UpdateDownloadUnknown    UpdateDownloadState = "UPDATE_DOWNLOAD_UNKNOWN"
	UpdateDownloadNotStarted UpdateDownloadState = "UPDATE_DOWNLOAD_NOT_STARTED"
	UpdateDownloadInProgress UpdateDownloadState = "UPDATE_DOWNLOAD_IN_PROGRESS"
	UpdateDownloadPaused     UpdateDownloadState = "UPDATE_DOWNLOAD_PAUSED"
	UpdateDownloadComplete   UpdateDownloadState = "UPDATE_DOWNLOAD_COMPLETE"
	UpdateDownloadFailed     UpdateDownloadState = "UPDATE_DOWNLOAD_FAILED"
)

func (u UpdateDownloadState) Label() string { return humanize(string(u), "UPDATE_DOWNLOAD_") }

// UpdateState is the OTA installation state.
type UpdateState string

const (
	UpdateStateUnknown    UpdateState = "UPDATE_STATE_UNKNOWN"
	UpdateStateIdle       UpdateState = "UPDATE_STATE_IDLE"
	UpdateStateInProgress UpdateState = "UPDATE_STATE_IN_PROGRESS"
	UpdateStateSuccess    UpdateState = "UPDATE_STATE_SUCCESS"
	UpdateStateFailed     UpdateState = "UPDATE_STATE_FAILED"
)

func (u UpdateState) Label() string { return humanize(string(u), "UPDATE_STATE_") }

// BatteryHealthLevel is the pack health bucket reported by the BMS.
type BatteryHealthLevel string

const (
	BatteryHealthUnknown  BatteryHealthLevel = "BATTERY_HEALTH_UNKNOWN"
	BatteryHealthNormal   BatteryHealthLevel = "BATTERY_HEALTH_NORMAL"
	BatteryHealthDegraded BatteryHealthLevel = "BATTERY_HEALTH_DEGRADED"
	BatteryHealthCritical BatteryHealthLevel = "BATTERY_HEALTH_CRITICAL"
)

func (b BatteryHealthLevel) Label() string { return humanize(string(b), "BATTERY_HEALTH_") }

// Model is the vehicle line.
type Model string

const (
	ModelUnknown Model = "MODEL_UNKNOWN"
	ModelAir     Model = "MODEL_AIR"
	ModelGravity Model = "MODEL_GRAVITY"
)

func (m Model) Label() string { return humanize(string(m), "MODEL_") }

// ModelVariant is the trim within a line.
type ModelVariant string

const (
	VariantUnknown      ModelVariant = "MODEL_VARIANT_UNKNOWN"
	VariantPure         ModelVariant = "MODEL_VARIANT_PURE"
	VariantTouring      ModelVariant = "MODEL_VARIANT_TOURING"
	VariantGrandTouring ModelVariant = "MODEL_VARIANT_GRAND_TOURING"
	VariantDreamEdition ModelVariant = "MODEL_VARIANT_DREAM_EDITION"
	VariantSapphire     ModelVariant = "MODEL_VARIANT_SAPPHIRE"
)

func (v ModelVariant) Label() string { return humanize(string(v), "MODEL_VARIANT_") }

// PaintColor is the factory exterior color.
type PaintColor string

const (
	PaintUnknown       PaintColor = "PAINT_COLOR_UNKNOWN"
	PaintStellarWhite  PaintColor = "PAINT_COLOR_STELLAR_WHITE"
	PaintCosmosSilver  PaintColor = "PAINT_COLOR_COSMOS_SILVER"
	PaintQuantumGrey   PaintColor = "PAINT_COLOR_QUANTUM_GREY"
	PaintInfiniteBlack PaintColor = "PAINT_COLOR_INFINITE_BLACK"
	PaintEurekaGold    PaintColor = "PAINT_COLOR_EUREKA_GOLD"
	PaintZenithRed     PaintColor = "PAINT_COLOR_ZENITH_RED"
	PaintFathomBlue    PaintColor = "PAINT_COLOR_FATHOM_BLUE"
)

func (p PaintColor) Label() string { return humanize(string(p), "PAINT_COLOR_") }

// Look is the exterior appearance package.
type Look string

const (
	LookUnknown  Look = "LOOK_UNKNOWN"
	LookPlatinum Look = "LOOK_PLATINUM"
	LookStealth  Look = "LOOK_STEALTH"
	LookSapphire Look = "LOOK_SAPPHIRE"
)

func (l Look) Label() string { return humanize(string(l), "LOOK_") }

// Wheels is the fitted wheel package.
type Wheels string

const (
	WheelsUnknown  Wheels = "WHEELS_UNKNOWN"
	WheelsRange    Wheels = "WHEELS_RANGE"
	WheelsDream    Wheels = "WHEELS_DREAM"
	WheelsSport    Wheels = "WHEELS_SPORT"
	WheelsLite     Wheels = "WHEELS_LITE"
	WheelsAeroLite Wheels = "WHEELS_AERO_LITE"
	WheelsSapphire Wheels = "WHEELS_SAPPHIRE_PACKAGE"
)

func (w Wheels) Label() string { return humanize(string(w), "WHEELS_") }

// RearSeatConfig is the ordered cabin layout. Six-seat cars replace the
// rear bench with two captain chairs and have no center seat.
type RearSeatConfig string

const (
	RearSeatConfigUnknown RearSeatConfig = "REAR_SEAT_CONFIG_UNKNOWN"
	RearSeatConfigFive    RearSeatConfig = "REAR_SEAT_CONFIG_5_SEAT"
	RearSeatConfigSix     RearSeatConfig = "REAR_SEAT_CONFIG_6_SEAT"
	RearSeatConfigSeven   RearSeatConfig = "REAR_SEAT_CONFIG_7_SEAT"
)
