package homeassistant

import (
	"time"
	"unicode/utf8"

	"github.com/borski/ha-lucidmotors/internal/domain/entities"
	"github.com/borski/ha-lucidmotors/pkg/units"
)

// stateDoc is the retained per-vehicle state document. Values are
// presentation ready: enums carry their labels and sentinel readings
// are nulled so templates can map them to an unknown state.
type stateDoc struct {
	PowerState   string      `json:"power_state"`
	GearPosition string      `json:"gear_position"`
	DriveMode    string      `json:"drive_mode"`
	Battery      batteryDoc  `json:"battery"`
	Charging     chargingDoc `json:"charging"`
	Body         bodyDoc     `json:"body"`
	Cabin        cabinDoc    `json:"cabin"`
	Hvac         hvacDoc     `json:"hvac"`
	Chassis      chassisDoc  `json:"chassis"`
	Alarm        alarmDoc    `json:"alarm"`
	Software     softwareDoc `json:"software"`
	Vehicle      vehicleDoc  `json:"vehicle"`
	Derived      derivedDoc  `json:"derived"`
	UpdatedAt    string      `json:"updated_at"`
}

// vehicleDoc carries static configuration surfaced as sensors.
type vehicleDoc struct {
	PaintColor string `json:"paint_color"`
	Look       string `json:"look"`
	Wheels     string `json:"wheels"`
}

type batteryDoc struct {
	RemainingPercent float64 `json:"remaining_percent"`
	RemainingKwh     float64 `json:"remaining_kwh"`
	CapacityKwh      float64 `json:"capacity_kwh"`
	RangeKm          float64 `json:"range_km"`
	MaxCellTempC     float64 `json:"max_cell_temp_c"`
	MinCellTempC     float64 `json:"min_cell_temp_c"`
	Health           string  `json:"health"`
}

type chargingDoc struct {
	Status           string  `json:"status"`
	EnergyType       string  `json:"energy_type"`
	SessionKwh       float64 `json:"session_kwh"`
	SessionRangeKm   float64 `json:"session_range_km"`
	RateKw           float64 `json:"rate_kw"`
	RateKmPerHour    float64 `json:"rate_km_per_hour"`
	TimeRemainingMin *int    `json:"time_remaining_min"`
	TargetPercent    float64 `json:"target_percent"`
}

type bodyDoc struct {
	FrontLeftDoorOpen  bool       `json:"front_left_door_open"`
	FrontRightDoorOpen bool       `json:"front_right_door_open"`
	RearLeftDoorOpen   bool       `json:"rear_left_door_open"`
	RearRightDoorOpen  bool       `json:"rear_right_door_open"`
	FrontCargoOpen     bool       `json:"front_cargo_open"`
	RearCargoOpen      bool       `json:"rear_cargo_open"`
	ChargePortOpen     bool       `json:"charge_port_open"`
	Locked             bool       `json:"locked"`
	WalkawayActive     bool       `json:"walkaway_active"`
	Windows            windowsDoc `json:"windows"`
}

type windowsDoc struct {
	LeftFrontPct  *int `json:"left_front_pct"`
	RightFrontPct *int `json:"right_front_pct"`
	LeftRearPct   *int `json:"left_rear_pct"`
	RightRearPct  *int `json:"right_rear_pct"`
}

type cabinDoc struct {
	InteriorTempC float64 `json:"interior_temp_c"`
	ExteriorTempC float64 `json:"exterior_temp_c"`
}

type hvacDoc struct {
	Running        bool     `json:"running"`
	Action         string   `json:"action"`
	TargetTempC    float64  `json:"target_temp_c"`
	Preset         string   `json:"preset"`
	Seats          seatsDoc `json:"seats"`
	SteeringHeater string   `json:"steering_heater"`
}

type seatsDoc struct {
	DriverBackrest    string `json:"driver_heater_backrest"`
	DriverCushion     string `json:"driver_heater_cushion"`
	PassengerBackrest string `json:"front_passenger_heater_backrest"`
	PassengerCushion  string `json:"front_passenger_heater_cushion"`
	RearLeft          string `json:"rear_left_seat_heater"`
	RearCenter        string `json:"rear_center_seat_heater"`
	RearRight         string `json:"rear_right_seat_heater"`
}

type chassisDoc struct {
	OdometerKm      float64  `json:"odometer_km"`
	SpeedKmPerHour  float64  `json:"speed_km_per_hour"`
	TireFLBar       *float64 `json:"tire_front_left_bar"`
	TireFRBar       *float64 `json:"tire_front_right_bar"`
	TireRLBar       *float64 `json:"tire_rear_left_bar"`
	TireRRBar       *float64 `json:"tire_rear_right_bar"`
	HeadlightsOn    *bool    `json:"headlights_on"`
	SoftwareVersion string   `json:"software_version"`
}

type alarmDoc struct {
	Mode   string `json:"mode"`
	Status string `json:"status"`
}

type softwareDoc struct {
	InstalledVersion string `json:"installed_version"`
	DownloadStatus   string `json:"download_status"`
	UpdateStatus     string `json:"update_status"`
}

type derivedDoc struct {
	EfficiencyWhPerMile *float64 `json:"efficiency_wh_per_mile"`
	PowerUsageKw        *float64 `json:"power_usage_kw"`
}

// derivedMetrics carries values computed from two consecutive
// snapshots. The zero value means nothing could be derived.
type derivedMetrics struct {
	efficiencyWhPerMile *float64
	powerUsageKw        *float64
}

// deriveMetrics computes drive efficiency and charge power from the
// deltas between two snapshots. Stationary or stale pairs yield nils.
func deriveMetrics(prev, cur entities.Vehicle) derivedMetrics {
	var out derivedMetrics

	drivenKm := cur.State.Chassis.OdometerKm - prev.State.Chassis.OdometerKm
	usedKwh := prev.State.Battery.RemainingEnergy - cur.State.Battery.RemainingEnergy
	if drivenKm > 0 && usedKwh > 0 {
		if eff, ok := units.WhPerMile(usedKwh, drivenKm); ok {
			out.efficiencyWhPerMile = &eff
		}
	}

	hours := cur.State.UpdatedAt.Sub(prev.State.UpdatedAt).Hours()
	deltaKwh := cur.State.Charging.SessionEnergy - prev.State.Charging.SessionEnergy
	if cur.State.Charging.State == entities.ChargeStateCharging && deltaKwh > 0 {
		if kw, ok := units.KwFromDelta(deltaKwh, hours); ok {
			out.powerUsageKw = &kw
		}
	}
	return out
}

func buildStateDoc(vehicle entities.Vehicle, derived derivedMetrics) stateDoc {
	state := vehicle.State

	doc := stateDoc{
		PowerState:   state.PowerState.Label(),
		GearPosition: state.GearPosition.Label(),
		DriveMode:    state.DriveMode.Label(),
		Battery: batteryDoc{
			RemainingPercent: state.Battery.RemainingPercent,
			RemainingKwh:     state.Battery.RemainingEnergy,
			CapacityKwh:      state.Battery.Capacity,
			RangeKm:          state.Battery.RemainingRange,
			MaxCellTempC:     state.Battery.MaxCellTemp,
			MinCellTempC:     state.Battery.MinCellTemp,
			Health:           state.Battery.HealthLevel.Label(),
		},
		Charging: chargingDoc{
			Status:         state.Charging.State.Label(),
			EnergyType:     state.Charging.EnergyType.Label(),
			SessionKwh:     state.Charging.SessionEnergy,
			SessionRangeKm: state.Charging.SessionRange,
			RateKw:         state.Charging.Rate,
			RateKmPerHour:  state.Charging.RateDistance,
			TargetPercent:  state.Charging.TargetPercent,
		},
		Body: bodyDoc{
			FrontLeftDoorOpen:  state.Body.FrontLeftDoor.IsOpen(),
			FrontRightDoorOpen: state.Body.FrontRightDoor.IsOpen(),
			RearLeftDoorOpen:   state.Body.RearLeftDoor.IsOpen(),
			RearRightDoorOpen:  state.Body.RearRightDoor.IsOpen(),
			FrontCargoOpen:     state.Body.FrontCargo.IsOpen(),
			RearCargoOpen:      state.Body.RearCargo.IsOpen(),
			ChargePortOpen:     state.Body.ChargePortDoor.IsOpen(),
			Locked:             state.Body.DoorLocks != entities.LockStateUnlocked,
			WalkawayActive:     state.Body.WalkawayLock == entities.WalkawayActive,
			Windows: windowsDoc{
				LeftFrontPct:  windowPct(state.Body.Windows.LeftFront),
				RightFrontPct: windowPct(state.Body.Windows.RightFront),
				LeftRearPct:   windowPct(state.Body.Windows.LeftRear),
				RightRearPct:  windowPct(state.Body.Windows.RightRear),
			},
		},
		Cabin: cabinDoc{
			InteriorTempC: state.Cabin.InteriorTemp,
			ExteriorTempC: state.Cabin.ExteriorTemp,
		},
		Hvac: hvacDoc{
			Running:     state.Hvac.Power.Running(),
			Action:      hvacAction(state),
			TargetTempC: state.Hvac.TargetTemp,
			Preset:      hvacPreset(state),
			Seats: seatsDoc{
				DriverBackrest:    state.Hvac.Seats.DriverBackrest.Label(),
				DriverCushion:     state.Hvac.Seats.DriverCushion.Label(),
				PassengerBackrest: state.Hvac.Seats.PassengerBackrest.Label(),
				PassengerCushion:  state.Hvac.Seats.PassengerCushion.Label(),
				RearLeft:          state.Hvac.Seats.RearLeft.Label(),
				RearCenter:        state.Hvac.Seats.RearCenter.Label(),
				RearRight:         state.Hvac.Seats.RearRight.Label(),
			},
			SteeringHeater: state.Hvac.SteeringHeater.Label(),
		},
		Chassis: chassisDoc{
			OdometerKm:      state.Chassis.OdometerKm,
			SpeedKmPerHour:  state.Chassis.SpeedKmh,
			TireFLBar:       tirePressure(state.Chassis.FrontLeftTirePressure),
			TireFRBar:       tirePressure(state.Chassis.FrontRightTirePressure),
			TireRLBar:       tirePressure(state.Chassis.RearLeftTirePressure),
			TireRRBar:       tirePressure(state.Chassis.RearRightTirePressure),
			HeadlightsOn:    headlightsOn(state.Chassis.Headlights),
			SoftwareVersion: state.Chassis.SoftwareVersion,
		},
		Alarm: alarmDoc{
			Mode:   state.Alarm.Mode.Label(),
			Status: state.Alarm.Status.Label(),
		},
		Software: softwareDoc{
			InstalledVersion: state.Software.InstalledVersion,
			DownloadStatus:   state.Software.DownloadStatus.Label(),
			UpdateStatus:     state.Software.State.Label(),
		},
		Vehicle: vehicleDoc{
			PaintColor: vehicle.Config.PaintColor.Label(),
			Look:       vehicle.Config.Look.Label(),
			Wheels:     vehicle.Config.Wheels.Label(),
		},
		Derived: derivedDoc{
			EfficiencyWhPerMile: derived.efficiencyWhPerMile,
			PowerUsageKw:        derived.powerUsageKw,
		},
		UpdatedAt: state.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if entities.ChargeTimeKnown(state.Charging.TimeRemaining) {
		minutes := int(state.Charging.TimeRemaining)
		doc.Charging.TimeRemainingMin = &minutes
	}
	return doc
}

func windowPct(pos entities.WindowPosition) *int {
	pct, ok := pos.PercentOpen()
	if !ok {
		return nil
	}
	return &pct
}

func tirePressure(bar float64) *float64 {
	if !entities.TirePressureKnown(bar) {
		return nil
	}
	return &bar
}

func headlightsOn(state entities.LightState) *bool {
	switch state {
	case entities.LightsOn, entities.LightsFlash:
		on := true
		return &on
	case entities.LightsOff:
		off := false
		return &off
	default:
		return nil
	}
}

// hvacAction mirrors the climate entity action field.
func hvacAction(state entities.VehicleState) string {
	if !state.Hvac.Power.Running() {
		return "off"
	}
	switch {
	case state.Cabin.InteriorTemp < state.Hvac.TargetTemp:
		return "heating"
	case state.Cabin.InteriorTemp > state.Hvac.TargetTemp:
		return "cooling"
	default:
		return "idle"
	}
}

func hvacPreset(state entities.VehicleState) string {
	switch {
	case state.Hvac.Defrost == entities.DefrostOn:
		return presetDefrost
	case state.Hvac.MaxAC == entities.MaxACOn:
		return presetMaxAC
	default:
		return presetNone
	}
}

// locationDoc feeds the device tracker attribute topic.
type locationDoc struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	GPSAccuracy int     `json:"gps_accuracy"`
	Heading     float64 `json:"heading"`
	Elevation   float64 `json:"elevation"`
	Attribution string  `json:"attribution"`
}

const attribution = "Data provided by Lucid Motors"

func buildLocationDoc(vehicle entities.Vehicle) locationDoc {
	gps := vehicle.State.Gps
	return locationDoc{
		Latitude:    gps.Latitude,
		Longitude:   gps.Longitude,
		GPSAccuracy: 10,
		Heading:     gps.HeadingDeg,
		Elevation:   gps.ElevationM,
		Attribution: attribution,
	}
}

// updateDoc matches the MQTT update entity's JSON state schema.
type updateDoc struct {
	InstalledVersion string `json:"installed_version"`
	LatestVersion    string `json:"latest_version"`
	Title            string `json:"title"`
	InProgress       bool   `json:"in_progress"`
	UpdatePercentage *int   `json:"update_percentage"`
	ReleaseSummary   string `json:"release_summary,omitempty"`
}

// releaseSummaryLimit is the longest release summary Home Assistant
// accepts on an update entity.
const releaseSummaryLimit = 255

func buildUpdateDoc(vehicle entities.Vehicle, releaseSummary string) updateDoc {
	software := vehicle.State.Software
	doc := updateDoc{
		InstalledVersion: software.InstalledVersion,
		LatestVersion:    software.InstalledVersion,
		Title:            "Lucid OS",
		InProgress:       software.State == entities.UpdateStateInProgress,
	}
	if software.UpdateAvailable() {
		doc.LatestVersion = software.AvailableVersion
		if len(releaseSummary) > releaseSummaryLimit {
			cut := releaseSummaryLimit - len("…")
			for cut > 0 && !utf8.RuneStart(releaseSummary[cut]) {
				cut--
			}
			releaseSummary = releaseSummary[:cut] + "…"
		}
		doc.ReleaseSummary = releaseSummary
	}
	if doc.InProgress && software.PercentComplete > 0 {
		pct := software.PercentComplete
		doc.UpdatePercentage = &pct
	}
	return doc
}
