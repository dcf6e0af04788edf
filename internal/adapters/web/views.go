package web

import (
	"time"

	"github.com/borski/ha-lucidmotors/internal/domain/entities"
	"github.com/borski/ha-lucidmotors/pkg/units"
)

// vehicleSummary is the list view. Distances carry both unit systems so
// the endpoint is directly readable.
type vehicleSummary struct {
	VIN            string  `json:"vin"`
	Name           string  `json:"name"`
	Model          string  `json:"model"`
	BatteryPercent float64 `json:"battery_percent"`
	RangeKm        float64 `json:"range_km"`
	RangeMi        float64 `json:"range_mi"`
	ChargingStatus string  `json:"charging_status"`
	UpdatedAt      string  `json:"updated_at"`
}

type vehicleDetail struct {
	vehicleSummary
	PaintColor   string       `json:"paint_color"`
	Look         string       `json:"look"`
	Wheels       string       `json:"wheels"`
	PowerState   string       `json:"power_state"`
	GearPosition string       `json:"gear_position"`
	DoorsLocked  bool         `json:"doors_locked"`
	OdometerKm   float64      `json:"odometer_km"`
	OdometerMi   float64      `json:"odometer_mi"`
	TiresPsi     tirePsiView  `json:"tires_psi"`
	Charging     chargingView `json:"charging"`
	Hvac         hvacView     `json:"hvac"`
	Software     softwareView `json:"software"`
	Location     locationView `json:"location"`
}

type tirePsiView struct {
	FrontLeft  *float64 `json:"front_left"`
	FrontRight *float64 `json:"front_right"`
	RearLeft   *float64 `json:"rear_left"`
	RearRight  *float64 `json:"rear_right"`
}

type chargingView struct {
	Status           string  `json:"status"`
	EnergyType       string  `json:"energy_type"`
	RateKw           float64 `json:"rate_kw"`
	SessionKwh       float64 `json:"session_kwh"`
	TargetPercent    float64 `json:"target_percent"`
	TimeRemainingMin *int    `json:"time_remaining_min"`
}

type hvacView struct {
	Running     bool    `json:"running"`
	TargetTempC float64 `json:"target_temp_c"`
	InteriorC   float64 `json:"interior_temp_c"`
	ExteriorC   float64 `json:"exterior_temp_c"`
}

type softwareView struct {
	Installed     string `json:"installed"`
	Available     string `json:"available,omitempty"`
	UpdateState   string `json:"update_state"`
	DownloadState string `json:"download_state"`
}

type locationView struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func summarize(v entities.Vehicle) vehicleSummary {
	return vehicleSummary{
		VIN:            v.VIN,
		Name:           v.DisplayName(),
		Model:          v.ModelLabel(),
		BatteryPercent: v.State.Battery.RemainingPercent,
		RangeKm:        v.State.Battery.RemainingRange,
		RangeMi:        units.KmToMiles(v.State.Battery.RemainingRange),
		ChargingStatus: v.State.Charging.State.Label(),
		UpdatedAt:      v.State.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func detail(v entities.Vehicle) vehicleDetail {
	state := v.State
	out := vehicleDetail{
		vehicleSummary: summarize(v),
		PaintColor:     v.Config.PaintColor.Label(),
		Look:           v.Config.Look.Label(),
		Wheels:         v.Config.Wheels.Label(),
		PowerState:     state.PowerState.Label(),
		GearPosition:   state.GearPosition.Label(),
		DoorsLocked:    state.Body.DoorLocks != entities.LockStateUnlocked,
		OdometerKm:     state.Chassis.OdometerKm,
		OdometerMi:     units.KmToMiles(state.Chassis.OdometerKm),
		TiresPsi: tirePsiView{
			FrontLeft:  psi(state.Chassis.FrontLeftTirePressure),
			FrontRight: psi(state.Chassis.FrontRightTirePressure),
			RearLeft:   psi(state.Chassis.RearLeftTirePressure),
			RearRight:  psi(state.Chassis.RearRightTirePressure),
		},
		Charging: chargingView{
			Status:        state.Charging.State.Label(),
			EnergyType:    state.Charging.EnergyType.Label(),
			RateKw:        state.Charging.Rate,
			SessionKwh:    state.Charging.SessionEnergy,
			TargetPercent: state.Charging.TargetPercent,
		},
		Hvac: hvacView{
			Running:     state.Hvac.Power.Running(),
			TargetTempC: state.Hvac.TargetTemp,
			InteriorC:   state.Cabin.InteriorTemp,
			ExteriorC:   state.Cabin.ExteriorTemp,
		},
		Software: softwareView{
			Installed:     state.Software.InstalledVersion,
			UpdateState:   state.Software.State.Label(),
			DownloadState: state.Software.DownloadStatus.Label(),
		},
		Location: locationView{
			Latitude:  state.Gps.Latitude,
			Longitude: state.Gps.Longitude,
		},
	}
	if state.Software.UpdateAvailable() {
		out.Software.Available = state.Software.AvailableVersion
	}
	if entities.ChargeTimeKnown(state.Charging.TimeRemaining) {
		minutes := int(state.Charging.TimeRemaining)
		out.Charging.TimeRemainingMin = &minutes
	}
	return out
}

func psi(bar float64) *float64 {
	if !entities.TirePressureKnown(bar) {
		return nil
	}
	v := units.BarToPsi(bar)
	return &v
}
