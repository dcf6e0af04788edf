// Package units converts between the metric values the API reports and
// the imperial ones shown for US-market cars.
package units

const (
	kmPerMile = 1.609344
	psiPerBar = 14.503773773
	whPerKwh  = 1000.0
)

// KmToMiles converts kilometers to miles.
func KmToMiles(km float64) float64 { return km / kmPerMile }

// MilesToKm converts miles to kilometers.
func MilesToKm(mi float64) float64 { return mi * kmPerMile }

// BarToPsi converts tire pressure.
func BarToPsi(bar float64) float64 { return bar * psiPerBar }

// WhPerMile computes consumption in Wh/mi from energy used (kWh) and
// distance driven (km). Zero distance reports false: parked cars have
// no efficiency.
func WhPerMile(usedKwh, drivenKm float64) (float64, bool) {
	if drivenKm <= 0 {
		return 0, false
	}
	return usedKwh * whPerKwh / KmToMiles(drivenKm), true
}

// KwFromDelta computes average power in kW from an energy delta (kWh)
// over an elapsed duration in hours.
func KwFromDelta(deltaKwh, hours float64) (float64, bool) {
	if hours <= 0 {
		return 0, false
	}
	return deltaKwh / hours, true
}
