package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelStripsPrefixAndCapitalizes(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{ChargeStateNotConnected.Label(), "Not connected"},
		{ChargeStateComplete.Label(), "Charging complete"},
		{PowerStateSleepCharge.Label(), "Sleep charge"},
		{GearPark.Label(), "Park"},
		{DriveModeSwift.Label(), "Swift"},
		{AlarmModeSilent.Label(), "Silent"},
		{AlarmStatusPreAlarm.Label(), "Pre alarm"},
		{SeatClimateMedium.Label(), "Medium"},
		{ModelAir.Label(), "Air"},
		{VariantGrandTouring.Label(), "Grand touring"},
		{PaintStellarWhite.Label(), "Stellar white"},
		{LookPlatinum.Label(), "Platinum"},
		{WheelsAeroLite.Label(), "Aero lite"},
		{BatteryHealthNormal.Label(), "Normal"},
		{UpdateStateInProgress.Label(), "In progress"},
		{UpdateDownloadNotStarted.Label(), "Not started"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.got)
	}
}

// Wire values the mapping has never seen should still render readably
// instead of crashing or leaking SCREAMING_SNAKE into the UI.
func TestLabelToleratesForeignWireValues(t *testing.T) {
	assert.Equal(t, "Plaid", ChargeState("PLAID").Label())
	assert.Equal(t, "Unknown", ChargeState("").Label())
	assert.Equal(t, "Unknown", ChargeState("CHARGE_STATE_").Label())
}

func TestEnergyTypeLabel(t *testing.T) {
	assert.Equal(t, "AC", EnergyTypeAC.Label())
	assert.Equal(t, "DC", EnergyTypeDC.Label())
	assert.Equal(t, "Unknown", EnergyTypeUnknown.Label())
	assert.Equal(t, "Unknown", EnergyType("").Label())
}

func TestWindowPercentOpen(t *testing.T) {
	tests := []struct {
		pos  WindowPosition
		want int
	}{
		{WindowFullyClosed, 0},
		{WindowAboveShortDrop, 25},
		{WindowShortDrop, 50},
		{WindowBelowShortDrop, 75},
		{WindowFullyOpen, 100},
	}
	for _, tt := range tests {
		got, ok := tt.pos.PercentOpen()
		assert.True(t, ok, string(tt.pos))
		assert.Equal(t, tt.want, got, string(tt.pos))
	}

	_, ok := WindowUnknown.PercentOpen()
	assert.False(t, ok)
}

func TestDoorStateIsOpen(t *testing.T) {
	assert.True(t, DoorStateOpen.IsOpen())
	assert.True(t, DoorStateAjar.IsOpen())
	assert.False(t, DoorStateClosed.IsOpen())
	assert.False(t, DoorStateUnknown.IsOpen())
}

func TestHvacPowerRunning(t *testing.T) {
	assert.True(t, HvacOn.Running())
	assert.True(t, HvacPrecondition.Running())
	assert.True(t, HvacKeepTemp.Running())
	assert.False(t, HvacOff.Running())
	assert.False(t, HvacUnknown.Running())
}

func TestSeatClimateLevelFromLabel(t *testing.T) {
	for _, level := range []SeatClimateLevel{SeatClimateOff, SeatClimateLow, SeatClimateMedium, SeatClimateHigh} {
		got, ok := SeatClimateLevelFromLabel(level.Label())
		assert.True(t, ok, level.Label())
		assert.Equal(t, level, got)
	}

	_, ok := SeatClimateLevelFromLabel("off")
	assert.False(t, ok, "labels are case sensitive")
	_, ok = SeatClimateLevelFromLabel("Toasty")
	assert.False(t, ok)
}
