package homeassistant

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borski/ha-lucidmotors/internal/domain"
	"github.com/borski/ha-lucidmotors/internal/domain/entities"
	"github.com/borski/ha-lucidmotors/internal/ports/input"
)

var _ input.VehicleControl = (*fakeControl)(nil)

// fakeControl records the control calls the bridge routes to it.
type fakeControl struct {
	mu    sync.Mutex
	calls []string
	err   error

	lastSeat    entities.SeatPosition
	lastLevel   entities.SeatClimateLevel
	lastWindow  entities.WindowPosition
	lastAlarm   entities.AlarmMode
	lastPercent int
	lastTemp    float64
	lastOn      bool
}

func (f *fakeControl) record(name string, capture func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	if capture != nil {
		capture()
	}
	return f.err
}

func (f *fakeControl) callNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeControl) LockDoors(context.Context, string) error {
	return f.record("lock_doors", nil)
}

func (f *fakeControl) UnlockDoors(context.Context, string) error {
	return f.record("unlock_doors", nil)
}

func (f *fakeControl) StartCharging(context.Context, string) error {
	return f.record("start_charging", nil)
}

func (f *fakeControl) StopCharging(context.Context, string) error {
	return f.record("stop_charging", nil)
}

func (f *fakeControl) SetChargeLimit(_ context.Context, _ string, percent int) error {
	return f.record("set_charge_limit", func() { f.lastPercent = percent })
}

func (f *fakeControl) SetFrunkOpen(_ context.Context, _ string, open bool) error {
	return f.record("set_frunk_open", func() { f.lastOn = open })
}

func (f *fakeControl) SetTrunkOpen(_ context.Context, _ string, open bool) error {
	return f.record("set_trunk_open", func() { f.lastOn = open })
}

func (f *fakeControl) SetChargePortOpen(_ context.Context, _ string, open bool) error {
	return f.record("set_charge_port_open", func() { f.lastOn = open })
}

func (f *fakeControl) SetWindows(_ context.Context, _ string, position entities.WindowPosition) error {
	return f.record("set_windows", func() { f.lastWindow = position })
}

func (f *fakeControl) SetHeadlights(_ context.Context, _ string, on bool) error {
	return f.record("set_headlights", func() { f.lastOn = on })
}

func (f *fakeControl) FlashLights(context.Context, string) error {
	return f.record("flash_lights", nil)
}

func (f *fakeControl) HonkHorn(context.Context, string) error {
	return f.record("honk_horn", nil)
}

func (f *fakeControl) WakeUp(context.Context, string) error {
	return f.record("wake_up", nil)
}

func (f *fakeControl) SetAlarmMode(_ context.Context, _ string, mode entities.AlarmMode) error {
	return f.record("set_alarm_mode", func() { f.lastAlarm = mode })
}

func (f *fakeControl) SetSeatHeater(_ context.Context, _ string, seat entities.SeatPosition, level entities.SeatClimateLevel) error {
	return f.record("set_seat_heater", func() {
		f.lastSeat = seat
		f.lastLevel = level
	})
}

func (f *fakeControl) SetSteeringHeater(_ context.Context, _ string, level entities.SeatClimateLevel) error {
	return f.record("set_steering_heater", func() { f.lastLevel = level })
}

func (f *fakeControl) SetClimatePower(_ context.Context, _ string, on bool) error {
	return f.record("set_climate_power", func() { f.lastOn = on })
}

func (f *fakeControl) SetClimateTemp(_ context.Context, _ string, targetC float64) error {
	return f.record("set_climate_temp", func() { f.lastTemp = targetC })
}

func (f *fakeControl) SetDefrost(_ context.Context, _ string, on bool) error {
	return f.record("set_defrost", func() { f.lastOn = on })
}

func (f *fakeControl) SetMaxAC(_ context.Context, _ string, on bool) error {
	return f.record("set_max_ac", func() { f.lastOn = on })
}

func (f *fakeControl) StartSoftwareUpdate(context.Context, string) error {
	return f.record("start_software_update", nil)
}

func newDispatchBridge(ctrl *fakeControl) *Bridge {
	return &Bridge{
		topics:  topics{prefix: "lucidbridge"},
		control: ctrl,
		logger:  slog.New(slog.DiscardHandler),
	}
}

func TestDispatchRoutesCommands(t *testing.T) {
	tests := []struct {
		key      string
		payload  string
		wantCall string
	}{
		{"door_locks", "LOCK", "lock_doors"},
		{"door_locks", "UNLOCK", "unlock_doors"},
		{"charging", "ON", "start_charging"},
		{"charging", "OFF", "stop_charging"},
		{"front_cargo", "OPEN", "set_frunk_open"},
		{"rear_cargo", "CLOSE", "set_trunk_open"},
		{"charge_port_door", "OPEN", "set_charge_port_open"},
		{"headlights", "ON", "set_headlights"},
		{"flash_lights", "PRESS", "flash_lights"},
		{"honk_horn", "PRESS", "honk_horn"},
		{"wake_up", "PRESS", "wake_up"},
		{"update_install", "INSTALL", "start_software_update"},
	}

	for _, tc := range tests {
		t.Run(tc.key+" "+tc.payload, func(t *testing.T) {
			ctrl := &fakeControl{}
			b := newDispatchBridge(ctrl)

			require.NoError(t, b.dispatch(context.Background(), "VIN1", tc.key, tc.payload))
			assert.Equal(t, []string{tc.wantCall}, ctrl.callNames())
		})
	}
}

func TestDispatchRejectsBadPayloads(t *testing.T) {
	tests := []struct {
		key     string
		payload string
	}{
		{"door_locks", "OPEN"},
		{"charging", "MAYBE"},
		{"charging_target", "full"},
		{"all_windows", "VENT"},
		{"alarm", "Armed"},
		{"driver_heater_backrest", "Toasty"},
		{"steering_heater", ""},
		{"climate_mode", "auto"},
		{"climate_temp", "warm"},
		{"climate_preset", "Eco"},
		{"does_not_exist", "ON"},
	}

	for _, tc := range tests {
		t.Run(tc.key+" "+tc.payload, func(t *testing.T) {
			ctrl := &fakeControl{}
			b := newDispatchBridge(ctrl)

			err := b.dispatch(context.Background(), "VIN1", tc.key, tc.payload)
			require.ErrorIs(t, err, domain.ErrCommandRejected)
			assert.Empty(t, ctrl.callNames())
		})
	}
}

func TestDispatchChargeTarget(t *testing.T) {
	ctrl := &fakeControl{}
	b := newDispatchBridge(ctrl)

	require.NoError(t, b.dispatch(context.Background(), "VIN1", "charging_target", "85"))
	assert.Equal(t, 85, ctrl.lastPercent)

	// Home Assistant number entities publish floats.
	require.NoError(t, b.dispatch(context.Background(), "VIN1", "charging_target", "90.0"))
	assert.Equal(t, 90, ctrl.lastPercent)
}

func TestDispatchWindows(t *testing.T) {
	ctrl := &fakeControl{}
	b := newDispatchBridge(ctrl)

	require.NoError(t, b.dispatch(context.Background(), "VIN1", "all_windows", "OPEN"))
	assert.Equal(t, entities.WindowFullyOpen, ctrl.lastWindow)

	require.NoError(t, b.dispatch(context.Background(), "VIN1", "all_windows", "CLOSE"))
	assert.Equal(t, entities.WindowFullyClosed, ctrl.lastWindow)
}

func TestDispatchSeatHeaters(t *testing.T) {
	ctrl := &fakeControl{}
	b := newDispatchBridge(ctrl)

	require.NoError(t, b.dispatch(context.Background(), "VIN1", "rear_center_seat_heater", "Medium"))
	assert.Equal(t, entities.SeatRearCenter, ctrl.lastSeat)
	assert.Equal(t, entities.SeatClimateMedium, ctrl.lastLevel)

	require.NoError(t, b.dispatch(context.Background(), "VIN1", "driver_heater_cushion", "Off"))
	assert.Equal(t, entities.SeatDriverCushion, ctrl.lastSeat)
	assert.Equal(t, entities.SeatClimateOff, ctrl.lastLevel)
}

func TestDispatchAlarmModes(t *testing.T) {
	ctrl := &fakeControl{}
	b := newDispatchBridge(ctrl)

	require.NoError(t, b.dispatch(context.Background(), "VIN1", "alarm", "Silent"))
	assert.Equal(t, entities.AlarmModeSilent, ctrl.lastAlarm)

	require.NoError(t, b.dispatch(context.Background(), "VIN1", "alarm", "Off"))
	assert.Equal(t, entities.AlarmModeOff, ctrl.lastAlarm)
}

func TestDispatchClimate(t *testing.T) {
	ctrl := &fakeControl{}
	b := newDispatchBridge(ctrl)
	ctx := context.Background()

	require.NoError(t, b.dispatch(ctx, "VIN1", "climate_mode", "heat_cool"))
	assert.True(t, ctrl.lastOn)

	require.NoError(t, b.dispatch(ctx, "VIN1", "climate_mode", "off"))
	assert.False(t, ctrl.lastOn)

	require.NoError(t, b.dispatch(ctx, "VIN1", "climate_temp", "21.5"))
	assert.Equal(t, 21.5, ctrl.lastTemp)

	require.NoError(t, b.dispatch(ctx, "VIN1", "climate_preset", "Defrost"))
	assert.Equal(t, "set_defrost", ctrl.callNames()[len(ctrl.callNames())-1])
	assert.True(t, ctrl.lastOn)

	require.NoError(t, b.dispatch(ctx, "VIN1", "climate_preset", "Max A/C"))
	assert.Equal(t, "set_max_ac", ctrl.callNames()[len(ctrl.callNames())-1])
	assert.True(t, ctrl.lastOn)
}

// Leaving the preset drops both defrost and max A/C.
func TestDispatchClimatePresetNone(t *testing.T) {
	ctrl := &fakeControl{}
	b := newDispatchBridge(ctrl)

	require.NoError(t, b.dispatch(context.Background(), "VIN1", "climate_preset", "none"))
	assert.Equal(t, []string{"set_defrost", "set_max_ac"}, ctrl.callNames())
	assert.False(t, ctrl.lastOn)
}

// fakeMessage satisfies paho's Message for router tests.
type fakeMessage struct {
	topic   string
	payload string
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 1 }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 1 }
func (m fakeMessage) Payload() []byte   { return []byte(m.payload) }
func (m fakeMessage) Ack()              {}

func TestOnCommandParsesAndDispatches(t *testing.T) {
	ctrl := &fakeControl{}
	b := newDispatchBridge(ctrl)

	b.onCommand(nil, fakeMessage{topic: "lucidbridge/VIN1/door_locks/set", payload: " LOCK\n"})

	require.Eventually(t, func() bool {
		calls := ctrl.callNames()
		return len(calls) == 1 && calls[0] == "lock_doors"
	}, time.Second, 5*time.Millisecond, "payload whitespace must be trimmed before dispatch")
}

func TestOnCommandIgnoresForeignTopics(t *testing.T) {
	ctrl := &fakeControl{}
	b := newDispatchBridge(ctrl)

	b.onCommand(nil, fakeMessage{topic: "zigbee2mqtt/VIN1/door_locks/set", payload: "LOCK"})
	b.onCommand(nil, fakeMessage{topic: "lucidbridge/VIN1/state", payload: "LOCK"})

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, ctrl.callNames())
}
