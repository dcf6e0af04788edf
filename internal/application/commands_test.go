package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borski/ha-lucidmotors/internal/domain"
	"github.com/borski/ha-lucidmotors/internal/domain/entities"
)

func newCommandFixture(vehicles ...entities.Vehicle) (*fakeAPI, *Coordinator, *CommandService) {
	api := &fakeAPI{}
	coord := NewCoordinator(api, "owner@example.com", "hunter2", time.Minute, discardLogger())
	if len(vehicles) > 0 {
		coord.store(vehicles)
	}
	svc := NewCommandService(api, coord, discardLogger())
	return api, coord, svc
}

func TestCommandsRequireKnownVehicle(t *testing.T) {
	api, _, svc := newCommandFixture()

	err := svc.LockDoors(context.Background(), "UNSEEN")
	require.ErrorIs(t, err, domain.ErrVehicleNotFound)
	assert.Empty(t, api.callNames())
}

func TestCommandsWrapAPIErrors(t *testing.T) {
	boom := errors.New("boom")
	api, _, svc := newCommandFixture(testVehicle("VIN1"))
	api.cmdErr = boom

	err := svc.LockDoors(context.Background(), "VIN1")
	require.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "lock doors")
}

func TestCommandsArmFastPolling(t *testing.T) {
	_, coord, svc := newCommandFixture(testVehicle("VIN1"))
	require.Equal(t, time.Minute, coord.nextInterval())

	require.NoError(t, svc.LockDoors(context.Background(), "VIN1"))
	assert.Equal(t, fastPollInterval, coord.nextInterval())
}

func TestSetChargeLimitBounds(t *testing.T) {
	api, _, svc := newCommandFixture(testVehicle("VIN1"))

	for _, percent := range []int{0, 49, 101} {
		err := svc.SetChargeLimit(context.Background(), "VIN1", percent)
		require.ErrorIs(t, err, domain.ErrCommandRejected, "percent %d", percent)
	}
	assert.Empty(t, api.callNames())

	require.NoError(t, svc.SetChargeLimit(context.Background(), "VIN1", 80))
	assert.Equal(t, []string{"set_charge_limit"}, api.callNames())
	assert.Equal(t, 80, api.lastLimit)
}

func TestSetSeatHeaterPrerequisites(t *testing.T) {
	tests := []struct {
		name   string
		tweak  func(*entities.Vehicle)
		seat   entities.SeatPosition
		wantOK bool
	}{
		{
			name:   "front seat on heated car",
			tweak:  func(*entities.Vehicle) {},
			seat:   entities.SeatDriverCushion,
			wantOK: true,
		},
		{
			name:  "front seat without heating",
			tweak: func(v *entities.Vehicle) { v.Config.FrontSeatsHeating = false },
			seat:  entities.SeatDriverCushion,
		},
		{
			name:  "rear seat without heating",
			tweak: func(v *entities.Vehicle) { v.Config.SecondRowHeatedSeats = false },
			seat:  entities.SeatRearLeft,
		},
		{
			name:   "rear center on five seat bench",
			tweak:  func(*entities.Vehicle) {},
			seat:   entities.SeatRearCenter,
			wantOK: true,
		},
		{
			name:  "rear center on six seat layout",
			tweak: func(v *entities.Vehicle) { v.Config.RearSeatConfig = entities.RearSeatConfigSix },
			seat:  entities.SeatRearCenter,
		},
		{
			name:  "unknown seat",
			tweak: func(*entities.Vehicle) {},
			seat:  entities.SeatPosition("SEAT_GLOVEBOX"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			veh := testVehicle("VIN1")
			tc.tweak(&veh)
			api, _, svc := newCommandFixture(veh)

			err := svc.SetSeatHeater(context.Background(), "VIN1", tc.seat, entities.SeatClimateHigh)
			if tc.wantOK {
				require.NoError(t, err)
				assert.Equal(t, []string{"seat_climate_control"}, api.callNames())
			} else {
				require.ErrorIs(t, err, domain.ErrCommandRejected)
				assert.Empty(t, api.callNames())
			}
		})
	}
}

func TestSetSeatHeaterKeepsOtherZones(t *testing.T) {
	veh := testVehicle("VIN1")
	veh.State.Hvac.Seats.DriverBackrest = entities.SeatClimateLow
	api, _, svc := newCommandFixture(veh)

	require.NoError(t, svc.SetSeatHeater(context.Background(), "VIN1", entities.SeatRearRight, entities.SeatClimateMedium))
	assert.Equal(t, entities.SeatClimateLow, api.lastSeats.DriverBackrest)
	assert.Equal(t, entities.SeatClimateMedium, api.lastSeats.RearRight)
	assert.Equal(t, entities.SeatClimateLevel(""), api.lastSeats.RearCenter)
}

func TestSetSteeringHeaterRequiresFeature(t *testing.T) {
	veh := testVehicle("VIN1")
	veh.Config.HeatedSteeringWheel = false
	api, _, svc := newCommandFixture(veh)

	err := svc.SetSteeringHeater(context.Background(), "VIN1", entities.SeatClimateLow)
	require.ErrorIs(t, err, domain.ErrCommandRejected)
	assert.Empty(t, api.callNames())
}

func TestStartSoftwareUpdateNeedsOffer(t *testing.T) {
	_, _, svc := newCommandFixture(testVehicle("VIN1"))

	err := svc.StartSoftwareUpdate(context.Background(), "VIN1")
	require.ErrorIs(t, err, domain.ErrCommandRejected)

	offered := testVehicle("VIN2")
	offered.State.Software.AvailableVersionRaw = 206070
	api, _, svc := newCommandFixture(offered)
	require.NoError(t, svc.StartSoftwareUpdate(context.Background(), "VIN2"))
	assert.Equal(t, []string{"apply_software_update"}, api.callNames())
}

func TestSetClimatePowerKeepsTargetTemp(t *testing.T) {
	api, _, svc := newCommandFixture(testVehicle("VIN1"))

	require.NoError(t, svc.SetClimatePower(context.Background(), "VIN1", true))
	assert.Equal(t, entities.HvacPrecondition, api.lastPower)
	assert.Equal(t, 21.0, api.lastTemp)

	require.NoError(t, svc.SetClimatePower(context.Background(), "VIN1", false))
	assert.Equal(t, entities.HvacOff, api.lastPower)
}

func TestSetClimateTempKeepsPower(t *testing.T) {
	veh := testVehicle("VIN1")
	veh.State.Hvac.Power = entities.HvacPrecondition
	api, _, svc := newCommandFixture(veh)

	require.NoError(t, svc.SetClimateTemp(context.Background(), "VIN1", 19.5))
	assert.Equal(t, entities.HvacPrecondition, api.lastPower)
	assert.Equal(t, 19.5, api.lastTemp)
}

func TestWindowAndLightCommands(t *testing.T) {
	api, _, svc := newCommandFixture(testVehicle("VIN1"))
	ctx := context.Background()

	require.NoError(t, svc.SetWindows(ctx, "VIN1", entities.WindowFullyOpen))
	assert.Equal(t, entities.WindowFullyOpen, api.lastWindow)

	require.NoError(t, svc.SetHeadlights(ctx, "VIN1", true))
	assert.Equal(t, entities.LightsOn, api.lastLights)

	require.NoError(t, svc.FlashLights(ctx, "VIN1"))
	assert.Equal(t, entities.LightsFlash, api.lastLights)

	require.NoError(t, svc.SetAlarmMode(ctx, "VIN1", entities.AlarmModeSilent))
	assert.Equal(t, entities.AlarmModeSilent, api.lastAlarm)
}
