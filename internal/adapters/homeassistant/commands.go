package homeassistant

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/borski/ha-lucidmotors/internal/domain"
	"github.com/borski/ha-lucidmotors/internal/domain/entities"
)

const commandTimeout = 30 * time.Second

// seatByKey maps a command topic key onto the heater zone it drives.
var seatByKey = map[string]entities.SeatPosition{
	"driver_heater_backrest":          entities.SeatDriverBackrest,
	"driver_heater_cushion":           entities.SeatDriverCushion,
	"front_passenger_heater_backrest": entities.SeatPassengerBackrest,
	"front_passenger_heater_cushion":  entities.SeatPassengerCushion,
	"rear_left_seat_heater":           entities.SeatRearLeft,
	"rear_center_seat_heater":         entities.SeatRearCenter,
	"rear_right_seat_heater":          entities.SeatRearRight,
}

// onCommand dispatches one inbound command message. It runs on paho's
// router goroutine; commands are synchronous API calls, so each message
// is handled in its own goroutine to keep the router responsive.
func (b *Bridge) onCommand(_ mqtt.Client, msg mqtt.Message) {
	vin, key, ok := b.topics.parseCommand(msg.Topic())
	if !ok {
		b.logger.Warn("unroutable command topic", "topic", msg.Topic())
		return
	}
	payload := strings.TrimSpace(string(msg.Payload()))

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		err := b.dispatch(ctx, vin, key, payload)
		switch {
		case err == nil:
			b.logger.Info("command accepted", "vin", vin, "key", key, "payload", payload)
		case errors.Is(err, domain.ErrCommandRejected):
			b.logger.Warn("command rejected", "vin", vin, "key", key, "payload", payload, "error", err)
		default:
			b.logger.Error("command failed", "vin", vin, "key", key, "error", err)
		}
	}()
}

func (b *Bridge) dispatch(ctx context.Context, vin, key, payload string) error {
	if seat, ok := seatByKey[key]; ok {
		level, ok := entities.SeatClimateLevelFromLabel(payload)
		if !ok {
			return domain.ErrCommandRejected
		}
		return b.control.SetSeatHeater(ctx, vin, seat, level)
	}

	switch key {
	case "door_locks":
		switch payload {
		case "LOCK":
			return b.control.LockDoors(ctx, vin)
		case "UNLOCK":
			return b.control.UnlockDoors(ctx, vin)
		}
		return domain.ErrCommandRejected

	case "charging":
		switch payload {
		case "ON":
			return b.control.StartCharging(ctx, vin)
		case "OFF":
			return b.control.StopCharging(ctx, vin)
		}
		return domain.ErrCommandRejected

	case "charging_target":
		percent, err := strconv.ParseFloat(payload, 64)
		if err != nil {
			return domain.ErrCommandRejected
		}
		return b.control.SetChargeLimit(ctx, vin, int(percent))

	case "front_cargo":
		return b.control.SetFrunkOpen(ctx, vin, payload == "OPEN")

	case "rear_cargo":
		return b.control.SetTrunkOpen(ctx, vin, payload == "OPEN")

	case "charge_port_door":
		return b.control.SetChargePortOpen(ctx, vin, payload == "OPEN")

	case "all_windows":
		switch payload {
		case "OPEN":
			return b.control.SetWindows(ctx, vin, entities.WindowFullyOpen)
		case "CLOSE":
			return b.control.SetWindows(ctx, vin, entities.WindowFullyClosed)
		}
		return domain.ErrCommandRejected

	case "headlights":
		return b.control.SetHeadlights(ctx, vin, payload == "ON")

	case "flash_lights":
		return b.control.FlashLights(ctx, vin)

	case "honk_horn":
		return b.control.HonkHorn(ctx, vin)

	case "wake_up":
		return b.control.WakeUp(ctx, vin)

	case "alarm":
		for _, mode := range []entities.AlarmMode{entities.AlarmModeOff, entities.AlarmModeOn, entities.AlarmModeSilent} {
			if mode.Label() == payload {
				return b.control.SetAlarmMode(ctx, vin, mode)
			}
		}
		return domain.ErrCommandRejected

	case "steering_heater":
		level, ok := entities.SeatClimateLevelFromLabel(payload)
		if !ok {
			return domain.ErrCommandRejected
		}
		return b.control.SetSteeringHeater(ctx, vin, level)

	case "climate_mode":
		switch payload {
		case "heat_cool":
			return b.control.SetClimatePower(ctx, vin, true)
		case "off":
			return b.control.SetClimatePower(ctx, vin, false)
		}
		return domain.ErrCommandRejected

	case "climate_temp":
		target, err := strconv.ParseFloat(payload, 64)
		if err != nil {
			return domain.ErrCommandRejected
		}
		return b.control.SetClimateTemp(ctx, vin, target)

	case "climate_preset":
		switch payload {
		case presetDefrost:
			return b.control.SetDefrost(ctx, vin, true)
		case presetMaxAC:
			return b.control.SetMaxAC(ctx, vin, true)
		case presetNone:
			if err := b.control.SetDefrost(ctx, vin, false); err != nil {
				return err
			}
			return b.control.SetMaxAC(ctx, vin, false)
		}
		return domain.ErrCommandRejected

	case "update_install":
		return b.control.StartSoftwareUpdate(ctx, vin)
	}

	b.logger.Warn("unknown command key", "key", key)
	return domain.ErrCommandRejected
}
