package homeassistant

import (
	"github.com/borski/ha-lucidmotors/internal/domain/entities"
	"github.com/borski/ha-lucidmotors/pkg/hadiscovery"
)

// Climate presets and limits. The car exposes a single auto mode, so the
// entity maps running/stopped onto heat_cool/off.
const (
	presetNone    = "none"
	presetDefrost = "Defrost"
	presetMaxAC   = "Max A/C"

	hvacMinTemp  = 15.5
	hvacMaxTemp  = 29.5
	hvacTempStep = 0.5
)

const supportURL = "https://github.com/borski/ha-lucidmotors"

func (b *Bridge) origin() *hadiscovery.Origin {
	return &hadiscovery.Origin{
		Name:      "lucidbridge",
		SWVersion: b.version,
		URL:       supportURL,
	}
}

func (b *Bridge) device(vehicle entities.Vehicle) hadiscovery.Device {
	return hadiscovery.Device{
		Identifiers:  []string{vehicle.VIN},
		Name:         vehicle.DisplayName(),
		Manufacturer: "Lucid Motors",
		Model:        vehicle.ModelLabel(),
		SWVersion:    vehicle.State.Chassis.SoftwareVersion,
		SerialNumber: vehicle.VIN,
	}
}

func (b *Bridge) baseEntity(vehicle entities.Vehicle, domain, key, icon string, category hadiscovery.EntityCategory) hadiscovery.Entity {
	name := b.entityName(domain, key)
	return hadiscovery.Entity{
		Name:              &name,
		HasEntityName:     true,
		UniqueID:          vehicle.VIN + "-" + key,
		Device:            b.device(vehicle),
		Origin:            b.origin(),
		AvailabilityTopic: b.topics.availability(),
		EntityCategory:    category,
		Icon:              icon,
	}
}

// deviceEntity is the base for entities that take the device's own name.
func (b *Bridge) deviceEntity(vehicle entities.Vehicle, key string) hadiscovery.Entity {
	return hadiscovery.Entity{
		Name:              nil,
		HasEntityName:     true,
		UniqueID:          vehicle.VIN + "-" + key,
		Device:            b.device(vehicle),
		Origin:            b.origin(),
		AvailabilityTopic: b.topics.availability(),
	}
}

func (b *Bridge) publishConfig(platform hadiscovery.Platform, vin, key string, payload any) {
	topic := hadiscovery.ConfigTopic(b.cfg.MQTT.DiscoveryPrefix, platform, vin+"_"+key)
	b.publishJSON(topic, payload, true)
}

// publishDiscovery announces every entity of one vehicle. Config payloads
// are retained so Home Assistant picks them up on restart.
func (b *Bridge) publishDiscovery(vehicle entities.Vehicle) {
	vin := vehicle.VIN
	stateTopic := b.topics.state(vin)

	for _, desc := range sensorDescs {
		b.publishConfig(hadiscovery.PlatformSensor, vin, desc.key, hadiscovery.Sensor{
			Entity:                    b.baseEntity(vehicle, "sensor", desc.key, desc.icon, desc.category),
			StateTopic:                stateTopic,
			ValueTemplate:             desc.template,
			UnitOfMeasurement:         desc.unit,
			DeviceClass:               desc.deviceClass,
			StateClass:                desc.stateClass,
			SuggestedDisplayPrecision: desc.precision,
			Options:                   desc.options,
		})
	}

	for _, desc := range binarySensorDescs {
		b.publishConfig(hadiscovery.PlatformBinarySensor, vin, desc.key, hadiscovery.BinarySensor{
			Entity:        b.baseEntity(vehicle, "binary_sensor", desc.key, desc.icon, desc.category),
			StateTopic:    stateTopic,
			ValueTemplate: desc.template,
			DeviceClass:   desc.deviceClass,
		})
	}

	for _, desc := range buttonDescs {
		b.publishConfig(hadiscovery.PlatformButton, vin, desc.key, hadiscovery.Button{
			Entity:       b.baseEntity(vehicle, "button", desc.key, desc.icon, desc.category),
			CommandTopic: b.topics.command(vin, desc.key),
		})
	}

	for _, desc := range selectDescs {
		if desc.exists != nil && !desc.exists(vehicle) {
			continue
		}
		b.publishConfig(hadiscovery.PlatformSelect, vin, desc.key, hadiscovery.Select{
			Entity:        b.baseEntity(vehicle, "select", desc.key, desc.icon, desc.category),
			StateTopic:    stateTopic,
			ValueTemplate: desc.template,
			CommandTopic:  b.topics.command(vin, desc.key),
			Options:       desc.options,
		})
	}

	b.publishConfig(hadiscovery.PlatformSwitch, vin, "charging", hadiscovery.Switch{
		Entity:        b.baseEntity(vehicle, "switch", "charging", "mdi:ev-station", hadiscovery.CategoryNone),
		StateTopic:    stateTopic,
		CommandTopic:  b.topics.command(vin, "charging"),
		ValueTemplate: "{{ 'ON' if value_json.charging.status == 'Charging' else 'OFF' }}",
		DeviceClass:   "switch",
	})

	b.publishConfig(hadiscovery.PlatformLight, vin, "headlights", hadiscovery.Light{
		Entity:             b.baseEntity(vehicle, "light", "headlights", "mdi:car-light-dimmed", hadiscovery.CategoryNone),
		StateTopic:         stateTopic,
		CommandTopic:       b.topics.command(vin, "headlights"),
		StateValueTemplate: "{% if value_json.chassis.headlights_on is none %}None{% elif value_json.chassis.headlights_on %}ON{% else %}OFF{% endif %}",
	})

	b.publishConfig(hadiscovery.PlatformLock, vin, "door_locks", hadiscovery.Lock{
		Entity:        b.baseEntity(vehicle, "lock", "door_locks", "", hadiscovery.CategoryNone),
		StateTopic:    stateTopic,
		CommandTopic:  b.topics.command(vin, "door_locks"),
		ValueTemplate: "{{ 'LOCKED' if value_json.body.locked else 'UNLOCKED' }}",
	})

	b.publishConfig(hadiscovery.PlatformClimate, vin, "climate", hadiscovery.Climate{
		Entity:                     b.baseEntity(vehicle, "climate", "climate", "", hadiscovery.CategoryNone),
		Modes:                      []string{"off", "heat_cool"},
		ModeStateTopic:             stateTopic,
		ModeStateTemplate:          "{{ 'heat_cool' if value_json.hvac.running else 'off' }}",
		ModeCommandTopic:           b.topics.command(vin, "climate_mode"),
		ActionTopic:                stateTopic,
		ActionTemplate:             "{{ value_json.hvac.action }}",
		CurrentTemperatureTopic:    stateTopic,
		CurrentTemperatureTemplate: "{{ value_json.cabin.interior_temp_c }}",
		TemperatureStateTopic:      stateTopic,
		TemperatureStateTemplate:   "{{ value_json.hvac.target_temp_c }}",
		TemperatureCommandTopic:    b.topics.command(vin, "climate_temp"),
		PresetModes:                []string{presetDefrost, presetMaxAC},
		PresetModeStateTopic:       stateTopic,
		PresetModeValueTemplate:    "{{ value_json.hvac.preset }}",
		PresetModeCommandTopic:     b.topics.command(vin, "climate_preset"),
		MinTemp:                    hvacMinTemp,
		MaxTemp:                    hvacMaxTemp,
		TempStep:                   hvacTempStep,
		TemperatureUnit:            "C",
	})

	for _, desc := range coverDescs {
		payload := hadiscovery.Cover{
			Entity:           b.baseEntity(vehicle, "cover", desc.key, desc.icon, hadiscovery.CategoryNone),
			StateTopic:       stateTopic,
			ValueTemplate:    desc.template,
			DeviceClass:      desc.deviceClass,
			PositionTemplate: desc.positionTemplate,
		}
		if desc.positionTemplate != "" {
			payload.PositionTopic = stateTopic
		}
		if desc.commandable {
			payload.CommandTopic = b.topics.command(vin, desc.key)
		}
		b.publishConfig(hadiscovery.PlatformCover, vin, desc.key, payload)
	}

	b.publishConfig(hadiscovery.PlatformNumber, vin, "charging_target", hadiscovery.Number{
		Entity:            b.baseEntity(vehicle, "number", "charging_target", "", hadiscovery.CategoryNone),
		StateTopic:        stateTopic,
		ValueTemplate:     "{{ value_json.charging.target_percent | round(0) }}",
		CommandTopic:      b.topics.command(vin, "charging_target"),
		Min:               50,
		Max:               100,
		Step:              1,
		Mode:              "slider",
		UnitOfMeasurement: "%",
		DeviceClass:       "battery",
	})

	tracker := hadiscovery.DeviceTracker{
		Entity:     b.deviceEntity(vehicle, "location"),
		SourceType: "gps",
	}
	tracker.JsonAttributesTopic = b.topics.location(vin)
	b.publishConfig(hadiscovery.PlatformDeviceTracker, vin, "location", tracker)

	b.publishConfig(hadiscovery.PlatformUpdate, vin, "update", hadiscovery.Update{
		Entity:         b.deviceEntity(vehicle, "update"),
		StateTopic:     b.topics.updateState(vin),
		CommandTopic:   b.topics.command(vin, "update_install"),
		PayloadInstall: "INSTALL",
		DeviceClass:    "firmware",
	})
}
