package homeassistant

import (
	"github.com/borski/ha-lucidmotors/internal/domain/entities"
	"github.com/borski/ha-lucidmotors/pkg/hadiscovery"
)

// A description declares one entity of a platform: its catalog key, the
// template extracting its value from the state document, and the Home
// Assistant metadata. exists filters entities by the vehicle's build
// sheet, nil means every vehicle has it.
type sensorDesc struct {
	key         string
	deviceClass string
	stateClass  string
	unit        string
	precision   int
	icon        string
	options     []string
	category    hadiscovery.EntityCategory
	template    string
}

type binarySensorDesc struct {
	key         string
	deviceClass string
	icon        string
	category    hadiscovery.EntityCategory
	template    string
}

type buttonDesc struct {
	key      string
	icon     string
	category hadiscovery.EntityCategory
}

type selectDesc struct {
	key      string
	icon     string
	options  []string
	category hadiscovery.EntityCategory
	template string
	exists   func(entities.Vehicle) bool
}

type coverDesc struct {
	key              string
	deviceClass      string
	icon             string
	template         string
	positionTemplate string
	commandable      bool
}

func labels[T interface{ Label() string }](values ...T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.Label())
	}
	return out
}

// unknownOr wraps a nullable JSON path so a null renders as an unknown
// state instead of the string "None".
func unknownOr(path string) string {
	return "{{ " + path + " | default('None', true) }}"
}

func onOff(condition string) string {
	return "{{ 'ON' if " + condition + " else 'OFF' }}"
}

var sensorDescs = []sensorDesc{
	{
		key:         "remaining_battery_percent",
		deviceClass: "battery",
		stateClass:  "measurement",
		unit:        "%",
		precision:   1,
		template:    "{{ value_json.battery.remaining_percent }}",
	},
	{
		key:         "remaining_battery_power",
		deviceClass: "energy_storage",
		stateClass:  "measurement",
		unit:        "kWh",
		precision:   1,
		category:    hadiscovery.CategoryDiagnostic,
		template:    "{{ value_json.battery.remaining_kwh }}",
	},
	{
		key:         "battery_capacity",
		deviceClass: "energy_storage",
		unit:        "kWh",
		precision:   1,
		category:    hadiscovery.CategoryDiagnostic,
		template:    "{{ value_json.battery.capacity_kwh }}",
	},
	{
		key:      "battery_health_level",
		options:  labels(entities.BatteryHealthNormal, entities.BatteryHealthDegraded, entities.BatteryHealthCritical, entities.BatteryHealthUnknown),
		category: hadiscovery.CategoryDiagnostic,
		icon:     "mdi:battery-heart-variant",
		template: "{{ value_json.battery.health }}",
	},
	{
		key:         "max_cell_temp",
		deviceClass: "temperature",
		stateClass:  "measurement",
		unit:        "°C",
		precision:   1,
		category:    hadiscovery.CategoryDiagnostic,
		template:    "{{ value_json.battery.max_cell_temp_c }}",
	},
	{
		key:         "min_cell_temp",
		deviceClass: "temperature",
		stateClass:  "measurement",
		unit:        "°C",
		precision:   1,
		category:    hadiscovery.CategoryDiagnostic,
		template:    "{{ value_json.battery.min_cell_temp_c }}",
	},
	{
		key:         "charge_session_power",
		deviceClass: "energy",
		stateClass:  "measurement",
		unit:        "kWh",
		precision:   1,
		template:    "{{ value_json.charging.session_kwh }}",
	},
	{
		key:         "charge_session_range",
		deviceClass: "distance",
		stateClass:  "measurement",
		unit:        "km",
		precision:   1,
		template:    "{{ value_json.charging.session_range_km }}",
	},
	{
		key:         "charge_session_time_remaining",
		deviceClass: "duration",
		unit:        "min",
		icon:        "mdi:battery-clock",
		template:    unknownOr("value_json.charging.time_remaining_min"),
	},
	{
		key:         "charging_rate",
		deviceClass: "power",
		stateClass:  "measurement",
		unit:        "kW",
		precision:   1,
		template:    "{{ value_json.charging.rate_kw }}",
	},
	{
		key:         "charging_rate_distance",
		deviceClass: "speed",
		stateClass:  "measurement",
		unit:        "km/h",
		precision:   0,
		icon:        "mdi:ev-station",
		template:    "{{ value_json.charging.rate_km_per_hour }}",
	},
	{
		key:      "charging_status",
		options:  labels(entities.ChargeStateNotConnected, entities.ChargeStateCableConnected, entities.ChargeStateCharging, entities.ChargeStateComplete, entities.ChargeStateDischarging, entities.ChargeStateUnknown),
		icon:     "mdi:ev-plug-ccs1",
		template: "{{ value_json.charging.status }}",
	},
	{
		key:      "energy_type",
		options:  []string{"AC", "DC", "Unknown"},
		category: hadiscovery.CategoryDiagnostic,
		icon:     "mdi:current-ac",
		template: "{{ value_json.charging.energy_type }}",
	},
	{
		key:         "remaining_range",
		deviceClass: "distance",
		stateClass:  "measurement",
		unit:        "km",
		precision:   0,
		icon:        "mdi:map-marker-distance",
		template:    "{{ value_json.battery.range_km }}",
	},
	{
		key:         "mileage",
		deviceClass: "distance",
		stateClass:  "total_increasing",
		unit:        "km",
		precision:   1,
		icon:        "mdi:counter",
		template:    "{{ value_json.chassis.odometer_km }}",
	},
	{
		key:         "speed",
		deviceClass: "speed",
		stateClass:  "measurement",
		unit:        "km/h",
		precision:   0,
		template:    "{{ value_json.chassis.speed_km_per_hour }}",
	},
	{
		key:         "exterior_temp",
		deviceClass: "temperature",
		stateClass:  "measurement",
		unit:        "°C",
		precision:   1,
		template:    "{{ value_json.cabin.exterior_temp_c }}",
	},
	{
		key:         "interior_temp",
		deviceClass: "temperature",
		stateClass:  "measurement",
		unit:        "°C",
		precision:   1,
		template:    "{{ value_json.cabin.interior_temp_c }}",
	},
	{
		key:         "front_left_tire_pressure",
		deviceClass: "pressure",
		stateClass:  "measurement",
		unit:        "bar",
		precision:   2,
		category:    hadiscovery.CategoryDiagnostic,
		template:    unknownOr("value_json.chassis.tire_front_left_bar"),
	},
	{
		key:         "front_right_tire_pressure",
		deviceClass: "pressure",
		stateClass:  "measurement",
		unit:        "bar",
		precision:   2,
		category:    hadiscovery.CategoryDiagnostic,
		template:    unknownOr("value_json.chassis.tire_front_right_bar"),
	},
	{
		key:         "rear_left_tire_pressure",
		deviceClass: "pressure",
		stateClass:  "measurement",
		unit:        "bar",
		precision:   2,
		category:    hadiscovery.CategoryDiagnostic,
		template:    unknownOr("value_json.chassis.tire_rear_left_bar"),
	},
	{
		key:         "rear_right_tire_pressure",
		deviceClass: "pressure",
		stateClass:  "measurement",
		unit:        "bar",
		precision:   2,
		category:    hadiscovery.CategoryDiagnostic,
		template:    unknownOr("value_json.chassis.tire_rear_right_bar"),
	},
	{
		key:      "alarm_mode",
		options:  labels(entities.AlarmModeOff, entities.AlarmModeOn, entities.AlarmModeSilent, entities.AlarmModeUnknown),
		category: hadiscovery.CategoryDiagnostic,
		icon:     "mdi:shield-car",
		template: "{{ value_json.alarm.mode }}",
	},
	{
		key:      "alarm_status",
		options:  labels(entities.AlarmStatusDisarmed, entities.AlarmStatusArmed, entities.AlarmStatusPreAlarm, entities.AlarmStatusTriggered, entities.AlarmStatusUnknown),
		category: hadiscovery.CategoryDiagnostic,
		icon:     "mdi:shield-alert",
		template: "{{ value_json.alarm.status }}",
	},
	{
		key:      "paint_color",
		category: hadiscovery.CategoryDiagnostic,
		icon:     "mdi:palette",
		template: "{{ value_json.vehicle.paint_color }}",
	},
	{
		key:      "look",
		category: hadiscovery.CategoryDiagnostic,
		icon:     "mdi:car-side",
		template: "{{ value_json.vehicle.look }}",
	},
	{
		key:      "wheels",
		category: hadiscovery.CategoryDiagnostic,
		icon:     "mdi:tire",
		template: "{{ value_json.vehicle.wheels }}",
	},
	{
		key:      "power_state",
		options:  labels(entities.PowerStateSleep, entities.PowerStateSleepCharge, entities.PowerStateSleepUpdate, entities.PowerStateWink, entities.PowerStateMonitor, entities.PowerStateAccessory, entities.PowerStateDrive, entities.PowerStateLiveCharge, entities.PowerStateUnknown),
		icon:     "mdi:power-settings",
		template: "{{ value_json.power_state }}",
	},
	{
		key:      "drive_mode",
		options:  labels(entities.DriveModeSmooth, entities.DriveModeSwift, entities.DriveModeSprint, entities.DriveModeWinter, entities.DriveModeValet, entities.DriveModeUnknown),
		icon:     "mdi:car-speed-limiter",
		template: "{{ value_json.drive_mode }}",
	},
	{
		key:      "gear_position",
		options:  labels(entities.GearPark, entities.GearReverse, entities.GearNeutral, entities.GearDrive, entities.GearUnknown),
		icon:     "mdi:car-shift-pattern",
		template: "{{ value_json.gear_position }}",
	},
	{
		key:      "update_download_status",
		options:  labels(entities.UpdateDownloadNotStarted, entities.UpdateDownloadInProgress, entities.UpdateDownloadPaused, entities.UpdateDownloadComplete, entities.UpdateDownloadFailed, entities.UpdateDownloadUnknown),
		category: hadiscovery.CategoryDiagnostic,
		icon:     "mdi:cloud-download",
		template: "{{ value_json.software.download_status }}",
	},
	{
		key:        "efficiency",
		stateClass: "measurement",
		unit:       "Wh/mi",
		precision:  0,
		icon:       "mdi:lightning-bolt",
		template:   unknownOr("value_json.derived.efficiency_wh_per_mile"),
	},
	{
		key:         "power_usage",
		deviceClass: "power",
		stateClass:  "measurement",
		unit:        "kW",
		precision:   1,
		template:    unknownOr("value_json.derived.power_usage_kw"),
	},
}

var binarySensorDescs = []binarySensorDesc{
	{key: "front_left_door", deviceClass: "door", template: onOff("value_json.body.front_left_door_open")},
	{key: "front_right_door", deviceClass: "door", template: onOff("value_json.body.front_right_door_open")},
	{key: "rear_left_door", deviceClass: "door", template: onOff("value_json.body.rear_left_door_open")},
	{key: "rear_right_door", deviceClass: "door", template: onOff("value_json.body.rear_right_door_open")},
	{key: "front_cargo", deviceClass: "door", icon: "mdi:car-select", template: onOff("value_json.body.front_cargo_open")},
	{key: "rear_cargo", deviceClass: "door", icon: "mdi:car-back", template: onOff("value_json.body.rear_cargo_open")},
	{key: "charge_port_door", deviceClass: "door", icon: "mdi:ev-plug-ccs1", template: onOff("value_json.body.charge_port_open")},
	{key: "walkaway_lock", icon: "mdi:lock-smart", category: hadiscovery.CategoryDiagnostic, template: onOff("value_json.body.walkaway_active")},
	{key: "hvac_power", deviceClass: "running", icon: "mdi:air-conditioner", template: onOff("value_json.hvac.running")},
}

var buttonDescs = []buttonDesc{
	{key: "flash_lights", icon: "mdi:car-light-high"},
	{key: "wake_up", icon: "mdi:sleep-off", category: hadiscovery.CategoryDiagnostic},
	{key: "honk_horn", icon: "mdi:bullhorn"},
}

var seatLevelOptions = labels(entities.SeatClimateOff, entities.SeatClimateLow, entities.SeatClimateMedium, entities.SeatClimateHigh)

func frontSeatsHeated(v entities.Vehicle) bool { return v.Config.FrontSeatsHeating }
func rearSeatsHeated(v entities.Vehicle) bool  { return v.Config.SecondRowHeatedSeats }
func rearCenterHeated(v entities.Vehicle) bool {
	return v.Config.SecondRowHeatedSeats && v.HasRearCenterSeat()
}
func steeringHeated(v entities.Vehicle) bool { return v.Config.HeatedSteeringWheel }

var selectDescs = []selectDesc{
	{
		key:      "alarm",
		icon:     "mdi:shield-car",
		options:  labels(entities.AlarmModeOff, entities.AlarmModeOn, entities.AlarmModeSilent),
		template: "{{ value_json.alarm.mode }}",
	},
	{
		key:      "driver_heater_backrest",
		icon:     "mdi:car-seat-heater",
		options:  seatLevelOptions,
		template: "{{ value_json.hvac.seats.driver_heater_backrest }}",
		exists:   frontSeatsHeated,
	},
	{
		key:      "driver_heater_cushion",
		icon:     "mdi:car-seat-heater",
		options:  seatLevelOptions,
		template: "{{ value_json.hvac.seats.driver_heater_cushion }}",
		exists:   frontSeatsHeated,
	},
	{
		key:      "front_passenger_heater_backrest",
		icon:     "mdi:car-seat-heater",
		options:  seatLevelOptions,
		template: "{{ value_json.hvac.seats.front_passenger_heater_backrest }}",
		exists:   frontSeatsHeated,
	},
	{
		key:      "front_passenger_heater_cushion",
		icon:     "mdi:car-seat-heater",
		options:  seatLevelOptions,
		template: "{{ value_json.hvac.seats.front_passenger_heater_cushion }}",
		exists:   frontSeatsHeated,
	},
	{
		key:      "rear_left_seat_heater",
		icon:     "mdi:car-seat-heater",
		options:  seatLevelOptions,
		template: "{{ value_json.hvac.seats.rear_left_seat_heater }}",
		exists:   rearSeatsHeated,
	},
	{
		key:      "rear_center_seat_heater",
		icon:     "mdi:car-seat-heater",
		options:  seatLevelOptions,
		template: "{{ value_json.hvac.seats.rear_center_seat_heater }}",
		exists:   rearCenterHeated,
	},
	{
		key:      "rear_right_seat_heater",
		icon:     "mdi:car-seat-heater",
		options:  seatLevelOptions,
		template: "{{ value_json.hvac.seats.rear_right_seat_heater }}",
		exists:   rearSeatsHeated,
	},
	{
		key:      "steering_heater",
		icon:     "mdi:steering",
		options:  seatLevelOptions,
		template: "{{ value_json.hvac.steering_heater }}",
		exists:   steeringHeated,
	},
}

var coverDescs = []coverDesc{
	{
		key:         "front_cargo",
		deviceClass: "door",
		icon:        "mdi:car-select",
		template:    "{{ 'open' if value_json.body.front_cargo_open else 'closed' }}",
		commandable: true,
	},
	{
		key:         "rear_cargo",
		deviceClass: "door",
		icon:        "mdi:car-back",
		template:    "{{ 'open' if value_json.body.rear_cargo_open else 'closed' }}",
		commandable: true,
	},
	{
		key:         "charge_port_door",
		deviceClass: "door",
		icon:        "mdi:ev-plug-ccs1",
		template:    "{{ 'open' if value_json.body.charge_port_open else 'closed' }}",
		commandable: true,
	},
	{
		key:              "left_front_window",
		deviceClass:      "window",
		template:         "{{ 'closed' if value_json.body.windows.left_front_pct == 0 else 'open' }}",
		positionTemplate: unknownOr("value_json.body.windows.left_front_pct"),
	},
	{
		key:              "right_front_window",
		deviceClass:      "window",
		template:         "{{ 'closed' if value_json.body.windows.right_front_pct == 0 else 'open' }}",
		positionTemplate: unknownOr("value_json.body.windows.right_front_pct"),
	},
	{
		key:              "left_rear_window",
		deviceClass:      "window",
		template:         "{{ 'closed' if value_json.body.windows.left_rear_pct == 0 else 'open' }}",
		positionTemplate: unknownOr("value_json.body.windows.left_rear_pct"),
	},
	{
		key:              "right_rear_window",
		deviceClass:      "window",
		template:         "{{ 'closed' if value_json.body.windows.right_rear_pct == 0 else 'open' }}",
		positionTemplate: unknownOr("value_json.body.windows.right_rear_pct"),
	},
	{
		key:         "all_windows",
		deviceClass: "window",
		template:    "{{ 'closed' if value_json.body.windows.left_front_pct == 0 and value_json.body.windows.right_front_pct == 0 and value_json.body.windows.left_rear_pct == 0 and value_json.body.windows.right_rear_pct == 0 else 'open' }}",
		commandable: true,
	},
}
