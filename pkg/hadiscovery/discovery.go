// Package hadiscovery defines the Home Assistant MQTT discovery payloads.
// One retained config message per entity tells HA what exists, where its
// state lives and where to write commands.
package hadiscovery

import "fmt"

// Platform is the Home Assistant integration a config payload targets.
type Platform string

const (
	PlatformSensor        Platform = "sensor"
	PlatformBinarySensor  Platform = "binary_sensor"
	PlatformButton        Platform = "button"
	PlatformSelect        Platform = "select"
	PlatformSwitch        Platform = "switch"
	PlatformLight         Platform = "light"
	PlatformLock          Platform = "lock"
	PlatformClimate       Platform = "climate"
	PlatformCover         Platform = "cover"
	PlatformNumber        Platform = "number"
	PlatformDeviceTracker Platform = "device_tracker"
	PlatformUpdate        Platform = "update"
)

// EntityCategory tucks an entity into HA's config or diagnostic drawer.
type EntityCategory string

const (
	CategoryNone       EntityCategory = ""
	CategoryConfig     EntityCategory = "config"
	CategoryDiagnostic EntityCategory = "diagnostic"
)

// ConfigTopic is where a retained discovery payload is published.
func ConfigTopic(prefix string, platform Platform, objectID string) string {
	return fmt.Sprintf("%s/%s/%s/config", prefix, platform, objectID)
}

// Device is the HA device registry block shared by all entities of one
// vehicle, so they group under a single device page.
type Device struct {
	Identifiers  []string `json:"identifiers"`
	Name         string   `json:"name"`
	Manufacturer string   `json:"manufacturer"`
	Model        string   `json:"model"`
	SWVersion    string   `json:"sw_version,omitempty"`
	SerialNumber string   `json:"serial_number,omitempty"`
}

// Origin identifies the publishing service in the discovery payload.
type Origin struct {
	Name      string `json:"name"`
	SWVersion string `json:"sw_version,omitempty"`
	URL       string `json:"support_url,omitempty"`
}

// Entity is the block every discovery payload shares. Name is a pointer
// because explicit null means "use the device name".
type Entity struct {
	Name                *string        `json:"name"`
	ObjectID            string         `json:"object_id,omitempty"`
	HasEntityName       bool           `json:"has_entity_name,omitempty"`
	UniqueID            string         `json:"unique_id"`
	Device              Device         `json:"device"`
	Origin              *Origin        `json:"origin,omitempty"`
	AvailabilityTopic   string         `json:"availability_topic,omitempty"`
	EntityCategory      EntityCategory `json:"entity_category,omitempty"`
	Icon                string         `json:"icon,omitempty"`
	JsonAttributesTopic string         `json:"json_attributes_topic,omitempty"`
}

// Sensor is the payload for numeric and enum sensors.
type Sensor struct {
	Entity
	StateTopic                string   `json:"state_topic"`
	ValueTemplate             string   `json:"value_template,omitempty"`
	UnitOfMeasurement         string   `json:"unit_of_measurement,omitempty"`
	DeviceClass               string   `json:"device_class,omitempty"`
	StateClass                string   `json:"state_class,omitempty"`
	SuggestedDisplayPrecision int      `json:"suggested_display_precision,omitempty"`
	Options                   []string `json:"options,omitempty"`
}

// BinarySensor is the payload for two-state sensors.
type BinarySensor struct {
	Entity
	StateTopic    string `json:"state_topic"`
	ValueTemplate string `json:"value_template,omitempty"`
	DeviceClass   string `json:"device_class,omitempty"`
	PayloadOn     string `json:"payload_on,omitempty"`
	PayloadOff    string `json:"payload_off,omitempty"`
}

// Button is the payload for stateless press-only entities.
type Button struct {
	Entity
	CommandTopic string `json:"command_topic"`
	PayloadPress string `json:"payload_press,omitempty"`
	DeviceClass  string `json:"device_class,omitempty"`
}

// Switch is the payload for on/off entities with state feedback.
type Switch struct {
	Entity
	StateTopic    string `json:"state_topic"`
	CommandTopic  string `json:"command_topic"`
	ValueTemplate string `json:"value_template,omitempty"`
	StateOn       string `json:"state_on,omitempty"`
	StateOff      string `json:"state_off,omitempty"`
	PayloadOn     string `json:"payload_on,omitempty"`
	PayloadOff    string `json:"payload_off,omitempty"`
	DeviceClass   string `json:"device_class,omitempty"`
}

// Light is the payload for simple on/off lights.
type Light struct {
	Entity
	StateTopic         string `json:"state_topic"`
	CommandTopic       string `json:"command_topic"`
	StateValueTemplate string `json:"state_value_template,omitempty"`
	PayloadOn          string `json:"payload_on,omitempty"`
	PayloadOff         string `json:"payload_off,omitempty"`
}

// Lock is the payload for lock entities.
type Lock struct {
	Entity
	StateTopic    string `json:"state_topic"`
	CommandTopic  string `json:"command_topic"`
	ValueTemplate string `json:"value_template,omitempty"`
	PayloadLock   string `json:"payload_lock,omitempty"`
	PayloadUnlock string `json:"payload_unlock,omitempty"`
	StateLocked   string `json:"state_locked,omitempty"`
	StateUnlocked string `json:"state_unlocked,omitempty"`
}

// Climate is the payload for the HVAC entity.
type Climate struct {
	Entity
	Modes                      []string `json:"modes,omitempty"`
	ModeStateTopic             string   `json:"mode_state_topic,omitempty"`
	ModeStateTemplate          string   `json:"mode_state_template,omitempty"`
	ModeCommandTopic           string   `json:"mode_command_topic,omitempty"`
	ActionTopic                string   `json:"action_topic,omitempty"`
	ActionTemplate             string   `json:"action_template,omitempty"`
	CurrentTemperatureTopic    string   `json:"current_temperature_topic,omitempty"`
	CurrentTemperatureTemplate string   `json:"current_temperature_template,omitempty"`
	TemperatureStateTopic      string   `json:"temperature_state_topic,omitempty"`
	TemperatureStateTemplate   string   `json:"temperature_state_template,omitempty"`
	TemperatureCommandTopic    string   `json:"temperature_command_topic,omitempty"`
	PresetModes                []string `json:"preset_modes,omitempty"`
	PresetModeStateTopic       string   `json:"preset_mode_state_topic,omitempty"`
	PresetModeValueTemplate    string   `json:"preset_mode_value_template,omitempty"`
	PresetModeCommandTopic     string   `json:"preset_mode_command_topic,omitempty"`
	MinTemp                    float64  `json:"min_temp,omitempty"`
	MaxTemp                    float64  `json:"max_temp,omitempty"`
	TempStep                   float64  `json:"temp_step,omitempty"`
	TemperatureUnit            string   `json:"temperature_unit,omitempty"`
}

// Cover is the payload for doors, lids and windows.
type Cover struct {
	Entity
	StateTopic       string `json:"state_topic,omitempty"`
	ValueTemplate    string `json:"value_template,omitempty"`
	CommandTopic     string `json:"command_topic,omitempty"`
	PayloadOpen      string `json:"payload_open,omitempty"`
	PayloadClose     string `json:"payload_close,omitempty"`
	PayloadStop      string `json:"payload_stop,omitempty"`
	PositionTopic    string `json:"position_topic,omitempty"`
	PositionTemplate string `json:"position_template,omitempty"`
	StateOpen        string `json:"state_open,omitempty"`
	StateClosed      string `json:"state_closed,omitempty"`
	DeviceClass      string `json:"device_class,omitempty"`
}

// Number is the payload for settable numeric entities.
type Number struct {
	Entity
	StateTopic        string  `json:"state_topic"`
	ValueTemplate     string  `json:"value_template,omitempty"`
	CommandTopic      string  `json:"command_topic"`
	Min               float64 `json:"min,omitempty"`
	Max               float64 `json:"max,omitempty"`
	Step              float64 `json:"step,omitempty"`
	Mode              string  `json:"mode,omitempty"`
	UnitOfMeasurement string  `json:"unit_of_measurement,omitempty"`
	DeviceClass       string  `json:"device_class,omitempty"`
}

// Select is the payload for option-list entities.
type Select struct {
	Entity
	StateTopic    string   `json:"state_topic"`
	ValueTemplate string   `json:"value_template,omitempty"`
	CommandTopic  string   `json:"command_topic"`
	Options       []string `json:"options"`
}

// DeviceTracker is the payload for GPS trackers. Position comes through
// the JSON attributes topic.
type DeviceTracker struct {
	Entity
	StateTopic    string `json:"state_topic,omitempty"`
	ValueTemplate string `json:"value_template,omitempty"`
	SourceType    string `json:"source_type,omitempty"`
}

// Update is the payload for OTA update entities. The state topic carries
// a JSON document with installed_version, latest_version, in_progress,
// update_percentage and release_summary.
type Update struct {
	Entity
	StateTopic     string `json:"state_topic"`
	ValueTemplate  string `json:"value_template,omitempty"`
	CommandTopic   string `json:"command_topic,omitempty"`
	PayloadInstall string `json:"payload_install,omitempty"`
	DeviceClass    string `json:"device_class,omitempty"`
}
