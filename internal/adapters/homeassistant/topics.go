package homeassistant

import "strings"

// Topic layout under the bridge's own prefix:
//
//	<prefix>/bridge/availability        online/offline (retained, LWT)
//	<prefix>/<vin>/state                full state document (retained)
//	<prefix>/<vin>/location             tracker attributes (retained)
//	<prefix>/<vin>/update/state         update entity document (retained)
//	<prefix>/<vin>/<key>/set            inbound commands
//
// Discovery configs go under the Home Assistant discovery prefix.
type topics struct {
	prefix string
}

func (t topics) availability() string {
	return t.prefix + "/bridge/availability"
}

func (t topics) state(vin string) string {
	return t.prefix + "/" + vin + "/state"
}

func (t topics) location(vin string) string {
	return t.prefix + "/" + vin + "/location"
}

func (t topics) updateState(vin string) string {
	return t.prefix + "/" + vin + "/update/state"
}

func (t topics) command(vin, key string) string {
	return t.prefix + "/" + vin + "/" + key + "/set"
}

func (t topics) commandFilter() string {
	return t.prefix + "/+/+/set"
}

// parseCommand splits an inbound command topic into VIN and key.
func (t topics) parseCommand(topic string) (vin, key string, ok bool) {
	rest, found := strings.CutPrefix(topic, t.prefix+"/")
	if !found {
		return "", "", false
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 3 || parts[2] != "set" || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
