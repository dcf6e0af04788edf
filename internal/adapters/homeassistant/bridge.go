package homeassistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/borski/ha-lucidmotors/internal/config"
	"github.com/borski/ha-lucidmotors/internal/domain/entities"
	"github.com/borski/ha-lucidmotors/internal/ports/input"
	"github.com/borski/ha-lucidmotors/internal/ports/output"
)

const (
	payloadOnline  = "online"
	payloadOffline = "offline"

	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
)

// Bridge mirrors vehicles onto MQTT in the Home Assistant discovery
// convention and routes command topics back into the control port.
type Bridge struct {
	client  mqtt.Client
	topics  topics
	cfg     *config.Config
	version string

	query   input.VehicleQuery
	control input.VehicleControl
	strings output.Strings
	logger  *slog.Logger

	mu         sync.Mutex
	discovered map[string]bool
	previous   map[string]entities.Vehicle
}

// NewBridge prepares the MQTT client without connecting.
func NewBridge(cfg *config.Config, version string, query input.VehicleQuery, control input.VehicleControl, strs output.Strings, logger *slog.Logger) *Bridge {
	b := &Bridge{
		topics:     topics{prefix: cfg.MQTT.TopicPrefix},
		cfg:        cfg,
		version:    version,
		query:      query,
		control:    control,
		strings:    strs,
		logger:     logger,
		discovered: make(map[string]bool),
		previous:   make(map[string]entities.Vehicle),
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTT.BrokerURL).
		SetClientID(cfg.MQTT.ClientID).
		SetKeepAlive(30 * time.Second).
		SetAutoReconnect(true).
		SetOrderMatters(false).
		SetWill(b.topics.availability(), payloadOffline, 1, true).
		SetOnConnectHandler(b.onConnect).
		SetConnectionLostHandler(b.onConnectionLost)
	if cfg.MQTT.Username != "" {
		opts.SetUsername(cfg.MQTT.Username)
		opts.SetPassword(cfg.MQTT.Password)
	}
	b.client = mqtt.NewClient(opts)
	return b
}

// Start connects to the broker and hooks the bridge into the vehicle
// query port. It returns once the initial connection is up.
func (b *Bridge) Start(ctx context.Context) error {
	token := b.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("connect to broker %s: timeout", b.cfg.MQTT.BrokerURL)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("connect to broker %s: %w", b.cfg.MQTT.BrokerURL, err)
	}

	b.query.Subscribe(b.onVehicle)
	b.query.SubscribeAvailability(b.onAvailability)

	for _, vehicle := range b.query.Vehicles() {
		b.onVehicle(vehicle)
	}
	return nil
}

// Stop marks the bridge offline and drops the broker connection.
func (b *Bridge) Stop() {
	b.publishString(b.topics.availability(), payloadOffline, true)
	b.client.Disconnect(250)
	b.logger.Info("mqtt bridge stopped")
}

func (b *Bridge) onConnect(client mqtt.Client) {
	b.logger.Info("connected to mqtt broker", "broker", b.cfg.MQTT.BrokerURL)

	token := client.Subscribe(b.topics.commandFilter(), 1, b.onCommand)
	if token.WaitTimeout(publishTimeout) && token.Error() != nil {
		b.logger.Error("subscribe to command topics", "error", token.Error())
	}

	if b.query.Available() {
		b.publishString(b.topics.availability(), payloadOnline, true)
	}

	// Re-announce known vehicles so a broker that lost its retained
	// messages gets the discovery configs and state back.
	b.mu.Lock()
	vins := make([]string, 0, len(b.discovered))
	for vin := range b.discovered {
		vins = append(vins, vin)
	}
	b.mu.Unlock()
	for _, vin := range vins {
		if vehicle, err := b.query.Vehicle(vin); err == nil {
			b.publishDiscovery(vehicle)
			b.publishState(vehicle)
		}
	}
}

func (b *Bridge) onConnectionLost(_ mqtt.Client, err error) {
	b.logger.Warn("mqtt connection lost", "error", err)
}

func (b *Bridge) onVehicle(vehicle entities.Vehicle) {
	b.mu.Lock()
	first := !b.discovered[vehicle.VIN]
	b.discovered[vehicle.VIN] = true
	prev, hasPrev := b.previous[vehicle.VIN]
	b.previous[vehicle.VIN] = vehicle
	b.mu.Unlock()

	if first {
		b.logger.Info("announcing vehicle",
			"vin", vehicle.VIN,
			"name", vehicle.DisplayName(),
		)
		b.publishDiscovery(vehicle)
	}

	var derived derivedMetrics
	if hasPrev {
		derived = deriveMetrics(prev, vehicle)
	}
	b.publishStateWithDerived(vehicle, derived)
}

func (b *Bridge) onAvailability(available bool) {
	payload := payloadOffline
	if available {
		payload = payloadOnline
	}
	b.publishString(b.topics.availability(), payload, true)
	b.logger.Info("vehicle data availability changed", "available", available)
}

func (b *Bridge) publishState(vehicle entities.Vehicle) {
	b.mu.Lock()
	prev, hasPrev := b.previous[vehicle.VIN]
	b.mu.Unlock()

	var derived derivedMetrics
	if hasPrev {
		derived = deriveMetrics(prev, vehicle)
	}
	b.publishStateWithDerived(vehicle, derived)
}

func (b *Bridge) publishStateWithDerived(vehicle entities.Vehicle, derived derivedMetrics) {
	doc := buildStateDoc(vehicle, derived)
	b.publishJSON(b.topics.state(vehicle.VIN), doc, true)
	b.publishJSON(b.topics.location(vehicle.VIN), buildLocationDoc(vehicle), true)
	b.publishJSON(b.topics.updateState(vehicle.VIN), buildUpdateDoc(vehicle, b.releaseSummary(vehicle)), true)
}

// releaseSummary fetches the pending build's release notes. The client
// caches them, so the common case is a map lookup.
func (b *Bridge) releaseSummary(vehicle entities.Vehicle) string {
	software := vehicle.State.Software
	if !software.UpdateAvailable() {
		return ""
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	notes, err := b.query.ReleaseNotes(ctx, software.AvailableVersion)
	if err != nil {
		b.logger.Warn("fetch release notes", "version", software.AvailableVersion, "error", err)
		return ""
	}
	return notes
}

func (b *Bridge) publishJSON(topic string, payload any, retained bool) {
	raw, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("marshal mqtt payload", "topic", topic, "error", err)
		return
	}
	b.publishRaw(topic, raw, retained)
}

func (b *Bridge) publishString(topic, payload string, retained bool) {
	b.publishRaw(topic, []byte(payload), retained)
}

func (b *Bridge) publishRaw(topic string, payload []byte, retained bool) {
	token := b.client.Publish(topic, 1, retained, payload)
	if token.WaitTimeout(publishTimeout) && token.Error() != nil {
		b.logger.Error("publish", "topic", topic, "error", token.Error())
	}
}

// entityName resolves the display name for an entity, falling back to
// the raw key when the catalog has no entry.
func (b *Bridge) entityName(domain, key string) string {
	name, err := b.strings.EntityName(b.cfg.Locale, domain, key)
	if err != nil {
		b.logger.Warn("missing entity name", "domain", domain, "key", key)
	}
	return name
}
