package lucidapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	ttlcache "github.com/jellydator/ttlcache/v2"

	"github.com/borski/ha-lucidmotors/internal/domain"
	"github.com/borski/ha-lucidmotors/internal/domain/entities"
	"github.com/borski/ha-lucidmotors/internal/ports/output"
)

const (
	requestTimeout  = 30 * time.Second
	releaseNotesTTL = 24 * time.Hour
	userAgent       = "ha-lucidmotors/1.0"
)

// Ensure Client implements the VehicleAPI port.
var _ output.VehicleAPI = (*Client)(nil)

// Client talks to the owner API gateway of one region. It holds the
// bearer token of the current session; renewal is the caller's job via
// Login after ErrSessionExpired.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	notes      *ttlcache.Cache

	mu    sync.Mutex
	token string
}

// New builds a client for a region. hostOverride, when non-empty,
// replaces the region's gateway (used for test setups and proxies).
func New(region domain.Region, hostOverride string, logger *slog.Logger) *Client {
	base := region.APIHost
	if hostOverride != "" {
		base = hostOverride
	}
	notes := ttlcache.NewCache()
	_ = notes.SetTTL(releaseNotesTTL)
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    strings.TrimRight(base, "/"),
		logger:     logger,
		notes:      notes,
	}
}

// Close releases the release-notes cache goroutine.
func (c *Client) Close() {
	c.notes.Close()
}

// Authenticated reports whether a session token is held.
func (c *Client) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token != ""
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// do runs one JSON round trip. Transport failures map to
// ErrCannotConnect, a stale session to ErrSessionExpired and rejected
// credentials to ErrInvalidAuth.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		payload = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build %s: %w", path, err)
	}
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %v: %w", path, err, domain.ErrCannotConnect)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.asDomainError(path, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) asDomainError(path string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiErr apiError
	_ = json.Unmarshal(raw, &apiErr)

	switch {
	case apiErr.Code == codeSessionExpired:
		return fmt.Errorf("%s: %w", path, domain.ErrSessionExpired)
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: %w", path, domain.ErrInvalidAuth)
	default:
		return fmt.Errorf("%s: http %d code=%d %s", path, resp.StatusCode, apiErr.Code, apiErr.Message)
	}
}

// Login opens a session. The response carries the vehicle list, so a
// login doubles as a refresh.
func (c *Client) Login(ctx context.Context, username, password string) ([]entities.Vehicle, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/v1/login", loginRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.SessionInfo.IDToken == "" {
		return nil, fmt.Errorf("login: empty session token: %w", domain.ErrInvalidAuth)
	}
	c.setToken(resp.SessionInfo.IDToken)
	c.logger.Info("logged in", "uid", resp.UID, "vehicles", len(resp.UserVehicleData))
	return mapVehicles(resp.UserVehicleData), nil
}

// FetchVehicles returns the account's vehicles with fresh state.
func (c *Client) FetchVehicles(ctx context.Context) ([]entities.Vehicle, error) {
	if !c.Authenticated() {
		return nil, fmt.Errorf("no session: %w", domain.ErrSessionExpired)
	}
	var resp vehiclesResponse
	if err := c.do(ctx, http.MethodGet, "/v1/user_vehicles", nil, &resp); err != nil {
		return nil, err
	}
	return mapVehicles(resp.UserVehicleData), nil
}

type vehicleCommand struct {
	VehicleID string `json:"vehicle_id"`
}

func (c *Client) LockDoors(ctx context.Context, vin string) error {
	return c.do(ctx, http.MethodPost, "/v1/doors_control", struct {
		vehicleCommand
		LockState entities.LockState `json:"lock_state"`
	}{vehicleCommand{vin}, entities.LockStateLocked}, nil)
}

func (c *Client) UnlockDoors(ctx context.Context, vin string) error {
	return c.do(ctx, http.MethodPost, "/v1/doors_control", struct {
		vehicleCommand
		LockState entities.LockState `json:"lock_state"`
	}{vehicleCommand{vin}, entities.LockStateUnlocked}, nil)
}

func (c *Client) ChargeControl(ctx context.Context, vin string, on bool) error {
	action := "CHARGE_STOP"
	if on {
		action = "CHARGE_START"
	}
	return c.do(ctx, http.MethodPost, "/v1/charge_control", struct {
		vehicleCommand
		Action string `json:"action"`
	}{vehicleCommand{vin}, action}, nil)
}

func (c *Client) SetChargeLimit(ctx context.Context, vin string, percent int) error {
	return c.do(ctx, http.MethodPost, "/v1/charge_limit", struct {
		vehicleCommand
		LimitPercent int `json:"limit_percent"`
	}{vehicleCommand{vin}, percent}, nil)
}

func closureState(open bool) entities.DoorState {
	if open {
		return entities.DoorStateOpen
	}
	return entities.DoorStateClosed
}

func (c *Client) FrunkControl(ctx context.Context, vin string, open bool) error {
	return c.do(ctx, http.MethodPost, "/v1/front_cargo_control", struct {
		vehicleCommand
		ClosureState entities.DoorState `json:"closure_state"`
	}{vehicleCommand{vin}, closureState(open)}, nil)
}

func (c *Client) TrunkControl(ctx context.Context, vin string, open bool) error {
	return c.do(ctx, http.MethodPost, "/v1/rear_cargo_control", struct {
		vehicleCommand
		ClosureState entities.DoorState `json:"closure_state"`
	}{vehicleCommand{vin}, closureState(open)}, nil)
}

func (c *Client) ChargePortControl(ctx context.Context, vin string, open bool) error {
	return c.do(ctx, http.MethodPost, "/v1/charge_port_control", struct {
		vehicleCommand
		ClosureState entities.DoorState `json:"closure_state"`
	}{vehicleCommand{vin}, closureState(open)}, nil)
}

func (c *Client) WindowControl(ctx context.Context, vin string, position entities.WindowPosition) error {
	return c.do(ctx, http.MethodPost, "/v1/window_control", struct {
		vehicleCommand
		Position entities.WindowPosition `json:"position"`
	}{vehicleCommand{vin}, position}, nil)
}

func (c *Client) LightsControl(ctx context.Context, vin string, state entities.LightState) error {
	return c.do(ctx, http.MethodPost, "/v1/lights_control", struct {
		vehicleCommand
		Action entities.LightState `json:"action"`
	}{vehicleCommand{vin}, state}, nil)
}

func (c *Client) HonkHorn(ctx context.Context, vin string) error {
	return c.do(ctx, http.MethodPost, "/v1/honk_horn", vehicleCommand{vin}, nil)
}

func (c *Client) WakeUp(ctx context.Context, vin string) error {
	return c.do(ctx, http.MethodPost, "/v1/wakeup", vehicleCommand{vin}, nil)
}

func (c *Client) AlarmControl(ctx context.Context, vin string, mode entities.AlarmMode) error {
	return c.do(ctx, http.MethodPost, "/v1/security_alarm_control", struct {
		vehicleCommand
		Mode entities.AlarmMode `json:"mode"`
	}{vehicleCommand{vin}, mode}, nil)
}

func (c *Client) SeatClimateControl(ctx context.Context, vin string, seats entities.SeatClimateState) error {
	return c.do(ctx, http.MethodPost, "/v1/seat_climate_control", struct {
		vehicleCommand
		DriverBackrest    entities.SeatClimateLevel `json:"driver_backrest"`
		DriverCushion     entities.SeatClimateLevel `json:"driver_cushion"`
		PassengerBackrest entities.SeatClimateLevel `json:"passenger_backrest"`
		PassengerCushion  entities.SeatClimateLevel `json:"passenger_cushion"`
		RearLeft          entities.SeatClimateLevel `json:"rear_left"`
		RearCenter        entities.SeatClimateLevel `json:"rear_center"`
		RearRight         entities.SeatClimateLevel `json:"rear_right"`
	}{
		vehicleCommand:    vehicleCommand{vin},
		DriverBackrest:    seats.DriverBackrest,
		DriverCushion:     seats.DriverCushion,
		PassengerBackrest: seats.PassengerBackrest,
		PassengerCushion:  seats.PassengerCushion,
		RearLeft:          seats.RearLeft,
		RearCenter:        seats.RearCenter,
		RearRight:         seats.RearRight,
	}, nil)
}

func (c *Client) SteeringHeaterControl(ctx context.Context, vin string, level entities.SeatClimateLevel) error {
	return c.do(ctx, http.MethodPost, "/v1/steering_heater_control", struct {
		vehicleCommand
		Level entities.SeatClimateLevel `json:"level"`
	}{vehicleCommand{vin}, level}, nil)
}

func (c *Client) DefrostControl(ctx context.Context, vin string, on bool) error {
	action := entities.DefrostOff
	if on {
		action = entities.DefrostOn
	}
	return c.do(ctx, http.MethodPost, "/v1/defrost_control", struct {
		vehicleCommand
		Action entities.DefrostState `json:"action"`
	}{vehicleCommand{vin}, action}, nil)
}

func (c *Client) MaxACControl(ctx context.Context, vin string, on bool) error {
	action := entities.MaxACOff
	if on {
		action = entities.MaxACOn
	}
	return c.do(ctx, http.MethodPost, "/v1/max_ac_control", struct {
		vehicleCommand
		Action entities.MaxACState `json:"action"`
	}{vehicleCommand{vin}, action}, nil)
}

func (c *Client) HvacControl(ctx context.Context, vin string, power entities.HvacPower, targetTemp float64) error {
	return c.do(ctx, http.MethodPost, "/v1/hvac_control", struct {
		vehicleCommand
		Power       entities.HvacPower `json:"power"`
		TargetTempC float64            `json:"target_temp_c"`
	}{vehicleCommand{vin}, power, targetTemp}, nil)
}

func (c *Client) ApplySoftwareUpdate(ctx context.Context, vin string) error {
	return c.do(ctx, http.MethodPost, "/v1/apply_software_update", vehicleCommand{vin}, nil)
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// stripHTML flattens release-notes HTML to readable text.
func stripHTML(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

type releaseNotesResponse struct {
	NotesHTML string `json:"notes_html"`
}

// ReleaseNotes fetches and caches the notes for an offered OTA version.
// The coordinator asks on every refresh, so hits should be the norm.
func (c *Client) ReleaseNotes(ctx context.Context, version string) (string, error) {
	if cached, err := c.notes.Get(version); err == nil {
		return cached.(string), nil
	}
	var resp releaseNotesResponse
	if err := c.do(ctx, http.MethodGet, "/v1/release_notes/"+version, nil, &resp); err != nil {
		return "", err
	}
	text := stripHTML(resp.NotesHTML)
	_ = c.notes.Set(version, text)
	return text, nil
}
