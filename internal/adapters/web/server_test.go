package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borski/ha-lucidmotors/internal/config"
	"github.com/borski/ha-lucidmotors/internal/domain"
	"github.com/borski/ha-lucidmotors/internal/domain/entities"
	"github.com/borski/ha-lucidmotors/internal/infrastructure/i18n"
	"github.com/borski/ha-lucidmotors/internal/ports/input"
)

var _ input.VehicleQuery = (*fakeQuery)(nil)

type fakeQuery struct {
	vehicles []entities.Vehicle
	stats    input.PollStats
}

func (q *fakeQuery) Vehicles() []entities.Vehicle { return q.vehicles }

func (q *fakeQuery) Vehicle(vin string) (entities.Vehicle, error) {
	for _, v := range q.vehicles {
		if v.VIN == vin {
			return v, nil
		}
	}
	return entities.Vehicle{}, domain.ErrVehicleNotFound
}

func (q *fakeQuery) Subscribe(func(entities.Vehicle)) {}
func (q *fakeQuery) SubscribeAvailability(func(bool)) {}
func (q *fakeQuery) Available() bool                  { return q.stats.Available }
func (q *fakeQuery) Stats() input.PollStats           { return q.stats }

func (q *fakeQuery) ReleaseNotes(context.Context, string) (string, error) {
	return "", nil
}

func webVehicle(vin string) entities.Vehicle {
	return entities.Vehicle{
		VIN: vin,
		Config: entities.VehicleConfig{
			Nickname:   "Skye",
			Model:      entities.ModelAir,
			Variant:    entities.VariantTouring,
			PaintColor: entities.PaintFathomBlue,
		},
		State: entities.VehicleState{
			PowerState: entities.PowerStateSleep,
			Battery: entities.BatteryState{
				RemainingPercent: 64,
				RemainingRange:   402.336,
			},
			Charging: entities.ChargingState{
				State:         entities.ChargeStateNotConnected,
				TimeRemaining: entities.ChargeSessionTimeUnknownMins,
			},
			Body: entities.BodyState{DoorLocks: entities.LockStateLocked},
			Chassis: entities.ChassisState{
				OdometerKm:             16093.44,
				FrontLeftTirePressure:  2.9,
				FrontRightTirePressure: entities.TirePressureUnknownBar,
			},
			Software: entities.SoftwareState{InstalledVersion: "2.6.5"},
			UpdatedAt: time.Date(2024, 11, 3, 15, 4, 5, 0, time.UTC),
		},
	}
}

func newTestServer(t *testing.T, query *fakeQuery) *Server {
	t.Helper()
	translator, err := i18n.NewTranslator("en", "", slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return NewServer(config.Default(), query, translator, slog.New(slog.DiscardHandler))
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthzReflectsAvailability(t *testing.T) {
	query := &fakeQuery{stats: input.PollStats{Available: true, Vehicles: 1}}
	s := newTestServer(t, query)

	rec := get(t, s, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(1), body["vehicles"])

	query.stats.Available = false
	rec = get(t, s, "/healthz")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body["status"])
}

func TestListVehicles(t *testing.T) {
	s := newTestServer(t, &fakeQuery{vehicles: []entities.Vehicle{webVehicle("LUJA123")}})

	rec := get(t, s, "/api/v1/vehicles")
	require.Equal(t, http.StatusOK, rec.Code)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "LUJA123", out[0]["vin"])
	assert.Equal(t, "Skye", out[0]["name"])
	assert.Equal(t, "Air Touring", out[0]["model"])
	assert.InDelta(t, 250, out[0]["range_mi"].(float64), 0.01)
	assert.Equal(t, "Not connected", out[0]["charging_status"])
	assert.Equal(t, "2024-11-03T15:04:05Z", out[0]["updated_at"])
}

func TestListVehiclesEmptyFleet(t *testing.T) {
	s := newTestServer(t, &fakeQuery{})

	rec := get(t, s, "/api/v1/vehicles")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestGetVehicleDetail(t *testing.T) {
	s := newTestServer(t, &fakeQuery{vehicles: []entities.Vehicle{webVehicle("LUJA123")}})

	rec := get(t, s, "/api/v1/vehicles/LUJA123")
	require.Equal(t, http.StatusOK, rec.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Fathom blue", out["paint_color"])
	assert.Equal(t, true, out["doors_locked"])
	assert.InDelta(t, 10000, out["odometer_mi"].(float64), 0.01)

	tires, ok := out["tires_psi"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 42.06, tires["front_left"].(float64), 0.01)
	assert.Nil(t, tires["front_right"], "sentinel pressure renders null")

	charging, ok := out["charging"].(map[string]any)
	require.True(t, ok)
	assert.Nil(t, charging["time_remaining_min"])

	software, ok := out["software"].(map[string]any)
	require.True(t, ok)
	_, hasAvailable := software["available"]
	assert.False(t, hasAvailable, "no offered build, no available field")
}

func TestGetVehicleNotFound(t *testing.T) {
	s := newTestServer(t, &fakeQuery{})

	rec := get(t, s, "/api/v1/vehicles/UNSEEN")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error": "vehicle not found"}`, rec.Body.String())
}

func TestGetStrings(t *testing.T) {
	s := newTestServer(t, &fakeQuery{})

	rec := get(t, s, "/api/v1/strings")
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Locale   string                       `json:"locale"`
		Locales  []string                     `json:"locales"`
		Entities map[string]map[string]string `json:"entities"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "en", out.Locale)
	assert.Contains(t, out.Locales, "en")
	assert.Equal(t, "Charging status", out.Entities["sensor"]["charging_status"])
	assert.Equal(t, "Frunk", out.Entities["binary_sensor"]["front_cargo"])
}

func TestGetStringsHonorsLangQuery(t *testing.T) {
	s := newTestServer(t, &fakeQuery{})

	rec := get(t, s, "/api/v1/strings?lang=de")
	require.Equal(t, http.StatusOK, rec.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "de", out["locale"])
}
