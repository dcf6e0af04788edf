package output

import (
	"context"

	"github.com/borski/ha-lucidmotors/internal/domain/entities"
)

// VehicleAPI is the owner-account gateway. Login establishes the session
// and, like the mobile app, already returns the vehicle list; commands
// act on one VIN. Implementations map transport failures to
// domain.ErrCannotConnect, rejected credentials to domain.ErrInvalidAuth
// and a stale session to domain.ErrSessionExpired.
type VehicleAPI interface {
	Login(ctx context.Context, username, password string) ([]entities.Vehicle, error)
	FetchVehicles(ctx context.Context) ([]entities.Vehicle, error)

	LockDoors(ctx context.Context, vin string) error
	UnlockDoors(ctx context.Context, vin string) error
	ChargeControl(ctx context.Context, vin string, on bool) error
	SetChargeLimit(ctx context.Context, vin string, percent int) error
	FrunkControl(ctx context.Context, vin string, open bool) error
	TrunkControl(ctx context.Context, vin string, open bool) error
	ChargePortControl(ctx context.Context, vin string, open bool) error
	WindowControl(ctx context.Context, vin string, position entities.WindowPosition) error
	LightsControl(ctx context.Context, vin string, state entities.LightState) error
	HonkHorn(ctx context.Context, vin string) error
	WakeUp(ctx context.Context, vin string) error
	AlarmControl(ctx context.Context, vin string, mode entities.AlarmMode) error
	SeatClimateControl(ctx context.Context, vin string, seats entities.SeatClimateState) error
	SteeringHeaterControl(ctx context.Context, vin string, level entities.SeatClimateLevel) error
	DefrostControl(ctx context.Context, vin string, on bool) error
	MaxACControl(ctx context.Context, vin string, on bool) error
	HvacControl(ctx context.Context, vin string, power entities.HvacPower, targetTemp float64) error
	ApplySoftwareUpdate(ctx context.Context, vin string) error

	// ReleaseNotes fetches the human-readable notes for an offered OTA
	// version. Results are cached by implementations.
	ReleaseNotes(ctx context.Context, version string) (string, error)
}
