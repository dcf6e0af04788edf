package input

import (
	"context"
	"time"

	"github.com/borski/ha-lucidmotors/internal/domain/entities"
)

// PollStats describes the coordinator's recent activity.
type PollStats struct {
	LastRefresh time.Time
	Failures    int
	Vehicles    int
	Available   bool
}

// VehicleQuery reads the current fleet snapshot maintained by the
// polling coordinator. Snapshots are copies; callers may keep them.
type VehicleQuery interface {
	Vehicles() []entities.Vehicle
	Vehicle(vin string) (entities.Vehicle, error)
	// Subscribe registers a callback invoked after every refresh with
	// each vehicle's fresh snapshot. Callbacks run on the polling
	// goroutine and must not block.
	Subscribe(fn func(entities.Vehicle))
	// SubscribeAvailability registers a callback invoked when the
	// upstream API flips between reachable and unreachable.
	SubscribeAvailability(fn func(bool))
	// Available reports whether the upstream API is currently reachable.
	Available() bool
	Stats() PollStats
	// ReleaseNotes returns the plain-text notes for a software version.
	ReleaseNotes(ctx context.Context, version string) (string, error)
}
