package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/borski/ha-lucidmotors/internal/domain"
	"github.com/borski/ha-lucidmotors/internal/domain/entities"
	"github.com/borski/ha-lucidmotors/internal/ports/input"
	"github.com/borski/ha-lucidmotors/internal/ports/output"
)

const (
	// DefaultPollInterval paces steady-state refreshes. The API caps
	// mobile clients around this rate.
	DefaultPollInterval = 30 * time.Second
	// fastPollInterval is used while a command's effect is awaited.
	fastPollInterval = 5 * time.Second
	// fetchTimeout bounds one FetchVehicles round trip.
	fetchTimeout = 10 * time.Second
	// expectationWindow bounds how long a command probe stays armed.
	expectationWindow = 90 * time.Second
	// maxFailures flips availability after this many refresh errors.
	maxFailures = 3
)

var _ input.VehicleQuery = (*Coordinator)(nil)

// expectation is one armed post-command probe. baseline is the snapshot
// taken when the command was sent.
type expectation struct {
	vin      string
	baseline entities.Vehicle
	probe    func(old, cur entities.Vehicle) bool
	deadline time.Time
}

// Coordinator owns the session with the owner API and the fleet
// snapshot. One goroutine polls; readers get copies.
type Coordinator struct {
	api      output.VehicleAPI
	username string
	password string
	interval time.Duration
	logger   *slog.Logger

	refreshNow chan struct{}

	mu           sync.RWMutex
	vehicles     map[string]entities.Vehicle
	available    bool
	failures     int
	lastRefresh  time.Time
	subscribers  []func(entities.Vehicle)
	availSubs    []func(bool)
	expectations []expectation
}

// NewCoordinator wires the coordinator. interval of zero selects
// DefaultPollInterval.
func NewCoordinator(api output.VehicleAPI, username, password string, interval time.Duration, logger *slog.Logger) *Coordinator {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Coordinator{
		api:        api,
		username:   username,
		password:   password,
		interval:   interval,
		logger:     logger,
		refreshNow: make(chan struct{}, 1),
		vehicles:   make(map[string]entities.Vehicle),
	}
}

// Start logs in, stores the first snapshot and then polls until ctx is
// canceled. Invalid credentials are fatal; transient connectivity is
// retried in place.
func (c *Coordinator) Start(ctx context.Context) error {
	if err := c.login(ctx); err != nil {
		return err
	}

	timer := time.NewTimer(c.nextInterval())
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.refreshNow:
		case <-timer.C:
		}
		c.refresh(ctx)
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(c.nextInterval())
	}
}

func (c *Coordinator) login(ctx context.Context) error {
	loginCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	vehicles, err := c.api.Login(loginCtx, c.username, c.password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAuth) {
			return fmt.Errorf("login: %w", err)
		}
		c.recordFailure(err)
		return nil
	}
	c.store(vehicles)
	return nil
}

// refresh pulls a fresh snapshot. A stale session triggers one re-login,
// which itself carries the vehicle list.
func (c *Coordinator) refresh(ctx context.Context) {
	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	vehicles, err := c.api.FetchVehicles(fetchCtx)
	if errors.Is(err, domain.ErrSessionExpired) {
		c.logger.Info("session expired, logging in again")
		loginCtx, loginCancel := context.WithTimeout(ctx, fetchTimeout)
		vehicles, err = c.api.Login(loginCtx, c.username, c.password)
		loginCancel()
	}
	if err != nil {
		c.recordFailure(err)
		return
	}
	c.store(vehicles)
}

func (c *Coordinator) recordFailure(err error) {
	c.mu.Lock()
	c.failures++
	flipped := c.available && c.failures >= maxFailures
	if flipped {
		c.available = false
	}
	subs := append([]func(bool){}, c.availSubs...)
	failures := c.failures
	c.mu.Unlock()

	c.logger.Warn("refresh failed", "error", err, "consecutive", failures)
	if flipped {
		for _, fn := range subs {
			fn(false)
		}
	}
}

func (c *Coordinator) store(vehicles []entities.Vehicle) {
	c.mu.Lock()
	next := make(map[string]entities.Vehicle, len(vehicles))
	for _, v := range vehicles {
		next[v.VIN] = v
	}
	c.vehicles = next
	c.lastRefresh = time.Now()
	c.failures = 0
	flipped := !c.available
	c.available = true

	c.checkExpectationsLocked()

	subs := append([]func(entities.Vehicle){}, c.subscribers...)
	availSubs := append([]func(bool){}, c.availSubs...)
	c.mu.Unlock()

	if flipped {
		for _, fn := range availSubs {
			fn(true)
		}
	}
	for _, v := range vehicles {
		for _, fn := range subs {
			fn(v)
		}
	}
}

// checkExpectationsLocked drops probes that saw their change or expired.
// Callers hold c.mu.
func (c *Coordinator) checkExpectationsLocked() {
	now := time.Now()
	kept := c.expectations[:0]
	for _, exp := range c.expectations {
		cur, ok := c.vehicles[exp.vin]
		switch {
		case !ok:
			// vehicle left the account
		case exp.probe(exp.baseline, cur):
			c.logger.Debug("expected change observed", "vin", exp.vin)
		case now.After(exp.deadline):
			c.logger.Debug("expected change timed out", "vin", exp.vin)
		default:
			kept = append(kept, exp)
		}
	}
	c.expectations = kept
}

// nextInterval shortens the poll cadence while command probes are armed.
func (c *Coordinator) nextInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.expectations) > 0 {
		return fastPollInterval
	}
	return c.interval
}

// ExpectChange arms a probe after a command so the next polls come
// faster until the effect is visible. The current snapshot becomes the
// probe's baseline.
func (c *Coordinator) ExpectChange(vin string, probe func(old, cur entities.Vehicle) bool) {
	c.mu.Lock()
	baseline, ok := c.vehicles[vin]
	if ok {
		c.expectations = append(c.expectations, expectation{
			vin:      vin,
			baseline: baseline,
			probe:    probe,
			deadline: time.Now().Add(expectationWindow),
		})
	}
	c.mu.Unlock()
	c.RequestRefresh()
}

// RequestRefresh schedules an immediate poll without blocking.
func (c *Coordinator) RequestRefresh() {
	select {
	case c.refreshNow <- struct{}{}:
	default:
	}
}

// Vehicles returns the fleet snapshot sorted by VIN.
func (c *Coordinator) Vehicles() []entities.Vehicle {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]entities.Vehicle, 0, len(c.vehicles))
	for _, v := range c.vehicles {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VIN < out[j].VIN })
	return out
}

// Vehicle returns one vehicle's snapshot.
func (c *Coordinator) Vehicle(vin string) (entities.Vehicle, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.vehicles[vin]
	if !ok {
		return entities.Vehicle{}, fmt.Errorf("vin %s: %w", vin, domain.ErrVehicleNotFound)
	}
	return v, nil
}

// Subscribe registers a per-vehicle refresh callback.
func (c *Coordinator) Subscribe(fn func(entities.Vehicle)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// SubscribeAvailability registers an availability flip callback.
func (c *Coordinator) SubscribeAvailability(fn func(bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.availSubs = append(c.availSubs, fn)
}

// Available reports whether the last refreshes succeeded.
func (c *Coordinator) Available() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.available
}

// Stats summarizes the coordinator state for diagnostics.
func (c *Coordinator) Stats() input.PollStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return input.PollStats{
		LastRefresh: c.lastRefresh,
		Failures:    c.failures,
		Vehicles:    len(c.vehicles),
		Available:   c.available,
	}
}

// ReleaseNotes passes through to the API client, which caches them.
func (c *Coordinator) ReleaseNotes(ctx context.Context, version string) (string, error) {
	return c.api.ReleaseNotes(ctx, version)
}
