package configflow

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borski/ha-lucidmotors/internal/config"
	"github.com/borski/ha-lucidmotors/internal/domain"
	"github.com/borski/ha-lucidmotors/internal/infrastructure/i18n"
)

type loginCall struct {
	region   domain.Region
	username string
	password string
}

// scriptedLogin returns the queued errors in order, then succeeds.
type scriptedLogin struct {
	calls []loginCall
	errs  []error
}

func (s *scriptedLogin) login(_ context.Context, region domain.Region, username, password string) error {
	s.calls = append(s.calls, loginCall{region: region, username: username, password: password})
	if len(s.errs) == 0 {
		return nil
	}
	err := s.errs[0]
	s.errs = s.errs[1:]
	return err
}

func newTestFlow(t *testing.T, login LoginFunc, input string) (*Flow, *bytes.Buffer) {
	t.Helper()
	translator, err := i18n.NewTranslator("en", "", slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	out := &bytes.Buffer{}
	flow := New(translator, login, "en", strings.NewReader(input), out, slog.New(slog.DiscardHandler))
	return flow, out
}

// One setup attempt reads host, username, password and the region choice.
func answers(host, username, password, choice string) string {
	return strings.Join([]string{host, username, password, choice}, "\n") + "\n"
}

func TestFlowWritesConfigOnSuccess(t *testing.T) {
	login := &scriptedLogin{}
	flow, out := newTestFlow(t, login.login, answers("", "owner@example.com", "hunter2", "3"))
	path := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, flow.Run(context.Background(), path))

	require.Len(t, login.calls, 1)
	assert.Equal(t, "owner@example.com", login.calls[0].username)
	assert.Equal(t, "hunter2", login.calls[0].password)
	assert.Equal(t, "Europe", login.calls[0].region.Name)

	cfg, err := config.FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", cfg.Lucid.Username)
	assert.Equal(t, "hunter2", cfg.Lucid.Password)
	assert.Equal(t, "Europe", cfg.Lucid.Region)
	assert.Equal(t, "en", cfg.Locale)
	assert.Empty(t, cfg.Lucid.Host)

	text := out.String()
	assert.Contains(t, text, "== Lucid Motors account ==")
	assert.Contains(t, text, "Sign in with the account used in the Lucid mobile app.")
	assert.Contains(t, text, "Username: ")
	assert.Contains(t, text, "1. United States")
	assert.Contains(t, text, "Configuration written to "+path)
}

func TestFlowHostOverride(t *testing.T) {
	login := &scriptedLogin{}
	flow, _ := newTestFlow(t, login.login, answers("https://gw.example.com", "owner@example.com", "hunter2", ""))
	path := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, flow.Run(context.Background(), path))

	require.Len(t, login.calls, 1)
	assert.Equal(t, "https://gw.example.com", login.calls[0].region.APIHost)

	cfg, err := config.FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://gw.example.com", cfg.Lucid.Host)
	assert.Equal(t, domain.DefaultRegion.Name, cfg.Lucid.Region)
}

func TestFlowRetriesInvalidAuth(t *testing.T) {
	login := &scriptedLogin{errs: []error{domain.ErrInvalidAuth, nil}}
	input := answers("", "owner@example.com", "wrong", "") +
		answers("", "owner@example.com", "hunter2", "")
	flow, out := newTestFlow(t, login.login, input)
	path := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, flow.Run(context.Background(), path))

	assert.Len(t, login.calls, 2)
	assert.Contains(t, out.String(), "Invalid authentication")

	cfg, err := config.FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", cfg.Lucid.Password)
}

func TestFlowGivesUpAfterThreeAttempts(t *testing.T) {
	login := &scriptedLogin{errs: []error{domain.ErrInvalidAuth, domain.ErrInvalidAuth, domain.ErrInvalidAuth}}
	input := strings.Repeat(answers("", "owner@example.com", "wrong", ""), 3)
	flow, out := newTestFlow(t, login.login, input)
	path := filepath.Join(t.TempDir(), "config.toml")

	err := flow.Run(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")

	assert.Len(t, login.calls, 3)
	assert.Equal(t, 3, strings.Count(out.String(), "Invalid authentication"))

	_, err = config.FromFile(path)
	assert.Error(t, err)
}

func TestFlowReportsConnectionFailure(t *testing.T) {
	login := &scriptedLogin{errs: []error{domain.ErrCannotConnect, nil}}
	input := answers("", "owner@example.com", "hunter2", "") +
		answers("", "owner@example.com", "hunter2", "")
	flow, out := newTestFlow(t, login.login, input)

	require.NoError(t, flow.Run(context.Background(), filepath.Join(t.TempDir(), "config.toml")))
	assert.Contains(t, out.String(), "Failed to connect")
}

func TestFlowAbortsWhenAccountConfigured(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	existing := config.Default()
	existing.Lucid.Username = "owner@example.com"
	existing.Lucid.Password = "original-secret"
	require.NoError(t, existing.Write(path))

	login := &scriptedLogin{}
	flow, out := newTestFlow(t, login.login, answers("", "owner@example.com", "hunter2", ""))

	require.NoError(t, flow.Run(context.Background(), path))

	assert.Empty(t, login.calls)
	assert.Contains(t, out.String(), "Account is already configured")

	cfg, err := config.FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original-secret", cfg.Lucid.Password)
}

func TestFlowUnrecognizedRegionChoiceUsesDefault(t *testing.T) {
	login := &scriptedLogin{}
	flow, out := newTestFlow(t, login.login, answers("", "owner@example.com", "hunter2", "9"))

	require.NoError(t, flow.Run(context.Background(), filepath.Join(t.TempDir(), "config.toml")))

	require.Len(t, login.calls, 1)
	assert.Equal(t, domain.DefaultRegion.Name, login.calls[0].region.Name)
	assert.Contains(t, out.String(), "Unrecognized choice")
}

func TestFlowClosedInputFails(t *testing.T) {
	login := &scriptedLogin{}
	flow, _ := newTestFlow(t, login.login, "")

	err := flow.Run(context.Background(), filepath.Join(t.TempDir(), "config.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input closed")
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "invalid_auth", errorCode(domain.ErrInvalidAuth))
	assert.Equal(t, "cannot_connect", errorCode(domain.ErrCannotConnect))
	assert.Equal(t, "cannot_connect", errorCode(context.DeadlineExceeded))
	assert.Equal(t, "unknown", errorCode(errors.New("boom")))
}
