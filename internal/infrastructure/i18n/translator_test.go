package i18n

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTranslator(t *testing.T, locale, extraDir string) *Translator {
	t.Helper()
	tr, err := NewTranslator(locale, extraDir, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return tr
}

func TestTranslatorEntityName(t *testing.T) {
	tr := newTranslator(t, "en", "")

	name, err := tr.EntityName("en", "sensor", "charging_status")
	require.NoError(t, err)
	assert.Equal(t, "Charging status", name)

	name, err = tr.EntityName("en", "cover", "front_cargo")
	require.NoError(t, err)
	assert.Equal(t, "Frunk", name)

	// A miss is soft: raw key back, ErrMissingKey reported.
	name, err = tr.EntityName("en", "sensor", "flux_capacitor")
	require.ErrorIs(t, err, ErrMissingKey)
	assert.Equal(t, "flux_capacitor", name)
}

func TestTranslatorFlowText(t *testing.T) {
	tr := newTranslator(t, "en", "")

	title, err := tr.StepTitle("en", "user")
	require.NoError(t, err)
	assert.Equal(t, "Lucid Motors account", title)

	host, err := tr.ConfigField("en", "user", "host")
	require.NoError(t, err)
	assert.Equal(t, "Host", host)

	text, err := tr.FlowError("en", "invalid_auth")
	require.NoError(t, err)
	assert.Equal(t, "Invalid authentication", text)

	abort, err := tr.FlowAbort("en", "already_configured")
	require.NoError(t, err)
	assert.Equal(t, "Account is already configured", abort)

	// Unknown codes fall back to the code itself.
	text, err = tr.FlowError("en", "rate_limited")
	require.ErrorIs(t, err, ErrMissingKey)
	assert.Equal(t, "rate_limited", text)
}

func TestTranslatorFallsBackToDefaultLocale(t *testing.T) {
	tr := newTranslator(t, "en", "")

	name, err := tr.EntityName("de", "sensor", "charging_status")
	require.NoError(t, err)
	assert.Equal(t, "Charging status", name)
}

func TestTranslatorLoadsExtraLocales(t *testing.T) {
	dir := t.TempDir()
	de := `{
	  "entity": {
	    "sensor": {
	      "charging_status": { "name": "Ladestatus" }
	    }
	  }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "de.json"), []byte(de), 0o644))
	// Broken files are skipped, they must not take the catalog down.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fr.json"), []byte(`{"entity": {`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	tr := newTranslator(t, "en", dir)

	name, err := tr.EntityName("de", "sensor", "charging_status")
	require.NoError(t, err)
	assert.Equal(t, "Ladestatus", name)

	// Keys the overlay does not carry fall back to the default locale.
	name, err = tr.EntityName("de", "binary_sensor", "front_cargo")
	require.NoError(t, err)
	assert.Equal(t, "Frunk", name)

	assert.Contains(t, tr.Locales(), "de")
	assert.Contains(t, tr.Locales(), "en")
}

func TestTranslatorEntityCatalog(t *testing.T) {
	tr := newTranslator(t, "en", "")

	catalog := tr.EntityCatalog("en")
	require.Contains(t, catalog, "sensor")
	assert.Equal(t, "Charging status", catalog["sensor"]["charging_status"])
	assert.Equal(t, "Frunk", catalog["binary_sensor"]["front_cargo"])
	assert.Equal(t, "Frunk", catalog["cover"]["front_cargo"])
}
