package i18n

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTable(t *testing.T, raw string) *Table {
	t.Helper()
	doc, err := ParseDocument([]byte(raw))
	require.NoError(t, err)
	table, err := NewTable(doc)
	require.NoError(t, err)
	return table
}

func TestNewTableRejectsUnknownDomain(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"entity": {"fan": {"cabin": {"name": "Cabin fan"}}}}`))
	require.NoError(t, err)

	_, err = NewTable(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fan")
}

func TestNewTableRejectsEmptyName(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"entity": {"sensor": {"speed": {"name": ""}}}}`))
	require.NoError(t, err)

	_, err = NewTable(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sensor.speed")
}

func TestTableLookups(t *testing.T) {
	table := mustTable(t, sampleDocument)

	name, err := table.EntityName("sensor", "charging_status")
	require.NoError(t, err)
	assert.Equal(t, "Charging status", name.String())

	_, err = table.EntityName("sensor", "warp_drive")
	require.ErrorIs(t, err, ErrMissingKey)

	_, err = table.EntityName("lock", "charging_status")
	require.ErrorIs(t, err, ErrMissingKey)

	title, err := table.StepTitle("user")
	require.NoError(t, err)
	assert.Equal(t, "Account", title.String())

	_, err = table.StepTitle("reauth")
	require.ErrorIs(t, err, ErrMissingKey)

	field, err := table.ConfigField("user", "username")
	require.NoError(t, err)
	assert.Equal(t, "Username", field.String())

	_, err = table.ConfigField("user", "token")
	require.ErrorIs(t, err, ErrMissingKey)

	abort, err := table.FlowAbort("already_configured")
	require.NoError(t, err)
	assert.NotEmpty(t, abort.String())

	_, err = table.FlowError("timeout")
	require.ErrorIs(t, err, ErrMissingKey)
}

func TestTableDomainsAndKeysSorted(t *testing.T) {
	table := mustTable(t, sampleDocument)
	assert.Equal(t, []string{"binary_sensor", "sensor"}, table.Domains())
	assert.Equal(t, []string{"front_cargo"}, table.Keys("binary_sensor"))
	assert.Empty(t, table.Keys("cover"))
}

// The embedded catalog is the one the bridge actually ships; pin the
// names integrations depend on.
func TestEmbeddedCatalog(t *testing.T) {
	table, common, resolved, err := loadEmbedded()
	require.NoError(t, err)
	require.NotNil(t, common)

	tests := []struct {
		domain, key, want string
	}{
		{"sensor", "charging_status", "Charging status"},
		{"binary_sensor", "front_cargo", "Frunk"},
		{"cover", "front_cargo", "Frunk"},
		{"binary_sensor", "rear_cargo", "Trunk"},
		{"number", "charging_target", "Charge limit"},
	}
	for _, tc := range tests {
		name, err := resolved.EntityName(tc.domain, tc.key)
		require.NoError(t, err, "%s.%s", tc.domain, tc.key)
		assert.Equal(t, tc.want, name.String())
	}

	// The raw table keeps references; the resolved one must not.
	host, err := table.ConfigField("user", "host")
	require.NoError(t, err)
	assert.True(t, host.IsRef())

	host, err = resolved.ConfigField("user", "host")
	require.NoError(t, err)
	assert.False(t, host.IsRef())
	assert.Equal(t, "Host", host.String())

	abort, err := resolved.FlowAbort("already_configured")
	require.NoError(t, err)
	assert.Equal(t, "Account is already configured", abort.String())

	for _, code := range []string{"cannot_connect", "invalid_auth", "unknown"} {
		text, err := resolved.FlowError(code)
		require.NoError(t, err, code)
		assert.NotEmpty(t, text.String())
		assert.False(t, text.IsRef())
	}

	// Every domain present in the shipped catalog must be a known one.
	for _, dom := range resolved.Domains() {
		assert.True(t, knownDomains[dom], dom)
	}
}

func TestEmbeddedCatalogFullyResolved(t *testing.T) {
	table, common, _, err := loadEmbedded()
	require.NoError(t, err)

	_, issues := table.Resolved(common)
	assert.Empty(t, issues)
}

func TestResolvedKeepsRawFormOnMiss(t *testing.T) {
	table := mustTable(t, `{"entity": {"sensor": {"speed": {"name": "[%key:common::missing::leaf%]"}}}}`)
	common, err := ParseCommon([]byte(`{"generic": {"on": "On"}}`))
	require.NoError(t, err)

	resolved, issues := table.Resolved(common)
	require.Len(t, issues, 1)
	assert.True(t, errors.Is(issues[0], ErrUnresolvedRef))

	name, err := resolved.EntityName("sensor", "speed")
	require.NoError(t, err)
	assert.Equal(t, "[%key:common::missing::leaf%]", name.String())
}
