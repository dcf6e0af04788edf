package i18n

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantRef string
		wantErr bool
	}{
		{name: "literal", in: "Charging status"},
		{name: "empty literal", in: ""},
		{name: "literal with brackets elsewhere", in: "50% [approx]"},
		{name: "reference", in: "[%key:common::config_flow::data::host%]", wantRef: "config_flow::data::host"},
		{name: "single segment reference", in: "[%key:common::generic%]", wantRef: "generic"},
		{name: "missing suffix", in: "[%key:common::host", wantErr: true},
		{name: "wrong namespace", in: "[%key:device::host%]", wantErr: true},
		{name: "no path", in: "[%key:common%]", wantErr: true},
		{name: "empty path segment", in: "[%key:common::a::::b%]", wantErr: true},
		{name: "trailing separator", in: "[%key:common::a::%]", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := ParseValue(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tc.wantRef != "" {
				assert.True(t, v.IsRef())
				assert.Equal(t, tc.wantRef, v.RefPath())
			} else {
				assert.False(t, v.IsRef())
			}
			// The wire form must survive a parse/format cycle.
			assert.Equal(t, tc.in, v.String())
		})
	}
}

func TestValueJSONRoundTrip(t *testing.T) {
	in := map[string]Value{
		"literal": Literal("Frunk"),
		"ref":     CommonRef("config_flow::data::host"),
	}
	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var out map[string]Value
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in, out)
}

const sampleDocument = `{
  "config": {
    "step": {
      "user": {
        "title": "Account",
        "description": "Sign in.",
        "data": {
          "host": "[%key:common::config_flow::data::host%]",
          "username": "Username"
        }
      }
    },
    "error": {
      "cannot_connect": "[%key:common::config_flow::error::cannot_connect%]"
    },
    "abort": {
      "already_configured": "Account is already configured"
    }
  },
  "entity": {
    "sensor": {
      "charging_status": { "name": "Charging status" }
    },
    "binary_sensor": {
      "front_cargo": { "name": "Frunk" }
    }
  }
}`

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleDocument))
	require.NoError(t, err)

	assert.Equal(t, "Charging status", doc.Entity["sensor"]["charging_status"].Name.String())
	assert.Equal(t, "Account", doc.Config.Step["user"].Title.String())
	assert.True(t, doc.Config.Step["user"].Data["host"].IsRef())
	assert.Equal(t, "Account is already configured", doc.Config.Abort["already_configured"].String())
}

func TestParseDocumentRejectsDuplicateKeys(t *testing.T) {
	raw := `{
	  "entity": {
	    "sensor": {
	      "charging_status": { "name": "Charging status" },
	      "charging_status": { "name": "Charge state" }
	    }
	  }
	}`
	_, err := ParseDocument([]byte(raw))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate key")
	assert.Contains(t, err.Error(), "charging_status")
}

func TestParseDocumentRejectsUnknownFields(t *testing.T) {
	_, err := ParseDocument([]byte(`{"configs": {}}`))
	require.Error(t, err)

	_, err = ParseDocument([]byte(`{"entity": {"sensor": {"speed": {"label": "Speed"}}}}`))
	require.Error(t, err)
}

// A parsed document must re-serialize to the same JSON, so translation
// files survive tooling round trips untouched.
func TestDocumentRoundTrip(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleDocument))
	require.NoError(t, err)

	table, err := NewTable(doc)
	require.NoError(t, err)

	raw, err := json.Marshal(table.Document())
	require.NoError(t, err)
	assert.JSONEq(t, sampleDocument, string(raw))
}
