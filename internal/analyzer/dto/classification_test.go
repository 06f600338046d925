package dto

import (
	"encoding/json"
	"testing"

	"climate-narrative-analyzer/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAxisResult_MarshalValid(t *testing.T) {
	r := ValidAxisResult(map[string]string{"action": "FUEL_RESOLUTION"})

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"action": "FUEL_RESOLUTION"}`, string(b))
}

func TestAxisResult_MarshalErrorMarker(t *testing.T) {
	r := ErrorAxisResult("rate limited")

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error": "rate limited"}`, string(b))
}

func TestAxisResult_RoundTrip(t *testing.T) {
	original := ValidAxisResult(map[string]string{
		"hero_class":    "ENV.ORGS_ACTIVISTS",
		"villain_class": "INDUSTRY_EMISSIONS",
		"victim_class":  "NONE",
		"focus":         "HERO",
	})

	b, err := json.Marshal(original)
	require.NoError(t, err)

	restored, err := AxisResultFromJSON(b)
	require.NoError(t, err)
	assert.False(t, restored.Failed())
	assert.Equal(t, original.Fields, restored.Fields)
}

func TestAxisResult_UnmarshalErrorMarker(t *testing.T) {
	restored, err := AxisResultFromJSON([]byte(`{"error": "model unreachable"}`))
	require.NoError(t, err)

	assert.True(t, restored.Failed())
	assert.Equal(t, "model unreachable", restored.Err)
}

func TestAxisResult_ErrorFieldAmongOthersIsNotAMarker(t *testing.T) {
	restored, err := AxisResultFromJSON([]byte(`{"error": "x", "action": "FUEL_CONFLICT"}`))
	require.NoError(t, err)

	assert.False(t, restored.Failed())
	assert.Equal(t, "FUEL_CONFLICT", restored.Fields["action"])
}

func TestAxisResult_Label(t *testing.T) {
	valid := ValidAxisResult(map[string]string{"hero_class": "GENERAL_PUBLIC"})
	assert.Equal(t, "GENERAL_PUBLIC", valid.Label("hero_class"))
	assert.Equal(t, common.SentinelNone, valid.Label("villain_class"))

	failed := ErrorAxisResult("boom")
	assert.Equal(t, common.SentinelNone, failed.Label("hero_class"))
}

func TestAxisResult_UnmarshalKeepsNonStringScalars(t *testing.T) {
	restored, err := AxisResultFromJSON([]byte(`{"story": "EGALITARIAN", "confidence": 0.9}`))
	require.NoError(t, err)

	assert.False(t, restored.Failed())
	assert.Equal(t, "EGALITARIAN", restored.Fields["story"])
	assert.Equal(t, "0.9", restored.Fields["confidence"])
}
