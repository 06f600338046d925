package jsonextract

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw json.RawMessage) map[string]string {
	t.Helper()
	var m map[string]string
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestExtract_DirectObject(t *testing.T) {
	obj, err := Extract(`{"action": "FUEL_CONFLICT"}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"action": "FUEL_CONFLICT"}, decode(t, obj))
}

func TestExtract_DirectObjectWithWhitespace(t *testing.T) {
	obj, err := Extract("\n  {\"story\": \"EGALITARIAN\"}\n")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"story": "EGALITARIAN"}, decode(t, obj))
}

func TestExtract_FencedBlock(t *testing.T) {
	raw := "Here is the classification:\n```json\n{\"story\": \"EGALITARIAN\"}\n```\nLet me know if you need more."
	obj, err := Extract(raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"story": "EGALITARIAN"}, decode(t, obj))
}

func TestExtract_FencedBlockWithoutLanguageTag(t *testing.T) {
	raw := "```\n{\"action\": \"PREVENT_CONFLICT\"}\n```"
	obj, err := Extract(raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"action": "PREVENT_CONFLICT"}, decode(t, obj))
}

func TestExtract_BraceSpanInProse(t *testing.T) {
	raw := `Based on the article, the result is {"hero_class": "GENERAL_PUBLIC", "villain_class": "NONE", "victim_class": "ANIMALS_NATURE_ENVIRONMENT", "focus": "VICTIM"} as requested.`
	obj, err := Extract(raw)
	require.NoError(t, err)
	got := decode(t, obj)
	assert.Equal(t, "GENERAL_PUBLIC", got["hero_class"])
	assert.Equal(t, "VICTIM", got["focus"])
}

func TestExtract_BracesInsideStringValues(t *testing.T) {
	raw := `Note: {"story": "HIERARCHICAL", "comment": "uses {braces} inside"} trailing text`
	obj, err := Extract(raw)
	require.NoError(t, err)
	assert.Equal(t, "HIERARCHICAL", decode(t, obj)["story"])
}

func TestExtract_NoRecoverableObject(t *testing.T) {
	_, err := Extract("I cannot classify this article, sorry.")
	require.Error(t, err)

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestExtract_EmptyInput(t *testing.T) {
	_, err := Extract("")
	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}
