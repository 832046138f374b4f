package getsafe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	payload := map[string]any{"query": "agents site:go.dev", "n": 3}

	assert.Equal(t, "agents site:go.dev", String(payload, "query"))
	assert.Equal(t, "", String(payload, "n"))
	assert.Equal(t, "", String(payload, "missing"))
	assert.Equal(t, "", String(nil, "query"))
}

func TestInt(t *testing.T) {
	payload := map[string]any{
		"a": 3,
		"b": int64(4),
		"c": float64(5), // decoded JSON numbers arrive as float64
		"d": "6",
	}

	assert.Equal(t, 3, Int(payload, "a"))
	assert.Equal(t, 4, Int(payload, "b"))
	assert.Equal(t, 5, Int(payload, "c"))
	assert.Equal(t, 0, Int(payload, "d"))
	assert.Equal(t, 0, Int(payload, "missing"))
}

func TestMetadata(t *testing.T) {
	payload := map[string]any{"meta": map[string]any{"source": "utcp"}}

	assert.Equal(t, map[string]any{"source": "utcp"}, Metadata(payload, "meta"))
	assert.Nil(t, Metadata(payload, "missing"))
}
