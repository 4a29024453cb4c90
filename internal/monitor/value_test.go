package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextNative(t *testing.T) {
	c := Context{
		"name":    String("demo"),
		"count":   Int(3),
		"ratio":   Float(0.5),
		"enabled": Bool(true),
		"items":   List{String("a"), Int(1)},
		"nested":  Map{"inner": String("x")},
	}

	got := c.Native()
	assert.Equal(t, map[string]any{
		"name":    "demo",
		"count":   int64(3),
		"ratio":   0.5,
		"enabled": true,
		"items":   []any{"a", int64(1)},
		"nested":  map[string]any{"inner": "x"},
	}, got)
}

func TestEmptyContextNative(t *testing.T) {
	assert.NotNil(t, Context(nil).Native())
	assert.Empty(t, Context{}.Native())
}
