package lint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptions(t *testing.T) {
	opts := Options{
		"max":      float64(3),
		"limit":    7,
		"big":      int64(9),
		"name":     "x",
		"strict":   true,
		"allowed":  []any{"a", 1, "b"},
		"typed":    []string{"c"},
		"wrongInt": "3",
	}

	assert.Equal(t, 3, opts.Int("max", 0))
	assert.Equal(t, 7, opts.Int("limit", 0))
	assert.Equal(t, 9, opts.Int("big", 0))
	assert.Equal(t, 5, opts.Int("wrongInt", 5))
	assert.Equal(t, 5, opts.Int("missing", 5))

	assert.Equal(t, "x", opts.String("name", "d"))
	assert.Equal(t, "d", opts.String("max", "d"))

	assert.True(t, opts.Bool("strict", false))
	assert.True(t, opts.Bool("missing", true))

	assert.Equal(t, []string{"a", "b"}, opts.StringSlice("allowed", nil))
	assert.Equal(t, []string{"c"}, opts.StringSlice("typed", nil))
	assert.Equal(t, []string{"z"}, opts.StringSlice("name", []string{"z"}))

	assert.Equal(t, true, Option(opts, "strict", false))
}

func TestOptions_IntOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int
	}{
		{name: "max uint64", value: uint64(math.MaxUint64), want: -1},
		{name: "huge float", value: 1e30, want: -1},
		{name: "fractional float", value: 2.5, want: -1},
		{name: "negative float", value: float64(-4), want: -4},
		{name: "small uint64", value: uint64(12), want: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Options{"n": tt.value}.Int("n", -1))
		})
	}
}

func TestOptions_Nil(t *testing.T) {
	var opts Options
	assert.Equal(t, 1, opts.Int("a", 1))
	assert.Equal(t, "s", opts.String("a", "s"))
	assert.Nil(t, opts.StringSlice("a", nil))
}
