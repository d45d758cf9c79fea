package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KrX3D/TizenTube2/internal/application/port/input"
)

func countingWrap(calls *int) func(input.DecodeFunc) input.DecodeFunc {
	return func(next input.DecodeFunc) input.DecodeFunc {
		return func(raw []byte) (any, error) {
			*calls++
			return next(raw)
		}
	}
}

func TestDecoderRegistry_WrapAllOnce(t *testing.T) {
	reg := NewDecoderRegistry()
	base := func(raw []byte) (any, error) { return string(raw), nil }
	reg.Register("JSON.parse", base)
	reg.Register("_yttv.a.JSON.parse", base)

	calls := 0
	assert.Equal(t, 2, reg.WrapAll(countingWrap(&calls)))
	assert.Equal(t, 0, reg.WrapAll(countingWrap(&calls)), "second install must not wrap again")

	decode, ok := reg.Get("JSON.parse")
	require.True(t, ok)
	out, err := decode([]byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "x", out)
	assert.Equal(t, 1, calls)
}

func TestDecoderRegistry_NewAliasWrappedLater(t *testing.T) {
	reg := NewDecoderRegistry()
	base := func(raw []byte) (any, error) { return nil, nil }
	reg.Register("a", base)

	calls := 0
	reg.WrapAll(countingWrap(&calls))
	reg.Register("b", base)

	assert.True(t, reg.IsWrapped("a"))
	assert.False(t, reg.IsWrapped("b"))
	assert.Equal(t, 1, reg.WrapAll(countingWrap(&calls)))
	assert.True(t, reg.IsWrapped("b"))
}

func TestDecoderRegistry_Names(t *testing.T) {
	reg := NewDecoderRegistry()
	reg.Register("b", nil)
	reg.Register("a", nil)

	assert.Equal(t, []string{"a", "b"}, reg.Names())

	_, ok := reg.Get("missing")
	assert.False(t, ok)
}
