package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Object(t *testing.T) {
	tree, err := Decode([]byte(`{"contents":{"items":[1,"a",null]}}`))
	require.NoError(t, err)

	m, ok := tree.(map[string]any)
	require.True(t, ok)
	items := m["contents"].(map[string]any)["items"].([]any)
	assert.Equal(t, []any{float64(1), "a", nil}, items)
}

func TestDecode_NotJSON(t *testing.T) {
	_, err := Decode([]byte(`)]}'` + "\n" + `{"a":1}`))
	assert.ErrorIs(t, err, ErrNotJSON)

	_, err = Decode(nil)
	assert.ErrorIs(t, err, ErrNotJSON)
}

func TestEncode_Compact(t *testing.T) {
	out, err := Encode(map[string]any{"b": 1, "a": []any{true}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":[true],"b":1}`, string(out))
}

func TestEncodeIndent(t *testing.T) {
	out, err := EncodeIndent(map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(out))
}

func TestEncode_Unsupported(t *testing.T) {
	_, err := Encode(map[string]any{"ch": make(chan int)})
	assert.Error(t, err)
}
