// Package codec is the JSON decode/encode pair the filter is installed on.
package codec

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"

	"github.com/KrX3D/TizenTube2/internal/application/port/input"
)

var ErrNotJSON = errors.New("payload is not valid JSON")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var _ input.DecodeFunc = Decode

// Decode parses raw into a generic tree of map[string]any and []any.
func Decode(raw []byte) (any, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrNotJSON
	}
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return tree, nil
}

func Encode(tree any) ([]byte, error) {
	out, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return out, nil
}

func EncodeIndent(tree any) ([]byte, error) {
	out, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return out, nil
}
