package model

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
)

// ApplyPatch applies an RFC 6902 JSON patch document to a copy of m.
// Object keys of the result come back in the order json-patch writes them.
func (m *Model) ApplyPatch(patch []byte) (*Model, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("decoding json patch: %w", err)
	}
	d, err := m.ToJSON()
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("applying json patch: %w", err)
	}
	return FromJSON(out)
}

// MergePatch applies an RFC 7386 JSON merge patch to a copy of m.
func (m *Model) MergePatch(patch []byte) (*Model, error) {
	d, err := m.ToJSON()
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(d, patch)
	if err != nil {
		return nil, fmt.Errorf("applying merge patch: %w", err)
	}
	return FromJSON(out)
}
