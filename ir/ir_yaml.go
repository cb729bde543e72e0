package ir

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// FromYAML decodes a YAML document into a node, keeping mapping order.
func FromYAML(d []byte) (*Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return FromAny(v)
}

// ToYAML encodes y as YAML, with mappings in node field order.
func ToYAML(y *Node) ([]byte, error) {
	return yaml.Marshal(toYAMLValue(y))
}

func toYAMLValue(y *Node) any {
	if y == nil {
		return nil
	}
	switch y.Type {
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = toYAMLValue(v)
		}
		return res
	case ObjectType:
		res := make(yaml.MapSlice, len(y.Fields))
		for i, f := range y.Fields {
			res[i] = yaml.MapItem{Key: f.String, Value: toYAMLValue(y.Values[i])}
		}
		return res
	}
	return ToAny(y)
}
