package ir

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
)

// FromAny converts a decoded Go value (as produced by encoding/json or
// go-yaml) into a node.  Plain maps produce objects with sorted fields;
// yaml.MapSlice keeps its order.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return x.Clone(), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint64:
		if x > 1<<63-1 {
			return &Node{Type: NumberType, Number: strconv.FormatUint(x, 10)}, nil
		}
		return FromInt(int64(x)), nil
	case float64:
		return FromFloat(x), nil
	case json.Number:
		return FromNumber(string(x)), nil
	case time.Time:
		return FromString(x.Format(time.RFC3339Nano)), nil
	case []any:
		res := &Node{Type: ArrayType, Values: make([]*Node, 0, len(x))}
		for _, xv := range x {
			n, err := FromAny(xv)
			if err != nil {
				return nil, err
			}
			res.Values = append(res.Values, n)
		}
		return res, nil
	case map[string]any:
		res := Object()
		for _, k := range slices.Sorted(maps.Keys(x)) {
			n, err := FromAny(x[k])
			if err != nil {
				return nil, err
			}
			res.Set(k, n)
		}
		return res, nil
	case yaml.MapSlice:
		res := Object()
		for _, item := range x {
			n, err := FromAny(item.Value)
			if err != nil {
				return nil, err
			}
			res.Set(keyString(item.Key), n)
		}
		return res, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupported, v)
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}

// ToAny converts y into plain Go values: nil, bool, int64, float64,
// string, []any and map[string]any.
func ToAny(y *Node) any {
	if y == nil {
		return nil
	}
	switch y.Type {
	case BoolType:
		return y.Bool
	case NumberType:
		switch {
		case y.Int64 != nil:
			return *y.Int64
		case y.Float64 != nil:
			return *y.Float64
		}
		return y.Number
	case StringType:
		return y.String
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = ToAny(v)
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(y.Fields))
		for i, f := range y.Fields {
			res[f.String] = ToAny(y.Values[i])
		}
		return res
	}
	return nil
}
