package ir

import (
	"math"
	"math/big"
)

// Equal reports whether a and b hold the same value.
//
// Objects are equal when they hold the same keys with equal values,
// whatever the field order.  Arrays are compared element by element.
// Numbers are equal when they denote the same value, so 1 and 1.0 are
// equal whether they are held as Int64, Float64 or a Number literal.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case StringType:
		return a.String == b.String
	case NumberType:
		return sameNumber(a, b)
	case ArrayType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case ObjectType:
		return sameFields(a, b)
	}
	return false
}

func sameFields(a, b *Node) bool {
	if len(a.Fields) != len(b.Fields) {
		return false
	}
	bm := ToMap(b)
	if len(bm) != len(b.Fields) {
		// duplicate keys in b
		return false
	}
	for i, f := range a.Fields {
		bv, ok := bm[f.String]
		if !ok || !Equal(a.Values[i], bv) {
			return false
		}
		delete(bm, f.String)
	}
	return true
}

func sameNumber(a, b *Node) bool {
	if a.Int64 != nil && b.Int64 != nil {
		return *a.Int64 == *b.Int64
	}
	x, xok := numberValue(a)
	y, yok := numberValue(b)
	if !xok || !yok {
		return a.Int64 == nil && b.Int64 == nil && a.Float64 == nil && b.Float64 == nil &&
			a.Number == b.Number
	}
	return x.Cmp(y) == 0
}

// numberValue returns the exact value of n.  It is false for literals
// which do not parse, such as out of range exponents.
func numberValue(n *Node) (*big.Rat, bool) {
	switch {
	case n.Int64 != nil:
		return new(big.Rat).SetInt64(*n.Int64), true
	case n.Float64 != nil:
		f := *n.Float64
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false
		}
		return new(big.Rat).SetFloat64(f), true
	}
	return new(big.Rat).SetString(n.Number)
}
