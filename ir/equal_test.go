package ir

import (
	"slices"
	"testing"
)

func TestEqual(t *testing.T) {
	obj := func(kvs ...KeyVal) *Node { return FromKeyVals(kvs) }
	tests := []struct {
		name string
		a, b *Node
		want bool
	}{
		{"nulls", Null(), Null(), true},
		{"nil and null", nil, Null(), false},
		{"bools", FromBool(true), FromBool(true), true},
		{"bools differ", FromBool(true), FromBool(false), false},
		{"strings", FromString("a"), FromString("a"), true},
		{"string and number", FromString("1"), FromInt(1), false},
		{"int and float", FromInt(1), FromFloat(1.0), true},
		{"int and literal", FromInt(1), &Node{Type: NumberType, Number: "1"}, true},
		{"float and literal", FromFloat(2.5), &Node{Type: NumberType, Number: "2.50"}, true},
		{"numbers differ", FromInt(1), FromFloat(1.5), false},
		{"big literals", &Node{Type: NumberType, Number: "1e400"}, &Node{Type: NumberType, Number: "1e400"}, true},
		{"arrays", FromSlice([]*Node{FromInt(1), FromString("x")}), FromSlice([]*Node{FromInt(1), FromString("x")}), true},
		{"array order", FromSlice([]*Node{FromInt(1), FromInt(2)}), FromSlice([]*Node{FromInt(2), FromInt(1)}), false},
		{"array length", FromSlice(nil), FromSlice([]*Node{Null()}), false},
		{"empty objects", Object(), obj(), true},
		{"field order",
			obj(KeyVal{"a", FromInt(1)}, KeyVal{"b", FromInt(2)}),
			obj(KeyVal{"b", FromInt(2)}, KeyVal{"a", FromInt(1)}),
			true},
		{"object values",
			obj(KeyVal{"a", FromInt(1)}),
			obj(KeyVal{"a", FromInt(2)}),
			false},
		{"object keys",
			obj(KeyVal{"a", FromInt(1)}),
			obj(KeyVal{"b", FromInt(1)}),
			false},
		{"duplicate keys",
			obj(KeyVal{"a", FromInt(1)}, KeyVal{"a", FromInt(1)}),
			obj(KeyVal{"a", FromInt(1)}, KeyVal{"b", FromInt(1)}),
			false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(a, b) = %v, want %v", got, tt.want)
			}
			if got := Equal(tt.b, tt.a); got != tt.want {
				t.Errorf("Equal(b, a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCloneSharesNothing(t *testing.T) {
	orig := FromKeyVals([]KeyVal{
		{Key: "title", Val: FromString("Hello")},
		{Key: "tags", Val: FromSlice([]*Node{FromString("a"), FromInt(3)})},
	})
	c := orig.Clone()
	if !Equal(orig, c) {
		t.Fatal("clone differs from original")
	}
	c.Set("title", FromString("Bye"))
	*Get(c, "tags").Values[1].Int64 = 4
	Get(c, "tags").Values[0].String = "z"

	if got := Get(orig, "title").String; got != "Hello" {
		t.Errorf("original title = %q, want Hello", got)
	}
	if got := *Get(orig, "tags").Values[1].Int64; got != 3 {
		t.Errorf("original tags[1] = %d, want 3", got)
	}
	if got := Get(orig, "tags").Values[0].String; got != "a" {
		t.Errorf("original tags[0] = %q, want a", got)
	}
}

func TestSetDelete(t *testing.T) {
	n := Object()
	n.Set("a", FromInt(1))
	n.Set("b", FromInt(2))
	n.Set("a", FromInt(3))
	if got, want := n.Keys(), []string{"a", "b"}; !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if *Get(n, "a").Int64 != 3 {
		t.Errorf("a = %d, want 3", *Get(n, "a").Int64)
	}
	if !n.Delete("a") {
		t.Error("Delete(a) = false")
	}
	if n.Delete("a") {
		t.Error("second Delete(a) = true")
	}
	if n.Has("a") || !n.Has("b") || n.Len() != 1 {
		t.Errorf("unexpected object after delete: %v", n.Keys())
	}
}
