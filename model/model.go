package model

import (
	"maps"
	"slices"

	"github.com/koolkav1/aem-spa-page-model-manager/ir"
)

// Reserved property names of a page model.
const (
	TypeProp          = ":type"
	HierarchyTypeProp = ":hierarchyType"
	PathProp          = ":path"
	ItemsProp         = ":items"
	ItemsOrderProp    = ":itemsOrder"
	ChildrenProp      = ":children"
)

// Model is one unit of page model content.
//
// The reserved keys are typed fields.  A nil Items, ItemsOrder or Children
// means the key is absent.  An empty Type, HierarchyType or Path means the
// key is absent unless it was decoded as "" or set with SetEmpty.  Every
// other property lives in Props, an ir object whose field order is the
// source document order.
//
// ItemsOrder is kept a permutation of the keys of Items, see Reconcile.
type Model struct {
	Type          string
	HierarchyType string
	Path          string

	Items      map[string]*Model
	ItemsOrder []string
	Children   map[string]*Model

	Props *ir.Node

	// blank holds the scalar reserved keys present with an empty value.
	blank scalarSet
}

type scalarSet uint8

const (
	typeSet scalarSet = 1 << iota
	hierarchyTypeSet
	pathSet
)

func scalarBit(key string) scalarSet {
	switch key {
	case TypeProp:
		return typeSet
	case HierarchyTypeProp:
		return hierarchyTypeSet
	case PathProp:
		return pathSet
	}
	return 0
}

// New returns an empty model.
func New() *Model {
	return &Model{Props: ir.Object()}
}

// Clone returns a deep copy of m sharing no memory with m.
func (m *Model) Clone() *Model {
	if m == nil {
		return nil
	}
	res := &Model{
		Type:          m.Type,
		HierarchyType: m.HierarchyType,
		Path:          m.Path,
		Props:         m.Props.Clone(),
		blank:         m.blank,
	}
	if m.Items != nil {
		res.Items = make(map[string]*Model, len(m.Items))
		for k, v := range m.Items {
			res.Items[k] = v.Clone()
		}
	}
	if m.ItemsOrder != nil {
		res.ItemsOrder = slices.Clone(m.ItemsOrder)
	}
	if m.Children != nil {
		res.Children = make(map[string]*Model, len(m.Children))
		for k, v := range m.Children {
			res.Children[k] = v.Clone()
		}
	}
	return res
}

// Prop returns the value of a non reserved property, or nil.
func (m *Model) Prop(key string) *ir.Node {
	if m == nil {
		return nil
	}
	return ir.Get(m.Props, key)
}

// SetProp sets a non reserved property.
func (m *Model) SetProp(key string, v *ir.Node) {
	if m.Props == nil {
		m.Props = ir.Object()
	}
	m.Props.Set(key, v)
}

// Keys returns every key present on m: the present reserved keys followed
// by the property keys in order.
func (m *Model) Keys() []string {
	if m == nil {
		return nil
	}
	var res []string
	for _, k := range reservedKeys {
		if m.hasReserved(k) {
			res = append(res, k)
		}
	}
	return append(res, m.Props.Keys()...)
}

// Has reports whether key is present on m.
func (m *Model) Has(key string) bool {
	if m == nil {
		return false
	}
	if IsReserved(key) {
		return m.hasReserved(key)
	}
	return m.Props.Has(key)
}

// SetEmpty sets key to its empty value: the empty string for properties
// and scalar reserved keys, an empty collection for :items, :itemsOrder and
// :children.
func (m *Model) SetEmpty(key string) {
	switch key {
	case TypeProp:
		m.Type = ""
		m.blank |= typeSet
	case HierarchyTypeProp:
		m.HierarchyType = ""
		m.blank |= hierarchyTypeSet
	case PathProp:
		m.Path = ""
		m.blank |= pathSet
	case ItemsProp:
		if m.Items == nil {
			m.Items = map[string]*Model{}
		}
	case ItemsOrderProp:
		if m.ItemsOrder == nil {
			m.ItemsOrder = []string{}
		}
	case ChildrenProp:
		if m.Children == nil {
			m.Children = map[string]*Model{}
		}
	default:
		m.SetProp(key, ir.FromString(""))
	}
}

var reservedKeys = []string{
	TypeProp,
	HierarchyTypeProp,
	PathProp,
	ItemsOrderProp,
	ItemsProp,
	ChildrenProp,
}

// IsReserved reports whether key is one of the reserved property names.
func IsReserved(key string) bool {
	return slices.Contains(reservedKeys, key)
}

func (m *Model) hasReserved(key string) bool {
	switch key {
	case TypeProp:
		return m.Type != "" || m.blank&typeSet != 0
	case HierarchyTypeProp:
		return m.HierarchyType != "" || m.blank&hierarchyTypeSet != 0
	case PathProp:
		return m.Path != "" || m.blank&pathSet != 0
	case ItemsProp:
		return m.Items != nil
	case ItemsOrderProp:
		return m.ItemsOrder != nil
	case ChildrenProp:
		return m.Children != nil
	}
	return false
}

// ItemKeys returns the keys of Items in iteration order: the keys listed
// in ItemsOrder first, then any remaining keys sorted.
func (m *Model) ItemKeys() []string {
	if m == nil || len(m.Items) == 0 {
		return nil
	}
	res := make([]string, 0, len(m.Items))
	seen := make(map[string]bool, len(m.Items))
	for _, k := range m.ItemsOrder {
		if _, ok := m.Items[k]; ok && !seen[k] {
			seen[k] = true
			res = append(res, k)
		}
	}
	if len(res) == len(m.Items) {
		return res
	}
	for _, k := range slices.Sorted(maps.Keys(m.Items)) {
		if !seen[k] {
			res = append(res, k)
		}
	}
	return res
}

// Reconcile makes ItemsOrder a permutation of the keys of Items, keeping
// the listed order, dropping unknown and duplicate keys and appending
// unlisted keys sorted.  It recurses into items and children.
func (m *Model) Reconcile() {
	if m == nil {
		return
	}
	if m.Items != nil || m.ItemsOrder != nil {
		order := m.ItemKeys()
		if order == nil {
			order = []string{}
		}
		if m.Items == nil {
			m.Items = map[string]*Model{}
		}
		m.ItemsOrder = order
	}
	for _, v := range m.Items {
		v.Reconcile()
	}
	for _, v := range m.Children {
		v.Reconcile()
	}
}

// Equal reports whether a and b hold the same content.
func Equal(a, b *Model) bool {
	if a == nil || b == nil {
		return a == b
	}
	return ir.Equal(a.ToNode(), b.ToNode())
}
