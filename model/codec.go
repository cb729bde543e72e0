package model

import (
	"fmt"
	"maps"
	"slices"

	"github.com/koolkav1/aem-spa-page-model-manager/ir"
)

// FromNode builds a model from an ir object.  Reserved keys must have
// their expected shape: strings for :type, :hierarchyType and :path, an
// object of objects for :items and :children and an array of strings for
// :itemsOrder.  The result satisfies the ItemsOrder invariant.
func FromNode(node *ir.Node) (*Model, error) {
	m, err := fromNode(node, "")
	if err != nil {
		return nil, err
	}
	m.Reconcile()
	return m, nil
}

func fromNode(node *ir.Node, at string) (*Model, error) {
	if node == nil || node.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w at %q", ErrNotObject, at)
	}
	m := New()
	var itemsDocOrder []string
	for i, f := range node.Fields {
		key := f.String
		val := node.Values[i]
		switch key {
		case TypeProp, HierarchyTypeProp, PathProp:
			if val.Type != ir.StringType {
				return nil, fmt.Errorf("%w: %s at %q is %s, want String", ErrReservedKey, key, at, val.Type)
			}
			if val.String == "" {
				m.blank |= scalarBit(key)
			}
			switch key {
			case TypeProp:
				m.Type = val.String
			case HierarchyTypeProp:
				m.HierarchyType = val.String
			case PathProp:
				m.Path = val.String
			}
		case ItemsOrderProp:
			if val.Type != ir.ArrayType {
				return nil, fmt.Errorf("%w: %s at %q is %s, want Array", ErrReservedKey, key, at, val.Type)
			}
			m.ItemsOrder = make([]string, 0, len(val.Values))
			for _, v := range val.Values {
				if v.Type != ir.StringType {
					return nil, fmt.Errorf("%w: %s at %q holds %s", ErrReservedKey, key, at, v.Type)
				}
				m.ItemsOrder = append(m.ItemsOrder, v.String)
			}
		case ItemsProp, ChildrenProp:
			if val.Type != ir.ObjectType {
				return nil, fmt.Errorf("%w: %s at %q is %s, want Object", ErrReservedKey, key, at, val.Type)
			}
			sub := make(map[string]*Model, len(val.Fields))
			var order []string
			for j, sf := range val.Fields {
				child, err := fromNode(val.Values[j], at+"/"+key+"/"+sf.String)
				if err != nil {
					return nil, err
				}
				sub[sf.String] = child
				order = append(order, sf.String)
			}
			if key == ChildrenProp {
				m.Children = sub
				continue
			}
			m.Items = sub
			itemsDocOrder = order
		default:
			m.Props.Set(key, val.Clone())
		}
	}
	if m.ItemsOrder == nil && m.Items != nil {
		m.ItemsOrder = itemsDocOrder
	}
	return m, nil
}

// ToNode converts m into an ir object.  Properties come first in their
// order, followed by the present reserved keys.  Items are written in
// ItemKeys order and children sorted by path.
func (m *Model) ToNode() *ir.Node {
	res := ir.Object()
	if m == nil {
		return res
	}
	for i, f := range m.Props.Keys() {
		res.Set(f, m.Props.Values[i].Clone())
	}
	if m.hasReserved(TypeProp) {
		res.Set(TypeProp, ir.FromString(m.Type))
	}
	if m.hasReserved(HierarchyTypeProp) {
		res.Set(HierarchyTypeProp, ir.FromString(m.HierarchyType))
	}
	if m.hasReserved(PathProp) {
		res.Set(PathProp, ir.FromString(m.Path))
	}
	if m.ItemsOrder != nil {
		order := make([]*ir.Node, len(m.ItemsOrder))
		for i, k := range m.ItemsOrder {
			order[i] = ir.FromString(k)
		}
		res.Set(ItemsOrderProp, ir.FromSlice(order))
	}
	if m.Items != nil {
		items := ir.Object()
		for _, k := range m.ItemKeys() {
			items.Set(k, m.Items[k].ToNode())
		}
		res.Set(ItemsProp, items)
	}
	if m.Children != nil {
		children := ir.Object()
		for _, k := range slices.Sorted(maps.Keys(m.Children)) {
			children.Set(k, m.Children[k].ToNode())
		}
		res.Set(ChildrenProp, children)
	}
	return res
}

// FromJSON decodes a JSON page model.
func FromJSON(d []byte) (*Model, error) {
	node, err := ir.FromJSON(d)
	if err != nil {
		return nil, err
	}
	return FromNode(node)
}

// ToJSON encodes m as JSON.
func (m *Model) ToJSON() ([]byte, error) {
	return ir.ToJSON(m.ToNode())
}

func (m *Model) MarshalJSON() ([]byte, error) {
	return m.ToJSON()
}

func (m *Model) UnmarshalJSON(d []byte) error {
	res, err := FromJSON(d)
	if err != nil {
		return err
	}
	*m = *res
	return nil
}

// FromYAML decodes a YAML page model.
func FromYAML(d []byte) (*Model, error) {
	node, err := ir.FromYAML(d)
	if err != nil {
		return nil, err
	}
	return FromNode(node)
}

// ToYAML encodes m as YAML.
func (m *Model) ToYAML() ([]byte, error) {
	return ir.ToYAML(m.ToNode())
}
