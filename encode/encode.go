// Package encode writes page models and ir values as JSON or YAML,
// optionally with terminal colors.
package encode

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/koolkav1/aem-spa-page-model-manager/format"
	"github.com/koolkav1/aem-spa-page-model-manager/ir"
	"github.com/koolkav1/aem-spa-page-model-manager/model"
)

type EncState struct {
	format format.Format
	indent int
	Color  func(ir.Type, ColorAttr, string) string
}

func newState(opts []EncodeOption) *EncState {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

// Encode writes node to w followed by a newline.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := newState(opts)
	var buf bytes.Buffer
	switch es.format {
	case format.YAMLFormat:
		d, err := ir.ToYAML(node)
		if err != nil {
			return err
		}
		if es.Color != nil {
			d = []byte(colorYAML(d, es))
		}
		buf.Write(d)
	case format.JSONFormat:
		if err := es.encodeJSON(&buf, node, 0); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %d", format.ErrBadFormat, es.format)
	}
	if !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
		buf.WriteByte('\n')
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// EncodeModel writes m to w.
func EncodeModel(m *model.Model, w io.Writer, opts ...EncodeOption) error {
	return Encode(m.ToNode(), w, opts...)
}

func (es *EncState) newline(buf *bytes.Buffer, depth int) {
	if es.indent <= 0 {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(" ", depth*es.indent))
}

func (es *EncState) encodeJSON(buf *bytes.Buffer, y *ir.Node, depth int) error {
	if y == nil {
		y = ir.Null()
	}
	switch y.Type {
	case ir.ObjectType:
		if len(y.Fields) == 0 {
			buf.WriteString(es.color(ir.ObjectType, SepColor, "{}"))
			return nil
		}
		buf.WriteString(es.color(ir.ObjectType, SepColor, "{"))
		for i, f := range y.Fields {
			if i > 0 {
				buf.WriteString(es.color(ir.ObjectType, SepColor, ","))
			}
			es.newline(buf, depth+1)
			key, err := ir.ToJSON(f)
			if err != nil {
				return err
			}
			attr := FieldColor
			if model.IsReserved(f.String) {
				attr = ReservedColor
			}
			buf.WriteString(es.color(ir.ObjectType, attr, string(key)))
			buf.WriteString(es.color(ir.ObjectType, SepColor, ":"))
			if es.indent > 0 {
				buf.WriteByte(' ')
			}
			if err := es.encodeJSON(buf, y.Values[i], depth+1); err != nil {
				return err
			}
		}
		es.newline(buf, depth)
		buf.WriteString(es.color(ir.ObjectType, SepColor, "}"))
	case ir.ArrayType:
		if len(y.Values) == 0 {
			buf.WriteString(es.color(ir.ArrayType, SepColor, "[]"))
			return nil
		}
		buf.WriteString(es.color(ir.ArrayType, SepColor, "["))
		for i, v := range y.Values {
			if i > 0 {
				buf.WriteString(es.color(ir.ArrayType, SepColor, ","))
			}
			es.newline(buf, depth+1)
			if err := es.encodeJSON(buf, v, depth+1); err != nil {
				return err
			}
		}
		es.newline(buf, depth)
		buf.WriteString(es.color(ir.ArrayType, SepColor, "]"))
	default:
		d, err := ir.ToJSON(y)
		if err != nil {
			return err
		}
		buf.WriteString(es.color(y.Type, ValueColor, string(d)))
	}
	return nil
}

// MustString encodes node, panicking on error.
func MustString(node *ir.Node, opts ...EncodeOption) string {
	var buf bytes.Buffer
	if err := Encode(node, &buf, opts...); err != nil {
		panic(err)
	}
	return buf.String()
}
