package encode

import (
	"github.com/fatih/color"

	"github.com/koolkav1/aem-spa-page-model-manager/ir"
)

// ColorAttr is the role of a piece of encoded output.
type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
	ReservedColor
)

// Colors is the palette of colored output.  A nil entry leaves its text
// uncolored.
type Colors struct {
	Field    *color.Color
	Reserved *color.Color
	Sep      *color.Color
	Values   map[ir.Type]*color.Color
}

func NewColors() *Colors {
	return &Colors{
		Field:    color.New(color.FgBlue),
		Reserved: color.New(color.FgYellow, color.Bold),
		Sep:      color.New(color.FgHiBlack),
		Values: map[ir.Type]*color.Color{
			ir.StringType: color.New(color.FgGreen),
			ir.NumberType: color.New(color.FgCyan),
			ir.BoolType:   color.New(color.FgMagenta),
			ir.NullType:   color.New(color.FgRed),
		},
	}
}

// Color colors s, a value of type t when a is ValueColor.
func (c *Colors) Color(t ir.Type, a ColorAttr, s string) string {
	var cc *color.Color
	switch a {
	case FieldColor:
		cc = c.Field
	case ReservedColor:
		cc = c.Reserved
	case SepColor:
		cc = c.Sep
	case ValueColor:
		cc = c.Values[t]
	}
	if cc == nil {
		return s
	}
	return cc.Sprint(s)
}
