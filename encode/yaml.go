package encode

import (
	"strings"

	"github.com/goccy/go-yaml/lexer"
	"github.com/goccy/go-yaml/printer"

	"github.com/koolkav1/aem-spa-page-model-manager/ir"
)

func colorYAML(d []byte, es *EncState) string {
	prop := func(t ir.Type, a ColorAttr) printer.PrintFunc {
		return func() *printer.Property {
			prefix, suffix, _ := strings.Cut(es.color(t, a, "\x00"), "\x00")
			return &printer.Property{Prefix: prefix, Suffix: suffix}
		}
	}
	p := &printer.Printer{
		MapKey: prop(ir.ObjectType, FieldColor),
		Bool:   prop(ir.BoolType, ValueColor),
		String: prop(ir.StringType, ValueColor),
		Number: prop(ir.NumberType, ValueColor),
	}
	return p.PrintTokens(lexer.Tokenize(string(d)))
}
