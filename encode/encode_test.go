package encode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"

	"github.com/koolkav1/aem-spa-page-model-manager/format"
	"github.com/koolkav1/aem-spa-page-model-manager/ir"
	"github.com/koolkav1/aem-spa-page-model-manager/model"
)

const doc = `{"a": 1, "b": [true, null], "c": {}, "d": "<p>x</p>"}`

func mustNode(t *testing.T, js string) *ir.Node {
	t.Helper()
	n, err := ir.FromJSON([]byte(js))
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestEncodeJSON(t *testing.T) {
	want := `{
  "a": 1,
  "b": [
    true,
    null
  ],
  "c": {},
  "d": "<p>x</p>"
}
`
	if diff := cmp.Diff(want, MustString(mustNode(t, doc))); diff != "" {
		t.Errorf("indented (-want +got):\n%s", diff)
	}
	compact := `{"a":1,"b":[true,null],"c":{},"d":"<p>x</p>"}` + "\n"
	if diff := cmp.Diff(compact, MustString(mustNode(t, doc), Indent(0))); diff != "" {
		t.Errorf("compact (-want +got):\n%s", diff)
	}
}

func TestEncodeYAML(t *testing.T) {
	n := mustNode(t, doc)
	out := MustString(n, EncodeFormat(format.YAMLFormat))
	back, err := ir.FromYAML([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(n, back) {
		t.Errorf("yaml output does not decode to the input:\n%s", out)
	}
	if FormatFromOpts(EncodeFormat(format.YAMLFormat)) != format.YAMLFormat {
		t.Error("FormatFromOpts")
	}
}

func TestEncodeModel(t *testing.T) {
	m, err := model.FromJSON([]byte(`{"title": "T", ":type": "page", ":items": {"a": {}}}`))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := EncodeModel(m, &buf, Indent(0)); err != nil {
		t.Fatal(err)
	}
	back, err := model.FromJSON(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !model.Equal(m, back) {
		t.Errorf("EncodeModel output = %s", buf.String())
	}
}

func TestEncodeColors(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = saved }()

	n := mustNode(t, `{":type": "page", "n": 5, "s": "100%"}`)
	for _, f := range []format.Format{format.JSONFormat, format.YAMLFormat} {
		out := MustString(n, EncodeFormat(f), EncodeColors(NewColors()))
		if !strings.Contains(out, "\x1b[") {
			t.Errorf("%s: no color escapes in %q", f, out)
		}
		if !strings.Contains(out, "100%") || strings.Contains(out, "%!") {
			t.Errorf("%s: percent mangled in %q", f, out)
		}
	}
	plain := MustString(n)
	if strings.Contains(plain, "\x1b[") {
		t.Errorf("uncolored output has escapes: %q", plain)
	}
}

func TestColorsDefault(t *testing.T) {
	c := NewColors()
	if got := c.Color(ir.ArrayType, ValueColor, "x"); got != "x" {
		t.Errorf("unmapped color = %q", got)
	}
	c.Field = nil
	if got := c.Color(ir.ObjectType, FieldColor, "x"); got != "x" {
		t.Errorf("nil field color = %q", got)
	}
}
