package encode

import "github.com/koolkav1/aem-spa-page-model-manager/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// Indent sets the JSON indentation width; 0 writes compact JSON.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}
