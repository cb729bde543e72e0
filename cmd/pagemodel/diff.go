package main

import (
	"fmt"
	"io"

	"github.com/koolkav1/aem-spa-page-model-manager/model"
	"github.com/koolkav1/aem-spa-page-model-manager/modeldiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := readModel(cc.In, args[0])
	if err != nil {
		return err
	}
	b, err := readModel(cc.In, args[1])
	if err != nil {
		return err
	}
	var differs bool
	if cfg.Items {
		differs, err = diffItems(cc.Out, a, b, cfg.Page)
	} else {
		differs, err = diffText(cc.Out, a, b, cfg.colorOut(cc.Out))
	}
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diffText(w io.Writer, a, b *model.Model, colored bool) (bool, error) {
	d, err := modeldiff.Text(a, b, colored)
	if err != nil {
		return false, err
	}
	if d == "" {
		return false, nil
	}
	_, err = io.WriteString(w, d)
	return true, err
}

func diffItems(w io.Writer, a, b *model.Model, pagePath string) (bool, error) {
	if pagePath == "" {
		pagePath = b.Path
	}
	changes := modeldiff.Items(a, b, pagePath)
	for _, c := range changes {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", c.Kind, c.Path); err != nil {
			return false, err
		}
	}
	return len(changes) > 0, nil
}
