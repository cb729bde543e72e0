package main

import (
	"fmt"

	"github.com/koolkav1/aem-spa-page-model-manager/query"

	"github.com/scott-cotton/cli"
)

func queryItems(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		cfg.Query.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: query requires a model file, a page path and an expression", cli.ErrUsage)
	}
	q, err := query.Compile(args[2])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	s, err := cfg.loadStore(cc, args[0])
	if err != nil {
		return err
	}
	pagePath := args[1]
	page := s.Get(pagePath)
	if page == nil {
		return fmt.Errorf("no page at %q", pagePath)
	}
	matches, err := query.Find(page, pagePath, q)
	if err != nil {
		return err
	}
	for _, m := range matches {
		if _, err := fmt.Fprintln(cc.Out, m.Path); err != nil {
			return err
		}
		if !cfg.Verbose {
			continue
		}
		if err := cfg.writeModel(cc.Out, m.Item); err != nil {
			return err
		}
	}
	return nil
}
