package main

import (
	"fmt"
	"io"

	"github.com/koolkav1/aem-spa-page-model-manager/config"
	"github.com/koolkav1/aem-spa-page-model-manager/pathutil"

	"github.com/scott-cotton/cli"
)

func showURL(cfg *URLConfig, cc *cli.Context, args []string) error {
	args, err := cfg.URL.Parse(cc, args)
	if err != nil {
		cfg.URL.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: url requires at least one path", cli.ErrUsage)
	}
	for i, arg := range args {
		if i > 0 {
			if _, err := io.WriteString(cc.Out, "\n"); err != nil {
				return err
			}
		}
		if err := writeURLInfo(cc.Out, cfg.Conf, arg); err != nil {
			return err
		}
	}
	return nil
}

// urlInfo describes how path is addressed in a store rooted at
// conf.RootPath.
func urlInfo(conf *config.Config, path string) [][2]string {
	sanitized, _ := pathutil.Sanitize(path)
	res := [][2]string{
		{"path", path},
		{"sanitized", sanitized},
		{"model", conf.ModelURL(sanitized)},
	}
	if ctx := pathutil.ContextPath(path); ctx != "" {
		res = append(res, [2]string{"context", ctx})
	}
	if pathutil.IsItem(path) {
		page, item, _ := pathutil.SplitPageContentPaths(path)
		res = append(res, [2]string{"page", page}, [2]string{"item", item})
	} else {
		page := pathutil.AdaptPagePath(sanitized, conf.RootPath)
		if page == "" {
			page = "(root)"
		}
		res = append(res, [2]string{"page", page})
	}
	return res
}

func writeURLInfo(w io.Writer, conf *config.Config, path string) error {
	for _, kv := range urlInfo(conf, path) {
		if _, err := fmt.Fprintf(w, "%-10s %s\n", kv[0]+":", kv[1]); err != nil {
			return err
		}
	}
	return nil
}
