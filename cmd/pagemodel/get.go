package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: get requires a model file and an optional path", cli.ErrUsage)
	}
	s, err := cfg.loadStore(cc, args[0])
	if err != nil {
		return err
	}
	path := ""
	if len(args) == 2 {
		path = args[1]
	}
	m := s.Get(path)
	if m == nil {
		return fmt.Errorf("no model at %q", path)
	}
	return cfg.writeModel(cc.Out, m)
}
