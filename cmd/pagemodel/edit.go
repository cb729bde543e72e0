package main

import (
	"fmt"

	"github.com/koolkav1/aem-spa-page-model-manager/model"

	"github.com/scott-cotton/cli"
)

func insert(cfg *InsertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Insert.Parse(cc, args)
	if err != nil {
		cfg.Insert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: insert requires a model file, a path and an optional data file", cli.ErrUsage)
	}
	if cfg.Before && cfg.Sibling == "" {
		return fmt.Errorf("%w: -before requires -sibling", cli.ErrUsage)
	}
	s, err := cfg.loadStore(cc, args[0])
	if err != nil {
		return err
	}
	var data *model.Model
	if len(args) == 3 {
		data, err = readModel(cc.In, args[2])
		if err != nil {
			return err
		}
	}
	s.Insert(args[1], data, cfg.Sibling, cfg.Before)
	return cfg.writeModel(cc.Out, s.DataMap())
}

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: set requires a model file, a path and a data file", cli.ErrUsage)
	}
	s, err := cfg.loadStore(cc, args[0])
	if err != nil {
		return err
	}
	data, err := readModel(cc.In, args[2])
	if err != nil {
		return err
	}
	if s.Get(args[1]) == nil {
		return fmt.Errorf("no model at %q", args[1])
	}
	s.Set(args[1], data)
	return cfg.writeModel(cc.Out, s.DataMap())
}

func remove(cfg *RemoveConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Remove.Parse(cc, args)
	if err != nil {
		cfg.Remove.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: remove requires a model file and a path", cli.ErrUsage)
	}
	s, err := cfg.loadStore(cc, args[0])
	if err != nil {
		return err
	}
	if s.Get(args[1]) == nil {
		return fmt.Errorf("no model at %q", args[1])
	}
	parent, ok := s.Remove(args[1])
	if !ok {
		// pages have no parent path
		return nil
	}
	_, err = fmt.Fprintln(cc.Out, parent)
	return err
}

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		cfg.Merge.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: merge requires a model file, a path and a merge patch file", cli.ErrUsage)
	}
	s, err := cfg.loadStore(cc, args[0])
	if err != nil {
		return err
	}
	patch, err := readFile(cc.In, args[2])
	if err != nil {
		return err
	}
	cur := s.Get(args[1])
	if cur == nil {
		return fmt.Errorf("no model at %q", args[1])
	}
	merged, err := cur.MergePatch(patch)
	if err != nil {
		return fmt.Errorf("error merging %s: %w", args[2], err)
	}
	s.Set(args[1], merged)
	return cfg.writeModel(cc.Out, s.DataMap())
}
