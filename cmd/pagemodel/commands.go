package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "pagemodel").
		WithSynopsis("pagemodel [opts] command [opts]").
		WithDescription("pagemodel is a tool for working with page models.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return pmMain(cfg, cc, args)
		}).
		WithSubs(
			GetCommand(cfg),
			InsertCommand(cfg),
			SetCommand(cfg),
			RemoveCommand(cfg),
			MergeCommand(cfg),
			DiffCommand(cfg),
			QueryCommand(cfg),
			URLCommand(cfg),
			ServeCommand(cfg))
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get <model-file> [path]").
		WithDescription("print the page or item at path, the root page by default").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func InsertCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &InsertConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Insert, "insert").
		WithAliases("i", "ins").
		WithSynopsis("insert [-sibling name [-before]] <model-file> <path> [data-file]").
		WithDescription("insert a page or item and print the resulting model").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return insert(cfg, cc, args)
		})
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Set, "set").
		WithAliases("s").
		WithSynopsis("set <model-file> <path> <data-file>").
		WithDescription("replace an existing page or item and print the resulting model").
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
}

func RemoveCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RemoveConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Remove, "remove").
		WithAliases("rm").
		WithSynopsis("remove <model-file> <path>").
		WithDescription("remove a page or item and print the path of its parent").
		WithRun(func(cc *cli.Context, args []string) error {
			return remove(cfg, cc, args)
		})
}

func MergeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MergeConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Merge, "merge").
		WithAliases("m").
		WithSynopsis("merge <model-file> <path> <merge-patch-file>").
		WithDescription("apply a json merge patch to a page or item and print the resulting model").
		WithRun(func(cc *cli.Context, args []string) error {
			return merge(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d", "di").
		WithSynopsis("diff [-items [-page path]] a b").
		WithDescription("diff page models").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func QueryCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &QueryConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Query, "query").
		WithAliases("q").
		WithSynopsis("query [-v] <model-file> <page-path> <expr>").
		WithDescription("list the items of a page matching an expression").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return queryItems(cfg, cc, args)
		})
}

func URLCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &URLConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.URL, "url").
		WithAliases("u").
		WithSynopsis("url <path> [paths]").
		WithDescription("show how paths are addressed and where their models are served").
		WithRun(func(cc *cli.Context, args []string) error {
			return showURL(cfg, cc, args)
		})
}

func ServeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ServeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Serve, "serve").
		WithSynopsis("serve [-noagent] [model-file]").
		WithDescription("serve page editor updates as json-rpc on stdin and stdout").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return serve(cfg, cc, args)
		})
}
