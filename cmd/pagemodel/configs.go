package main

import (
	"fmt"
	"io"
	"os"

	"github.com/koolkav1/aem-spa-page-model-manager/config"
	"github.com/koolkav1/aem-spa-page-model-manager/encode"
	"github.com/koolkav1/aem-spa-page-model-manager/format"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	ConfigFile string `cli:"name=config desc='configuration file (yaml)'"`
	RootPath   string `cli:"name=root desc='path of the root page, overrides the configuration'"`
	Color      bool   `cli:"name=color desc='encode with color'"`

	J bool `cli:"name=j aliases=json desc='output json'"`
	Y bool `cli:"name=y aliases=yaml desc='output yaml'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

	// Conf is loaded once the main options are parsed.
	Conf *config.Config

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) loadConfig() error {
	conf := config.DefaultConfig()
	if cfg.ConfigFile != "" {
		c, err := config.LoadConfig(cfg.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		conf = c
	}
	if cfg.RootPath != "" {
		conf.RootPath = cfg.RootPath
	}
	cfg.Conf = conf
	return nil
}

func (cfg *MainConfig) outFormat() format.Format {
	var f format.Format
	switch {
	case cfg.Y:
		f = format.YAMLFormat
	case cfg.J:
		f = format.JSONFormat
	}
	if cfg.OutFormat != nil {
		f = *cfg.OutFormat
	}
	return f
}

func (cfg *MainConfig) colorOut(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
	}
	if cfg.colorOut(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type InsertConfig struct {
	*MainConfig

	Sibling string `cli:"name=sibling desc='insert next to this item'"`
	Before  bool   `cli:"name=before desc='insert before the sibling instead of after'"`

	Insert *cli.Command
}

type SetConfig struct {
	*MainConfig

	Set *cli.Command
}

type RemoveConfig struct {
	*MainConfig

	Remove *cli.Command
}

type MergeConfig struct {
	*MainConfig

	Merge *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Items bool   `cli:"name=items desc='list changed item paths instead of a text diff'"`
	Page  string `cli:"name=page desc='page path used for item paths'"`

	Diff *cli.Command
}

type QueryConfig struct {
	*MainConfig

	Verbose bool `cli:"name=v desc='print the matching items'"`

	Query *cli.Command
}

type URLConfig struct {
	*MainConfig

	URL *cli.Command
}

type ServeConfig struct {
	*MainConfig

	NoAgent bool `cli:"name=noagent desc='do not start the gops agent'"`

	Serve *cli.Command
}
