package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/koolkav1/aem-spa-page-model-manager/config"
	"github.com/koolkav1/aem-spa-page-model-manager/encode"
	"github.com/koolkav1/aem-spa-page-model-manager/format"
	"github.com/koolkav1/aem-spa-page-model-manager/model"
	"github.com/koolkav1/aem-spa-page-model-manager/store"

	"github.com/scott-cotton/cli"
)

func pmMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.J && cfg.Y {
		return fmt.Errorf("%w: must specify at most one of -j[son] -y[aml]", cli.ErrUsage)
	}
	if err := cfg.loadConfig(); err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// readFile reads file, or in when file is "-".
func readFile(in io.Reader, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(in)
	}
	d, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", file, err)
	}
	return d, nil
}

func decodeModel(d []byte, f format.Format) (*model.Model, error) {
	if f.IsYAML() {
		return model.FromYAML(d)
	}
	return model.FromJSON(d)
}

// readModel decodes the model in file, as yaml when its extension says so
// and as json otherwise.
func readModel(in io.Reader, file string) (*model.Model, error) {
	d, err := readFile(in, file)
	if err != nil {
		return nil, err
	}
	m, err := decodeModel(d, format.FromPath(file))
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", file, err)
	}
	return m, nil
}

// newStore initializes a store with m.  The root path comes from conf,
// or from the :path of m when conf has none.
func newStore(conf *config.Config, m *model.Model) *store.Store {
	rootPath := conf.RootPath
	if rootPath == "" && m != nil {
		rootPath = m.Path
	}
	return store.NewWithData(rootPath, m, theLog)
}

func (cfg *MainConfig) loadStore(cc *cli.Context, file string) (*store.Store, error) {
	m, err := readModel(cc.In, file)
	if err != nil {
		return nil, err
	}
	return newStore(cfg.Conf, m), nil
}

func (cfg *MainConfig) writeModel(w io.Writer, m *model.Model) error {
	if err := encode.EncodeModel(m, w, cfg.encOpts(w)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}
