package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/google/gops/agent"

	"github.com/koolkav1/aem-spa-page-model-manager/editor"
	"github.com/koolkav1/aem-spa-page-model-manager/model"
	"github.com/koolkav1/aem-spa-page-model-manager/store"

	"github.com/scott-cotton/cli"
)

func serve(cfg *ServeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Serve.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: serve takes at most one model file", cli.ErrUsage)
	}
	if !cfg.NoAgent {
		if err := agent.Listen(agent.Options{}); err != nil {
			fmt.Fprintf(os.Stderr, "gops agent failed: %v\n", err)
		}
		defer agent.Close()
	}

	var data *model.Model
	if len(args) == 1 {
		data, err = readModel(cc.In, args[0])
		if err != nil {
			return err
		}
	}
	s := store.NewGuarded(newStore(cfg.Conf, data))
	client := editor.New(s, &editor.Config{
		Notifier: editor.NotifierFunc(func(path string) {
			theLog.Info("model changed", "path", path)
		}),
		Log: theLog,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	theLog.Info("serving page editor", "rootPath", s.RootPath())
	err = client.Serve(ctx, &stdioReadWriteCloser{read: os.Stdin, write: os.Stdout})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

type stdioReadWriteCloser struct {
	read  io.Reader
	write io.Writer
}

func (s *stdioReadWriteCloser) Read(p []byte) (n int, err error) {
	return s.read.Read(p)
}

func (s *stdioReadWriteCloser) Write(p []byte) (n int, err error) {
	return s.write.Write(p)
}

func (s *stdioReadWriteCloser) Close() error {
	return nil
}
