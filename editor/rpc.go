package editor

import (
	"context"
	"errors"
	"io"

	"github.com/segmentio/encoding/json"
	"go.lsp.dev/jsonrpc2"

	"github.com/koolkav1/aem-spa-page-model-manager/model"
)

// JSON-RPC methods served by Serve.
const (
	MethodUpdate = "pagemodel/update"
	MethodGet    = "pagemodel/get"
	MethodLoaded = "pagemodel/loaded"
)

// GetParams are the parameters of MethodGet.
type GetParams struct {
	Path string `json:"path"`
}

// UpdateResult is the result of MethodUpdate.
type UpdateResult struct {
	Notify string `json:"notify,omitempty"`
}

// LoadedParams are the parameters of the MethodLoaded notification, sent
// after every update.
type LoadedParams struct {
	Model *model.Model `json:"model"`
}

// Handler returns the JSON-RPC handler for conn.
func (c *Client) Handler(conn jsonrpc2.Conn) jsonrpc2.Handler {
	return func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		switch req.Method() {
		case MethodUpdate:
			msg := &Message{}
			if err := json.Unmarshal(req.Params(), msg); err != nil {
				return reply(ctx, nil, jsonrpc2.Errorf(jsonrpc2.InvalidParams, "%v", err))
			}
			notify, err := c.Apply(msg)
			if err != nil {
				c.log.Error("update failed", "error", err)
				return reply(ctx, nil, jsonrpc2.Errorf(jsonrpc2.InvalidParams, "%v", err))
			}
			if err := conn.Notify(ctx, MethodLoaded, &LoadedParams{Model: c.store.DataMap()}); err != nil {
				return err
			}
			return reply(ctx, &UpdateResult{Notify: notify}, nil)
		case MethodGet:
			p := &GetParams{}
			if err := json.Unmarshal(req.Params(), p); err != nil {
				return reply(ctx, nil, jsonrpc2.Errorf(jsonrpc2.InvalidParams, "%v", err))
			}
			m := c.store.Get(p.Path)
			if m == nil {
				return reply(ctx, nil, jsonrpc2.Errorf(jsonrpc2.InvalidParams, "%s: %v", p.Path, ErrNotFound))
			}
			return reply(ctx, m, nil)
		default:
			return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
		}
	}
}

// Serve answers JSON-RPC requests read from rwc until the peer closes it
// or ctx is done.
func (c *Client) Serve(ctx context.Context, rwc io.ReadWriteCloser) error {
	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(rwc))
	conn.Go(ctx, c.Handler(conn))
	select {
	case <-ctx.Done():
		conn.Close()
		return ctx.Err()
	case <-conn.Done():
	}
	if err := conn.Err(); err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrClosedPipe) {
		return err
	}
	return nil
}
