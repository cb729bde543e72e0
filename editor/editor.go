package editor

import (
	"fmt"
	"log/slog"

	"github.com/segmentio/encoding/json"

	"github.com/koolkav1/aem-spa-page-model-manager/model"
	"github.com/koolkav1/aem-spa-page-model-manager/pathutil"
	"github.com/koolkav1/aem-spa-page-model-manager/store"
)

// Command is an update requested by the page editor.
type Command string

const (
	Replace      Command = "replace"
	Delete       Command = "delete"
	InsertBefore Command = "insertBefore"
	InsertAfter  Command = "insertAfter"
	Patch        Command = "patch"
)

// Message is an update of the model at Path.
//
// Data depends on Cmd: the new model for replace, an ItemData for the
// insert commands, an RFC 6902 patch for patch and nothing for delete.  The insert commands
// place the new item next to the item at Path.
type Message struct {
	Cmd  Command         `json:"cmd"`
	Path string          `json:"path"`
	Data json.RawMessage `json:"data,omitempty"`
}

// ItemData is a named item.
type ItemData struct {
	Key   string       `json:"key,omitempty"`
	Value *model.Model `json:"value"`
}

// Notifier is told which path changed after an update.
type Notifier interface {
	Notify(path string)
}

// NotifierFunc adapts a function to a Notifier.
type NotifierFunc func(path string)

func (f NotifierFunc) Notify(path string) { f(path) }

// Config configures a Client.
type Config struct {
	Notifier Notifier     // optional
	Log      *slog.Logger // optional
}

// Client applies editor updates to a store.
type Client struct {
	store    *store.Guarded
	notifier Notifier
	log      *slog.Logger
}

func New(s *store.Guarded, cfg *Config) *Client {
	if cfg == nil {
		cfg = &Config{}
	}
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		store:    s,
		notifier: cfg.Notifier,
		log:      log.With("component", "editor"),
	}
}

// Apply executes msg against the store and returns the path it notified,
// which is "" when nothing needed notification.
func (c *Client) Apply(msg *Message) (string, error) {
	if msg == nil || msg.Cmd == "" || msg.Path == "" {
		return "", ErrIncomplete
	}
	var (
		notify string
		err    error
	)
	c.store.Update(func(s *store.Store) {
		notify, err = c.apply(s, msg)
	})
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", msg.Cmd, msg.Path, err)
	}
	c.log.Debug("applied", "cmd", msg.Cmd, "path", msg.Path, "notify", notify)
	if notify != "" && c.notifier != nil {
		c.notifier.Notify(notify)
	}
	return notify, nil
}

func (c *Client) apply(s *store.Store, msg *Message) (string, error) {
	parent, _ := pathutil.ParentNodePath(msg.Path)
	switch msg.Cmd {
	case Replace:
		m, err := decodeModel(msg.Data)
		if err != nil {
			return "", err
		}
		s.Set(msg.Path, m)
		return msg.Path, nil
	case Delete:
		s.Remove(msg.Path)
		return parent, nil
	case InsertBefore, InsertAfter:
		if parent == "" {
			return "", nil
		}
		item, err := decodeItem(msg.Data)
		if err != nil {
			return "", err
		}
		if item.Key == "" {
			return "", fmt.Errorf("%w: missing key", ErrItemData)
		}
		sibling, _ := pathutil.NodeName(msg.Path)
		s.Insert(parent+"/"+item.Key, item.Value, sibling, msg.Cmd == InsertBefore)
		return parent, nil
	case Patch:
		return msg.Path, applyPatch(s, msg.Path, msg.Data)
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupportedCommand, msg.Cmd)
	}
}

func decodeModel(d json.RawMessage) (*model.Model, error) {
	if len(d) == 0 || string(d) == "null" {
		return nil, fmt.Errorf("%w: no data", ErrItemData)
	}
	m, err := model.FromJSON(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrItemData, err)
	}
	return m, nil
}

func decodeItem(d json.RawMessage) (*ItemData, error) {
	if len(d) == 0 {
		return nil, fmt.Errorf("%w: no data", ErrItemData)
	}
	item := &ItemData{}
	if err := json.Unmarshal(d, item); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrItemData, err)
	}
	if item.Value == nil {
		return nil, fmt.Errorf("%w: missing value", ErrItemData)
	}
	return item, nil
}

// applyPatch replaces the item at path by the result of patching it.
// Unlike Set, keys removed by the patch stay removed.
func applyPatch(s *store.Store, path string, patch json.RawMessage) error {
	key, _ := pathutil.NodeName(path)
	parentPath, _ := pathutil.ParentNodePath(path)
	parent := s.GetMutable(parentPath)
	if parent == nil || parent.Items[key] == nil {
		return ErrNotFound
	}
	res, err := parent.Items[key].ApplyPatch(patch)
	if err != nil {
		return err
	}
	parent.Items[key] = res
	return nil
}
