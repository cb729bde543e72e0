// Package editor applies page editor updates to a page model store.
//
// The editor sends messages naming a command, a path and the command data:
//
//	{"cmd": "insertAfter", "path": "/content/site/jcr:content/root/title",
//	 "data": {"key": "text", "value": {":type": "site/text", "text": "hi"}}}
//
// A Client applies such messages to a store.Guarded, one message per lock,
// and reports the changed path to its Notifier.  Serve exposes the same
// operations over JSON-RPC 2, publishing the whole model after every
// update.
package editor
