// Package dispatch routes inbound commands and button callbacks to
// handlers. It is transport-independent: both the long-polling bot and
// the webhook server build a Request and hand it here.
package dispatch

import (
	"context"
	"strings"
)

// Request is one inbound user interaction.
type Request struct {
	UserID   string
	ChatID   int64
	Command  string   // command name without the leading slash, e.g. "cart"
	Args     []string // whitespace-split command arguments
	Callback string   // raw callback data for button presses, empty otherwise
}

// Button is a selectable inline action.
type Button struct {
	Label string
	Data  string
}

// Section is a standalone block of a reply, rendered by the transport as
// its own message (with an optional image and its own buttons).
type Section struct {
	Text    string
	Image   string
	Buttons []Button
}

// Reply is what a handler produces. Text is the main message; Sections
// are emitted in addition, one message each.
type Reply struct {
	Text     string
	HTML     bool
	Buttons  []Button
	Sections []Section
}

// Handler processes one request. Errors are converted to user-facing
// reply text before reaching the dispatcher, so handlers return only a
// Reply.
type Handler func(ctx context.Context, req Request) Reply

type callbackRoute struct {
	prefix string
	exact  bool
	h      Handler
}

// Dispatcher is a routing table from command names and callback-data
// prefixes to handlers. Command matching is case-sensitive; callback
// matching is first-match-wins in registration order.
type Dispatcher struct {
	commands  map[string]Handler
	callbacks []callbackRoute
	fallback  Handler
}

func New() *Dispatcher {
	return &Dispatcher{commands: make(map[string]Handler)}
}

// Command registers a handler for a textual command (without slash).
func (d *Dispatcher) Command(name string, h Handler) {
	d.commands[name] = h
}

// Callback registers a handler for callback data starting with prefix.
func (d *Dispatcher) Callback(prefix string, h Handler) {
	d.callbacks = append(d.callbacks, callbackRoute{prefix: prefix, h: h})
}

// CallbackExact registers a handler for callback data equal to value.
func (d *Dispatcher) CallbackExact(value string, h Handler) {
	d.callbacks = append(d.callbacks, callbackRoute{prefix: value, exact: true, h: h})
}

// Fallback registers the handler for unknown commands and callbacks.
func (d *Dispatcher) Fallback(h Handler) {
	d.fallback = h
}

// Dispatch selects and runs the handler for req.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Reply {
	if req.Callback != "" {
		for _, route := range d.callbacks {
			if route.exact {
				if req.Callback == route.prefix {
					return route.h(ctx, req)
				}
				continue
			}
			if strings.HasPrefix(req.Callback, route.prefix) {
				return route.h(ctx, req)
			}
		}
	} else if h, ok := d.commands[req.Command]; ok {
		return h(ctx, req)
	}

	if d.fallback != nil {
		return d.fallback(ctx, req)
	}
	return Reply{}
}
