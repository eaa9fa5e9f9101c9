package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hello_slackbot/internal/model"

	"go.uber.org/zap"
)

// ErrNilEvent is returned when Dispatch is called without an event
var ErrNilEvent = errors.New("nil event")

// HandlerFunc produces the reply for a single matched event
type HandlerFunc func(ctx context.Context, ev *model.IncomingEvent) (*model.Reply, error)

type route struct {
	name    string
	kind    model.EventKind
	matches func(ev *model.IncomingEvent) bool
	handle  HandlerFunc
}

// Dispatcher routes incoming events to the first registered listener that matches.
// Listeners are registered at startup; after that the dispatcher is read-only
// and can serve concurrent requests.
type Dispatcher struct {
	routes []route
	log    *zap.Logger
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithLogger sets the logger used for routing decisions
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) {
		d.log = l
	}
}

// New creates an empty Dispatcher
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{log: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Message registers h for message events whose text contains keyword
func (d *Dispatcher) Message(keyword string, h HandlerFunc) {
	d.add(route{
		name: "message:" + keyword,
		kind: model.KindMessage,
		matches: func(ev *model.IncomingEvent) bool {
			return strings.Contains(ev.Text, keyword)
		},
		handle: h,
	})
}

// Action registers h for interactive actions with the given action identifier
func (d *Dispatcher) Action(actionID string, h HandlerFunc) {
	d.add(route{
		name: "action:" + actionID,
		kind: model.KindAction,
		matches: func(ev *model.IncomingEvent) bool {
			return ev.ActionID == actionID
		},
		handle: h,
	})
}

// Event registers h for Events API callbacks of the given type, e.g. "app_mention"
func (d *Dispatcher) Event(eventType string, h HandlerFunc) {
	d.add(route{
		name: "event:" + eventType,
		kind: model.KindEvent,
		matches: func(ev *model.IncomingEvent) bool {
			return ev.Type == eventType
		},
		handle: h,
	})
}

func (d *Dispatcher) add(r route) {
	if r.handle == nil {
		panic(fmt.Sprintf("dispatcher: nil handler for %s", r.name))
	}
	d.routes = append(d.routes, r)
}

// Dispatch invokes the first listener matching ev and returns its reply.
// It returns (nil, nil) when no listener matches.
func (d *Dispatcher) Dispatch(ctx context.Context, ev *model.IncomingEvent) (*model.Reply, error) {
	if ev == nil {
		return nil, ErrNilEvent
	}

	for _, r := range d.routes {
		if r.kind != ev.Kind || !r.matches(ev) {
			continue
		}

		d.log.Debug("dispatching event",
			zap.String("route", r.name),
			zap.String("event_type", ev.Type),
			zap.String("user", ev.User),
			zap.String("channel", ev.Channel))

		reply, err := r.handle(ctx, ev)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.name, err)
		}
		return reply, nil
	}

	d.log.Debug("no listener matched",
		zap.Stringer("kind", ev.Kind),
		zap.String("event_type", ev.Type))
	return nil, nil
}

// Len returns the number of registered listeners
func (d *Dispatcher) Len() int {
	return len(d.routes)
}
