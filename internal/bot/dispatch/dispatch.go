// Package dispatch routes inbound interaction events to step handlers
// through a closed table built at wiring time.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/midnight-community/gatekeeper/internal/bot/connector"
)

// ErrUnknownStep indicates an event carried a step tag with no registered
// handler. Callers log and ignore it; unknown UI elements must never crash
// the process or surface to the member.
var ErrUnknownStep = errors.New("unknown step tag")

// Handler processes one inbound step event and returns the next prompt.
type Handler func(ctx context.Context, ev connector.Event) (connector.Prompt, error)

// Table maps step tags to handlers. Registration happens once during
// wiring; dispatching is read-only afterwards.
type Table struct {
	handlers map[string]Handler
}

// New returns an empty dispatch table.
func New() *Table {
	return &Table{handlers: make(map[string]Handler)}
}

// Register binds a step tag to a handler. Registering an empty tag, a nil
// handler, or a duplicate tag is a wiring bug and panics at startup.
func (t *Table) Register(step string, handler Handler) {
	step = strings.TrimSpace(step)
	if step == "" {
		panic("dispatch: step tag is required")
	}
	if handler == nil {
		panic(fmt.Sprintf("dispatch: nil handler for step %q", step))
	}
	if _, exists := t.handlers[step]; exists {
		panic(fmt.Sprintf("dispatch: duplicate handler for step %q", step))
	}
	t.handlers[step] = handler
}

// Dispatch routes one event to its step handler.
func (t *Table) Dispatch(ctx context.Context, ev connector.Event) (connector.Prompt, error) {
	if t == nil || t.handlers == nil {
		return connector.Prompt{}, fmt.Errorf("dispatch table is not configured")
	}
	handler, ok := t.handlers[ev.Step]
	if !ok {
		return connector.Prompt{}, fmt.Errorf("%w: %q", ErrUnknownStep, ev.Step)
	}
	return handler(ctx, ev)
}

// Steps returns the registered step tags, for startup logging.
func (t *Table) Steps() []string {
	if t == nil {
		return nil
	}
	steps := make([]string, 0, len(t.handlers))
	for step := range t.handlers {
		steps = append(steps, step)
	}
	return steps
}
