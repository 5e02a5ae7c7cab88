package commands

import (
	"time"

	"github.com/goliatone/go-command/dispatcher"

	"github.com/goliatone/go-backoffice/pkg/interfaces"
)

// RegisterConfig controls how the resource handlers are subscribed.
type RegisterConfig struct {
	Timeout time.Duration
	Logger  interfaces.Logger
}

// Registration tracks dispatcher subscriptions so hosts can tear them down.
type Registration struct {
	subs []interface{ Unsubscribe() }
}

// Unsubscribe removes every subscription held by this registration.
func (r *Registration) Unsubscribe() {
	if r == nil {
		return
	}
	for _, sub := range r.subs {
		sub.Unsubscribe()
	}
	r.subs = nil
}

// RegisterResourceHandlers subscribes the create, update, toggle, and remove
// resource commands against the global dispatcher, all driving the same
// mutator.
func RegisterResourceHandlers(mutator ResourceMutator, cfg RegisterConfig) *Registration {
	logger := EnsureLogger(cfg.Logger)
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}

	reg := &Registration{}
	reg.subs = append(reg.subs,
		dispatcher.SubscribeCommand(NewCreateResourceHandler(mutator,
			WithTimeout[CreateResourceCommand](timeout),
			WithLogger[CreateResourceCommand](logger),
		)),
		dispatcher.SubscribeCommand(NewUpdateResourceHandler(mutator,
			WithTimeout[UpdateResourceCommand](timeout),
			WithLogger[UpdateResourceCommand](logger),
		)),
		dispatcher.SubscribeCommand(NewToggleResourceHandler(mutator,
			WithTimeout[ToggleResourceCommand](timeout),
			WithLogger[ToggleResourceCommand](logger),
		)),
		dispatcher.SubscribeCommand(NewRemoveResourceHandler(mutator,
			WithTimeout[RemoveResourceCommand](timeout),
			WithLogger[RemoveResourceCommand](logger),
		)),
	)
	return reg
}
