package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// ErrUnknownCommand is returned when a command dispatch is attempted for an
// unregistered name.
var ErrUnknownCommand = errors.New("unknown command")

// Registry stores command handlers keyed by their canonical names.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Command
	order    []string
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Command),
	}
}

// Register adds a command handler to the registry. The handler name is stored
// in lowercase form to provide case-insensitive lookups.
func (r *Registry) Register(handler Command) {
	if handler == nil {
		return
	}

	name := strings.ToLower(handler.Name())

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[name]; !exists {
		r.order = append(r.order, name)
	}
	r.handlers[name] = handler
}

// Execute runs the handler registered for the provided name.
func (r *Registry) Execute(ctx context.Context, cmdCtx *Context, name string, opts Options) error {
	if r == nil {
		return fmt.Errorf("command registry is nil")
	}

	handler := r.getHandler(name)
	if handler == nil {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	return handler.Execute(ctx, cmdCtx, opts)
}

// Definitions builds the application command payloads for registration with
// Discord, in registration order.
func (r *Registry) Definitions() []*discordgo.ApplicationCommand {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]*discordgo.ApplicationCommand, 0, len(r.order))
	for _, name := range r.order {
		handler := r.handlers[name]
		defs = append(defs, &discordgo.ApplicationCommand{
			Name:        handler.Name(),
			Description: handler.Description(),
			Options:     handler.Options(),
		})
	}
	return defs
}

// Count returns the number of registered command handlers.
func (r *Registry) Count() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

func (r *Registry) getHandler(name string) Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if name == "" {
		return nil
	}
	if handler, ok := r.handlers[strings.ToLower(name)]; ok {
		return handler
	}
	return nil
}
