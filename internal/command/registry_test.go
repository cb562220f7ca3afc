package command

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
)

type stubCommand struct {
	name     string
	executed bool
}

func (c *stubCommand) Name() string        { return c.name }
func (c *stubCommand) Description() string { return "stub" }
func (c *stubCommand) Options() []*discordgo.ApplicationCommandOption {
	return nil
}
func (c *stubCommand) Execute(ctx context.Context, cmdCtx *Context, opts Options) error {
	c.executed = true
	return nil
}

func TestRegistryExecute(t *testing.T) {
	registry := NewRegistry()
	stub := &stubCommand{name: "Ping"}
	registry.Register(stub)

	if err := registry.Execute(context.Background(), &Context{}, "ping", nil); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !stub.executed {
		t.Error("handler never ran")
	}

	err := registry.Execute(context.Background(), &Context{}, "missing", nil)
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("Execute(missing) = %v, want ErrUnknownCommand", err)
	}
}

func TestRegistryDefinitionsOrder(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&stubCommand{name: "pb"})
	registry.Register(&stubCommand{name: "wr"})
	registry.Register(&stubCommand{name: "ping"})

	defs := registry.Definitions()
	if len(defs) != 3 {
		t.Fatalf("Definitions returned %d entries, want 3", len(defs))
	}
	want := []string{"pb", "wr", "ping"}
	for i, def := range defs {
		if def.Name != want[i] {
			t.Errorf("defs[%d] = %q, want %q", i, def.Name, want[i])
		}
	}
}

func TestRegisterAllCount(t *testing.T) {
	registry := RegisterAll(&Dependencies{})
	if got := registry.Count(); got != 20 {
		t.Errorf("RegisterAll registered %d commands, want 20", got)
	}

	for _, name := range []string{"top", "btop", "unfinished"} {
		if registry.getHandler(name) == nil {
			t.Errorf("RegisterAll did not register %q", name)
		}
	}
}
