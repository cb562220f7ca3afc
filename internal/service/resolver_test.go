package service

import (
	"context"
	"errors"
	"testing"

	"github.com/schnose/schnose-bot-go/internal/domain"
	"go.uber.org/zap"
)

type fakeUserStore struct {
	users map[uint64]*domain.User
	err   error
	calls int
}

func (f *fakeUserStore) GetByDiscordID(_ context.Context, discordID uint64) (*domain.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.users[discordID], nil
}

func (f *fakeUserStore) GetByName(_ context.Context, _ string) (*domain.User, error) {
	return nil, nil
}

func (f *fakeUserStore) GetBySteamID(_ context.Context, _ domain.SteamID) (*domain.User, error) {
	return nil, nil
}

type fakeMemberLookup struct {
	names map[uint64]string
}

func (f *fakeMemberLookup) MemberDisplayName(_ context.Context, _ string, userID uint64) (string, bool) {
	name, ok := f.names[userID]
	return name, ok
}

func steamIDPtr(t *testing.T, input string) *domain.SteamID {
	t.Helper()
	sid, err := domain.ParseSteamID(input)
	if err != nil {
		t.Fatal(err)
	}
	return &sid
}

func modePtr(m domain.Mode) *domain.Mode {
	return &m
}

func TestResolvePlayerSteamIDTarget(t *testing.T) {
	store := &fakeUserStore{}
	resolver := NewResolver(store, nil, zap.NewNop())

	target, err := domain.ParseTarget(strPtr("STEAM_1:1:161178172"), 1)
	if err != nil {
		t.Fatal(err)
	}

	player := resolver.ResolvePlayer(context.Background(), target, "", "caller")
	if !player.IsSteamID() {
		t.Fatal("expected steam id identifier")
	}
	if got := player.SteamID.String(); got != "STEAM_1:1:161178172" {
		t.Errorf("SteamID = %q, want STEAM_1:1:161178172", got)
	}
	if store.calls != 0 {
		t.Errorf("store consulted %d times, want 0", store.calls)
	}
}

func TestResolvePlayerNameTarget(t *testing.T) {
	store := &fakeUserStore{}
	resolver := NewResolver(store, nil, zap.NewNop())

	player := resolver.ResolvePlayer(context.Background(),
		domain.Target{Kind: domain.TargetName, Name: "AlphaKeks"}, "", "caller")
	if player.IsSteamID() {
		t.Fatal("expected name identifier")
	}
	if player.Name != "AlphaKeks" {
		t.Errorf("Name = %q, want AlphaKeks", player.Name)
	}
	if store.calls != 0 {
		t.Errorf("store consulted %d times, want 0", store.calls)
	}
}

func TestResolvePlayerSavedSteamID(t *testing.T) {
	store := &fakeUserStore{users: map[uint64]*domain.User{
		42: {DiscordID: 42, Name: "saved-name", SteamID: steamIDPtr(t, "STEAM_1:0:123")},
	}}
	resolver := NewResolver(store, nil, zap.NewNop())

	player := resolver.ResolvePlayer(context.Background(),
		domain.Target{Kind: domain.TargetUnspecified, UserID: 42}, "", "caller")
	if !player.IsSteamID() {
		t.Fatal("expected saved steam id to win")
	}
	if got := player.SteamID.String(); got != "STEAM_1:0:123" {
		t.Errorf("SteamID = %q, want STEAM_1:0:123", got)
	}
}

func TestResolvePlayerSavedNameOnly(t *testing.T) {
	store := &fakeUserStore{users: map[uint64]*domain.User{
		42: {DiscordID: 42, Name: "saved-name"},
	}}
	resolver := NewResolver(store, nil, zap.NewNop())

	player := resolver.ResolvePlayer(context.Background(),
		domain.Target{Kind: domain.TargetMention, UserID: 42}, "", "caller")
	if player.Name != "saved-name" {
		t.Errorf("Name = %q, want saved-name", player.Name)
	}
}

func TestResolvePlayerGuildFallback(t *testing.T) {
	store := &fakeUserStore{}
	members := &fakeMemberLookup{names: map[uint64]string{42: "guild-nick"}}
	resolver := NewResolver(store, members, zap.NewNop())

	player := resolver.ResolvePlayer(context.Background(),
		domain.Target{Kind: domain.TargetMention, UserID: 42}, "guild-1", "caller")
	if player.Name != "guild-nick" {
		t.Errorf("Name = %q, want guild-nick", player.Name)
	}
}

func TestResolvePlayerCallerFallback(t *testing.T) {
	// Store errors are swallowed and treated as "not found".
	store := &fakeUserStore{err: errors.New("connection refused")}
	resolver := NewResolver(store, &fakeMemberLookup{}, zap.NewNop())

	player := resolver.ResolvePlayer(context.Background(),
		domain.Target{Kind: domain.TargetUnspecified, UserID: 42}, "guild-1", "caller")
	if player.Name != "caller" {
		t.Errorf("Name = %q, want caller fallback", player.Name)
	}
}

func TestResolveMode(t *testing.T) {
	store := &fakeUserStore{users: map[uint64]*domain.User{
		42: {DiscordID: 42, Name: "saved", Mode: modePtr(domain.ModeSimpleKZ)},
	}}
	resolver := NewResolver(store, nil, zap.NewNop())
	ctx := context.Background()

	if got := resolver.ResolveMode(ctx, modePtr(domain.ModeVanilla), 42); got != domain.ModeVanilla {
		t.Errorf("explicit mode = %v, want Vanilla", got)
	}
	if got := resolver.ResolveMode(ctx, nil, 42); got != domain.ModeSimpleKZ {
		t.Errorf("saved mode = %v, want SimpleKZ", got)
	}
	if got := resolver.ResolveMode(ctx, nil, 7); got != domain.ModeKZTimer {
		t.Errorf("default mode = %v, want KZTimer", got)
	}

	store.err = errors.New("down")
	if got := resolver.ResolveMode(ctx, nil, 42); got != domain.ModeKZTimer {
		t.Errorf("mode with failing store = %v, want KZTimer", got)
	}
}

func strPtr(s string) *string {
	return &s
}
