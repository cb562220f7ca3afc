package command

// RegisterAll wires every command handler into a fresh registry.
func RegisterAll(deps *Dependencies) *Registry {
	registry := NewRegistry()

	registry.Register(NewPBCommand(deps))
	registry.Register(NewBPBCommand(deps))
	registry.Register(NewWRCommand(deps))
	registry.Register(NewBWRCommand(deps))
	registry.Register(NewMapTopCommand(deps))
	registry.Register(NewBMapTopCommand(deps))
	registry.Register(NewTopCommand(deps))
	registry.Register(NewBTopCommand(deps))
	registry.Register(NewRecentCommand(deps))
	registry.Register(NewUnfinishedCommand(deps))
	registry.Register(NewMapCommand(deps))
	registry.Register(NewRandomCommand(deps))
	registry.Register(NewSetSteamCommand(deps))
	registry.Register(NewModeCommand(deps))
	registry.Register(NewDBCommand(deps))
	registry.Register(NewAPIStatusCommand(deps))
	registry.Register(NewNocrouchCommand(deps))
	registry.Register(NewPingCommand(deps))
	registry.Register(NewHelpCommand(deps))
	registry.Register(NewInviteCommand(deps))

	return registry
}
