package domain

// PlayerIdentifier is the resolved query key for upstream record fetches:
// either a SteamID or a display name, never both. Produced per command
// invocation by the target resolver and never cached.
type PlayerIdentifier struct {
	SteamID SteamID
	Name    string
}

func PlayerFromSteamID(steamID SteamID) PlayerIdentifier {
	return PlayerIdentifier{SteamID: steamID}
}

func PlayerFromName(name string) PlayerIdentifier {
	return PlayerIdentifier{Name: name}
}

// IsSteamID reports whether the identifier carries a structured id rather
// than a name-type query key.
func (p PlayerIdentifier) IsSteamID() bool {
	return p.SteamID.IsValid()
}

func (p PlayerIdentifier) String() string {
	if p.IsSteamID() {
		return p.SteamID.String()
	}
	return p.Name
}
