package domain

// User is a Discord user's saved preference row.
type User struct {
	DiscordID uint64
	Name      string // last known Discord username
	SteamID   *SteamID
	Mode      *Mode
}

func (u *User) HasSteamID() bool {
	return u != nil && u.SteamID != nil && u.SteamID.IsValid()
}

func (u *User) HasMode() bool {
	return u != nil && u.Mode != nil && u.Mode.IsValid()
}
