package domain

import "time"

// RunRecord is a single best-effort completion as reported by the GlobalAPI.
type RunRecord struct {
	ID         int
	PlayerName string
	SteamID    SteamID
	Mode       Mode
	MapID      int
	MapName    string
	Stage      int
	Time       float64 // seconds, sub-millisecond precision
	Teleports  int     // 0 = clean (PRO) run
	CreatedOn  time.Time

	// Replay URLs, both empty when no global replay exists.
	ReplayViewURL     string
	ReplayDownloadURL string
}

// ReplayLinks is a usable view/download pair. A record with only one of the
// two URLs has no usable pair.
type ReplayLinks struct {
	View     string
	Download string
}

// Replay returns the record's link pair, or nil unless both URLs are present.
func (r *RunRecord) Replay() *ReplayLinks {
	if r == nil || r.ReplayViewURL == "" || r.ReplayDownloadURL == "" {
		return nil
	}
	return &ReplayLinks{View: r.ReplayViewURL, Download: r.ReplayDownloadURL}
}
