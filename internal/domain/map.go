package domain

import (
	"github.com/schnose/schnose-bot-go/internal/constants"
)

// GlobalMap is one entry of the global map pool, merged from the GlobalAPI
// map list and KZ:GO map info.
type GlobalMap struct {
	ID        int
	Name      string
	Tier      int // 1-7, 0 when KZ:GO has no entry
	Courses   int // bonus course count
	KZT       bool
	SKZ       bool
	VNL       bool
	Validated bool
	SP        bool // ranked points
	VP        bool
	Mappers   []string
	UpdatedOn string
}

// KzgoLink returns the map's KZ:GO page.
func (m *GlobalMap) KzgoLink() string {
	return constants.URLConfig.KZGOMapURL + m.Name
}

// Thumbnail returns the community-maintained map image, falling back to the
// KZ:GO placeholder for maps without one is the caller's concern.
func (m *GlobalMap) Thumbnail() string {
	return constants.URLConfig.MapThumbnailURL + m.Name + ".jpg"
}

// HasModeFilter reports whether the map has a ranked filter for the mode.
func (m *GlobalMap) HasModeFilter(mode Mode) bool {
	switch mode {
	case ModeKZTimer:
		return m.KZT
	case ModeSimpleKZ:
		return m.SKZ
	case ModeVanilla:
		return m.VNL
	}
	return false
}

// HasCourse reports whether the map has the given bonus course (0 = main).
func (m *GlobalMap) HasCourse(course int) bool {
	return course >= 0 && course <= m.Courses
}
