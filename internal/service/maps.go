package service

import (
	"context"
	"math/rand"
	"sort"
	"strings"

	"github.com/schnose/schnose-bot-go/internal/domain"
	"github.com/schnose/schnose-bot-go/internal/util"
	"github.com/schnose/schnose-bot-go/pkg/errors"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

// MapCatalog is the read-only global map pool, built once at startup and
// injected everywhere a map lookup is needed. It is never mutated after
// construction, so concurrent reads need no locking.
type MapCatalog struct {
	maps   []domain.GlobalMap
	byName map[string]int
	names  []string
	logger *zap.Logger
}

// BuildMapCatalog fetches both map sources concurrently and merges them. The
// GlobalAPI list is authoritative; KZ:GO enriches tiers, bonus counts, mode
// filters and mapper names.
func BuildMapCatalog(ctx context.Context, globalAPI *GlobalAPIService, kzgo *KZGOService, logger *zap.Logger) (*MapCatalog, error) {
	var (
		globalMaps []domain.GlobalMap
		globalErr  error
		kzgoMaps   []KZGOMap
		kzgoErr    error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		globalMaps, globalErr = globalAPI.GetMaps(ctx)
	})
	wg.Go(func() {
		kzgoMaps, kzgoErr = kzgo.GetMaps(ctx)
	})
	wg.Wait()

	if globalErr != nil {
		return nil, errors.NewServiceError("failed to fetch global map pool", "maps", "build", globalErr)
	}
	if kzgoErr != nil {
		// Tiers degrade to unknown, the catalog still works.
		logger.Warn("Failed to fetch KZ:GO map info", zap.Error(kzgoErr))
	}

	merged := mergeMapInfo(globalMaps, kzgoMaps)

	catalog := NewMapCatalog(merged, logger)
	logger.Info("Map catalog built",
		zap.Int("total_maps", len(merged)),
		zap.Int("kzgo_matched", len(kzgoMaps)),
	)
	return catalog, nil
}

// mergeMapInfo enriches the authoritative GlobalAPI map list with KZ:GO
// metadata, matched by name, and sorts the result.
func mergeMapInfo(globalMaps []domain.GlobalMap, kzgoMaps []KZGOMap) []domain.GlobalMap {
	kzgoByName := make(map[string]KZGOMap, len(kzgoMaps))
	for _, m := range kzgoMaps {
		kzgoByName[m.Name] = m
	}

	merged := make([]domain.GlobalMap, 0, len(globalMaps))
	for _, m := range globalMaps {
		if info, ok := kzgoByName[m.Name]; ok {
			m.Tier = info.Tier
			m.Courses = info.Bonuses
			m.KZT = info.KZT
			m.SKZ = info.SKZ
			m.VNL = info.VNL
			m.SP = info.SP
			m.VP = info.VP
			m.Mappers = info.Mappers
		}
		merged = append(merged, m)
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Name < merged[j].Name
	})
	return merged
}

func NewMapCatalog(maps []domain.GlobalMap, logger *zap.Logger) *MapCatalog {
	byName := make(map[string]int, len(maps))
	names := make([]string, 0, len(maps))
	for i, m := range maps {
		byName[util.NormalizeMapName(m.Name)] = i
		names = append(names, m.Name)
	}

	return &MapCatalog{
		maps:   maps,
		byName: byName,
		names:  names,
		logger: logger,
	}
}

// Get looks a map up by name: exact match first, then best fuzzy match.
func (c *MapCatalog) Get(name string) (*domain.GlobalMap, bool) {
	normalized := util.NormalizeMapName(name)
	if idx, ok := c.byName[normalized]; ok {
		m := c.maps[idx]
		return &m, true
	}

	matches := c.FuzzyMatch(name, 1)
	if len(matches) == 0 {
		return nil, false
	}
	return &matches[0], true
}

// FuzzyMatch returns up to limit maps whose names contain the input, prefix
// matches ranked first. Used for autocomplete.
func (c *MapCatalog) FuzzyMatch(input string, limit int) []domain.GlobalMap {
	normalized := util.NormalizeMapName(input)
	if normalized == "" || limit <= 0 {
		return nil
	}

	var prefixed, contained []domain.GlobalMap
	for _, m := range c.maps {
		name := util.NormalizeMapName(m.Name)
		switch {
		case strings.HasPrefix(name, normalized):
			prefixed = append(prefixed, m)
		case strings.Contains(name, normalized):
			contained = append(contained, m)
		}
	}

	results := append(prefixed, contained...)
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Names returns every map name in sorted order.
func (c *MapCatalog) Names() []string {
	return c.names
}

// Len returns the catalog size.
func (c *MapCatalog) Len() int {
	return len(c.maps)
}

// Unfinished returns the catalog maps the player has not completed in one
// category, optionally constrained to a tier (0 = any). Maps without a ranked
// filter for the mode are excluded, and TP runs additionally skip tier 7 maps
// and kzpro maps since those cannot be completed with teleports.
func (c *MapCatalog) Unfinished(completed map[int]bool, mode domain.Mode, hasTeleports bool, tier int) []domain.GlobalMap {
	var unfinished []domain.GlobalMap
	for _, m := range c.maps {
		if completed[m.ID] || !m.HasModeFilter(mode) {
			continue
		}
		if tier > 0 && m.Tier != tier {
			continue
		}
		if hasTeleports && (m.Tier == 7 || strings.HasPrefix(m.Name, "kzpro_")) {
			continue
		}
		unfinished = append(unfinished, m)
	}
	return unfinished
}

// Random picks a random map, optionally constrained to a tier (0 = any).
func (c *MapCatalog) Random(tier int) (*domain.GlobalMap, bool) {
	candidates := c.maps
	if tier > 0 {
		candidates = nil
		for _, m := range c.maps {
			if m.Tier == tier {
				candidates = append(candidates, m)
			}
		}
	}

	if len(candidates) == 0 {
		return nil, false
	}
	m := candidates[rand.Intn(len(candidates))]
	return &m, true
}
