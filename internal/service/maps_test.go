package service

import (
	"encoding/json"
	"testing"

	"github.com/schnose/schnose-bot-go/internal/domain"
	"go.uber.org/zap"
)

func testCatalog() *MapCatalog {
	maps := []domain.GlobalMap{
		{ID: 1, Name: "kz_lionharder", Tier: 7, Validated: true},
		{ID: 2, Name: "kz_lionheart", Tier: 6, Validated: true},
		{ID: 3, Name: "kz_beginnerblock_go", Tier: 2, Validated: true},
		{ID: 4, Name: "kz_eventide", Tier: 3, Validated: true},
		{ID: 5, Name: "kzpro_concrete", Tier: 4, Validated: true},
	}
	return NewMapCatalog(maps, zap.NewNop())
}

func TestCatalogGetExact(t *testing.T) {
	catalog := testCatalog()

	m, ok := catalog.Get("kz_lionharder")
	if !ok || m.ID != 1 {
		t.Fatalf("Get(kz_lionharder) = %v, %v", m, ok)
	}

	// Normalization makes the lookup case and separator insensitive.
	m, ok = catalog.Get("KZ LionHarder")
	if !ok || m.ID != 1 {
		t.Fatalf("Get(KZ LionHarder) = %v, %v", m, ok)
	}
}

func TestCatalogGetFuzzy(t *testing.T) {
	catalog := testCatalog()

	m, ok := catalog.Get("lionharder")
	if !ok || m.Name != "kz_lionharder" {
		t.Fatalf("Get(lionharder) = %v, %v", m, ok)
	}

	if _, ok := catalog.Get("no_such_map"); ok {
		t.Fatal("Get(no_such_map) matched")
	}
}

func TestCatalogFuzzyMatchRanking(t *testing.T) {
	catalog := testCatalog()

	matches := catalog.FuzzyMatch("kz_lion", 10)
	if len(matches) != 2 {
		t.Fatalf("FuzzyMatch(kz_lion) returned %d maps, want 2", len(matches))
	}
	for _, m := range matches {
		if m.Name != "kz_lionharder" && m.Name != "kz_lionheart" {
			t.Errorf("unexpected match %q", m.Name)
		}
	}

	// Prefix matches rank ahead of substring matches.
	matches = catalog.FuzzyMatch("kz", 10)
	if len(matches) == 0 {
		t.Fatal("FuzzyMatch(kz) returned nothing")
	}
	if got := matches[0].Name; got == "kzpro_concrete" {
		t.Errorf("substring match %q ranked first", got)
	}

	if matches := catalog.FuzzyMatch("kz", 2); len(matches) != 2 {
		t.Errorf("FuzzyMatch limit not honored, got %d", len(matches))
	}
}

func TestKZGOMapModeFilters(t *testing.T) {
	payload := `{
		"name": "kz_lionharder",
		"tier": 7,
		"bonuses": 2,
		"kzt": true,
		"skz": true,
		"vnl": false,
		"sp": true,
		"vp": false,
		"mapperNames": ["Cyclo"]
	}`

	var m KZGOMap
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !m.KZT || !m.SKZ || m.VNL {
		t.Errorf("filters = kzt=%v skz=%v vnl=%v, want true/true/false", m.KZT, m.SKZ, m.VNL)
	}
	if m.Tier != 7 || m.Bonuses != 2 || !m.SP || m.VP {
		t.Errorf("metadata = %+v", m)
	}
}

func TestMergeMapInfoCarriesFilters(t *testing.T) {
	globalMaps := []domain.GlobalMap{
		{ID: 1, Name: "kz_lionharder", Validated: true},
		{ID: 2, Name: "kz_eventide", Validated: true},
	}
	kzgoMaps := []KZGOMap{
		{Name: "kz_lionharder", Tier: 7, Bonuses: 2, KZT: true, SKZ: true, VNL: false, SP: true, Mappers: []string{"Cyclo"}},
	}

	merged := mergeMapInfo(globalMaps, kzgoMaps)
	if len(merged) != 2 {
		t.Fatalf("merged %d maps, want 2", len(merged))
	}

	var lionharder domain.GlobalMap
	for _, m := range merged {
		if m.Name == "kz_lionharder" {
			lionharder = m
		}
	}
	if !lionharder.KZT || !lionharder.SKZ || lionharder.VNL {
		t.Errorf("filters = kzt=%v skz=%v vnl=%v, want true/true/false",
			lionharder.KZT, lionharder.SKZ, lionharder.VNL)
	}
	if lionharder.Tier != 7 || lionharder.Courses != 2 {
		t.Errorf("tier/courses = %d/%d, want 7/2", lionharder.Tier, lionharder.Courses)
	}
}

func TestCatalogUnfinished(t *testing.T) {
	maps := []domain.GlobalMap{
		{ID: 1, Name: "kz_lionharder", Tier: 7, KZT: true, SKZ: true},
		{ID: 2, Name: "kz_lionheart", Tier: 6, KZT: true, SKZ: true},
		{ID: 3, Name: "kzpro_concrete", Tier: 4, KZT: true},
		{ID: 4, Name: "kz_eventide", Tier: 3, KZT: true, SKZ: true, VNL: true},
	}
	catalog := NewMapCatalog(maps, zap.NewNop())
	completed := map[int]bool{4: true}

	names := func(maps []domain.GlobalMap) []string {
		out := make([]string, 0, len(maps))
		for _, m := range maps {
			out = append(out, m.Name)
		}
		return out
	}

	// Completed maps and maps without a mode filter drop out.
	got := catalog.Unfinished(completed, domain.ModeSimpleKZ, false, 0)
	if len(got) != 2 || got[0].Name != "kz_lionharder" || got[1].Name != "kz_lionheart" {
		t.Errorf("SKZ PRO unfinished = %v", names(got))
	}

	// TP runs skip tier 7 and kzpro maps.
	got = catalog.Unfinished(completed, domain.ModeKZTimer, true, 0)
	if len(got) != 1 || got[0].Name != "kz_lionheart" {
		t.Errorf("KZT TP unfinished = %v", names(got))
	}

	got = catalog.Unfinished(nil, domain.ModeSimpleKZ, false, 6)
	if len(got) != 1 || got[0].Name != "kz_lionheart" {
		t.Errorf("tier 6 unfinished = %v", names(got))
	}
}

func TestCatalogRandom(t *testing.T) {
	catalog := testCatalog()

	if _, ok := catalog.Random(0); !ok {
		t.Error("Random(0) found nothing")
	}

	m, ok := catalog.Random(7)
	if !ok || m.Tier != 7 {
		t.Fatalf("Random(7) = %v, %v", m, ok)
	}

	if _, ok := catalog.Random(1); ok {
		t.Error("Random(1) matched despite no tier 1 maps")
	}
}
