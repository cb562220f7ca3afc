package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/schnose/schnose-bot-go/internal/domain"
	"go.uber.org/zap"
)

type fakePlaceFetcher struct {
	places map[int]int
	err    error
}

func (f *fakePlaceFetcher) GetPlace(_ context.Context, recordID int) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.places[recordID], nil
}

func testRecord(t *testing.T) *domain.RunRecord {
	t.Helper()
	steamID, err := domain.ParseSteamID("STEAM_1:1:161178172")
	if err != nil {
		t.Fatal(err)
	}
	return &domain.RunRecord{
		ID:                1337,
		PlayerName:        "AlphaKeks",
		SteamID:           steamID,
		Mode:              domain.ModeSimpleKZ,
		MapName:           "kz_lionharder",
		Time:              31.248,
		Teleports:         2,
		ReplayViewURL:     "https://viewer.example/1",
		ReplayDownloadURL: "https://download.example/1",
	}
}

func TestNormalizePairBothFailed(t *testing.T) {
	formatter := NewRecordFormatter(nil, zap.NewNop())

	tp, pro := formatter.NormalizePair(context.Background(),
		nil, errors.New("timeout"),
		nil, errors.New("500"))

	for name, entry := range map[string]NormalizedEntry{"tp": tp, "pro": pro} {
		if !entry.IsPlaceholder() {
			t.Errorf("%s entry = %q, want placeholder", name, entry.Line)
		}
		if entry.Links != nil {
			t.Errorf("%s entry carries links, want nil", name)
		}
	}
}

func TestNormalizePairSuccessAndFailure(t *testing.T) {
	formatter := NewRecordFormatter(nil, zap.NewNop())

	tp, pro := formatter.NormalizePair(context.Background(),
		testRecord(t), nil,
		nil, errors.New("no record"))

	if tp.IsPlaceholder() {
		t.Fatal("tp entry is a placeholder, want a rendered line")
	}
	if !strings.Contains(tp.Line, "(2 TPs)") {
		t.Errorf("tp line %q does not contain assist annotation", tp.Line)
	}
	if !strings.Contains(tp.Line, "00:31.248") {
		t.Errorf("tp line %q does not contain formatted time", tp.Line)
	}
	if !strings.Contains(tp.Line, "[AlphaKeks](https://kzgo.eu/players/STEAM_1:1:161178172?skz=)") {
		t.Errorf("tp line %q does not contain player link", tp.Line)
	}
	if tp.Links == nil {
		t.Error("tp entry has no replay links, want both URLs")
	}

	if !pro.IsPlaceholder() {
		t.Errorf("pro entry = %q, want placeholder", pro.Line)
	}
	if pro.Links != nil {
		t.Error("pro entry carries links, want nil")
	}

	block := FormatReplayLinks(tp.Links, pro.Links)
	if !strings.Contains(block, "TP Replay:") {
		t.Errorf("replay block %q missing TP line", block)
	}
	if strings.Contains(block, "PRO Replay:") {
		t.Errorf("replay block %q contains PRO line for a failed category", block)
	}
}

func TestTeleportAnnotation(t *testing.T) {
	tests := []struct {
		teleports int
		want      string
	}{
		{0, ""},
		{1, "(1 TP)"},
		{2, "(2 TPs)"},
		{69, "(69 TPs)"},
	}

	for _, tt := range tests {
		if got := TeleportAnnotation(tt.teleports); got != tt.want {
			t.Errorf("TeleportAnnotation(%d) = %q, want %q", tt.teleports, got, tt.want)
		}
	}
}

func TestProCategoryNeverAnnotated(t *testing.T) {
	formatter := NewRecordFormatter(nil, zap.NewNop())

	// A PRO record with a nonzero teleport count cannot happen upstream, but
	// the pro entry must not render an annotation regardless.
	rec := testRecord(t)
	entry := formatter.NormalizeOne(rec, nil, false)
	if strings.Contains(entry.Line, "TP)") {
		t.Errorf("pro line %q carries an assist annotation", entry.Line)
	}
}

func TestReplayLinksRequireBothURLs(t *testing.T) {
	formatter := NewRecordFormatter(nil, zap.NewNop())

	viewOnly := testRecord(t)
	viewOnly.ReplayDownloadURL = ""
	if entry := formatter.NormalizeOne(viewOnly, nil, true); entry.Links != nil {
		t.Error("view-only record produced a link pair")
	}

	downloadOnly := testRecord(t)
	downloadOnly.ReplayViewURL = ""
	if entry := formatter.NormalizeOne(downloadOnly, nil, true); entry.Links != nil {
		t.Error("download-only record produced a link pair")
	}

	neither := testRecord(t)
	neither.ReplayViewURL = ""
	neither.ReplayDownloadURL = ""
	if entry := formatter.NormalizeOne(neither, nil, true); entry.Links != nil {
		t.Error("linkless record produced a link pair")
	}
}

func TestNormalizePairPlacement(t *testing.T) {
	places := &fakePlaceFetcher{places: map[int]int{1337: 3}}
	formatter := NewRecordFormatter(places, zap.NewNop())

	tp, _ := formatter.NormalizePair(context.Background(), testRecord(t), nil, nil, errors.New("none"))
	if !strings.HasPrefix(tp.Line, "[#3] ") {
		t.Errorf("tp line %q does not start with place segment", tp.Line)
	}
}

func TestNormalizeWithPlacement(t *testing.T) {
	places := &fakePlaceFetcher{places: map[int]int{1337: 12}}
	formatter := NewRecordFormatter(places, zap.NewNop())

	entry := formatter.NormalizeWithPlacement(context.Background(), testRecord(t), true)
	if !strings.HasPrefix(entry.Line, "[#12] ") {
		t.Errorf("line %q does not start with place segment", entry.Line)
	}

	// Without a fetcher the segment is simply absent.
	bare := NewRecordFormatter(nil, zap.NewNop())
	entry = bare.NormalizeWithPlacement(context.Background(), testRecord(t), true)
	if strings.Contains(entry.Line, "[#") {
		t.Errorf("line %q contains a place segment without a fetcher", entry.Line)
	}
}

func TestNormalizePairPlacementFailureOmitted(t *testing.T) {
	places := &fakePlaceFetcher{err: errors.New("place service down")}
	formatter := NewRecordFormatter(places, zap.NewNop())

	tp, _ := formatter.NormalizePair(context.Background(), testRecord(t), nil, nil, errors.New("none"))
	if tp.IsPlaceholder() {
		t.Fatal("placement failure turned the entry into a placeholder")
	}
	if strings.Contains(tp.Line, "[#") {
		t.Errorf("tp line %q contains a place segment despite fetch failure", tp.Line)
	}
}

func TestFormatReplayLinksOrdering(t *testing.T) {
	tp := &domain.ReplayLinks{View: "tv", Download: "td"}
	pro := &domain.ReplayLinks{View: "pv", Download: "pd"}

	block := FormatReplayLinks(tp, pro)
	tpIdx := strings.Index(block, "TP Replay:")
	proIdx := strings.Index(block, "PRO Replay:")
	if tpIdx == -1 || proIdx == -1 {
		t.Fatalf("block %q missing a line", block)
	}
	if tpIdx > proIdx {
		t.Errorf("block %q orders PRO before TP", block)
	}

	if got := FormatReplayLinks(nil, nil); got != "" {
		t.Errorf("FormatReplayLinks(nil, nil) = %q, want empty", got)
	}
}

func TestPlayerProfileLinks(t *testing.T) {
	tp := testRecord(t)
	pro := testRecord(t)
	pro.PlayerName = "someone-else"

	block := PlayerProfileLinks(tp, pro)
	if !strings.Contains(block, "STEAM_1:1:161178172") {
		t.Errorf("profile block %q missing canonical steam id", block)
	}
	if !strings.Contains(block, "76561198282622073") {
		t.Errorf("profile block %q missing steam id64", block)
	}

	if got := PlayerProfileLinks(nil, pro); got == "" {
		t.Error("profile block empty when only pro succeeded")
	}
	if got := PlayerProfileLinks(nil, nil); got != "" {
		t.Errorf("PlayerProfileLinks(nil, nil) = %q, want empty", got)
	}
}
