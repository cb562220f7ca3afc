package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/schnose/schnose-bot-go/internal/constants"
	"github.com/schnose/schnose-bot-go/internal/domain"
	"github.com/schnose/schnose-bot-go/internal/util"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

// NoRecordPlaceholder is rendered wherever a category has no record.
const NoRecordPlaceholder = "😔"

// PlaceFetcher fetches a record's leaderboard placement. GlobalAPIService
// satisfies it; a nil fetcher disables placements entirely.
type PlaceFetcher interface {
	GetPlace(ctx context.Context, recordID int) (int, error)
}

// NormalizedEntry is one category of a record embed: a display-ready line and
// an optional replay link pair.
type NormalizedEntry struct {
	Line  string
	Links *domain.ReplayLinks
}

// IsPlaceholder reports whether the entry stands in for a missing record.
func (e NormalizedEntry) IsPlaceholder() bool {
	return e.Line == NoRecordPlaceholder
}

// RecordFormatter normalizes fallible TP/PRO record pairs into display-ready
// entries. It never fails: fetch errors become placeholders, placement
// failures silently drop the place segment.
type RecordFormatter struct {
	places PlaceFetcher
	logger *zap.Logger
}

func NewRecordFormatter(places PlaceFetcher, logger *zap.Logger) *RecordFormatter {
	return &RecordFormatter{
		places: places,
		logger: logger,
	}
}

// NormalizePair normalizes both categories of a record query, teleport first.
// The two optional placement lookups run concurrently.
func (f *RecordFormatter) NormalizePair(ctx context.Context, tp *domain.RunRecord, tpErr error, pro *domain.RunRecord, proErr error) (NormalizedEntry, NormalizedEntry) {
	tpPlace, proPlace := 0, 0

	if f.places != nil {
		var wg conc.WaitGroup
		if tpErr == nil && tp != nil {
			wg.Go(func() {
				tpPlace = f.fetchPlace(ctx, tp.ID)
			})
		}
		if proErr == nil && pro != nil {
			wg.Go(func() {
				proPlace = f.fetchPlace(ctx, pro.ID)
			})
		}
		wg.Wait()
	}

	tpEntry := normalizeOne(tp, tpErr, tpPlace, true)
	proEntry := normalizeOne(pro, proErr, proPlace, false)
	return tpEntry, proEntry
}

// NormalizeOne normalizes a single category without a placement lookup.
func (f *RecordFormatter) NormalizeOne(rec *domain.RunRecord, fetchErr error, assisted bool) NormalizedEntry {
	return normalizeOne(rec, fetchErr, 0, assisted)
}

// NormalizeWithPlacement normalizes a single record including its leaderboard
// placement when placement fetching is enabled.
func (f *RecordFormatter) NormalizeWithPlacement(ctx context.Context, rec *domain.RunRecord, assisted bool) NormalizedEntry {
	place := 0
	if f.places != nil && rec != nil {
		place = f.fetchPlace(ctx, rec.ID)
	}
	return normalizeOne(rec, nil, place, assisted)
}

func (f *RecordFormatter) fetchPlace(ctx context.Context, recordID int) int {
	place, err := f.places.GetPlace(ctx, recordID)
	if err != nil {
		f.logger.Debug("Placement fetch failed, omitting place segment",
			zap.Int("record_id", recordID),
			zap.Error(err),
		)
		return 0
	}
	return place
}

// normalizeOne builds the display line for one category. The assist-count
// annotation only ever appears on the teleport category.
func normalizeOne(rec *domain.RunRecord, fetchErr error, place int, assisted bool) NormalizedEntry {
	if fetchErr != nil || rec == nil {
		return NormalizedEntry{Line: NoRecordPlaceholder}
	}

	segments := make([]string, 0, 3)
	if place > 0 {
		segments = append(segments, fmt.Sprintf("[#%d]", place))
	}
	segments = append(segments, util.FormatRunTime(rec.Time))
	if assisted {
		segments = append(segments, TeleportAnnotation(rec.Teleports))
	}

	line := strings.TrimSpace(strings.Join(segments, " "))
	line += "\n> by " + playerLink(rec)

	return NormalizedEntry{
		Line:  line,
		Links: rec.Replay(),
	}
}

// TeleportAnnotation renders the assist count: empty for a clean run,
// "(1 TP)" for one, "(n TPs)" otherwise.
func TeleportAnnotation(teleports int) string {
	switch {
	case teleports <= 0:
		return ""
	case teleports == 1:
		return "(1 TP)"
	default:
		return fmt.Sprintf("(%d TPs)", teleports)
	}
}

// playerLink renders the record holder as a markdown link to their KZ:GO
// profile, pre-filtered to the record's mode.
func playerLink(rec *domain.RunRecord) string {
	return fmt.Sprintf("[%s](%s%s?%s=)",
		rec.PlayerName,
		constants.URLConfig.KZGOPlayerURL,
		rec.SteamID.String(),
		strings.ToLower(rec.Mode.Short()),
	)
}

// FormatReplayLinks builds the combined replay block, TP line first. Returns
// "" when neither category has a usable link pair.
func FormatReplayLinks(tp, pro *domain.ReplayLinks) string {
	var lines []string
	if tp != nil {
		lines = append(lines, fmt.Sprintf("TP Replay: [View Online](%s) | [Download](%s)", tp.View, tp.Download))
	}
	if pro != nil {
		lines = append(lines, fmt.Sprintf("PRO Replay: [View Online](%s) | [Download](%s)", pro.View, pro.Download))
	}
	return strings.Join(lines, "\n")
}

// PlayerProfileLinks builds the profile-link block from whichever category
// succeeded, teleport checked first. Returns "" when both failed.
func PlayerProfileLinks(tp, pro *domain.RunRecord) string {
	rec := tp
	if rec == nil {
		rec = pro
	}
	if rec == nil {
		return ""
	}

	return fmt.Sprintf("Player: [KZ:GO](%s%s) | [Steam](%s%d)",
		constants.URLConfig.KZGOPlayerURL,
		rec.SteamID.String(),
		constants.URLConfig.SteamProfileURL,
		rec.SteamID.ID64(),
	)
}
