package command

import (
	"errors"
	"fmt"

	"github.com/sourcegraph/conc"

	"github.com/schnose/schnose-bot-go/internal/domain"
	boterrors "github.com/schnose/schnose-bot-go/pkg/errors"
)

// noRecordsMessage is shown when neither category produced a record.
const noRecordsMessage = "No records found. 😔"

// resolveMap looks the map option up in the catalog.
func resolveMap(deps *Dependencies, opts Options) (*domain.GlobalMap, error) {
	name := opts.String("map")
	if name == nil {
		return nil, boterrors.NewValidationError("please choose a map", "map", nil)
	}
	m, ok := deps.Maps.Get(*name)
	if !ok {
		return nil, boterrors.NewValidationError(fmt.Sprintf("%s is not a global map", *name), "map", *name)
	}
	return m, nil
}

// resolveCourse validates the bonus course option against the map.
func resolveCourse(m *domain.GlobalMap, opts Options) (int, error) {
	course := 1
	if v := opts.Int("course"); v != nil {
		course = *v
	}
	if !m.HasCourse(course) {
		return 0, boterrors.NewValidationError(fmt.Sprintf("%s has no bonus %d", m.Name, course), "course", course)
	}
	return course, nil
}

// resolveTarget parses the player option against the caller.
func resolveTarget(cmdCtx *Context, opts Options) (domain.Target, error) {
	return domain.ParseTarget(opts.String("player"), cmdCtx.CallerID)
}

// fetchPair runs the TP and PRO lookups concurrently. Either result may be
// nil with its error set, the caller decides what a double miss means.
func fetchPair(fetch func(hasTeleports bool) (*domain.RunRecord, error)) (tp *domain.RunRecord, tpErr error, pro *domain.RunRecord, proErr error) {
	var wg conc.WaitGroup
	wg.Go(func() {
		tp, tpErr = fetch(true)
	})
	wg.Go(func() {
		pro, proErr = fetch(false)
	})
	wg.Wait()
	return tp, tpErr, pro, proErr
}

// pairError returns ErrNoRecords when neither category produced a record.
func pairError(tp *domain.RunRecord, tpErr error, pro *domain.RunRecord, proErr error) error {
	if (tp == nil || tpErr != nil) && (pro == nil || proErr != nil) {
		return boterrors.ErrNoRecords
	}
	return nil
}

// userErrorMessage maps an error to the message shown to the user.
func userErrorMessage(err error) string {
	if boterrors.IsNoRecords(err) {
		return noRecordsMessage
	}
	var botErr *boterrors.BotError
	if errors.As(err, &botErr) {
		return botErr.Message
	}
	return "Something went wrong, please try again later."
}
