package command

import (
	"errors"
	"testing"

	"github.com/schnose/schnose-bot-go/internal/domain"
	boterrors "github.com/schnose/schnose-bot-go/pkg/errors"
)

func TestPairError(t *testing.T) {
	rec := &domain.RunRecord{ID: 1}
	fetchErr := errors.New("timeout")

	tests := []struct {
		name    string
		tp      *domain.RunRecord
		tpErr   error
		pro     *domain.RunRecord
		proErr  error
		wantErr bool
	}{
		{"both failed", nil, fetchErr, nil, fetchErr, true},
		{"tp only", rec, nil, nil, fetchErr, false},
		{"pro only", nil, fetchErr, rec, nil, false},
		{"both succeeded", rec, nil, rec, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pairError(tt.tp, tt.tpErr, tt.pro, tt.proErr)
			if tt.wantErr != (err != nil) {
				t.Fatalf("pairError = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !boterrors.IsNoRecords(err) {
					t.Errorf("pairError = %v, want ErrNoRecords", err)
				}
				if got := userErrorMessage(err); got != noRecordsMessage {
					t.Errorf("double miss rendered as %q", got)
				}
			}
		})
	}
}

func TestUserErrorMessage(t *testing.T) {
	if got := userErrorMessage(boterrors.ErrNoRecords); got != noRecordsMessage {
		t.Errorf("no-records error rendered as %q", got)
	}

	validation := boterrors.NewValidationError("kz_fake is not a global map", "map", "kz_fake")
	if got := userErrorMessage(validation); got != "kz_fake is not a global map" {
		t.Errorf("validation error rendered as %q", got)
	}

	if got := userErrorMessage(errors.New("dial tcp: timeout")); got != "Something went wrong, please try again later." {
		t.Errorf("internal error leaked to the user: %q", got)
	}
}
