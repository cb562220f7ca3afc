package service

import (
	"database/sql"
	"math"
	"testing"

	"github.com/schnose/schnose-bot-go/internal/domain"
)

func TestSteamIDColumnRoundTrip(t *testing.T) {
	// Account ids past 2^31 are common on newer accounts and must survive
	// the trip through the database untouched.
	for _, id32 := range []uint32{1, math.MaxInt32, math.MaxInt32 + 1, math.MaxUint32} {
		sid := domain.SteamIDFromID32(id32)

		col := steamIDColumn(&sid)
		if !col.Valid {
			t.Fatalf("steamIDColumn(%d) not valid", id32)
		}

		got, ok := steamIDFromColumn(col)
		if !ok || got.ID32() != id32 {
			t.Errorf("round trip of %d = %v, %v", id32, got, ok)
		}
	}
}

func TestSteamIDColumnEmpty(t *testing.T) {
	if col := steamIDColumn(nil); col.Valid {
		t.Error("steamIDColumn(nil) is valid")
	}

	var zero domain.SteamID
	if col := steamIDColumn(&zero); col.Valid {
		t.Error("steamIDColumn(zero) is valid")
	}
}

func TestSteamIDFromColumnRange(t *testing.T) {
	tests := []struct {
		name  string
		value sql.NullInt64
	}{
		{"null", sql.NullInt64{}},
		{"zero", sql.NullInt64{Int64: 0, Valid: true}},
		{"negative", sql.NullInt64{Int64: -5, Valid: true}},
		{"too large", sql.NullInt64{Int64: math.MaxUint32 + 1, Valid: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if sid, ok := steamIDFromColumn(tt.value); ok {
				t.Errorf("steamIDFromColumn(%v) = %v, want rejection", tt.value, sid)
			}
		})
	}
}
