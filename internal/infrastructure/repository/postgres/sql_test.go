package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected true for sql.ErrNoRows")
	}
	if !isNotFound(fmt.Errorf("get match: %w", sql.ErrNoRows)) {
		t.Fatalf("expected true for wrapped sql.ErrNoRows")
	}
	if isNotFound(fakeErr("pq: relation matches does not exist")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches unique violation code", func(t *testing.T) {
		err := fmt.Errorf("insert season: %w", &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for 23505")
		}
	})

	t.Run("ignores other pq codes", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "23503"}) {
			t.Fatalf("expected false for foreign key violation")
		}
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		if isUniqueViolation(fakeErr("duplicate key")) {
			t.Fatalf("expected false for non pq error")
		}
	})
}

func TestNullTimeToPtr(t *testing.T) {
	t.Run("returns nil for null", func(t *testing.T) {
		if got := nullTimeToPtr(sql.NullTime{}); got != nil {
			t.Fatalf("expected nil, got %v", got)
		}
	})

	t.Run("normalizes to utc", func(t *testing.T) {
		loc := time.FixedZone("CEST", 2*60*60)
		got := nullTimeToPtr(sql.NullTime{Time: time.Date(2026, 4, 19, 9, 0, 0, 0, loc), Valid: true})
		if got == nil || !got.Equal(time.Date(2026, 4, 19, 7, 0, 0, 0, time.UTC)) || got.Location() != time.UTC {
			t.Fatalf("unexpected time: %v", got)
		}
	})
}

func TestNullableTime(t *testing.T) {
	if got := nullableTime(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	now := time.Date(2026, 4, 11, 14, 0, 0, 0, time.UTC)
	if got, ok := nullableTime(&now).(time.Time); !ok || !got.Equal(now) {
		t.Fatalf("unexpected value: %v", got)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
