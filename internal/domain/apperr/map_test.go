package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestMapErrorFoldsInfrastructureErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Code
	}{
		{"record not found", gorm.ErrRecordNotFound, CodeNotFound},
		{"duplicated key", gorm.ErrDuplicatedKey, CodeConflict},
		{"context canceled", context.Canceled, CodeRetryable},
		{"deadline exceeded", context.DeadlineExceeded, CodeRetryable},
		{"pg unique violation", &pgconn.PgError{Code: "23505"}, CodeConflict},
		{"pg serialization failure", &pgconn.PgError{Code: "40001"}, CodeRetryable},
		{"pg deadlock", &pgconn.PgError{Code: "40P01"}, CodeRetryable},
		{"unknown", errors.New("boom"), CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MapError("op", tc.err)
			if !IsCode(got, tc.want) {
				t.Fatalf("MapError(%v) code = %s, want %s", tc.err, CodeOf(got), tc.want)
			}
		})
	}
}

func TestMapErrorPassesCodedErrorsThrough(t *testing.T) {
	original := New(CodeQuotaExceeded, "op", "no attempts remaining")
	mapped := MapError("outer", original)
	if mapped != original {
		t.Fatalf("coded error was rewrapped: %v", mapped)
	}

	wrapped := fmt.Errorf("outer: %w", original)
	if !IsCode(MapError("outer", wrapped), CodeQuotaExceeded) {
		t.Fatalf("wrapped coded error lost its code")
	}
}

func TestMapErrorNil(t *testing.T) {
	if got := MapError("op", nil); got != nil {
		t.Fatalf("MapError(nil) = %v, want nil", got)
	}
}
