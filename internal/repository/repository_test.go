package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestTranslateError(t *testing.T) {
	boom := errors.New("boom")
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}, ErrDuplicate},
		{"foreign key violation", &pgconn.PgError{Code: "23503", ConstraintName: "tasks_assigned_to_fkey"}, ErrInvalidReference},
		{"malformed uuid in written values", &pgconn.PgError{Code: "22P02"}, ErrInvalidReference},
		{"other driver error", &pgconn.PgError{Code: "40001"}, nil},
		{"plain error", boom, boom},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := translateError(tc.err)
			switch {
			case tc.err == nil:
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
			case tc.want == nil:
				if got != tc.err {
					t.Fatalf("expected error passed through, got %v", got)
				}
			case !errors.Is(got, tc.want):
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestTranslateReadError(t *testing.T) {
	if got := translateReadError(&pgconn.PgError{Code: "22P02"}); !errors.Is(got, ErrNotFound) {
		t.Fatalf("malformed uuid lookup must be not found, got %v", got)
	}
	if got := translateReadError(pgx.ErrNoRows); !errors.Is(got, ErrNotFound) {
		t.Fatalf("expected not found, got %v", got)
	}
	if got := translateReadError(&pgconn.PgError{Code: "23505"}); !errors.Is(got, ErrDuplicate) {
		t.Fatalf("expected duplicate, got %v", got)
	}
	if IsNotFound(translateError(&pgconn.PgError{Code: "22P02"})) {
		t.Fatalf("a write with a malformed uuid must not read as not found")
	}
}

func TestRequireAffected(t *testing.T) {
	if err := requireAffected(pgconn.NewCommandTag("UPDATE 1"), nil); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if err := requireAffected(pgconn.NewCommandTag("UPDATE 0"), nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for zero rows, got %v", err)
	}
	err := requireAffected(pgconn.CommandTag{}, &pgconn.PgError{Code: "23503"})
	if !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("expected invalid reference, got %v", err)
	}
}
