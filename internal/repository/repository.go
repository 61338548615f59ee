package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "github.com/spec-kit/nexa-sys/pkg/util"
)

// Sentinel errors shared by every implementation.
var (
	ErrNotFound  = apperrors.ErrRecordNotFound
	ErrDuplicate = apperrors.ErrDuplicateKey
)

// ErrInvalidReference reports a foreign key pointing at a missing row.
var ErrInvalidReference = errors.New("invalid reference")

// Repositories bundles one implementation of every entity repository.
type Repositories struct {
	Users    UserRepository
	Clients  ClientRepository
	Projects ProjectRepository
	Tasks    TaskRepository
	Fields   FieldDefinitionRepository
}

// NewPostgresRepositories returns Postgres-backed repositories sharing pool.
func NewPostgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:    NewUserRepository(pool),
		Clients:  NewClientRepository(pool),
		Projects: NewProjectRepository(pool),
		Tasks:    NewTaskRepository(pool),
		Fields:   NewFieldDefinitionRepository(pool),
	}
}

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	invalidTextValue    = "22P02"
)

// translateError folds driver errors of a write into the repository
// sentinels. A malformed uuid among the written values is a bad reference.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
		case foreignKeyViolation:
			return fmt.Errorf("%w: %s", ErrInvalidReference, pgErr.ConstraintName)
		case invalidTextValue:
			return fmt.Errorf("%w: %s", ErrInvalidReference, pgErr.Message)
		}
	}
	return err
}

// translateReadError is translateError for lookups, where a malformed uuid
// cannot match any row.
func translateReadError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == invalidTextValue {
		return ErrNotFound
	}
	return translateError(err)
}

func requireAffected(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return apperrors.IsNotFound(err)
}

// IsDuplicate reports whether err is a unique key collision.
func IsDuplicate(err error) bool {
	return apperrors.IsDuplicate(err)
}
