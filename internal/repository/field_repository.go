package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/nexa-sys/internal/domain"
)

// FieldFilter selects definitions of one entity.
type FieldFilter struct {
	Entity     domain.FieldEntity
	ActiveOnly bool
}

// FieldDefinitionRepository stores custom field definitions for clients and projects.
type FieldDefinitionRepository interface {
	Create(ctx context.Context, field *domain.FieldDefinition) error
	Update(ctx context.Context, field *domain.FieldDefinition) error
	GetByID(ctx context.Context, entity domain.FieldEntity, id string) (*domain.FieldDefinition, error)
	List(ctx context.Context, filter FieldFilter) ([]domain.FieldDefinition, error)
}

type fieldDefinitionRepository struct {
	pool *pgxpool.Pool
}

// NewFieldDefinitionRepository instantiates repository.
func NewFieldDefinitionRepository(pool *pgxpool.Pool) FieldDefinitionRepository {
	return &fieldDefinitionRepository{pool: pool}
}

const fieldColumns = `id, entity, name, label, type, category, is_required, sort_order, options, active, created_at`

func (r *fieldDefinitionRepository) Create(ctx context.Context, field *domain.FieldDefinition) error {
	const query = `
        INSERT INTO field_definitions (entity, name, label, type, category, is_required, sort_order, options, active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		field.Entity,
		field.Name,
		field.Label,
		field.Type,
		field.Category,
		field.IsRequired,
		field.SortOrder,
		field.Options,
		field.Active,
	).Scan(&field.ID, &field.CreatedAt)
	return translateError(err)
}

func (r *fieldDefinitionRepository) Update(ctx context.Context, field *domain.FieldDefinition) error {
	const query = `
        UPDATE field_definitions SET label=$1, type=$2, category=$3, is_required=$4, sort_order=$5,
            options=$6, active=$7
        WHERE id=$8 AND entity=$9`
	return requireAffected(r.pool.Exec(ctx, query,
		field.Label,
		field.Type,
		field.Category,
		field.IsRequired,
		field.SortOrder,
		field.Options,
		field.Active,
		field.ID,
		field.Entity,
	))
}

func (r *fieldDefinitionRepository) GetByID(ctx context.Context, entity domain.FieldEntity, id string) (*domain.FieldDefinition, error) {
	const query = `SELECT ` + fieldColumns + ` FROM field_definitions WHERE id=$1 AND entity=$2`
	field, err := scanField(r.pool.QueryRow(ctx, query, id, entity))
	if err != nil {
		return nil, translateReadError(err)
	}
	return field, nil
}

func (r *fieldDefinitionRepository) List(ctx context.Context, filter FieldFilter) ([]domain.FieldDefinition, error) {
	query := `SELECT ` + fieldColumns + ` FROM field_definitions WHERE entity=$1`
	if filter.ActiveOnly {
		query += ` AND active = true`
	}
	query += ` ORDER BY category, sort_order, label`

	rows, err := r.pool.Query(ctx, query, filter.Entity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := []domain.FieldDefinition{}
	for rows.Next() {
		field, err := scanField(rows)
		if err != nil {
			return nil, err
		}
		fields = append(fields, *field)
	}
	return fields, rows.Err()
}

func scanField(row pgx.Row) (*domain.FieldDefinition, error) {
	var field domain.FieldDefinition
	if err := row.Scan(
		&field.ID,
		&field.Entity,
		&field.Name,
		&field.Label,
		&field.Type,
		&field.Category,
		&field.IsRequired,
		&field.SortOrder,
		&field.Options,
		&field.Active,
		&field.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &field, nil
}
