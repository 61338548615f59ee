package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/nexa-sys/internal/domain"
)

// ClientFilter narrows client listings.
type ClientFilter struct {
	Active *bool
}

// ClientRepository encapsulates client persistence.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	Update(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, filter ClientFilter) ([]domain.Client, error)
	Count(ctx context.Context, filter ClientFilter) (int, error)
}

type clientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository instantiates repository.
func NewClientRepository(pool *pgxpool.Pool) ClientRepository {
	return &clientRepository{pool: pool}
}

const clientColumns = `id, name, contact_name, industry, email, phone, notes, projects, active, custom_data, created_at, updated_at`

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	const query = `
        INSERT INTO clients (name, contact_name, industry, email, phone, notes, projects, active, custom_data)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		client.Name,
		client.ContactName,
		client.Industry,
		client.Email,
		client.Phone,
		client.Notes,
		stringList(client.Projects),
		client.Active,
		customData(client.CustomData),
	).Scan(&client.ID, &client.CreatedAt, &client.UpdatedAt)
	return translateError(err)
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	const query = `
        UPDATE clients SET name=$1, contact_name=$2, industry=$3, email=$4, phone=$5, notes=$6,
            projects=$7, active=$8, custom_data=$9, updated_at=NOW()
        WHERE id=$10`
	return requireAffected(r.pool.Exec(ctx, query,
		client.Name,
		client.ContactName,
		client.Industry,
		client.Email,
		client.Phone,
		client.Notes,
		stringList(client.Projects),
		client.Active,
		customData(client.CustomData),
		client.ID,
	))
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	const query = `SELECT ` + clientColumns + ` FROM clients WHERE id=$1`
	client, err := scanClient(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateReadError(err)
	}
	return client, nil
}

func (r *clientRepository) List(ctx context.Context, filter ClientFilter) ([]domain.Client, error) {
	where, args := clientWhere(filter)
	rows, err := r.pool.Query(ctx, `SELECT `+clientColumns+` FROM clients WHERE `+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := []domain.Client{}
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *client)
	}
	return clients, rows.Err()
}

func (r *clientRepository) Count(ctx context.Context, filter ClientFilter) (int, error) {
	where, args := clientWhere(filter)
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM clients WHERE `+where, args...).Scan(&count)
	return count, err
}

func clientWhere(filter ClientFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		clauses = append(clauses, fmt.Sprintf("active=$%d", len(args)))
	}
	return strings.Join(clauses, " AND "), args
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var client domain.Client
	if err := row.Scan(
		&client.ID,
		&client.Name,
		&client.ContactName,
		&client.Industry,
		&client.Email,
		&client.Phone,
		&client.Notes,
		&client.Projects,
		&client.Active,
		&client.CustomData,
		&client.CreatedAt,
		&client.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if client.CustomData == nil {
		client.CustomData = map[string]any{}
	}
	return &client, nil
}

func stringList(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
