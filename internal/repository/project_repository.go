package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/nexa-sys/internal/domain"
)

// ProjectRepository encapsulates project persistence. Soft-deleted projects
// are invisible to every read.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
}

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository instantiates repository.
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

const projectColumns = `id, client_id, name, description, status, start_date, end_date, responsible_id,
               budget, priority, progress_percentage, custom_data, created_at, updated_at, deleted_at`

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (client_id, name, description, status, start_date, end_date, responsible_id,
            budget, priority, progress_percentage, custom_data)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		project.ClientID,
		project.Name,
		project.Description,
		project.Status,
		project.StartDate,
		project.EndDate,
		project.ResponsibleID,
		project.Budget,
		project.Priority,
		project.ProgressPercentage,
		customData(project.CustomData),
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	return translateError(err)
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	const query = `
        UPDATE projects SET client_id=$1, name=$2, description=$3, status=$4, start_date=$5, end_date=$6,
            responsible_id=$7, budget=$8, priority=$9, progress_percentage=$10, custom_data=$11, updated_at=NOW()
        WHERE id=$12 AND deleted_at IS NULL`
	return requireAffected(r.pool.Exec(ctx, query,
		project.ClientID,
		project.Name,
		project.Description,
		project.Status,
		project.StartDate,
		project.EndDate,
		project.ResponsibleID,
		project.Budget,
		project.Priority,
		project.ProgressPercentage,
		customData(project.CustomData),
		project.ID,
	))
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	const query = `SELECT ` + projectColumns + ` FROM projects WHERE id=$1 AND deleted_at IS NULL`
	project, err := scanProject(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateReadError(err)
	}
	return project, nil
}

func (r *projectRepository) List(ctx context.Context) ([]domain.Project, error) {
	const query = `SELECT ` + projectColumns + ` FROM projects WHERE deleted_at IS NULL ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var project domain.Project
	if err := row.Scan(
		&project.ID,
		&project.ClientID,
		&project.Name,
		&project.Description,
		&project.Status,
		&project.StartDate,
		&project.EndDate,
		&project.ResponsibleID,
		&project.Budget,
		&project.Priority,
		&project.ProgressPercentage,
		&project.CustomData,
		&project.CreatedAt,
		&project.UpdatedAt,
		&project.DeletedAt,
	); err != nil {
		return nil, err
	}
	if project.CustomData == nil {
		project.CustomData = map[string]any{}
	}
	return &project, nil
}

func customData(data map[string]any) map[string]any {
	if data == nil {
		return map[string]any{}
	}
	return data
}
