package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/nexa-sys/internal/domain"
)

// TaskRepository encapsulates task persistence. Update writes the whole row;
// concurrent writers to the same task overwrite each other.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Task, error)
	CountByStatus(ctx context.Context) (map[domain.TaskStatus]int, error)
}

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository instantiates repository.
func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &taskRepository{pool: pool}
}

const taskColumns = `id, project_id, description, status, assigned_to, created_by, created_at, updated_at, approved_by, approved_at`

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	const query = `
        INSERT INTO project_tasks (project_id, description, status, assigned_to, created_by, approved_by, approved_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		task.ProjectID,
		task.Description,
		task.Status,
		task.AssignedTo,
		task.CreatedBy,
		task.ApprovedBy,
		task.ApprovedAt,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	return translateError(err)
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	const query = `
        UPDATE project_tasks SET description=$1, status=$2, assigned_to=$3,
            approved_by=$4, approved_at=$5, updated_at=$6
        WHERE id=$7`
	return requireAffected(r.pool.Exec(ctx, query,
		task.Description,
		task.Status,
		task.AssignedTo,
		task.ApprovedBy,
		task.ApprovedAt,
		task.UpdatedAt,
		task.ID,
	))
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	const query = `SELECT ` + taskColumns + ` FROM project_tasks WHERE id=$1`
	task, err := scanTask(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateReadError(err)
	}
	return task, nil
}

func (r *taskRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	const query = `SELECT ` + taskColumns + ` FROM project_tasks WHERE project_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, translateReadError(err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) CountByStatus(ctx context.Context) (map[domain.TaskStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM project_tasks GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.TaskStatus]int)
	for rows.Next() {
		var (
			status domain.TaskStatus
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	if err := row.Scan(
		&task.ID,
		&task.ProjectID,
		&task.Description,
		&task.Status,
		&task.AssignedTo,
		&task.CreatedBy,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.ApprovedBy,
		&task.ApprovedAt,
	); err != nil {
		return nil, err
	}
	return &task, nil
}
