package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/chepyr/taskboard/internal/models"
	"github.com/google/uuid"
)

// defines methods for task db operations
type TaskRepositoryInterface interface {
	ListByBoardID(ctx context.Context, boardID uuid.UUID) ([]*models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	Update(ctx context.Context, id uuid.UUID, upd models.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) ListByBoardID(ctx context.Context, boardID uuid.UUID) ([]*models.Task, error) {
	query := `SELECT id, board_id, title, description, created_at, updated_at
	 FROM tasks WHERE board_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task := &models.Task{}
		if err := rows.Scan(
			&task.ID, &task.BoardID, &task.Title, &task.Description,
			&task.CreatedAt, &task.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create does not check that task.BoardID refers to an existing board.
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = now
	}

	query := `INSERT INTO tasks (id, board_id, title, description, created_at, updated_at)
	 VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(
		ctx, query, task.ID, task.BoardID, task.Title, task.Description, task.CreatedAt, task.UpdatedAt)
	return err
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	query := `SELECT id, board_id, title, description, created_at, updated_at FROM tasks WHERE id = $1`
	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.BoardID, &task.Title, &task.Description, &task.CreatedAt, &task.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *TaskRepository) Update(ctx context.Context, id uuid.UUID, upd models.TaskUpdate) (*models.Task, error) {
	var boardID sql.NullString
	if upd.BoardID != nil {
		boardID = sql.NullString{String: upd.BoardID.String(), Valid: true}
	}

	query := `UPDATE tasks SET
	 board_id = COALESCE($1, board_id),
	 title = COALESCE($2, title),
	 description = COALESCE($3, description),
	 updated_at = $4
	 WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query,
		boardID, nullString(upd.Title), nullString(upd.Description), time.Now().UTC(), id)
	if err != nil {
		return nil, err
	}
	if err := checkAffected(res); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}
