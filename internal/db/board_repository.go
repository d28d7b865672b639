package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/chepyr/taskboard/internal/models"
	"github.com/google/uuid"
)

// defines methods for board db operations
type BoardRepositoryInterface interface {
	List(ctx context.Context) ([]*models.Board, error)
	Create(ctx context.Context, board *models.Board) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Board, error)
	Update(ctx context.Context, id uuid.UUID, upd models.BoardUpdate) (*models.Board, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type BoardRepository struct {
	db *sql.DB
}

func NewBoardRepository(db *sql.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) List(ctx context.Context) ([]*models.Board, error) {
	query := `SELECT id, name, created_at, updated_at FROM boards ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boards := make([]*models.Board, 0)
	for rows.Next() {
		board := &models.Board{}
		if err := rows.Scan(&board.ID, &board.Name, &board.CreatedAt, &board.UpdatedAt); err != nil {
			return nil, err
		}
		boards = append(boards, board)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return boards, nil
}

// Create assigns an id and timestamps when they are unset.
func (r *BoardRepository) Create(ctx context.Context, board *models.Board) error {
	if board.ID == uuid.Nil {
		board.ID = uuid.New()
	}
	now := time.Now().UTC()
	if board.CreatedAt.IsZero() {
		board.CreatedAt = now
	}
	if board.UpdatedAt.IsZero() {
		board.UpdatedAt = now
	}

	query := `INSERT INTO boards (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, board.ID, board.Name, board.CreatedAt, board.UpdatedAt)
	return err
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Board, error) {
	query := `SELECT id, name, created_at, updated_at FROM boards WHERE id = $1`
	board := &models.Board{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&board.ID, &board.Name, &board.CreatedAt, &board.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return board, nil
}

func (r *BoardRepository) Update(ctx context.Context, id uuid.UUID, upd models.BoardUpdate) (*models.Board, error) {
	query := `UPDATE boards SET name = COALESCE($1, name), updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, nullString(upd.Name), time.Now().UTC(), id)
	if err != nil {
		return nil, err
	}
	if err := checkAffected(res); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes only the board row; its tasks are left in place.
func (r *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM boards WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}
