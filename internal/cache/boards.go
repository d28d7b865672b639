package cache

import (
	"context"
	"time"

	"github.com/chepyr/taskboard/internal/db"
	"github.com/chepyr/taskboard/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// BoardRepository caches the full board list.
type BoardRepository struct {
	base db.BoardRepositoryInterface
	store
}

var _ db.BoardRepositoryInterface = (*BoardRepository)(nil)

func NewBoardRepository(base db.BoardRepositoryInterface, client *redis.Client, ttl time.Duration) *BoardRepository {
	if base == nil {
		panic("cache.NewBoardRepository: base repository is nil")
	}
	return &BoardRepository{base: base, store: newStore(client, ttl)}
}

func (r *BoardRepository) List(ctx context.Context) ([]*models.Board, error) {
	if boards, ok := load[[]*models.Board](ctx, r.store, boardsKey()); ok {
		return boards, nil
	}
	boards, err := r.base.List(ctx)
	if err != nil {
		return nil, err
	}
	r.save(ctx, boardsKey(), boards)
	return boards, nil
}

func (r *BoardRepository) Create(ctx context.Context, board *models.Board) error {
	if err := r.base.Create(ctx, board); err != nil {
		return err
	}
	r.evict(ctx, boardsKey())
	return nil
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Board, error) {
	return r.base.GetByID(ctx, id)
}

func (r *BoardRepository) Update(ctx context.Context, id uuid.UUID, upd models.BoardUpdate) (*models.Board, error) {
	board, err := r.base.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	r.evict(ctx, boardsKey())
	return board, nil
}

func (r *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.base.Delete(ctx, id); err != nil {
		return err
	}
	r.evict(ctx, boardsKey())
	return nil
}
