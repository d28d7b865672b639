package cache

import (
	"context"
	"time"

	"github.com/chepyr/taskboard/internal/db"
	"github.com/chepyr/taskboard/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TaskRepository caches task lists per board.
type TaskRepository struct {
	base db.TaskRepositoryInterface
	store
}

var _ db.TaskRepositoryInterface = (*TaskRepository)(nil)

func NewTaskRepository(base db.TaskRepositoryInterface, client *redis.Client, ttl time.Duration) *TaskRepository {
	if base == nil {
		panic("cache.NewTaskRepository: base repository is nil")
	}
	return &TaskRepository{base: base, store: newStore(client, ttl)}
}

func (r *TaskRepository) ListByBoardID(ctx context.Context, boardID uuid.UUID) ([]*models.Task, error) {
	key := tasksKey(boardID)
	if tasks, ok := load[[]*models.Task](ctx, r.store, key); ok {
		return tasks, nil
	}
	tasks, err := r.base.ListByBoardID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	r.save(ctx, key, tasks)
	return tasks, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if err := r.base.Create(ctx, task); err != nil {
		return err
	}
	r.evict(ctx, tasksKey(task.BoardID))
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	return r.base.GetByID(ctx, id)
}

// Update evicts both the previous and the new board list, since the update may
// move the task. If the previous board cannot be read, every task list is evicted.
func (r *TaskRepository) Update(ctx context.Context, id uuid.UUID, upd models.TaskUpdate) (*models.Task, error) {
	before, lookupErr := r.base.GetByID(ctx, id)
	task, err := r.base.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if lookupErr != nil {
		r.evictMatching(ctx, allTasksKeys())
		return task, nil
	}
	r.evict(ctx, tasksKey(before.BoardID), tasksKey(task.BoardID))
	return task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	before, lookupErr := r.base.GetByID(ctx, id)
	if err := r.base.Delete(ctx, id); err != nil {
		return err
	}
	if lookupErr != nil {
		r.evictMatching(ctx, allTasksKeys())
		return nil
	}
	r.evict(ctx, tasksKey(before.BoardID))
	return nil
}
