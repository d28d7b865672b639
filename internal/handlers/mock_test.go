package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/chepyr/taskboard/internal/db"
	"github.com/chepyr/taskboard/internal/models"
	"github.com/chepyr/taskboard/internal/password"
	"github.com/google/uuid"
)

type MockUserRepository struct {
	users     map[string]*models.User
	createErr error
	getErr    error
	mutex     sync.Mutex
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*models.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.users[user.Email]; exists {
		return db.ErrUserExists
	}
	hash, err := password.Hash(user.Password)
	if err != nil {
		return err
	}
	user.ID = uuid.New()
	user.Password = hash
	m.users[user.Email] = user
	return nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.getErr != nil {
		return nil, m.getErr
	}
	user, exists := m.users[email]
	if !exists {
		return nil, db.ErrNotFound
	}
	return user, nil
}

func SetupMockUser(email, plain string) *MockUserRepository {
	repo := NewMockUserRepository()
	hash, _ := password.Hash(plain)
	repo.users[email] = &models.User{
		ID:        uuid.New(),
		Name:      "Test User",
		Email:     email,
		Password:  hash,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return repo
}

// failingBoards fails every call with err.
type failingBoards struct {
	err error
}

func (f failingBoards) List(ctx context.Context) ([]*models.Board, error) { return nil, f.err }
func (f failingBoards) Create(ctx context.Context, b *models.Board) error  { return f.err }
func (f failingBoards) GetByID(ctx context.Context, id uuid.UUID) (*models.Board, error) {
	return nil, f.err
}
func (f failingBoards) Update(ctx context.Context, id uuid.UUID, upd models.BoardUpdate) (*models.Board, error) {
	return nil, f.err
}
func (f failingBoards) Delete(ctx context.Context, id uuid.UUID) error { return f.err }

// nilListTasks returns a nil slice from ListByBoardID.
type nilListTasks struct {
	db.TaskRepositoryInterface
}

func (nilListTasks) ListByBoardID(ctx context.Context, boardID uuid.UUID) ([]*models.Task, error) {
	return nil, nil
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }
