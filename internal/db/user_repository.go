package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chepyr/taskboard/internal/models"
	"github.com/chepyr/taskboard/internal/password"
	"github.com/google/uuid"
)

// defines methods for user db operations
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create hashes user.Password and inserts the row. A new user has no stored
// hash, so the password is always hashed. A duplicate email yields ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	hash, err := password.Hash(user.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = hash
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	var googleID sql.NullString
	if user.GoogleID != "" {
		googleID = sql.NullString{String: user.GoogleID, Valid: true}
	}

	query := `INSERT INTO users (id, name, email, password_hash, google_id, created_at, updated_at)
	 VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.db.ExecContext(
		ctx, query, user.ID, user.Name, user.Email, user.Password, googleID, user.CreatedAt, user.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrUserExists
	}
	return err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, name, email, password_hash, google_id, created_at, updated_at
	 FROM users WHERE email = $1`
	user := &models.User{}
	var googleID sql.NullString
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &googleID, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	user.GoogleID = googleID.String
	return user, nil
}
