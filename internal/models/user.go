package models

import (
	"time"

	"github.com/google/uuid"
)

// User holds the plaintext password only until the repository hashes it;
// after Create, Password contains the bcrypt hash. It is never serialized.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	GoogleID  string    `json:"googleId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
