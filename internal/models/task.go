package models

import (
	"time"

	"github.com/google/uuid"
)

// Task points back at its board by id only. The board may no longer exist.
type Task struct {
	ID          uuid.UUID `json:"id"`
	BoardID     uuid.UUID `json:"boardId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type TaskUpdate struct {
	BoardID     *uuid.UUID
	Title       *string
	Description *string
}
