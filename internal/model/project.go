package model

import (
	"time"

	"github.com/google/uuid"
)

// Project statuses
const (
	StatusPlanning   = "planning"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusArchived   = "archived"
)

// Project is a user-owned workspace with an embedded kanban board.
type Project struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"userId" json:"userId"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Status      string    `bson:"status" json:"status"`
	Kanban      Kanban    `bson:"kanban" json:"kanban"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewProject builds a project with a server-assigned id and timestamps.
// Status defaults to planning and the board to the standard three columns.
func NewProject(userID, title, description, status string, board *Kanban) Project {
	if status == "" {
		status = StatusPlanning
	}
	kanban := DefaultKanban()
	if board != nil {
		kanban = *board
	}
	now := time.Now().UTC()
	return Project{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      status,
		Kanban:      kanban,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
