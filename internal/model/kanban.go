package model

import (
	"time"

	"github.com/google/uuid"
)

// Task priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Kanban is an ordered set of columns embedded in a project. The limits are
// client-facing hints and are not enforced server-side.
type Kanban struct {
	Columns     []Column `bson:"columns" json:"columns" validate:"dive"`
	ColumnLimit int      `bson:"columnLimit,omitempty" json:"columnLimit,omitempty"`
	TaskLimit   int      `bson:"taskLimit,omitempty" json:"taskLimit,omitempty"`
}

// Column holds an ordered list of tasks.
type Column struct {
	ID        string `bson:"id" json:"id"`
	Title     string `bson:"title" json:"title"`
	Tasks     []Task `bson:"tasks" json:"tasks" validate:"dive"`
	TaskLimit int    `bson:"taskLimit,omitempty" json:"taskLimit,omitempty"`
}

// Task is a single item of work on a board.
type Task struct {
	ID          string     `bson:"id" json:"id"`
	ColumnID    string     `bson:"columnId" json:"columnId"`
	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	Priority    string     `bson:"priority,omitempty" json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	DueDate     *time.Time `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	Tags        []string   `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// DefaultKanban returns the standard board for projects created without one:
// three empty columns with fresh ids and no limits.
func DefaultKanban() Kanban {
	return Kanban{
		Columns: []Column{
			{ID: uuid.NewString(), Title: "To Do", Tasks: []Task{}},
			{ID: uuid.NewString(), Title: "In Progress", Tasks: []Task{}},
			{ID: uuid.NewString(), Title: "Completed", Tasks: []Task{}},
		},
	}
}
