package models

import "time"

// Status is shared by projects and tasks. Any value may follow any other.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type Project struct {
	ID          string
	Name        string
	Description *string
	Status      Status
	StartDate   *time.Time
	EndDate     *time.Time
	TeamID      string
	CreatedBy   string
	CreatedAt   time.Time
}
