package models

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Task struct {
	ID             string
	ProjectID      string
	Title          string
	Description    *string
	Status         Status
	Priority       Priority
	DueDate        *time.Time
	EstimatedHours *float64
	ActualHours    *float64
	AssigneeID     *string
	ReporterID     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
