package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus values.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

// IsValid returns true if the status is a known vocabulary member.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskCancelled:
		return true
	default:
		return false
	}
}

// TaskPriority values. Absent remote values default to medium.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// IsValid returns true if the priority is a known vocabulary member.
func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// TaskRecord is a ranch work item. The category column has been renamed
// twice on the remote (task_type, then category) and the cattle link changed
// from a single ID to an array in one schema revision; translators accept
// all historical shapes.
type TaskRecord struct {
	SyncMeta

	Title    string       `json:"title"`
	Category string       `json:"category,omitempty"`
	Priority TaskPriority `json:"priority"`
	Status   TaskStatus   `json:"status"`

	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CattleIDs []uuid.UUID `json:"cattle_ids,omitempty"`
}

// Entity implements Record.
func (t *TaskRecord) Entity() EntityType {
	return EntityTask
}
