// internal/domain/models/task.go
package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task priority values. Medium is the default when none is supplied.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task statuses derived from progress. Status is never stored; progress
// is the single source of truth and 100 means completed.
const (
	StatusOpen      = "open"
	StatusCompleted = "completed"
)

// Task is a unit of work assigned to a team.
//
// NOTE:
//   - Assignees is a comma-separated list of display names, not a list
//     of employee ids. The roster endpoints exist for pickers that need
//     real employee records.
//   - NotifyNew marks the task as an unread completion notification for
//     admin-side consumers. It is only meaningful when Progress == 100.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Deadline    time.Time          `bson:"deadline" json:"deadline"`
	Priority    string             `bson:"priority" json:"priority"` // low | medium | high
	Team        string             `bson:"team" json:"team"`         // uppercased at creation
	Assignees   string             `bson:"assignees" json:"assignees"`
	Progress    int                `bson:"progress" json:"progress"` // 0..100

	CompletedBy string     `bson:"completed_by,omitempty" json:"completed_by,omitempty"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	NotifyNew   bool       `bson:"notify_new" json:"is_new_notification"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Status derives the read-only status string from progress.
func (t Task) Status() string {
	if t.Progress >= 100 {
		return StatusCompleted
	}
	return StatusOpen
}

// MarshalJSON adds the derived status field so API consumers never see
// a stored status that could drift from progress.
func (t Task) MarshalJSON() ([]byte, error) {
	type alias Task
	return json.Marshal(struct {
		alias
		Status string `json:"status"`
	}{alias(t), t.Status()})
}

// ValidPriority reports whether p is one of the accepted priority values.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
