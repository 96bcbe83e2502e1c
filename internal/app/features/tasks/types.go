// internal/app/features/tasks/types.go
package tasks

import "time"

// createRequest is the body for task creation.
type createRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	Priority    string    `json:"priority"`
	Team        string    `json:"team"`
	Assignees   string    `json:"assignees"`
}

// updateRequest is the body for partial task updates. Pointer fields
// distinguish "absent" from zero values.
type updateRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Priority    *string    `json:"priority"`
	Team        *string    `json:"team"`
	Assignees   *string    `json:"assignees"`
}

// progressRequest is the body for progress reporting.
type progressRequest struct {
	Progress    *int   `json:"progress"`
	CompletedBy string `json:"completed_by"`
}
