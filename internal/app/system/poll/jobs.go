// internal/app/system/poll/jobs.go
package poll

import (
	"context"
	"time"

	taskstore "github.com/crewtask/crewtask/internal/app/store/tasks"
	"github.com/crewtask/crewtask/internal/domain/models"
)

// Poll intervals matching the dashboard's timers.
const (
	TaskListInterval     = 5 * time.Second
	NotificationInterval = 30 * time.Second
)

// TaskListJob polls the full task list (optionally one team's),
// reproducing the dashboard's 5-second task refresh.
func TaskListJob(store *taskstore.Store, team string, reconcile func(Diff[models.Task])) Job[models.Task] {
	return Job[models.Task]{
		Name:     "task-list",
		Interval: TaskListInterval,
		Fetch: func(ctx context.Context) (map[string]models.Task, error) {
			tasks, err := store.List(ctx, team)
			if err != nil {
				return nil, err
			}
			return keyByID(tasks), nil
		},
		Reconcile: reconcile,
		Equal:     taskEqual,
	}
}

// NotificationJob polls the completed-task notification view,
// reproducing the 30-second notification bell refresh.
func NotificationJob(store *taskstore.Store, team string, reconcile func(Diff[models.Task])) Job[models.Task] {
	return Job[models.Task]{
		Name:     "notifications",
		Interval: NotificationInterval,
		Fetch: func(ctx context.Context) (map[string]models.Task, error) {
			tasks, err := store.ListCompleted(ctx, team)
			if err != nil {
				return nil, err
			}
			return keyByID(tasks), nil
		},
		Reconcile: reconcile,
		Equal:     taskEqual,
	}
}

func keyByID(tasks []models.Task) map[string]models.Task {
	m := make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		m[t.ID.Hex()] = t
	}
	return m
}

// taskEqual compares the fields the dashboard renders, so timestamp
// churn alone does not count as an update.
func taskEqual(a, b models.Task) bool {
	return a.Title == b.Title &&
		a.Description == b.Description &&
		a.Deadline.Equal(b.Deadline) &&
		a.Priority == b.Priority &&
		a.Team == b.Team &&
		a.Assignees == b.Assignees &&
		a.Progress == b.Progress &&
		a.NotifyNew == b.NotifyNew
}
