// internal/app/store/tasks/taskstore.go
package taskstore

import (
	"context"
	"errors"
	"time"

	"github.com/crewtask/crewtask/internal/app/system/normalize"
	"github.com/crewtask/crewtask/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

// ErrNotFound is returned when a task id matches no document.
var ErrNotFound = errors.New("task not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("tasks")}
}

// Create inserts a new task. Field-presence and deadline validation is
// the handler's job; the store stamps the id, normalizes the team to
// uppercase, applies defaults, and sets timestamps. Progress always
// starts at 0 regardless of input.
func (s *Store) Create(ctx context.Context, t models.Task) (models.Task, error) {
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	t.Team = normalize.Team(t.Team)
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	t.Progress = 0
	t.CompletedBy = ""
	t.CompletedAt = nil
	t.NotifyNew = false
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// GetByID loads a task by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var t models.Task
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns all tasks, or tasks for one team when team is non-empty.
// The full result set is returned; the dashboard consumes it whole.
func (s *Store) List(ctx context.Context, team string) ([]models.Task, error) {
	filter := bson.M{}
	if team != "" {
		filter["team"] = normalize.Team(team)
	}

	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tasks := []models.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update merges the supplied fields into the document and returns the
// updated task. Returns ErrNotFound when the id matches nothing.
// Callers validate field values; the store only guards the merge.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Task, error) {
	if set == nil {
		set = bson.M{}
	}
	set["updated_at"] = time.Now().UTC()

	var t models.Task
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Delete removes a task. Returns ErrNotFound when the id matches nothing.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateProgress sets the progress value. Reaching 100 stamps the
// completion time and completer identity and flags the task as an
// unread notification; dropping back below 100 clears all three.
// Progress range validation happens upstream.
func (s *Store) UpdateProgress(ctx context.Context, id primitive.ObjectID, progress int, completedBy string) (*models.Task, error) {
	now := time.Now().UTC()
	update := bson.M{}
	set := bson.M{
		"progress":   progress,
		"updated_at": now,
	}

	if progress >= 100 {
		set["completed_by"] = completedBy
		set["completed_at"] = now
		set["notify_new"] = true
	} else {
		set["notify_new"] = false
		update["$unset"] = bson.M{"completed_by": "", "completed_at": ""}
	}
	update["$set"] = set

	var t models.Task
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListCompleted returns completed tasks (progress == 100), newest
// completion first, optionally restricted to one team. This is the
// notification view; notifications are never stored separately.
func (s *Store) ListCompleted(ctx context.Context, team string) ([]models.Task, error) {
	filter := bson.M{"progress": bson.M{"$gte": 100}}
	if team != "" {
		filter["team"] = normalize.Team(team)
	}

	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "completed_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tasks := []models.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// MarkRead clears the unread-notification flag on a single task.
func (s *Store) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"notify_new": false,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllRead clears the unread flag on every currently-unread task,
// scoped to a team when team is non-empty. Returns the number of tasks
// modified.
func (s *Store) MarkAllRead(ctx context.Context, team string) (int64, error) {
	filter := bson.M{"notify_new": true}
	if team != "" {
		filter["team"] = normalize.Team(team)
	}

	res, err := s.c.UpdateMany(ctx, filter, bson.M{"$set": bson.M{
		"notify_new": false,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
