package teamroster

import (
	"context"
	"sort"

	"github.com/crewtask/crewtask/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PickerMember is the minimal shape assignment pickers need.
type PickerMember struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	FullName string             `bson:"full_name" json:"full_name"`
}

// DistinctTeams returns every distinct team name across employees,
// each exactly once, sorted. Teams are not a first-class entity; this
// set is the authoritative list.
func DistinctTeams(ctx context.Context, db *mongo.Database) ([]string, error) {
	raw, err := db.Collection("employees").Distinct(ctx, "team", bson.M{"team": bson.M{"$ne": ""}})
	if err != nil {
		return nil, err
	}

	teams := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			teams = append(teams, s)
		}
	}
	sort.Strings(teams)
	return teams, nil
}

// MembersOfTeam returns the directory rows for one team, matched
// case-insensitively and exactly (folded equality, not a substring
// search). Password hashes never leave the store: Employee's JSON
// marshaling omits the hash and the CI companions.
func MembersOfTeam(ctx context.Context, db *mongo.Database, team string) ([]models.Employee, error) {
	cur, err := db.Collection("employees").Find(ctx,
		bson.M{"team_ci": text.Fold(team)},
		options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	members := []models.Employee{}
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// PickerMembersOfTeam returns (id, name) pairs for assignment pickers.
func PickerMembersOfTeam(ctx context.Context, db *mongo.Database, team string) ([]PickerMember, error) {
	cur, err := db.Collection("employees").Find(ctx,
		bson.M{"team_ci": text.Fold(team)},
		options.Find().
			SetProjection(bson.M{"_id": 1, "full_name": 1}).
			SetSort(bson.D{{Key: "full_name_ci", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	members := []PickerMember{}
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}
