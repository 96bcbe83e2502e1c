// internal/domain/models/employee.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Employee is a registered team member.
//
// NOTE:
//   - Team is a free-text grouping key, not a reference to a team
//     entity. The set of teams is the set of distinct Team values.
//   - TeamCI / EmailCI / UsernameCI are folded (lowercase,
//     diacritics-stripped) companions used for case-insensitive exact
//     matching and unique indexes.
//   - PasswordHash is a bcrypt hash and is never serialized to JSON.
type Employee struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"full_name" json:"full_name"`
	FullNameCI   string             `bson:"full_name_ci" json:"-"`
	Email        string             `bson:"email" json:"email"`
	EmailCI      string             `bson:"email_ci" json:"-"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Team         string             `bson:"team" json:"team"`
	TeamCI       string             `bson:"team_ci" json:"-"`
	Designation  string             `bson:"designation,omitempty" json:"designation,omitempty"`
	Username     string             `bson:"username" json:"username"`
	UsernameCI   string             `bson:"username_ci" json:"-"`
	PasswordHash string             `bson:"password_hash" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
