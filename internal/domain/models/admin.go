// internal/domain/models/admin.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin is a back-office account. Admins live in their own collection
// and have no relationship to Employee.
type Admin struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	UsernameCI   string             `bson:"username_ci" json:"-"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	FullName     string             `bson:"full_name,omitempty" json:"full_name,omitempty"`
	Role         string             `bson:"role,omitempty" json:"role,omitempty"`
	Status       string             `bson:"status,omitempty" json:"status,omitempty"`
	Permissions  []string           `bson:"permissions,omitempty" json:"permissions,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
