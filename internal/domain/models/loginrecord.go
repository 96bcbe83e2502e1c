// internal/domain/models/loginrecord.go
package models

import "time"

// LoginRecord captures a single successful login event.
// CreatedAt is indexed for recent-activity views.
type LoginRecord struct {
	SessionID string    `bson:"session_id" json:"session_id"` // uuid stamped at login
	SubjectID string    `bson:"subject_id" json:"subject_id"` // employee or admin id (hex)
	Role      string    `bson:"role" json:"role"`             // employee | admin
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
