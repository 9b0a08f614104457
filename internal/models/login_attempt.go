package models

import "time"

// LoginAttempt est un journal d'audit en append-only : jamais modifié après
// insertion.
type LoginAttempt struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Email     string    `bson:"email" json:"email"`
	Status    string    `bson:"status" json:"status"` // success | failed | blocked
	Reason    string    `bson:"reason,omitempty" json:"reason,omitempty"`
	UID       string    `bson:"uid,omitempty" json:"uid,omitempty"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

const (
	AttemptSuccess = "success"
	AttemptFailed  = "failed"
	AttemptBlocked = "blocked"
)
