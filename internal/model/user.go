package model

import "time"

// User is an identity record. Owned by the identity provider; the enrollment
// workflow only reads it.
type User struct {
	ID        int64     `json:"-"`
	Login     string    `json:"login"`
	CreatedAt time.Time `json:"created_at"`
}
