// Package models contains the domain records shared by repositories,
// services and the REST layer.
package models

import "time"

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
