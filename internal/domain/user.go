package domain

import "time"

type User struct {
	ID           int32
	Name         string
	Email        string
	PasswordHash string

	CreatedAt time.Time
}

// Principal is the verified identity attached to an authenticated request.
type Principal struct {
	UserID int32
	Name   string
	Email  string
}
