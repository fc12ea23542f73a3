package models

import "time"

// User represents a registered account in the system.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Author is the public profile of a user embedded in post responses.
type Author struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
