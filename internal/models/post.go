package models

import "time"

// Post represents a blog post owned by a single user.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// User carries the owner's public profile on read paths.
	User *Author `json:"user,omitempty"`
}
