package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedEmail    = "seed.user@example.com"
	seedName     = "Seed User"
	seedPassword = "Password123!"
)

var seedPosts = []struct {
	title     string
	content   string
	published bool
}{
	{
		title:     "Welcome to Inkwell",
		content:   "This is a seeded post so the API has content to serve out of the box.",
		published: true,
	},
	{
		title:     "Drafts stay private",
		content:   "Unpublished posts are still listed; the published flag is up to the owner.",
		published: false,
	},
}

// Seed inserts the demo user and welcome posts. It is idempotent: if the
// seed user already exists nothing is written.
func Seed(db *sql.DB) error {
	var existing string
	err := db.QueryRow("SELECT id FROM users WHERE email = ?", seedEmail).Scan(&existing)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC().UnixMilli()
	userID := uuid.New().String()
	_, err = db.Exec(
		"INSERT INTO users(id, email, name, password_hash, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?)",
		userID, seedEmail, seedName, string(hash), now, now,
	)
	if err != nil {
		return err
	}

	for _, p := range seedPosts {
		_, err = db.Exec(
			"INSERT INTO posts(id, title, content, published, user_id, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?, ?)",
			uuid.New().String(), p.title, p.content, p.published, userID, now, now,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
