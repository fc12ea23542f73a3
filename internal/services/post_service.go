package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/calebmh/inkwell-be/internal/apperr"
	"github.com/calebmh/inkwell-be/internal/models"
)

// PostServiceProvider defines the interface for post services.
type PostServiceProvider interface {
	CreatePost(ownerID, title, content string, published bool) (models.Post, error)
	GetAllPosts() ([]models.Post, error)
	GetPostByID(id string) (models.Post, error)
	GetPostsByUser(ownerID string) ([]models.Post, error)
	UpdatePost(id, callerID string, title, content *string, published *bool) (models.Post, error)
	DeletePost(id, callerID string) error
}

// PostService provides business logic for post management.
type PostService struct {
	db *sql.DB
}

// NewPostService creates a new PostService.
func NewPostService(db *sql.DB) *PostService {
	return &PostService{db: db}
}

const postSelect = `
	SELECT p.id, p.title, p.content, p.published, p.user_id, p.created_at, p.updated_at,
	       u.id, u.email, u.name
	FROM posts p
	JOIN users u ON u.id = p.user_id`

func scanPost(scanner interface{ Scan(dest ...any) error }) (models.Post, error) {
	var post models.Post
	var author models.Author
	var created, updated int64
	err := scanner.Scan(
		&post.ID, &post.Title, &post.Content, &post.Published, &post.UserID,
		&created, &updated,
		&author.ID, &author.Email, &author.Name,
	)
	if err != nil {
		return models.Post{}, err
	}
	post.CreatedAt = fromMillis(created)
	post.UpdatedAt = fromMillis(updated)
	post.User = &author
	return post, nil
}

// CreatePost persists a new post owned by ownerID. The creator is always
// the owner, so no ownership check is needed here.
func (s *PostService) CreatePost(ownerID, title, content string, published bool) (models.Post, error) {
	now := fromMillis(toMillis(time.Now()))
	post := models.Post{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   content,
		Published: published,
		UserID:    ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.Exec(
		"INSERT INTO posts(id, title, content, published, user_id, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?, ?)",
		post.ID, post.Title, post.Content, post.Published, post.UserID, toMillis(now), toMillis(now),
	)
	if err != nil {
		return models.Post{}, fmt.Errorf("insert post: %w", err)
	}
	return post, nil
}

// GetAllPosts returns every post with its owner's public profile, newest
// first.
func (s *PostService) GetAllPosts() ([]models.Post, error) {
	rows, err := s.db.Query(postSelect + " ORDER BY p.created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows)
}

// GetPostByID retrieves a single post including its owner's public profile.
func (s *PostService) GetPostByID(id string) (models.Post, error) {
	row := s.db.QueryRow(postSelect+" WHERE p.id = ?", id)
	post, err := scanPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Post{}, apperr.New(apperr.ErrNotFound, "Post not found")
		}
		return models.Post{}, err
	}
	return post, nil
}

// GetPostsByUser returns one owner's posts, newest first.
func (s *PostService) GetPostsByUser(ownerID string) ([]models.Post, error) {
	rows, err := s.db.Query(postSelect+" WHERE p.user_id = ? ORDER BY p.created_at DESC", ownerID)
	if err != nil {
		return nil, fmt.Errorf("query posts by user: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows)
}

// UpdatePost merges the provided fields into an existing post. Only the
// owner may update; the owning user id is never mergeable.
func (s *PostService) UpdatePost(id, callerID string, title, content *string, published *bool) (models.Post, error) {
	post, err := s.GetPostByID(id)
	if err != nil {
		return models.Post{}, err
	}

	if post.UserID != callerID {
		return models.Post{}, apperr.New(apperr.ErrForbidden, "You can only update your own posts")
	}

	if title != nil {
		post.Title = *title
	}
	if content != nil {
		post.Content = *content
	}
	if published != nil {
		post.Published = *published
	}
	post.UpdatedAt = fromMillis(toMillis(time.Now()))

	_, err = s.db.Exec(
		"UPDATE posts SET title = ?, content = ?, published = ?, updated_at = ? WHERE id = ?",
		post.Title, post.Content, post.Published, toMillis(post.UpdatedAt), id,
	)
	if err != nil {
		return models.Post{}, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// DeletePost removes a post. Only the owner may delete.
func (s *PostService) DeletePost(id, callerID string) error {
	post, err := s.GetPostByID(id)
	if err != nil {
		return err
	}

	if post.UserID != callerID {
		return apperr.New(apperr.ErrForbidden, "You can only delete your own posts")
	}

	_, err = s.db.Exec("DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func collectPosts(rows *sql.Rows) ([]models.Post, error) {
	posts := []models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}
