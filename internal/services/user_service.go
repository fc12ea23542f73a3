package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/calebmh/inkwell-be/internal/apperr"
	"github.com/calebmh/inkwell-be/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	CreateUser(email, name, password string) (models.User, error)
	GetAllUsers() ([]models.User, error)
	GetUserByID(id string) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
	UpdateUser(id string, name *string) (models.User, error)
	DeleteUser(id string) error
}

// UserService provides business logic for user management.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// CreateUser registers a new user, hashing their password. A duplicate
// email is rejected, never overwritten.
func (s *UserService) CreateUser(email, name, password string) (models.User, error) {
	var existing string
	err := s.db.QueryRow("SELECT id FROM users WHERE email = ?", email).Scan(&existing)
	if err == nil {
		return models.User{}, apperr.New(apperr.ErrConflict, "Email already in use")
	}
	if err != sql.ErrNoRows {
		return models.User{}, fmt.Errorf("check existing email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := fromMillis(toMillis(time.Now()))
	user := models.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = s.db.Exec(
		"INSERT INTO users(id, email, name, password_hash, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?)",
		user.ID, user.Email, user.Name, string(hashedPassword), toMillis(now), toMillis(now),
	)
	if err != nil {
		// Backstop for a concurrent insert racing past the pre-check.
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return models.User{}, apperr.New(apperr.ErrConflict, "Email already in use")
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

// GetAllUsers returns every registered user without password hashes.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	rows, err := s.db.Query("SELECT id, email, name, created_at, updated_at FROM users")
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		var created, updated int64
		if err := rows.Scan(&user.ID, &user.Email, &user.Name, &created, &updated); err != nil {
			return nil, err
		}
		user.CreatedAt = fromMillis(created)
		user.UpdatedAt = fromMillis(updated)
		users = append(users, user)
	}
	return users, rows.Err()
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	var user models.User
	var created, updated int64
	row := s.db.QueryRow("SELECT id, email, name, created_at, updated_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Email, &user.Name, &created, &updated)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperr.New(apperr.ErrNotFound, "User not found")
		}
		return models.User{}, err
	}
	user.CreatedAt = fromMillis(created)
	user.UpdatedAt = fromMillis(updated)
	return user, nil
}

// GetUserByEmail retrieves a single user by their email, including the
// password hash. Only the authenticator should call this.
func (s *UserService) GetUserByEmail(email string) (models.User, error) {
	var user models.User
	var created, updated int64
	row := s.db.QueryRow("SELECT id, email, name, password_hash, created_at, updated_at FROM users WHERE email = ?", email)
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &created, &updated)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperr.New(apperr.ErrNotFound, "User not found")
		}
		return models.User{}, err
	}
	user.CreatedAt = fromMillis(created)
	user.UpdatedAt = fromMillis(updated)
	return user, nil
}

// UpdateUser updates a user's profile. Only provided fields are merged;
// email and password are not updatable here.
func (s *UserService) UpdateUser(id string, name *string) (models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return models.User{}, err
	}

	if name != nil {
		user.Name = *name
	}
	user.UpdatedAt = fromMillis(toMillis(time.Now()))

	_, err = s.db.Exec("UPDATE users SET name = ?, updated_at = ? WHERE id = ?", user.Name, toMillis(user.UpdatedAt), id)
	if err != nil {
		return models.User{}, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes a user. Owned posts are cascade-deleted by the
// foreign key constraint.
func (s *UserService) DeleteUser(id string) error {
	res, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.New(apperr.ErrNotFound, "User not found")
	}
	return nil
}
