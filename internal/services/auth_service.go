package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/calebmh/inkwell-be/internal/apperr"
	"github.com/calebmh/inkwell-be/internal/auth"
)

// LoginUser is the minimal profile echoed back on login. It never carries
// the password hash.
type LoginUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginResult is the response payload for a successful login.
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	User        LoginUser `json:"user"`
}

// AuthServiceProvider defines the interface for authentication.
type AuthServiceProvider interface {
	ValidateCredentials(email, password string) (LoginUser, error)
	Login(email, password string) (LoginResult, error)
	ResolveToken(tokenStr string) (auth.Identity, error)
}

// AuthService validates credentials, issues tokens, and resolves them back
// to identities. It holds no persisted state of its own.
type AuthService struct {
	users  UserServiceProvider
	tokens *auth.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserServiceProvider, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// ValidateCredentials checks an email/password pair. Unknown email and
// wrong password fail with the same message so neither check leaks.
func (s *AuthService) ValidateCredentials(email, password string) (LoginUser, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return LoginUser{}, apperr.New(apperr.ErrUnauthorized, "Invalid credentials")
		}
		return LoginUser{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return LoginUser{}, apperr.New(apperr.ErrUnauthorized, "Invalid credentials")
	}

	return LoginUser{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}

// Login validates credentials and issues a signed bearer token with the
// user id as subject.
func (s *AuthService) Login(email, password string) (LoginResult, error) {
	user, err := s.ValidateCredentials(email, password)
	if err != nil {
		return LoginResult{}, err
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{AccessToken: token, User: user}, nil
}

// ResolveToken verifies a bearer token and re-checks that its subject still
// exists, so deleting a user immediately invalidates outstanding tokens.
// The returned identity comes from the stored record, not the token payload.
func (s *AuthService) ResolveToken(tokenStr string) (auth.Identity, error) {
	claims, err := s.tokens.Parse(tokenStr)
	if err != nil {
		return auth.Identity{}, apperr.New(apperr.ErrUnauthorized, "Invalid auth token")
	}

	user, err := s.users.GetUserByID(claims.Subject)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return auth.Identity{}, apperr.New(apperr.ErrUnauthorized, "Invalid auth token")
		}
		return auth.Identity{}, err
	}

	return auth.Identity{UserID: user.ID, Email: user.Email}, nil
}

var (
	_ auth.TokenResolver  = (*AuthService)(nil)
	_ AuthServiceProvider = (*AuthService)(nil)
)
