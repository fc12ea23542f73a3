package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebmh/inkwell-be/internal/apperr"
	"github.com/calebmh/inkwell-be/internal/auth"
)

func newAuthFixture(t *testing.T) (*AuthService, *UserService) {
	t.Helper()
	users := NewUserService(newTestDB(t))
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(users, tokens), users
}

func TestValidateCredentials(t *testing.T) {
	authSvc, userSvc := newAuthFixture(t)

	created, err := userSvc.CreateUser("a@x.com", "Alice", "secret1")
	require.NoError(t, err)

	profile, err := authSvc.ValidateCredentials("a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, profile.ID)
	assert.Equal(t, "a@x.com", profile.Email)
	assert.Equal(t, "Alice", profile.Name)

	// Wrong password and unknown email fail identically.
	_, errBadPassword := authSvc.ValidateCredentials("a@x.com", "wrong")
	require.ErrorIs(t, errBadPassword, apperr.ErrUnauthorized)

	_, errUnknownEmail := authSvc.ValidateCredentials("nobody@x.com", "secret1")
	require.ErrorIs(t, errUnknownEmail, apperr.ErrUnauthorized)

	assert.Equal(t, errBadPassword.Error(), errUnknownEmail.Error(),
		"both failures must use the same message")
}

func TestLogin_IssuesResolvableToken(t *testing.T) {
	authSvc, userSvc := newAuthFixture(t)

	created, err := userSvc.CreateUser("b@x.com", "Bob", "hunter2")
	require.NoError(t, err)

	result, err := authSvc.Login("b@x.com", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, created.ID, result.User.ID)

	identity, err := authSvc.ResolveToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, auth.Identity{UserID: created.ID, Email: "b@x.com"}, identity)
}

func TestLogin_UnknownEmail(t *testing.T) {
	authSvc, _ := newAuthFixture(t)

	_, err := authSvc.Login("unregistered@x.com", "whatever")
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestResolveToken_DeletedUser(t *testing.T) {
	authSvc, userSvc := newAuthFixture(t)

	created, err := userSvc.CreateUser("c@x.com", "Carol", "pw")
	require.NoError(t, err)

	result, err := authSvc.Login("c@x.com", "pw")
	require.NoError(t, err)

	// Deleting the user revokes every outstanding token.
	require.NoError(t, userSvc.DeleteUser(created.ID))

	_, err = authSvc.ResolveToken(result.AccessToken)
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestResolveToken_Garbage(t *testing.T) {
	authSvc, _ := newAuthFixture(t)

	_, err := authSvc.ResolveToken("not.a.token")
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
}
