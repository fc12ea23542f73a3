package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebmh/inkwell-be/internal/auth"
	"github.com/calebmh/inkwell-be/internal/database"
	"github.com/calebmh/inkwell-be/internal/services"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	userService := services.NewUserService(db)
	authService := services.NewAuthService(userService, tokens)
	postService := services.NewPostService(db)

	return NewRouter(authService, userService, postService, []string{"http://localhost:3000"})
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func register(t *testing.T, h http.Handler, email, name, password string) map[string]any {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/users", "", map[string]string{
		"email": email, "name": name, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode(t, rec)
}

func login(t *testing.T, h http.Handler, email, password string) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestBlogLifecycle(t *testing.T) {
	h := newTestServer(t)

	// Register user A; the response never includes a password field.
	userA := register(t, h, "a@x.com", "Alice", "secret1")
	assert.NotContains(t, userA, "password")
	assert.NotContains(t, userA, "passwordHash")

	tokenA := login(t, h, "a@x.com", "secret1")

	// Create a post as A.
	rec := doJSON(t, h, http.MethodPost, "/api/posts", tokenA, map[string]any{
		"title": "Hi", "content": "World",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	post := decode(t, rec)
	postID := post["id"].(string)
	assert.Equal(t, userA["id"], post["userId"])
	assert.Equal(t, false, post["published"])

	// A second user may read but not mutate A's post.
	register(t, h, "b@x.com", "Bob", "secret2")
	tokenB := login(t, h, "b@x.com", "secret2")

	rec = doJSON(t, h, http.MethodPatch, "/api/posts/"+postID, tokenB, map[string]any{"title": "Hacked"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/api/posts/"+postID, tokenB, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The owner updates the title.
	rec = doJSON(t, h, http.MethodPatch, "/api/posts/"+postID, tokenA, map[string]any{"title": "Hi2"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Hi2", decode(t, rec)["title"])

	// The public listing embeds the author profile without any hash.
	rec = doJSON(t, h, http.MethodGet, "/api/posts", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listing []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	require.Len(t, listing, 1)
	author, ok := listing[0]["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Alice", author["name"])
	assert.NotContains(t, author, "password")
	assert.NotContains(t, author, "passwordHash")

	// Deleting A cascades to the post and revokes A's token.
	rec = doJSON(t, h, http.MethodDelete, "/api/users/"+userA["id"].(string), tokenA, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/posts/"+postID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/posts", tokenA, map[string]any{
		"title": "Ghost", "content": "Writer",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "nobody@x.com", "password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotContains(t, decode(t, rec), "access_token")
	assert.Equal(t, "Invalid credentials", decode(t, rec)["message"])
}

func TestProtectedRoutesRequireBearer(t *testing.T) {
	h := newTestServer(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/users"},
		{http.MethodGet, "/api/users/some-id"},
		{http.MethodPatch, "/api/users/some-id"},
		{http.MethodDelete, "/api/users/some-id"},
		{http.MethodPost, "/api/posts"},
		{http.MethodGet, "/api/posts/user/some-id"},
		{http.MethodPatch, "/api/posts/some-id"},
		{http.MethodDelete, "/api/posts/some-id"},
	} {
		rec := doJSON(t, h, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)

		rec = doJSON(t, h, tc.method, tc.path, "garbage-token", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s with bad token", tc.method, tc.path)
	}
}

func TestPostValidation(t *testing.T) {
	h := newTestServer(t)

	register(t, h, "v@x.com", "Val", "pw123456")
	token := login(t, h, "v@x.com", "pw123456")

	rec := doJSON(t, h, http.MethodPost, "/api/posts", token, map[string]any{"title": "", "content": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h := newTestServer(t)

	register(t, h, "dup@x.com", "One", "pw123456")
	rec := doJSON(t, h, http.MethodPost, "/api/users", "", map[string]string{
		"email": "dup@x.com", "name": "Two", "password": "pw123456",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPublicReads(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/api/posts", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/posts/unknown-id", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
