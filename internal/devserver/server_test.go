package devserver_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/abatilo/ideas/internal/devserver"
	"github.com/abatilo/ideas/internal/idea"
	"github.com/abatilo/ideas/internal/repository"
	"github.com/abatilo/ideas/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func seeded() *repository.Memory {
	return repository.NewMemory(
		idea.Idea{ID: "a", Title: "Sistema de autenticación biométrica", Description: "huellas", Status: idea.StatusPending, Priority: idea.PriorityHigh},
	)
}

func authConfig(t *testing.T) devserver.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return devserver.Config{Username: "ana", PasswordHash: hash, Secret: []byte("test-secret")}
}

func do(router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, router http.Handler, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {"ana"}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCRUDWithoutAuth(t *testing.T) {
	router := devserver.NewRouter(seeded(), devserver.Config{}, nil)

	w := do(router, http.MethodGet, "/ideas", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []idea.Idea
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)

	w = do(router, http.MethodPost, "/ideas", `{"id":"b","title":"Beta","description":"d","status":"pendiente","priority":"baja"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var created idea.Idea
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "b", created.ID)
	assert.Equal(t, idea.PriorityLow, created.Priority)
	assert.Len(t, created.RemoteID, 24)
	assert.False(t, created.CreatedAt.IsZero())

	w = do(router, http.MethodPut, "/ideas/b", `{"title":"Beta 2","description":"d","status":"done","priority":"high"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var updated idea.Idea
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Beta 2", updated.Title)
	assert.Equal(t, idea.StatusDone, updated.Status)

	w = do(router, http.MethodPut, "/ideas/change_status/b", `{"status":"en-progreso"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodGet, "/ideas/b", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got idea.Idea
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, idea.StatusInProgress, got.Status)

	w = do(router, http.MethodDelete, "/ideas/b", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(router, http.MethodGet, "/ideas/b", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRejectsBadPayloads(t *testing.T) {
	router := devserver.NewRouter(seeded(), devserver.Config{}, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"malformed json", http.MethodPost, "/ideas", `{`, http.StatusBadRequest},
		{"missing title", http.MethodPost, "/ideas", `{"description":"d"}`, http.StatusBadRequest},
		{"unknown status", http.MethodPut, "/ideas/change_status/a", `{"status":"archived"}`, http.StatusBadRequest},
		{"update unknown id", http.MethodPut, "/ideas/zzz", `{"title":"t"}`, http.StatusNotFound},
		{"delete unknown id", http.MethodDelete, "/ideas/zzz", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, tt.method, tt.path, tt.body, nil)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestTokenAndAuthMiddleware(t *testing.T) {
	router := devserver.NewRouter(seeded(), authConfig(t), nil)

	w := do(router, http.MethodGet, "/ideas", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(router, http.MethodGet, "/ideas", "", map[string]string{"Authorization": "Token abc"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(router, http.MethodGet, "/ideas", "", map[string]string{"Authorization": "Bearer not.a.jwt"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = login(t, router, "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = login(t, router, "s3cret")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "bearer", body.TokenType)

	claims := &jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(body.AccessToken, claims)
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)

	w = do(router, http.MethodGet, "/ideas", "", map[string]string{"Authorization": "Bearer " + body.AccessToken})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTokenDisabledWithoutPassword(t *testing.T) {
	router := devserver.NewRouter(seeded(), devserver.Config{}, nil)
	w := login(t, router, "anything")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHashPassword(t *testing.T) {
	hash, err := devserver.HashPassword("s3cret")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte("s3cret")))
}

func TestFileBackendRejectsEscapingIDs(t *testing.T) {
	root := t.TempDir()
	router := devserver.NewRouter(storage.NewStoreWithPath(filepath.Join(root, "ideas"), nil), devserver.Config{}, nil)

	w := do(router, http.MethodPost, "/ideas", `{"id":"../../x","title":"t","description":"d"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(root), "*.md"))
	require.NoError(t, err)
	assert.Empty(t, matches)
	_, err = os.Stat(filepath.Join(root, "x.md"))
	assert.True(t, os.IsNotExist(err))

	w = do(router, http.MethodPost, "/ideas", `{"id":"ok","title":"t","description":"d"}`, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	_, err = os.Stat(filepath.Join(root, "ideas", "ok.md"))
	assert.NoError(t, err)
}
