//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/ideaboard/api/internal/adapter/postgres"
	commentrepo "github.com/ideaboard/api/internal/adapter/postgres/comment"
	idearepo "github.com/ideaboard/api/internal/adapter/postgres/idea"
	likerepo "github.com/ideaboard/api/internal/adapter/postgres/like"
	profilerepo "github.com/ideaboard/api/internal/adapter/postgres/profile"
	"github.com/ideaboard/api/internal/adapter/postgres/testhelper"
	tokenrepo "github.com/ideaboard/api/internal/adapter/postgres/token"
	topicrepo "github.com/ideaboard/api/internal/adapter/postgres/topic"
	"github.com/ideaboard/api/internal/adapter/redis/viewcache"
	jwtauth "github.com/ideaboard/api/internal/auth"
	"github.com/ideaboard/api/internal/config"
	authsvc "github.com/ideaboard/api/internal/service/auth"
	commentsvc "github.com/ideaboard/api/internal/service/comment"
	ideasvc "github.com/ideaboard/api/internal/service/idea"
	topicsvc "github.com/ideaboard/api/internal/service/topic"
	"github.com/ideaboard/api/internal/transport/middleware"
	"github.com/ideaboard/api/internal/transport/rest"
	"github.com/ideaboard/api/internal/view"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	Redis  *miniredis.Miniredis
	jwt    *jwtauth.JWTManager
	tokens *tokenrepo.Repo
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// ---------------------------------------------------------------------------
// Stub OAuth verifier. Any code of the form "code:<email>" verifies into an
// identity for that email, so login flows can be driven end to end without
// a real provider.
// ---------------------------------------------------------------------------

type stubVerifier struct{}

func (stubVerifier) AuthURL(state string) string {
	return "https://accounts.example.com/consent?state=" + state
}

func (stubVerifier) VerifyCode(_ context.Context, code string) (*jwtauth.OAuthIdentity, error) {
	var email string
	if _, err := fmt.Sscanf(code, "code:%s", &email); err != nil {
		return nil, fmt.Errorf("stub verifier: bad code %q", code)
	}
	name := "Stub User"
	return &jwtauth.OAuthIdentity{
		Email:      email,
		Name:       &name,
		ProviderID: "google-" + email,
	}, nil
}

// ---------------------------------------------------------------------------
// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper) and a miniredis view cache.
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	cache := viewcache.NewWithClient(client, time.Minute)

	profiles := profilerepo.New(pool)
	topics := topicrepo.New(pool)
	ideas := idearepo.New(pool)
	likes := likerepo.New(pool)
	comments := commentrepo.New(pool)
	tokens := tokenrepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	views := &view.Repos{
		Profile: profiles,
		Idea:    ideas,
		Like:    likes,
		Comment: comments,
	}

	jwtMgr := jwtauth.NewJWTManager("test-secret-at-least-32-chars-long!!", "test-issuer", 15*time.Minute)

	limits := config.BoardConfig{
		MaxTitleLen:       200,
		MaxDescriptionLen: 1000,
		MaxContentLen:     2000,
	}

	authService := authsvc.NewService(logger, stubVerifier{}, profiles, tokens, jwtMgr, 720*time.Hour)
	topicService := topicsvc.NewService(logger, topics, views, limits)
	ideaService := ideasvc.NewService(logger, ideas, topics, likes, txManager, views, limits)
	commentService := commentsvc.NewService(logger, comments, ideas, views, limits)

	router := rest.NewRouter(rest.Handlers{
		Auth:     rest.NewAuthHandler(authService, logger),
		Topics:   rest.NewTopicsHandler(topicService, cache, logger),
		Ideas:    rest.NewIdeasHandler(ideaService, cache, logger),
		Comments: rest.NewCommentsHandler(commentService, cache, logger),
		Health:   rest.NewHealthHandler(pool, cache, "test-version"),
	})

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.CORS(config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,PATCH,DELETE,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		}),
		middleware.Auth(jwtMgr),
	)(router)

	srv := httptest.NewServer(handler)
	t.Cleanup(func() { srv.Close() })

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		Redis:  mr,
		jwt:    jwtMgr,
		tokens: tokens,
	}
}

// ---------------------------------------------------------------------------
// doJSON sends an HTTP request with an optional JSON body and bearer token
// and returns the status code plus the decoded response body (nil for 204).
// ---------------------------------------------------------------------------

func (ts *testServer) doJSON(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "marshal request body")
		reqBody = bytes.NewReader(jsonBody)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, reqBody)
	require.NoError(t, err, "create request")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err, "do request")
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result), "decode response")
	return resp.StatusCode, result
}

// doJSONList is doJSON for endpoints that return a top-level JSON array.
func (ts *testServer) doJSONList(t *testing.T, method, path string, token string) (int, []any) {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+path, nil)
	require.NoError(t, err, "create request")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err, "do request")
	defer resp.Body.Close()

	var result []any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result), "decode response")
	return resp.StatusCode, result
}

// ---------------------------------------------------------------------------
// User seeding. Users are inserted directly; only the login tests exercise
// the OAuth path.
// ---------------------------------------------------------------------------

func createTestUser(t *testing.T, ts *testServer) (string, uuid.UUID) {
	t.Helper()

	userID := uuid.New()
	now := time.Now()

	_, err := ts.Pool.Exec(context.Background(),
		`INSERT INTO users (id, email, name, provider_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		userID,
		fmt.Sprintf("test-%s@example.com", userID.String()[:8]),
		"Test User",
		"seed-"+userID.String(),
		now, now,
	)
	require.NoError(t, err, "insert test user")

	tok, err := ts.jwt.GenerateAccessToken(userID)
	require.NoError(t, err, "generate token")

	return tok, userID
}

// seedRefreshToken stores a refresh token for the user and returns the raw
// value a client would hold.
func seedRefreshToken(t *testing.T, ts *testServer, userID uuid.UUID, expiresAt time.Time) string {
	t.Helper()

	raw, hash, err := ts.jwt.GenerateRefreshToken()
	require.NoError(t, err, "generate refresh token")

	_, err = ts.tokens.Create(context.Background(), userID, hash, expiresAt)
	require.NoError(t, err, "store refresh token")

	return raw
}

// ---------------------------------------------------------------------------
// Board seeding through the API itself.
// ---------------------------------------------------------------------------

func createTopic(t *testing.T, ts *testServer, token, title string) string {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodPost, "/topics", map[string]any{"title": title}, token)
	require.Equal(t, http.StatusCreated, status, "create topic: %v", body)

	id, ok := body["id"].(string)
	require.True(t, ok, "expected topic id in response")
	return id
}

func createIdea(t *testing.T, ts *testServer, token, topicID, content string) string {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodPost, "/topics/"+topicID+"/ideas", map[string]any{"content": content}, token)
	require.Equal(t, http.StatusCreated, status, "create idea: %v", body)

	id, ok := body["id"].(string)
	require.True(t, ok, "expected idea id in response")
	return id
}

func createComment(t *testing.T, ts *testServer, token, ideaID, content string) string {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodPost, "/ideas/"+ideaID+"/comments", map[string]any{"content": content}, token)
	require.Equal(t, http.StatusCreated, status, "create comment: %v", body)

	id, ok := body["id"].(string)
	require.True(t, ok, "expected comment id in response")
	return id
}
