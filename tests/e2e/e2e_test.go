//go:build e2e

package e2e_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestE2E_LiveEndpoint verifies the liveness probe returns 200 OK.
func TestE2E_LiveEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := ts.Client.Get(ts.URL + "/health/live")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

// TestE2E_ReadyEndpoint verifies the readiness probe returns 200 OK when
// the database is reachable.
func TestE2E_ReadyEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := ts.Client.Get(ts.URL + "/health/ready")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

// TestE2E_HealthEndpoint verifies /health reports version plus database and
// cache component status.
func TestE2E_HealthEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := ts.Client.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test-version", body["version"])

	components, ok := body["components"].(map[string]any)
	require.True(t, ok, "expected components object")

	db, ok := components["database"].(map[string]any)
	require.True(t, ok, "expected database component")
	assert.Equal(t, "ok", db["status"])

	cache, ok := components["cache"].(map[string]any)
	require.True(t, ok, "expected cache component")
	assert.Equal(t, "ok", cache["status"])
}

// TestE2E_AnonymousCanBrowse verifies that topic and idea listings work
// without any token.
func TestE2E_AnonymousCanBrowse(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := createTestUser(t, ts)

	topicID := createTopic(t, ts, token, "Public brainstorm")
	createIdea(t, ts, token, topicID, "Visible to everyone")

	status, topics := ts.doJSONList(t, http.MethodGet, "/topics", "")
	assert.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, topics)

	status, ideas := ts.doJSONList(t, http.MethodGet, "/topics/"+topicID+"/ideas", "")
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, ideas, 1)

	idea, ok := ideas[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Visible to everyone", idea["content"])
	// Anonymous viewers never see is_liked=true.
	assert.Equal(t, false, idea["is_liked"])
}
