package handlers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/RavanaDevs/expense-tacker-web-backend/configs"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/routes"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/store"
	"github.com/stretchr/testify/require"
)

var userSeq int

// newTestServer wires the real router against an in-memory database.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store.NewTestDB(t)
	configs.AppConfig.JWT.Secret = "test-secret"

	srv := httptest.NewServer(routes.NewRoutes())
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, srv *httptest.Server, method, path, token, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeBody(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

// signupUser registers a fresh user and returns its token and id.
func signupUser(t *testing.T, srv *httptest.Server) (token, userID string) {
	t.Helper()
	userSeq++
	body := fmt.Sprintf(
		`{"firstName":"Test","lastName":"User","email":"user%d@example.com","password":"secret123"}`,
		userSeq,
	)
	resp, raw := doRequest(t, srv, http.MethodPost, "/auth/signup", "", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	m := decodeBody(t, raw)
	token, _ = m["token"].(string)
	require.NotEmpty(t, token)
	user, _ := m["user"].(map[string]any)
	require.NotNil(t, user)
	userID, _ = user["id"].(string)
	require.NotEmpty(t, userID)
	return token, userID
}
