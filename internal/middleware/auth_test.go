package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RavanaDevs/expense-tacker-web-backend/configs"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/models"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, secret string, userID uuid.UUID, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthenticated(t *testing.T) {
	store.NewTestDB(t)
	configs.AppConfig.JWT.Secret = "test-secret"

	user := models.User{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Password: "bcrypt-hash"}
	require.NoError(t, store.DB.Create(&user).Error)

	var resolved models.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := CurrentUser(r.Context())
		require.True(t, ok)
		resolved = u
		w.WriteHeader(http.StatusOK)
	})
	handler := Authenticated(next)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic abc123",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "lowercase scheme rejected",
			authHeader: "bearer " + signTestToken(t, "test-secret", user.ID, time.Hour),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not.a.token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong signature",
			authHeader: "Bearer " + signTestToken(t, "other-secret", user.ID, time.Hour),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			authHeader: "Bearer " + signTestToken(t, "test-secret", user.ID, -time.Hour),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown user",
			authHeader: "Bearer " + signTestToken(t, "test-secret", uuid.New(), time.Hour),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			authHeader: "Bearer " + signTestToken(t, "test-secret", user.ID, time.Hour),
			wantStatus: http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}

	assert.Equal(t, user.ID, resolved.ID)
	assert.Empty(t, resolved.Password, "credential fields must not be loaded")
}
