package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/RavanaDevs/expense-tacker-web-backend/configs"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/httputil"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/logger"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/models"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const userContextKey contextKey = "user"

const bearerPrefix = "Bearer "

// Authenticated resolves the bearer token to a user record and binds it to
// the request context. Any failure short-circuits with 401.
func Authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, bearerPrefix)

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return []byte(configs.AppConfig.JWT.Secret), nil
		})
		if err != nil || !token.Valid {
			httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
			return
		}

		sub, err := token.Claims.GetSubject()
		if err != nil {
			httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
			return
		}
		userID, err := uuid.Parse(sub)
		if err != nil {
			logger.Log.Error("jwt subject is not a user id")
			httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
			return
		}

		var user models.User
		if err := store.DB.Omit("password").First(&user, "id = ?", userID).Error; err != nil {
			httputil.WriteError(w, http.StatusUnauthorized, "User not found")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUser returns the principal bound by Authenticated.
func CurrentUser(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userContextKey).(models.User)
	return user, ok
}
