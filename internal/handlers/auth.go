package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/RavanaDevs/expense-tacker-web-backend/configs"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/httputil"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/logger"
	appmw "github.com/RavanaDevs/expense-tacker-web-backend/internal/middleware"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/models"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

type signupRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
}

type signinRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authUser struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
}

type authResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    authUser `json:"user"`
}

func newAuthUser(u models.User) authUser {
	return authUser{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}

func signToken(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(tokenTTL).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.AppConfig.JWT.Secret))
}

func SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := httputil.Bind(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var existing models.User
	err := store.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		httputil.WriteError(w, http.StatusBadRequest, "Email already registered")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Log.Error("signup lookup failed", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hash),
	}
	if err := store.DB.Create(&user).Error; err != nil {
		// Lost a race with a concurrent signup for the same email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httputil.WriteError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		logger.Log.Error("failed to create user", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	token, err := signToken(user.ID)
	if err != nil {
		logger.Log.Error("failed to sign jwt", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, authResponse{
		Message: "User created successfully",
		Token:   token,
		User:    newAuthUser(user),
	})
}

func SigninHandler(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := httputil.Bind(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	if err := store.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		httputil.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		httputil.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := signToken(user.ID)
	if err != nil {
		logger.Log.Error("failed to sign jwt", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   token,
		User:    newAuthUser(user),
	})
}

// SignoutHandler is stateless; the client discards the token.
func SignoutHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := appmw.CurrentUser(r.Context()); !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message":     "Signout successful",
		"tokenExpiry": time.Now().UTC().Format(time.RFC3339),
	})
}
