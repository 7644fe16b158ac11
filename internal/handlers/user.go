package handlers

import (
	"errors"
	"net/http"

	"github.com/RavanaDevs/expense-tacker-web-backend/internal/httputil"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/logger"
	appmw "github.com/RavanaDevs/expense-tacker-web-backend/internal/middleware"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/models"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type userUpdateRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=6"`
}

func GetUsersHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := appmw.CurrentUser(r.Context()); !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	users := []models.User{}
	if err := store.DB.Omit("password").Find(&users).Error; err != nil {
		logger.Log.Error("failed to fetch users", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, users)
}

func GetUserByIDHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := appmw.CurrentUser(r.Context()); !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	var user models.User
	if err := store.DB.Omit("password").First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		logger.Log.Error("failed to fetch user", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

func CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := appmw.CurrentUser(r.Context()); !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req signupRequest
	if err := httputil.Bind(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
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
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httputil.WriteError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		logger.Log.Error("failed to create user", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"user":    user,
	})
}

func UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := appmw.CurrentUser(r.Context()); !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	var req userUpdateRequest
	if err := httputil.Bind(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	if err := store.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		logger.Log.Error("failed to fetch user", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	updates := map[string]any{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Log.Error("failed to hash password", zap.Error(err))
			httputil.WriteError(w, http.StatusInternalServerError, "Something went wrong")
			return
		}
		updates["password"] = string(hash)
	}

	if len(updates) > 0 {
		if err := store.DB.Model(&user).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				httputil.WriteError(w, http.StatusBadRequest, "Email already registered")
				return
			}
			logger.Log.Error("failed to update user", zap.Error(err))
			httputil.WriteError(w, http.StatusInternalServerError, "Something went wrong")
			return
		}
		// Reload so the response reflects the post-write row.
		if err := store.DB.Omit("password").First(&user, "id = ?", user.ID).Error; err != nil {
			logger.Log.Error("failed to reload user", zap.Error(err))
			httputil.WriteError(w, http.StatusInternalServerError, "Something went wrong")
			return
		}
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "User updated successfully",
		"user":    user,
	})
}

func DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := appmw.CurrentUser(r.Context()); !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	res := store.DB.Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		logger.Log.Error("failed to delete user", zap.Error(res.Error))
		httputil.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if res.RowsAffected == 0 {
		httputil.WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "User deleted successfully",
	})
}
