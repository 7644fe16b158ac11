package handlers

import (
	"errors"
	"net/http"

	"github.com/RavanaDevs/expense-tacker-web-backend/internal/httputil"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/logger"
	appmw "github.com/RavanaDevs/expense-tacker-web-backend/internal/middleware"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/models"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type currencySettings struct {
	CurrencySymbol string `json:"currencySymbol" validate:"required"`
	CurrencyCode   string `json:"currencyCode" validate:"required"`
	SymbolPosition string `json:"symbolPosition" validate:"required,oneof=before after"`
}

type quickAmountSettings struct {
	QuickAmounts []models.QuickAmount `json:"quickAmounts" validate:"required,dive"`
}

type categorySettings struct {
	Categories []models.Category `json:"categories" validate:"required,dive"`
}

type settingsResponse struct {
	ID                  uuid.UUID           `json:"id"`
	User                uuid.UUID           `json:"user"`
	CurrencySettings    currencySettings    `json:"currencySettings"`
	QuickAmountSettings quickAmountSettings `json:"quickAmountSettings"`
	CategorySettings    categorySettings    `json:"categorySettings"`
	Theme               string              `json:"theme"`
}

type settingsUpdateRequest struct {
	CurrencySettings    *currencySettings    `json:"currencySettings"`
	QuickAmountSettings *quickAmountSettings `json:"quickAmountSettings"`
	CategorySettings    *categorySettings    `json:"categorySettings"`
	Theme               *string              `json:"theme" validate:"omitempty,oneof=dark light"`
}

type themeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=dark light"`
}

func settingsView(s models.Settings) settingsResponse {
	return settingsResponse{
		ID:   s.ID,
		User: s.UserID,
		CurrencySettings: currencySettings{
			CurrencySymbol: s.CurrencySymbol,
			CurrencyCode:   s.CurrencyCode,
			SymbolPosition: s.SymbolPosition,
		},
		QuickAmountSettings: quickAmountSettings{QuickAmounts: s.QuickAmounts},
		CategorySettings:    categorySettings{Categories: s.Categories},
		Theme:               s.Theme,
	}
}

// getOrCreateSettings reads the user's settings document, materializing a
// default one on first access. Two concurrent first reads may both attempt
// the insert; the unique index on user_id rejects the loser, which then
// re-reads the winner's row.
func getOrCreateSettings(userID uuid.UUID) (models.Settings, error) {
	var s models.Settings
	err := store.DB.Where("user_id = ?", userID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s = models.DefaultSettings(userID)
		err = store.DB.Create(&s).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = store.DB.Where("user_id = ?", userID).First(&s).Error
		}
	}
	return s, err
}

func writeSettingsError(w http.ResponseWriter, err error) {
	logger.Log.Error("settings operation failed", zap.Error(err))
	httputil.WriteError(w, http.StatusInternalServerError, "Something went wrong")
}

func GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := appmw.CurrentUser(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	s, err := getOrCreateSettings(user.ID)
	if err != nil {
		writeSettingsError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, settingsView(s))
}

func UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := appmw.CurrentUser(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req settingsUpdateRequest
	if err := httputil.Bind(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	s, err := getOrCreateSettings(user.ID)
	if err != nil {
		writeSettingsError(w, err)
		return
	}

	if req.CurrencySettings != nil {
		s.CurrencySymbol = req.CurrencySettings.CurrencySymbol
		s.CurrencyCode = req.CurrencySettings.CurrencyCode
		s.SymbolPosition = req.CurrencySettings.SymbolPosition
	}
	if req.QuickAmountSettings != nil {
		s.QuickAmounts = req.QuickAmountSettings.QuickAmounts
	}
	if req.CategorySettings != nil {
		s.Categories = req.CategorySettings.Categories
	}
	if req.Theme != nil {
		s.Theme = *req.Theme
	}

	if err := store.DB.Save(&s).Error; err != nil {
		writeSettingsError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, settingsView(s))
}

func GetCurrencySettingsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := appmw.CurrentUser(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	s, err := getOrCreateSettings(user.ID)
	if err != nil {
		writeSettingsError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, settingsView(s).CurrencySettings)
}

func UpdateCurrencySettingsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := appmw.CurrentUser(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req currencySettings
	if err := httputil.Bind(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	s, err := getOrCreateSettings(user.ID)
	if err != nil {
		writeSettingsError(w, err)
		return
	}
	s.CurrencySymbol = req.CurrencySymbol
	s.CurrencyCode = req.CurrencyCode
	s.SymbolPosition = req.SymbolPosition

	if err := store.DB.Save(&s).Error; err != nil {
		writeSettingsError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, settingsView(s).CurrencySettings)
}

func GetQuickAmountSettingsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := appmw.CurrentUser(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	s, err := getOrCreateSettings(user.ID)
	if err != nil {
		writeSettingsError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, settingsView(s).QuickAmountSettings)
}

func UpdateQuickAmountSettingsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := appmw.CurrentUser(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req quickAmountSettings
	if err := httputil.Bind(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	s, err := getOrCreateSettings(user.ID)
	if err != nil {
		writeSettingsError(w, err)
		return
	}
	s.QuickAmounts = req.QuickAmounts

	if err := store.DB.Save(&s).Error; err != nil {
		writeSettingsError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, settingsView(s).QuickAmountSettings)
}

func GetCategorySettingsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := appmw.CurrentUser(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	s, err := getOrCreateSettings(user.ID)
	if err != nil {
		writeSettingsError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, settingsView(s).CategorySettings)
}

func UpdateCategorySettingsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := appmw.CurrentUser(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req categorySettings
	if err := httputil.Bind(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	s, err := getOrCreateSettings(user.ID)
	if err != nil {
		writeSettingsError(w, err)
		return
	}
	s.Categories = req.Categories

	if err := store.DB.Save(&s).Error; err != nil {
		writeSettingsError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, settingsView(s).CategorySettings)
}

func GetThemeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := appmw.CurrentUser(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	s, err := getOrCreateSettings(user.ID)
	if err != nil {
		writeSettingsError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"theme": s.Theme})
}

func UpdateThemeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := appmw.CurrentUser(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req themeRequest
	if err := httputil.Bind(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	s, err := getOrCreateSettings(user.ID)
	if err != nil {
		writeSettingsError(w, err)
		return
	}
	s.Theme = req.Theme

	if err := store.DB.Save(&s).Error; err != nil {
		writeSettingsError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"theme": s.Theme})
}
