package handlers

import (
	"errors"
	"net/http"

	"github.com/RavanaDevs/expense-tacker-web-backend/internal/expense"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/httputil"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/logger"
	appmw "github.com/RavanaDevs/expense-tacker-web-backend/internal/middleware"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/models"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type expenseRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Date        string          `json:"date" validate:"required"`
}

type expenseUpdateRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Category    *string          `json:"category" validate:"omitempty,min=1"`
	Description *string          `json:"description" validate:"omitempty,min=1"`
	Date        *string          `json:"date" validate:"omitempty,min=1"`
}

func (req expenseRequest) toModel(userID uuid.UUID) (models.Expense, error) {
	date, _, err := expense.ParseDate(req.Date)
	if err != nil {
		return models.Expense{}, err
	}
	return models.Expense{
		UserID:      userID,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	}, nil
}

func CreateExpenseHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := appmw.CurrentUser(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req expenseRequest
	if err := httputil.Bind(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	exp, err := req.toModel(user.ID)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.DB.Create(&exp).Error; err != nil {
		logger.Log.Error("failed to create expense", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Expense created successfully",
		"expense": exp,
	})
}

// BulkCreateExpensesHandler validates every element before any write; one
// invalid element rejects the whole batch.
func BulkCreateExpensesHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := appmw.CurrentUser(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var reqs []expenseRequest
	if err := httputil.Decode(r, &reqs); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	expenses := make([]models.Expense, 0, len(reqs))
	for _, req := range reqs {
		if err := httputil.Validate(req); err != nil {
			httputil.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		exp, err := req.toModel(user.ID)
		if err != nil {
			httputil.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		expenses = append(expenses, exp)
	}

	if len(expenses) > 0 {
		if err := store.DB.Create(&expenses).Error; err != nil {
			logger.Log.Error("failed to bulk create expenses", zap.Error(err))
			httputil.WriteError(w, http.StatusInternalServerError, "Something went wrong")
			return
		}
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]any{
		"message":  "Expenses created successfully",
		"count":    len(expenses),
		"expenses": expenses,
	})
}

func findExpenses(f expense.Filter) ([]models.Expense, error) {
	expenses := []models.Expense{}
	err := store.DB.Scopes(f.Scope).Order("date DESC").Find(&expenses).Error
	return expenses, err
}

func GetExpensesHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := appmw.CurrentUser(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	f, err := expense.FromQuery(user.ID, r.URL.Query())
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	expenses, err := findExpenses(f)
	if err != nil {
		logger.Log.Error("failed to fetch expenses", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, expenses)
}

func GetExpensesByDateHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := appmw.CurrentUser(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	f, err := expense.ForDay(user.ID, chi.URLParam(r, "date"), r.URL.Query())
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	expenses, err := findExpenses(f)
	if err != nil {
		logger.Log.Error("failed to fetch expenses", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, expenses)
}

func GetExpenseStatsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := appmw.CurrentUser(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	f, err := expense.FromQuery(user.ID, r.URL.Query())
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	expenses, err := findExpenses(f)
	if err != nil {
		logger.Log.Error("failed to fetch expenses", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, expense.Compute(expenses))
}

func GetExpenseStatsByDateHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := appmw.CurrentUser(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	f, err := expense.ForDay(user.ID, chi.URLParam(r, "date"), r.URL.Query())
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	expenses, err := findExpenses(f)
	if err != nil {
		logger.Log.Error("failed to fetch expenses", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, expense.Compute(expenses))
}

// findExpenseByID looks up by id and owner together so another user's record
// is indistinguishable from a missing one.
func findExpenseByID(r *http.Request, userID uuid.UUID) (models.Expense, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return models.Expense{}, gorm.ErrRecordNotFound
	}
	var exp models.Expense
	err = store.DB.Where("id = ? AND user_id = ?", id, userID).First(&exp).Error
	return exp, err
}

func GetExpenseByIDHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := appmw.CurrentUser(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	exp, err := findExpenseByID(r, user.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httputil.WriteError(w, http.StatusNotFound, "Expense not found")
		return
	}
	if err != nil {
		logger.Log.Error("failed to fetch expense", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, exp)
}

func UpdateExpenseHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := appmw.CurrentUser(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req expenseUpdateRequest
	if err := httputil.Bind(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	updates := map[string]any{}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Date != nil {
		date, _, err := expense.ParseDate(*req.Date)
		if err != nil {
			httputil.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		updates["date"] = date
	}

	exp, err := findExpenseByID(r, user.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httputil.WriteError(w, http.StatusNotFound, "Expense not found")
		return
	}
	if err != nil {
		logger.Log.Error("failed to fetch expense", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	if len(updates) > 0 {
		if err := store.DB.Model(&exp).Updates(updates).Error; err != nil {
			logger.Log.Error("failed to update expense", zap.Error(err))
			httputil.WriteError(w, http.StatusInternalServerError, "Something went wrong")
			return
		}
		// Reload so the response reflects the post-write row.
		if err := store.DB.First(&exp, "id = ?", exp.ID).Error; err != nil {
			logger.Log.Error("failed to reload expense", zap.Error(err))
			httputil.WriteError(w, http.StatusInternalServerError, "Something went wrong")
			return
		}
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Expense updated successfully",
		"expense": exp,
	})
}

func DeleteExpenseHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := appmw.CurrentUser(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, "Expense not found")
		return
	}

	res := store.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.Expense{})
	if res.Error != nil {
		logger.Log.Error("failed to delete expense", zap.Error(res.Error))
		httputil.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if res.RowsAffected == 0 {
		httputil.WriteError(w, http.StatusNotFound, "Expense not found")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Expense deleted successfully",
	})
}
