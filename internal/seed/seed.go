package seed

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/RavanaDevs/expense-tacker-web-backend/internal/logger"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/models"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	demoEmail    = "demo@expense.local"
	demoPassword = "password123"
)

var demoExpenses = []struct {
	Amount      string
	Category    string
	Description string
	DaysAgo     int
}{
	{"12.50", "food", "Lunch", 0},
	{"3.20", "transport", "Bus fare", 0},
	{"45.00", "food", "Groceries", 1},
	{"9.99", "entertainment", "Movie rental", 2},
	{"120.00", "utilities", "Electricity bill", 3},
}

// Run creates a demo user with sample expenses and default settings.
// Development-mode only; idempotent.
func Run() {
	db := store.DB

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", demoEmail).Count(&count).Error; err != nil {
		logger.Log.Fatal("seed check failed", zap.Error(err))
	}
	if count > 0 {
		logger.Log.Info("seed already applied, skipping")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Fatal("failed to hash seed password", zap.Error(err))
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			FirstName: "Demo",
			LastName:  "User",
			Email:     demoEmail,
			Password:  string(hash),
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, e := range demoExpenses {
			exp := models.Expense{
				UserID:      user.ID,
				Amount:      decimal.RequireFromString(e.Amount),
				Category:    e.Category,
				Description: e.Description,
				Date:        now.AddDate(0, 0, -e.DaysAgo),
			}
			if err := tx.Create(&exp).Error; err != nil {
				return err
			}
		}

		settings := models.DefaultSettings(user.ID)
		settings.QuickAmounts = models.QuickAmounts{
			{ID: "qa-5", Amount: decimal.RequireFromString("5"), Enabled: true},
			{ID: "qa-10", Amount: decimal.RequireFromString("10"), Enabled: true},
			{ID: "qa-20", Amount: decimal.RequireFromString("20"), Enabled: true},
		}
		settings.Categories = models.Categories{
			{ID: "cat-food", Value: "food", Label: "Food", Emoji: "🍔", Enabled: true},
			{ID: "cat-transport", Value: "transport", Label: "Transport", Emoji: "🚌", Enabled: true},
			{ID: "cat-utilities", Value: "utilities", Label: "Utilities", Emoji: "💡", Enabled: true},
		}
		return tx.Create(&settings).Error
	})
	if err != nil {
		logger.Log.Fatal("seed failed", zap.Error(err))
	}
	logger.Log.Info("seeded demo user", zap.String("email", demoEmail), zap.String("password", demoPassword))
}
