package seed

import (
	"testing"

	"github.com/RavanaDevs/expense-tacker-web-backend/internal/models"
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunIsIdempotent(t *testing.T) {
	store.NewTestDB(t)

	Run()
	Run()

	var users int64
	require.NoError(t, store.DB.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 1, users)

	var demo models.User
	require.NoError(t, store.DB.Where("email = ?", demoEmail).First(&demo).Error)

	var expenses int64
	require.NoError(t, store.DB.Model(&models.Expense{}).
		Where("user_id = ?", demo.ID).Count(&expenses).Error)
	assert.EqualValues(t, len(demoExpenses), expenses)

	var settings models.Settings
	require.NoError(t, store.DB.Where("user_id = ?", demo.ID).First(&settings).Error)
	assert.NotEmpty(t, settings.QuickAmounts)
	assert.NotEmpty(t, settings.Categories)
}
