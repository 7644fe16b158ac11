package expense

import (
	"github.com/RavanaDevs/expense-tacker-web-backend/internal/models"
	"github.com/shopspring/decimal"
)

// Highest is the single largest matched expense.
type Highest struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// TopCategory is the most frequent category among matched expenses.
type TopCategory struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Stats summarizes a matched set of expenses. Highest and TopCategory are
// null when the set is empty.
type Stats struct {
	Total       decimal.Decimal `json:"total"`
	Average     decimal.Decimal `json:"average"`
	Highest     *Highest        `json:"highest"`
	TopCategory *TopCategory    `json:"topCategory"`
}

// Compute reduces the matched expenses to summary statistics in a single
// left-to-right scan. Ties on the highest amount keep the first record seen;
// ties on category frequency keep the first category to reach the winning
// count. An empty input yields zero totals and null highest/topCategory.
func Compute(expenses []models.Expense) Stats {
	stats := Stats{
		Total:   decimal.Zero,
		Average: decimal.Zero,
	}
	if len(expenses) == 0 {
		return stats
	}

	counts := make(map[string]int, len(expenses))
	var top TopCategory
	var highest Highest

	for i, e := range expenses {
		stats.Total = stats.Total.Add(e.Amount)

		if i == 0 || e.Amount.GreaterThan(highest.Amount) {
			highest = Highest{Category: e.Category, Amount: e.Amount}
		}

		counts[e.Category]++
		if counts[e.Category] > top.Count {
			top = TopCategory{Category: e.Category, Count: counts[e.Category]}
		}
	}

	stats.Average = stats.Total.DivRound(decimal.NewFromInt(int64(len(expenses))), 2)
	stats.Highest = &highest
	stats.TopCategory = &top
	return stats
}
