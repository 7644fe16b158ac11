package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Amounts go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName string    `gorm:"size:100;not null" json:"firstName"`
	LastName  string    `gorm:"size:100;not null" json:"lastName"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string    `gorm:"size:255" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Expense struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;index:idx_expenses_user_date;not null" json:"user"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"amount"`
	Category    string          `gorm:"size:100;index;not null" json:"category"`
	Description string          `gorm:"size:500;not null" json:"description"`
	Date        time.Time       `gorm:"index:idx_expenses_user_date;not null" json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// QuickAmount is a one-tap amount shortcut shown by clients.
type QuickAmount struct {
	ID      string          `json:"id" validate:"required"`
	Amount  decimal.Decimal `json:"amount" validate:"required"`
	Enabled bool            `json:"enabled"`
}

// Category is a user-customized expense category option.
type Category struct {
	ID      string `json:"id" validate:"required"`
	Value   string `json:"value" validate:"required"`
	Label   string `json:"label" validate:"required"`
	Emoji   string `json:"emoji" validate:"required"`
	Enabled bool   `json:"enabled"`
}

type QuickAmounts []QuickAmount

func (q QuickAmounts) Value() (driver.Value, error) {
	if q == nil {
		q = QuickAmounts{}
	}
	return json.Marshal(q)
}

func (q *QuickAmounts) Scan(value any) error {
	return scanJSON(value, q)
}

type Categories []Category

func (c Categories) Value() (driver.Value, error) {
	if c == nil {
		c = Categories{}
	}
	return json.Marshal(c)
}

func (c *Categories) Scan(value any) error {
	return scanJSON(value, c)
}

func scanJSON(value, dst any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
}

// Settings holds per-user preferences. At most one row exists per user,
// enforced by the unique index on UserID.
type Settings struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID    `gorm:"type:uuid;uniqueIndex;not null"`
	CurrencySymbol string       `gorm:"size:8;not null;default:'$'"`
	CurrencyCode   string       `gorm:"size:8;not null;default:'USD'"`
	SymbolPosition string       `gorm:"size:8;not null;default:'before'"` // before | after
	QuickAmounts   QuickAmounts `gorm:"type:text"`
	Categories     Categories   `gorm:"type:text"`
	Theme          string       `gorm:"size:8;not null;default:'light'"` // dark | light
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (s *Settings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// DefaultSettings is the document materialized on first read.
func DefaultSettings(userID uuid.UUID) Settings {
	return Settings{
		UserID:         userID,
		CurrencySymbol: "$",
		CurrencyCode:   "USD",
		SymbolPosition: "before",
		QuickAmounts:   QuickAmounts{},
		Categories:     Categories{},
		Theme:          "light",
	}
}
