package expense

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// dateOnly is the bare calendar-date form accepted in query params and
// path segments. Full RFC 3339 timestamps are accepted as well.
const dateOnly = "2006-01-02"

// Filter is the predicate for expense queries. UserID is always applied;
// the remaining fields constrain the query only when set.
type Filter struct {
	UserID   uuid.UUID
	Start    *time.Time
	End      *time.Time
	Category string
}

// ParseDate accepts either a bare calendar date or an RFC 3339 timestamp.
// The second return reports whether the value was a bare date.
func ParseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t.UTC(), true, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), false, nil
	}
	return time.Time{}, false, fmt.Errorf("invalid date %q", s)
}

// DayRange expands a calendar day to its inclusive bounds,
// [00:00:00.000, 23:59:59.999].
func DayRange(day time.Time) (start, end time.Time) {
	start = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end = start.Add(24*time.Hour - time.Millisecond)
	return start, end
}

// FromQuery builds a Filter from startDate, endDate and category params.
// A bare endDate covers the whole of that day. Absent params leave the
// corresponding side of the range open.
func FromQuery(userID uuid.UUID, q url.Values) (Filter, error) {
	f := Filter{UserID: userID, Category: q.Get("category")}

	if s := q.Get("startDate"); s != "" {
		t, _, err := ParseDate(s)
		if err != nil {
			return Filter{}, err
		}
		f.Start = &t
	}
	if s := q.Get("endDate"); s != "" {
		t, bare, err := ParseDate(s)
		if err != nil {
			return Filter{}, err
		}
		if bare {
			_, t = DayRange(t)
		}
		f.End = &t
	}
	return f, nil
}

// ForDay builds a Filter covering a single calendar day.
func ForDay(userID uuid.UUID, day string, q url.Values) (Filter, error) {
	t, _, err := ParseDate(day)
	if err != nil {
		return Filter{}, err
	}
	start, end := DayRange(t)
	return Filter{
		UserID:   userID,
		Start:    &start,
		End:      &end,
		Category: q.Get("category"),
	}, nil
}

// Scope applies the filter as a gorm query scope. Owner equality is
// unconditional so a query can never cross user boundaries.
func (f Filter) Scope(db *gorm.DB) *gorm.DB {
	db = db.Where("user_id = ?", f.UserID)
	if f.Start != nil {
		db = db.Where("date >= ?", *f.Start)
	}
	if f.End != nil {
		db = db.Where("date <= ?", *f.End)
	}
	if f.Category != "" {
		db = db.Where("category = ?", f.Category)
	}
	return db
}
