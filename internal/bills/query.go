package bills

import (
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/slices"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status filters bills by payment state.
type Status string

const (
	StatusAll      Status = "all"
	StatusUpcoming Status = "upcoming"
	StatusOverdue  Status = "overdue"
	StatusPaid     Status = "paid"
	StatusUnpaid   Status = "unpaid"
)

// SortField is the bill attribute used for ordering.
type SortField string

const (
	SortByDate        SortField = "date"
	SortByAmount      SortField = "amount"
	SortByDescription SortField = "description"
	SortByCategory    SortField = "category"
)

// SortOrder is the direction of the ordering.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// DefaultDaysAhead is the upcoming horizon when none is given.
const DefaultDaysAhead = 30

var (
	ErrInvalidStatus    = errors.New("invalid bill status")
	ErrInvalidSortField = errors.New("invalid sort field")
	ErrInvalidSortOrder = errors.New("invalid sort order")
)

// Query selects and orders bills.
type Query struct {
	Status    Status
	DaysAhead int
	Category  string
	SortBy    SortField
	SortOrder SortOrder

	// Compare overrides SortBy when set. It must return a negative number
	// when a sorts before b, a positive one when after and zero otherwise.
	Compare func(a, b Bill) int
}

// ParseStatus accepts the empty string as StatusAll.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusUpcoming, StatusOverdue, StatusPaid, StatusUnpaid:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: '%s'", ErrInvalidStatus, s)
}

// ParseSortField accepts the aliases dueDate and name next to the field names.
func ParseSortField(s string) (SortField, error) {
	switch s {
	case "", "date", "dueDate":
		return SortByDate, nil
	case "amount":
		return SortByAmount, nil
	case "description", "name":
		return SortByDescription, nil
	case "category":
		return SortByCategory, nil
	}
	return "", fmt.Errorf("%w: '%s'", ErrInvalidSortField, s)
}

func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "", Ascending:
		return Ascending, nil
	case Descending:
		return Descending, nil
	}
	return "", fmt.Errorf("%w: '%s'", ErrInvalidSortOrder, s)
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Upcoming reports whether the bill is unpaid and due between today and the horizon.
func (b Bill) Upcoming(now time.Time, daysAhead int) bool {
	if b.IsPaid {
		return false
	}
	horizon := now.AddDate(0, 0, daysAhead)
	return !b.Date.Before(startOfDay(now)) && !b.Date.After(horizon)
}

// Overdue reports whether the bill is unpaid and due before today.
func (b Bill) Overdue(now time.Time) bool {
	return !b.IsPaid && b.Date.Before(startOfDay(now))
}

// List filters and sorts bills. The input is not modified.
//
// The sort is stable, so bills that compare equal keep their input order
// in both directions.
func List(bills []Bill, q Query, now time.Time) []Bill {
	daysAhead := q.DaysAhead
	if daysAhead <= 0 {
		daysAhead = DefaultDaysAhead
	}

	result := make([]Bill, 0, len(bills))
	for _, b := range bills {
		if q.Category != "" && b.Category != q.Category {
			continue
		}

		switch q.Status {
		case StatusUpcoming:
			if !b.Upcoming(now, daysAhead) {
				continue
			}
		case StatusOverdue:
			if !b.Overdue(now) {
				continue
			}
		case StatusPaid:
			if !b.IsPaid {
				continue
			}
		case StatusUnpaid:
			if b.IsPaid {
				continue
			}
		}

		result = append(result, b)
	}

	compare := q.Compare
	if compare == nil {
		compare = comparator(q.SortBy)
	}

	if q.SortOrder == Descending {
		asc := compare
		compare = func(a, b Bill) int { return asc(b, a) }
	}

	slices.SortStableFunc(result, compare)
	return result
}

func comparator(field SortField) func(a, b Bill) int {
	switch field {
	case SortByAmount:
		return func(a, b Bill) int {
			return compareFloat(math.Abs(a.Amount), math.Abs(b.Amount))
		}
	case SortByDescription:
		lower := cases.Lower(language.Und)
		return func(a, b Bill) int {
			return compareString(lower.String(a.Description), lower.String(b.Description))
		}
	case SortByCategory:
		lower := cases.Lower(language.Und)
		return func(a, b Bill) int {
			return compareString(lower.String(a.Category), lower.String(b.Category))
		}
	default:
		return func(a, b Bill) int {
			return a.Date.Compare(b.Date)
		}
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Summary aggregates a set of bills.
type Summary struct {
	Total         int     `json:"total"`
	Upcoming      int     `json:"upcoming"`
	Overdue       int     `json:"overdue"`
	Paid          int     `json:"paid"`
	Unpaid        int     `json:"unpaid"`
	UpcomingTotal float64 `json:"upcomingTotal"`
	OverdueTotal  float64 `json:"overdueTotal"`
	PaidTotal     float64 `json:"paidTotal"`
	UnpaidTotal   float64 `json:"unpaidTotal"`
}

// Summarize counts bills by status with the default upcoming horizon.
// Amounts are absolute.
func Summarize(bills []Bill, now time.Time) Summary {
	var s Summary
	for _, b := range bills {
		s.Total++
		amount := math.Abs(b.Amount)
		if !b.IsPaid {
			s.Unpaid++
			s.UnpaidTotal += amount
		}

		switch {
		case b.IsPaid:
			s.Paid++
			s.PaidTotal += amount
		case b.Overdue(now):
			s.Overdue++
			s.OverdueTotal += amount
		case b.Upcoming(now, DefaultDaysAhead):
			s.Upcoming++
			s.UpcomingTotal += amount
		}
	}
	return s
}
