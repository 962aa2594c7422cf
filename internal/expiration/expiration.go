// Package expiration derives an item's expiration status from its expiration
// date and the configured warning window.
package expiration

import (
	"fmt"
	"math"
	"time"
)

// Expiration statuses.
const (
	StatusSafe     = "safe"
	StatusExpiring = "expiring"
	StatusExpired  = "expired"
)

// DateLayout is the calendar-date format items carry (no time component).
const DateLayout = "2006-01-02"

// Result is the derived status of one item.
type Result struct {
	Status    string `json:"status"`
	DaysUntil *int   `json:"days_until,omitempty"`
}

// Classify maps an expiration date and warning window to a status plus a
// signed whole-day count. An empty or malformed date fails open to safe with
// no day count; Classify never returns an error.
func Classify(expirationDate string, warningDays int, now time.Time) Result {
	if expirationDate == "" {
		return Result{Status: StatusSafe}
	}

	exp, err := time.ParseInLocation(DateLayout, expirationDate, now.Location())
	if err != nil {
		return Result{Status: StatusSafe}
	}

	days := daysBetween(now, exp)

	switch {
	case days < 0:
		return Result{Status: StatusExpired, DaysUntil: &days}
	case days <= warningDays:
		return Result{Status: StatusExpiring, DaysUntil: &days}
	default:
		return Result{Status: StatusSafe, DaysUntil: &days}
	}
}

// daysBetween returns the whole-day difference between the calendar date of
// target and the calendar date of now, both taken at local midnight.
func daysBetween(now, target time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, now.Location())
	// Rounding absorbs DST shifts that make a "day" 23 or 25 hours long.
	return int(math.Round(day.Sub(today).Hours() / 24))
}

// DisplayText renders a day count the way item lists show it.
func DisplayText(daysUntil *int) string {
	if daysUntil == nil {
		return "No expiration"
	}
	d := *daysUntil
	switch {
	case d < -1:
		return fmt.Sprintf("Expired %d days ago", -d)
	case d == -1:
		return "Expired 1 day ago"
	case d == 0:
		return "Expires today"
	case d == 1:
		return "Expires tomorrow"
	default:
		return fmt.Sprintf("Expires in %d days", d)
	}
}
