package notify

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/erazemk/shramba/internal/expiration"
	"github.com/erazemk/shramba/internal/model"
)

// MinLead is the minimum delay for one-shot notifications. Anything closer
// would fire effectively instantly on schedule, so it is skipped instead.
const MinLead = 60 * time.Second

// LowStockDelay is the small fixed delay for near-immediate low-stock alerts.
const LowStockDelay = 5 * time.Second

// AlertHour is the wall-clock hour per-item reminders fire at.
const AlertHour = 9

// Plan computes the full set of notifications that should exist for the given
// inventory, shopping list and settings. Every rule is gated by its own flag
// and by the master enabled flag. Low-stock alerts are event-driven and not
// part of the full plan; see LowStock.
func Plan(items []model.Item, shopping []model.ShoppingListItem, settings model.NotificationSettings, now time.Time) []Request {
	if !settings.Enabled {
		return nil
	}

	var plan []Request

	if settings.ExpirationEnabled {
		for _, item := range items {
			plan = append(plan, PlanItem(item, settings, now)...)
		}
	}

	if settings.DailySummaryEnabled {
		if req, ok := planDailySummary(items, settings, now); ok {
			plan = append(plan, req)
		}
	}

	if settings.ShoppingReminderEnabled {
		if req, ok := planShoppingReminder(shopping, settings); ok {
			plan = append(plan, req)
		}
	}

	return plan
}

// PlanItem computes the per-item expiration notifications for one item.
// Items expiring in 0-1 days get neither entry: the expiring-soon category
// deliberately starts at 2 days to avoid duplicate same-day alerts, and the
// pre-scheduled expired notification needs at least 2 days of headroom to
// reliably land before expiration.
func PlanItem(item model.Item, settings model.NotificationSettings, now time.Time) []Request {
	if !settings.Enabled || !settings.ExpirationEnabled {
		return nil
	}

	res := expiration.Classify(item.ExpirationDate, settings.DaysBeforeExpiration, now)
	if res.DaysUntil == nil {
		return nil
	}
	days := *res.DaysUntil
	if days < 2 {
		return nil
	}

	var plan []Request

	if days <= settings.DaysBeforeExpiration {
		fireAt := atHour(now.AddDate(0, 0, 1), AlertHour, 0)
		if fireAt.Sub(now) > MinLead {
			plan = append(plan, Request{
				Content: Content{
					Title:  "Item Expiring Soon",
					Body:   fmt.Sprintf("%s expires in %d %s", item.Name, days, plural(days, "day", "days")),
					Type:   TypeExpiringSoon,
					ItemID: item.ID,
					Sound:  settings.SoundEnabled,
				},
				Trigger: Trigger{At: fireAt},
			})
		}
	}

	if exp, err := time.ParseInLocation(expiration.DateLayout, item.ExpirationDate, now.Location()); err == nil {
		fireAt := atHour(exp, AlertHour, 0)
		if fireAt.Sub(now) > MinLead {
			plan = append(plan, Request{
				Content: Content{
					Title:  "Item Expired",
					Body:   fmt.Sprintf("%s has expired today. Time to check your storage!", item.Name),
					Type:   TypeExpired,
					ItemID: item.ID,
					Sound:  settings.SoundEnabled,
				},
				Trigger: Trigger{At: fireAt},
			})
		}
	}

	return plan
}

// LowStock builds the near-immediate alert fired when an item's quantity
// drops to or below the configured threshold. The bool reports whether the
// alert applies at all.
func LowStock(item model.Item, settings model.NotificationSettings, now time.Time) (Request, bool) {
	if !settings.Enabled || !settings.LowStockEnabled {
		return Request{}, false
	}
	if item.Quantity > settings.LowStockThreshold {
		return Request{}, false
	}

	body := fmt.Sprintf("%s is running low. Add to shopping list?", item.Name)
	if item.Quantity == 0 {
		body = fmt.Sprintf("%s is out of stock. Add to shopping list?", item.Name)
	}

	return Request{
		Content: Content{
			Title:  "Low Stock Alert",
			Body:   body,
			Type:   TypeLowStock,
			ItemID: item.ID,
			Sound:  settings.SoundEnabled,
		},
		Trigger: Trigger{At: now.Add(LowStockDelay)},
	}, true
}

// planDailySummary emits the recurring summary only when there is something
// to report right now.
func planDailySummary(items []model.Item, settings model.NotificationSettings, now time.Time) (Request, bool) {
	hour, minute, err := parseClock(settings.DailySummaryTime)
	if err != nil {
		return Request{}, false
	}

	var expiring, expired int
	for _, item := range items {
		res := expiration.Classify(item.ExpirationDate, settings.DaysBeforeExpiration, now)
		switch res.Status {
		case expiration.StatusExpiring:
			expiring++
		case expiration.StatusExpired:
			expired++
		}
	}
	if expiring == 0 && expired == 0 {
		return Request{}, false
	}

	var parts []string
	if expired > 0 {
		parts = append(parts, fmt.Sprintf("%d expired %s", expired, plural(expired, "item", "items")))
	}
	if expiring > 0 {
		parts = append(parts, fmt.Sprintf("%d expiring soon", expiring))
	}

	return Request{
		Content: Content{
			Title: "Daily Food Summary",
			Body:  strings.Join(parts, ", "),
			Type:  TypeDailySummary,
			Sound: settings.SoundEnabled,
		},
		Trigger: Trigger{Daily: true, Hour: hour, Minute: minute},
	}, true
}

// planShoppingReminder emits the recurring reminder only while the list has
// incomplete entries.
func planShoppingReminder(shopping []model.ShoppingListItem, settings model.NotificationSettings) (Request, bool) {
	hour, minute, err := parseClock(settings.ShoppingReminderTime)
	if err != nil {
		return Request{}, false
	}

	var incomplete int
	for _, entry := range shopping {
		if !entry.IsCompleted {
			incomplete++
		}
	}
	if incomplete == 0 {
		return Request{}, false
	}

	return Request{
		Content: Content{
			Title: "Shopping List Reminder",
			Body:  fmt.Sprintf("You have %d %s on your shopping list", incomplete, plural(incomplete, "item", "items")),
			Type:  TypeShoppingReminder,
			Sound: settings.SoundEnabled,
		},
		Trigger: Trigger{Daily: true, Hour: hour, Minute: minute},
	}, true
}

// parseClock parses a "HH:mm" wall-clock time.
func parseClock(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid clock time %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock time %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock time %q", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("clock time %q out of range", s)
	}
	return hour, minute, nil
}

// atHour returns day's calendar date at the given wall-clock time.
func atHour(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
