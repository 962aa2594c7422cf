package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/erazemk/shramba/internal/expiration"
	"github.com/erazemk/shramba/internal/model"
)

var planNow = time.Date(2025, 3, 10, 14, 0, 0, 0, time.Local)

func testSettings() model.NotificationSettings {
	return model.DefaultAppSettings().Notifications
}

func itemExpiringIn(days int) model.Item {
	return model.Item{
		ID:             "item-1",
		Name:           "Milk",
		Quantity:       1,
		StorageAreaID:  "area-1",
		ExpirationDate: planNow.AddDate(0, 0, days).Format(expiration.DateLayout),
	}
}

func typesOf(plan []Request) []string {
	var types []string
	for _, req := range plan {
		types = append(types, req.Content.Type)
	}
	return types
}

func TestPlanMasterDisabled(t *testing.T) {
	settings := testSettings()
	settings.Enabled = false

	plan := Plan([]model.Item{itemExpiringIn(2)}, nil, settings, planNow)
	if len(plan) != 0 {
		t.Errorf("expected empty plan with master flag off, got %v", typesOf(plan))
	}
}

func TestPlanItemWithinWarningWindow(t *testing.T) {
	plan := PlanItem(itemExpiringIn(3), testSettings(), planNow)
	if len(plan) != 2 {
		t.Fatalf("expected expiring-soon + expired entries, got %v", typesOf(plan))
	}

	soon, expired := plan[0], plan[1]
	if soon.Content.Type != TypeExpiringSoon {
		t.Errorf("expected expiring_soon first, got %q", soon.Content.Type)
	}
	wantSoon := time.Date(2025, 3, 11, AlertHour, 0, 0, 0, time.Local)
	if !soon.Trigger.At.Equal(wantSoon) {
		t.Errorf("expiring-soon fires at %v, want %v", soon.Trigger.At, wantSoon)
	}
	if !strings.Contains(soon.Content.Body, "expires in 3 days") {
		t.Errorf("unexpected body %q", soon.Content.Body)
	}

	if expired.Content.Type != TypeExpired {
		t.Errorf("expected expired second, got %q", expired.Content.Type)
	}
	wantExpired := time.Date(2025, 3, 13, AlertHour, 0, 0, 0, time.Local)
	if !expired.Trigger.At.Equal(wantExpired) {
		t.Errorf("expired fires at %v, want %v", expired.Trigger.At, wantExpired)
	}
	if expired.Content.ItemID != "item-1" {
		t.Errorf("expired entry missing item tag: %+v", expired.Content)
	}
}

func TestPlanItemBeyondWarningWindow(t *testing.T) {
	// 5 days out with a 3-day window: no expiring-soon, but the expired
	// notification is still pre-scheduled for expiration day.
	plan := PlanItem(itemExpiringIn(5), testSettings(), planNow)
	if len(plan) != 1 || plan[0].Content.Type != TypeExpired {
		t.Fatalf("expected only expired entry, got %v", typesOf(plan))
	}
}

func TestPlanItemCoverageGap(t *testing.T) {
	// Items expiring today or tomorrow get neither per-item notification.
	for _, days := range []int{-2, 0, 1} {
		plan := PlanItem(itemExpiringIn(days), testSettings(), planNow)
		if len(plan) != 0 {
			t.Errorf("expected no entries for item expiring in %d days, got %v", days, typesOf(plan))
		}
	}
}

func TestPlanItemNoDate(t *testing.T) {
	item := itemExpiringIn(3)
	item.ExpirationDate = ""
	if plan := PlanItem(item, testSettings(), planNow); len(plan) != 0 {
		t.Errorf("expected no entries for dateless item, got %v", typesOf(plan))
	}

	item.ExpirationDate = "not-a-date"
	if plan := PlanItem(item, testSettings(), planNow); len(plan) != 0 {
		t.Errorf("expected no entries for malformed date, got %v", typesOf(plan))
	}
}

func TestPlanDailySummary(t *testing.T) {
	items := []model.Item{itemExpiringIn(2), itemExpiringIn(-1)}
	plan := Plan(items, nil, testSettings(), planNow)

	var summary *Request
	for i := range plan {
		if plan[i].Content.Type == TypeDailySummary {
			summary = &plan[i]
		}
	}
	if summary == nil {
		t.Fatalf("expected daily summary in plan, got %v", typesOf(plan))
	}
	if !summary.Trigger.Daily || summary.Trigger.Hour != 9 || summary.Trigger.Minute != 0 {
		t.Errorf("unexpected summary trigger %+v", summary.Trigger)
	}
	if !strings.Contains(summary.Content.Body, "1 expired item") ||
		!strings.Contains(summary.Content.Body, "1 expiring soon") {
		t.Errorf("unexpected summary body %q", summary.Content.Body)
	}
}

func TestPlanDailySummaryNothingToReport(t *testing.T) {
	items := []model.Item{itemExpiringIn(30)}
	for _, req := range Plan(items, nil, testSettings(), planNow) {
		if req.Content.Type == TypeDailySummary {
			t.Error("daily summary planned with nothing expiring or expired")
		}
	}
}

func TestPlanShoppingReminder(t *testing.T) {
	shopping := []model.ShoppingListItem{
		{ID: "s1", Name: "Eggs", Quantity: 1},
		{ID: "s2", Name: "Bread", Quantity: 1, IsCompleted: true},
	}

	plan := Plan(nil, shopping, testSettings(), planNow)
	if len(plan) != 1 || plan[0].Content.Type != TypeShoppingReminder {
		t.Fatalf("expected only shopping reminder, got %v", typesOf(plan))
	}
	req := plan[0]
	if !req.Trigger.Daily || req.Trigger.Hour != 18 {
		t.Errorf("unexpected reminder trigger %+v", req.Trigger)
	}
	if !strings.Contains(req.Content.Body, "1 item on your shopping list") {
		t.Errorf("unexpected reminder body %q", req.Content.Body)
	}
}

func TestPlanShoppingReminderAllCompleted(t *testing.T) {
	shopping := []model.ShoppingListItem{{ID: "s1", Name: "Eggs", Quantity: 1, IsCompleted: true}}
	if plan := Plan(nil, shopping, testSettings(), planNow); len(plan) != 0 {
		t.Errorf("expected no reminder for fully completed list, got %v", typesOf(plan))
	}
}

func TestPlanInvalidClockTime(t *testing.T) {
	settings := testSettings()
	settings.DailySummaryTime = "morning"
	settings.ShoppingReminderTime = "25:00"

	items := []model.Item{itemExpiringIn(-1)}
	shopping := []model.ShoppingListItem{{ID: "s1", Name: "Eggs", Quantity: 1}}
	for _, req := range Plan(items, shopping, settings, planNow) {
		if req.Content.Type == TypeDailySummary || req.Content.Type == TypeShoppingReminder {
			t.Errorf("recurring entry planned with invalid clock time: %q", req.Content.Type)
		}
	}
}

func TestLowStock(t *testing.T) {
	settings := testSettings()
	now := time.Now()

	item := itemExpiringIn(10)
	item.Quantity = 0
	req, ok := LowStock(item, settings, now)
	if !ok {
		t.Fatal("expected low-stock alert for zero quantity")
	}
	if req.Content.Type != TypeLowStock || req.Content.ItemID != item.ID {
		t.Errorf("unexpected content %+v", req.Content)
	}
	if got := req.Trigger.At.Sub(now); got != LowStockDelay {
		t.Errorf("expected %v delay, got %v", LowStockDelay, got)
	}
	if !strings.Contains(req.Content.Body, "out of stock") {
		t.Errorf("unexpected body %q", req.Content.Body)
	}

	item.Quantity = settings.LowStockThreshold + 1
	if _, ok := LowStock(item, settings, now); ok {
		t.Error("expected no alert above threshold")
	}

	item.Quantity = 0
	settings.LowStockEnabled = false
	if _, ok := LowStock(item, settings, now); ok {
		t.Error("expected no alert with category disabled")
	}
}
