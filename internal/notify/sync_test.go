package notify

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/erazemk/shramba/internal/expiration"
	"github.com/erazemk/shramba/internal/model"
)

// fakePlatform records schedule/cancel calls and can be made to fail.
type fakePlatform struct {
	mu           sync.Mutex
	nextID       int
	scheduled    map[string]Scheduled
	failSchedule bool
	failList     bool
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{scheduled: make(map[string]Scheduled)}
}

func (f *fakePlatform) RequestPermission(ctx context.Context) (bool, error) { return true, nil }

func (f *fakePlatform) Schedule(ctx context.Context, req Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSchedule {
		return "", fmt.Errorf("platform unavailable")
	}
	f.nextID++
	id := strconv.Itoa(f.nextID)
	f.scheduled[id] = Scheduled{ID: id, Content: req.Content, Trigger: req.Trigger}
	return id, nil
}

func (f *fakePlatform) Cancel(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.scheduled, id)
	return nil
}

func (f *fakePlatform) ListScheduled(ctx context.Context) ([]Scheduled, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList {
		return nil, fmt.Errorf("platform unavailable")
	}
	out := make([]Scheduled, 0, len(f.scheduled))
	for _, sch := range f.scheduled {
		out = append(out, sch)
	}
	return out, nil
}

func (f *fakePlatform) snapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var keys []string
	for _, sch := range f.scheduled {
		keys = append(keys, sch.Content.Type+"/"+sch.Content.ItemID)
	}
	sort.Strings(keys)
	return keys
}

func expiringItem(id string, days int) model.Item {
	return model.Item{
		ID:             id,
		Name:           "Item " + id,
		Quantity:       1,
		StorageAreaID:  "area-1",
		ExpirationDate: time.Now().AddDate(0, 0, days).Format(expiration.DateLayout),
	}
}

func TestRescheduleAllIdempotent(t *testing.T) {
	platform := newFakePlatform()
	syncer := NewSynchronizer(platform)
	ctx := context.Background()

	items := []model.Item{expiringItem("a", 2), expiringItem("b", 10)}
	shopping := []model.ShoppingListItem{{ID: "s1", Name: "Eggs", Quantity: 1}}
	settings := model.DefaultAppSettings().Notifications

	syncer.RescheduleAll(ctx, items, shopping, settings)
	first := platform.snapshot()
	if len(first) == 0 {
		t.Fatal("expected notifications after resync")
	}

	syncer.RescheduleAll(ctx, items, shopping, settings)
	second := platform.snapshot()

	if len(first) != len(second) {
		t.Fatalf("resync not stable: %v then %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("resync not stable: %v then %v", first, second)
		}
	}
}

func TestSyncItemLeavesOthersUndisturbed(t *testing.T) {
	platform := newFakePlatform()
	syncer := NewSynchronizer(platform)
	ctx := context.Background()
	settings := model.DefaultAppSettings().Notifications

	a := expiringItem("a", 2)
	b := expiringItem("b", 3)
	syncer.RescheduleAll(ctx, []model.Item{a, b}, nil, settings)

	var bIDs []string
	for _, sch := range platform.scheduled {
		if sch.Content.ItemID == "b" {
			bIDs = append(bIDs, sch.ID)
		}
	}
	if len(bIDs) == 0 {
		t.Fatal("expected entries for item b")
	}

	// Re-sync item a with a new date; b's scheduled ids must survive.
	a.ExpirationDate = time.Now().AddDate(0, 0, 5).Format(expiration.DateLayout)
	syncer.SyncItem(ctx, a, settings)

	for _, id := range bIDs {
		if _, ok := platform.scheduled[id]; !ok {
			t.Errorf("entry %s for item b was cancelled by syncing item a", id)
		}
	}
	for _, sch := range platform.scheduled {
		if sch.Content.ItemID == "a" && sch.Content.Type == TypeExpiringSoon {
			t.Error("stale expiring-soon entry for item a survived re-sync")
		}
	}
}

func TestCancelItemSelfHeals(t *testing.T) {
	platform := newFakePlatform()
	ctx := context.Background()

	// Entry scheduled by an earlier process: present on the platform but
	// unknown to this synchronizer's index.
	platform.Schedule(ctx, Request{Content: Content{Type: TypeExpired, ItemID: "orphan"}})
	platform.Schedule(ctx, Request{Content: Content{Type: TypeExpired, ItemID: "other"}})

	syncer := NewSynchronizer(platform)
	syncer.CancelItem(ctx, "orphan")

	for _, sch := range platform.scheduled {
		if sch.Content.ItemID == "orphan" {
			t.Error("orphaned entry not cancelled")
		}
	}
	found := false
	for _, sch := range platform.scheduled {
		if sch.Content.ItemID == "other" {
			found = true
		}
	}
	if !found {
		t.Error("unrelated entry was cancelled")
	}
}

func TestScheduleFailureSwallowed(t *testing.T) {
	platform := newFakePlatform()
	platform.failSchedule = true
	syncer := NewSynchronizer(platform)
	ctx := context.Background()

	// Must not panic or propagate; the mutation that triggered this sync
	// already succeeded.
	syncer.RescheduleAll(ctx, []model.Item{expiringItem("a", 2)}, nil, model.DefaultAppSettings().Notifications)
	syncer.NotifyLowStock(ctx, model.Item{ID: "a", Name: "A"}, model.DefaultAppSettings().Notifications)

	if len(platform.scheduled) != 0 {
		t.Errorf("expected nothing scheduled, got %d", len(platform.scheduled))
	}
}

func TestNotifyLowStock(t *testing.T) {
	platform := newFakePlatform()
	syncer := NewSynchronizer(platform)
	ctx := context.Background()

	item := model.Item{ID: "a", Name: "Milk", Quantity: 0}
	syncer.NotifyLowStock(ctx, item, model.DefaultAppSettings().Notifications)

	if got := platform.snapshot(); len(got) != 1 || got[0] != TypeLowStock+"/a" {
		t.Errorf("expected single low-stock entry, got %v", got)
	}
}

func TestMemoryPlatformFireAndCancel(t *testing.T) {
	platform := NewMemoryPlatform()
	defer platform.Close()
	ctx := context.Background()

	fired := make(chan Scheduled, 1)
	platform.OnFire = func(sch Scheduled) { fired <- sch }

	id, err := platform.Schedule(ctx, Request{
		Content: Content{Type: TypeLowStock, Title: "t", ItemID: "a"},
		Trigger: Trigger{At: time.Now().Add(20 * time.Millisecond)},
	})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	select {
	case sch := <-fired:
		if sch.ID != id {
			t.Errorf("fired id %s, want %s", sch.ID, id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("notification never fired")
	}

	// One-shot entries disappear after firing.
	list, _ := platform.ListScheduled(ctx)
	if len(list) != 0 {
		t.Errorf("expected empty queue after fire, got %d entries", len(list))
	}

	// Cancel before fire.
	id2, _ := platform.Schedule(ctx, Request{
		Content: Content{Type: TypeExpired, ItemID: "b"},
		Trigger: Trigger{At: time.Now().Add(time.Hour)},
	})
	platform.Cancel(ctx, id2)
	list, _ = platform.ListScheduled(ctx)
	if len(list) != 0 {
		t.Errorf("expected cancelled entry removed, got %d entries", len(list))
	}
}
