package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/erazemk/shramba/internal/model"
)

// Synchronizer reconciles planned notifications against the platform queue.
// It owns a local index of what it has scheduled (tag -> id) so targeted
// cancellation does not depend on re-listing the platform, but it still
// consults the platform's live list as a fallback so entries scheduled by an
// earlier process are cleaned up too.
//
// Every method is best-effort: platform failures are logged and swallowed so
// a broken notification subsystem never blocks the mutation that triggered
// the sync.
type Synchronizer struct {
	platform Platform

	mu    sync.Mutex
	index map[string]Content // scheduled id -> tag content
}

// NewSynchronizer creates a synchronizer for the given platform.
func NewSynchronizer(platform Platform) *Synchronizer {
	return &Synchronizer{
		platform: platform,
		index:    make(map[string]Content),
	}
}

// RescheduleAll cancels every scheduled notification and schedules the fresh
// plan. Used whenever settings change or on bulk operations; calling it twice
// with unchanged inputs yields the same final scheduled set.
func (s *Synchronizer) RescheduleAll(ctx context.Context, items []model.Item, shopping []model.ShoppingListItem, settings model.NotificationSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelAllLocked(ctx)

	for _, req := range Plan(items, shopping, settings, time.Now()) {
		s.scheduleLocked(ctx, req)
	}
}

// SyncItem cancels notifications tagged with the item's id and reschedules
// that item alone, leaving unrelated entries undisturbed. Used on per-item
// add/update.
func (s *Synchronizer) SyncItem(ctx context.Context, item model.Item, settings model.NotificationSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelItemLocked(ctx, item.ID)

	for _, req := range PlanItem(item, settings, time.Now()) {
		s.scheduleLocked(ctx, req)
	}
}

// CancelItem cancels every notification tagged with the item's id. Used on
// item delete and mark-as-gone.
func (s *Synchronizer) CancelItem(ctx context.Context, itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelItemLocked(ctx, itemID)
}

// NotifyLowStock schedules the near-immediate low-stock alert if it applies
// to the item under the given settings.
func (s *Synchronizer) NotifyLowStock(ctx context.Context, item model.Item, settings model.NotificationSettings) {
	req, ok := LowStock(item, settings, time.Now())
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduleLocked(ctx, req)
}

func (s *Synchronizer) scheduleLocked(ctx context.Context, req Request) {
	id, err := s.platform.Schedule(ctx, req)
	if err != nil {
		slog.Warn("scheduling notification failed",
			"type", req.Content.Type, "item_id", req.Content.ItemID, "error", err)
		return
	}
	s.index[id] = req.Content
}

func (s *Synchronizer) cancelLocked(ctx context.Context, id string) {
	if err := s.platform.Cancel(ctx, id); err != nil {
		slog.Warn("cancelling notification failed", "id", id, "error", err)
	}
	delete(s.index, id)
}

func (s *Synchronizer) cancelAllLocked(ctx context.Context) {
	// The platform list is authoritative; the index alone would miss entries
	// scheduled before a restart.
	scheduled, err := s.platform.ListScheduled(ctx)
	if err != nil {
		slog.Warn("listing scheduled notifications failed, cancelling from index", "error", err)
		for id := range s.index {
			s.cancelLocked(ctx, id)
		}
		return
	}

	for _, sch := range scheduled {
		s.cancelLocked(ctx, sch.ID)
	}
	s.index = make(map[string]Content)
}

func (s *Synchronizer) cancelItemLocked(ctx context.Context, itemID string) {
	seen := make(map[string]bool)
	for id, content := range s.index {
		if content.ItemID == itemID {
			seen[id] = true
			s.cancelLocked(ctx, id)
		}
	}

	// Self-heal: pick up item notifications the index doesn't know about.
	scheduled, err := s.platform.ListScheduled(ctx)
	if err != nil {
		slog.Warn("listing scheduled notifications failed", "error", err)
		return
	}
	for _, sch := range scheduled {
		if sch.Content.ItemID == itemID && !seen[sch.ID] {
			s.cancelLocked(ctx, sch.ID)
		}
	}
}
