package api

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/notify"
	"github.com/erazemk/shramba/internal/store"
)

// notificationSettings loads the current notification configuration, falling
// back to defaults so a settings read failure never blocks a mutation.
func notificationSettings(ctx context.Context, db *sql.DB) model.NotificationSettings {
	settings, err := store.GetAppSettings(ctx, db)
	if err != nil {
		slog.Warn("loading notification settings", "error", err)
		return model.DefaultAppSettings().Notifications
	}
	return settings.Notifications
}

// resyncNotifications rebuilds the whole notification schedule from current
// data. Used after mutations that affect more than one item's notifications.
func resyncNotifications(ctx context.Context, db *sql.DB, sync *notify.Synchronizer) {
	if sync == nil {
		return
	}
	items, err := store.ListItems(ctx, db, "")
	if err != nil {
		slog.Warn("listing items for notification resync", "error", err)
		return
	}
	shopping, err := store.ListShoppingItems(ctx, db)
	if err != nil {
		slog.Warn("listing shopping items for notification resync", "error", err)
		return
	}
	sync.RescheduleAll(ctx, items, shopping, notificationSettings(ctx, db))
}
