// Package notify plans local reminders from inventory state and keeps the
// platform notification queue consistent with that plan.
package notify

import (
	"context"
	"time"
)

// Notification types, carried as tag data so entries can be found and
// cancelled later.
const (
	TypeExpiringSoon     = "expiring_soon"
	TypeExpired          = "expired"
	TypeLowStock         = "low_stock"
	TypeShoppingReminder = "shopping_reminder"
	TypeDailySummary     = "daily_summary"
)

// Content is the displayed notification plus its tag data.
type Content struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Type   string `json:"type"`
	ItemID string `json:"item_id,omitempty"`
	Sound  bool   `json:"sound"`
}

// Trigger describes when a notification fires: either a one-shot time or a
// recurring daily wall-clock time.
type Trigger struct {
	At     time.Time `json:"at,omitempty"`
	Daily  bool      `json:"daily,omitempty"`
	Hour   int       `json:"hour,omitempty"`
	Minute int       `json:"minute,omitempty"`
}

// Request is a notification that should exist on the platform queue.
type Request struct {
	Content Content `json:"content"`
	Trigger Trigger `json:"trigger"`
}

// Scheduled is a notification currently known to the platform.
type Scheduled struct {
	ID      string  `json:"id"`
	Content Content `json:"content"`
	Trigger Trigger `json:"trigger"`
}

// Platform is the local notification capability. Implementations own the
// source of truth for what is actually scheduled.
type Platform interface {
	RequestPermission(ctx context.Context) (bool, error)
	Schedule(ctx context.Context, req Request) (string, error)
	Cancel(ctx context.Context, id string) error
	ListScheduled(ctx context.Context) ([]Scheduled, error)
}
