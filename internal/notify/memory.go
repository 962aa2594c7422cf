package notify

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"
)

// MemoryPlatform is an in-process notification platform backed by timers.
// Fired notifications are delivered to the OnFire hook if set, otherwise
// logged. It stands in for a device notification service when the server
// runs without one, and backs the notification tests.
type MemoryPlatform struct {
	// OnFire, if set before use, receives every fired notification.
	OnFire func(Scheduled)

	mu        sync.Mutex
	nextID    int64
	scheduled map[string]Scheduled
	timers    map[string]*time.Timer
}

// NewMemoryPlatform creates an empty in-memory platform.
func NewMemoryPlatform() *MemoryPlatform {
	return &MemoryPlatform{
		scheduled: make(map[string]Scheduled),
		timers:    make(map[string]*time.Timer),
	}
}

// RequestPermission always grants; there is no OS prompt in-process.
func (p *MemoryPlatform) RequestPermission(ctx context.Context) (bool, error) {
	return true, nil
}

// Schedule registers the notification and arms its timer.
func (p *MemoryPlatform) Schedule(ctx context.Context, req Request) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextID++
	id := strconv.FormatInt(p.nextID, 10)
	sch := Scheduled{ID: id, Content: req.Content, Trigger: req.Trigger}
	p.scheduled[id] = sch

	delay := time.Until(req.Trigger.At)
	if req.Trigger.Daily {
		delay = untilNextClock(time.Now(), req.Trigger.Hour, req.Trigger.Minute)
	}
	if delay < 0 {
		delay = 0
	}
	p.timers[id] = time.AfterFunc(delay, func() { p.fire(id) })

	return id, nil
}

// Cancel removes a scheduled notification. Cancelling an unknown id is a
// no-op, matching platform behavior.
func (p *MemoryPlatform) Cancel(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removeLocked(id)
	return nil
}

// ListScheduled returns a snapshot of everything currently scheduled.
func (p *MemoryPlatform) ListScheduled(ctx context.Context) ([]Scheduled, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Scheduled, 0, len(p.scheduled))
	for _, sch := range p.scheduled {
		out = append(out, sch)
	}
	return out, nil
}

// Close stops all timers.
func (p *MemoryPlatform) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id := range p.timers {
		p.removeLocked(id)
	}
}

func (p *MemoryPlatform) fire(id string) {
	p.mu.Lock()
	sch, ok := p.scheduled[id]
	if !ok {
		p.mu.Unlock()
		return
	}
	if sch.Trigger.Daily {
		// Recurring: re-arm for the next occurrence.
		p.timers[id] = time.AfterFunc(untilNextClock(time.Now(), sch.Trigger.Hour, sch.Trigger.Minute), func() { p.fire(id) })
	} else {
		p.removeLocked(id)
	}
	onFire := p.OnFire
	p.mu.Unlock()

	if onFire != nil {
		onFire(sch)
		return
	}
	slog.Info("notification fired", "type", sch.Content.Type, "title", sch.Content.Title, "body", sch.Content.Body)
}

func (p *MemoryPlatform) removeLocked(id string) {
	if t, ok := p.timers[id]; ok {
		t.Stop()
		delete(p.timers, id)
	}
	delete(p.scheduled, id)
}

// untilNextClock returns the duration until the next occurrence of the given
// wall-clock time, at least one minute out so a just-passed minute rolls to
// tomorrow.
func untilNextClock(now time.Time, hour, minute int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
