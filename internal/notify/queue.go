package notify

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ashfall-game/survival-client/internal/models"
	"github.com/ashfall-game/survival-client/pkg/metrics"
	"go.uber.org/zap"
)

// Severity classifies a notification for rendering.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

const (
	// DefaultDuration is how long a notification stays open.
	DefaultDuration = 4 * time.Second
	// AchievementDuration is the longer display window for achievement unlocks.
	AchievementDuration = 6 * time.Second
)

// Notification is one transient user-facing message.
type Notification struct {
	ID          int64
	Message     string
	Severity    Severity
	Open        bool
	Achievement *models.Achievement
	CreatedAt   time.Time
}

// Scheduler schedules a function to run after a delay and returns a cancel
// handle. Production code uses the real clock; tests inject a recording fake
// so no timer is ever detached from its owner.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// NewClockScheduler returns a Scheduler backed by the real clock.
func NewClockScheduler() Scheduler {
	return clockScheduler{}
}

// Option adjusts how a notification is shown.
type Option func(*showOptions)

type showOptions struct {
	duration    time.Duration
	achievement *models.Achievement
}

// WithDuration overrides the auto-close delay.
func WithDuration(d time.Duration) Option {
	return func(o *showOptions) { o.duration = d }
}

// Queue is an append-only, self-expiring list of notifications. Closing a
// notification only flips its open flag; the entry stays in the list until
// explicitly removed.
type Queue struct {
	mu        sync.Mutex
	items     []*Notification
	cancels   map[int64]func()
	scheduler Scheduler
	logger    *zap.Logger
	lastID    atomic.Int64
	closed    bool
}

// NewQueue creates a notification queue using the given scheduler.
func NewQueue(scheduler Scheduler, logger *zap.Logger) *Queue {
	return &Queue{
		cancels:   make(map[int64]func()),
		scheduler: scheduler,
		logger:    logger,
	}
}

// Show appends an open notification and schedules its auto-close. It returns
// the notification id immediately; the close happens asynchronously.
func (q *Queue) Show(message string, severity Severity, opts ...Option) int64 {
	options := showOptions{duration: DefaultDuration}
	for _, opt := range opts {
		opt(&options)
	}
	return q.show(message, severity, options)
}

// ShowAchievement shows an achievement unlock: fixed success severity, the
// longer achievement duration, and the payload attached for rendering.
func (q *Queue) ShowAchievement(a models.Achievement) int64 {
	message := fmt.Sprintf("%s %s", a.Icon, a.Name)
	return q.show(message, SeveritySuccess, showOptions{
		duration:    AchievementDuration,
		achievement: &a,
	})
}

func (q *Queue) show(message string, severity Severity, options showOptions) int64 {
	id := q.nextID()

	n := &Notification{
		ID:          id,
		Message:     message,
		Severity:    severity,
		Open:        true,
		Achievement: options.achievement,
		CreatedAt:   time.Now(),
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return id
	}
	q.items = append(q.items, n)
	q.cancels[id] = q.scheduler.AfterFunc(options.duration, func() {
		q.Close(id)
	})
	q.mu.Unlock()

	metrics.NotificationsTotal.WithLabelValues(string(severity)).Inc()
	q.logger.Debug("notification shown",
		zap.Int64("id", id),
		zap.String("severity", string(severity)),
		zap.String("message", message),
	)
	return id
}

// Close flips the notification's open flag. Unknown ids are a no-op.
func (q *Queue) Close(id int64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.cancelLocked(id)
	for _, n := range q.items {
		if n.ID == id {
			n.Open = false
			return
		}
	}
}

// Remove deletes the notification from the list. Unknown ids are a no-op.
func (q *Queue) Remove(id int64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.cancelLocked(id)
	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

// List returns the notifications in insertion order. The returned slice holds
// copies so callers cannot mutate queue state.
func (q *Queue) List() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Notification, len(q.items))
	for i, n := range q.items {
		out[i] = *n
	}
	return out
}

// Shutdown cancels every outstanding auto-close timer. The queue refuses new
// notifications afterwards.
func (q *Queue) Shutdown() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	for id, cancel := range q.cancels {
		cancel()
		delete(q.cancels, id)
	}
}

func (q *Queue) cancelLocked(id int64) {
	if cancel, ok := q.cancels[id]; ok {
		cancel()
		delete(q.cancels, id)
	}
}

// nextID generates a time-based id, bumped monotonically so two notifications
// created in the same nanosecond still get distinct ids.
func (q *Queue) nextID() int64 {
	for {
		last := q.lastID.Load()
		id := time.Now().UnixNano()
		if id <= last {
			id = last + 1
		}
		if q.lastID.CompareAndSwap(last, id) {
			return id
		}
	}
}
