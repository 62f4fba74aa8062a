package offline

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/astravine/mirelle/internal/models"
)

// QueueKey is the fixed storage key the pending list lives under.
const QueueKey = "pending_symptom_logs"

// DefaultMaxQueued bounds queue growth while persistently offline. When the
// cap is reached the oldest entry is evicted to make room.
const DefaultMaxQueued = 500

// QueuedEntry is a log submission plus the moment it was buffered.
type QueuedEntry struct {
	UserID   string                `json:"user_id"`
	LogDate  time.Time             `json:"log_date"`
	Symptoms models.SymptomPayload `json:"symptoms"`
	QueuedAt time.Time             `json:"queued_at"`
}

// LogEntry converts the buffered submission back into its store form.
func (queued QueuedEntry) LogEntry() models.LogEntry {
	return models.LogEntry{
		UserID:   queued.UserID,
		LogDate:  queued.LogDate,
		Symptoms: queued.Symptoms,
	}
}

// LogStore is the write side of the log store as the queue sees it: a black
// box that either accepts an entry or fails.
type LogStore interface {
	Submit(ctx context.Context, entry models.LogEntry) error
}

// LogStoreFunc adapts a function to the LogStore port.
type LogStoreFunc func(ctx context.Context, entry models.LogEntry) error

func (submit LogStoreFunc) Submit(ctx context.Context, entry models.LogEntry) error {
	return submit(ctx, entry)
}

// Probe reports current connectivity.
type Probe interface {
	Online() bool
}

// ProbeFunc adapts a function to the Probe port.
type ProbeFunc func() bool

func (online ProbeFunc) Online() bool { return online() }

// Notifier receives the fire-and-forget sync-completed event.
type Notifier interface {
	SyncCompleted(count int)
}

// NotifierFunc adapts a function to the Notifier port.
type NotifierFunc func(count int)

func (notify NotifierFunc) SyncCompleted(count int) { notify(count) }

// Queue durably buffers failed log submissions and replays them in order.
// Drains are serialized: at most one is in flight at a time, and a drain
// requested while another runs is a no-op.
type Queue struct {
	storage   Storage
	store     LogStore
	probe     Probe
	notifier  Notifier
	maxQueued int
	now       func() time.Time

	mu sync.Mutex
	// draining serializes drains; drainEnqueues counts entries buffered
	// while the current drain is in flight so the final save keeps them.
	draining      bool
	drainEnqueues int
}

type QueueOption func(*Queue)

// WithMaxQueued overrides the eviction cap.
func WithMaxQueued(max int) QueueOption {
	return func(queue *Queue) {
		if max > 0 {
			queue.maxQueued = max
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) QueueOption {
	return func(queue *Queue) { queue.now = now }
}

func NewQueue(storage Storage, store LogStore, probe Probe, notifier Notifier, options ...QueueOption) *Queue {
	queue := &Queue{
		storage:   storage,
		store:     store,
		probe:     probe,
		notifier:  notifier,
		maxQueued: DefaultMaxQueued,
		now:       time.Now,
	}
	for _, option := range options {
		option(queue)
	}
	return queue
}

// Enqueue buffers a failed submission. Storage problems are reported as a
// false return, never raised.
func (queue *Queue) Enqueue(entry models.LogEntry) bool {
	queue.mu.Lock()
	defer queue.mu.Unlock()

	pending, err := queue.load()
	if err != nil {
		log.Printf("offline queue: load before enqueue failed: %v", err)
		return false
	}

	for len(pending) >= queue.maxQueued {
		pending = pending[1:]
	}
	pending = append(pending, QueuedEntry{
		UserID:   entry.UserID,
		LogDate:  entry.LogDate,
		Symptoms: entry.Symptoms,
		QueuedAt: queue.now(),
	})

	if err := queue.save(pending); err != nil {
		log.Printf("offline queue: persist after enqueue failed: %v", err)
		return false
	}
	if queue.draining {
		queue.drainEnqueues++
	}
	return true
}

// Count returns the number of buffered entries; 0 on any storage failure.
func (queue *Queue) Count() int {
	queue.mu.Lock()
	defer queue.mu.Unlock()

	pending, err := queue.load()
	if err != nil {
		return 0
	}
	return len(pending)
}

// Drain replays the buffered entries sequentially, preserving original
// order. Entries that still fail are retained for the next drain; entries
// that succeed are dropped. Returns the number synced. Offline, a concurrent
// drain, or any storage failure all degrade to 0 with the queue unchanged.
func (queue *Queue) Drain(ctx context.Context) int {
	if queue.probe != nil && !queue.probe.Online() {
		return 0
	}

	queue.mu.Lock()
	if queue.draining {
		queue.mu.Unlock()
		return 0
	}
	queue.draining = true
	queue.drainEnqueues = 0
	pending, err := queue.load()
	queue.mu.Unlock()

	defer func() {
		queue.mu.Lock()
		queue.draining = false
		queue.mu.Unlock()
	}()

	if err != nil {
		log.Printf("offline queue: load before drain failed: %v", err)
		return 0
	}
	if len(pending) == 0 {
		return 0
	}

	synced := 0
	remaining := make([]QueuedEntry, 0, len(pending))
	for _, queued := range pending {
		if err := queue.store.Submit(ctx, queued.LogEntry()); err != nil {
			remaining = append(remaining, queued)
			continue
		}
		synced++
	}

	// Entries enqueued while the drain was in flight sit at the tail of the
	// stored list (only drains remove entries, and drains are serialized);
	// carry them over behind the retained failures. drainEnqueues counts
	// them explicitly so newcomers survive even when an enqueue at the cap
	// evicted a snapshot entry and left the length unchanged.
	queue.mu.Lock()
	current, loadErr := queue.load()
	if loadErr == nil && queue.drainEnqueues > 0 {
		newcomers := queue.drainEnqueues
		if newcomers > len(current) {
			newcomers = len(current)
		}
		remaining = append(remaining, current[len(current)-newcomers:]...)
	}
	err = queue.save(remaining)
	queue.mu.Unlock()
	if err != nil {
		log.Printf("offline queue: persist after drain failed: %v", err)
		return 0
	}

	if synced > 0 && queue.notifier != nil {
		queue.notifier.SyncCompleted(synced)
	}
	return synced
}

func (queue *Queue) load() ([]QueuedEntry, error) {
	content, found, err := queue.storage.Get(QueueKey)
	if err != nil {
		return nil, err
	}
	if !found || len(content) == 0 {
		return []QueuedEntry{}, nil
	}
	pending := make([]QueuedEntry, 0)
	if err := json.Unmarshal(content, &pending); err != nil {
		return nil, err
	}
	return pending, nil
}

func (queue *Queue) save(pending []QueuedEntry) error {
	encoded, err := json.Marshal(pending)
	if err != nil {
		return err
	}
	return queue.storage.Set(QueueKey, encoded)
}
