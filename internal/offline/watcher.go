package offline

import (
	"context"
	"log"
	"time"
)

// Watcher polls a connectivity probe and fires one drain per offline→online
// transition. Transitions are edge-triggered; staying online does not
// retrigger a drain.
type Watcher struct {
	probe    Probe
	queue    *Queue
	interval time.Duration
}

func NewWatcher(probe Probe, queue *Queue, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Watcher{probe: probe, queue: queue, interval: interval}
}

// Start runs the watch loop until ctx is cancelled.
func (watcher *Watcher) Start(ctx context.Context) {
	go watcher.run(ctx)
}

func (watcher *Watcher) run(ctx context.Context) {
	ticker := time.NewTicker(watcher.interval)
	defer ticker.Stop()

	wasOnline := watcher.probe.Online()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			online := watcher.probe.Online()
			if online && !wasOnline {
				if synced := watcher.queue.Drain(ctx); synced > 0 {
					log.Printf("offline queue: replayed %d buffered logs after reconnect", synced)
				}
			}
			wasOnline = online
		}
	}
}
