package rt

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/muhammadchandra19/tickstore/pkg/logger"
)

// Janitor periodically unmaps real-time blocks that have gone idle. Eviction
// is best-effort memory pressure relief: an unmapped block transparently
// remaps on the next query.
type Janitor struct {
	reader   *Reader
	interval time.Duration
	idle     time.Duration
	logger   logger.Interface

	started  atomic.Bool
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewJanitor creates a janitor over reader. interval is the sleep
// granularity, idle the threshold after which a mapping is released.
func NewJanitor(reader *Reader, interval, idle time.Duration, log logger.Interface) *Janitor {
	return &Janitor{
		reader:   reader,
		interval: interval,
		idle:     idle,
		logger:   log,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the background scan loop. Repeated calls are no-ops.
func (j *Janitor) Start() {
	if !j.started.CompareAndSwap(false, true) {
		return
	}
	go j.run()
}

// Stop signals the loop to exit and waits for it. Shutdown latency is at
// most one sleep interval. Safe to call whether or not Start ran.
func (j *Janitor) Stop() {
	j.stopOnce.Do(func() {
		close(j.stop)
	})
	if j.started.Load() {
		<-j.done
	}
}

func (j *Janitor) run() {
	defer close(j.done)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.stop:
			return
		case <-ticker.C:
		}

		if evicted := j.reader.EvictIdle(j.idle, j.stop); evicted > 0 {
			j.logger.Debug("idle realtime mappings released",
				logger.Field{Key: "count", Value: evicted},
			)
		}
	}
}
