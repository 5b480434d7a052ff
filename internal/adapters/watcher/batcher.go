package watcher

import (
	"slices"
	"sync"
	"time"

	"go.trai.ch/dts/internal/core/ports"
)

const (
	// DefaultQuietPeriod is how long the file system must stay quiet before a batch is emitted.
	DefaultQuietPeriod = 100 * time.Millisecond
	// DefaultMaxDelay bounds how long a batch may be held back by a steady stream of events.
	DefaultMaxDelay = time.Second
)

// Changes is one batch of file system events, keyed by the last operation seen per path.
type Changes struct {
	// Modified lists the paths that were written or created, sorted.
	Modified []string
	// Removed lists the paths that were removed or renamed away, sorted.
	Removed []string
}

// Len returns the number of changed paths.
func (c Changes) Len() int {
	return len(c.Modified) + len(c.Removed)
}

// Paths returns every changed path, sorted.
func (c Changes) Paths() []string {
	paths := slices.Concat(c.Modified, c.Removed)
	slices.Sort(paths)
	return paths
}

// Batcher groups bursts of watch events into Changes. Editors that save through a temporary
// file produce a remove followed by a create; the path then counts as modified.
type Batcher struct {
	quiet    time.Duration
	maxDelay time.Duration
	emit     func(Changes)

	mu      sync.Mutex
	pending map[string]ports.WatchOp
	first   time.Time
	timer   *time.Timer
	// gen invalidates timers that fired while Stop or a newer Add held the lock.
	gen     uint64
	stopped bool
}

// NewBatcher creates a Batcher calling emit once per batch. A zero maxDelay disables the cap.
func NewBatcher(quiet, maxDelay time.Duration, emit func(Changes)) *Batcher {
	return &Batcher{
		quiet:    quiet,
		maxDelay: maxDelay,
		emit:     emit,
		pending:  make(map[string]ports.WatchOp),
	}
}

// Add records event and pushes the emission back by the quiet period, but never past
// maxDelay after the first event of the batch.
func (b *Batcher) Add(event ports.WatchEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.stopped {
		return
	}

	now := time.Now()
	if len(b.pending) == 0 {
		b.first = now
	}
	b.pending[event.Path] = event.Operation

	delay := b.quiet
	if b.maxDelay > 0 {
		if limit := b.first.Add(b.maxDelay).Sub(now); limit < delay {
			delay = max(limit, 0)
		}
	}

	if b.timer != nil {
		b.timer.Stop()
	}
	b.gen++
	gen := b.gen
	b.timer = time.AfterFunc(delay, func() { b.fire(gen) })
}

func (b *Batcher) fire(gen uint64) {
	b.mu.Lock()
	if gen != b.gen || b.stopped {
		b.mu.Unlock()
		return
	}
	changes, ok := b.drain()
	b.mu.Unlock()

	if ok && b.emit != nil {
		b.emit(changes)
	}
}

// Stop discards pending events. Later events are ignored.
func (b *Batcher) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopped = true
	b.drain()
}

// drain empties the pending set. Callers hold mu.
func (b *Batcher) drain() (Changes, bool) {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.gen++

	if len(b.pending) == 0 {
		return Changes{}, false
	}

	var changes Changes
	for path, op := range b.pending {
		switch op {
		case ports.OpRemove, ports.OpRename:
			changes.Removed = append(changes.Removed, path)
		default:
			changes.Modified = append(changes.Modified, path)
		}
	}
	slices.Sort(changes.Modified)
	slices.Sort(changes.Removed)

	clear(b.pending)
	return changes, true
}
