package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dts/internal/adapters/watcher"
	"go.trai.ch/dts/internal/core/ports"
)

type recorder struct {
	mu      sync.Mutex
	batches []watcher.Changes
}

func (r *recorder) emit(c watcher.Changes) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, c)
}

func (r *recorder) get() []watcher.Changes {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]watcher.Changes(nil), r.batches...)
}

func write(path string) ports.WatchEvent {
	return ports.WatchEvent{Path: path, Operation: ports.OpWrite}
}

func TestBatcher_CoalescesBurst(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var r recorder
		b := watcher.NewBatcher(100*time.Millisecond, 0, r.emit)

		b.Add(write("/repo/src/b.ts"))
		b.Add(write("/repo/src/a.ts"))
		b.Add(write("/repo/src/b.ts"))
		b.Add(ports.WatchEvent{Path: "/repo/src/old.ts", Operation: ports.OpRemove})

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		batches := r.get()
		require.Len(t, batches, 1)
		assert.Equal(t, []string{"/repo/src/a.ts", "/repo/src/b.ts"}, batches[0].Modified)
		assert.Equal(t, []string{"/repo/src/old.ts"}, batches[0].Removed)
		assert.Equal(t, 3, batches[0].Len())
		assert.Equal(t, []string{"/repo/src/a.ts", "/repo/src/b.ts", "/repo/src/old.ts"}, batches[0].Paths())
	})
}

func TestBatcher_AtomicSaveCountsAsModified(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var r recorder
		b := watcher.NewBatcher(100*time.Millisecond, 0, r.emit)

		b.Add(ports.WatchEvent{Path: "/repo/src/a.ts", Operation: ports.OpRename})
		b.Add(ports.WatchEvent{Path: "/repo/src/a.ts", Operation: ports.OpCreate})

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		batches := r.get()
		require.Len(t, batches, 1)
		assert.Equal(t, []string{"/repo/src/a.ts"}, batches[0].Modified)
		assert.Empty(t, batches[0].Removed)
	})
}

func TestBatcher_QuietPeriodRestarts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var r recorder
		b := watcher.NewBatcher(100*time.Millisecond, 0, r.emit)

		b.Add(write("/repo/src/a.ts"))
		time.Sleep(50 * time.Millisecond)
		b.Add(write("/repo/src/b.ts"))
		time.Sleep(50 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, r.get())

		time.Sleep(60 * time.Millisecond)
		synctest.Wait()
		assert.Len(t, r.get(), 1)
	})
}

func TestBatcher_MaxDelayCapsSteadyStream(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var r recorder
		b := watcher.NewBatcher(100*time.Millisecond, 300*time.Millisecond, r.emit)

		for range 5 {
			b.Add(write("/repo/src/a.ts"))
			time.Sleep(80 * time.Millisecond)
		}
		synctest.Wait()

		// 5 events 80ms apart never leave 100ms of quiet, the cap emits at 300ms.
		batches := r.get()
		require.Len(t, batches, 1)
		assert.Equal(t, []string{"/repo/src/a.ts"}, batches[0].Modified)

		time.Sleep(200 * time.Millisecond)
		synctest.Wait()
		assert.Len(t, r.get(), 2)
	})
}

func TestBatcher_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var r recorder
		b := watcher.NewBatcher(100*time.Millisecond, 0, r.emit)

		b.Add(write("/repo/src/a.ts"))
		b.Stop()
		b.Add(write("/repo/src/b.ts"))

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, r.get())
	})
}
