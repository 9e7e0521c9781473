package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/annocache/internal/adapters/watcher"
)

func TestDebouncer_SinglePath(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls [][]string
		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			calls = append(calls, paths)
		})

		d.Add("/project/src/controller.go")
		assert.Equal(t, 1, d.Pending())

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Len(t, calls, 1)
		assert.Equal(t, []string{"/project/src/controller.go"}, calls[0])
		assert.Equal(t, 0, d.Pending())
	})
}

func TestDebouncer_CoalescesAndDeduplicates(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls [][]string
		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			calls = append(calls, paths)
		})

		d.Add("/project/src/b.go")
		d.Add("/project/src/a.go")
		d.Add("/project/src/b.go")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Len(t, calls, 1)
		assert.Equal(t, []string{"/project/src/a.go", "/project/src/b.go"}, calls[0])
	})
}

func TestDebouncer_WindowRestartsOnAdd(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls int
		d := watcher.NewDebouncer(100*time.Millisecond, func([]string) {
			calls++
		})

		d.Add("/a")
		time.Sleep(80 * time.Millisecond)
		d.Add("/b")
		time.Sleep(80 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, 0, calls)

		time.Sleep(40 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, 1, calls)
	})
}

func TestDebouncer_SeparateBatches(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var mu sync.Mutex
		var calls [][]string
		d := watcher.NewDebouncer(50*time.Millisecond, func(paths []string) {
			mu.Lock()
			defer mu.Unlock()
			calls = append(calls, paths)
		})

		d.Add("/a")
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()
		d.Add("/b")
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, [][]string{{"/a"}, {"/b"}}, calls)
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls [][]string
		d := watcher.NewDebouncer(time.Second, func(paths []string) {
			calls = append(calls, paths)
		})

		d.Add("/a")
		d.Flush()
		require.Len(t, calls, 1)
		assert.Equal(t, []string{"/a"}, calls[0])

		// The stopped timer must not fire a second batch.
		time.Sleep(2 * time.Second)
		synctest.Wait()
		assert.Len(t, calls, 1)
	})
}

func TestDebouncer_FlushEmpty(t *testing.T) {
	t.Parallel()

	var calls int
	d := watcher.NewDebouncer(time.Second, func([]string) { calls++ })
	d.Flush()
	assert.Equal(t, 0, calls)
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d := watcher.NewDebouncer(10*time.Millisecond, nil)
		d.Add("/a")
		time.Sleep(20 * time.Millisecond)
		synctest.Wait()
		assert.NotPanics(t, d.Flush)
	})
}

func TestDebouncer_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls int
		d := watcher.NewDebouncer(100*time.Millisecond, func([]string) { calls++ })

		d.Add("/a")
		d.Stop()
		d.Add("/b")
		assert.Equal(t, 0, d.Pending())

		time.Sleep(time.Second)
		synctest.Wait()
		assert.Equal(t, 0, calls)
	})
}

func TestDebouncer_StopWaitsForCallback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var finished bool
		d := watcher.NewDebouncer(10*time.Millisecond, func([]string) {
			time.Sleep(time.Second)
			finished = true
		})

		d.Add("/a")
		time.Sleep(20 * time.Millisecond)
		d.Stop()
		assert.True(t, finished)
	})
}
