package watch

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 150 * time.Millisecond

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestBridge(t *testing.T) *Bridge {
	t.Helper()
	b, err := NewBridge(testDebounce)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() }) // nolint:errcheck
	return b
}

func TestBridge_DebounceCollapsesBursts(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "burst.txt", "v0")
	b := newTestBridge(t)

	var calls atomic.Int32
	require.NoError(t, b.Subscribe(path, func(string) { calls.Add(1) }))

	// An editor-style burst: several writes inside one debounce window.
	for i := range 5 {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 },
		2*time.Second, 20*time.Millisecond, "burst must settle into one callback")

	// And nothing else after the window.
	time.Sleep(2 * testDebounce)
	assert.Equal(t, int32(1), calls.Load())
}

func TestBridge_Subscribe_MissingPath(t *testing.T) {
	b := newTestBridge(t)
	err := b.Subscribe(filepath.Join(t.TempDir(), "nope.txt"), func(string) {})
	assert.Error(t, err)
	assert.Empty(t, b.Watched())
}

func TestBridge_Subscribe_ReplacesCallback(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "swap.txt", "v0")
	b := newTestBridge(t)

	var first, second atomic.Int32
	require.NoError(t, b.Subscribe(path, func(string) { first.Add(1) }))
	require.NoError(t, b.Subscribe(path, func(string) { second.Add(1) }))
	assert.Len(t, b.Watched(), 1, "no duplicate underlying watch")

	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	require.Eventually(t, func() bool { return second.Load() == 1 },
		2*time.Second, 20*time.Millisecond)
	assert.Equal(t, int32(0), first.Load(), "last writer wins")
}

func TestBridge_Unsubscribe_CancelsPendingTimer(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "gone.txt", "v0")
	b := newTestBridge(t)

	var calls atomic.Int32
	require.NoError(t, b.Subscribe(path, func(string) { calls.Add(1) }))

	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))
	time.Sleep(20 * time.Millisecond) // let the event reach the bridge
	b.Unsubscribe(path)

	time.Sleep(3 * testDebounce)
	assert.Equal(t, int32(0), calls.Load(), "pending debounce must not fire after unsubscribe")

	// Idempotent.
	b.Unsubscribe(path)
	assert.Empty(t, b.Watched())
}

func TestBridge_Watched_Sorted(t *testing.T) {
	dir := t.TempDir()
	pb := writeTestFile(t, dir, "b.txt", "")
	pa := writeTestFile(t, dir, "a.txt", "")
	b := newTestBridge(t)

	require.NoError(t, b.Subscribe(pb, func(string) {}))
	require.NoError(t, b.Subscribe(pa, func(string) {}))

	watched := b.Watched()
	require.Len(t, watched, 2)
	assert.True(t, watched[0] < watched[1])
}

func TestBridge_UnsubscribeAll(t *testing.T) {
	dir := t.TempDir()
	p1 := writeTestFile(t, dir, "one.txt", "")
	p2 := writeTestFile(t, dir, "two.txt", "")
	b := newTestBridge(t)

	var calls atomic.Int32
	onChange := func(string) { calls.Add(1) }
	require.NoError(t, b.Subscribe(p1, onChange))
	require.NoError(t, b.Subscribe(p2, onChange))

	require.NoError(t, os.WriteFile(p1, []byte("x"), 0o644))
	time.Sleep(20 * time.Millisecond)
	b.UnsubscribeAll()

	assert.Empty(t, b.Watched())
	time.Sleep(3 * testDebounce)
	assert.Equal(t, int32(0), calls.Load())
}

func TestBridge_Close_StopsCallbacks(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "closed.txt", "v0")
	b, err := NewBridge(testDebounce)
	require.NoError(t, err)

	var calls atomic.Int32
	require.NoError(t, b.Subscribe(path, func(string) { calls.Add(1) }))

	require.NoError(t, b.Close())
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	time.Sleep(3 * testDebounce)
	assert.Equal(t, int32(0), calls.Load())
	assert.NoError(t, b.Close(), "double close is safe")
}

func TestBridge_CallbackReceivesPath(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "whoami.txt", "v0")
	b := newTestBridge(t)

	got := make(chan string, 1)
	require.NoError(t, b.Subscribe(path, func(p string) {
		select {
		case got <- p:
		default:
		}
	}))

	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	select {
	case p := <-got:
		assert.Equal(t, path, p)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change callback")
	}
}
