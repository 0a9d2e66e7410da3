// Package watch bridges the on-disk truth into the tree: it subscribes
// individual absolute file paths with fsnotify, collapses editor save bursts
// with a per-path debounce timer, and hands each settled change to the
// registered callback. The bridge knows nothing about the tree; the owning
// layer reconciles the subscribed path set against the tree's file nodes.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/jsachdeva7/dev-clipboard/internal/util"
)

// DefaultDebounce is the quiet period after the last raw change event before
// a logical change is reported. Editors commonly save through temp-file
// swaps and multiple writes; one window collapses the burst.
const DefaultDebounce = 100 * time.Millisecond

type subscription struct {
	path string // absolute, native separators; handed to callbacks

	mu       sync.Mutex
	onChange func(path string)
	timer    *time.Timer
}

func (s *subscription) setCallback(onChange func(string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = onChange
}

func (s *subscription) cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Bridge maps normalized absolute paths to watch subscriptions over one
// shared fsnotify watcher.
type Bridge struct {
	log      util.Logger
	watcher  *fsnotify.Watcher
	debounce time.Duration
	subs     *xsync.Map[string, *subscription]

	closeOnce sync.Once
}

// NewBridge creates the bridge and starts its event loop. debounce <= 0
// falls back to DefaultDebounce.
func NewBridge(debounce time.Duration) (*Bridge, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	b := &Bridge{
		log:      util.GetLogger("watch.Bridge"),
		watcher:  watcher,
		debounce: debounce,
		subs:     xsync.NewMap[string, *subscription](),
	}
	go b.loop()
	return b, nil
}

// Subscribe registers onChange for the path. If the path is already
// subscribed the callback is replaced (last writer wins) without creating a
// duplicate underlying watch. A path that does not exist at subscribe time
// is an error; callers log and continue.
func (b *Bridge) Subscribe(path string, onChange func(path string)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	key := util.NormalizePath(abs)

	if sub, ok := b.subs.Load(key); ok {
		sub.setCallback(onChange)
		return nil
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("stat %s: %w", abs, err)
	}
	if err := b.watcher.Add(abs); err != nil {
		return fmt.Errorf("watch %s: %w", abs, err)
	}
	b.subs.Store(key, &subscription{path: abs, onChange: onChange})
	b.log.Debug().Str("path", key).Msg("Subscribed")
	return nil
}

// Unsubscribe releases the watch for the path and cancels any pending
// debounce timer. Idempotent.
func (b *Bridge) Unsubscribe(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	b.drop(util.NormalizePath(abs))
}

// UnsubscribeAll releases every active watch and timer. Used on full-tree
// clear and on teardown.
func (b *Bridge) UnsubscribeAll() {
	b.subs.Range(func(key string, _ *subscription) bool {
		b.drop(key)
		return true
	})
}

// Close tears the bridge down: all subscriptions released, the underlying
// watcher closed, the event loop stopped. No callback fires after Close
// returns.
func (b *Bridge) Close() error {
	var err error
	b.closeOnce.Do(func() {
		b.UnsubscribeAll()
		err = b.watcher.Close()
	})
	return err
}

// Watched returns the sorted set of currently subscribed normalized paths.
func (b *Bridge) Watched() []string {
	paths := make([]string, 0, b.subs.Size())
	b.subs.Range(func(key string, _ *subscription) bool {
		paths = append(paths, key)
		return true
	})
	sort.Strings(paths)
	return paths
}

func (b *Bridge) drop(key string) {
	sub, ok := b.subs.LoadAndDelete(key)
	if !ok {
		return
	}
	sub.cancel()
	// Remove can fail when the file is already gone; the watch died with it.
	if err := b.watcher.Remove(sub.path); err != nil {
		b.log.Debug().Err(err).Str("path", key).Msg("Watch already released")
	}
	b.log.Debug().Str("path", key).Msg("Unsubscribed")
}

func (b *Bridge) loop() {
	for {
		select {
		case ev, ok := <-b.watcher.Events:
			if !ok {
				return
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			key := util.NormalizePath(ev.Name)
			if sub, ok := b.subs.Load(key); ok {
				b.bump(key, sub)
			}
		case err, ok := <-b.watcher.Errors:
			if !ok {
				return
			}
			b.log.Warn().Err(err).Msg("Watcher error")
		}
	}
}

// bump restarts the path's debounce timer; the callback fires only after the
// window elapses with no further event.
func (b *Bridge) bump(key string, sub *subscription) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.timer != nil {
		sub.timer.Stop()
	}
	sub.timer = time.AfterFunc(b.debounce, func() { b.fire(key) })
}

func (b *Bridge) fire(key string) {
	// Re-check membership: an unsubscribe between the timer elapsing and this
	// call must win, so a torn-down store never sees the callback.
	sub, ok := b.subs.Load(key)
	if !ok {
		return
	}
	sub.mu.Lock()
	cb := sub.onChange
	sub.timer = nil
	sub.mu.Unlock()
	if cb != nil {
		cb(sub.path)
	}
}
