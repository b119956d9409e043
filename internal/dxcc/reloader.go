package dxcc

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tkerr/ab3gy-dxentity/internal/logging"
)

// rebuildDebounce coalesces the burst of fsnotify events an editor or
// download emits into a single rebuild.
const rebuildDebounce = 500 * time.Millisecond

// Reloader owns the current Index and rebuilds it when the source data
// files change. Readers call Index() on every lookup; the swap is atomic, so
// a reader mid-query keeps the snapshot it started with.
type Reloader struct {
	ctyPath string
	csvPath string

	idx     atomic.Pointer[Index]
	watcher *fsnotify.Watcher
	stop    chan struct{}
	done    chan struct{}
}

// NewReloader builds the initial index from the given files. csvPath may be
// empty.
func NewReloader(ctyPath, csvPath string) (*Reloader, error) {
	r := &Reloader{ctyPath: ctyPath, csvPath: csvPath}
	if err := r.Rebuild(); err != nil {
		return nil, err
	}
	return r, nil
}

// Index returns the current index snapshot.
func (r *Reloader) Index() *Index {
	return r.idx.Load()
}

// Rebuild parses the data files and swaps in the fresh index. On failure the
// previous index stays in place.
func (r *Reloader) Rebuild() error {
	ix, _, err := BuildFromFiles(r.ctyPath, r.csvPath)
	if err != nil {
		return err
	}
	r.idx.Store(ix)
	return nil
}

// StartWatcher begins watching the data files for changes. The parent
// directories are watched rather than the files themselves, since most
// writers replace the file via rename.
func (r *Reloader) StartWatcher(ctx context.Context) error {
	if r.watcher != nil {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	dirs := map[string]struct{}{filepath.Dir(r.ctyPath): {}}
	if r.csvPath != "" {
		dirs[filepath.Dir(r.csvPath)] = struct{}{}
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			w.Close()
			return fmt.Errorf("failed to watch %s: %w", d, err)
		}
	}

	r.watcher = w
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	go r.watchLoop(ctx)
	logging.Notice("dxcc: watching %s for data updates", r.ctyPath)
	return nil
}

// StopWatcher stops the watch loop and waits for it to exit. Safe to call
// when the watcher was never started.
func (r *Reloader) StopWatcher() {
	if r.watcher == nil {
		return
	}
	close(r.stop)
	r.watcher.Close()
	<-r.done
	r.watcher = nil
}

func (r *Reloader) watchLoop(ctx context.Context) {
	defer close(r.done)

	debounce := time.NewTimer(rebuildDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stop:
			return
		case ev, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if !r.relevant(ev.Name) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logging.Debug("dxcc: %s changed (%s)", ev.Name, ev.Op)
			if !debounce.Stop() {
				select {
				case <-debounce.C:
				default:
				}
			}
			debounce.Reset(rebuildDebounce)
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("dxcc: file watcher error: %v", err)
		case <-debounce.C:
			if err := r.Rebuild(); err != nil {
				logging.Error("dxcc: rebuild failed, keeping previous index: %v", err)
				continue
			}
			logging.Notice("dxcc: index rebuilt after data file change")
		}
	}
}

func (r *Reloader) relevant(name string) bool {
	return sameFile(name, r.ctyPath) || (r.csvPath != "" && sameFile(name, r.csvPath))
}

func sameFile(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
