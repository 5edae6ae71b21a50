package artifact

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/careerlens/careerlens-server/internal/logger"
)

// reloadDebounce coalesces bursts of file events into a single reload.
const reloadDebounce = 500 * time.Millisecond

// Store holds the current model set and swaps in new ones atomically.
// In-flight requests keep using the snapshot they started with; only
// requests that begin after a successful reload observe the new set.
type Store struct {
	dir     string
	log     *logger.Logger
	current atomic.Pointer[ModelSet]

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	timer   *time.Timer
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewStore loads the model set from dir and returns a store serving it.
func NewStore(dir string, log *logger.Logger) (*Store, error) {
	ms, err := Load(dir, log)
	if err != nil {
		return nil, err
	}

	s := &Store{
		dir:  dir,
		log:  log,
		done: make(chan struct{}),
	}
	s.current.Store(ms)

	log.Info("Model set loaded",
		"dir", dir,
		"features", ms.Schema.Width(),
		"clusters", ms.KMeans.K(),
		"profiles", len(ms.Profiles),
	)
	return s, nil
}

// Current returns the active model set snapshot.
func (s *Store) Current() *ModelSet {
	return s.current.Load()
}

// Reload reads the artifact directory again and swaps the snapshot on
// success. On failure the previous snapshot stays active.
func (s *Store) Reload() error {
	ms, err := Load(s.dir, s.log)
	if err != nil {
		s.log.Error("Model set reload failed, keeping previous snapshot", "dir", s.dir, "error", err)
		return err
	}
	s.current.Store(ms)
	s.log.Info("Model set reloaded", "dir", s.dir, "clusters", ms.KMeans.K())
	return nil
}

// Watch starts monitoring the artifact directory and reloads after
// changes settle. Safe to call once; stop with Close.
func (s *Store) Watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create artifact watcher: %w", err)
	}
	if err := w.Add(s.dir); err != nil {
		w.Close()
		return fmt.Errorf("failed to watch %s: %w", s.dir, err)
	}

	s.mu.Lock()
	s.watcher = w
	s.mu.Unlock()

	s.wg.Add(1)
	go s.processEvents(w)

	s.log.Info("Watching model set directory", "dir", s.dir)
	return nil
}

func (s *Store) processEvents(w *fsnotify.Watcher) {
	defer s.wg.Done()

	for {
		select {
		case <-s.done:
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if filepath.Ext(event.Name) != ".json" {
				continue
			}
			s.scheduleReload(event.Name)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.log.Warn("Artifact watcher error", "error", err)
		}
	}
}

// scheduleReload resets the debounce timer so a multi-file artifact
// export triggers one reload after the last write.
func (s *Store) scheduleReload(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("Artifact change detected", "path", path)
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(reloadDebounce, func() {
		//nolint:errcheck // failures keep the old snapshot and are logged inside Reload
		s.Reload()
	})
}

// Close stops the watcher and waits for the event loop to exit.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	close(s.done)
	var err error
	if w != nil {
		err = w.Close()
	}
	s.wg.Wait()
	return err
}
