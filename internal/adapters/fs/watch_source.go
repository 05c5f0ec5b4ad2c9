package fs

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ludovicl/gpg2qr/internal/ports"
)

// settleDelay is how long a file must stay quiet after its last write
// event before it is treated as fully written.
const settleDelay = 200 * time.Millisecond

// WatchSource implements ports.ScanSource by watching a directory for
// incoming scan images. Files already present are yielded first; new
// files are yielded as they settle. Next returns ErrNoMoreScans when no
// file has arrived within the idle timeout.
type WatchSource struct {
	dir     string
	idle    time.Duration
	watcher *fsnotify.Watcher
	logger  ports.Logger

	paths chan string
	done  chan struct{}
	wg    sync.WaitGroup

	mu      sync.Mutex
	seen    map[string]bool
	pending map[string]*time.Timer
}

// NewWatchSource starts watching dir for scan images. idle bounds how
// long Next waits for the next file before declaring the source drained.
func NewWatchSource(dir string, idle time.Duration, logger ports.Logger) (*WatchSource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		watcher.Close()
		return nil, err
	}

	s := &WatchSource{
		dir:     dir,
		idle:    idle,
		watcher: watcher,
		logger:  logger,
		paths:   make(chan string, len(entries)+64),
		done:    make(chan struct{}),
		seen:    make(map[string]bool),
		pending: make(map[string]*time.Timer),
	}

	// Queue whatever is already on disk before the first event arrives.
	for _, e := range entries {
		if e.IsDir() || !isImagePath(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		s.seen[path] = true
		s.paths <- path
	}

	s.wg.Add(1)
	go s.watchLoop()
	return s, nil
}

func (s *WatchSource) watchLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !isImagePath(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			s.settle(event.Name)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("scan watcher error", ports.Err(err))
		}
	}
}

// settle schedules path for delivery once its write events go quiet.
// Repeated events for the same path reset the timer.
func (s *WatchSource) settle(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seen[path] {
		return
	}
	if t, ok := s.pending[path]; ok {
		t.Stop()
	}
	s.pending[path] = time.AfterFunc(settleDelay, func() {
		s.mu.Lock()
		if s.seen[path] {
			s.mu.Unlock()
			return
		}
		s.seen[path] = true
		delete(s.pending, path)
		s.mu.Unlock()

		select {
		case s.paths <- path:
		case <-s.done:
		}
	})
}

// Next blocks until a scan arrives, the idle timeout elapses, or ctx is
// cancelled.
func (s *WatchSource) Next(ctx context.Context) (ports.Scan, error) {
	timer := time.NewTimer(s.idle)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ports.Scan{}, ctx.Err()
	case <-timer.C:
		return ports.Scan{}, ports.ErrNoMoreScans
	case path := <-s.paths:
		s.logger.Debug("scan file arrived", ports.String("path", path))
		return loadScan(path)
	}
}

// Close stops the watcher and its delivery goroutine.
func (s *WatchSource) Close() error {
	close(s.done)
	err := s.watcher.Close()
	s.wg.Wait()

	s.mu.Lock()
	for path, t := range s.pending {
		t.Stop()
		delete(s.pending, path)
	}
	s.mu.Unlock()
	return err
}
