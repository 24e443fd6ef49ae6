package ingest

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchConfig configures directory watching for catalog PDFs.
type WatchConfig struct {
	Root        string        // directory to watch (recursive)
	InitialScan bool          // if true, walk the root and emit existing PDFs
	Debounce    time.Duration // coalesce rapid write bursts while a file is copied in
}

// StartWatcher watches cfg.Root recursively and emits the path of every PDF
// that appears (and, with InitialScan, every PDF already there). The returned
// channels close when ctx is canceled.
func StartWatcher(ctx context.Context, cfg WatchConfig, logger *slog.Logger) (<-chan string, <-chan error, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(cfg.Root) == "" {
		return nil, nil, errors.New("watch root is required")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 2 * time.Second
	}

	evCh := make(chan string, 256)
	errCh := make(chan error, 1)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Error("failed to create fsnotify watcher", "error", err)
		return nil, nil, err
	}

	// Add the root recursively; optionally emit what is already there.
	err = filepath.WalkDir(cfg.Root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return w.Add(path)
		}
		if cfg.InitialScan && IsPDFPath(path) {
			select {
			case evCh <- path:
			default:
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("failed to add watch root", "root", cfg.Root, "error", err)
		_ = w.Close()
		return nil, nil, err
	}

	go func() {
		// mu serializes the debounce timers' sends with channel shutdown:
		// a fired timer may otherwise send on evCh after it is closed.
		var mu sync.Mutex
		stopped := false
		pending := make(map[string]*time.Timer)

		defer func() {
			mu.Lock()
			stopped = true
			for _, t := range pending {
				t.Stop()
			}
			close(evCh)
			close(errCh)
			mu.Unlock()
			if err := w.Close(); err != nil {
				logger.Warn("watcher close failed", "error", err)
			}
		}()

		emit := func(path string) {
			mu.Lock()
			defer mu.Unlock()
			if t, ok := pending[path]; ok {
				t.Stop()
			}
			pending[path] = time.AfterFunc(cfg.Debounce, func() {
				mu.Lock()
				defer mu.Unlock()
				delete(pending, path)
				if stopped {
					return
				}
				select {
				case evCh <- path:
				case <-ctx.Done():
				}
			})
		}

		for {
			select {
			case <-ctx.Done():
				logger.Info("watcher stopping", "root", cfg.Root)
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op.Has(fsnotify.Create) {
					// New subdirectories need their own watch.
					if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
						if err := w.Add(ev.Name); err != nil {
							logger.Warn("failed to watch new directory", "dir", ev.Name, "error", err)
						}
						continue
					}
				}
				if (ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write)) && IsPDFPath(ev.Name) {
					emit(ev.Name)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Error("watcher error", "error", err)
				select {
				case errCh <- err:
				default:
				}
			}
		}
	}()

	logger.Info("watching for catalog pdfs", "root", cfg.Root, "debounce", cfg.Debounce)
	return evCh, errCh, nil
}

// IsPDFPath reports whether path names a PDF by extension.
func IsPDFPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
