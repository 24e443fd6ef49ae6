package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsPDFPath(t *testing.T) {
	cases := map[string]bool{
		"catalog.pdf":       true,
		"dir/CATALOG.PDF":   true,
		"catalog.pdf.bak":   false,
		"notes.txt":         false,
		"pdf":               false,
		"archive/a.Pdf":     true,
		"catalog.pdfx":      false,
		"noextension":       false,
		"weird.pdf/sub.txt": false,
	}
	for path, want := range cases {
		if got := IsPDFPath(path); got != want {
			t.Errorf("IsPDFPath(%q): got %v, want %v", path, got, want)
		}
	}
}

func TestStartWatcherRequiresRoot(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, _, err := StartWatcher(ctx, WatchConfig{Root: "  "}, nil); err == nil {
		t.Fatal("empty root must be rejected")
	}
}

func TestStartWatcherInitialScan(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "brand")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{
		filepath.Join(root, "a.pdf"),
		filepath.Join(sub, "b.PDF"),
		filepath.Join(sub, "skip.txt"),
	} {
		if err := os.WriteFile(name, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatchConfig{Root: root, InitialScan: true, Debounce: 10 * time.Millisecond}, nil)
	if err != nil {
		t.Fatalf("StartWatcher: %v", err)
	}

	// The initial scan emits before StartWatcher returns, so both PDFs are
	// already buffered.
	got := map[string]bool{}
	for range 2 {
		select {
		case path := <-evCh:
			got[filepath.Base(path)] = true
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for initial scan, got %v", got)
		}
	}
	if !got["a.pdf"] || !got["b.PDF"] {
		t.Fatalf("initial scan emitted %v", got)
	}
}

func TestStartWatcherEmitsNewPDF(t *testing.T) {
	root := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatchConfig{Root: root, Debounce: 10 * time.Millisecond}, nil)
	if err != nil {
		t.Fatalf("StartWatcher: %v", err)
	}

	path := filepath.Join(root, "new.pdf")
	if err := os.WriteFile(path, []byte("%PDF"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-evCh:
		if got != path {
			t.Fatalf("got %q, want %q", got, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never emitted the new PDF")
	}
}

func TestStartWatcherCancelWithPendingDebounce(t *testing.T) {
	// A debounce timer firing around shutdown must never send on the closed
	// event channel.
	for i := range 20 {
		root := t.TempDir()
		ctx, cancel := context.WithCancel(context.Background())

		evCh, errCh, err := StartWatcher(ctx, WatchConfig{Root: root, Debounce: time.Millisecond}, nil)
		if err != nil {
			t.Fatalf("StartWatcher: %v", err)
		}

		path := filepath.Join(root, "late.pdf")
		if err := os.WriteFile(path, []byte("%PDF"), 0o644); err != nil {
			t.Fatal(err)
		}
		// Let the event reach the debounce timer, then cancel while it may
		// still be in flight.
		time.Sleep(time.Duration(i%3) * time.Millisecond)
		cancel()

		deadline := time.After(2 * time.Second)
		for evCh != nil || errCh != nil {
			select {
			case _, ok := <-evCh:
				if !ok {
					evCh = nil
				}
			case _, ok := <-errCh:
				if !ok {
					errCh = nil
				}
			case <-deadline:
				t.Fatal("channels never closed after cancel")
			}
		}
	}
}

func TestStartWatcherClosesOnCancel(t *testing.T) {
	root := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	evCh, errCh, err := StartWatcher(ctx, WatchConfig{Root: root}, nil)
	if err != nil {
		t.Fatalf("StartWatcher: %v", err)
	}
	cancel()

	select {
	case _, ok := <-evCh:
		if ok {
			t.Fatal("event received after cancel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("event channel never closed")
	}
	select {
	case _, ok := <-errCh:
		if ok {
			t.Fatal("error received after cancel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("error channel never closed")
	}
}
