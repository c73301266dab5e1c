package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func startWatcher(t *testing.T, dir string, files []string) *Watcher {
	t.Helper()
	w, err := NewWatcher(dir, files)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(w.Stop)
	return w
}

func TestWatcher_DetectsDomainFileChange(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "materials.yaml")
	if err := os.WriteFile(file, []byte("steel:\n  name: Steel\n"), 0o644); err != nil {
		t.Fatalf("failed to create domain file: %v", err)
	}

	w := startWatcher(t, dir, []string{"materials.yaml"})

	if err := os.WriteFile(file, []byte("steel:\n  name: Stainless Steel\n"), 0o644); err != nil {
		t.Fatalf("failed to update domain file: %v", err)
	}

	select {
	case change := <-w.Changes:
		if filepath.Base(change.File) != "materials.yaml" {
			t.Errorf("change file = %q, want materials.yaml", change.File)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatcher_IgnoresUnregisteredFiles(t *testing.T) {
	dir := t.TempDir()

	w := startWatcher(t, dir, []string{"materials.yaml"})

	// Neither a non-YAML file nor an unregistered YAML file should surface.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "scratch.yaml"), []byte("x: 1\n"), 0o644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	select {
	case change := <-w.Changes:
		t.Errorf("unexpected change event: %+v", change)
	case <-time.After(400 * time.Millisecond):
		// Expected: no events for unregistered files.
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "compounds.yaml")

	w := startWatcher(t, dir, []string{"compounds.yaml"})

	// A burst of rapid writes settles into a small number of events, not one
	// per write.
	for i := 0; i < 10; i++ {
		if err := os.WriteFile(file, []byte("hematite:\n  name: Hematite\n"), 0o644); err != nil {
			t.Fatalf("failed to write domain file: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	events := 0
	deadline := time.After(2 * time.Second)
	for events == 0 {
		select {
		case <-w.Changes:
			events++
		case <-deadline:
			t.Fatal("timed out waiting for debounced event")
		}
	}

	// Drain anything still settling, then confirm the burst collapsed.
	drain := time.After(500 * time.Millisecond)
	for {
		select {
		case <-w.Changes:
			events++
		case <-drain:
			if events >= 10 {
				t.Errorf("debounce produced %d events for a 10-write burst", events)
			}
			return
		}
	}
}
