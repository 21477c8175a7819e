// file: internal/watcher/watcher_test.go
// version: 1.0.0
// guid: 2c4d6e8f-0a1b-4c3d-9e5f-7a9b0c2d4e6f

package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherFiresOnChange(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "schools.csv")
	if err := os.WriteFile(target, []byte("school_name\n"), 0644); err != nil {
		t.Fatal(err)
	}

	fired := make(chan string, 1)
	w := New(func(path string) {
		select {
		case fired <- path:
		default:
		}
	}, 50*time.Millisecond)

	if err := w.Start(target); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(target, []byte("school_name\nA School\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case path := <-fired:
		abs, _ := filepath.Abs(target)
		if path != abs {
			t.Errorf("callback path = %q, want %q", path, abs)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("callback never fired")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "schools.csv")
	if err := os.WriteFile(target, []byte("school_name\n"), 0644); err != nil {
		t.Fatal(err)
	}

	fired := make(chan string, 4)
	w := New(func(path string) { fired <- path }, 30*time.Millisecond)
	if err := w.Start(target); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(other, []byte("unrelated"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case path := <-fired:
		t.Errorf("callback fired for unrelated file: %q", path)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherStopIdempotent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "schools.csv")
	if err := os.WriteFile(target, []byte("school_name\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w := New(func(string) {}, 30*time.Millisecond)
	if err := w.Start(target); err != nil {
		t.Fatalf("Start: %v", err)
	}
	w.Stop()
	w.Stop() // second call must be a no-op
}

func TestWatcherStartMissingDir(t *testing.T) {
	w := New(func(string) {}, 30*time.Millisecond)
	err := w.Start(filepath.Join(t.TempDir(), "missing", "schools.csv"))
	if err == nil {
		w.Stop()
		t.Fatal("Start should fail when the parent directory does not exist")
	}
}
