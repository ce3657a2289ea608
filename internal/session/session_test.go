package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSentenceIndexPersists(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	m.SetSentence("/data/a.conllu", 7)
	m.SetSentence("/data/b.conllu", 2)
	if err := m.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "depedit", "session.json")); err != nil {
		t.Fatalf("session file: %v", err)
	}

	again, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	defer again.Stop()
	state, ok := again.GetFileState("/data/a.conllu")
	if !ok || state.Sentence != 7 {
		t.Fatalf("a.conllu = %+v, %v; want sentence 7", state, ok)
	}
	if got := again.GetActiveFile(); got != "/data/b.conllu" {
		t.Fatalf("ActiveFile = %q, want /data/b.conllu", got)
	}
}

func TestSaveSkipsCleanSession(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if err := m.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "depedit", "session.json")); !os.IsNotExist(err) {
		t.Fatalf("clean session was written: %v", err)
	}
	if err := m.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
}

func TestCorruptSessionStartsFresh(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	path := filepath.Join(dir, "depedit", "session.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	defer m.Stop()
	if _, ok := m.GetFileState("/x"); ok {
		t.Fatalf("unexpected state")
	}
	m.SetSentence("/x", 1)
}
