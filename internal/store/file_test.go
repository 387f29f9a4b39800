package store

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"examplayer/internal/exam"
)

func sampleProgress() exam.Progress {
	return exam.Progress{
		CurrentQuestion: 1,
		Answers: []exam.UserAnswer{
			{QuestionID: 7, Selected: []int{0, 2}, IsCorrect: true},
		},
		Score:          1,
		TotalQuestions: 3,
	}
}

// TestFileLoadMissing treats an absent file as no saved progress.
func TestFileLoadMissing(t *testing.T) {
	store, err := NewFile(filepath.Join(t.TempDir(), "progress.json"))
	if err != nil {
		t.Fatalf("new file: %v", err)
	}
	_, ok, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatalf("expected no snapshot")
	}
}

// TestFileSaveLoadClear round-trips a snapshot through disk.
func TestFileSaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "progress.json")
	store, err := NewFile(path)
	if err != nil {
		t.Fatalf("new file: %v", err)
	}
	want := sampleProgress()
	if err := store.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be renamed, stat err=%v", err)
	}
	got, ok, err := store.Load()
	if err != nil || !ok {
		t.Fatalf("load: ok=%t err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := store.Load(); ok {
		t.Fatalf("expected snapshot to be cleared")
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clearing twice should succeed: %v", err)
	}
}

// TestFileUsesCamelCaseKeys keeps the web player's snapshot layout.
func TestFileUsesCamelCaseKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	store, _ := NewFile(path)
	if err := store.Save(sampleProgress()); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, key := range []string{`"currentQuestion"`, `"answers"`, `"score"`, `"totalQuestions"`, `"questionId"`, `"isCorrect"`} {
		if !strings.Contains(string(data), key) {
			t.Fatalf("expected key %s in %s", key, data)
		}
	}
}

func TestFileLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store, _ := NewFile(path)
	if _, _, err := store.Load(); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestNewFileRequiresPath(t *testing.T) {
	if _, err := NewFile(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
