package verbose

import (
	"bytes"
	"strings"
	"testing"
)

// TestLoggerWritesPlainLines verifies non-TTY writers get unstyled lines.
func TestLoggerWritesPlainLines(t *testing.T) {
	var console, file bytes.Buffer
	logger := New(true, &console, &file, false)
	logger.Logf(StyleExam, "loaded %s", "exam.json")
	logger.Errorf("save failed: %v", "disk full")

	want := "[verbose] loaded exam.json\n[verbose] save failed: disk full\n"
	if console.String() != want {
		t.Fatalf("unexpected console output %q", console.String())
	}
	if file.String() != want {
		t.Fatalf("unexpected log file output %q", file.String())
	}
	if strings.Contains(console.String(), "\x1b[") {
		t.Fatalf("expected no ANSI codes for a buffer")
	}
}

// TestLoggerDisabledStillWritesLogFile verifies --log works without --verbose.
func TestLoggerDisabledStillWritesLogFile(t *testing.T) {
	var console, file bytes.Buffer
	logger := New(false, &console, &file, true)
	logger.Logf(StyleDefault, "hello")
	if console.Len() != 0 {
		t.Fatalf("expected no console output, got %q", console.String())
	}
	if file.String() != "[verbose] hello\n" {
		t.Fatalf("unexpected log file output %q", file.String())
	}
}

// TestNilLoggerIsSilent verifies a nil logger can be used freely.
func TestNilLoggerIsSilent(t *testing.T) {
	var logger *Logger
	logger.Logf(StyleDefault, "ignored")
	logger.Errorf("ignored")
}

// TestPaletteAppliesStyles verifies ANSI wrapping when styling is on.
func TestPaletteAppliesStyles(t *testing.T) {
	p := palette{enabled: true}
	if got := p.apply(StyleError, "x"); got != ansiBold+ansiRed+"x"+ansiReset {
		t.Fatalf("unexpected styled text %q", got)
	}
	if got := p.apply(StyleDefault, "x"); got != "x" {
		t.Fatalf("expected default style to be plain, got %q", got)
	}
	if got := (palette{}).prefix(prefix); got != prefix {
		t.Fatalf("expected plain prefix, got %q", got)
	}
}
