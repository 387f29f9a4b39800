package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const cliExamJSON = `{
  "title": "CLI exam",
  "questions": [
    {"id": 1, "type": "single", "question": "2+2?", "options": ["3", "4"], "correct": [1], "explanation": "Basic math"},
    {"id": 2, "type": "multiple", "question": "Primes?", "options": ["2", "4", "5"], "correct": [0, 2]}
  ]
}`

// workspace is a temp project with a config and an exam file.
type workspace struct {
	root       string
	configPath string
	examPath   string
}

func newWorkspace(t *testing.T, backend string) workspace {
	t.Helper()
	root := t.TempDir()
	configPath := filepath.Join(root, ".examplayer", "config.yml")
	writeFile(t, configPath, "version: 1\nstore:\n  backend: "+backend+"\nplayer:\n  ui: plain\n  no_color: true\n")
	examPath := filepath.Join(root, "exam.json")
	writeFile(t, examPath, cliExamJSON)
	return workspace{root: root, configPath: configPath, examPath: examPath}
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// withInput replaces stdin and the plain-mode delay for one test.
func withInput(t *testing.T, input string) {
	t.Helper()
	originalStdin := stdin
	originalSleep := sleep
	stdin = strings.NewReader(input)
	sleep = func(time.Duration) {}
	t.Cleanup(func() {
		stdin = originalStdin
		sleep = originalSleep
	})
}

// runCLI runs the CLI and returns exit code, stdout and stderr.
func runCLI(t *testing.T, input string, args ...string) (int, string, string) {
	t.Helper()
	withInput(t, input)
	var out, errOut bytes.Buffer
	code := Run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}
