package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestPromptYesNo(t *testing.T) {
	cases := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
		wantErr    bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "no word", input: "No\n", defaultYes: true, want: false},
		{name: "empty uses default yes", input: "\n", defaultYes: true, want: true},
		{name: "eof uses default no", input: "", want: false},
		{name: "retries after junk", input: "maybe\nyes\n", want: true},
		{name: "junk at eof", input: "maybe", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := promptYesNo(bufio.NewReader(strings.NewReader(tc.input)), &out, "Clear saved progress?", tc.defaultYes)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("prompt: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %t, got %t", tc.want, got)
			}
			if !strings.Contains(out.String(), "Clear saved progress?") {
				t.Fatalf("expected label in output, got %q", out.String())
			}
		})
	}
}

func TestParseSelection(t *testing.T) {
	got, err := parseSelection("3, 1 2", 3)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 3 || got[0] != 2 || got[1] != 0 || got[2] != 1 {
		t.Fatalf("unexpected selection %v", got)
	}
	for _, line := range []string{"", "0", "4", "a"} {
		if _, err := parseSelection(line, 3); err == nil {
			t.Fatalf("expected error for %q", line)
		}
	}
}
