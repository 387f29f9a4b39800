package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"examplayer/internal/exam"
)

const sampleDump = `Practice Exam
Page 1

QUESTION NO: 1
Which protocol resolves names
to addresses?
A. DNS
B. DHCP
C. ARP that spans
two lines
D. NTP
Answer: A
Explanation: DNS maps   names
to addresses.

QUESTION NO: 2
Pick the transport protocols.
A. TCP
B. HTTP
C. UDP
Answer: AC

QUESTION NO: 3
A question with one option.
A. Only
Answer: A

QUESTION NO: 4
No answer here.
A. yes
B. no

QUESTION NO: 5
Answer outside the options.
A. yes
B. no
Answer: D
`

func TestImportParsesBlocks(t *testing.T) {
	result := Import(sampleDump, "Networking")
	if result.Exam.Title != "Networking" {
		t.Fatalf("unexpected title %q", result.Exam.Title)
	}
	if len(result.Exam.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(result.Exam.Questions))
	}

	first := result.Exam.Questions[0]
	if first.ID != 1 || first.Type != exam.TypeSingle {
		t.Fatalf("unexpected first question %+v", first)
	}
	if first.Prompt != "Which protocol resolves names\nto addresses?" {
		t.Fatalf("unexpected prompt %q", first.Prompt)
	}
	wantOptions := []string{"DNS", "DHCP", "ARP that spans two lines", "NTP"}
	if !reflect.DeepEqual(first.Options, wantOptions) {
		t.Fatalf("expected options %q, got %q", wantOptions, first.Options)
	}
	if !reflect.DeepEqual(first.Correct, []int{0}) {
		t.Fatalf("unexpected correct %v", first.Correct)
	}
	if !first.HasExplanation() || *first.Explanation != "DNS maps names to addresses." {
		t.Fatalf("unexpected explanation %v", first.Explanation)
	}

	second := result.Exam.Questions[1]
	if second.Type != exam.TypeMultiple || !reflect.DeepEqual(second.Correct, []int{0, 2}) {
		t.Fatalf("expected multiple answer [0 2], got %s %v", second.Type, second.Correct)
	}
	if second.Explanation != nil {
		t.Fatalf("expected no explanation, got %q", *second.Explanation)
	}
}

func TestImportReportsSkippedBlocks(t *testing.T) {
	result := Import(sampleDump, "Networking")
	want := []Skip{
		{Number: 3, Reason: "fewer than two options"},
		{Number: 4, Reason: "missing answer"},
		{Number: 5, Reason: "answer D does not match an option"},
	}
	if !reflect.DeepEqual(result.Skipped, want) {
		t.Fatalf("expected skipped %+v, got %+v", want, result.Skipped)
	}
}

func TestImportOutputPassesStrictValidation(t *testing.T) {
	result := Import(sampleDump, "Networking")
	if err := exam.Validate(result.Exam); err != nil {
		t.Fatalf("imported exam should validate: %v", err)
	}
}

func TestImportWithoutHeaders(t *testing.T) {
	result := Import("nothing to see", "Empty")
	if len(result.Exam.Questions) != 0 || len(result.Skipped) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
	if result.Exam.Questions == nil {
		t.Fatalf("expected non-nil questions for encoding")
	}
}

func TestExtractTextReadsPlainFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.txt")
	if err := os.WriteFile(path, []byte(sampleDump), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	text, err := ExtractText(context.Background(), path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text != sampleDump {
		t.Fatalf("expected file contents back")
	}
}

func TestExtractTextUsesPDFTool(t *testing.T) {
	original := runPDFToText
	t.Cleanup(func() { runPDFToText = original })

	var gotPath string
	runPDFToText = func(_ context.Context, path string) ([]byte, error) {
		gotPath = path
		return []byte("QUESTION NO: 1\nQ?\nA. x\nB. y\nAnswer: B\n"), nil
	}
	text, err := ExtractText(context.Background(), "exam.PDF")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if gotPath != "exam.PDF" {
		t.Fatalf("expected pdftotext on exam.PDF, got %q", gotPath)
	}
	if got := Import(text, "PDF"); len(got.Exam.Questions) != 1 {
		t.Fatalf("expected one imported question, got %+v", got)
	}

	runPDFToText = func(context.Context, string) ([]byte, error) {
		return nil, ErrPDFToolMissing
	}
	if _, err := ExtractText(context.Background(), "exam.pdf"); !errors.Is(err, ErrPDFToolMissing) {
		t.Fatalf("expected missing tool error, got %v", err)
	}
}
