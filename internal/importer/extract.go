package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrPDFToolMissing is returned when a PDF is given but pdftotext is not
// installed.
var ErrPDFToolMissing = errors.New("pdftotext not found in PATH")

// runPDFToText is swapped in tests.
var runPDFToText = func(ctx context.Context, path string) ([]byte, error) {
	bin, err := exec.LookPath("pdftotext")
	if err != nil {
		return nil, ErrPDFToolMissing
	}
	cmd := exec.CommandContext(ctx, bin, "-layout", path, "-")
	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("pdftotext: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	return out, nil
}

// ExtractText returns the text of path. PDFs go through pdftotext; any other
// file is read as plain text.
func ExtractText(ctx context.Context, path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		out, err := runPDFToText(ctx, path)
		if err != nil {
			return "", fmt.Errorf("extract %s: %w", path, err)
		}
		return string(out), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
