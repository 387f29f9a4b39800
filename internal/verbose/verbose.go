package verbose

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const prefix = "[verbose]"

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiDim   = "\x1b[2m"
	ansiGray  = "\x1b[90m"
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiBlue  = "\x1b[34m"
)

// Style selects the color of a log line.
type Style int

const (
	StyleDefault Style = iota
	StyleExam
	StyleMetrics
	StyleError
)

// Logger writes prefixed lines to a console writer and, optionally, a log
// file. A nil Logger discards everything.
type Logger struct {
	enabled bool
	writer  io.Writer
	logFile io.Writer
	noColor bool
}

// New returns a logger. When enabled is false only the log file, if any,
// receives lines.
func New(enabled bool, writer, logFile io.Writer, noColor bool) *Logger {
	return &Logger{enabled: enabled, writer: writer, logFile: logFile, noColor: noColor}
}

// Logf writes one formatted line.
func (l *Logger) Logf(style Style, format string, args ...any) {
	if l == nil {
		return
	}
	line := fmt.Sprintf(format, args...)
	if l.enabled && l.writer != nil {
		palette := paletteFor(l.writer, l.noColor)
		fmt.Fprintf(l.writer, "%s %s\n", palette.prefix(prefix), palette.apply(style, line))
	}
	if l.logFile != nil {
		fmt.Fprintf(l.logFile, "%s %s\n", prefix, line)
	}
}

// Errorf writes a line in the error style.
func (l *Logger) Errorf(format string, args ...any) {
	l.Logf(StyleError, format, args...)
}

type palette struct {
	enabled bool
}

func paletteFor(writer io.Writer, noColor bool) palette {
	if noColor {
		return palette{enabled: false}
	}
	return palette{enabled: ShouldUseStyling(writer)}
}

// ShouldUseStyling reports whether ANSI styling suits the writer.
func ShouldUseStyling(writer io.Writer) bool {
	if writer == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	return IsTerminal(writer)
}

// IsTerminal reports whether a writer is a TTY.
func IsTerminal(writer io.Writer) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := writer.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}

func (p palette) prefix(text string) string {
	if !p.enabled {
		return text
	}
	return ansiDim + ansiGray + text + ansiReset
}

func (p palette) apply(style Style, text string) string {
	if !p.enabled {
		return text
	}
	switch style {
	case StyleExam:
		return ansiBold + ansiBlue + text + ansiReset
	case StyleMetrics:
		return ansiBold + ansiGreen + text + ansiReset
	case StyleError:
		return ansiBold + ansiRed + text + ansiReset
	default:
		return text
	}
}
