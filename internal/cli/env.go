package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"examplayer/internal/config"
	"examplayer/internal/exam"
	"examplayer/internal/store"
	"examplayer/internal/verbose"
)

// parseFlags parses args and reports the exit code to return when parsing
// should stop the command.
func parseFlags(cmd *Command, fs *flag.FlagSet, args []string, stdout, stderr io.Writer) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printCommandUsage(cmd, stdout)
			return ExitOK, false
		}
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	return ExitOK, true
}

// flagWasSet reports whether name was given on the command line.
func flagWasSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// loadConfig resolves the config from --config or the working directory.
func loadConfig(configPath string) (config.Config, error) {
	path := strings.TrimSpace(configPath)
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("resolve config path: %w", err)
		}
		path = abs
	}
	cfg, _, err := config.Resolve("", path)
	return cfg, err
}

// openStore opens the configured progress backend.
func openStore(cfg config.Config) (store.Store, error) {
	return store.Open(context.Background(), store.Options{
		Backend: cfg.Store.Backend,
		Path:    cfg.Store.Path,
		Key:     cfg.Store.Key,
	})
}

// loadExam parses an exam file and applies strict validation when asked.
func loadExam(path string, strict bool) (exam.Exam, error) {
	ex, err := exam.LoadFile(path)
	if err != nil {
		return exam.Exam{}, err
	}
	if strict {
		if err := exam.Validate(ex); err != nil {
			return exam.Exam{}, err
		}
	}
	return ex, nil
}

// openLogger builds the verbose logger. The returned func closes the log
// file, if any.
func openLogger(enabled bool, logPath string, stderr io.Writer, noColor bool) (*verbose.Logger, func(), error) {
	if strings.TrimSpace(logPath) == "" {
		return verbose.New(enabled, stderr, nil, noColor), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return verbose.New(enabled, stderr, file, noColor), func() { _ = file.Close() }, nil
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// singleArg returns the only positional argument.
func singleArg(cmd *Command, fs *flag.FlagSet, stderr io.Writer) (string, bool) {
	if fs.NArg() != 1 {
		if fs.NArg() == 0 {
			fmt.Fprintln(stderr, "missing exam file")
		} else {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args()[1:], " "))
		}
		printCommandUsage(cmd, stderr)
		return "", false
	}
	return fs.Arg(0), true
}
