package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"examplayer/internal/exam"
	"examplayer/internal/progress"
	"examplayer/internal/report"
	"examplayer/internal/reportserver"
)

// serveReport runs the report server; tests replace it.
var serveReport = reportserver.Serve

func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to .examplayer/config.yml (default: auto-detect)")
		output := fs.String("output", "", "Write to a file instead of stdout")
		serve := fs.String("serve", "", "Serve the report over HTTP at this address instead of writing it")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		examPath, ok := singleArg(cmd, fs, stderr)
		if !ok {
			return ExitUsage
		}
		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		ex, err := loadExam(examPath, false)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid exam: %v\n", err)
			return ExitError
		}
		st, err := openStore(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open progress store: %v\n", err)
			return ExitError
		}
		defer st.Close()

		source := func(context.Context) (report.Summary, error) {
			return loadSummary(st, ex, examPath)
		}
		if *serve != "" {
			if _, err := source(context.Background()); err != nil {
				fmt.Fprintf(stderr, "Report failed: %v\n", err)
				return ExitError
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			fmt.Fprintf(stdout, "Serving report on http://%s (Ctrl+C to stop)\n", *serve)
			if err := serveReport(ctx, reportserver.Config{Addr: *serve, Source: source}); err != nil {
				fmt.Fprintf(stderr, "Report server failed: %v\n", err)
				return ExitError
			}
			return ExitOK
		}
		summary, err := source(context.Background())
		if err != nil {
			fmt.Fprintf(stderr, "Report failed: %v\n", err)
			return ExitError
		}
		html, err := report.RenderReportHTML(context.Background(), summary)
		if err != nil {
			fmt.Fprintf(stderr, "Render report: %v\n", err)
			return ExitError
		}
		if err := writeOutput(*output, []byte(html), stdout); err != nil {
			fmt.Fprintf(stderr, "Report failed: %v\n", err)
			return ExitError
		}
		if *output != "" && *output != "-" {
			fmt.Fprintf(stdout, "Report: %s\n", *output)
		}
		return ExitOK
	}
}

// loadSummary reads saved progress and scores it against ex.
func loadSummary(st progress.Store, ex exam.Exam, examPath string) (report.Summary, error) {
	snapshot, found, err := st.Load()
	if err != nil {
		return report.Summary{}, err
	}
	if !found {
		return report.Summary{}, errors.New("no saved progress to report")
	}
	summary, err := report.Build(ex, snapshot)
	if err != nil {
		return report.Summary{}, fmt.Errorf("saved progress does not belong to %s: %w", examPath, err)
	}
	return summary, nil
}
