package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"examplayer/internal/exam"
	"examplayer/internal/store"
)

func runHistory(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to .examplayer/config.yml (default: auto-detect)")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		st, err := openStore(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open progress store: %v\n", err)
			return ExitError
		}
		defer st.Close()

		history, ok := store.HistoryOf(st)
		if !ok {
			fmt.Fprintf(stderr, "The %s backend keeps no attempt history; set store.backend to duckdb.\n", cfg.Store.Backend)
			return ExitError
		}
		attempts, err := history.Attempts()
		if err != nil {
			fmt.Fprintf(stderr, "History failed: %v\n", err)
			return ExitError
		}
		if len(attempts) == 0 {
			fmt.Fprintln(stdout, "No finished attempts.")
			return ExitOK
		}
		rows := make([][]string, 0, len(attempts))
		for _, attempt := range attempts {
			percentage := exam.Percentage(attempt.Score, attempt.Total)
			rows = append(rows, []string{
				attempt.CompletedAt.Local().Format("2006-01-02 15:04"),
				fmt.Sprintf("%d/%d (%d%%)", attempt.Score, attempt.Total, percentage),
				exam.TierFor(percentage).Label(),
				attempt.Title,
			})
		}
		fmt.Fprintln(stdout, historyTable(rows))
		return ExitOK
	}
}

// historyTable lays out attempts in borderless columns.
func historyTable(rows [][]string) string {
	cell := lipgloss.NewStyle().PaddingRight(2)
	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		StyleFunc(func(int, int) lipgloss.Style { return cell }).
		Headers("COMPLETED", "SCORE", "GRADE", "EXAM").
		Rows(rows...).
		String()
}
