package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"

	"examplayer/internal/report"
)

func runStatus(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
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
		if fs.NArg() > 1 {
			printCommandUsage(cmd, stderr)
			return ExitUsage
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

		snapshot, ok, err := st.Load()
		if err != nil {
			fmt.Fprintf(stderr, "Status failed: %v\n", err)
			return ExitError
		}
		if !ok {
			fmt.Fprintln(stdout, "No saved progress.")
			return ExitOK
		}
		if fs.NArg() == 0 {
			fmt.Fprintf(stdout, "Saved progress: question %d of %d, %d answered, %d correct\n",
				snapshot.CurrentQuestion+1, snapshot.TotalQuestions, len(snapshot.Answers), snapshot.Score)
			return ExitOK
		}
		ex, err := loadExam(fs.Arg(0), false)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid exam: %v\n", err)
			return ExitError
		}
		summary, err := report.Build(ex, snapshot)
		if err != nil {
			fmt.Fprintf(stderr, "Saved progress does not belong to %s: %v\n", fs.Arg(0), err)
			return ExitError
		}
		fmt.Fprint(stdout, report.Text(summary))
		return ExitOK
	}
}

func runReset(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to .examplayer/config.yml (default: auto-detect)")
		yes := fs.Bool("yes", false, "Do not ask for confirmation")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		if !*yes {
			confirm, err := promptYesNo(bufio.NewReader(stdin), stdout, "Clear saved progress?", false)
			if err != nil {
				fmt.Fprintf(stderr, "Reset failed: %v\n", err)
				return ExitError
			}
			if !confirm {
				fmt.Fprintln(stderr, "Reset cancelled.")
				return ExitError
			}
		}
		st, err := openStore(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open progress store: %v\n", err)
			return ExitError
		}
		defer st.Close()
		if err := st.Clear(); err != nil {
			fmt.Fprintf(stderr, "Reset failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintln(stdout, "Saved progress cleared.")
		return ExitOK
	}
}
