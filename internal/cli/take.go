package cli

import (
	"flag"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"examplayer/internal/progress"
	"examplayer/internal/ui/player"
	"examplayer/internal/verbose"
)

// runProgram runs the live player; tests replace it.
var runProgram = func(model tea.Model, stdout io.Writer) (tea.Model, error) {
	program := tea.NewProgram(model, tea.WithInput(stdin), tea.WithOutput(stdout), tea.WithAltScreen())
	return program.Run()
}

func runTake(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to .examplayer/config.yml (default: auto-detect)")
		shuffleFlag := fs.Bool("shuffle", false, "Shuffle answer options")
		resume := fs.Bool("resume", false, "Continue from saved progress")
		uiMode := fs.String("ui", "", "UI mode: auto|live|plain")
		noColorFlag := fs.Bool("no-color", false, "Disable colors")
		verboseFlag := fs.Bool("verbose", false, "Log progress details to stderr")
		logPath := fs.String("log", "", "Append verbose lines to a file")
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
		shuffleOptions := cfg.Player.Shuffle
		if flagWasSet(fs, "shuffle") {
			shuffleOptions = *shuffleFlag
		}
		if *resume && shuffleOptions {
			fmt.Fprintln(stderr, "--resume cannot be combined with shuffled options")
			return ExitUsage
		}
		noColor := cfg.Player.NoColor || *noColorFlag
		mode := cfg.Player.UI
		if flagWasSet(fs, "ui") {
			mode = *uiMode
		}
		decision, err := resolveUIMode(mode, *verboseFlag, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		ex, err := loadExam(examPath, cfg.Validation.Strict)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid exam: %v\n", err)
			return ExitError
		}

		logger, closeLog, err := openLogger(*verboseFlag, *logPath, stderr, noColor)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open log: %v\n", err)
			return ExitError
		}
		defer closeLog()

		st, err := openStore(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open progress store: %v\n", err)
			return ExitError
		}
		defer st.Close()
		logger.Logf(verbose.StyleDefault, "Progress store backend=%s path=%s", cfg.Store.Backend, cfg.Store.Path)

		var warnings []string
		engine := progress.NewEngine(st, progress.Options{
			Logger: logger,
			OnStoreError: func(op string, err error) {
				warnings = append(warnings, fmt.Sprintf("Warning: %s progress failed: %v", op, err))
			},
		})
		defer func() {
			for _, warning := range warnings {
				fmt.Fprintln(stderr, warning)
			}
		}()

		if *resume {
			if engine.Open(ex) {
				_, index, _ := engine.Current()
				fmt.Fprintf(stderr, "Resuming %q at question %d of %d.\n", ex.Title, index+1, len(ex.Questions))
			} else {
				fmt.Fprintln(stderr, "No saved progress for this exam; starting from the first question.")
			}
		} else {
			engine.LoadExam(ex, shuffleOptions)
		}

		if !decision.useLive {
			if err := runPlain(engine, stdin, stdout, cfg.Player.AdvanceDelay()); err != nil {
				fmt.Fprintf(stderr, "Take failed: %v\n", err)
				return ExitError
			}
			return ExitOK
		}

		final, err := runProgram(player.NewModel(engine, player.Options{
			NoColor:      noColor,
			AdvanceDelay: cfg.Player.AdvanceDelay(),
		}), stdout)
		if err != nil {
			fmt.Fprintf(stderr, "Player failed: %v\n", err)
			return ExitError
		}
		if model, ok := final.(player.Model); ok && model.Unloaded() {
			fmt.Fprintln(stdout, "Exam unloaded. Run \"examplayer take <exam-file>\" to load another.")
		}
		return ExitOK
	}
}
