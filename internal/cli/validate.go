package cli

import (
	"flag"
	"fmt"
	"io"
)

func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to .examplayer/config.yml (default: auto-detect)")
		strict := fs.Bool("strict", false, "Also check types, answer indices and duplicates")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if fs.NArg() == 0 {
			fmt.Fprintln(stderr, "missing exam file")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		strictMode := cfg.Validation.Strict
		if flagWasSet(fs, "strict") {
			strictMode = *strict
		}

		failed := 0
		for _, path := range fs.Args() {
			ex, err := loadExam(path, strictMode)
			if err != nil {
				failed++
				fmt.Fprintf(stderr, "%s: %v\n", path, err)
				continue
			}
			fmt.Fprintf(stdout, "%s: OK (%d questions)\n", path, len(ex.Questions))
		}
		if failed > 0 {
			return ExitError
		}
		return ExitOK
	}
}
