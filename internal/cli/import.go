package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"examplayer/internal/importer"
)

func runImport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		title := fs.String("title", "Exam", "Exam title")
		output := fs.String("output", "", "Write to a file instead of stdout")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		source, ok := singleArg(cmd, fs, stderr)
		if !ok {
			return ExitUsage
		}

		text, err := importer.ExtractText(context.Background(), source)
		if err != nil {
			fmt.Fprintf(stderr, "Import failed: %v\n", err)
			return ExitError
		}
		result := importer.Import(text, *title)
		for _, skip := range result.Skipped {
			fmt.Fprintf(stderr, "Skipped question %d: %s\n", skip.Number, skip.Reason)
		}
		if len(result.Exam.Questions) == 0 {
			fmt.Fprintln(stderr, "Import failed: no questions found")
			return ExitError
		}
		payload, err := json.MarshalIndent(result.Exam, "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, "Encode exam: %v\n", err)
			return ExitError
		}
		if err := writeOutput(*output, append(payload, '\n'), stdout); err != nil {
			fmt.Fprintf(stderr, "Import failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stderr, "Imported %d questions (%d skipped)\n", len(result.Exam.Questions), len(result.Skipped))
		return ExitOK
	}
}
