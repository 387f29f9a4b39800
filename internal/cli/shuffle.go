package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"

	"examplayer/internal/shuffle"
)

func runShuffle(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		seed := fs.Uint64("seed", 0, "Seed for a reproducible order (0 picks a random order)")
		output := fs.String("output", "", "Write to a file instead of stdout")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		examPath, ok := singleArg(cmd, fs, stderr)
		if !ok {
			return ExitUsage
		}
		ex, err := loadExam(examPath, false)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid exam: %v\n", err)
			return ExitError
		}

		permuter := shuffle.FisherYates{}
		if *seed != 0 {
			permuter.IntN = rand.New(rand.NewPCG(*seed, *seed)).IntN
		}
		payload, err := json.MarshalIndent(shuffle.Exam(ex, permuter), "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, "Encode exam: %v\n", err)
			return ExitError
		}
		if err := writeOutput(*output, append(payload, '\n'), stdout); err != nil {
			fmt.Fprintf(stderr, "Shuffle failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
