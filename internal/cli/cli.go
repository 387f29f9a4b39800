package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  examplayer <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"examplayer <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("take", "Take an exam interactively", []string{
		"examplayer take [--shuffle] [--resume] [--ui auto|live|plain] <exam-file>",
		"examplayer take [--config <path>] [--verbose] [--log <path>] [--no-color] <exam-file>",
	}, runTake),
	command("validate", "Check exam files", []string{
		"examplayer validate [--strict] <exam-file>...",
	}, runValidate),
	command("shuffle", "Write a copy of an exam with shuffled options", []string{
		"examplayer shuffle [--seed <n>] [--output <path>] <exam-file>",
	}, runShuffle),
	command("import", "Convert a text or PDF exam dump to JSON", []string{
		"examplayer import [--title <title>] [--output <path>] <dump.txt|dump.pdf>",
	}, runImport),
	command("status", "Show saved progress", []string{
		"examplayer status [--config <path>] [<exam-file>]",
	}, runStatus),
	command("reset", "Clear saved progress", []string{
		"examplayer reset [--yes] [--config <path>]",
	}, runReset),
	command("history", "List finished attempts", []string{
		"examplayer history [--config <path>]",
	}, runHistory),
	command("report", "Render saved progress as HTML", []string{
		"examplayer report [--output <path>] [--config <path>] <exam-file>",
		"examplayer report --serve <addr> [--config <path>] <exam-file>",
	}, runReport),
	command("init", "Scaffold .examplayer/config.yml", []string{
		"examplayer init [--dir <path>]",
	}, runInit),
}
