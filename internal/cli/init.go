package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"examplayer/internal/config"
	"examplayer/internal/vcs"
)

// progressIgnoreEntries are the local state files init offers to ignore.
var progressIgnoreEntries = []string{
	config.ConfigDirName + "/progress.json",
	config.ConfigDirName + "/*.duckdb",
	config.ConfigDirName + "/*.log",
}

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		dir := fs.String("dir", "", "Directory to initialize (default: git root or working directory)")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		root := strings.TrimSpace(*dir)
		repoRoot := discoverGitRoot(root)
		if root == "" {
			root = repoRoot
		}
		if root == "" {
			wd, err := os.Getwd()
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			root = wd
		}
		root, err := filepath.Abs(root)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		configPath := config.ConfigPath(root)

		reader := bufio.NewReader(stdin)
		confirm, err := promptYesNo(reader, stdout, fmt.Sprintf("Initialize examplayer config in %s?", config.ConfigDir(root)), true)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		if !confirm {
			fmt.Fprintln(stderr, "Init cancelled.")
			return ExitError
		}
		if err := config.Scaffold(configPath); err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", configPath)

		if repoRoot == "" || vcs.IsIgnored(context.Background(), repoRoot, progressIgnoreEntries[0]) {
			return ExitOK
		}
		addIgnore, err := promptYesNo(reader, stdout, "Add saved progress files to .gitignore?", true)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		if !addIgnore {
			return ExitOK
		}
		updated, err := addGitignoreEntries(repoRoot, progressIgnoreEntries)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: update .gitignore: %v\n", err)
			return ExitError
		}
		if updated {
			fmt.Fprintf(stdout, "Updated %s\n", filepath.Join(repoRoot, ".gitignore"))
		}
		return ExitOK
	}
}

// discoverGitRoot returns the git root or empty when not found.
var discoverGitRoot = func(startDir string) string {
	root, err := vcs.DiscoverRepoRoot(context.Background(), startDir)
	if err != nil {
		return ""
	}
	return root
}

// addGitignoreEntries appends the entries .gitignore does not list yet.
func addGitignoreEntries(repoRoot string, entries []string) (bool, error) {
	gitignorePath := filepath.Join(repoRoot, ".gitignore")
	var existing []byte
	if data, err := os.ReadFile(gitignorePath); err == nil {
		existing = data
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("read .gitignore: %w", err)
	}

	present := map[string]bool{}
	for _, line := range strings.Split(string(existing), "\n") {
		present[strings.TrimSpace(line)] = true
	}
	updated := string(existing)
	added := false
	for _, entry := range entries {
		if present[entry] {
			continue
		}
		if len(updated) > 0 && !strings.HasSuffix(updated, "\n") {
			updated += "\n"
		}
		updated += entry + "\n"
		added = true
	}
	if !added {
		return false, nil
	}
	if err := os.WriteFile(gitignorePath, []byte(updated), 0o644); err != nil {
		return false, fmt.Errorf("write .gitignore: %w", err)
	}
	return true, nil
}
