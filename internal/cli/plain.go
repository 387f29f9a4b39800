package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"examplayer/internal/exam"
	"examplayer/internal/progress"
)

// sleep waits out the feedback delay in plain mode; tests replace it.
var sleep = time.Sleep

// runPlain drives the engine from line input. It returns when the user
// quits, unloads the exam, or input ends.
func runPlain(engine *progress.Engine, in io.Reader, out io.Writer, delay time.Duration) error {
	reader := bufio.NewReader(in)
	for {
		switch engine.State() {
		case progress.InProgress:
			done, err := askQuestion(engine, reader, out, delay)
			if err != nil || done {
				return err
			}
		case progress.Complete:
			again, err := scoreboard(engine, reader, out)
			if err != nil || !again {
				return err
			}
		default:
			return nil
		}
	}
}

// askQuestion reads one answer. done is true when input ended or the user quit.
func askQuestion(engine *progress.Engine, reader *bufio.Reader, out io.Writer, delay time.Duration) (bool, error) {
	ex, _ := engine.Exam()
	question, index, _ := engine.Current()
	fmt.Fprintf(out, "\nQuestion %d of %d\n%s\n", index+1, len(ex.Questions), question.Prompt)
	for i, option := range question.Options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, option)
	}
	hint := "Answer with one option number"
	if question.Type == exam.TypeMultiple {
		hint = "Answer with option numbers separated by commas"
	}
	for {
		fmt.Fprintf(out, "%s (q to quit): ", hint)
		line, err := readLine(reader)
		if err != nil && err != io.EOF {
			return true, err
		}
		line = strings.TrimSpace(line)
		if strings.EqualFold(line, "q") || (line == "" && err == io.EOF) {
			fmt.Fprintln(out, "\nProgress saved. Use \"examplayer take --resume\" to continue.")
			return true, nil
		}
		selected, parseErr := parseSelection(line, len(question.Options))
		if parseErr == nil && question.Type == exam.TypeSingle && len(selected) != 1 {
			parseErr = fmt.Errorf("choose exactly one option")
		}
		if parseErr != nil {
			fmt.Fprintf(out, "%v\n", parseErr)
			if err == io.EOF {
				return true, nil
			}
			continue
		}

		grading, submitErr := engine.Submit(selected)
		if submitErr != nil {
			if errors.Is(submitErr, exam.ErrUngradable) {
				return true, fmt.Errorf("question %d cannot be graded in the terminal: %w", question.ID, submitErr)
			}
			return true, submitErr
		}
		printFeedback(out, question, grading)
		sleep(delay)
		engine.Advance(grading.Ticket)
		return false, nil
	}
}

func printFeedback(out io.Writer, question exam.Question, grading progress.Grading) {
	if grading.Answer.IsCorrect {
		fmt.Fprintln(out, "Correct!")
	} else {
		answers := correctLabels(question)
		if len(answers) == 0 {
			fmt.Fprintln(out, "Incorrect. No option is marked correct.")
		} else {
			fmt.Fprintf(out, "Incorrect. Correct answer: %s\n", strings.Join(answers, ", "))
		}
	}
	if question.HasExplanation() {
		fmt.Fprintf(out, "Explanation: %s\n", *question.Explanation)
	}
}

// correctLabels numbers the correct options, skipping indices that address
// no option.
func correctLabels(question exam.Question) []string {
	labels := make([]string, 0, len(question.Correct))
	for _, index := range question.Correct {
		if index < 0 || index >= len(question.Options) {
			continue
		}
		labels = append(labels, fmt.Sprintf("%d) %s", index+1, question.Options[index]))
	}
	return labels
}

// scoreboard prints the result and reads the next action. again is true
// after a restart.
func scoreboard(engine *progress.Engine, reader *bufio.Reader, out io.Writer) (bool, error) {
	ex, _ := engine.Exam()
	score := engine.Score()
	total := len(ex.Questions)
	percentage := exam.Percentage(score, total)
	fmt.Fprintf(out, "\n%s\n%s\nYou scored %d out of %d (%d%%)\n", ex.Title, exam.TierFor(percentage).Label(), score, total, percentage)
	for {
		fmt.Fprint(out, "[r] try again, [n] load new exam, [q] quit: ")
		line, err := readLine(reader)
		if err != nil && err != io.EOF {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "r":
			if err := engine.Restart(); err != nil {
				return false, err
			}
			return true, nil
		case "n":
			engine.Unload()
			fmt.Fprintln(out, "Exam unloaded. Run \"examplayer take <exam-file>\" to load another.")
			return false, nil
		case "q":
			return false, nil
		default:
			if err == io.EOF {
				fmt.Fprintln(out)
				return false, nil
			}
			fmt.Fprintln(out, "Please answer r, n or q.")
		}
	}
}

// parseSelection turns "1, 3" into zero-based option indices.
func parseSelection(line string, optionCount int) ([]int, error) {
	if line == "" {
		return nil, fmt.Errorf("enter at least one option number")
	}
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' '
	})
	selected := make([]int, 0, len(fields))
	for _, field := range fields {
		number, err := strconv.Atoi(field)
		if err != nil || number < 1 || number > optionCount {
			return nil, fmt.Errorf("please enter numbers between 1 and %d", optionCount)
		}
		selected = append(selected, number-1)
	}
	return selected, nil
}
