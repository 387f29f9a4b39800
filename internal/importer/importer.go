// Package importer converts text dumps of printed exams into exam documents.
package importer

import (
	"regexp"
	"strconv"
	"strings"

	"examplayer/internal/exam"
)

var (
	questionHeader  = regexp.MustCompile(`QUESTION NO:\s*(\d+)`)
	optionLine      = regexp.MustCompile(`^\s*([A-F])\.\s*(.*)$`)
	answerLine      = regexp.MustCompile(`^\s*Answer:\s*([A-F](?:\s*,?\s*[A-F])*)\s*$`)
	explanationLine = regexp.MustCompile(`^\s*Explanation:\s*(.*)$`)
	whitespace      = regexp.MustCompile(`\s+`)
)

// Skip explains why a numbered block was not imported.
type Skip struct {
	Number int
	Reason string
}

// Result is the outcome of an import.
type Result struct {
	Exam    exam.Exam
	Skipped []Skip
}

// Import parses text into an exam titled title. Blocks that lack a prompt,
// have fewer than two options, or have no usable answer are skipped.
func Import(text, title string) Result {
	result := Result{Exam: exam.Exam{Title: title, Questions: []exam.Question{}}}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	headers := questionHeader.FindAllStringSubmatchIndex(text, -1)
	for i, header := range headers {
		number, err := strconv.Atoi(text[header[2]:header[3]])
		if err != nil {
			continue
		}
		end := len(text)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		question, reason := parseBlock(number, text[header[1]:end])
		if reason != "" {
			result.Skipped = append(result.Skipped, Skip{Number: number, Reason: reason})
			continue
		}
		result.Exam.Questions = append(result.Exam.Questions, question)
	}
	return result
}

func parseBlock(number int, block string) (exam.Question, string) {
	var (
		prompt      []string
		options     []string
		answer      string
		explanation []string
		inExplain   bool
	)
	for _, line := range strings.Split(block, "\n") {
		if inExplain {
			explanation = append(explanation, line)
			continue
		}
		if match := explanationLine.FindStringSubmatch(line); match != nil {
			inExplain = true
			explanation = append(explanation, match[1])
			continue
		}
		if match := answerLine.FindStringSubmatch(line); match != nil && answer == "" {
			answer = match[1]
			continue
		}
		if answer != "" {
			continue
		}
		if match := optionLine.FindStringSubmatch(line); match != nil && int(match[1][0]-'A') == len(options) {
			options = append(options, strings.TrimSpace(match[2]))
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if len(options) > 0 {
			options[len(options)-1] = strings.TrimSpace(options[len(options)-1] + " " + trimmed)
			continue
		}
		prompt = append(prompt, trimmed)
	}

	if len(prompt) == 0 {
		return exam.Question{}, "missing question text"
	}
	if len(options) < 2 {
		return exam.Question{}, "fewer than two options"
	}
	if answer == "" {
		return exam.Question{}, "missing answer"
	}
	correct, ok := answerIndices(answer, len(options))
	if !ok {
		return exam.Question{}, "answer " + answer + " does not match an option"
	}

	question := exam.Question{
		ID:      number,
		Type:    exam.TypeSingle,
		Prompt:  strings.Join(prompt, "\n"),
		Options: options,
		Correct: correct,
	}
	if len(correct) > 1 {
		question.Type = exam.TypeMultiple
	}
	if text := strings.TrimSpace(whitespace.ReplaceAllString(strings.Join(explanation, " "), " ")); text != "" {
		question.Explanation = &text
	}
	return question, ""
}

func answerIndices(answer string, optionCount int) ([]int, bool) {
	seen := map[int]bool{}
	var out []int
	for _, letter := range answer {
		if letter < 'A' || letter > 'Z' {
			continue
		}
		index := int(letter - 'A')
		if index >= optionCount {
			return nil, false
		}
		if seen[index] {
			continue
		}
		seen[index] = true
		out = append(out, index)
	}
	return out, len(out) > 0
}
