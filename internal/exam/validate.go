package exam

import (
	"fmt"
	"strings"
)

// Issue captures a semantic problem in a parsed exam.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("exam validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// Validate checks what Parse deliberately leaves alone: question types,
// correct-index ranges, single-answer cardinality, and id uniqueness.
func Validate(exam Exam) error {
	collector := &issueCollector{}
	if len(exam.Questions) == 0 {
		collector.add("questions", "must include at least one entry")
	}

	seenIDs := map[int]int{}
	for i, question := range exam.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		if first, exists := seenIDs[question.ID]; exists {
			collector.add(prefix+".id", fmt.Sprintf("duplicate id %d (first used by questions[%d])", question.ID, first))
		} else {
			seenIDs[question.ID] = i
		}

		if !question.Type.Known() {
			collector.add(prefix+".type", fmt.Sprintf("unknown type %q (expected single|multiple|text)", question.Type))
		}

		if question.Type != TypeText && len(question.Options) == 0 {
			collector.add(prefix+".options", "must include at least one entry")
		}
		seenOptions := map[string]struct{}{}
		for optionIndex, option := range question.Options {
			field := fmt.Sprintf("%s.options[%d]", prefix, optionIndex)
			if strings.TrimSpace(option) == "" {
				collector.add(field, "is required")
				continue
			}
			if _, exists := seenOptions[option]; exists {
				collector.add(field, fmt.Sprintf("duplicate option %q", option))
				continue
			}
			seenOptions[option] = struct{}{}
		}

		seenCorrect := map[int]struct{}{}
		for correctIndex, value := range question.Correct {
			field := fmt.Sprintf("%s.correct[%d]", prefix, correctIndex)
			if value < 0 || value >= len(question.Options) {
				collector.add(field, fmt.Sprintf("index %d out of range for %d options", value, len(question.Options)))
				continue
			}
			if _, exists := seenCorrect[value]; exists {
				collector.add(field, fmt.Sprintf("duplicate index %d", value))
				continue
			}
			seenCorrect[value] = struct{}{}
		}
		if question.Type == TypeSingle && len(question.Correct) != 1 {
			collector.add(prefix+".correct", fmt.Sprintf("single questions need exactly one correct index, got %d", len(question.Correct)))
		}
	}
	return collector.result()
}
