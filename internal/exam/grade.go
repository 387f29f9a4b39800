package exam

import (
	"errors"
	"fmt"
)

// ErrSelectionOutOfRange is returned when a selection does not address an
// option of the question. It is a caller bug, not a wrong answer.
var ErrSelectionOutOfRange = errors.New("selection out of range")

// ErrUngradable is returned for question types without a grading rule.
var ErrUngradable = errors.New("question type cannot be graded")

// Grade compares the selection with the correct set. Order and repeats are
// ignored; a subset or superset of the correct set is wrong.
func Grade(question Question, selected []int) (bool, error) {
	if question.Type == TypeText {
		return false, fmt.Errorf("question %d: %w", question.ID, ErrUngradable)
	}
	for _, index := range selected {
		if index < 0 || index >= len(question.Options) {
			return false, fmt.Errorf("question %d: index %d for %d options: %w", question.ID, index, len(question.Options), ErrSelectionOutOfRange)
		}
	}
	return sameSet(indexSet(selected), indexSet(question.Correct)), nil
}

func indexSet(values []int) map[int]struct{} {
	set := make(map[int]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}

func sameSet(a, b map[int]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for value := range a {
		if _, ok := b[value]; !ok {
			return false
		}
	}
	return true
}
