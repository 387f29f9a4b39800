package exam

import (
	"slices"
	"time"
)

// QuestionType enumerates the supported question kinds.
type QuestionType string

const (
	// TypeSingle accepts exactly one option.
	TypeSingle QuestionType = "single"
	// TypeMultiple accepts any subset of options.
	TypeMultiple QuestionType = "multiple"
	// TypeText is declared by the file format but has no grading rule.
	TypeText QuestionType = "text"
)

// Known reports whether the type is one of the declared kinds.
func (t QuestionType) Known() bool {
	switch t {
	case TypeSingle, TypeMultiple, TypeText:
		return true
	default:
		return false
	}
}

// Exam is an ordered collection of questions with a title.
type Exam struct {
	Title     string     `json:"title" yaml:"title"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Question is a single prompt with its answer options and the correct subset.
// Options are identified by index only.
type Question struct {
	ID          int          `json:"id" yaml:"id"`
	Type        QuestionType `json:"type" yaml:"type"`
	Prompt      string       `json:"question" yaml:"question"`
	Options     []string     `json:"options" yaml:"options"`
	Correct     []int        `json:"correct" yaml:"correct"`
	Explanation *string      `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// HasExplanation reports whether an explanation should be shown after grading.
func (q Question) HasExplanation() bool {
	return q.Explanation != nil && *q.Explanation != ""
}

// UserAnswer records a graded selection. Selected indices refer to the
// option order the user saw.
type UserAnswer struct {
	QuestionID int   `json:"questionId"`
	Selected   []int `json:"selected"`
	IsCorrect  bool  `json:"isCorrect"`
}

// Progress is the persisted snapshot of an attempt.
type Progress struct {
	CurrentQuestion int          `json:"currentQuestion"`
	Answers         []UserAnswer `json:"answers"`
	Score           int          `json:"score"`
	TotalQuestions  int          `json:"totalQuestions"`
}

// Attempt summarizes a finished pass through an exam.
type Attempt struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	CompletedAt time.Time `json:"completedAt"`
}

// Score counts the correct answers.
func Score(answers []UserAnswer) int {
	score := 0
	for _, answer := range answers {
		if answer.IsCorrect {
			score++
		}
	}
	return score
}

// Clone returns a deep copy of the exam.
func (e Exam) Clone() Exam {
	out := Exam{Title: e.Title}
	if e.Questions != nil {
		out.Questions = make([]Question, len(e.Questions))
		for i, q := range e.Questions {
			out.Questions[i] = q.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the question.
func (q Question) Clone() Question {
	out := q
	out.Options = slices.Clone(q.Options)
	out.Correct = slices.Clone(q.Correct)
	if q.Explanation != nil {
		text := *q.Explanation
		out.Explanation = &text
	}
	return out
}
