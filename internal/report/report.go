// Package report summarizes saved exam progress as text or HTML.
package report

import (
	"fmt"

	"examplayer/internal/exam"
	"examplayer/internal/progress"
)

// Status is the outcome of one question.
type Status string

const (
	StatusCorrect    Status = "correct"
	StatusIncorrect  Status = "incorrect"
	StatusUnanswered Status = "unanswered"
)

// Row describes one question in the report.
type Row struct {
	Number      int           `json:"number"`
	Question    exam.Question `json:"question"`
	Status      Status        `json:"status"`
	Selected    []string      `json:"selected"`
	Correct     []string      `json:"correct"`
	Explanation string        `json:"explanation,omitempty"`
}

// Summary is a scored view of an exam attempt.
type Summary struct {
	Title      string    `json:"title"`
	Score      int       `json:"score"`
	Answered   int       `json:"answered"`
	Total      int       `json:"total"`
	Percentage int       `json:"percentage"`
	Tier       exam.Tier `json:"tier"`
	Complete   bool      `json:"complete"`
	Rows       []Row     `json:"rows"`
}

// Build combines ex with saved progress. The progress must fit the exam.
func Build(ex exam.Exam, p exam.Progress) (Summary, error) {
	if err := progress.CheckSnapshot(ex, p); err != nil {
		return Summary{}, fmt.Errorf("build report: %w", err)
	}
	score := exam.Score(p.Answers)
	total := len(ex.Questions)
	percentage := exam.Percentage(score, total)
	summary := Summary{
		Title:      ex.Title,
		Score:      score,
		Answered:   len(p.Answers),
		Total:      total,
		Percentage: percentage,
		Tier:       exam.TierFor(percentage),
		Complete:   len(p.Answers) == total,
		Rows:       make([]Row, 0, total),
	}
	for i, question := range ex.Questions {
		row := Row{
			Number:   i + 1,
			Question: question,
			Status:   StatusUnanswered,
			Correct:  optionTexts(question, question.Correct),
		}
		if question.HasExplanation() {
			row.Explanation = *question.Explanation
		}
		if i < len(p.Answers) {
			answer := p.Answers[i]
			row.Selected = optionTexts(question, answer.Selected)
			row.Status = StatusIncorrect
			if answer.IsCorrect {
				row.Status = StatusCorrect
			}
		}
		summary.Rows = append(summary.Rows, row)
	}
	return summary, nil
}

func optionTexts(question exam.Question, indices []int) []string {
	out := make([]string, 0, len(indices))
	for _, index := range indices {
		if index >= 0 && index < len(question.Options) {
			out = append(out, question.Options[index])
		}
	}
	return out
}
