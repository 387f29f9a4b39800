package report

import (
	"fmt"
	"strings"
)

// formatScore returns "score / total (pct%)".
func formatScore(s Summary) string {
	return fmt.Sprintf("%d / %d (%d%%)", s.Score, s.Total, s.Percentage)
}

// Text renders a plain summary for terminals without the live player.
func Text(s Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", s.Title)
	if s.Complete {
		fmt.Fprintf(&b, "Score: %s %s\n", formatScore(s), s.Tier.Label())
	} else {
		fmt.Fprintf(&b, "In progress: %d of %d answered, %d correct\n", s.Answered, s.Total, s.Score)
	}
	for _, row := range s.Rows {
		if row.Status == StatusUnanswered {
			continue
		}
		mark := "x"
		if row.Status == StatusCorrect {
			mark = "ok"
		}
		fmt.Fprintf(&b, "  %2d. [%s] %s\n", row.Number, mark, firstLine(row.Question.Prompt))
	}
	return b.String()
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return line
}
