package player

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"examplayer/internal/exam"
	"examplayer/internal/progress"
)

// View renders the current question or the scoreboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.engine.State() {
	case progress.InProgress:
		return m.questionView()
	case progress.Complete:
		return m.scoreboardView()
	default:
		return stylize("No exam loaded.", m.noColor, colorMuted) + "\n"
	}
}

func (m Model) questionView() string {
	ex, _ := m.engine.Exam()
	question, index, _ := m.engine.Current()
	total := len(ex.Questions)

	header := bold(ex.Title, m.noColor, colorTitle)
	counter := stylize(fmt.Sprintf("Question %d of %d", index+1, total), m.noColor, colorMuted)
	answered := len(m.engine.Progress().Answers)
	progressLine := m.bar.ViewAs(float64(answered)/float64(total)) + " " +
		stylize(fmt.Sprintf("Score: %d", m.engine.Score()), m.noColor, colorMuted)

	kind := "Select one answer"
	if question.Type == exam.TypeMultiple {
		kind = "Select all that apply"
	}

	lines := []string{
		header,
		counter,
		progressLine,
		"",
		bold(question.Prompt, m.noColor, lipgloss.Color("255")),
		stylize(kind, m.noColor, colorMuted),
		"",
	}
	for i, option := range question.Options {
		lines = append(lines, m.optionLine(question, i, option))
	}
	lines = append(lines, "")
	if feedback := m.feedbackView(question); feedback != "" {
		lines = append(lines, feedback, "")
	}
	if m.notice != "" {
		lines = append(lines, stylize(m.notice, m.noColor, colorNotice), "")
	}
	lines = append(lines, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

func (m Model) optionLine(question exam.Question, index int, option string) string {
	pointer := "  "
	if index == m.cursor && m.grading == nil {
		pointer = stylize("> ", m.noColor, colorCursor)
	}
	mark := "( )"
	checked := "(*)"
	if question.Type == exam.TypeMultiple {
		mark = "[ ]"
		checked = "[x]"
	}
	selected := m.selected[index]
	if m.grading != nil {
		selected = containsInt(m.grading.Answer.Selected, index)
	}
	if selected {
		mark = checked
	}
	line := fmt.Sprintf("%s%s %d. %s", pointer, mark, index+1, option)
	if m.grading == nil {
		return line
	}
	switch {
	case containsInt(question.Correct, index):
		return stylize(line, m.noColor, colorCorrect)
	case selected:
		return stylize(line, m.noColor, colorIncorrect)
	default:
		return stylize(line, m.noColor, colorMuted)
	}
}

func (m Model) feedbackView(question exam.Question) string {
	if m.grading == nil {
		return ""
	}
	var b strings.Builder
	if m.grading.Answer.IsCorrect {
		b.WriteString(bold("Correct!", m.noColor, colorCorrect))
	} else {
		b.WriteString(bold("Incorrect.", m.noColor, colorIncorrect))
		b.WriteString(" Correct answer: ")
		b.WriteString(strings.Join(optionTexts(question, question.Correct), ", "))
	}
	if question.HasExplanation() {
		b.WriteString("\n")
		b.WriteString(stylize(*question.Explanation, m.noColor, colorMuted))
	}
	return b.String()
}

func (m Model) scoreboardView() string {
	ex, _ := m.engine.Exam()
	score := m.engine.Score()
	total := len(ex.Questions)
	percentage := exam.Percentage(score, total)
	tier := exam.TierFor(percentage)

	lines := []string{
		bold(ex.Title, m.noColor, colorTitle),
		"",
		bold(tier.Label(), m.noColor, tierColor(percentage)),
		fmt.Sprintf("You scored %d out of %d (%d%%)", score, total, percentage),
		m.bar.ViewAs(float64(percentage) / 100),
		"",
	}
	if m.notice != "" {
		lines = append(lines, stylize(m.notice, m.noColor, colorNotice), "")
	}
	lines = append(lines, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
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

func containsInt(values []int, want int) bool {
	for _, value := range values {
		if value == want {
			return true
		}
	}
	return false
}
