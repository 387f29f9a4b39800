package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// RenderReportHTML renders the report page into a string.
func RenderReportHTML(ctx context.Context, s Summary) (string, error) {
	var builder strings.Builder
	if err := ReportPage(s).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// ReportPage is the standalone HTML page for a summary.
func ReportPage(s Summary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := templ.EscapeString(s.Title)
		if _, err := fmt.Fprintf(w, "<!doctype html>\n<html lang=\"en\"><head><meta charset=\"utf-8\"><title>%s</title><style>%s</style></head><body>", title, pageStyle); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "<h1>%s</h1>", title); err != nil {
			return err
		}
		if err := scoreCard(s).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "<ol class=\"questions\">"); err != nil {
			return err
		}
		for _, row := range s.Rows {
			if err := questionItem(row).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ol></body></html>\n")
		return err
	})
}

func scoreCard(s Summary) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if !s.Complete {
			_, err := fmt.Fprintf(w, "<section class=\"score pending\"><p>In progress: %d of %d answered, %d correct</p></section>",
				s.Answered, s.Total, s.Score)
			return err
		}
		_, err := fmt.Fprintf(w, "<section class=\"score %s\"><p class=\"tier\">%s</p><p class=\"value\">%s</p></section>",
			tierClass(s.Percentage), templ.EscapeString(s.Tier.Label()), templ.EscapeString(formatScore(s)))
		return err
	})
}

func questionItem(row Row) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, "<li class=\"%s\"><p class=\"prompt\">%s</p><ul class=\"options\">", row.Status, multiline(row.Question.Prompt))
		for index, option := range row.Question.Options {
			fmt.Fprintf(&b, "<li class=\"%s\">%s</li>", optionClass(row, index), templ.EscapeString(option))
		}
		b.WriteString("</ul>")
		if row.Status != StatusUnanswered {
			fmt.Fprintf(&b, "<p class=\"answer\">Your answer: %s</p>", templ.EscapeString(joinOrDash(row.Selected)))
		}
		fmt.Fprintf(&b, "<p class=\"correct\">Correct answer: %s</p>", templ.EscapeString(joinOrDash(row.Correct)))
		if row.Explanation != "" {
			fmt.Fprintf(&b, "<p class=\"explanation\">%s</p>", multiline(row.Explanation))
		}
		b.WriteString("</li>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func optionClass(row Row, index int) string {
	for _, correct := range row.Question.Correct {
		if correct == index {
			return "option is-correct"
		}
	}
	return "option"
}

func tierClass(percentage int) string {
	switch {
	case percentage >= 70:
		return "pass"
	case percentage >= 50:
		return "borderline"
	default:
		return "fail"
	}
}

func multiline(text string) string {
	return strings.ReplaceAll(templ.EscapeString(text), "\n", "<br>")
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}

const pageStyle = `body{font-family:system-ui,sans-serif;max-width:48rem;margin:2rem auto;padding:0 1rem;color:#1f2933}
.score{border-radius:.5rem;padding:1rem;margin-bottom:1.5rem;background:#f5f7fa}
.score.pass{background:#e3f9e5}.score.borderline{background:#fffbea}.score.fail{background:#ffe3e3}
.tier{font-size:1.5rem;font-weight:600;margin:0}.value{margin:.25rem 0 0}
.questions>li{margin-bottom:1.25rem}.prompt{font-weight:600}
.option.is-correct{font-weight:600;color:#207227}
li.incorrect .answer{color:#ab091e}.explanation{font-style:italic;color:#52606d}`
