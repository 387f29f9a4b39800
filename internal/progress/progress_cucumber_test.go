package progress

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"examplayer/internal/exam"
)

// TestProgressionScenarios runs the progression feature scenarios.
func TestProgressionScenarios(t *testing.T) {
	featurePath := filepath.Join("features", "progression.feature")
	suite := godog.TestSuite{
		Name:                "exam-progression",
		ScenarioInitializer: InitializeProgressionScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{featurePath},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeProgressionScenario wires steps for progression scenarios.
func InitializeProgressionScenario(ctx *godog.ScenarioContext) {
	state := &progressionScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^an exam with these questions:$`, state.givenExam)
	ctx.Step(`^saved progress at question (\d+) with answers "([^"]*)"$`, state.givenSavedProgress)
	ctx.Step(`^I load the exam$`, state.whenLoad)
	ctx.Step(`^I open the exam$`, state.whenOpen)
	ctx.Step(`^I select "([^"]*)"$`, state.whenSelect)
	ctx.Step(`^the feedback delay elapses$`, state.whenDelayElapses)
	ctx.Step(`^I restart the exam$`, state.whenRestart)
	ctx.Step(`^I load a new exam$`, state.whenUnload)
	ctx.Step(`^the answer is graded (correct|incorrect)$`, state.thenGraded)
	ctx.Step(`^the current question is (\d+)$`, state.thenCurrentQuestion)
	ctx.Step(`^the saved progress is at question (\d+) with (\d+) answers?$`, state.thenSavedProgress)
	ctx.Step(`^the exam is complete$`, state.thenComplete)
	ctx.Step(`^the score is (\d+) of (\d+)$`, state.thenScore)
	ctx.Step(`^no progress is saved$`, state.thenNothingSaved)
	ctx.Step(`^no exam is loaded$`, state.thenUnloaded)
}

type progressionScenarioState struct {
	exam    exam.Exam
	store   *fakeStore
	engine  *Engine
	grading Grading
}

// reset clears scenario state.
func (s *progressionScenarioState) reset() {
	s.exam = exam.Exam{Title: "Feature exam"}
	s.store = &fakeStore{}
	s.engine = NewEngine(s.store, Options{})
	s.grading = Grading{}
}

func (s *progressionScenarioState) givenExam(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		id, err := strconv.Atoi(row.Cells[0].Value)
		if err != nil {
			return fmt.Errorf("parse id: %w", err)
		}
		correct, err := parseIndices(row.Cells[3].Value)
		if err != nil {
			return err
		}
		s.exam.Questions = append(s.exam.Questions, exam.Question{
			ID:      id,
			Type:    exam.QuestionType(row.Cells[1].Value),
			Prompt:  fmt.Sprintf("Question %d", id),
			Options: strings.Split(row.Cells[2].Value, ","),
			Correct: correct,
		})
	}
	return nil
}

func (s *progressionScenarioState) givenSavedProgress(question int, answers string) error {
	selected, err := parseIndices(answers)
	if err != nil {
		return err
	}
	first := s.exam.Questions[0]
	correct, err := exam.Grade(first, selected)
	if err != nil {
		return err
	}
	s.store.snapshot = &exam.Progress{
		CurrentQuestion: question - 1,
		Answers:         []exam.UserAnswer{{QuestionID: first.ID, Selected: selected, IsCorrect: correct}},
		TotalQuestions:  len(s.exam.Questions),
	}
	return nil
}

func (s *progressionScenarioState) whenLoad() error {
	s.engine.LoadExam(s.exam, false)
	return nil
}

func (s *progressionScenarioState) whenOpen() error {
	if !s.engine.Open(s.exam) {
		return fmt.Errorf("expected saved progress to be resumed")
	}
	return nil
}

func (s *progressionScenarioState) whenSelect(selected string) error {
	indices, err := parseIndices(selected)
	if err != nil {
		return err
	}
	grading, err := s.engine.Submit(indices)
	if err != nil {
		return err
	}
	s.grading = grading
	return nil
}

func (s *progressionScenarioState) whenDelayElapses() error {
	s.engine.Advance(s.grading.Ticket)
	return nil
}

func (s *progressionScenarioState) whenRestart() error {
	return s.engine.Restart()
}

func (s *progressionScenarioState) whenUnload() error {
	s.engine.Unload()
	return nil
}

func (s *progressionScenarioState) thenGraded(result string) error {
	want := result == "correct"
	if s.grading.Answer.IsCorrect != want {
		return fmt.Errorf("expected %s, got correct=%t", result, s.grading.Answer.IsCorrect)
	}
	return nil
}

func (s *progressionScenarioState) thenCurrentQuestion(question int) error {
	_, index, ok := s.engine.Current()
	if !ok {
		return fmt.Errorf("no current question (state %s)", s.engine.State())
	}
	if index != question-1 {
		return fmt.Errorf("expected question %d, got %d", question, index+1)
	}
	return nil
}

func (s *progressionScenarioState) thenSavedProgress(question, answers int) error {
	if s.store.snapshot == nil {
		return fmt.Errorf("expected saved progress")
	}
	if s.store.snapshot.CurrentQuestion != question-1 || len(s.store.snapshot.Answers) != answers {
		return fmt.Errorf("unexpected saved progress %+v", *s.store.snapshot)
	}
	return nil
}

func (s *progressionScenarioState) thenComplete() error {
	if s.engine.State() != Complete {
		return fmt.Errorf("expected complete, got %s", s.engine.State())
	}
	return nil
}

func (s *progressionScenarioState) thenScore(score, total int) error {
	progress := s.engine.Progress()
	if progress.Score != score || progress.TotalQuestions != total {
		return fmt.Errorf("expected %d of %d, got %d of %d", score, total, progress.Score, progress.TotalQuestions)
	}
	return nil
}

func (s *progressionScenarioState) thenNothingSaved() error {
	if s.store.snapshot != nil {
		return fmt.Errorf("expected no saved progress, got %+v", *s.store.snapshot)
	}
	return nil
}

func (s *progressionScenarioState) thenUnloaded() error {
	if s.engine.State() != Unstarted {
		return fmt.Errorf("expected unstarted, got %s", s.engine.State())
	}
	return nil
}

func parseIndices(value string) ([]int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return []int{}, nil
	}
	parts := strings.Split(value, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		index, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("parse index %q: %w", part, err)
		}
		out = append(out, index)
	}
	return out, nil
}
