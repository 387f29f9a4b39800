package progress

import (
	"errors"
	"fmt"
	"time"

	"examplayer/internal/exam"
	"examplayer/internal/shuffle"
	"examplayer/internal/verbose"
)

// AdvanceDelay is how long a grading result stays visible before the
// engine moves to the next question.
const AdvanceDelay = 1500 * time.Millisecond

// Store persists the progress snapshot.
type Store interface {
	Save(progress exam.Progress) error
	Load() (exam.Progress, bool, error)
	Clear() error
}

// AttemptRecorder is implemented by stores that keep a history of finished
// attempts.
type AttemptRecorder interface {
	RecordAttempt(attempt exam.Attempt) error
}

// Options configures an Engine.
type Options struct {
	Permuter shuffle.Permuter
	Logger   *verbose.Logger
	// OnStoreError is called after a store operation fails. The engine keeps
	// its in-memory state either way.
	OnStoreError func(op string, err error)
	Now          func() time.Time
}

// Grading is the result of submitting an answer.
type Grading struct {
	Question exam.Question
	Answer   exam.UserAnswer
	Ticket   Ticket
	// Last is true when advancing will complete the exam.
	Last bool
}

// Engine owns the exam session and is the only writer of saved progress.
// It is not safe for concurrent use; callers serialize events.
type Engine struct {
	session      Session
	store        Store
	permuter     shuffle.Permuter
	logger       *verbose.Logger
	onStoreError func(op string, err error)
	now          func() time.Time
}

// NewEngine returns an engine in the Unstarted state. A nil store disables
// persistence.
func NewEngine(store Store, opts Options) *Engine {
	permuter := opts.Permuter
	if permuter == nil {
		permuter = shuffle.FisherYates{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		store:        store,
		permuter:     permuter,
		logger:       opts.Logger,
		onStoreError: opts.OnStoreError,
		now:          now,
	}
}

// State reports the engine state.
func (e *Engine) State() State {
	return e.session.State()
}

// Session returns the current session value.
func (e *Engine) Session() Session {
	return e.session
}

// Exam returns the loaded exam.
func (e *Engine) Exam() (exam.Exam, bool) {
	return e.session.Exam()
}

// Current returns the question being answered.
func (e *Engine) Current() (exam.Question, int, bool) {
	return e.session.Current()
}

// Progress returns the snapshot that would be saved now.
func (e *Engine) Progress() exam.Progress {
	return e.session.Snapshot()
}

// Score counts correct answers so far.
func (e *Engine) Score() int {
	return e.session.Score()
}

// Awaiting reports whether a graded answer is waiting for Advance.
func (e *Engine) Awaiting() bool {
	return e.session.Awaiting()
}

// LoadExam starts a fresh attempt, shuffling options first when asked.
// Saved progress is cleared: a newly loaded exam always starts over.
func (e *Engine) LoadExam(ex exam.Exam, shuffleOptions bool) {
	if shuffleOptions {
		ex = shuffle.Exam(ex, e.permuter)
	}
	e.session = e.session.Start(ex)
	e.logger.Logf(verbose.StyleExam, "Loaded exam %q questions=%d shuffled=%t", ex.Title, len(ex.Questions), shuffleOptions)
	e.clear()
}

// Open loads ex as it is and resumes saved progress that matches it. When
// nothing can be resumed it starts a fresh attempt.
func (e *Engine) Open(ex exam.Exam) bool {
	e.session = e.session.Start(ex)
	resumed, err := e.Resume()
	if err != nil {
		e.logger.Logf(verbose.StyleDefault, "Not resuming: %v", err)
	}
	if resumed {
		return true
	}
	e.LoadExam(ex, false)
	return false
}

// Resume restores saved progress onto the loaded exam. Without a loaded exam
// the saved snapshot is left alone and Resume reports false.
func (e *Engine) Resume() (bool, error) {
	if e.session.State() == Unstarted {
		return false, nil
	}
	if e.store == nil {
		return false, nil
	}
	snapshot, ok, err := e.store.Load()
	if err != nil {
		e.report("load", err)
		return false, fmt.Errorf("load progress: %w", err)
	}
	if !ok {
		return false, nil
	}
	restored, err := e.session.Restore(snapshot)
	if err != nil {
		return false, err
	}
	e.session = restored
	e.logger.Logf(verbose.StyleExam, "Resumed at question %d with %d answers", restored.current+1, len(restored.answers))
	if restored.current != snapshot.CurrentQuestion {
		e.save()
	}
	return true, nil
}

// Submit grades selected against the current question, records the answer,
// and saves progress. Out-of-range selections are rejected with
// exam.ErrSelectionOutOfRange and leave the state unchanged.
func (e *Engine) Submit(selected []int) (Grading, error) {
	next, answer, err := e.session.Submit(selected)
	if err != nil {
		return Grading{}, fmt.Errorf("submit answer: %w", err)
	}
	question, index, _ := e.session.Current()
	e.session = next
	ticket, _ := next.Ticket()
	e.logger.Logf(verbose.StyleDefault, "Question %d graded correct=%t selected=%v", question.ID, answer.IsCorrect, answer.Selected)
	e.save()
	return Grading{
		Question: question,
		Answer:   answer,
		Ticket:   ticket,
		Last:     index == len(next.exam.Questions)-1,
	}, nil
}

// Advance moves past the graded question when t matches the pending answer.
// Stale or repeated tickets are ignored and reported as false.
func (e *Engine) Advance(t Ticket) bool {
	next, ok := e.session.Advance(t)
	if !ok {
		return false
	}
	e.session = next
	if next.State() == Complete {
		e.complete()
		return true
	}
	e.save()
	return true
}

// Restart clears the answers and returns to the first question of the same
// exam without reshuffling.
func (e *Engine) Restart() error {
	next, err := e.session.Restart()
	if err != nil {
		return fmt.Errorf("restart: %w", err)
	}
	e.session = next
	e.logger.Logf(verbose.StyleExam, "Restarted exam")
	e.clear()
	return nil
}

// Unload forgets the exam. Saved progress stays until the next exam loads.
func (e *Engine) Unload() {
	e.session = e.session.Unload()
	e.logger.Logf(verbose.StyleExam, "Unloaded exam")
}

func (e *Engine) complete() {
	score := e.session.Score()
	total := len(e.session.exam.Questions)
	e.logger.Logf(verbose.StyleMetrics, "Exam complete score=%d/%d (%d%%)", score, total, exam.Percentage(score, total))
	recorder, ok := e.store.(AttemptRecorder)
	if !ok {
		return
	}
	attempt := exam.Attempt{
		Title:       e.session.exam.Title,
		Score:       score,
		Total:       total,
		CompletedAt: e.now().UTC(),
	}
	if err := recorder.RecordAttempt(attempt); err != nil {
		e.report("record attempt", err)
	}
}

func (e *Engine) save() {
	if e.store == nil {
		return
	}
	if err := e.store.Save(e.session.Snapshot()); err != nil {
		e.report("save", err)
	}
}

func (e *Engine) clear() {
	if e.store == nil {
		return
	}
	if err := e.store.Clear(); err != nil {
		e.report("clear", err)
	}
}

func (e *Engine) report(op string, err error) {
	e.logger.Errorf("%s progress failed: %v", op, err)
	if e.onStoreError != nil {
		e.onStoreError(op, err)
	}
}

// IsPrecondition reports whether err is a caller contract violation rather
// than a state problem.
func IsPrecondition(err error) bool {
	return errors.Is(err, exam.ErrSelectionOutOfRange) || errors.Is(err, exam.ErrUngradable)
}
