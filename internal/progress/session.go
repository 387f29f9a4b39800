package progress

import (
	"errors"
	"fmt"
	"slices"

	"examplayer/internal/exam"
)

// State is the coarse engine state.
type State int

const (
	// Unstarted means no exam is loaded.
	Unstarted State = iota
	// InProgress means the current question has not been passed yet.
	InProgress
	// Complete means the last question has been graded and advanced past.
	Complete
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Unstarted:
		return "unstarted"
	case InProgress:
		return "in progress"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrNoExam is returned when a transition needs a loaded exam.
	ErrNoExam = errors.New("no exam loaded")
	// ErrNotInProgress is returned when answering outside an active attempt.
	ErrNotInProgress = errors.New("exam is not in progress")
	// ErrAlreadyAnswered is returned when the current question was graded and
	// is waiting to advance.
	ErrAlreadyAnswered = errors.New("current question already answered")
	// ErrSnapshotMismatch is returned when saved progress does not fit the exam.
	ErrSnapshotMismatch = errors.New("saved progress does not match exam")
)

// Ticket identifies the advance that belongs to one graded answer. Tickets
// from before a restart or unload never match again.
type Ticket struct {
	generation uint64
	answered   int
}

// Session is the immutable exam-progress state. Transitions return a new
// Session and never modify the receiver.
type Session struct {
	exam       exam.Exam
	loaded     bool
	current    int
	answers    []exam.UserAnswer
	complete   bool
	generation uint64
}

// State reports the current state.
func (s Session) State() State {
	switch {
	case !s.loaded:
		return Unstarted
	case s.complete:
		return Complete
	default:
		return InProgress
	}
}

// Exam returns the loaded exam.
func (s Session) Exam() (exam.Exam, bool) {
	return s.exam, s.loaded
}

// Current returns the question at the current index.
func (s Session) Current() (exam.Question, int, bool) {
	if !s.loaded || s.current >= len(s.exam.Questions) {
		return exam.Question{}, s.current, false
	}
	return s.exam.Questions[s.current], s.current, true
}

// Answers returns a copy of the answer log.
func (s Session) Answers() []exam.UserAnswer {
	return cloneAnswers(s.answers)
}

// Awaiting reports whether the current question is graded but not advanced.
func (s Session) Awaiting() bool {
	return s.loaded && !s.complete && len(s.answers) > s.current
}

// Ticket returns the ticket for the pending advance.
func (s Session) Ticket() (Ticket, bool) {
	if !s.Awaiting() {
		return Ticket{}, false
	}
	return Ticket{generation: s.generation, answered: len(s.answers)}, true
}

// Score counts correct answers.
func (s Session) Score() int {
	return exam.Score(s.answers)
}

// Snapshot builds the persisted form of the session.
func (s Session) Snapshot() exam.Progress {
	answers := cloneAnswers(s.answers)
	if answers == nil {
		answers = []exam.UserAnswer{}
	}
	return exam.Progress{
		CurrentQuestion: s.current,
		Answers:         answers,
		Score:           exam.Score(s.answers),
		TotalQuestions:  len(s.exam.Questions),
	}
}

// Start begins a fresh attempt at e.
func (s Session) Start(e exam.Exam) Session {
	return Session{
		exam:       e,
		loaded:     true,
		complete:   len(e.Questions) == 0,
		generation: s.generation + 1,
	}
}

// Submit grades a selection for the current question and appends the answer.
// The index does not move until Advance.
func (s Session) Submit(selected []int) (Session, exam.UserAnswer, error) {
	if !s.loaded {
		return s, exam.UserAnswer{}, ErrNoExam
	}
	if s.complete {
		return s, exam.UserAnswer{}, ErrNotInProgress
	}
	if s.Awaiting() {
		return s, exam.UserAnswer{}, ErrAlreadyAnswered
	}
	question := s.exam.Questions[s.current]
	correct, err := exam.Grade(question, selected)
	if err != nil {
		return s, exam.UserAnswer{}, err
	}
	answer := exam.UserAnswer{
		QuestionID: question.ID,
		Selected:   normalizeSelection(selected),
		IsCorrect:  correct,
	}
	next := s
	next.answers = append(slices.Clip(s.answers), answer)
	return next, answer, nil
}

// Advance moves past the graded question when t is the pending ticket.
func (s Session) Advance(t Ticket) (Session, bool) {
	pending, ok := s.Ticket()
	if !ok || pending != t {
		return s, false
	}
	next := s
	if s.current >= len(s.exam.Questions)-1 {
		next.complete = true
	} else {
		next.current++
	}
	return next, true
}

// Restart clears the answers and returns to the first question of the same
// exam, invalidating outstanding tickets.
func (s Session) Restart() (Session, error) {
	if !s.loaded {
		return s, ErrNoExam
	}
	return s.Start(s.exam), nil
}

// Unload forgets the exam entirely.
func (s Session) Unload() Session {
	return Session{generation: s.generation + 1}
}

// Restore applies a saved snapshot to the loaded exam. A snapshot taken
// between grading and advancing is settled by advancing.
func (s Session) Restore(p exam.Progress) (Session, error) {
	if !s.loaded {
		return s, ErrNoExam
	}
	if err := CheckSnapshot(s.exam, p); err != nil {
		return s, err
	}
	next := s.Start(s.exam)
	next.current = p.CurrentQuestion
	next.answers = cloneAnswers(p.Answers)
	if ticket, ok := next.Ticket(); ok {
		next, _ = next.Advance(ticket)
	}
	return next, nil
}

// CheckSnapshot reports whether p fits e: same question count, answers for
// the leading questions in order, and selections within each question's
// options.
func CheckSnapshot(e exam.Exam, p exam.Progress) error {
	total := len(e.Questions)
	if p.TotalQuestions != total {
		return fmt.Errorf("%w: snapshot has %d questions, exam has %d", ErrSnapshotMismatch, p.TotalQuestions, total)
	}
	if total == 0 {
		return fmt.Errorf("%w: exam has no questions", ErrSnapshotMismatch)
	}
	if p.CurrentQuestion < 0 || p.CurrentQuestion >= total {
		return fmt.Errorf("%w: current question %d out of range", ErrSnapshotMismatch, p.CurrentQuestion)
	}
	if len(p.Answers) != p.CurrentQuestion && len(p.Answers) != p.CurrentQuestion+1 {
		return fmt.Errorf("%w: %d answers at question %d", ErrSnapshotMismatch, len(p.Answers), p.CurrentQuestion)
	}
	for i, answer := range p.Answers {
		question := e.Questions[i]
		if answer.QuestionID != question.ID {
			return fmt.Errorf("%w: answer %d is for question %d, exam has %d", ErrSnapshotMismatch, i, answer.QuestionID, question.ID)
		}
		for _, index := range answer.Selected {
			if index < 0 || index >= len(question.Options) {
				return fmt.Errorf("%w: answer %d selects option %d of %d", ErrSnapshotMismatch, i, index, len(question.Options))
			}
		}
	}
	return nil
}

// normalizeSelection returns the selection sorted without repeats.
func normalizeSelection(selected []int) []int {
	out := slices.Clone(selected)
	slices.Sort(out)
	out = slices.Compact(out)
	if out == nil {
		out = []int{}
	}
	return out
}

func cloneAnswers(answers []exam.UserAnswer) []exam.UserAnswer {
	if answers == nil {
		return nil
	}
	out := make([]exam.UserAnswer, len(answers))
	for i, answer := range answers {
		answer.Selected = slices.Clone(answer.Selected)
		out[i] = answer
	}
	return out
}
