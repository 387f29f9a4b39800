package store

import (
	"slices"
	"sync"

	"examplayer/internal/exam"
)

// Memory keeps progress and attempts for the lifetime of the process.
type Memory struct {
	mu       sync.Mutex
	snapshot *exam.Progress
	attempts []exam.Attempt
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load() (exam.Progress, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snapshot == nil {
		return exam.Progress{}, false, nil
	}
	return cloneProgress(*m.snapshot), true, nil
}

func (m *Memory) Save(progress exam.Progress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := cloneProgress(progress)
	m.snapshot = &snapshot
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = nil
	return nil
}

// RecordAttempt appends a finished attempt.
func (m *Memory) RecordAttempt(attempt exam.Attempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if attempt.ID == "" {
		attempt.ID = newAttemptID()
	}
	m.attempts = append(m.attempts, attempt)
	return nil
}

// Attempts lists recorded attempts, newest first.
func (m *Memory) Attempts() ([]exam.Attempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.attempts)
	slices.Reverse(out)
	return out, nil
}

func (m *Memory) Close() error {
	return nil
}

func cloneProgress(p exam.Progress) exam.Progress {
	out := p
	out.Answers = make([]exam.UserAnswer, len(p.Answers))
	for i, answer := range p.Answers {
		answer.Selected = slices.Clone(answer.Selected)
		out.Answers[i] = answer
	}
	return out
}
