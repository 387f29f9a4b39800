package shuffle

import (
	"fmt"
	"math/rand/v2"

	"examplayer/internal/exam"
)

// Permuter produces a permutation of [0, n).
type Permuter interface {
	Perm(n int) []int
}

// PermuterFunc adapts a function to Permuter.
type PermuterFunc func(n int) []int

// Perm calls fn.
func (fn PermuterFunc) Perm(n int) []int {
	return fn(n)
}

// FisherYates draws uniform permutations by swapping from the last index
// down to 1. IntN must return a uniform value in [0, n); nil uses the
// auto-seeded math/rand/v2 source.
type FisherYates struct {
	IntN func(n int) int
}

// Perm returns a uniformly random permutation of [0, n).
func (f FisherYates) Perm(n int) []int {
	intN := f.IntN
	if intN == nil {
		intN = rand.IntN
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := intN(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// Exam returns a copy of e with every question's options permuted
// independently. The input exam is left untouched.
func Exam(e exam.Exam, p Permuter) exam.Exam {
	if p == nil {
		p = FisherYates{}
	}
	out := e.Clone()
	for i, question := range out.Questions {
		out.Questions[i] = Question(question, p)
	}
	return out
}

// Question returns a copy of q whose options follow a fresh permutation and
// whose correct indices point at the same option text as before.
func Question(q exam.Question, p Permuter) exam.Question {
	if p == nil {
		p = FisherYates{}
	}
	perm := p.Perm(len(q.Options))
	mustBePermutation(perm, len(q.Options))

	out := q.Clone()
	// position[old] is where the option previously at old now lives.
	position := make([]int, len(perm))
	for k, old := range perm {
		out.Options[k] = q.Options[old]
		position[old] = k
	}
	for i, old := range q.Correct {
		if old < 0 || old >= len(position) {
			// Out-of-range indices address no option; keep them as they are.
			out.Correct[i] = old
			continue
		}
		out.Correct[i] = position[old]
	}
	return out
}

func mustBePermutation(perm []int, n int) {
	if len(perm) != n {
		panic(fmt.Sprintf("shuffle: permuter returned %d indices for %d options", len(perm), n))
	}
	seen := make([]bool, n)
	for _, value := range perm {
		if value < 0 || value >= n || seen[value] {
			panic(fmt.Sprintf("shuffle: permuter returned %v, not a permutation of [0, %d)", perm, n))
		}
		seen[value] = true
	}
}
