package shuffle

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"testing"

	"examplayer/internal/exam"
)

func sampleExam() exam.Exam {
	explanation := "Go has goroutines."
	return exam.Exam{
		Title: "Go",
		Questions: []exam.Question{
			{ID: 1, Type: exam.TypeSingle, Prompt: "Concurrency primitive?", Options: []string{"thread", "goroutine", "fiber"}, Correct: []int{1}, Explanation: &explanation},
			{ID: 2, Type: exam.TypeMultiple, Prompt: "Reference types?", Options: []string{"map", "int", "slice", "chan", "bool"}, Correct: []int{0, 2, 3}},
			{ID: 3, Type: exam.TypeMultiple, Prompt: "Nothing correct", Options: []string{"x", "y"}, Correct: []int{}},
			{ID: 4, Type: exam.TypeSingle, Prompt: "One option", Options: []string{"only"}, Correct: []int{0}},
		},
	}
}

func correctTexts(q exam.Question) []string {
	out := make([]string, 0, len(q.Correct))
	for _, index := range q.Correct {
		out = append(out, q.Options[index])
	}
	slices.Sort(out)
	return out
}

func sortedOptions(q exam.Question) []string {
	out := slices.Clone(q.Options)
	slices.Sort(out)
	return out
}

// reversePermuter reverses every option list.
var reversePermuter = PermuterFunc(func(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = n - 1 - i
	}
	return perm
})

// TestQuestionRemapsCorrectIndices verifies the deterministic remap.
func TestQuestionRemapsCorrectIndices(t *testing.T) {
	question := sampleExam().Questions[1]
	shuffled := Question(question, reversePermuter)
	wantOptions := []string{"bool", "chan", "slice", "int", "map"}
	if !reflect.DeepEqual(shuffled.Options, wantOptions) {
		t.Fatalf("unexpected options %v", shuffled.Options)
	}
	if !reflect.DeepEqual(shuffled.Correct, []int{4, 2, 1}) {
		t.Fatalf("unexpected correct %v", shuffled.Correct)
	}
}

// TestExamPreservesCorrectness verifies the shuffle invariants over many
// random permutations.
func TestExamPreservesCorrectness(t *testing.T) {
	original := sampleExam()
	for round := 0; round < 200; round++ {
		shuffled := Exam(original, FisherYates{})
		if shuffled.Title != original.Title || len(shuffled.Questions) != len(original.Questions) {
			t.Fatalf("round %d: exam shape changed", round)
		}
		for i, before := range original.Questions {
			after := shuffled.Questions[i]
			if after.ID != before.ID || after.Prompt != before.Prompt || after.Type != before.Type {
				t.Fatalf("round %d: question %d metadata changed", round, i)
			}
			if !reflect.DeepEqual(sortedOptions(before), sortedOptions(after)) {
				t.Fatalf("round %d: option multiset changed: %v vs %v", round, before.Options, after.Options)
			}
			for _, index := range after.Correct {
				if index < 0 || index >= len(after.Options) {
					t.Fatalf("round %d: correct index %d out of range", round, index)
				}
			}
			if !reflect.DeepEqual(correctTexts(before), correctTexts(after)) {
				t.Fatalf("round %d: correct set changed: %v vs %v", round, correctTexts(before), correctTexts(after))
			}
		}
	}
}

// TestExamDoesNotMutateInput verifies shuffling returns a fresh value.
func TestExamDoesNotMutateInput(t *testing.T) {
	original := sampleExam()
	snapshot := original.Clone()
	shuffled := Exam(original, reversePermuter)
	if !reflect.DeepEqual(original, snapshot) {
		t.Fatalf("input exam was mutated")
	}
	shuffled.Questions[0].Options[0] = "changed"
	*shuffled.Questions[0].Explanation = "changed"
	if original.Questions[0].Options[2] == "changed" || *original.Questions[0].Explanation == "changed" {
		t.Fatalf("shuffled exam shares storage with the input")
	}
}

// TestShuffledExamParsesBack verifies an exported shuffle is a valid exam file.
func TestShuffledExamParsesBack(t *testing.T) {
	data, err := json.Marshal(Exam(sampleExam(), reversePermuter))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), `"correct":null`) {
		t.Fatalf("empty correct list encoded as null: %s", data)
	}
	parsed, err := exam.Parse(data)
	if err != nil {
		t.Fatalf("parse shuffled exam: %v", err)
	}
	if got := parsed.Questions[2].Correct; got == nil || len(got) != 0 {
		t.Fatalf("expected empty correct list, got %#v", got)
	}
}

// TestExamUsesFreshPermutationPerQuestion verifies no permutation is reused.
func TestExamUsesFreshPermutationPerQuestion(t *testing.T) {
	var sizes []int
	counting := PermuterFunc(func(n int) []int {
		sizes = append(sizes, n)
		return FisherYates{}.Perm(n)
	})
	Exam(sampleExam(), counting)
	Exam(sampleExam(), counting)
	if !reflect.DeepEqual(sizes, []int{3, 5, 2, 1, 3, 5, 2, 1}) {
		t.Fatalf("expected one permutation per question per call, got %v", sizes)
	}
}

// TestFisherYatesDrawRange verifies each draw is bounded by the current index.
func TestFisherYatesDrawRange(t *testing.T) {
	var bounds []int
	fy := FisherYates{IntN: func(n int) int {
		bounds = append(bounds, n)
		return 0
	}}
	perm := fy.Perm(4)
	if !reflect.DeepEqual(bounds, []int{4, 3, 2}) {
		t.Fatalf("expected draws over [0,i] for i=3..1, got %v", bounds)
	}
	if !reflect.DeepEqual(perm, []int{1, 2, 3, 0}) {
		t.Fatalf("unexpected permutation %v", perm)
	}
	if got := fy.Perm(0); len(got) != 0 {
		t.Fatalf("expected empty permutation, got %v", got)
	}
}

// TestFisherYatesIsUniform checks every ordering of three items shows up
// at roughly the same rate.
func TestFisherYatesIsUniform(t *testing.T) {
	const rounds = 60000
	counts := map[string]int{}
	for i := 0; i < rounds; i++ {
		counts[fmt.Sprint(FisherYates{}.Perm(3))]++
	}
	if len(counts) != 6 {
		t.Fatalf("expected 6 distinct permutations, got %d", len(counts))
	}
	expected := rounds / 6
	for perm, count := range counts {
		if count < expected*9/10 || count > expected*11/10 {
			t.Fatalf("permutation %s drawn %d times, expected about %d", perm, count, expected)
		}
	}
}

// TestQuestionPanicsOnBadPermutation verifies broken providers fail loudly.
func TestQuestionPanicsOnBadPermutation(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Question(sampleExam().Questions[0], PermuterFunc(func(n int) []int { return make([]int, n) }))
}
