package grading

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mentora-app/mentora-backend/internal/domain/quiz"
)

func TestMatch(t *testing.T) {
	cases := []struct {
		name      string
		correct   string
		submitted string
		want      bool
	}{
		{"exact", "B", "B", true},
		{"trim and casefold", " B ", "b", true},
		{"whitespace submission", "B", "   ", false},
		{"empty submission", "B", "", false},
		{"empty key empty submission", "", "", false},
		{"empty key whitespace submission", "  ", " ", false},
		{"mismatch", "A", "b", false},
		{"true false", "True", "  true", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Match(tc.correct, tc.submitted); got != tc.want {
				t.Fatalf("Match(%q, %q) = %v, want %v", tc.correct, tc.submitted, got, tc.want)
			}
		})
	}
}

func mcQuestion(text string, options ...quiz.Option) quiz.Question {
	return quiz.Question{ID: uuid.New(), Text: text, Type: quiz.QuestionMultipleChoice, Options: options}
}

func opt(text string, correct bool) quiz.Option {
	return quiz.Option{ID: uuid.New(), Text: text, IsCorrect: correct}
}

func TestScore(t *testing.T) {
	q1 := mcQuestion("q1", opt("A", false), opt("B", true))
	q2 := quiz.Question{
		ID:      uuid.New(),
		Text:    "q2",
		Type:    quiz.QuestionTrueFalse,
		Options: []quiz.Option{opt("True", true), opt("False", false)},
	}
	q3 := quiz.Question{ID: uuid.New(), Text: "q3", Type: quiz.QuestionEssay}
	questions := []quiz.Question{q1, q2, q3}

	answers := map[uuid.UUID]string{q1.ID: "B", q2.ID: "True", q3.ID: "anything"}
	if got := Score(questions, answers); got != 100.00 {
		t.Fatalf("all correct: got %v, want 100.00", got)
	}

	answers[q1.ID] = "A"
	if got := Score(questions, answers); got != 50.00 {
		t.Fatalf("one of two: got %v, want 50.00", got)
	}
}

func TestScoreAllEssay(t *testing.T) {
	q1 := quiz.Question{ID: uuid.New(), Type: quiz.QuestionEssay}
	q2 := quiz.Question{ID: uuid.New(), Type: quiz.QuestionEssay}
	answers := map[uuid.UUID]string{q1.ID: "long text", q2.ID: "more text"}
	if got := Score([]quiz.Question{q1, q2}, answers); got != 0 {
		t.Fatalf("all-essay quiz: got %v, want 0", got)
	}
}

func TestScoreMissingAnswerCountsAsEmpty(t *testing.T) {
	q1 := mcQuestion("q1", opt("B", true))
	q2 := mcQuestion("q2", opt("C", true))
	answers := map[uuid.UUID]string{q1.ID: "b"}
	if got := Score([]quiz.Question{q1, q2}, answers); got != 50.00 {
		t.Fatalf("missing answer: got %v, want 50.00", got)
	}
}

func TestScoreExcludesQuestionWithoutCorrectOption(t *testing.T) {
	broken := mcQuestion("broken", opt("A", false), opt("B", false))
	good := mcQuestion("good", opt("B", true))
	answers := map[uuid.UUID]string{broken.ID: "A", good.ID: "B"}
	if got := Score([]quiz.Question{broken, good}, answers); got != 100.00 {
		t.Fatalf("broken question excluded: got %v, want 100.00", got)
	}
}

func TestScoreRoundsToTwoDecimals(t *testing.T) {
	questions := []quiz.Question{
		mcQuestion("q1", opt("A", true)),
		mcQuestion("q2", opt("A", true)),
		mcQuestion("q3", opt("A", true)),
	}
	answers := map[uuid.UUID]string{questions[0].ID: "A"}
	if got := Score(questions, answers); got != 33.33 {
		t.Fatalf("1/3: got %v, want 33.33", got)
	}
	answers[questions[1].ID] = "A"
	if got := Score(questions, answers); got != 66.67 {
		t.Fatalf("2/3: got %v, want 66.67", got)
	}
}

func TestCorrectOptionPicksFirstWhenSeveralMarked(t *testing.T) {
	q := mcQuestion("q", opt("first", true), opt("second", true))
	key, ok := CorrectOption(q)
	if !ok || key.Text != "first" {
		t.Fatalf("got (%q, %v), want (first, true)", key.Text, ok)
	}
}
