// Package grading computes quiz scores from stored questions and
// answers. It only computes values; eligibility and authorization are
// decided by the services before anything here runs.
package grading

import (
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/mentora-app/mentora-backend/internal/domain/quiz"
)

// Normalize prepares an answer or option text for comparison.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Match reports whether a submitted answer equals the correct key.
// An empty submission never matches, even when the key itself
// normalizes to the empty string.
func Match(correct, submitted string) bool {
	sub := Normalize(submitted)
	if sub == "" {
		return false
	}
	return sub == Normalize(correct)
}

// CorrectOption returns the option marked correct for a question, or
// false when none is marked. When several options are flagged correct
// (a data-integrity gap the store tolerates), the first one in stored
// order is the key.
func CorrectOption(q quiz.Question) (quiz.Option, bool) {
	for _, opt := range q.Options {
		if opt.IsCorrect {
			return opt, true
		}
	}
	return quiz.Option{}, false
}

// Countable reports whether a question participates in scoring: the
// type must be auto-gradable and at least one option must be marked
// correct. Essay questions are never countable.
func Countable(q quiz.Question) bool {
	if !quiz.AutoGradable(q.Type) {
		return false
	}
	_, ok := CorrectOption(q)
	return ok
}

// Score computes the 0-100 score for a set of questions against the
// submitted answers, keyed by question id. Missing answers count as
// empty text. A quiz with no countable questions scores 0.
func Score(questions []quiz.Question, answers map[uuid.UUID]string) float64 {
	countable := 0
	correct := 0
	for _, q := range questions {
		key, ok := CorrectOption(q)
		if !quiz.AutoGradable(q.Type) || !ok {
			continue
		}
		countable++
		if Match(key.Text, answers[q.ID]) {
			correct++
		}
	}
	denominator := countable
	if denominator == 0 {
		denominator = 1
	}
	return Round2(float64(correct) / float64(denominator) * 100)
}

// Round2 rounds half-up to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
