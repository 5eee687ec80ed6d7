// Package quiz generates and grades the 20-question subject quizzes that
// feed the entertainment-time ledger.
package quiz

import (
	"time"

	"tymonteam/internal/models"
)

const (
	// QuestionCount is the fixed size of every quiz attempt
	QuestionCount = 20

	// PassPercent is the minimum percentage needed to pass (16/20)
	PassPercent = 80

	// OptionCount is the number of answer options per question
	OptionCount = 4
)

// Question is one multiple-choice question
type Question struct {
	Text    string
	Answer  string
	Options []string
}

// Attempt is one quiz attempt in progress. It is a plain value owned by
// whoever started the quiz; grading consumes it exactly once.
type Attempt struct {
	Subject   models.Subject
	Grade     int // vocabulary grade tier, English only
	Questions []Question
	Index     int
	Score     int
	StartedAt time.Time
}

// Current returns the question waiting for an answer, or ok=false when
// the attempt is complete
func (a *Attempt) Current() (q Question, ok bool) {
	if a.Index >= len(a.Questions) {
		return Question{}, false
	}
	return a.Questions[a.Index], true
}

// Submit records an answer for the current question and advances.
// finished is true once all questions are answered.
func (a *Attempt) Submit(answer string) (correct, finished bool) {
	q, ok := a.Current()
	if !ok {
		return false, true
	}

	correct = answer == q.Answer
	if correct {
		a.Score++
	}
	a.Index++

	return correct, a.Index >= len(a.Questions)
}

// Result is the graded outcome of a completed attempt
type Result struct {
	Subject    models.Subject
	Grade      int
	Score      int
	Total      int
	Percentage float64
	Passed     bool
}

// Result computes the final result for the attempt
func (a *Attempt) Result() Result {
	total := len(a.Questions)
	percentage := 0.0
	if total > 0 {
		percentage = float64(a.Score) / float64(total) * 100
	}

	return Result{
		Subject:    a.Subject,
		Grade:      a.Grade,
		Score:      a.Score,
		Total:      total,
		Percentage: percentage,
		Passed:     percentage >= PassPercent,
	}
}
