package quiz

import (
	"strconv"
	"testing"

	"tymonteam/internal/models"
)

// runAttempt answers every question, getting correct answers right and
// wrong answers deliberately wrong
func runAttempt(t *testing.T, a *Attempt, rightAnswers int) {
	t.Helper()
	for i := 0; i < len(a.Questions); i++ {
		q, ok := a.Current()
		if !ok {
			t.Fatalf("attempt ran out of questions at %d", i)
		}
		answer := q.Answer
		if i >= rightAnswers {
			answer = q.Answer + " wrong"
		}
		a.Submit(answer)
	}
}

func TestGradePassBoundary(t *testing.T) {
	tests := []struct {
		name       string
		right      int
		wantPassed bool
	}{
		{"perfect score", 20, true},
		{"exactly 80 percent", 16, true},
		{"one below the bar", 15, false},
		{"zero", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewMathAttempt()
			runAttempt(t, a, tt.right)

			result := a.Result()
			if result.Score != tt.right {
				t.Errorf("Score = %d, want %d", result.Score, tt.right)
			}
			if result.Passed != tt.wantPassed {
				t.Errorf("Passed = %v, want %v", result.Passed, tt.wantPassed)
			}
			if result.Total != QuestionCount {
				t.Errorf("Total = %d, want %d", result.Total, QuestionCount)
			}
		})
	}
}

func TestMathAttemptShape(t *testing.T) {
	a := NewMathAttempt()

	if a.Subject != models.SubjectMath {
		t.Errorf("Subject = %q, want math", a.Subject)
	}
	if len(a.Questions) != QuestionCount {
		t.Fatalf("question count = %d, want %d", len(a.Questions), QuestionCount)
	}

	for i, q := range a.Questions {
		if len(q.Options) != OptionCount {
			t.Errorf("question %d has %d options, want %d", i, len(q.Options), OptionCount)
		}

		found := false
		seen := make(map[string]bool)
		for _, opt := range q.Options {
			if seen[opt] {
				t.Errorf("question %d has duplicate option %q", i, opt)
			}
			seen[opt] = true
			if opt == q.Answer {
				found = true
			}
		}
		if !found {
			t.Errorf("question %d: answer %q not among options %v", i, q.Answer, q.Options)
		}

		if _, err := strconv.Atoi(q.Answer); err != nil {
			t.Errorf("question %d: answer %q is not a number", i, q.Answer)
		}
	}
}

func TestEnglishAttemptShape(t *testing.T) {
	for grade := 1; grade <= 3; grade++ {
		a, err := NewEnglishAttempt(grade)
		if err != nil {
			t.Fatalf("NewEnglishAttempt(%d) error = %v", grade, err)
		}
		if a.Subject != models.SubjectEnglish {
			t.Errorf("Subject = %q, want english", a.Subject)
		}
		if a.Grade != grade {
			t.Errorf("Grade = %d, want %d", a.Grade, grade)
		}
		if len(a.Questions) == 0 || len(a.Questions) > QuestionCount {
			t.Errorf("grade %d question count = %d, want 1..%d", grade, len(a.Questions), QuestionCount)
		}

		for i, q := range a.Questions {
			if len(q.Options) != OptionCount {
				t.Errorf("grade %d question %d has %d options, want %d", grade, i, len(q.Options), OptionCount)
			}
			found := false
			for _, opt := range q.Options {
				if opt == q.Answer {
					found = true
				}
			}
			if !found {
				t.Errorf("grade %d question %d: answer not among options", grade, i)
			}
		}
	}
}

func TestEnglishAttemptRejectsBadGrade(t *testing.T) {
	for _, grade := range []int{0, 4, -1} {
		if _, err := NewEnglishAttempt(grade); err == nil {
			t.Errorf("NewEnglishAttempt(%d) should fail", grade)
		}
	}
}

func TestSubmitPastEndIsFinished(t *testing.T) {
	a := NewMathAttempt()
	runAttempt(t, a, 20)

	if _, ok := a.Current(); ok {
		t.Error("Current() should report done after last question")
	}
	correct, finished := a.Submit("anything")
	if correct || !finished {
		t.Errorf("Submit past end = (%v, %v), want (false, true)", correct, finished)
	}
	if a.Score != 20 {
		t.Errorf("Score = %d, extra submit must not change it", a.Score)
	}
}

func TestPracticeQuestion(t *testing.T) {
	for i := 0; i < 50; i++ {
		q := NewPracticeQuestion()
		if q.A < 2 || q.A > 9 || q.B < 2 || q.B > 9 {
			t.Fatalf("factors %dx%d outside 2-9", q.A, q.B)
		}
		if !q.Check(q.A * q.B) {
			t.Errorf("Check(%d) = false for %dx%d", q.A*q.B, q.A, q.B)
		}
		if q.Check(q.A*q.B + 1) {
			t.Errorf("Check accepted a wrong answer for %dx%d", q.A, q.B)
		}
	}
}
