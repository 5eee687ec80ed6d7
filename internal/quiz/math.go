package quiz

import (
	"fmt"
	"math/rand"
	"time"

	"tymonteam/internal/models"
)

// NewMathAttempt builds a 20-question multiplication and division quiz.
// Operands run 2-9; division problems are constructed from a product so
// they always divide evenly.
func NewMathAttempt() *Attempt {
	questions := make([]Question, 0, QuestionCount)

	for i := 0; i < QuestionCount; i++ {
		if rand.Intn(2) == 0 {
			questions = append(questions, multiplicationQuestion())
		} else {
			questions = append(questions, divisionQuestion())
		}
	}

	return &Attempt{
		Subject:   models.SubjectMath,
		Questions: questions,
		StartedAt: time.Now(),
	}
}

func multiplicationQuestion() Question {
	a := smallFactor()
	b := smallFactor()
	answer := a * b

	return Question{
		Text:    fmt.Sprintf("%d × %d = ?", a, b),
		Answer:  fmt.Sprintf("%d", answer),
		Options: shuffledOptions(answer, wrongNumbers(answer, 5)),
	}
}

func divisionQuestion() Question {
	divisor := smallFactor()
	quotient := smallFactor()
	dividend := divisor * quotient

	return Question{
		Text:    fmt.Sprintf("%d ÷ %d = ?", dividend, divisor),
		Answer:  fmt.Sprintf("%d", quotient),
		Options: shuffledOptions(quotient, wrongNumbers(quotient, 3)),
	}
}

// PracticeQuestion is a single free-answer question for the
// multiplication table trainer
type PracticeQuestion struct {
	A, B int
}

// NewPracticeQuestion returns a random trainer question
func NewPracticeQuestion() PracticeQuestion {
	return PracticeQuestion{A: smallFactor(), B: smallFactor()}
}

// Text renders the question prompt
func (q PracticeQuestion) Text() string {
	return fmt.Sprintf("%d × %d = ?", q.A, q.B)
}

// Check reports whether the typed answer is right
func (q PracticeQuestion) Check(answer int) bool {
	return answer == q.A*q.B
}

// smallFactor returns a number from 2-9; 1 and 10 make the problems trivial
func smallFactor() int {
	return rand.Intn(8) + 2
}

// wrongNumbers generates three distinct positive distractors near the
// correct answer, at most spread away from it
func wrongNumbers(correct, spread int) []int {
	wrong := make(map[int]bool)
	for len(wrong) < OptionCount-1 {
		offset := rand.Intn(2*spread+1) - spread
		candidate := correct + offset
		if candidate <= 0 {
			candidate = correct + abs(offset) + 1
		}
		if candidate != correct {
			wrong[candidate] = true
		}
	}

	numbers := make([]int, 0, len(wrong))
	for n := range wrong {
		numbers = append(numbers, n)
	}
	return numbers
}

func shuffledOptions(answer int, wrong []int) []string {
	options := make([]string, 0, OptionCount)
	options = append(options, fmt.Sprintf("%d", answer))
	for _, n := range wrong {
		options = append(options, fmt.Sprintf("%d", n))
	}
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
