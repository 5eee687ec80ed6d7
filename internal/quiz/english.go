package quiz

import (
	"fmt"
	"math/rand"
	"time"

	"tymonteam/internal/models"
	"tymonteam/internal/validation"
	"tymonteam/internal/vocab"
)

// NewEnglishAttempt builds a 20-question vocabulary quiz for one grade
// tier. Each question asks for a translation in a random direction with
// three distractors drawn from the same grade's word list.
func NewEnglishAttempt(grade int) (*Attempt, error) {
	if err := validation.ValidateGrade(grade); err != nil {
		return nil, err
	}

	words := vocab.ByGrade(grade)
	selected := make([]vocab.Word, len(words))
	copy(selected, words)
	rand.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})

	count := QuestionCount
	if count > len(selected) {
		count = len(selected)
	}
	selected = selected[:count]

	questions := make([]Question, 0, count)
	for _, word := range selected {
		if rand.Intn(2) == 0 {
			questions = append(questions, translationQuestion(word.English, word.Polish, polishWords(words)))
		} else {
			questions = append(questions, translationQuestion(word.Polish, word.English, englishWords(words)))
		}
	}

	return &Attempt{
		Subject:   models.SubjectEnglish,
		Grade:     grade,
		Questions: questions,
		StartedAt: time.Now(),
	}, nil
}

func translationQuestion(prompt, answer string, pool []string) Question {
	return Question{
		Text:    fmt.Sprintf("Jak przetłumaczyć: \"%s\"?", prompt),
		Answer:  answer,
		Options: shuffledWordOptions(answer, pool),
	}
}

func polishWords(words []vocab.Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.Polish
	}
	return out
}

func englishWords(words []vocab.Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.English
	}
	return out
}

// shuffledWordOptions picks three distinct distractors from the pool and
// shuffles them in with the correct answer
func shuffledWordOptions(answer string, pool []string) []string {
	wrong := make(map[string]bool)
	for len(wrong) < OptionCount-1 && len(wrong) < len(pool)-1 {
		candidate := pool[rand.Intn(len(pool))]
		if candidate != answer {
			wrong[candidate] = true
		}
	}

	options := make([]string, 0, OptionCount)
	options = append(options, answer)
	for w := range wrong {
		options = append(options, w)
	}
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}
