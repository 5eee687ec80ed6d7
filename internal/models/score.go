package models

import "time"

// Subject identifies a quiz subject
type Subject string

const (
	SubjectMath    Subject = "math"
	SubjectEnglish Subject = "english"
)

// Valid reports whether the subject is one this application knows
func (s Subject) Valid() bool {
	return s == SubjectMath || s == SubjectEnglish
}

// ScoreRecord is one graded quiz attempt. Immutable once appended; the
// per-subject history preserves insertion order.
type ScoreRecord struct {
	ID         int64
	ProfileID  int64
	Subject    Subject
	Score      int
	Total      int
	Percentage float64
	Passed     bool
	Grade      int // vocabulary grade tier, English quizzes only (0 for math)
	RecordedAt time.Time
}
