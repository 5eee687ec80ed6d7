package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"tymonteam/internal/models"
	"tymonteam/internal/quiz"
	"tymonteam/internal/repository"
)

var (
	ErrNoAttempt      = errors.New("no quiz attempt in progress")
	ErrNoResult       = errors.New("no quiz result available")
	ErrUnknownSubject = errors.New("unknown quiz subject")
)

// LedgerCreditor credits earned entertainment minutes to a profile
type LedgerCreditor interface {
	Credit(username string, minutes int) error
}

// QuizService runs quiz attempts and hands out the screen-time reward.
// Attempts live in memory keyed by profile ID; an abandoned attempt is
// simply replaced the next time the kid starts a quiz.
type QuizService struct {
	mu       sync.Mutex
	attempts map[int64]*quiz.Attempt
	results  map[int64]quiz.Result

	scoreRepo     *repository.ScoreRepository
	ledger        LedgerCreditor
	rewardMinutes int
}

// NewQuizService creates a new quiz service
func NewQuizService(scoreRepo *repository.ScoreRepository, ledger LedgerCreditor, rewardMinutes int) *QuizService {
	return &QuizService{
		attempts:      make(map[int64]*quiz.Attempt),
		results:       make(map[int64]quiz.Result),
		scoreRepo:     scoreRepo,
		ledger:        ledger,
		rewardMinutes: rewardMinutes,
	}
}

// StartAttempt begins a fresh attempt for the profile, replacing any
// attempt already in progress
func (s *QuizService) StartAttempt(profileID int64, subject models.Subject, grade int) (*quiz.Attempt, error) {
	var attempt *quiz.Attempt
	var err error

	switch subject {
	case models.SubjectMath:
		attempt = quiz.NewMathAttempt()
	case models.SubjectEnglish:
		attempt, err = quiz.NewEnglishAttempt(grade)
		if err != nil {
			return nil, err
		}
	default:
		return nil, ErrUnknownSubject
	}

	s.mu.Lock()
	s.attempts[profileID] = attempt
	s.mu.Unlock()

	return attempt, nil
}

// CurrentQuestion returns the question the profile's attempt is waiting
// on, along with progress numbers for the view
func (s *QuizService) CurrentQuestion(profileID int64) (q quiz.Question, number, total int, err error) {
	s.mu.Lock()
	attempt, ok := s.attempts[profileID]
	s.mu.Unlock()
	if !ok {
		return quiz.Question{}, 0, 0, ErrNoAttempt
	}

	q, ok = attempt.Current()
	if !ok {
		return quiz.Question{}, 0, 0, ErrNoAttempt
	}
	return q, attempt.Index + 1, len(attempt.Questions), nil
}

// SubmitAnswer records an answer. When the last question is answered the
// attempt is consumed: the score is persisted, the reward minutes are
// credited if the attempt passed, and the result is kept for the results
// page. The attempt is removed before crediting, so a retried request
// cannot earn the reward twice.
func (s *QuizService) SubmitAnswer(username string, profileID int64, answer string) (correct, finished bool, err error) {
	s.mu.Lock()
	attempt, ok := s.attempts[profileID]
	if !ok {
		s.mu.Unlock()
		return false, false, ErrNoAttempt
	}

	correct, finished = attempt.Submit(answer)
	if !finished {
		s.mu.Unlock()
		return correct, false, nil
	}

	result := attempt.Result()
	delete(s.attempts, profileID)
	s.results[profileID] = result
	s.mu.Unlock()

	record := &models.ScoreRecord{
		ProfileID:  profileID,
		Subject:    result.Subject,
		Score:      result.Score,
		Total:      result.Total,
		Percentage: result.Percentage,
		Passed:     result.Passed,
		Grade:      result.Grade,
		RecordedAt: time.Now(),
	}
	if _, err := s.scoreRepo.Append(record); err != nil {
		return correct, true, fmt.Errorf("failed to record quiz score: %w", err)
	}

	if result.Passed {
		if err := s.ledger.Credit(username, s.rewardMinutes); err != nil {
			return correct, true, fmt.Errorf("failed to credit reward minutes: %w", err)
		}
	}

	return correct, true, nil
}

// LastResult returns the most recent graded result for the profile
func (s *QuizService) LastResult(profileID int64) (quiz.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, ok := s.results[profileID]
	if !ok {
		return quiz.Result{}, ErrNoResult
	}
	return result, nil
}

// History returns all recorded scores for the profile grouped by subject
func (s *QuizService) History(profileID int64) (map[models.Subject][]models.ScoreRecord, error) {
	return s.scoreRepo.ListAll(profileID)
}
