package service

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"tymonteam/internal/database"
	"tymonteam/internal/models"
	"tymonteam/internal/quiz"
	"tymonteam/internal/repository"
)

type countingLedger struct {
	mu      sync.Mutex
	credits []int
}

func (l *countingLedger) Credit(username string, minutes int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.credits = append(l.credits, minutes)
	return nil
}

func newQuizTestEnv(t *testing.T) (*QuizService, *countingLedger, int64) {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	profile, err := repository.NewProfileRepository(db).CreateProfile("tymon")
	if err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	ledger := &countingLedger{}
	svc := NewQuizService(repository.NewScoreRepository(db), ledger, 10)
	return svc, ledger, profile.ID
}

// answerAll drives the attempt to completion, getting the first
// rightAnswers questions right and the rest wrong
func answerAll(t *testing.T, svc *QuizService, profileID int64, rightAnswers int) {
	t.Helper()
	for i := 0; ; i++ {
		q, _, _, err := svc.CurrentQuestion(profileID)
		if err != nil {
			t.Fatalf("CurrentQuestion: %v", err)
		}
		answer := q.Answer
		if i >= rightAnswers {
			answer = q.Answer + " wrong"
		}
		_, finished, err := svc.SubmitAnswer("tymon", profileID, answer)
		if err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
		if finished {
			return
		}
	}
}

func TestPassedQuizCreditsRewardOnce(t *testing.T) {
	svc, ledger, profileID := newQuizTestEnv(t)

	if _, err := svc.StartAttempt(profileID, models.SubjectMath, 0); err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	answerAll(t, svc, profileID, quiz.QuestionCount)

	if len(ledger.credits) != 1 || ledger.credits[0] != 10 {
		t.Fatalf("credits = %v, want one credit of 10 minutes", ledger.credits)
	}

	// The attempt is consumed; a retried submit cannot credit again
	if _, _, err := svc.SubmitAnswer("tymon", profileID, "anything"); !errors.Is(err, ErrNoAttempt) {
		t.Errorf("retried submit error = %v, want ErrNoAttempt", err)
	}
	if len(ledger.credits) != 1 {
		t.Errorf("credits after retry = %v, want still one", ledger.credits)
	}

	result, err := svc.LastResult(profileID)
	if err != nil {
		t.Fatalf("LastResult: %v", err)
	}
	if !result.Passed || result.Score != quiz.QuestionCount {
		t.Errorf("result = %+v, want a perfect pass", result)
	}
}

func TestFailedQuizCreditsNothing(t *testing.T) {
	svc, ledger, profileID := newQuizTestEnv(t)

	if _, err := svc.StartAttempt(profileID, models.SubjectMath, 0); err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	answerAll(t, svc, profileID, 15) // 75%, below the pass line

	if len(ledger.credits) != 0 {
		t.Errorf("credits = %v, want none for a failed quiz", ledger.credits)
	}

	result, err := svc.LastResult(profileID)
	if err != nil {
		t.Fatalf("LastResult: %v", err)
	}
	if result.Passed {
		t.Error("15/20 should not pass")
	}

	history, err := svc.History(profileID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history[models.SubjectMath]) != 1 {
		t.Errorf("math history length = %d, want the failed attempt recorded", len(history[models.SubjectMath]))
	}
}

func TestStartAttemptReplacesExisting(t *testing.T) {
	svc, _, profileID := newQuizTestEnv(t)

	if _, err := svc.StartAttempt(profileID, models.SubjectMath, 0); err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	// Answer a few questions, then abandon for a fresh English quiz
	for i := 0; i < 3; i++ {
		q, _, _, err := svc.CurrentQuestion(profileID)
		if err != nil {
			t.Fatalf("CurrentQuestion: %v", err)
		}
		if _, _, err := svc.SubmitAnswer("tymon", profileID, q.Answer); err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
	}

	if _, err := svc.StartAttempt(profileID, models.SubjectEnglish, 1); err != nil {
		t.Fatalf("StartAttempt (replace): %v", err)
	}
	_, number, _, err := svc.CurrentQuestion(profileID)
	if err != nil {
		t.Fatalf("CurrentQuestion: %v", err)
	}
	if number != 1 {
		t.Errorf("question number after replacement = %d, want 1", number)
	}
}

func TestStartAttemptRejectsUnknownSubject(t *testing.T) {
	svc, _, profileID := newQuizTestEnv(t)

	if _, err := svc.StartAttempt(profileID, models.Subject("history"), 0); !errors.Is(err, ErrUnknownSubject) {
		t.Errorf("error = %v, want ErrUnknownSubject", err)
	}
}

func TestResultBeforeAnyQuiz(t *testing.T) {
	svc, _, profileID := newQuizTestEnv(t)

	if _, err := svc.LastResult(profileID); !errors.Is(err, ErrNoResult) {
		t.Errorf("LastResult error = %v, want ErrNoResult", err)
	}
	if _, _, _, err := svc.CurrentQuestion(profileID); !errors.Is(err, ErrNoAttempt) {
		t.Errorf("CurrentQuestion error = %v, want ErrNoAttempt", err)
	}
}
