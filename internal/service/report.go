package service

import (
	"fmt"
	"time"

	"tymonteam/internal/repository"
)

// BuildWeeklySummaries collects per-profile quiz activity since the
// cutoff, for the parent progress email
func BuildWeeklySummaries(profileRepo *repository.ProfileRepository, scoreRepo *repository.ScoreRepository, cutoff time.Time) ([]ProfileSummary, error) {
	profiles, err := profileRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	summaries := make([]ProfileSummary, 0, len(profiles))
	for _, p := range profiles {
		attempts, passed, err := scoreRepo.CountSince(p.ID, cutoff)
		if err != nil {
			return nil, fmt.Errorf("failed to count scores for %s: %w", p.Username, err)
		}
		summaries = append(summaries, ProfileSummary{
			Username:         p.Username,
			QuizAttempts:     attempts,
			QuizzesPassed:    passed,
			EarnedMinutes:    p.Ledger.EarnedMinutes,
			UsedMinutes:      p.Ledger.UsedMinutes,
			RemainingMinutes: p.Ledger.RemainingMinutes(),
		})
	}
	return summaries, nil
}
