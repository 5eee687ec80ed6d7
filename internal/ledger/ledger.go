package ledger

import (
	"fmt"
	"time"

	"tymonteam/internal/models"
)

// Clock supplies wall-clock time. Injected so elapsed-time reconciliation
// is testable without sleeping.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ProfileStore is the slice of the profile repository the ledger needs.
// Every transition does a fresh read-modify-write against it; the last
// write wins, which is the accepted model for a single logical user.
type ProfileStore interface {
	GetByUsername(username string) (*models.UserProfile, error)
	GetActiveSessions() ([]models.UserProfile, error)
	UpdateLedger(profileID int64, ledger models.TimeLedger) error
}

// Service owns every transition of the entertainment-time ledger:
// crediting quiz rewards, the session state machine, and usage
// accounting. A session moves Inactive -> Active on begin, stays Active
// through ticks, checkpoints and resumes, and returns to Inactive only
// through Finalize.
type Service struct {
	profiles ProfileStore
	clock    Clock
}

// NewService creates a ledger service. A nil clock selects SystemClock.
func NewService(profiles ProfileStore, clock Clock) *Service {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Service{profiles: profiles, clock: clock}
}

// Credit adds earned minutes to a profile's ledger and persists it
func (s *Service) Credit(username string, minutes int) error {
	profile, err := s.profiles.GetByUsername(username)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return fmt.Errorf("no profile for %q", username)
	}

	profile.Ledger.EarnedMinutes += minutes
	return s.profiles.UpdateLedger(profile.ID, profile.Ledger)
}

// Adjust applies a parent-made correction to the earned balance. Unlike
// Credit the delta may be negative; earned never drops below zero.
func (s *Service) Adjust(username string, deltaMinutes int) error {
	profile, err := s.profiles.GetByUsername(username)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return fmt.Errorf("no profile for %q", username)
	}

	profile.Ledger.EarnedMinutes += deltaMinutes
	if profile.Ledger.EarnedMinutes < 0 {
		profile.Ledger.EarnedMinutes = 0
	}
	return s.profiles.UpdateLedger(profile.ID, profile.Ledger)
}

// Remaining returns the minutes still available to a profile. A missing
// profile reads as zero minutes, which is the correct default.
func (s *Service) Remaining(username string) (int, error) {
	profile, err := s.profiles.GetByUsername(username)
	if err != nil {
		return 0, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return 0, nil
	}
	return profile.Ledger.RemainingMinutes(), nil
}

// CanAccess is the gate predicate for the entertainment zone. It always
// re-reads the persisted ledger so a stale in-memory copy can never hold
// the gate open.
func (s *Service) CanAccess(username string) (bool, error) {
	remaining, err := s.Remaining(username)
	if err != nil {
		return false, err
	}
	return remaining > 0, nil
}

// BeginOrResume enters the entertainment session for a profile and
// returns the countdown seconds to run with.
//
// With no active session a new one starts at remaining()*60 seconds.
// With an active session (a reload or crash skipped Finalize) the true
// remaining time is recovered from the wall clock: the checkpointed
// countdown minus the seconds elapsed since its anchor, clamped so a
// backward clock jump never adds time. The recovered value is re-anchored
// at now and persisted; the original start time is kept for usage
// accounting.
func (s *Service) BeginOrResume(username string) (int, error) {
	now := s.clock.Now()

	profile, err := s.profiles.GetByUsername(username)
	if err != nil {
		return 0, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return 0, fmt.Errorf("no profile for %q", username)
	}

	session := profile.Ledger.LastSession

	if !session.Active {
		session = models.SessionState{
			Active:           true,
			StartedAt:        now,
			AnchorAt:         now,
			RemainingSeconds: profile.Ledger.RemainingMinutes() * 60,
		}
	} else {
		session.RemainingSeconds = session.RemainingAt(now)
		session.AnchorAt = now
	}

	profile.Ledger.LastSession = session
	if err := s.profiles.UpdateLedger(profile.ID, profile.Ledger); err != nil {
		return 0, err
	}

	return session.RemainingSeconds, nil
}

// Checkpoint persists the in-flight countdown value, re-anchored at now.
// A checkpoint is only a staleness-bounded hint; if the session was
// finalized in the meantime this is a no-op.
func (s *Service) Checkpoint(username string, secondsLeft int) error {
	now := s.clock.Now()

	profile, err := s.profiles.GetByUsername(username)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil || !profile.Ledger.LastSession.Active {
		return nil
	}

	if secondsLeft < 0 {
		secondsLeft = 0
	}
	profile.Ledger.LastSession.RemainingSeconds = secondsLeft
	profile.Ledger.LastSession.AnchorAt = now

	return s.profiles.UpdateLedger(profile.ID, profile.Ledger)
}

// Finalize ends the active session, folding its elapsed wall-clock time
// into used minutes. Usage is computed from the original session start,
// floored to whole minutes, clamped at zero for backward clock skew and
// capped at the minutes the session was entered with so a late finalize
// cannot overdraw the ledger. Finalizing an already-inactive session is
// a no-op, so a duplicated exit can never double-count.
func (s *Service) Finalize(username string) (int, error) {
	profile, err := s.profiles.GetByUsername(username)
	if err != nil {
		return 0, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil || !profile.Ledger.LastSession.Active {
		return 0, nil
	}
	return s.finalizeProfile(profile)
}

// FinalizeExpired finalizes every active session whose wall-clock
// remaining time has run out. This is the recovery path for sessions
// orphaned by a crash or restart; sessions with time left are untouched
// so their owners can resume.
func (s *Service) FinalizeExpired() (int, error) {
	now := s.clock.Now()

	profiles, err := s.profiles.GetActiveSessions()
	if err != nil {
		return 0, fmt.Errorf("failed to list active sessions: %w", err)
	}

	finalized := 0
	for i := range profiles {
		profile := &profiles[i]
		if profile.Ledger.LastSession.RemainingAt(now) > 0 {
			continue
		}
		if _, err := s.finalizeProfile(profile); err != nil {
			return finalized, err
		}
		finalized++
	}
	return finalized, nil
}

func (s *Service) finalizeProfile(profile *models.UserProfile) (int, error) {
	now := s.clock.Now()
	session := profile.Ledger.LastSession

	elapsedMinutes := int(now.Sub(session.StartedAt) / time.Minute)
	if elapsedMinutes < 0 {
		elapsedMinutes = 0
	}
	if budget := profile.Ledger.RemainingMinutes(); elapsedMinutes > budget {
		elapsedMinutes = budget
	}

	profile.Ledger.UsedMinutes += elapsedMinutes
	profile.Ledger.LastSession = models.SessionState{}

	if err := s.profiles.UpdateLedger(profile.ID, profile.Ledger); err != nil {
		return 0, err
	}
	return elapsedMinutes, nil
}
