package models

import "time"

// UserProfile represents a child's profile. Profiles are created on first
// login with a new username and are never deleted by the learning flow
// (the admin panel may remove them).
type UserProfile struct {
	ID        int64
	Username  string // original casing as first entered; lookups fold case
	CreatedAt time.Time
	Ledger    TimeLedger
}

// TimeLedger tracks entertainment minutes earned through quizzes and
// minutes consumed in the entertainment zone. Both counters only ever
// grow; access is governed solely by RemainingMinutes.
type TimeLedger struct {
	EarnedMinutes int
	UsedMinutes   int
	LastSession   SessionState
}

// RemainingMinutes returns the minutes still available for the
// entertainment zone, never negative even if used overtook earned
// through clock skew.
func (l TimeLedger) RemainingMinutes() int {
	remaining := l.EarnedMinutes - l.UsedMinutes
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CanAccess reports whether the entertainment zone gate is open.
func (l TimeLedger) CanAccess() bool {
	return l.RemainingMinutes() > 0
}

// SessionState describes the per-user entertainment countdown. At most one
// session exists per profile.
//
// StartedAt is the wall-clock moment the session was entered and is the
// only input to usage accounting at finalize. AnchorAt/RemainingSeconds
// form a checkpoint pair: RemainingSeconds is the countdown value as it
// was at AnchorAt, so a resume after an unclean shutdown recovers the true
// remaining time from the wall clock alone, regardless of how stale the
// last checkpoint is.
type SessionState struct {
	Active           bool
	StartedAt        time.Time
	AnchorAt         time.Time
	RemainingSeconds int
}

// RemainingAt returns the countdown value at the given instant, clamping
// backward clock skew to zero elapsed.
func (s SessionState) RemainingAt(now time.Time) int {
	if !s.Active {
		return 0
	}
	elapsed := int(now.Sub(s.AnchorAt).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := s.RemainingSeconds - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}
