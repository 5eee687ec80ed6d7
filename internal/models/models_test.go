package models

import (
	"testing"
	"time"
)

func TestTimeLedgerRemainingMinutes(t *testing.T) {
	tests := []struct {
		name   string
		earned int
		used   int
		want   int
	}{
		{"fresh ledger", 0, 0, 0},
		{"unspent credit", 10, 0, 10},
		{"partially spent", 30, 12, 18},
		{"fully spent", 20, 20, 0},
		{"overspent clamps to zero", 10, 15, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := TimeLedger{EarnedMinutes: tt.earned, UsedMinutes: tt.used}
			if got := l.RemainingMinutes(); got != tt.want {
				t.Errorf("RemainingMinutes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTimeLedgerCanAccess(t *testing.T) {
	if (TimeLedger{EarnedMinutes: 10, UsedMinutes: 10}).CanAccess() {
		t.Error("exhausted ledger should not grant access")
	}
	if (TimeLedger{}).CanAccess() {
		t.Error("empty ledger should not grant access")
	}
	if !(TimeLedger{EarnedMinutes: 10, UsedMinutes: 9}).CanAccess() {
		t.Error("one remaining minute should grant access")
	}
}

func TestSessionStateRemainingAt(t *testing.T) {
	anchor := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		state SessionState
		now   time.Time
		want  int
	}{
		{
			"at the anchor",
			SessionState{Active: true, AnchorAt: anchor, RemainingSeconds: 600},
			anchor,
			600,
		},
		{
			"ninety seconds later",
			SessionState{Active: true, AnchorAt: anchor, RemainingSeconds: 600},
			anchor.Add(90 * time.Second),
			510,
		},
		{
			"past exhaustion clamps to zero",
			SessionState{Active: true, AnchorAt: anchor, RemainingSeconds: 60},
			anchor.Add(5 * time.Minute),
			0,
		},
		{
			"backward clock charges nothing",
			SessionState{Active: true, AnchorAt: anchor, RemainingSeconds: 600},
			anchor.Add(-10 * time.Minute),
			600,
		},
		{
			"inactive session is zero",
			SessionState{Active: false, AnchorAt: anchor, RemainingSeconds: 600},
			anchor.Add(time.Second),
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.RemainingAt(tt.now); got != tt.want {
				t.Errorf("RemainingAt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBrowserSessionIsExpired(t *testing.T) {
	past := BrowserSession{ExpiresAt: time.Now().Add(-time.Minute)}
	if !past.IsExpired() {
		t.Error("session past its expiry should be expired")
	}
	future := BrowserSession{ExpiresAt: time.Now().Add(time.Hour)}
	if future.IsExpired() {
		t.Error("session with an hour left should not be expired")
	}
}

func TestSubjectValid(t *testing.T) {
	if !SubjectMath.Valid() || !SubjectEnglish.Valid() {
		t.Error("known subjects should be valid")
	}
	for _, s := range []Subject{"", "history", "MATH"} {
		if s.Valid() {
			t.Errorf("Subject(%q).Valid() = true, want false", s)
		}
	}
}
