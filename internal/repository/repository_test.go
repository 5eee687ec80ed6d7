package repository

import (
	"path/filepath"
	"testing"
	"time"

	"tymonteam/internal/database"
	"tymonteam/internal/models"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestProfileCreateAndLookup(t *testing.T) {
	repo := NewProfileRepository(newTestDB(t))

	created, err := repo.CreateProfile("Tymon")
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected a non-zero profile ID")
	}

	// Lookups fold case but the stored casing survives
	for _, lookup := range []string{"Tymon", "tymon", "TYMON"} {
		got, err := repo.GetByUsername(lookup)
		if err != nil {
			t.Fatalf("GetByUsername(%q): %v", lookup, err)
		}
		if got == nil {
			t.Fatalf("GetByUsername(%q) = nil, want profile", lookup)
		}
		if got.Username != "Tymon" {
			t.Errorf("Username = %q, want original casing %q", got.Username, "Tymon")
		}
		if got.ID != created.ID {
			t.Errorf("ID = %d, want %d", got.ID, created.ID)
		}
	}

	missing, err := repo.GetByUsername("nobody")
	if err != nil {
		t.Fatalf("GetByUsername(nobody): %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown username, got %+v", missing)
	}
}

func TestProfileLedgerRoundTrip(t *testing.T) {
	repo := NewProfileRepository(newTestDB(t))

	profile, err := repo.CreateProfile("zosia")
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	started := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	ledger := models.TimeLedger{
		EarnedMinutes: 30,
		UsedMinutes:   12,
		LastSession: models.SessionState{
			Active:           true,
			StartedAt:        started,
			AnchorAt:         started.Add(90 * time.Second),
			RemainingSeconds: 990,
		},
	}
	if err := repo.UpdateLedger(profile.ID, ledger); err != nil {
		t.Fatalf("UpdateLedger: %v", err)
	}

	got, err := repo.GetByID(profile.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Ledger.EarnedMinutes != 30 || got.Ledger.UsedMinutes != 12 {
		t.Errorf("ledger counters = %d/%d, want 30/12",
			got.Ledger.EarnedMinutes, got.Ledger.UsedMinutes)
	}
	if !got.Ledger.LastSession.Active {
		t.Error("session should still be active after round trip")
	}
	if got.Ledger.LastSession.RemainingSeconds != 990 {
		t.Errorf("RemainingSeconds = %d, want 990", got.Ledger.LastSession.RemainingSeconds)
	}
	if !got.Ledger.LastSession.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", got.Ledger.LastSession.StartedAt, started)
	}

	active, err := repo.GetActiveSessions()
	if err != nil {
		t.Fatalf("GetActiveSessions: %v", err)
	}
	if len(active) != 1 || active[0].ID != profile.ID {
		t.Errorf("GetActiveSessions = %+v, want just profile %d", active, profile.ID)
	}

	// Closing the session takes it out of the active set
	ledger.LastSession = models.SessionState{}
	ledger.UsedMinutes = 14
	if err := repo.UpdateLedger(profile.ID, ledger); err != nil {
		t.Fatalf("UpdateLedger (close): %v", err)
	}
	active, err = repo.GetActiveSessions()
	if err != nil {
		t.Fatalf("GetActiveSessions: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("expected no active sessions, got %d", len(active))
	}
}

func TestBrowserSessions(t *testing.T) {
	repo := NewProfileRepository(newTestDB(t))

	profile, err := repo.CreateProfile("antek")
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	_, err = repo.CreateSession("session-live", profile.ID, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	_, err = repo.CreateSession("session-stale", profile.ID, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := repo.GetSession("session-live")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got == nil || got.ProfileID != profile.ID {
		t.Fatalf("GetSession = %+v, want session for profile %d", got, profile.ID)
	}

	if err := repo.DeleteExpiredSessions(); err != nil {
		t.Fatalf("DeleteExpiredSessions: %v", err)
	}
	stale, err := repo.GetSession("session-stale")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if stale != nil {
		t.Error("expired session should have been swept")
	}
	live, err := repo.GetSession("session-live")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if live == nil {
		t.Error("unexpired session should survive the sweep")
	}

	if err := repo.DeleteSession("session-live"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	gone, err := repo.GetSession("session-live")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if gone != nil {
		t.Error("deleted session should be gone")
	}
}

func TestScoreHistoryOrderAndCounts(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileRepository(db)
	scores := NewScoreRepository(db)

	profile, err := profiles.CreateProfile("tymon")
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	records := []models.ScoreRecord{
		{ProfileID: profile.ID, Subject: models.SubjectMath, Score: 16, Total: 20, Percentage: 80, Passed: true},
		{ProfileID: profile.ID, Subject: models.SubjectMath, Score: 12, Total: 20, Percentage: 60, Passed: false},
		{ProfileID: profile.ID, Subject: models.SubjectEnglish, Score: 18, Total: 20, Percentage: 90, Passed: true, Grade: 2},
	}
	for i := range records {
		if _, err := scores.Append(&records[i]); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	math, err := scores.ListBySubject(profile.ID, models.SubjectMath)
	if err != nil {
		t.Fatalf("ListBySubject: %v", err)
	}
	if len(math) != 2 {
		t.Fatalf("math history length = %d, want 2", len(math))
	}
	if math[0].Score != 16 || math[1].Score != 12 {
		t.Errorf("history out of insertion order: %d then %d", math[0].Score, math[1].Score)
	}

	all, err := scores.ListAll(profile.ID)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all[models.SubjectEnglish]) != 1 {
		t.Errorf("english history length = %d, want 1", len(all[models.SubjectEnglish]))
	}
	if got := all[models.SubjectEnglish][0].Grade; got != 2 {
		t.Errorf("english grade = %d, want 2", got)
	}

	passed, err := scores.CountPassed(profile.ID)
	if err != nil {
		t.Fatalf("CountPassed: %v", err)
	}
	if passed != 2 {
		t.Errorf("CountPassed = %d, want 2", passed)
	}

	attempts, recentPassed, err := scores.CountSince(profile.ID, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("CountSince: %v", err)
	}
	if attempts != 3 || recentPassed != 2 {
		t.Errorf("CountSince = %d/%d, want 3/2", attempts, recentPassed)
	}
}

func TestScoreHistoryDeletedWithProfile(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileRepository(db)
	scores := NewScoreRepository(db)

	profile, err := profiles.CreateProfile("kasia")
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	rec := models.ScoreRecord{ProfileID: profile.ID, Subject: models.SubjectMath, Score: 20, Total: 20, Percentage: 100, Passed: true}
	if _, err := scores.Append(&rec); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if err := profiles.DeleteProfile(profile.ID); err != nil {
		t.Fatalf("DeleteProfile: %v", err)
	}

	history, err := scores.ListBySubject(profile.ID, models.SubjectMath)
	if err != nil {
		t.Fatalf("ListBySubject: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("score history should cascade-delete with the profile, got %d records", len(history))
	}
}

func TestSettingsGetSet(t *testing.T) {
	repo := NewSettingsRepository(newTestDB(t))

	_, found, err := repo.Get("theme")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("unset key should report found=false")
	}

	if err := repo.Set("theme", "dark"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, found, err := repo.Get("theme")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found || value != "dark" {
		t.Errorf("Get = (%q, %v), want (dark, true)", value, found)
	}

	if err := repo.Set("theme", "light"); err != nil {
		t.Fatalf("Set (overwrite): %v", err)
	}
	value, _, err = repo.Get("theme")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != "light" {
		t.Errorf("overwritten value = %q, want light", value)
	}
}
