package service

import (
	"path/filepath"
	"testing"

	"tymonteam/internal/database"
	"tymonteam/internal/models"
	"tymonteam/internal/repository"
)

func openBackupTestDB(t *testing.T, name string) *database.DB {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), name))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestBackupRoundTrip(t *testing.T) {
	source := openBackupTestDB(t, "source.db")

	profiles := repository.NewProfileRepository(source)
	scores := repository.NewScoreRepository(source)
	settings := repository.NewSettingsRepository(source)

	profile, err := profiles.CreateProfile("Tymon")
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if err := profiles.UpdateLedger(profile.ID, models.TimeLedger{EarnedMinutes: 30, UsedMinutes: 12}); err != nil {
		t.Fatalf("UpdateLedger: %v", err)
	}
	rec := models.ScoreRecord{ProfileID: profile.ID, Subject: models.SubjectMath, Score: 17, Total: 20, Percentage: 85, Passed: true}
	if _, err := scores.Append(&rec); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := settings.Set("theme", "dark"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	backupPath := filepath.Join(t.TempDir(), "backup.json")
	if err := NewBackupService(source).Export(backupPath); err != nil {
		t.Fatalf("Export: %v", err)
	}

	target := openBackupTestDB(t, "target.db")
	if err := NewBackupService(target).Import(backupPath); err != nil {
		t.Fatalf("Import: %v", err)
	}

	restoredProfiles := repository.NewProfileRepository(target)
	restored, err := restoredProfiles.GetByUsername("tymon")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if restored == nil {
		t.Fatal("restored profile missing")
	}
	if restored.Username != "Tymon" {
		t.Errorf("Username = %q, want Tymon", restored.Username)
	}
	if restored.Ledger.EarnedMinutes != 30 || restored.Ledger.UsedMinutes != 12 {
		t.Errorf("ledger = %d/%d, want 30/12", restored.Ledger.EarnedMinutes, restored.Ledger.UsedMinutes)
	}

	history, err := repository.NewScoreRepository(target).ListBySubject(restored.ID, models.SubjectMath)
	if err != nil {
		t.Fatalf("ListBySubject: %v", err)
	}
	if len(history) != 1 || history[0].Score != 17 || !history[0].Passed {
		t.Errorf("restored history = %+v, want the 17/20 pass", history)
	}

	theme, found, err := repository.NewSettingsRepository(target).Get("theme")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found || theme != "dark" {
		t.Errorf("restored theme = (%q, %v), want (dark, true)", theme, found)
	}
}

func TestImportRollsBackOnConflict(t *testing.T) {
	source := openBackupTestDB(t, "source.db")

	profiles := repository.NewProfileRepository(source)
	if _, err := profiles.CreateProfile("antek"); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if _, err := profiles.CreateProfile("zosia"); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	backupPath := filepath.Join(t.TempDir(), "backup.json")
	if err := NewBackupService(source).Export(backupPath); err != nil {
		t.Fatalf("Export: %v", err)
	}

	// The second profile in the backup collides with an existing
	// username, so the first one, already inserted, must be rolled back.
	// Filler rows push the existing profile past the backup's ID range
	// so the collision is on the username, not the primary key.
	target := openBackupTestDB(t, "target.db")
	targetRepo := repository.NewProfileRepository(target)
	for _, name := range []string{"filler-a", "filler-b"} {
		p, err := targetRepo.CreateProfile(name)
		if err != nil {
			t.Fatalf("CreateProfile: %v", err)
		}
		if err := targetRepo.DeleteProfile(p.ID); err != nil {
			t.Fatalf("DeleteProfile: %v", err)
		}
	}
	if _, err := targetRepo.CreateProfile("Zosia"); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	if err := NewBackupService(target).Import(backupPath); err == nil {
		t.Fatal("expected import to fail on the username conflict")
	}

	leftover, err := targetRepo.GetByUsername("antek")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if leftover != nil {
		t.Error("profiles from the failed import should have been rolled back")
	}
}
