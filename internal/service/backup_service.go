package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"tymonteam/internal/database"
)

// BackupData is the complete database backup structure
type BackupData struct {
	Version    string          `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	Profiles   []ProfileBackup `json:"profiles"`
	Scores     []ScoreBackup   `json:"scores"`
	Settings   []SettingBackup `json:"settings"`
}

// ProfileBackup is a profile record with its ledger and session state
type ProfileBackup struct {
	ID                      int64      `json:"id"`
	Username                string     `json:"username"`
	CreatedAt               time.Time  `json:"created_at"`
	EarnedMinutes           int        `json:"earned_minutes"`
	UsedMinutes             int        `json:"used_minutes"`
	SessionActive           bool       `json:"session_active"`
	SessionStartedAt        *time.Time `json:"session_started_at,omitempty"`
	SessionAnchorAt         *time.Time `json:"session_anchor_at,omitempty"`
	SessionRemainingSeconds int        `json:"session_remaining_seconds"`
}

// ScoreBackup is one quiz score record
type ScoreBackup struct {
	ID         int64     `json:"id"`
	ProfileID  int64     `json:"profile_id"`
	Subject    string    `json:"subject"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Percentage float64   `json:"percentage"`
	Passed     bool      `json:"passed"`
	Grade      int       `json:"grade"`
	RecordedAt time.Time `json:"recorded_at"`
}

// SettingBackup is one key/value setting
type SettingBackup struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.exportProfiles(backup); err != nil {
		return fmt.Errorf("failed to export profiles: %w", err)
	}
	if err := s.exportScores(backup); err != nil {
		return fmt.Errorf("failed to export scores: %w", err)
	}
	if err := s.exportSettings(backup); err != nil {
		return fmt.Errorf("failed to export settings: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Database exported successfully to %s", outputPath)
	log.Printf("Exported: %d profiles, %d scores, %d settings",
		len(backup.Profiles), len(backup.Scores), len(backup.Settings))

	return nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup stream
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// The whole restore is one transaction: a half-imported backup is
	// worse than no import at all
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Profiles first: scores reference them
	if err := s.importProfiles(tx, backup.Profiles); err != nil {
		return fmt.Errorf("failed to import profiles: %w", err)
	}
	if err := s.importScores(tx, backup.Scores); err != nil {
		return fmt.Errorf("failed to import scores: %w", err)
	}
	if err := s.importSettings(tx, backup.Settings); err != nil {
		return fmt.Errorf("failed to import settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportProfiles(backup *BackupData) error {
	query := "SELECT id, username, created_at, earned_minutes, used_minutes, session_active, session_started_at, session_anchor_at, session_remaining_seconds FROM profiles ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p ProfileBackup
		var startedAt, anchorAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.Username, &p.CreatedAt, &p.EarnedMinutes, &p.UsedMinutes, &p.SessionActive, &startedAt, &anchorAt, &p.SessionRemainingSeconds); err != nil {
			return err
		}
		if startedAt.Valid {
			p.SessionStartedAt = &startedAt.Time
		}
		if anchorAt.Valid {
			p.SessionAnchorAt = &anchorAt.Time
		}
		backup.Profiles = append(backup.Profiles, p)
	}
	return rows.Err()
}

func (s *BackupService) exportScores(backup *BackupData) error {
	query := "SELECT id, profile_id, subject, score, total, percentage, passed, grade, recorded_at FROM quiz_scores ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var sc ScoreBackup
		if err := rows.Scan(&sc.ID, &sc.ProfileID, &sc.Subject, &sc.Score, &sc.Total, &sc.Percentage, &sc.Passed, &sc.Grade, &sc.RecordedAt); err != nil {
			return err
		}
		backup.Scores = append(backup.Scores, sc)
	}
	return rows.Err()
}

func (s *BackupService) exportSettings(backup *BackupData) error {
	query := "SELECT setting_key, setting_value FROM settings ORDER BY setting_key"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var st SettingBackup
		if err := rows.Scan(&st.Key, &st.Value); err != nil {
			return err
		}
		backup.Settings = append(backup.Settings, st)
	}
	return rows.Err()
}

func (s *BackupService) importProfiles(q database.DBTX, profiles []ProfileBackup) error {
	log.Printf("Importing %d profiles...", len(profiles))
	for _, p := range profiles {
		query := "INSERT INTO profiles (id, username, username_folded, created_at, earned_minutes, used_minutes, session_active, session_started_at, session_anchor_at, session_remaining_seconds) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := q.Exec(query, p.ID, p.Username, strings.ToLower(p.Username), p.CreatedAt, p.EarnedMinutes, p.UsedMinutes, p.SessionActive, p.SessionStartedAt, p.SessionAnchorAt, p.SessionRemainingSeconds)
		if err != nil {
			return fmt.Errorf("failed to import profile %d: %w", p.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importScores(q database.DBTX, scores []ScoreBackup) error {
	log.Printf("Importing %d scores...", len(scores))
	for _, sc := range scores {
		query := "INSERT INTO quiz_scores (id, profile_id, subject, score, total, percentage, passed, grade, recorded_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := q.Exec(query, sc.ID, sc.ProfileID, sc.Subject, sc.Score, sc.Total, sc.Percentage, sc.Passed, sc.Grade, sc.RecordedAt)
		if err != nil {
			return fmt.Errorf("failed to import score %d: %w", sc.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importSettings(q database.DBTX, settings []SettingBackup) error {
	log.Printf("Importing %d settings...", len(settings))
	for _, st := range settings {
		query := "INSERT INTO settings (setting_key, setting_value) VALUES (?, ?)"
		_, err := q.Exec(query, st.Key, st.Value)
		if err != nil {
			return fmt.Errorf("failed to import setting %s: %w", st.Key, err)
		}
	}
	return nil
}
