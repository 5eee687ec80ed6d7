package repository

import (
	"fmt"
	"time"

	"tymonteam/internal/database"
	"tymonteam/internal/models"
)

// ScoreRepository handles the append-only quiz score history
type ScoreRepository struct {
	db *database.DB
}

// NewScoreRepository creates a new score repository
func NewScoreRepository(db *database.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// Append records a graded attempt at the end of the profile's history
// for its subject
func (r *ScoreRepository) Append(record *models.ScoreRecord) (*models.ScoreRecord, error) {
	return r.AppendIn(r.db, record)
}

// AppendIn records a graded attempt through the given executor, so the
// write can be part of a larger transaction
func (r *ScoreRepository) AppendIn(q database.DBTX, record *models.ScoreRecord) (*models.ScoreRecord, error) {
	query := `
		INSERT INTO quiz_scores (profile_id, subject, score, total, percentage, passed, grade, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	if record.RecordedAt.IsZero() {
		record.RecordedAt = time.Now()
	}
	id, err := q.ExecReturningID(query,
		record.ProfileID,
		string(record.Subject),
		record.Score,
		record.Total,
		record.Percentage,
		record.Passed,
		record.Grade,
		record.RecordedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to append score: %w", err)
	}

	record.ID = id
	return record, nil
}

// ListBySubject retrieves a profile's score history for one subject,
// oldest first (insertion order is chronological order)
func (r *ScoreRepository) ListBySubject(profileID int64, subject models.Subject) ([]models.ScoreRecord, error) {
	query := `
		SELECT id, profile_id, subject, score, total, percentage, passed, grade, recorded_at
		FROM quiz_scores
		WHERE profile_id = ? AND subject = ?
		ORDER BY id ASC
	`
	rows, err := r.db.Query(query, profileID, string(subject))
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	var records []models.ScoreRecord
	for rows.Next() {
		var rec models.ScoreRecord
		var subj string
		if err := rows.Scan(
			&rec.ID,
			&rec.ProfileID,
			&subj,
			&rec.Score,
			&rec.Total,
			&rec.Percentage,
			&rec.Passed,
			&rec.Grade,
			&rec.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		rec.Subject = models.Subject(subj)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// ListAll retrieves a profile's full score history grouped by subject
func (r *ScoreRepository) ListAll(profileID int64) (map[models.Subject][]models.ScoreRecord, error) {
	history := make(map[models.Subject][]models.ScoreRecord)
	for _, subject := range []models.Subject{models.SubjectMath, models.SubjectEnglish} {
		records, err := r.ListBySubject(profileID, subject)
		if err != nil {
			return nil, err
		}
		history[subject] = records
	}
	return history, nil
}

// CountPassed returns how many quizzes the profile has passed across all subjects
func (r *ScoreRepository) CountPassed(profileID int64) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM quiz_scores WHERE profile_id = ? AND passed = ?"
	if err := r.db.QueryRow(query, profileID, true).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count passed quizzes: %w", err)
	}
	return count, nil
}

// CountSince returns attempts and passes recorded at or after the cutoff,
// used by the weekly progress summary
func (r *ScoreRepository) CountSince(profileID int64, cutoff time.Time) (attempts, passed int, err error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN passed THEN 1 ELSE 0 END), 0)
		FROM quiz_scores
		WHERE profile_id = ? AND recorded_at >= ?
	`
	if err := r.db.QueryRow(query, profileID, cutoff).Scan(&attempts, &passed); err != nil {
		return 0, 0, fmt.Errorf("failed to count recent scores: %w", err)
	}
	return attempts, passed, nil
}
