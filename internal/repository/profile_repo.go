package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"tymonteam/internal/database"
	"tymonteam/internal/models"
)

// ProfileRepository handles database operations for user profiles and
// their time ledgers. Ledger writes replace the whole ledger portion of
// the record; concurrent writers are last-writer-wins.
type ProfileRepository struct {
	db *database.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `
	id, username, created_at,
	earned_minutes, used_minutes,
	session_active, session_started_at, session_anchor_at, session_remaining_seconds
`

// CreateProfile inserts a new profile with a zero ledger, keeping the
// username's original casing
func (r *ProfileRepository) CreateProfile(username string) (*models.UserProfile, error) {
	query := `
		INSERT INTO profiles (username, username_folded)
		VALUES (?, ?)
	`
	id, err := r.db.ExecReturningID(query, username, strings.ToLower(username))
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return &models.UserProfile{
		ID:        id,
		Username:  username,
		CreatedAt: time.Now(),
	}, nil
}

// GetByUsername retrieves a profile by username, folding case.
// Returns nil without error when no profile exists.
func (r *ProfileRepository) GetByUsername(username string) (*models.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE username_folded = ?`
	return r.scanProfile(r.db.QueryRow(query, strings.ToLower(username)))
}

// GetByID retrieves a profile by ID. Returns nil without error when no
// profile exists.
func (r *ProfileRepository) GetByID(id int64) (*models.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = ?`
	return r.scanProfile(r.db.QueryRow(query, id))
}

// GetAll retrieves every profile ordered by creation time
func (r *ProfileRepository) GetAll() ([]models.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at ASC, id ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.UserProfile
	for rows.Next() {
		profile, err := scanProfileRow(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}

	return profiles, rows.Err()
}

// UpdateLedger persists a profile's entire ledger, session state included
func (r *ProfileRepository) UpdateLedger(profileID int64, ledger models.TimeLedger) error {
	return r.UpdateLedgerIn(r.db, profileID, ledger)
}

// UpdateLedgerIn persists a ledger through the given executor, so the
// write can be part of a larger transaction
func (r *ProfileRepository) UpdateLedgerIn(q database.DBTX, profileID int64, ledger models.TimeLedger) error {
	query := `
		UPDATE profiles
		SET earned_minutes = ?,
		    used_minutes = ?,
		    session_active = ?,
		    session_started_at = ?,
		    session_anchor_at = ?,
		    session_remaining_seconds = ?
		WHERE id = ?
	`
	startedAt := nullTime(ledger.LastSession.StartedAt)
	anchorAt := nullTime(ledger.LastSession.AnchorAt)

	_, err := q.Exec(query,
		ledger.EarnedMinutes,
		ledger.UsedMinutes,
		ledger.LastSession.Active,
		startedAt,
		anchorAt,
		ledger.LastSession.RemainingSeconds,
		profileID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ledger: %w", err)
	}
	return nil
}

// GetActiveSessions retrieves all profiles whose ledger carries an active
// entertainment session
func (r *ProfileRepository) GetActiveSessions() ([]models.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE session_active = ?`
	rows, err := r.db.Query(query, true)
	if err != nil {
		return nil, fmt.Errorf("failed to query active sessions: %w", err)
	}
	defer rows.Close()

	var profiles []models.UserProfile
	for rows.Next() {
		profile, err := scanProfileRow(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}

	return profiles, rows.Err()
}

// DeleteProfile deletes a profile and its score history
func (r *ProfileRepository) DeleteProfile(id int64) error {
	if _, err := r.db.Exec("DELETE FROM profiles WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

// CreateSession creates a new browser session for a profile
func (r *ProfileRepository) CreateSession(sessionID string, profileID int64, expiresAt time.Time) (*models.BrowserSession, error) {
	query := `
		INSERT INTO browser_sessions (id, profile_id, expires_at)
		VALUES (?, ?, ?)
	`
	if _, err := r.db.Exec(query, sessionID, profileID, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &models.BrowserSession{
		ID:        sessionID,
		ProfileID: profileID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}, nil
}

// GetSession retrieves a browser session by ID. Returns nil without error
// when no session exists.
func (r *ProfileRepository) GetSession(sessionID string) (*models.BrowserSession, error) {
	query := `
		SELECT id, profile_id, expires_at, created_at
		FROM browser_sessions
		WHERE id = ?
	`
	session := &models.BrowserSession{}
	err := r.db.QueryRow(query, sessionID).Scan(
		&session.ID,
		&session.ProfileID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// DeleteSession removes a browser session
func (r *ProfileRepository) DeleteSession(sessionID string) error {
	if _, err := r.db.Exec("DELETE FROM browser_sessions WHERE id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes all expired browser sessions
func (r *ProfileRepository) DeleteExpiredSessions() error {
	if _, err := r.db.Exec("DELETE FROM browser_sessions WHERE expires_at < ?", time.Now()); err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *ProfileRepository) scanProfile(row *sql.Row) (*models.UserProfile, error) {
	profile, err := scanProfileRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return profile, err
}

func scanProfileRow(row rowScanner) (*models.UserProfile, error) {
	profile := &models.UserProfile{}
	var startedAt, anchorAt sql.NullTime

	err := row.Scan(
		&profile.ID,
		&profile.Username,
		&profile.CreatedAt,
		&profile.Ledger.EarnedMinutes,
		&profile.Ledger.UsedMinutes,
		&profile.Ledger.LastSession.Active,
		&startedAt,
		&anchorAt,
		&profile.Ledger.LastSession.RemainingSeconds,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}

	if startedAt.Valid {
		profile.Ledger.LastSession.StartedAt = startedAt.Time
	}
	if anchorAt.Valid {
		profile.Ledger.LastSession.AnchorAt = anchorAt.Time
	}

	return profile, nil
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
