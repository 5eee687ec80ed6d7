package repository

import (
	"database/sql"
	"fmt"

	"tymonteam/internal/database"
)

// SettingsRepository stores key-value pairs independent of user profiles,
// such as the theme preference
type SettingsRepository struct {
	db *database.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get retrieves a setting value; found is false when the key is absent
func (r *SettingsRepository) Get(key string) (value string, found bool, err error) {
	query := "SELECT setting_value FROM settings WHERE setting_key = ?"
	err = r.db.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores a setting value, overwriting any previous one.
// Update-then-insert keeps this dialect-neutral.
func (r *SettingsRepository) Set(key, value string) error {
	result, err := r.db.Exec("UPDATE settings SET setting_value = ? WHERE setting_key = ?", value, key)
	if err != nil {
		return fmt.Errorf("failed to update setting %s: %w", key, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows > 0 {
		return nil
	}

	if _, err := r.db.Exec("INSERT INTO settings (setting_key, setting_value) VALUES (?, ?)", key, value); err != nil {
		return fmt.Errorf("failed to insert setting %s: %w", key, err)
	}
	return nil
}
