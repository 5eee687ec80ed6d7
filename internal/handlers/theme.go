package handlers

import (
	"log"

	"tymonteam/internal/models"
	"tymonteam/internal/repository"
)

// settingsReader gives handlers read access to the shared settings,
// currently just the theme
type settingsReader struct {
	repo *repository.SettingsRepository
}

// NewSettingsReader wraps a settings repository for handler use
func NewSettingsReader(repo *repository.SettingsRepository) *settingsReader {
	return &settingsReader{repo: repo}
}

// Theme returns the current light/dark preference, defaulting to light
func (s *settingsReader) Theme() string {
	theme, found, err := s.repo.Get(ThemeSettingKey)
	if err != nil {
		log.Printf("Failed to read theme setting: %v", err)
		return models.ThemeLight
	}
	if !found || (theme != models.ThemeLight && theme != models.ThemeDark) {
		return models.ThemeLight
	}
	return theme
}
