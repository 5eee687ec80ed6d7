package service

import (
	"errors"
	"fmt"
	"time"

	"tymonteam/internal/models"
	"tymonteam/internal/repository"
	"tymonteam/internal/security"
	"tymonteam/internal/validation"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrProfileNotFound = errors.New("profile not found")
)

// ProfileService handles profile login and browser session business logic.
// There are no passwords for kids: entering a username logs in, and an
// unknown username creates a fresh profile on the spot.
type ProfileService struct {
	profileRepo     *repository.ProfileRepository
	sessionDuration time.Duration
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo *repository.ProfileRepository, sessionDuration time.Duration) *ProfileService {
	return &ProfileService{
		profileRepo:     profileRepo,
		sessionDuration: sessionDuration,
	}
}

// Login resolves a username to a profile, creating the profile the first
// time the name is seen, and opens a browser session for it. Usernames
// are matched case-insensitively, so "Tymon" and "tymon" are the same kid.
func (s *ProfileService) Login(username string) (*models.BrowserSession, *models.UserProfile, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, nil, err
	}

	profile, err := s.profileRepo.GetByUsername(username)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up profile: %w", err)
	}
	if profile == nil {
		profile, err = s.profileRepo.CreateProfile(username)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create profile: %w", err)
		}
	}

	expiresAt := time.Now().Add(s.sessionDuration)
	session, err := s.profileRepo.CreateSession(security.GenerateSessionID(), profile.ID, expiresAt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, profile, nil
}

// ValidateSession checks a session ID and returns the profile it belongs to
func (s *ProfileService) ValidateSession(sessionID string) (*models.UserProfile, error) {
	session, err := s.profileRepo.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.IsExpired() {
		if err := s.profileRepo.DeleteSession(sessionID); err != nil {
			return nil, fmt.Errorf("failed to delete expired session: %w", err)
		}
		return nil, ErrSessionExpired
	}

	profile, err := s.profileRepo.GetByID(session.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// Logout removes a browser session
func (s *ProfileService) Logout(sessionID string) error {
	if err := s.profileRepo.DeleteSession(sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// ListProfiles returns every profile, for the admin dashboard
func (s *ProfileService) ListProfiles() ([]models.UserProfile, error) {
	return s.profileRepo.GetAll()
}

// GetProfile looks up a profile by username
func (s *ProfileService) GetProfile(username string) (*models.UserProfile, error) {
	profile, err := s.profileRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// DeleteProfile removes a profile and its scores and sessions
func (s *ProfileService) DeleteProfile(username string) error {
	profile, err := s.profileRepo.GetByUsername(username)
	if err != nil {
		return fmt.Errorf("failed to look up profile: %w", err)
	}
	if profile == nil {
		return ErrProfileNotFound
	}
	return s.profileRepo.DeleteProfile(profile.ID)
}

// CleanupExpiredSessions removes expired browser sessions
func (s *ProfileService) CleanupExpiredSessions() error {
	return s.profileRepo.DeleteExpiredSessions()
}
