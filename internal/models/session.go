package models

import "time"

// BrowserSession ties a session cookie to a profile
type BrowserSession struct {
	ID        string
	ProfileID int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the session has passed its expiry time
func (s BrowserSession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Theme values stored in the settings table
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)
