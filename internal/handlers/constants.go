package handlers

const (
	SessionCookieName = "session_id"
	AdminCookieName   = "admin_token"

	ThemeSettingKey = "theme"

	ErrInvalidFormData     = "Invalid form data"
	ErrUnauthorized        = "Unauthorized"
	ErrInternalServerError = "Internal server error"
)
