package validation

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateUsername checks a login name: trimmed, 2-30 characters,
// letters, digits, spaces, hyphens and underscores only.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ValidationError{Field: "username", Message: "username is required"}
	}
	if len([]rune(username)) < 2 {
		return ValidationError{Field: "username", Message: "username must be at least 2 characters"}
	}
	if len([]rune(username)) > 30 {
		return ValidationError{Field: "username", Message: "username must be at most 30 characters"}
	}
	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' && r != '-' && r != '_' {
			return ValidationError{Field: "username", Message: "username may only contain letters, digits, spaces, hyphens and underscores"}
		}
	}
	return nil
}

// ValidateGrade checks an English vocabulary grade tier
func ValidateGrade(grade int) error {
	if grade < 1 || grade > 3 {
		return ValidationError{Field: "grade", Message: "grade must be between 1 and 3"}
	}
	return nil
}
