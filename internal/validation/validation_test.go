package validation

import (
	"strings"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"simple name", "tymon", false},
		{"two characters", "ab", false},
		{"thirty characters", strings.Repeat("a", 30), false},
		{"digits and letters", "kid42", false},
		{"spaces allowed", "tymon k", false},
		{"hyphen and underscore", "ty-mon_2", false},
		{"unicode letters", "zażółć", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"one character", "a", true},
		{"thirty-one characters", strings.Repeat("a", 31), true},
		{"punctuation", "tymon!", true},
		{"angle brackets", "<script>", true},
		{"at sign", "kid@home", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUsername(%q) error = %v, wantErr %v", tt.username, err, tt.wantErr)
			}
		})
	}
}

func TestValidateUsernameErrorType(t *testing.T) {
	err := ValidateUsername("")
	if err == nil {
		t.Fatal("expected an error for empty username")
	}
	vErr, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if vErr.Field != "username" {
		t.Errorf("Field = %q, want %q", vErr.Field, "username")
	}
	if !strings.Contains(vErr.Error(), "username") {
		t.Errorf("Error() = %q, want it to name the field", vErr.Error())
	}
}

func TestValidateGrade(t *testing.T) {
	tests := []struct {
		grade   int
		wantErr bool
	}{
		{1, false},
		{2, false},
		{3, false},
		{0, true},
		{4, true},
		{-1, true},
		{100, true},
	}

	for _, tt := range tests {
		err := ValidateGrade(tt.grade)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateGrade(%d) error = %v, wantErr %v", tt.grade, err, tt.wantErr)
		}
	}
}
