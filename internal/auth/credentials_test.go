package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateCredentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fullName string
		username string
		password string
		wantErr  error
	}{
		{"valid", "Matti Luukkainen", "mluukkai", "salainen", nil},
		{"valid with hyphen and underscore", "", "road-bike_fan", "salainen", nil},
		{"username too short", "", "ml", "salainen", ErrUsernameLength},
		{"username too long", "", strings.Repeat("a", 31), "salainen", ErrUsernameLength},
		{"username with spaces", "", "matti luukkainen", "salainen", ErrUsernameInvalid},
		{"username with unicode", "", "müükkai", "salainen", ErrUsernameInvalid},
		{"password too short", "", "mluukkai", "sa", ErrPasswordLength},
		{"password too long", "", "mluukkai", strings.Repeat("x", 129), ErrPasswordLength},
		{"name too long", strings.Repeat("n", 101), "mluukkai", "salainen", ErrNameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCredentials(tt.fullName, tt.username, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCredentials() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
