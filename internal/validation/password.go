package validation

import (
	"errors"
)

const (
	PasswordMinLength = 6
	// bcrypt ignores everything past 72 bytes
	passwordMaxLength = 72
)

func ValidatePassword(password string) error {
	if len(password) < PasswordMinLength {
		return errors.New("password must be at least 6 characters")
	}
	if len(password) > passwordMaxLength {
		return errors.New("password is too long (max 72 characters)")
	}
	return nil
}
