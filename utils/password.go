package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost matches the cost factor of the existing stored hashes.
const PasswordCost = 10

// HashPassword returns the bcrypt hash of the password. Passwords longer than
// bcrypt accepts fail with a validation error wrapping bcrypt.ErrPasswordTooLong.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", &AppError{Kind: KindValidation, Message: "Validation error: password must be at most 72 bytes", Err: err}
	}
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
