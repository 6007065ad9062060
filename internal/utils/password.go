package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypts an account credential for storage on the users row.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}

// CheckPassword compares a login attempt against the stored hash. A non-nil
// error is reported to the caller as invalid credentials, never as a reason.
func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
