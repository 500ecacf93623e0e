package password

import (
	"golang.org/x/crypto/bcrypt"
)

// cost stays at the bcrypt default; the reference server verifies on every /auth call
const cost = bcrypt.DefaultCost

// Hash hashes password using bcrypt
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// Verify compares password with hash
func Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
