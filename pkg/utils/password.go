package utils

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 12

// BcryptHasher hashes and verifies user passwords.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher returns a hasher using the production cost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: bcryptCost}
}

// Generate generates a bcrypt hash from a plain text password
func (h *BcryptHasher) Generate(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	return string(bytes), err
}

// Verify compares a bcrypt hashed password with plain text password
func (h *BcryptHasher) Verify(password, hashedPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
