package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateAccountCode produces a unique code for auto-created accounts:
// a timestamp component plus a random hex suffix. The code carries no
// external meaning; it only has to be unique and human-readable.
func GenerateAccountCode() (string, error) {
	suffix, err := GenerateSecureRandomString(3)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("IMP-%d-%s", time.Now().UTC().Unix(), suffix), nil
}

// GenerateSecureRandomString generates a cryptographically secure random
// string of the specified byte length, then hex encodes it.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
