// Package utils provides helpers for generating and verifying invite
// redemption tokens.
package utils

import (
	"crypto/rand"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// NewInviteToken returns a 64-character random token. The raw value is
// handed to the guest exactly once; only its bcrypt hash is stored.
func NewInviteToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashInviteToken produces the bcrypt hash persisted alongside the
// invite. Cost values below bcrypt's minimum fall back to the default.
func HashInviteToken(raw string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(raw), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CheckInviteToken reports whether raw matches the stored hash.
func CheckInviteToken(hash, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
