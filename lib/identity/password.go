package identity

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"strings"
)

const (
	// SaltLength is the number of salt characters in front of a stored password.
	SaltLength = 4
	// GeneratedPasswordLength is the length of seed passwords created at bootstrap.
	GeneratedPasswordLength = 12

	passwordAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// NewSalt returns SaltLength characters drawn uniformly from printable ASCII (0x20-0x7e).
func NewSalt() (string, error) {
	var sb strings.Builder
	for i := 0; i < SaltLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(95))
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte(0x20 + n.Int64()))
	}
	return sb.String(), nil
}

// HashPassword returns the stored form of a password: salt followed by the
// hex encoded SHA-256 of password+salt.
func HashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return salt + hex.EncodeToString(sum[:])
}

// Verify reports whether password matches the stored salt‖hash string.
func Verify(stored, password string) bool {
	if len(stored) < SaltLength {
		return false
	}
	return HashPassword(password, stored[:SaltLength]) == stored
}

// GeneratePassword returns a random password of length n. Characters that are
// easily confused (0/O, 1/l/I) are left out.
func GeneratePassword(n int) (string, error) {
	limit := big.NewInt(int64(len(passwordAlphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b[i] = passwordAlphabet[idx.Int64()]
	}
	return string(b), nil
}
