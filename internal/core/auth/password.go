package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// Password hashes are stored as "salt:digest": a 16-byte hex salt and a
// 64-byte hex scrypt key. The format is shared with existing stored data,
// so the parameters below must not change.
const (
	saltBytes = 16
	keyBytes  = 64

	scryptN = 1 << 14
	scryptR = 8
	scryptP = 1
)

// ErrCorruptCredential means a stored hash is not in salt:digest form.
// It signals a data integrity problem, not a failed login attempt.
var ErrCorruptCredential = errors.New("stored credential is corrupt")

func HashPassword(password string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hexSalt := hex.EncodeToString(salt)
	key, err := scrypt.Key([]byte(password), []byte(hexSalt), scryptN, scryptR, scryptP, keyBytes)
	if err != nil {
		return "", err
	}
	return hexSalt + ":" + hex.EncodeToString(key), nil
}

// VerifyPassword recomputes the digest with the stored salt and compares in
// constant time. A malformed stored value yields ErrCorruptCredential.
func VerifyPassword(password, stored string) (bool, error) {
	parts := strings.Split(stored, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false, ErrCorruptCredential
	}
	key, err := scrypt.Key([]byte(password), []byte(parts[0]), scryptN, scryptR, scryptP, keyBytes)
	if err != nil {
		return false, err
	}
	got := hex.EncodeToString(key)
	return subtle.ConstantTimeCompare([]byte(got), []byte(parts[1])) == 1, nil
}
