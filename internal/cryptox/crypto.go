// Package cryptox derives and checks password verifiers for accounts kept in
// the device-local user directory. Verifiers are sha256(argon2id(password, salt)),
// so the local store never holds a plaintext password.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/dmitrijs2005/divyadrishti/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length in bytes of salts produced by NewVerifier.
const SaltSize = 16

// DeriveKey stretches password with argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// MakeVerifier hashes a derived key into the value persisted locally.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// NewVerifier generates a fresh salt and the verifier for password.
func NewVerifier(password []byte) (salt, verifier []byte) {
	salt = common.GenerateRandByteArray(SaltSize)
	return salt, MakeVerifier(DeriveKey(password, salt))
}

// CheckPassword reports whether password matches the stored salt/verifier pair.
// The comparison is constant time.
func CheckPassword(password, salt, verifier []byte) bool {
	if len(salt) == 0 || len(verifier) == 0 {
		return false
	}
	candidate := MakeVerifier(DeriveKey(password, salt))
	return subtle.ConstantTimeCompare(verifier, candidate) == 1
}
