package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}
	if len(key1) != 32 {
		t.Errorf("expected 32-byte key, got %d", len(key1))
	}
}

func TestDeriveKey_DifferentInputs(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveKey(password, []byte("salt-1"))
	key2 := DeriveKey(password, []byte("salt-2"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestNewVerifier_CheckPassword(t *testing.T) {
	salt, verifier := NewVerifier([]byte("om-shanti"))
	require.Len(t, salt, SaltSize)
	require.Len(t, verifier, 32)

	assert.True(t, CheckPassword([]byte("om-shanti"), salt, verifier))
	assert.False(t, CheckPassword([]byte("wrong"), salt, verifier))
}

func TestNewVerifier_FreshSaltEachTime(t *testing.T) {
	s1, v1 := NewVerifier([]byte("same"))
	s2, v2 := NewVerifier([]byte("same"))

	assert.NotEqual(t, s1, s2)
	assert.NotEqual(t, v1, v2)
}

func TestCheckPassword_EmptyMaterialFails(t *testing.T) {
	assert.False(t, CheckPassword([]byte("x"), nil, []byte{1}))
	assert.False(t, CheckPassword([]byte("x"), []byte{1}, nil))
}
