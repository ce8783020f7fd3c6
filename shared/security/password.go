package security

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matthewhartstonge/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Algorithm names a password hashing scheme.
type Algorithm string

const (
	AlgorithmBcrypt   Algorithm = "bcrypt"
	AlgorithmArgon2id Algorithm = "argon2id"
)

var ErrUnsupportedAlgorithm = errors.New("unsupported password hashing algorithm")

const argon2Prefix = "$argon2"

// PasswordHasher produces salted, encoded password hashes.
// Every hash embeds its own salt and cost parameters, so VerifyPassword needs no hasher state.
type PasswordHasher struct {
	algorithm Algorithm
	argon     argon2.Config
}

// NewPasswordHasher creates a hasher for the given algorithm. An empty algorithm selects bcrypt.
func NewPasswordHasher(algorithm Algorithm) (*PasswordHasher, error) {
	switch algorithm {
	case "", AlgorithmBcrypt:
		return &PasswordHasher{algorithm: AlgorithmBcrypt}, nil
	case AlgorithmArgon2id:
		return &PasswordHasher{algorithm: AlgorithmArgon2id, argon: argon2.DefaultConfig()}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}
}

// Algorithm reports the scheme new hashes are produced with.
func (h *PasswordHasher) Algorithm() Algorithm {
	return h.algorithm
}

// HashPassword hashes the password with a freshly generated salt.
func (h *PasswordHasher) HashPassword(password string) (string, error) {
	if h.algorithm == AlgorithmArgon2id {
		encoded, err := h.argon.HashEncoded([]byte(password))
		if err != nil {
			return "", fmt.Errorf("hash password: %w", err)
		}
		return string(encoded), nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// HashPassword hashes the password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	h := &PasswordHasher{algorithm: AlgorithmBcrypt}
	return h.HashPassword(password)
}

// VerifyPassword compares a plaintext password with a stored hash of either scheme.
// A mismatch is reported as (false, nil); errors are reserved for unreadable hashes.
func VerifyPassword(password, hash string) (bool, error) {
	if strings.HasPrefix(hash, argon2Prefix) {
		return argon2.VerifyEncoded([]byte(password), []byte(hash))
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}

	return false, err
}
