// Package cryptox implements the credential verifiers used to store and check
// user passwords. The scheme is chosen by configuration; the stored form is a
// self-describing string so records survive a scheme switch.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	SchemeArgon2id = "argon2id"
	SchemeBcrypt   = "bcrypt"
	SchemePlain    = "plain"
)

// ErrMalformedCredential is returned when a stored credential cannot be parsed
// by the verifier it was handed to.
var ErrMalformedCredential = errors.New("malformed credential")

// PasswordVerifier turns a password into a storable credential and checks
// candidates against it.
type PasswordVerifier interface {
	Hash(password []byte) (string, error)
	Verify(encoded string, candidate []byte) (bool, error)
}

// NewPasswordVerifier returns the verifier for scheme.
func NewPasswordVerifier(scheme string) (PasswordVerifier, error) {
	switch scheme {
	case SchemeArgon2id, "":
		return NewArgon2Verifier(), nil
	case SchemeBcrypt:
		return NewBcryptVerifier(bcrypt.DefaultCost), nil
	case SchemePlain:
		return PlainVerifier{}, nil
	default:
		return nil, fmt.Errorf("unsupported password scheme %q", scheme)
	}
}

// randRead is a test seam for crypto/rand.
var randRead = rand.Read

// Argon2Verifier stores "$argon2id$v=19$m=<KiB>,t=<iter>,p=<threads>$<salt>$<key>".
type Argon2Verifier struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
	saltLen int
}

// NewArgon2Verifier uses one pass over 64 MiB with four lanes, a 16-byte salt
// and a 32-byte key.
func NewArgon2Verifier() *Argon2Verifier {
	return &Argon2Verifier{time: 1, memory: 64 * 1024, threads: 4, keyLen: 32, saltLen: 16}
}

func (v *Argon2Verifier) Hash(password []byte) (string, error) {
	salt := make([]byte, v.saltLen)
	if _, err := randRead(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey(password, salt, v.time, v.memory, v.threads, v.keyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, v.memory, v.time, v.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (v *Argon2Verifier) Verify(encoded string, candidate []byte) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != SchemeArgon2id {
		return false, ErrMalformedCredential
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, ErrMalformedCredential
	}

	var (
		memory, iterations uint32
		threads            uint8
	)
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false, ErrMalformedCredential
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrMalformedCredential
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return false, ErrMalformedCredential
	}

	got := argon2.IDKey(candidate, salt, iterations, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(got, key) == 1, nil
}

// BcryptVerifier stores the standard "$2a$..." bcrypt string.
type BcryptVerifier struct {
	cost int
}

func NewBcryptVerifier(cost int) *BcryptVerifier {
	return &BcryptVerifier{cost: cost}
}

func (v *BcryptVerifier) Hash(password []byte) (string, error) {
	h, err := bcrypt.GenerateFromPassword(password, v.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(h), nil
}

func (v *BcryptVerifier) Verify(encoded string, candidate []byte) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), candidate)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}
}

// PlainVerifier keeps the password as-is. It only exists to read legacy
// records and must not be used for new deployments.
type PlainVerifier struct{}

func (PlainVerifier) Hash(password []byte) (string, error) {
	return string(password), nil
}

func (PlainVerifier) Verify(encoded string, candidate []byte) (bool, error) {
	return subtle.ConstantTimeCompare([]byte(encoded), candidate) == 1, nil
}
