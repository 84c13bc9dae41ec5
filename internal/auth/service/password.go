package service

//go:generate mockgen -destination=../../mocks/mock_password_hasher.go -package=mocks github.com/tavo0132/nexo-backend-api/internal/auth/service PasswordHasher

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode"

	apperrors "github.com/tavo0132/nexo-backend-api/internal/errors"
	"golang.org/x/crypto/argon2"
)

const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

// ValidatePassword enforces the password policy: at least 8 characters and
// one each of lowercase, uppercase, digit and a symbol from the fixed set.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.NewValidation("password must be at least 8 characters long")
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	switch {
	case !hasLower:
		return apperrors.NewValidation("password must contain at least one lowercase letter")
	case !hasUpper:
		return apperrors.NewValidation("password must contain at least one uppercase letter")
	case !hasDigit:
		return apperrors.NewValidation("password must contain at least one digit")
	case !hasSymbol:
		return apperrors.NewValidation(fmt.Sprintf("password must contain at least one special character (%s)", passwordSymbols))
	}

	return nil
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches digest. Any parsing or
	// internal failure counts as a non-match, never an error.
	Verify(digest, password string) bool
}

// Argon2Hasher produces salted argon2id digests in the standard PHC string
// format. It is stateless and constructed once at startup.
type Argon2Hasher struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
}

func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{
		memory:      64 * 1024,
		iterations:  3,
		parallelism: 2,
		saltLength:  16,
		keyLength:   32,
	}
}

func (h *Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.iterations, h.memory, h.parallelism, h.keyLength)

	digest := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.memory, h.iterations, h.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))

	return digest, nil
}

func (h *Argon2Hasher) Verify(digest, password string) bool {
	memory, iterations, parallelism, salt, key, err := decodeDigest(digest)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(key)))

	return subtle.ConstantTimeCompare(key, computed) == 1
}

func decodeDigest(digest string) (memory, iterations uint32, parallelism uint8, salt, key []byte, err error) {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, fmt.Errorf("unsupported digest format")
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return 0, 0, 0, nil, nil, err
	}
	if version != argon2.Version {
		return 0, 0, 0, nil, nil, fmt.Errorf("incompatible argon2 version %d", version)
	}

	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return 0, 0, 0, nil, nil, err
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, err
	}

	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return 0, 0, 0, nil, nil, err
	}

	// An empty key would make the comparison in Verify match any password.
	if len(salt) == 0 || len(key) == 0 {
		return 0, 0, 0, nil, nil, fmt.Errorf("digest has empty salt or key")
	}

	return memory, iterations, parallelism, salt, key, nil
}
