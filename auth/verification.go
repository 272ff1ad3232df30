package auth

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// DefaultVerificationMaxAge bounds the validity of emailed tokens.
const DefaultVerificationMaxAge = 3600 * time.Second

type verificationClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// VerificationSigner issues and checks the signed, self-contained tokens we
// embed in account confirmation links. Tokens are stateless: they carry the
// email and issue timestamp and nothing is persisted. They stay replayable
// until they age out, re-confirmation is rejected through the user record,
// not the token.
type VerificationSigner struct {
	signingKey []byte
	maxAge     time.Duration
	now        func() time.Time
}

// NewVerificationSigner derives the HMAC key from the application secret and
// the dedicated salt so verification tokens can never be confused with
// session JWTs signed by a different key.
func NewVerificationSigner(secret, salt string, maxAge time.Duration) *VerificationSigner {
	key := sha256.Sum256([]byte(secret + ":" + salt))

	if maxAge <= 0 {
		maxAge = DefaultVerificationMaxAge
	}

	return &VerificationSigner{
		signingKey: key[:],
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Issue serializes the email with the current timestamp into a URL safe
// signed token.
func (v *VerificationSigner) Issue(email string) (string, error) {
	if email == "" {
		return "", ErrNoEmptyString
	}

	claims := &verificationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(v.now()),
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(v.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign verification token")
	}

	return signed, nil
}

// Verify decodes the token and recovers the email. Three outcomes:
// the email for a valid token, ErrTokenExpired when the signature holds but
// the token is older than the configured max age, ErrTokenMalformed for
// everything else.
func (v *VerificationSigner) Verify(tokenString string) (string, error) {
	claims := &verificationClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.signingKey, nil
	})
	if err != nil || !token.Valid {
		return "", ErrTokenMalformed
	}

	if claims.Email == "" || claims.IssuedAt == nil {
		return "", ErrTokenMalformed
	}

	if v.now().Sub(claims.IssuedAt.Time) > v.maxAge {
		return "", ErrTokenExpired
	}

	return claims.Email, nil
}
