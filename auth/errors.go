package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// Text codes surfaced to clients so they can react without parsing messages.
const (
	TextCodeTokenExpired    = "TOKEN_EXPIRED"
	TextCodeTokenMalformed  = "TOKEN_MALFORMED"
	TextCodeNotVerified     = "ACCOUNT_NOT_VERIFIED"
	TextCodeAlreadyVerified = "ACCOUNT_ALREADY_VERIFIED"
)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound).
	WithTextCode("IDENTITY_NOT_FOUND")

// ErrMismatchedHashAndPassword is returned when password verification fails.
// Malformed digests map here as well, they are never surfaced as a distinct
// failure to avoid an oracle.
var ErrMismatchedHashAndPassword = errors.New("mismatched hash and password", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("INVALID_CREDENTIALS")

// ErrNoEmptyString rejects empty passwords and payloads before hashing/signing
var ErrNoEmptyString = errors.New("value cannot be an empty string", errors.CategoryValidation).
	WithTextCode("EMPTY_VALUE")

// ErrTokenExpired means the signature checked out but the token is older than
// its allowed age.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenExpired)

// ErrTokenMalformed covers bad signatures and undecodable tokens. Kept
// distinct from ErrTokenExpired, the confirmation and refresh endpoints
// treat both as 401 but clients need to tell them apart.
var ErrTokenMalformed = errors.New("token is invalid", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenMalformed)

// ErrWrongTokenType is returned when a token of one type is presented where
// the other is required, e.g. an access token on the refresh endpoint.
var ErrWrongTokenType = errors.New("wrong token type", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("WRONG_TOKEN_TYPE")

// ErrAccountNotVerified blocks login until the email has been confirmed.
var ErrAccountNotVerified = errors.New("account email has not been verified", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest).
	WithTextCode(TextCodeNotVerified)

// ErrAlreadyVerified rejects re-confirmation of a verified account. The
// is_verified transition happens exactly once.
var ErrAlreadyVerified = errors.New("account is already verified", errors.CategoryValidation).
	WithTextCode(TextCodeAlreadyVerified)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.TextCode == TextCodeTokenExpired
	}

	return strings.Contains(err.Error(), "token is expired")
}
