package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Default lifetimes, overridable through configuration.
const (
	DefaultAccessTokenTTL  = 600 * time.Second
	DefaultRefreshTokenTTL = 86400 * time.Second
)

// SessionClaims are the claims embedded in access and refresh JWTs.
type SessionClaims struct {
	jwt.RegisteredClaims
	Identity  string `json:"identity"`
	TokenType string `json:"type"`
}

// SessionIssuer mints and validates the stateless access/refresh token pair.
// Nothing is persisted server side and there is no revocation list, tokens
// die by expiry alone.
type SessionIssuer struct {
	signingKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	logger     Logger
	now        func() time.Time
}

// NewSessionIssuer returns a new SessionIssuer
func NewSessionIssuer(signingKey []byte, accessTTL, refreshTTL time.Duration, issuer string) *SessionIssuer {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTokenTTL
	}

	return &SessionIssuer{
		signingKey: signingKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		issuer:     issuer,
		logger:     defLogger{},
		now:        time.Now,
	}
}

func (s *SessionIssuer) WithLogger(logger Logger) *SessionIssuer {
	s.logger = logger
	return s
}

// IssueAccessToken mints a short lived token authorizing API calls.
func (s *SessionIssuer) IssueAccessToken(identity string) (string, error) {
	return s.issue(identity, TokenTypeAccess, s.accessTTL)
}

// IssueRefreshToken mints a long lived token used solely to mint new access
// tokens.
func (s *SessionIssuer) IssueRefreshToken(identity string) (string, error) {
	return s.issue(identity, TokenTypeRefresh, s.refreshTTL)
}

func (s *SessionIssuer) issue(identity, tokenType string, ttl time.Duration) (string, error) {
	if identity == "" {
		return "", ErrNoEmptyString
	}

	now := s.now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Identity:  identity,
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign session JWT")
	}

	return signed, nil
}

// Validate parses the token, checks the signature and expiry, and enforces
// the expected token type. Expired tokens produce an error that names the
// token type so the HTTP boundary can tell clients which one to renew.
func (s *SessionIssuer) Validate(tokenString, wantType string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			s.logger.Error("session validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			// claims are decoded before validation runs, so the type
			// survives expiry
			tokenType := claims.TokenType
			if tokenType == "" {
				tokenType = wantType
			}
			return nil, errors.New(fmt.Sprintf("the %s token has expired", tokenType), errors.CategoryAuth).
				WithCode(errors.CodeUnauthorized).
				WithTextCode(TextCodeTokenExpired).
				WithMetadata(map[string]any{"token_type": tokenType})
		}
		return nil, ErrTokenMalformed
	}

	if !token.Valid || claims.Identity == "" {
		return nil, ErrTokenMalformed
	}

	if claims.TokenType != wantType {
		s.logger.Debug("session token type mismatch", "want", wantType, "got", claims.TokenType)
		return nil, ErrWrongTokenType
	}

	return claims, nil
}

// Refresh mints a new access token from a valid, non expired refresh token.
func (s *SessionIssuer) Refresh(refreshToken string) (string, error) {
	claims, err := s.Validate(refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", err
	}

	return s.IssueAccessToken(claims.Identity)
}
