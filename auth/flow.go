package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-errors"

	"github.com/yabook/yabook/store"
)

const verificationEmailSubject = "Please confirm your email"

const verificationEmailBody = `<p>Welcome %s!</p>
<p>Thanks for signing up. Please follow this link to activate your account:</p>
<p><a href="%s">%s</a></p>
<br>
<p>Cheers!</p>`

// TokenPair is what a successful login hands back.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Flow orchestrates signup, email confirmation and login. Per user the state
// machine is Unregistered -> Unverified -> Verified, and login is blocked
// until the account is Verified.
type Flow struct {
	users        UserStore
	mailer       Mailer
	verification *VerificationSigner
	sessions     *SessionIssuer
	publicURL    string
	logger       Logger
}

// NewFlow returns a new Flow. publicURL is the external base used to build
// confirmation links.
func NewFlow(users UserStore, mailer Mailer, verification *VerificationSigner, sessions *SessionIssuer, publicURL string) *Flow {
	return &Flow{
		users:        users,
		mailer:       mailer,
		verification: verification,
		sessions:     sessions,
		publicURL:    strings.TrimRight(publicURL, "/"),
		logger:       defLogger{},
	}
}

func (f *Flow) WithLogger(logger Logger) *Flow {
	f.logger = logger
	return f
}

// Signup registers a new, unverified user and dispatches the verification
// email. Duplicate username or email fails with a conflict before any
// hashing work is done. The storage layer enforces the same uniqueness, a
// concurrent signup racing us surfaces as the same conflict.
func (f *Flow) Signup(ctx context.Context, username, email, password string) (*store.User, error) {
	for _, identifier := range []string{username, email} {
		if _, err := f.users.GetByIdentifier(ctx, identifier); err == nil {
			return nil, store.ErrDuplicateUser
		} else if !errors.IsNotFound(err) {
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check for existing user")
		}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := f.users.Register(ctx, &store.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	token, err := f.verification.Issue(user.Email)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to issue verification token")
	}

	// a failed dispatch is the mailer's problem, the account is created
	// either way and the user can request a fresh link
	if err := f.sendVerification(user, token); err != nil {
		f.logger.Error("failed to dispatch verification email", "error", err, "email", user.Email)
	}

	return user, nil
}

func (f *Flow) sendVerification(user *store.User, token string) error {
	link := fmt.Sprintf("%s/api/users/confirm/%s", f.publicURL, token)
	body := fmt.Sprintf(verificationEmailBody, user.Username, link, link)
	return f.mailer.Send(user.Email, verificationEmailSubject, body)
}

// Confirm validates an emailed token and marks the matching user as
// verified. A token for an already verified user is rejected, the
// false -> true transition happens exactly once.
func (f *Flow) Confirm(ctx context.Context, token string) (*store.User, error) {
	email, err := f.verification.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := f.users.GetByIdentifier(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user for confirmation")
	}

	if user.Verified {
		return nil, ErrAlreadyVerified
	}

	if err := f.users.MarkVerified(ctx, user.ID); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to mark user as verified")
	}

	user.Verified = true

	f.logger.Info("account verified", "email", user.Email)

	return user, nil
}

// Login verifies credentials for an email-or-username identifier and issues
// an access/refresh pair. The verified check runs before the password
// compare, an unverified account is reported as such even with a bad
// password. Lookup and password failures intentionally map to different
// errors, matching the historic API surface.
func (f *Flow) Login(ctx context.Context, identifier, password string) (*store.User, *TokenPair, error) {
	user, err := f.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil, ErrIdentityNotFound
		}
		return nil, nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during login")
	}

	if !user.Verified {
		return nil, nil, ErrAccountNotVerified
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, nil, err
	}

	access, err := f.sessions.IssueAccessToken(user.Username)
	if err != nil {
		return nil, nil, err
	}

	refresh, err := f.sessions.IssueRefreshToken(user.Username)
	if err != nil {
		return nil, nil, err
	}

	return user, &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// RefreshAccessToken mints a new access token from a refresh token.
func (f *Flow) RefreshAccessToken(refreshToken string) (string, error) {
	return f.sessions.Refresh(refreshToken)
}
