package jobnest

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeInvalidCredentials = "INVALID_CREDENTIALS"
	textCodeAccountExists      = "ACCOUNT_EXISTS"
	textCodeWeakPassword       = "WEAK_PASSWORD"
	textCodeUnknownRole        = "UNKNOWN_ROLE"
	textCodeRoleFieldsMismatch = "ROLE_FIELDS_MISMATCH"
	textCodeSessionTeardown    = "SESSION_TEARDOWN_FAILED"
)

// ErrInvalidCredentials is returned when the identity provider rejects a
// login attempt.
var ErrInvalidCredentials = goerrors.New("invalid email or password", goerrors.CategoryAuth).
	WithTextCode(textCodeInvalidCredentials).
	WithCode(goerrors.CodeUnauthorized)

// ErrAccountExists is returned when signup hits an email that already has an
// account.
var ErrAccountExists = goerrors.New("an account already exists for this email", goerrors.CategoryConflict).
	WithTextCode(textCodeAccountExists).
	WithCode(goerrors.CodeConflict)

// ErrWeakPassword is returned when the identity provider rejects the supplied
// password at account creation.
var ErrWeakPassword = goerrors.New("password does not meet the minimum requirements", goerrors.CategoryValidation).
	WithTextCode(textCodeWeakPassword).
	WithCode(goerrors.CodeBadRequest)

// ErrUnknownRole is returned when a role tag is neither seeker nor provider.
var ErrUnknownRole = goerrors.New("unknown user role", goerrors.CategoryValidation).
	WithTextCode(textCodeUnknownRole).
	WithCode(goerrors.CodeBadRequest)

// ErrRoleFieldsMismatch is returned when a profile's role tag disagrees with
// the extended fields it carries.
var ErrRoleFieldsMismatch = goerrors.New("profile role does not match its extended fields", goerrors.CategoryValidation).
	WithTextCode(textCodeRoleFieldsMismatch).
	WithCode(goerrors.CodeBadRequest)

// ErrSessionTeardown is returned when the identity provider's sign-out
// fails. Local session state is cleared regardless.
var ErrSessionTeardown = goerrors.New("identity provider sign-out failed", goerrors.CategoryInternal).
	WithTextCode(textCodeSessionTeardown).
	WithCode(goerrors.CodeInternal)

// IsCredentialError reports whether err belongs to the credential taxonomy
// (rejected login or signup).
func IsCredentialError(err error) bool {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	switch rich.TextCode {
	case textCodeInvalidCredentials, textCodeAccountExists, textCodeWeakPassword:
		return true
	}
	return false
}

// IsTeardownError reports whether err is a session teardown failure.
func IsTeardownError(err error) bool {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	return rich.TextCode == textCodeSessionTeardown
}

// credentialFailure passes provider errors through when they already carry
// the structured taxonomy, and wraps anything else as a credential rejection
// with a human-readable message.
func credentialFailure(err error, msg, identifier string) error {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryAuth, msg).
		WithTextCode(textCodeInvalidCredentials).
		WithCode(goerrors.CodeUnauthorized).
		WithMetadata(map[string]any{"identifier": identifier})
}
