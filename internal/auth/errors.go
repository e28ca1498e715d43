package auth

import "errors"

// Authentication failures are collapsed into a small fixed set before they
// reach the HTTP layer. A lookup miss and a hash mismatch are deliberately
// indistinguishable, as are a bad signature and an undecodable claim.
var (
	// ErrMissingPassword indicates the candidate password was empty.
	ErrMissingPassword = errors.New("missing password")

	// ErrInvalidCredentials indicates the email/password pair did not match
	// a stored record.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrStoreUnavailable indicates the credential store failed for reasons
	// unrelated to credential correctness.
	ErrStoreUnavailable = errors.New("credential store unavailable")

	// ErrMissingToken indicates no bearer token was presented.
	ErrMissingToken = errors.New("missing token")

	// ErrInvalidToken indicates the token signature or claim did not verify.
	ErrInvalidToken = errors.New("invalid token")
)
