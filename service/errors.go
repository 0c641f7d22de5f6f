// Package service holds the authentication core: OTP issuance and
// verification, the session store, token rotation and mail delivery.
package service

import "errors"

var (
	// ErrNoPendingVerification means the session carries no outstanding
	// code handle. The caller should be sent back to the request form.
	ErrNoPendingVerification = errors.New("no pending verification")

	// ErrInvalidOrExpiredCode deliberately covers both a wrong code and
	// a timed-out one, so the client can't tell them apart.
	ErrInvalidOrExpiredCode = errors.New("invalid or expired code")

	// ErrMailDelivery wraps any mail transport failure. The code row and
	// pending handle stay in place so the user can just retry.
	ErrMailDelivery = errors.New("failed to deliver mail")

	// ErrTokenRevoked means a refresh was attempted with a blacklisted
	// token. The only way out is a full re-login.
	ErrTokenRevoked = errors.New("refresh token has been revoked")
)

// Session data keys written by the auth flow.
const (
	SessionKeyUserID            = "user_id"
	SessionKeyPendingOTP        = "pending_otp_id"
	SessionKeyPostLoginRedirect = "post_login_redirect"
)
