package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Handlers map these to HTTP status codes without leaking provider details.
var (
	ErrVerification = errors.New("captcha verification failed")
)
