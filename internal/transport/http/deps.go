package http

import (
	"context"

	"github.com/recaptcha-form/internal/domain"
)

// Scorer is the minimal interface the router requires from the captcha
// scoring capability.
type Scorer interface {
	Verify(ctx context.Context, token, secret string) (bool, error)
}

// Notifier is the minimal interface the router requires from the
// accepted-submission notifier.
type Notifier interface {
	Notify(ctx context.Context, sub domain.Submission) error
}
