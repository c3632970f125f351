package submission

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/recaptcha-form/internal/domain"
)

// Scorer is the external scoring capability. A true outcome marks the
// submission as automated.
type Scorer interface {
	Verify(ctx context.Context, token, secret string) (bool, error)
}

// Notifier receives accepted submissions.
type Notifier interface {
	Notify(ctx context.Context, sub domain.Submission) error
}

type Service interface {
	Submit(ctx context.Context, sub domain.Submission) (*domain.Result, error)
}

// ServiceDeps groups the collaborators of the submission service.
type ServiceDeps struct {
	Scorer   Scorer
	Secret   string
	Notifier Notifier     // optional
	Logger   *slog.Logger // optional, defaults to slog.Default()
}

type service struct {
	scorer   Scorer
	secret   string
	notifier Notifier
	log      *slog.Logger
}

func NewService(deps ServiceDeps) Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		scorer:   deps.Scorer,
		secret:   deps.Secret,
		notifier: deps.Notifier,
		log:      logger,
	}
}

// Submit scores the submission's token and decides its fate. The scorer is
// always consulted, with an empty token when none was posted. A falsy
// outcome accepts the submission; a truthy one rejects it with
// domain.RejectionMessage. Scorer errors are returned and nothing is retried.
func (s *service) Submit(ctx context.Context, sub domain.Submission) (*domain.Result, error) {
	log := s.log.With("submission_id", sub.ID, "has_token", sub.HasToken)

	automated, err := s.scorer.Verify(ctx, sub.Token, s.secret)
	if err != nil {
		log.WarnContext(ctx, "captcha scoring failed", "error", err)
		return nil, fmt.Errorf("score submission %s: %w", sub.ID, err)
	}

	if automated {
		log.InfoContext(ctx, "submission rejected", "decision", domain.DecisionRejected)
		return &domain.Result{Decision: domain.DecisionRejected, Message: domain.RejectionMessage}, nil
	}

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, sub); err != nil {
			log.ErrorContext(ctx, "submission notification failed", "error", err)
		}
	}
	log.InfoContext(ctx, "submission accepted", "decision", domain.DecisionAccepted)
	return &domain.Result{Decision: domain.DecisionAccepted}, nil
}
