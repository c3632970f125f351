package notification

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/recaptcha-form/internal/domain"
)

const subject = "New contact form submission"

// Service forwards accepted submissions to the configured channels.
type Service interface {
	Notify(ctx context.Context, sub domain.Submission) error
}

type mailer interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type publisher interface {
	Publish(ctx context.Context, subject, message string) error
}

type service struct {
	mailer    mailer
	emailTo   string
	publisher publisher
}

// NewService builds a notifier. A nil mailer or empty emailTo disables
// email; a nil publisher disables SNS.
func NewService(m mailer, emailTo string, p publisher) Service {
	return &service{mailer: m, emailTo: emailTo, publisher: p}
}

func (s *service) Notify(ctx context.Context, sub domain.Submission) error {
	body := Format(sub)
	var errs []error
	if s.mailer != nil && s.emailTo != "" {
		if err := s.mailer.SendEmail(ctx, s.emailTo, subject, body); err != nil {
			errs = append(errs, err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, subject, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Format renders the submission fields one per line in key order. The
// captcha token is omitted.
func Format(sub domain.Submission) string {
	keys := make([]string, 0, len(sub.Fields))
	for k := range sub.Fields {
		if k == domain.FieldCaptcha {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "Submission %s\n", sub.ID)
	if sub.RemoteIP != "" {
		fmt.Fprintf(&b, "From: %s\n", sub.RemoteIP)
	}
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, sub.Fields[k])
	}
	return b.String()
}
