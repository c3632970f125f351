package recaptcha

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/recaptcha-form/internal/config"
	"github.com/recaptcha-form/internal/domain"
)

// Assessment is the siteverify reply for one token.
type Assessment struct {
	Success     bool     `json:"success"`
	Score       float64  `json:"score"`
	Action      string   `json:"action"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes"`
}

// Verifier checks reCAPTCHA v3 tokens against the provider's siteverify endpoint.
type Verifier struct {
	client    *resty.Client
	verifyURL string
	threshold float64
}

func NewVerifier(cfg config.Recaptcha) *Verifier {
	client := resty.New()
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &Verifier{
		client:    client,
		verifyURL: cfg.VerifyURL,
		threshold: cfg.ScoreThreshold,
	}
}

// Assess posts the token and secret to siteverify and decodes the reply.
// Transport failures, non-2xx replies and undecodable bodies are returned
// wrapped in domain.ErrVerification. Nothing is retried.
func (v *Verifier) Assess(ctx context.Context, token, secret string) (*Assessment, error) {
	resp, err := v.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"secret":   secret,
			"response": token,
		}).
		Post(v.verifyURL)
	if err != nil {
		return nil, fmt.Errorf("siteverify request: %v: %w", err, domain.ErrVerification)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("siteverify status %d: %w", resp.StatusCode(), domain.ErrVerification)
	}

	var a Assessment
	if err := sonic.Unmarshal(resp.Body(), &a); err != nil {
		return nil, fmt.Errorf("siteverify decode: %v: %w", err, domain.ErrVerification)
	}
	return &a, nil
}

// Verify reports whether the token passed verification with a score at or
// above the configured threshold.
func (v *Verifier) Verify(ctx context.Context, token, secret string) (bool, error) {
	a, err := v.Assess(ctx, token, secret)
	if err != nil {
		return false, err
	}
	return a.Success && a.Score >= v.threshold, nil
}
