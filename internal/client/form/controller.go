// Package form is a Go rendition of the contact page's script: it obtains a
// captcha token once, attaches it to the submission when one exists, and
// reports what the server answered.
package form

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/recaptcha-form/internal/domain"
)

// TokenSource is the client-side captcha capability.
type TokenSource interface {
	Execute(ctx context.Context, action string) (string, error)
}

// ErrNotReady is returned by token sources that cannot issue a token yet.
var ErrNotReady = errors.New("captcha capability not ready")

// StaticTokenSource always returns the same token. An empty token behaves
// like a capability that is not ready.
type StaticTokenSource string

func (s StaticTokenSource) Execute(context.Context, string) (string, error) {
	if s == "" {
		return "", ErrNotReady
	}
	return string(s), nil
}

// Result is what the server answered to one submission.
type Result struct {
	StatusCode int
	Redirected bool
	Location   string
	Message    string
}

// Controller holds the view state of one page load.
type Controller struct {
	client *resty.Client
	source TokenSource
	action string
	token  string
}

// NewController returns a controller posting to baseURL. source may be nil,
// in which case no token is ever obtained.
func NewController(baseURL string, source TokenSource, action string) *Controller {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}))
	return &Controller{client: client, source: source, action: action}
}

// RefreshToken asks the capability for a token and keeps it on success.
// Any failure is swallowed and leaves the current state untouched.
func (c *Controller) RefreshToken(ctx context.Context) {
	if c.source == nil {
		return
	}
	tok, err := c.source.Execute(ctx, c.action)
	if err != nil || tok == "" {
		return
	}
	c.token = tok
}

// Token returns the held token and whether one has been obtained.
func (c *Controller) Token() (string, bool) {
	return c.token, c.token != ""
}

// Fields builds the submission payload. The captcha field is present only
// once a token has been obtained.
func (c *Controller) Fields(name string) url.Values {
	v := url.Values{domain.FieldName: {name}}
	if tok, ok := c.Token(); ok {
		v.Set(domain.FieldCaptcha, tok)
	}
	return v
}

// Submit posts the form without following redirects.
func (c *Controller) Submit(ctx context.Context, name string) (*Result, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetFormDataFromValues(c.Fields(name)).
		Post("/")
	if err != nil {
		return nil, fmt.Errorf("submit form: %w", err)
	}

	res := &Result{StatusCode: resp.StatusCode()}
	switch {
	case resp.StatusCode() >= 300 && resp.StatusCode() < 400:
		res.Redirected = true
		res.Location = resp.Header().Get("Location")
	case resp.StatusCode() == http.StatusOK:
		var body struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(resp.Body(), &body); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		res.Message = body.Message
	default:
		return res, fmt.Errorf("submit form: server answered %d", resp.StatusCode())
	}
	return res, nil
}
