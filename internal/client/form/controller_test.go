package form

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/recaptcha-form/internal/config"
	"github.com/recaptcha-form/internal/domain"
	transporthttp "github.com/recaptcha-form/internal/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockTokenSource struct{ mock.Mock }

func (m *mockTokenSource) Execute(ctx context.Context, action string) (string, error) {
	args := m.Called(ctx, action)
	return args.String(0), args.Error(1)
}

// fakeScorer is a deterministic stand-in for the scoring capability.
type fakeScorer struct {
	mu      sync.Mutex
	outcome bool
	err     error
	tokens  []string
	secrets []string
}

func (f *fakeScorer) Verify(_ context.Context, token, secret string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	f.secrets = append(f.secrets, secret)
	return f.outcome, f.err
}

func (f *fakeScorer) calls() ([]string, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tokens...), append([]string(nil), f.secrets...)
}

// --- helpers ---

const secret = "server-secret"

func newApp(t *testing.T, sc *fakeScorer) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		AllowedOrigins: []string{"*"},
		ThankYouPath:   "/thank-you",
		Recaptcha: config.Recaptcha{
			SiteKey:   "site-key",
			SecretKey: secret,
			Action:    "submit",
		},
	}
	router, err := transporthttp.NewRouter(cfg, &transporthttp.Deps{Scorer: sc})
	require.NoError(t, err)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

// --- unit tests ---

func TestRefreshToken_StoresToken(t *testing.T) {
	src := &mockTokenSource{}
	src.On("Execute", mock.Anything, "submit").Return("tok-123", nil).Once()
	c := NewController("http://unused", src, "submit")

	c.RefreshToken(context.Background())

	tok, ok := c.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok-123", tok)
	src.AssertExpectations(t)
}

func TestRefreshToken_NotReadyIsNoop(t *testing.T) {
	src := &mockTokenSource{}
	src.On("Execute", mock.Anything, "submit").Return("", ErrNotReady)
	c := NewController("http://unused", src, "submit")

	c.RefreshToken(context.Background())

	_, ok := c.Token()
	assert.False(t, ok)
}

func TestRefreshToken_FailureKeepsPreviousToken(t *testing.T) {
	src := &mockTokenSource{}
	src.On("Execute", mock.Anything, "submit").Return("tok-1", nil).Once()
	src.On("Execute", mock.Anything, "submit").Return("", errors.New("script gone")).Once()
	c := NewController("http://unused", src, "submit")

	c.RefreshToken(context.Background())
	c.RefreshToken(context.Background())

	tok, ok := c.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok-1", tok)
}

func TestRefreshToken_NilSource(t *testing.T) {
	c := NewController("http://unused", nil, "submit")
	c.RefreshToken(context.Background())
	_, ok := c.Token()
	assert.False(t, ok)
}

func TestFields_OmitsCaptchaWithoutToken(t *testing.T) {
	c := NewController("http://unused", StaticTokenSource(""), "submit")
	c.RefreshToken(context.Background())

	fields := c.Fields("Alice")
	_, present := fields[domain.FieldCaptcha]
	assert.False(t, present)
	assert.Equal(t, "Alice", fields.Get(domain.FieldName))
}

func TestFields_IncludesCaptchaWithToken(t *testing.T) {
	c := NewController("http://unused", StaticTokenSource("tok-123"), "submit")
	c.RefreshToken(context.Background())

	assert.Equal(t, url.Values{"name": {"Alice"}, "_captcha": {"tok-123"}}, c.Fields("Alice"))
}

func TestSubmit_NoTokenFieldOnTheWire(t *testing.T) {
	seen := make(chan bool, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		_, present := r.PostForm[domain.FieldCaptcha]
		seen <- present
		http.Redirect(w, r, "/thank-you", http.StatusSeeOther)
	}))
	defer srv.Close()

	c := NewController(srv.URL, nil, "submit")
	res, err := c.Submit(context.Background(), "Alice")
	require.NoError(t, err)
	assert.True(t, res.Redirected)
	assert.False(t, <-seen)
}

// --- end-to-end against the real router ---

func TestScenarioA_HumanRedirectsToThankYou(t *testing.T) {
	sc := &fakeScorer{outcome: false}
	app := newApp(t, sc)
	c := NewController(app.URL, StaticTokenSource("tok-123"), "submit")
	c.RefreshToken(context.Background())

	res, err := c.Submit(context.Background(), "Alice")
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.True(t, res.Redirected)
	assert.Equal(t, "/thank-you", res.Location)
	assert.Empty(t, res.Message)

	tokens, secrets := sc.calls()
	assert.Equal(t, []string{"tok-123"}, tokens)
	assert.Equal(t, []string{secret}, secrets)
}

func TestScenarioB_RobotGetsMessage(t *testing.T) {
	sc := &fakeScorer{outcome: true}
	app := newApp(t, sc)
	c := NewController(app.URL, StaticTokenSource("tok-123"), "submit")
	c.RefreshToken(context.Background())

	res, err := c.Submit(context.Background(), "Alice")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.False(t, res.Redirected)
	assert.Equal(t, "You are a robot!", res.Message)
}

func TestScenarioC_ScoringFailureIsServerError(t *testing.T) {
	sc := &fakeScorer{err: domain.ErrVerification}
	app := newApp(t, sc)
	c := NewController(app.URL, StaticTokenSource("tok-123"), "submit")
	c.RefreshToken(context.Background())

	res, err := c.Submit(context.Background(), "Alice")
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.False(t, res.Redirected)
	assert.Empty(t, res.Message)
}

func TestScenario_NoTokenStillScoredWithEmptyToken(t *testing.T) {
	sc := &fakeScorer{outcome: false}
	app := newApp(t, sc)
	c := NewController(app.URL, StaticTokenSource(""), "submit")
	c.RefreshToken(context.Background())

	res, err := c.Submit(context.Background(), "Alice")
	require.NoError(t, err)
	assert.True(t, res.Redirected)
	tokens, _ := sc.calls()
	assert.Equal(t, []string{""}, tokens)
}
