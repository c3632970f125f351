package handler

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/recaptcha-form/internal/config"
	"github.com/recaptcha-form/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageIndex    = "index.html"
	pageThankYou = "thank_you.html"
)

// PageData is everything a page may render. It deliberately carries the
// public site key only.
type PageData struct {
	SiteKey      string
	Action       string
	CaptchaField string
	NameField    string
	ThankYouPath string
}

// PageHandler renders the HTML pages.
type PageHandler struct {
	tmpl *template.Template
	data PageData
}

func NewPageHandler(cfg *config.Config) (*PageHandler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &PageHandler{
		tmpl: tmpl,
		data: PageData{
			SiteKey:      cfg.Recaptcha.SiteKey,
			Action:       cfg.Recaptcha.Action,
			CaptchaField: domain.FieldCaptcha,
			NameField:    domain.FieldName,
			ThankYouPath: cfg.ThankYouPath,
		},
	}, nil
}

// Form renders the contact form. The hidden token input is added by the
// page script once a token has been obtained.
func (h *PageHandler) Form(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageIndex)
}

func (h *PageHandler) ThankYou(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageThankYou)
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, name string) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, h.data); err != nil {
		slog.ErrorContext(r.Context(), "render page", "page", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
