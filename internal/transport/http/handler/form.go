package handler

import (
	"net/http"

	"github.com/recaptcha-form/internal/application/submission"
	"github.com/recaptcha-form/internal/domain"
	"github.com/recaptcha-form/internal/pkg/id"
	"github.com/recaptcha-form/internal/transport/http/middleware"
)

const maxFormBytes = 64 << 10

// FormHandler handles contact form submissions.
type FormHandler struct {
	svc          submission.Service
	thankYouPath string
}

func NewFormHandler(svc submission.Service, thankYouPath string) *FormHandler {
	return &FormHandler{svc: svc, thankYouPath: thankYouPath}
}

// Submit verifies the posted captcha token and either redirects to the
// confirmation page or answers 200 with a rejection message. Scoring
// failures surface as a generic 500.
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}
	ip, _ := middleware.ClientIPFromContext(r.Context())
	sub := domain.NewSubmission(id.New(), ip, r.PostForm)

	res, err := h.svc.Submit(r.Context(), sub)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if res.Decision == domain.DecisionAccepted {
		http.Redirect(w, r, h.thankYouPath, http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: res.Message})
}
