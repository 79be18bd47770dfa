package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/Togather-Foundation/beeps/internal/api/problem"
	"github.com/Togather-Foundation/beeps/internal/audit"
	"github.com/Togather-Foundation/beeps/internal/auth"
	"github.com/Togather-Foundation/beeps/internal/domain/beeps"
	"github.com/Togather-Foundation/beeps/internal/metrics"
	"github.com/Togather-Foundation/beeps/internal/telemetry"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
)

const (
	notFoundMessage   = "The resource you requested can't be found."
	auditActionCreate = "beep.create"
)

// Renderer draws the HTML pages served by the beeps handlers.
type Renderer interface {
	Page(w io.Writer, list []beeps.Beep) error
	Error(w io.Writer, status int, message string) error
}

type BeepsHandler struct {
	Log      *beeps.Log
	Secret   auth.Secret
	Policy   beeps.TextPolicy
	Renderer Renderer
	Audit    *audit.Logger
	Env      string
}

func NewBeepsHandler(log *beeps.Log, secret auth.Secret, policy beeps.TextPolicy, renderer Renderer, env string) *BeepsHandler {
	return &BeepsHandler{
		Log:      log,
		Secret:   secret,
		Policy:   policy,
		Renderer: renderer,
		Audit:    audit.NewLogger(zlog.Logger),
		Env:      env,
	}
}

// Create appends a beep for callers holding the shared secret. Anyone else
// gets the not-found page, before the body is even looked at.
func (h *BeepsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Log == nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", nil, h.env())
		return
	}

	if err := h.Secret.Verify(r); err != nil {
		reason := rejectionReason(err)
		metrics.AuthRejections.WithLabelValues(reason).Inc()
		h.Audit.LogFromRequest(r, auditActionCreate, audit.StatusFailure, map[string]string{"reason": reason})
		h.NotFound(w, r)
		return
	}

	input, err := beeps.DecodeCreateInput(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			problem.Write(w, r, http.StatusRequestEntityTooLarge, problem.TypePayloadTooLarge, "Payload too large", err, h.Env)
			return
		}
		problem.Write(w, r, http.StatusBadRequest, problem.TypeInvalidPayload, "Invalid request", err, h.Env)
		return
	}

	if err := h.Policy.Check(input.Text); err != nil {
		problem.Write(w, r, http.StatusUnprocessableEntity, problem.TypeTextTooLong, "Text too long", err, h.Env)
		return
	}

	textLength := utf8.RuneCountInString(input.Text)
	_, span := telemetry.Tracer().Start(r.Context(), "beeps.append")
	h.Log.Append(input.Text)
	span.SetAttributes(attribute.Int("beep.text_length", textLength))
	span.End()

	h.Audit.LogFromRequest(r, auditActionCreate, audit.StatusSuccess, map[string]string{"text_length": strconv.Itoa(textLength)})
	zerolog.Ctx(r.Context()).Debug().Str("text", input.Text).Msg("beep accepted")

	w.WriteHeader(http.StatusCreated)
}

// Home lists every beep, newest first.
func (h *BeepsHandler) Home(w http.ResponseWriter, r *http.Request) {
	if h.Log == nil {
		h.serverError(w, r)
		return
	}

	list := beeps.NewestFirst(h.Log.Snapshot())

	var buf bytes.Buffer
	if err := h.Renderer.Page(&buf, list); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("render home page")
		h.serverError(w, r)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

// NotFound is the uniform fallback for unmatched routes and refused beeps.
func (h *BeepsHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.errorPage(w, r, http.StatusNotFound, notFoundMessage)
}

func (h *BeepsHandler) serverError(w http.ResponseWriter, r *http.Request) {
	h.errorPage(w, r, http.StatusInternalServerError, "Something went wrong on our side.")
}

func (h *BeepsHandler) errorPage(w http.ResponseWriter, r *http.Request, status int, message string) {
	var buf bytes.Buffer
	if err := h.Renderer.Error(&buf, status, message); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Int("status", status).Msg("render error page")
		http.Error(w, http.StatusText(status), status)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

func (h *BeepsHandler) env() string {
	if h == nil {
		return ""
	}
	return h.Env
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrMissingCredential):
		return "missing"
	case errors.Is(err, auth.ErrMalformedCredential):
		return "malformed"
	default:
		return "mismatch"
	}
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
