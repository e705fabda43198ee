package web

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"storefront/internal/cart"
	"storefront/internal/logger"
	"storefront/internal/product"
	"storefront/internal/review"
	"storefront/internal/session"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"ratings": func() []int { return []int{5, 4, 3, 2, 1} },
}).ParseFS(templateFS, "templates/*.html"))

var (
	errBadInput  = errors.New("bad input")
	errNoSession = errors.New("no session on request")
)

type response struct {
	Data  any            `json:"data,omitempty"`
	Error *errorResponse `json:"error,omitempty"`
}

type errorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respond finishes a successful action: JSON clients get the new state,
// form posts are sent back to the page.
func respond(w http.ResponseWriter, r *http.Request, data any) {
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, response{Data: data})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func statusFor(err error) (int, string) {
	var verr *review.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, "VALIDATION_FAILED"
	case errors.Is(err, product.ErrOutOfStock):
		return http.StatusConflict, "OUT_OF_STOCK"
	case errors.Is(err, session.ErrSessionClosed):
		return http.StatusGone, "SESSION_CLOSED"
	case errors.Is(err, errBadInput),
		errors.Is(err, product.ErrVariantOutOfRange),
		errors.Is(err, product.ErrInvalidTab),
		errors.Is(err, product.ErrInvalidFilterRating),
		errors.Is(err, cart.ErrInvalidVariantID):
		return http.StatusBadRequest, "INVALID_INPUT"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)

	var verr *review.ValidationError
	if errors.As(err, &verr) && !wantsJSON(r) {
		// the form renders its own errors
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	msg := err.Error()
	log := logger.FromCtx(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
		msg = http.StatusText(status)
	} else {
		log.Debug("request rejected", zap.Int("status", status), zap.Error(err))
	}

	if wantsJSON(r) {
		resp := &errorResponse{Code: code, Message: msg}
		if verr != nil {
			resp.Errors = verr.Errors
		}
		writeJSON(w, status, response{Error: resp})
		return
	}
	http.Error(w, msg, status)
}
