package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"storefront/internal/dragdrop"
	"storefront/internal/logger"
	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/product"
	"storefront/internal/review"
	"storefront/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler turns storefront requests into operations on the caller's session.
type Handler struct {
	metrics *metrics.Metrics
}

// NewHandler creates a handler; m may be nil.
func NewHandler(m *metrics.Metrics) *Handler {
	return &Handler{metrics: m}
}

// do runs fn on the request's session and returns the resulting state.
func (h *Handler) do(r *http.Request, fn func(*store.App) error) (store.View, error) {
	s, ok := middleware.SessionFrom(r.Context())
	if !ok {
		return store.View{}, errNoSession
	}

	var view store.View
	err := s.Do(func(a *store.App) error {
		if err := fn(a); err != nil {
			return err
		}
		view = a.Snapshot()
		return nil
	})
	return view, err
}

// Home handles GET /
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	view, err := h.do(r, func(*store.App) error { return nil })
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "storefront", view); err != nil {
		logger.FromCtx(r.Context()).Error("render storefront", zap.Error(err))
	}
}

// State handles GET /api/state
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	view, err := h.do(r, func(*store.App) error { return nil })
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: view})
}

// SelectVariant handles POST /variants/{index}, sent when a swatch is hovered.
func (h *Handler) SelectVariant(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: variant index %q", errBadInput, chi.URLParam(r, "index")))
		return
	}

	view, err := h.do(r, func(a *store.App) error {
		return a.Display().SelectVariant(index)
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, view)
}

// AddToCart handles POST /cart, the add-to-cart button.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.do(r, func(a *store.App) error {
		return a.Display().AddToCart(r.Context())
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.countCartAddition("button")
	respond(w, r, view)
}

// Drop handles POST /cart/drop with the drag payload as form values.
func (h *Handler) Drop(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", errBadInput, err))
		return
	}

	var before int
	view, err := h.do(r, func(a *store.App) error {
		before = len(a.Cart())
		return a.OnDrop(r.Context(), dragdrop.FromForm(r.PostForm))
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(view.Cart) > before {
		h.countCartAddition("drop")
	}
	respond(w, r, view)
}

// SelectTab handles POST /tabs
func (h *Handler) SelectTab(w http.ResponseWriter, r *http.Request) {
	tab, err := product.ParseTab(r.FormValue("tab"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	view, err := h.do(r, func(a *store.App) error {
		a.Display().Tabs().SelectTab(tab)
		return nil
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, view)
}

// FilterReviews handles POST /reviews/filter
func (h *Handler) FilterReviews(w http.ResponseWriter, r *http.Request) {
	raw := r.FormValue("rating")
	rating, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: rating %q", errBadInput, raw))
		return
	}

	view, err := h.do(r, func(a *store.App) error {
		return a.Display().Tabs().SetFilterRating(rating)
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, view)
}

// SubmitReview handles POST /reviews. The posted fields are written into the
// form before submitting, as a bound input would.
func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	text := r.FormValue("review")
	rating := review.ParseRating(r.FormValue("rating"))

	view, err := h.do(r, func(a *store.App) error {
		form := a.Display().Tabs().Form()
		form.SetName(name)
		form.SetText(text)
		form.SetRating(rating)
		return form.Submit(r.Context())
	})
	if err != nil {
		var verr *review.ValidationError
		if errors.As(err, &verr) && h.metrics != nil {
			h.metrics.ReviewsRejected.Inc()
		}
		writeError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.ReviewsSubmitted.Inc()
	}
	respond(w, r, view)
}

func (h *Handler) countCartAddition(source string) {
	if h.metrics != nil {
		h.metrics.CartAdditions.WithLabelValues(source).Inc()
	}
}
