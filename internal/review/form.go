package review

import (
	"context"
	"strconv"
	"strings"

	"storefront/internal/eventbus"
	"storefront/internal/logger"
	"storefront/internal/reactive"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// submission is what a submit attempt validates. Field order is the order
// errors are reported in.
type submission struct {
	Name   string `validate:"required"`
	Review string `validate:"required"`
	Rating int    `validate:"required,min=1,max=5"`
}

// Form is the make-a-review form. Empty strings and a zero rating mean unset.
type Form struct {
	bus     *eventbus.Bus
	changed *reactive.Notifier

	name   string
	text   string
	rating int
	errors []string
}

// NewForm creates an empty form publishing accepted reviews on bus.
// changed may be nil.
func NewForm(bus *eventbus.Bus, changed *reactive.Notifier) *Form {
	return &Form{bus: bus, changed: changed}
}

func (f *Form) Name() string { return f.name }
func (f *Form) Text() string { return f.text }
func (f *Form) Rating() int  { return f.rating }

func (f *Form) SetName(v string) {
	f.name = v
	f.notify()
}

func (f *Form) SetText(v string) {
	f.text = v
	f.notify()
}

func (f *Form) SetRating(v int) {
	f.rating = v
	f.notify()
}

// Errors returns the messages from the last submit attempt.
func (f *Form) Errors() []string {
	return append([]string(nil), f.errors...)
}

// Submit validates the current fields. On success it publishes one
// review-submitted event, resets the fields and clears the errors. On failure
// it leaves the fields alone, replaces the error list and returns a
// *ValidationError.
func (f *Form) Submit(ctx context.Context) error {
	defer f.notify()

	s := submission{Name: f.name, Review: f.text, Rating: f.rating}
	if msgs := check(s); len(msgs) > 0 {
		f.errors = msgs
		logger.FromCtx(ctx).Debug("review rejected", zap.Strings("errors", msgs))
		return &ValidationError{Errors: append([]string(nil), msgs...)}
	}

	f.errors = nil
	f.name, f.text, f.rating = "", "", 0

	f.bus.Publish(ctx, eventbus.TopicReviewSubmitted, Review{
		Name:   s.Name,
		Review: s.Review,
		Rating: s.Rating,
	})
	return nil
}

func check(s submission) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.StructField() {
		case "Name":
			msgs = append(msgs, MsgNameRequired)
		case "Review":
			msgs = append(msgs, MsgReviewRequired)
		case "Rating":
			if fe.Tag() == "required" {
				msgs = append(msgs, MsgRatingRequired)
			} else {
				msgs = append(msgs, MsgRatingRange)
			}
		}
	}
	return msgs
}

func (f *Form) notify() {
	if f.changed != nil {
		f.changed.Notify()
	}
}

// ParseRating coerces a rating select value. Empty or non-numeric input is
// treated as unset (0).
func ParseRating(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}
