package review

import "strings"

const (
	MsgNameRequired   = "Name required."
	MsgReviewRequired = "Review required."
	MsgRatingRequired = "Rating required."
	MsgRatingRange    = "Rating must be between 1 and 5."
)

// ValidationError lists every problem found by one submit attempt, in field order.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid review: " + strings.Join(e.Errors, " ")
}
