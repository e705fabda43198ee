package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidVariantID = errors.New("invalid variant id")
)
