package product

import "errors"

var (
	// -- Seed data --
	ErrNoVariants         = errors.New("product has no variants")
	ErrDuplicateVariantID = errors.New("duplicate variant id")
	ErrNegativeQuantity   = errors.New("variant quantity is negative")

	// -- Interaction guards --
	ErrVariantOutOfRange   = errors.New("variant index out of range")
	ErrOutOfStock          = errors.New("selected variant is out of stock")
	ErrInvalidTab          = errors.New("unknown tab")
	ErrInvalidFilterRating = errors.New("filter rating must be between 0 and 5")
)
