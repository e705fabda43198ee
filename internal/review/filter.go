package review

// Filter returns the reviews whose rating equals rating, keeping their order.
// A rating of 0 means no filter and returns reviews unchanged.
func Filter(reviews []Review, rating int) []Review {
	if rating == 0 {
		return reviews
	}

	out := make([]Review, 0, len(reviews))
	for _, r := range reviews {
		if r.Rating == rating {
			out = append(out, r)
		}
	}
	return out
}
