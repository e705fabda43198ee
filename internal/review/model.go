package review

type Review struct {
	Name   string `json:"name"`
	Review string `json:"review"`
	Rating int    `json:"rating"`
}

const (
	MinRating = 1
	MaxRating = 5
)
