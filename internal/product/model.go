package product

type Variant struct {
	ID       int    `json:"variantId"`
	Color    string `json:"variantColor"`
	Image    string `json:"variantImage"`
	Quantity int    `json:"variantQuantity"`
}

type Product struct {
	Name     string    `json:"product"`
	Brand    string    `json:"brand"`
	AltText  string    `json:"altText"`
	Details  []string  `json:"details"`
	Variants []Variant `json:"variants"`
}

const (
	ShippingFree     = "Free"
	ShippingStandard = "$2.99"
)

// DefaultProduct is the catalog entry the storefront is seeded with.
func DefaultProduct() Product {
	return Product{
		Name:    "Socks",
		Brand:   "Vue Mastery",
		AltText: "A pair of socks",
		Details: []string{"80% cotton", "20% polyester", "Gender-neutral"},
		Variants: []Variant{
			{
				ID:       2234,
				Color:    "green",
				Image:    "./assets/vmSocks-green-onWhite.jpg",
				Quantity: 10,
			},
			{
				ID:       2235,
				Color:    "blue",
				Image:    "./assets/vmSocks-blue-onWhite.jpg",
				Quantity: 0,
			},
		},
	}
}

func (p Product) validate() error {
	if len(p.Variants) == 0 {
		return ErrNoVariants
	}
	seen := make(map[int]struct{}, len(p.Variants))
	for _, v := range p.Variants {
		if v.Quantity < 0 {
			return ErrNegativeQuantity
		}
		if _, ok := seen[v.ID]; ok {
			return ErrDuplicateVariantID
		}
		seen[v.ID] = struct{}{}
	}
	return nil
}
