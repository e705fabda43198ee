package cart

import (
	"fmt"
	"strconv"
	"strings"
)

// Cart is the ordered list of variant ids the shopper added. Adding the same
// id twice keeps both entries.
type Cart struct {
	items []int
}

func (c *Cart) Add(variantID int) {
	c.items = append(c.items, variantID)
}

// Items returns the entries in the order they were added.
func (c *Cart) Items() []int {
	return append([]int{}, c.items...)
}

func (c *Cart) Len() int {
	return len(c.items)
}

// ParseVariantID coerces a variant id arriving as text, such as a drag payload.
func ParseVariantID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVariantID, raw)
	}
	return id, nil
}
