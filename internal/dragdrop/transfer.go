// Package dragdrop models the per-drag key/value payload channel that a drag
// source writes on drag start and a drop target reads on drop.
package dragdrop

import "net/url"

// KeyVariantID is the payload key carrying a dragged variant id.
const KeyVariantID = "variantId"

// DataTransfer is the payload of one drag operation. GetData returns "" for
// unknown keys.
type DataTransfer interface {
	SetData(key, value string)
	GetData(key string) string
}

// Transfer is an in-memory DataTransfer.
type Transfer map[string]string

func NewTransfer() Transfer {
	return Transfer{}
}

func (t Transfer) SetData(key, value string) {
	t[key] = value
}

func (t Transfer) GetData(key string) string {
	return t[key]
}

// FromForm reads a drop payload posted as form values by the browser.
func FromForm(values url.Values) DataTransfer {
	t := NewTransfer()
	for key := range values {
		t[key] = values.Get(key)
	}
	return t
}
