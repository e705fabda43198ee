package product

import (
	"context"
	"fmt"
	"strconv"

	"storefront/internal/dragdrop"
	"storefront/internal/eventbus"
	"storefront/internal/logger"
	"storefront/internal/reactive"
	"storefront/internal/review"

	"go.uber.org/zap"
)

// AddToCartFunc receives the variant id emitted by the add-to-cart button.
type AddToCartFunc func(ctx context.Context, variantID int)

// Display shows one product with its variants and collects the reviews
// submitted from its tab panel.
type Display struct {
	changed   *reactive.Notifier
	onAddCart AddToCartFunc

	premium  bool
	product  Product
	selected int
	reviews  []review.Review

	tabs *Tabs
	sub  *eventbus.Subscription
}

// NewDisplay seeds a display with p and subscribes it to submitted reviews.
// onAddCart is the parent's add-to-cart listener and may be nil. Destroy must
// be called when the display is discarded.
func NewDisplay(
	bus *eventbus.Bus,
	changed *reactive.Notifier,
	premium bool,
	p Product,
	onAddCart AddToCartFunc,
) (*Display, error) {
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("seed product %q: %w", p.Name, err)
	}

	d := &Display{
		changed:   changed,
		onAddCart: onAddCart,
		premium:   premium,
		product:   p,
		tabs:      NewTabs(bus, changed),
	}
	d.sub = bus.Subscribe(eventbus.TopicReviewSubmitted, d.onReviewSubmitted)

	return d, nil
}

func (d *Display) onReviewSubmitted(ctx context.Context, payload any) {
	r, ok := payload.(review.Review)
	if !ok {
		logger.FromCtx(ctx).Warn("unexpected review payload",
			zap.String("type", fmt.Sprintf("%T", payload)),
		)
		return
	}
	d.reviews = append(d.reviews, r)
	d.notify()
}

// Destroy releases the review subscription. It is safe to call twice.
func (d *Display) Destroy() {
	d.sub.Unsubscribe()
}

func (d *Display) Title() string {
	return d.product.Brand + " " + d.product.Name
}

func (d *Display) Image() string {
	return d.current().Image
}

func (d *Display) InStock() bool {
	return d.current().Quantity > 0
}

// AddToCartDisabled mirrors the disabled state of the add-to-cart button.
func (d *Display) AddToCartDisabled() bool {
	return !d.InStock()
}

func (d *Display) Shipping() string {
	if d.premium {
		return ShippingFree
	}
	return ShippingStandard
}

func (d *Display) SelectedIndex() int { return d.selected }
func (d *Display) Product() Product   { return d.product }
func (d *Display) Tabs() *Tabs        { return d.tabs }

// SelectedVariant returns the variant currently shown.
func (d *Display) SelectedVariant() Variant {
	return d.current()
}

// Reviews returns the submitted reviews in arrival order.
func (d *Display) Reviews() []review.Review {
	return append([]review.Review(nil), d.reviews...)
}

// TabsProps builds the props passed down to the tab panel.
func (d *Display) TabsProps() TabsProps {
	return TabsProps{
		Reviews:  d.Reviews(),
		Shipping: d.Shipping(),
		Details:  append([]string(nil), d.product.Details...),
	}
}

// SelectVariant shows the variant at index. An out of range index leaves the
// selection unchanged. Reselecting the current variant does not notify.
func (d *Display) SelectVariant(index int) error {
	if index < 0 || index >= len(d.product.Variants) {
		return fmt.Errorf("%w: %d of %d", ErrVariantOutOfRange, index, len(d.product.Variants))
	}
	if index == d.selected {
		return nil
	}
	d.selected = index
	d.notify()
	return nil
}

// AddToCart emits the selected variant id to the parent. It requires the
// selected variant to be in stock.
func (d *Display) AddToCart(ctx context.Context) error {
	v := d.current()

	log := logger.FromCtx(ctx).With(
		zap.String("component", "product"),
		zap.String("method", "AddToCart"),
		zap.Int("variant_id", v.ID),
	)

	if !d.InStock() {
		log.Warn("add to cart while out of stock")
		return ErrOutOfStock
	}

	if d.onAddCart != nil {
		d.onAddCart(ctx, v.ID)
	}
	log.Debug("add to cart emitted")
	return nil
}

// BeginDrag packs variantID into the drag payload for a drop target to read.
func (d *Display) BeginDrag(dt dragdrop.DataTransfer, variantID int) {
	dt.SetData(dragdrop.KeyVariantID, strconv.Itoa(variantID))
}

func (d *Display) current() Variant {
	return d.product.Variants[d.selected]
}

func (d *Display) notify() {
	if d.changed != nil {
		d.changed.Notify()
	}
}
