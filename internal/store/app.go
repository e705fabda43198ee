// Package store is the root of the storefront component tree. It owns the
// cart and the premium flag, wires the product display to the shared event
// bus and turns add-to-cart emits and drops into cart entries.
package store

import (
	"context"
	"errors"

	"storefront/internal/cart"
	"storefront/internal/dragdrop"
	"storefront/internal/eventbus"
	"storefront/internal/logger"
	"storefront/internal/product"
	"storefront/internal/reactive"

	"go.uber.org/zap"
)

var ErrDestroyed = errors.New("store app destroyed")

type Options struct {
	Premium bool
	Product product.Product
}

// App holds one shopper's storefront state. It is not safe for concurrent
// use; callers serialize access.
type App struct {
	bus     *eventbus.Bus
	changed *reactive.Notifier

	premium bool
	cart    cart.Cart
	display *product.Display

	destroyed bool
}

// New builds the component tree with a fresh event bus.
func New(opts Options) (*App, error) {
	a := &App{
		bus:     eventbus.New(),
		changed: &reactive.Notifier{},
		premium: opts.Premium,
	}

	d, err := product.NewDisplay(a.bus, a.changed, a.premium, opts.Product, a.onAddToCart)
	if err != nil {
		return nil, err
	}
	a.display = d

	return a, nil
}

// NewDefault builds an app seeded with the default product.
func NewDefault(premium bool) (*App, error) {
	return New(Options{Premium: premium, Product: product.DefaultProduct()})
}

func (a *App) Premium() bool               { return a.premium }
func (a *App) Display() *product.Display   { return a.display }
func (a *App) Changed() *reactive.Notifier { return a.changed }

// Cart returns the cart entries in insertion order.
func (a *App) Cart() []int {
	return a.cart.Items()
}

func (a *App) onAddToCart(ctx context.Context, variantID int) {
	a.add(ctx, variantID, "button")
}

// AddToCart appends the variant id given as text. Duplicates are kept.
func (a *App) AddToCart(ctx context.Context, raw string) error {
	if a.destroyed {
		return ErrDestroyed
	}
	id, err := cart.ParseVariantID(raw)
	if err != nil {
		return err
	}
	a.add(ctx, id, "direct")
	return nil
}

// OnDrop adds the variant carried by a drag payload. A drop without a
// variant id is ignored.
func (a *App) OnDrop(ctx context.Context, dt dragdrop.DataTransfer) error {
	if a.destroyed {
		return ErrDestroyed
	}
	raw := dt.GetData(dragdrop.KeyVariantID)
	if raw == "" {
		logger.FromCtx(ctx).Debug("drop without variant payload ignored")
		return nil
	}
	id, err := cart.ParseVariantID(raw)
	if err != nil {
		return err
	}
	a.add(ctx, id, "drop")
	return nil
}

func (a *App) add(ctx context.Context, variantID int, source string) {
	a.cart.Add(variantID)
	logger.FromCtx(ctx).Info("cart updated",
		zap.Int("variant_id", variantID),
		zap.String("source", source),
		zap.Int("cart_size", a.cart.Len()),
	)
	a.changed.Notify()
}

// Destroy unmounts the tree and releases its bus subscriptions.
func (a *App) Destroy() {
	if a.destroyed {
		return
	}
	a.destroyed = true
	a.display.Destroy()
}
