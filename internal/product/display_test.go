package product

import (
	"context"
	"testing"

	"storefront/internal/dragdrop"
	"storefront/internal/eventbus"
	"storefront/internal/reactive"
	"storefront/internal/review"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDisplay(t *testing.T, premium bool) (*Display, *eventbus.Bus, *[]int) {
	t.Helper()
	bus := eventbus.New()
	var emitted []int
	d, err := NewDisplay(bus, nil, premium, DefaultProduct(), func(_ context.Context, id int) {
		emitted = append(emitted, id)
	})
	require.NoError(t, err)
	t.Cleanup(d.Destroy)
	return d, bus, &emitted
}

func TestDisplayDerivedFields(t *testing.T) {
	d, _, _ := newTestDisplay(t, true)

	assert.Equal(t, "Vue Mastery Socks", d.Title())
	assert.Equal(t, "./assets/vmSocks-green-onWhite.jpg", d.Image())
	assert.True(t, d.InStock())
	assert.Equal(t, "Free", d.Shipping())
	assert.Equal(t, 0, d.SelectedIndex())

	standard, _, _ := newTestDisplay(t, false)
	assert.Equal(t, "$2.99", standard.Shipping())
}

func TestSelectVariantRoundTrip(t *testing.T) {
	d, _, _ := newTestDisplay(t, true)
	variants := d.Product().Variants

	for i, v := range variants {
		require.NoError(t, d.SelectVariant(i))
		assert.Equal(t, v.Image, d.Image())
		assert.Equal(t, v.Quantity > 0, d.InStock())
		assert.Equal(t, v, d.SelectedVariant())
	}

	require.NoError(t, d.SelectVariant(0))
	origImage, origStock := d.Image(), d.InStock()
	require.NoError(t, d.SelectVariant(1))
	require.NoError(t, d.SelectVariant(0))
	assert.Equal(t, origImage, d.Image())
	assert.Equal(t, origStock, d.InStock())
}

func TestSelectVariantOutOfRange(t *testing.T) {
	d, _, _ := newTestDisplay(t, true)
	require.NoError(t, d.SelectVariant(1))

	assert.ErrorIs(t, d.SelectVariant(2), ErrVariantOutOfRange)
	assert.ErrorIs(t, d.SelectVariant(-1), ErrVariantOutOfRange)
	assert.Equal(t, 1, d.SelectedIndex())
}

func TestAddToCartDisabledMatchesStock(t *testing.T) {
	d, _, _ := newTestDisplay(t, true)

	for i := range d.Product().Variants {
		require.NoError(t, d.SelectVariant(i))
		assert.Equal(t, !d.InStock(), d.AddToCartDisabled())
	}
}

func TestAddToCart(t *testing.T) {
	d, _, emitted := newTestDisplay(t, true)

	require.NoError(t, d.AddToCart(context.Background()))
	assert.Equal(t, []int{2234}, *emitted)

	require.NoError(t, d.SelectVariant(1))
	err := d.AddToCart(context.Background())

	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Equal(t, []int{2234}, *emitted)
}

func TestAddToCartWithoutListener(t *testing.T) {
	d, err := NewDisplay(eventbus.New(), nil, true, DefaultProduct(), nil)
	require.NoError(t, err)
	defer d.Destroy()

	assert.NoError(t, d.AddToCart(context.Background()))
}

func TestBeginDrag(t *testing.T) {
	d, _, _ := newTestDisplay(t, true)
	dt := dragdrop.NewTransfer()

	d.BeginDrag(dt, 2235)

	assert.Equal(t, "2235", dt.GetData(dragdrop.KeyVariantID))
	assert.Equal(t, 0, d.SelectedIndex())
}

func TestReviewsArriveFromBus(t *testing.T) {
	d, bus, _ := newTestDisplay(t, true)
	first := review.Review{Name: "Amy", Review: "Great socks", Rating: 5}
	second := review.Review{Name: "Bo", Review: "Ok", Rating: 3}

	bus.Publish(context.Background(), eventbus.TopicReviewSubmitted, first)
	bus.Publish(context.Background(), eventbus.TopicReviewSubmitted, "not a review")
	bus.Publish(context.Background(), eventbus.TopicReviewSubmitted, second)

	assert.Equal(t, []review.Review{first, second}, d.Reviews())
	assert.Equal(t, []review.Review{first, second}, d.TabsProps().Reviews)
}

func TestNestedFormReachesDisplay(t *testing.T) {
	d, _, _ := newTestDisplay(t, true)
	form := d.Tabs().Form()

	form.SetName("Amy")
	form.SetText("Great socks")
	form.SetRating(5)
	require.NoError(t, form.Submit(context.Background()))

	require.NoError(t, d.Tabs().SetFilterRating(5))
	assert.Equal(t,
		[]review.Review{{Name: "Amy", Review: "Great socks", Rating: 5}},
		d.Tabs().FilteredReviews(d.TabsProps().Reviews),
	)

	require.NoError(t, d.Tabs().SetFilterRating(4))
	assert.Empty(t, d.Tabs().FilteredReviews(d.TabsProps().Reviews))
}

func TestDestroyReleasesSubscription(t *testing.T) {
	bus := eventbus.New()
	d, err := NewDisplay(bus, nil, true, DefaultProduct(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, bus.HandlerCount(eventbus.TopicReviewSubmitted))

	d.Destroy()
	d.Destroy()
	assert.Equal(t, 0, bus.HandlerCount(eventbus.TopicReviewSubmitted))

	// a remounted display is the only one receiving reviews
	again, err := NewDisplay(bus, nil, true, DefaultProduct(), nil)
	require.NoError(t, err)
	defer again.Destroy()

	bus.Publish(context.Background(), eventbus.TopicReviewSubmitted, review.Review{Name: "A", Review: "B", Rating: 1})
	assert.Empty(t, d.Reviews())
	assert.Len(t, again.Reviews(), 1)
}

func TestDisplayNotifiesOnChange(t *testing.T) {
	var changed reactive.Notifier
	var calls int
	changed.Watch(func() { calls++ })

	bus := eventbus.New()
	d, err := NewDisplay(bus, &changed, true, DefaultProduct(), nil)
	require.NoError(t, err)
	defer d.Destroy()

	require.NoError(t, d.SelectVariant(1))
	bus.Publish(context.Background(), eventbus.TopicReviewSubmitted, review.Review{Name: "A", Review: "B", Rating: 2})
	d.Tabs().SelectTab(TabDetails)

	assert.Equal(t, 3, calls)
}

func TestReselectingVariantDoesNotNotify(t *testing.T) {
	var changed reactive.Notifier
	var calls int
	changed.Watch(func() { calls++ })

	d, err := NewDisplay(eventbus.New(), &changed, true, DefaultProduct(), nil)
	require.NoError(t, err)
	defer d.Destroy()

	require.NoError(t, d.SelectVariant(0))
	assert.Equal(t, 0, calls)

	require.NoError(t, d.SelectVariant(1))
	require.NoError(t, d.SelectVariant(1))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, d.SelectedIndex())
}

func TestNewDisplayRejectsBadSeed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Product)
		err    error
	}{
		{"no variants", func(p *Product) { p.Variants = nil }, ErrNoVariants},
		{"duplicate ids", func(p *Product) { p.Variants[1].ID = p.Variants[0].ID }, ErrDuplicateVariantID},
		{"negative quantity", func(p *Product) { p.Variants[0].Quantity = -1 }, ErrNegativeQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := eventbus.New()
			p := DefaultProduct()
			tt.mutate(&p)

			d, err := NewDisplay(bus, nil, true, p, nil)

			assert.Nil(t, d)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, 0, bus.HandlerCount(eventbus.TopicReviewSubmitted))
		})
	}
}
