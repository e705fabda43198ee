package product

import (
	"fmt"

	"storefront/internal/eventbus"
	"storefront/internal/reactive"
	"storefront/internal/review"
)

type Tab string

const (
	TabReviews    Tab = "Reviews"
	TabMakeReview Tab = "Make a Review"
	TabShipping   Tab = "Shipping"
	TabDetails    Tab = "Details"
)

// AllTabs lists the panel tabs in display order.
func AllTabs() []Tab {
	return []Tab{TabReviews, TabMakeReview, TabShipping, TabDetails}
}

// ParseTab maps a tab label back to a Tab.
func ParseTab(s string) (Tab, error) {
	for _, t := range AllTabs() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTab, s)
}

// TabsProps is what the display passes down to its tab panel.
type TabsProps struct {
	Reviews  []review.Review
	Shipping string
	Details  []string
}

// Tabs is the Reviews / Make a Review / Shipping / Details panel. It owns the
// review form.
type Tabs struct {
	changed *reactive.Notifier

	selected     Tab
	filterRating int
	form         *review.Form
}

func NewTabs(bus *eventbus.Bus, changed *reactive.Notifier) *Tabs {
	return &Tabs{
		changed:  changed,
		selected: TabReviews,
		form:     review.NewForm(bus, changed),
	}
}

func (t *Tabs) Selected() Tab      { return t.selected }
func (t *Tabs) FilterRating() int  { return t.filterRating }
func (t *Tabs) Form() *review.Form { return t.form }

// SelectTab switches the visible panel. The filter and the reviews are kept.
func (t *Tabs) SelectTab(tab Tab) {
	t.selected = tab
	t.notify()
}

// Visible reports whether tab's panel is the one shown.
func (t *Tabs) Visible(tab Tab) bool {
	return t.selected == tab
}

// SetFilterRating sets the review filter; 0 shows every review.
func (t *Tabs) SetFilterRating(rating int) error {
	if rating < 0 || rating > review.MaxRating {
		return fmt.Errorf("%w: got %d", ErrInvalidFilterRating, rating)
	}
	t.filterRating = rating
	t.notify()
	return nil
}

// FilteredReviews applies the current filter to reviews.
func (t *Tabs) FilteredReviews(reviews []review.Review) []review.Review {
	return review.Filter(reviews, t.filterRating)
}

func (t *Tabs) notify() {
	if t.changed != nil {
		t.changed.Notify()
	}
}
