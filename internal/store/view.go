package store

import (
	"storefront/internal/product"
	"storefront/internal/review"
)

// View is the read model of the whole tree handed to the renderer.
type View struct {
	Premium bool        `json:"premium"`
	Cart    []int       `json:"cart"`
	Product ProductView `json:"product"`
	Tabs    TabsView    `json:"tabs"`
}

type ProductView struct {
	Title             string            `json:"title"`
	Image             string            `json:"image"`
	AltText           string            `json:"altText"`
	InStock           bool              `json:"inStock"`
	AddToCartDisabled bool              `json:"addToCartDisabled"`
	Shipping          string            `json:"shipping"`
	Details           []string          `json:"details"`
	Variants          []product.Variant `json:"variants"`
	SelectedIndex     int               `json:"selectedVariant"`
}

type TabView struct {
	Name   product.Tab `json:"name"`
	Active bool        `json:"active"`
}

type TabsView struct {
	Tabs            []TabView       `json:"tabs"`
	Selected        product.Tab     `json:"selectedTab"`
	FilterRating    int             `json:"filterRating"`
	Reviews         []review.Review `json:"reviews"`
	FilteredReviews []review.Review `json:"filteredReviews"`
	Shipping        string          `json:"shipping"`
	Details         []string        `json:"details"`
	Form            FormView        `json:"form"`
}

type FormView struct {
	Name   string   `json:"name"`
	Review string   `json:"review"`
	Rating int      `json:"rating"`
	Errors []string `json:"errors"`
}

// Snapshot renders the current state into a View.
func (a *App) Snapshot() View {
	d := a.display
	p := d.Product()
	props := d.TabsProps()
	tabs := d.Tabs()
	form := tabs.Form()

	tabViews := make([]TabView, 0, len(product.AllTabs()))
	for _, t := range product.AllTabs() {
		tabViews = append(tabViews, TabView{Name: t, Active: tabs.Visible(t)})
	}

	return View{
		Premium: a.premium,
		Cart:    a.Cart(),
		Product: ProductView{
			Title:             d.Title(),
			Image:             d.Image(),
			AltText:           p.AltText,
			InStock:           d.InStock(),
			AddToCartDisabled: d.AddToCartDisabled(),
			Shipping:          d.Shipping(),
			Details:           append([]string(nil), p.Details...),
			Variants:          append([]product.Variant(nil), p.Variants...),
			SelectedIndex:     d.SelectedIndex(),
		},
		Tabs: TabsView{
			Tabs:            tabViews,
			Selected:        tabs.Selected(),
			FilterRating:    tabs.FilterRating(),
			Reviews:         props.Reviews,
			FilteredReviews: tabs.FilteredReviews(props.Reviews),
			Shipping:        props.Shipping,
			Details:         props.Details,
			Form: FormView{
				Name:   form.Name(),
				Review: form.Text(),
				Rating: form.Rating(),
				Errors: form.Errors(),
			},
		},
	}
}
