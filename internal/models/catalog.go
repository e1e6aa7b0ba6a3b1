package models

// Brand is one row of the master sheet: a product line with its own product
// CSV and an availability flag that gates the whole section.
type Brand struct {
	Key           string `json:"key"`
	Name          string `json:"name"`
	Status        string `json:"status"`
	ProductCSVURL string `json:"-"`
}

func (b Brand) Available() bool {
	return b.Status == "available"
}

// Product is a catalog row parsed into validated values. Numeric fields are
// coerced exactly once at the loading boundary; the cart engine never sees a
// raw sheet cell.
type Product struct {
	ID               string   `json:"product_id"`
	Name             string   `json:"name"`
	UnitPrice        int      `json:"price"`
	MultiUnitPrice   int      `json:"price_multi,omitempty"`
	Status           string   `json:"status"`
	Category         string   `json:"category,omitempty"`
	BrandKey         string   `json:"brand_key,omitempty"`
	BrandName        string   `json:"brand_name,omitempty"`
	MaxPerCustomer   int      `json:"max_limit"`
	Stock            int      `json:"stock"`
	ImageURL         string   `json:"image_url,omitempty"`
	Specs            []string `json:"specs,omitempty"`
	AvailabilityNote string   `json:"availability_note,omitempty"`
	Note             string   `json:"note,omitempty"`
	Tag              string   `json:"tag,omitempty"`
}

func (p Product) Available() bool {
	return p.Status == "available" && p.Stock > 0
}

// Catalog is the full storefront dataset for one page session.
type Catalog struct {
	Brands   []Brand   `json:"brands"`
	Products []Product `json:"products"`
}

// Settings carries the site-wide key/value sheet. Notes are sanitized HTML,
// safe to inject into the storefront.
type Settings struct {
	Announcement  string `json:"announcement,omitempty"`
	GeneralNotes  string `json:"general_notes,omitempty"`
	ContactLineID string `json:"contact_line_id,omitempty"`
	ContactEmail  string `json:"contact_email,omitempty"`
}
