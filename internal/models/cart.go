package models

type AddItemRequest struct {
	ItemID         string `json:"item_id" validate:"required"`
	Name           string `json:"name" validate:"required"`
	UnitPrice      int    `json:"unit_price" validate:"gte=0"`
	MultiUnitPrice int    `json:"multi_unit_price,omitempty" validate:"gte=0"`
	BrandKey       string `json:"brand_key,omitempty"`
	MaxPerCustomer int    `json:"max_per_customer,omitempty" validate:"gte=0"`
	ImageRef       string `json:"image_ref,omitempty"`
}

type QuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// CartLineView is one priced line as shown to the storefront.
type CartLineView struct {
	ItemID             string `json:"item_id"`
	Name               string `json:"name"`
	UnitPrice          int    `json:"unit_price"`
	MultiUnitPrice     int    `json:"multi_unit_price,omitempty"`
	EffectiveUnitPrice int    `json:"effective_unit_price"`
	Quantity           int    `json:"quantity"`
	LineTotal          int    `json:"line_total"`
	Discounted         bool   `json:"discounted"`
	BrandKey           string `json:"brand_key,omitempty"`
	MaxPerCustomer     int    `json:"max_per_customer"`
	ImageRef           string `json:"image_ref,omitempty"`
}

type CartView struct {
	ID            string         `json:"id"`
	Lines         []CartLineView `json:"lines"`
	Subtotal      int            `json:"subtotal"`
	TotalQuantity int            `json:"total_quantity"`
}

// CartSummary is the checkout-page view: totals plus the shipping quote and
// the order label the operator copies into the external shipping tool.
type CartSummary struct {
	CartView
	ShippingMethod    string `json:"shipping_method,omitempty"`
	ShippingCategory  string `json:"shipping_category,omitempty"`
	ShippingFee       int    `json:"shipping_fee"`
	ShippingRuleFound bool   `json:"shipping_rule_found"`
	GrandTotal        int    `json:"grand_total"`
	OrderLabel        string `json:"order_label"`
}
