package models

// CheckoutRequest finalizes a cart: the operator needs the order label and
// the grand total, and the member optionally receives a confirmation email.
type CheckoutRequest struct {
	CartID           string `json:"cart_id" validate:"required,uuid4"`
	ShippingMethod   string `json:"shipping_method" validate:"required"`
	ShippingCategory string `json:"shipping_category,omitempty"`
	Email            string `json:"email,omitempty" validate:"omitempty,email"`
}

type CheckoutResponse struct {
	OrderLabel    string `json:"order_label"`
	Subtotal      int    `json:"subtotal"`
	ShippingFee   int    `json:"shipping_fee"`
	GrandTotal    int    `json:"grand_total"`
	TotalQuantity int    `json:"total_quantity"`
	EmailSent     bool   `json:"email_sent"`
}

// EmailNotificationRequest is the payload handed to the mail sender.
type EmailNotificationRequest struct {
	To          string `json:"to" validate:"required,email"`
	Subject     string `json:"subject" validate:"required"`
	Content     string `json:"content" validate:"required"`
	HTMLContent string `json:"html_content,omitempty"`
}
