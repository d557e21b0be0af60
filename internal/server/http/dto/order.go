package dto

// OrderFormRequest carries the order form fields. Every field arrives as the
// raw string held by its input control; parsing happens further down.
type OrderFormRequest struct {
	CustomerName   string `form:"customer_name"`
	FBProfile      string `form:"fb_profile"`
	OrderDetails   string `form:"order_details"`
	Status         string `form:"status"`
	OrderDate      string `form:"order_date"`
	DeliveryMethod string `form:"delivery_method"`
	PaidProduct    string `form:"paid_product"`
	PaidShipping   string `form:"paid_shipping"`
	Notes          string `form:"notes"`
}

// DeleteResponse reports the outcome of a delete request.
type DeleteResponse struct {
	Deleted bool   `json:"deleted"`
	Prompt  string `json:"prompt,omitempty"`
}
