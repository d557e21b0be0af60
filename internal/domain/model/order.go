package model

import "time"

// Status describes the business state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// DeliveryMethod identifies the delivery channel for an order.
type DeliveryMethod string

const (
	DeliveryJNT    DeliveryMethod = "jnt"
	DeliveryLBC    DeliveryMethod = "lbc"
	DeliverySPX    DeliveryMethod = "spx"
	DeliveryWalkIn DeliveryMethod = "walkin"
)

// Order is one row of the tracked order collection. Optional text fields are
// pointers so an absent value stays distinguishable from an empty string.
type Order struct {
	ID             int64
	OrderCode      *string
	CustomerName   string
	FBProfile      *string
	OrderDetails   string
	Status         Status
	OrderDate      *string
	DeliveryMethod DeliveryMethod
	PaidProduct    float64
	PaidShipping   float64
	Notes          *string
	AttachmentURL  *string
	CreatedByEmail *string
	LastUpdated    time.Time
}

// OrderDraft is the payload written on insert or update. A nil AttachmentURL
// leaves the stored attachment untouched on update.
type OrderDraft struct {
	CustomerName   string
	FBProfile      *string
	OrderDetails   string
	PaidProduct    float64
	PaidShipping   float64
	Status         Status
	OrderDate      *string
	Notes          *string
	DeliveryMethod DeliveryMethod
	CreatedByEmail *string
	AttachmentURL  *string
}
