package tracker

import (
	"fmt"
	"strconv"
	"strings"

	"suppliertracker/internal/domain/model"
)

const (
	statusLineIdle    = "—"
	statusLineEditing = "Editing…"
	statusLineSaving  = "Saving…"
	statusLineSaved   = "Saved ✅"
	statusLineFailed  = "Save failed"
)

// Attachment is a file selected for upload alongside the order form.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Form models the create/edit order form. Every value field is a string,
// exactly as the corresponding input control holds it; conversion to typed
// values happens only when the write payload is built.
type Form struct {
	CustomerName   string
	FBProfile      string
	OrderDetails   string
	Status         string
	OrderDate      string
	DeliveryMethod string
	PaidProduct    string
	PaidShipping   string
	Notes          string

	ShippingLocked bool
	Attachment     *Attachment
	Title          string
	StatusLine     string
}

// Reset returns the form to create-mode defaults and clears any pending
// attachment selection.
func (f *Form) Reset() {
	*f = Form{
		Status:         string(model.StatusPending),
		DeliveryMethod: string(model.DeliveryJNT),
		Title:          "New Order",
		StatusLine:     statusLineIdle,
	}
	f.ApplyDeliveryRule()
}

// Hydrate fills every field from an existing record. Absent optional values
// become empty strings, amounts keep their exact decimal representation, and
// zero renders as "0" rather than blank.
func (f *Form) Hydrate(o model.Order) {
	f.CustomerName = o.CustomerName
	f.FBProfile = deref(o.FBProfile)
	f.OrderDetails = o.OrderDetails
	f.Status = stringOr(string(o.Status), string(model.StatusPending))
	f.OrderDate = deref(o.OrderDate)
	f.DeliveryMethod = stringOr(string(o.DeliveryMethod), string(model.DeliveryJNT))
	f.PaidProduct = formatAmount(o.PaidProduct)
	f.PaidShipping = formatAmount(o.PaidShipping)
	f.Notes = deref(o.Notes)
	f.Attachment = nil
	f.ApplyDeliveryRule()
	f.Title = fmt.Sprintf("Edit Order (%s)", orderLabel(o))
	f.StatusLine = statusLineEditing
}

// SetDelivery changes the delivery method and re-applies the walk-in rule.
func (f *Form) SetDelivery(method string) {
	f.DeliveryMethod = method
	f.ApplyDeliveryRule()
}

// ApplyDeliveryRule enforces the cross-field constraint between delivery
// method and shipping: a walk-in order carries no shipping fee, and the
// shipping field stays locked while walk-in is selected.
func (f *Form) ApplyDeliveryRule() {
	if f.DeliveryMethod == string(model.DeliveryWalkIn) {
		f.PaidShipping = "0"
		f.ShippingLocked = true
		return
	}
	f.ShippingLocked = false
}

// Payload dehydrates the form into a write payload. Text fields are trimmed,
// empty optional fields become absent, unparsable amounts default to zero,
// and the walk-in shipping override is applied unconditionally regardless of
// what the shipping field holds.
func (f *Form) Payload(session *model.Session) model.OrderDraft {
	draft := model.OrderDraft{
		CustomerName:   strings.TrimSpace(f.CustomerName),
		FBProfile:      nullIfEmpty(f.FBProfile),
		OrderDetails:   strings.TrimSpace(f.OrderDetails),
		Status:         model.Status(f.Status),
		OrderDate:      nullIfEmpty(f.OrderDate),
		DeliveryMethod: model.DeliveryMethod(f.DeliveryMethod),
		PaidProduct:    toNumber(f.PaidProduct),
		PaidShipping:   toNumber(f.PaidShipping),
		Notes:          nullIfEmpty(f.Notes),
	}
	if draft.DeliveryMethod == model.DeliveryWalkIn {
		draft.PaidShipping = 0
	}
	if session != nil {
		email := session.Email
		draft.CreatedByEmail = &email
	}
	return draft
}

func nullIfEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func toNumber(s string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return n
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// orderLabel names an order for user-facing text: the order code when one
// has been assigned, the raw id otherwise.
func orderLabel(o model.Order) string {
	if code := deref(o.OrderCode); code != "" {
		return code
	}
	return strconv.FormatInt(o.ID, 10)
}
