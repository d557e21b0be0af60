package tracker

import (
	"testing"

	"suppliertracker/internal/domain/model"
)

func TestFormResetDefaults(t *testing.T) {
	var f Form
	f.CustomerName = "left over"
	f.Attachment = &Attachment{Name: "a.png"}

	f.Reset()

	if f.Status != "pending" || f.DeliveryMethod != "jnt" {
		t.Fatalf("defaults: status=%q delivery=%q", f.Status, f.DeliveryMethod)
	}
	if f.CustomerName != "" || f.Attachment != nil {
		t.Fatalf("stale values survived reset: %+v", f)
	}
	if f.Title != "New Order" || f.StatusLine != "—" {
		t.Fatalf("title=%q status line=%q", f.Title, f.StatusLine)
	}
	if f.ShippingLocked {
		t.Fatal("shipping locked after reset")
	}
}

func TestFormHydrate(t *testing.T) {
	order := model.Order{
		ID:             5,
		OrderCode:      strPtr("ORD-0005"),
		CustomerName:   "Alice",
		OrderDetails:   "Widget",
		Status:         model.StatusPaid,
		OrderDate:      strPtr("2024-01-02"),
		DeliveryMethod: model.DeliveryLBC,
		PaidProduct:    12.5,
		PaidShipping:   0,
	}

	var f Form
	f.Hydrate(order)

	if f.FBProfile != "" || f.Notes != "" {
		t.Fatalf("absent optionals should hydrate empty, got fb=%q notes=%q", f.FBProfile, f.Notes)
	}
	if f.PaidProduct != "12.5" {
		t.Fatalf("paid product = %q", f.PaidProduct)
	}
	if f.PaidShipping != "0" {
		t.Fatalf("zero amount must render as %q, got %q", "0", f.PaidShipping)
	}
	if f.Title != "Edit Order (ORD-0005)" {
		t.Fatalf("title = %q", f.Title)
	}
	if f.StatusLine != "Editing…" {
		t.Fatalf("status line = %q", f.StatusLine)
	}
}

func TestFormHydrateWithoutCodeUsesID(t *testing.T) {
	var f Form
	f.Hydrate(model.Order{ID: 42, CustomerName: "B"})

	if f.Title != "Edit Order (42)" {
		t.Fatalf("title = %q", f.Title)
	}
	if f.Status != "pending" || f.DeliveryMethod != "jnt" {
		t.Fatalf("empty enums must hydrate to defaults: %q %q", f.Status, f.DeliveryMethod)
	}
}

func TestFormDeliveryRule(t *testing.T) {
	var f Form
	f.Reset()
	f.PaidShipping = "45"

	f.SetDelivery("walkin")
	if f.PaidShipping != "0" || !f.ShippingLocked {
		t.Fatalf("walkin: shipping=%q locked=%v", f.PaidShipping, f.ShippingLocked)
	}

	f.SetDelivery("lbc")
	if f.ShippingLocked {
		t.Fatal("shipping still locked after leaving walkin")
	}
}

func TestFormPayload(t *testing.T) {
	f := Form{
		CustomerName:   "  Alice  ",
		FBProfile:      "   ",
		OrderDetails:   "Widget x2",
		Status:         "paid",
		OrderDate:      "2024-01-02",
		DeliveryMethod: "lbc",
		PaidProduct:    "100.50",
		PaidShipping:   "abc",
		Notes:          "fragile",
	}
	session := &model.Session{UserID: 1, Email: "user@example.com"}

	d := f.Payload(session)

	if d.CustomerName != "Alice" {
		t.Fatalf("customer name = %q", d.CustomerName)
	}
	if d.FBProfile != nil {
		t.Fatalf("blank fb profile should be absent, got %q", *d.FBProfile)
	}
	if d.PaidProduct != 100.5 {
		t.Fatalf("paid product = %v", d.PaidProduct)
	}
	if d.PaidShipping != 0 {
		t.Fatalf("unparsable shipping must default to 0, got %v", d.PaidShipping)
	}
	if d.Notes == nil || *d.Notes != "fragile" {
		t.Fatalf("notes = %v", d.Notes)
	}
	if d.CreatedByEmail == nil || *d.CreatedByEmail != "user@example.com" {
		t.Fatalf("created by = %v", d.CreatedByEmail)
	}
}

func TestFormPayloadWalkinOverridesShipping(t *testing.T) {
	f := Form{
		CustomerName:   "A",
		DeliveryMethod: "walkin",
		PaidShipping:   "999", // tampered past the locked control
	}

	d := f.Payload(nil)

	if d.PaidShipping != 0 {
		t.Fatalf("walkin shipping = %v, want 0", d.PaidShipping)
	}
	if d.CreatedByEmail != nil {
		t.Fatalf("no session, created by = %v", d.CreatedByEmail)
	}
}

func TestFormHydratePayloadRoundTrip(t *testing.T) {
	order := model.Order{
		ID:             9,
		CustomerName:   "Carla",
		FBProfile:      strPtr("fb.com/carla"),
		OrderDetails:   "Stickers",
		Status:         model.StatusShipped,
		OrderDate:      strPtr("2024-02-10"),
		DeliveryMethod: model.DeliverySPX,
		PaidProduct:    75,
		PaidShipping:   20,
		Notes:          strPtr("leave at gate"),
	}

	var f Form
	f.Hydrate(order)
	d := f.Payload(nil)

	if d.CustomerName != order.CustomerName ||
		*d.FBProfile != *order.FBProfile ||
		d.OrderDetails != order.OrderDetails ||
		d.Status != order.Status ||
		*d.OrderDate != *order.OrderDate ||
		d.DeliveryMethod != order.DeliveryMethod ||
		d.PaidProduct != order.PaidProduct ||
		d.PaidShipping != order.PaidShipping ||
		*d.Notes != *order.Notes {
		t.Fatalf("round trip drifted: %+v", d)
	}
}
