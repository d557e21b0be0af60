package tracker

import (
	"fmt"
	"strconv"
	"strings"

	"suppliertracker/internal/domain/model"
)

const detailsPreviewLimit = 140

// Option is one entry of the date-filter dropdown.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// KPIs summarise the full snapshot, independent of any active filter.
type KPIs struct {
	TotalOrders  int    `json:"total_orders"`
	PaidTotal    string `json:"paid_total"`
	PendingCount int    `json:"pending_count"`
}

// Row is one rendered table line.
type Row struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	StatusBadge   string `json:"status_badge"`
	ChannelBadge  string `json:"channel_badge"`
	Code          string `json:"code,omitempty"`
	Summary       string `json:"summary"`
	AttachmentURL string `json:"attachment_url,omitempty"`
}

// FormView is the rendered state of the create/edit form.
type FormView struct {
	CustomerName   string `json:"customer_name"`
	FBProfile      string `json:"fb_profile"`
	OrderDetails   string `json:"order_details"`
	Status         string `json:"status"`
	OrderDate      string `json:"order_date"`
	DeliveryMethod string `json:"delivery_method"`
	PaidProduct    string `json:"paid_product"`
	PaidShipping   string `json:"paid_shipping"`
	Notes          string `json:"notes"`
	ShippingLocked bool   `json:"shipping_locked"`
	HasAttachment  bool   `json:"has_attachment"`
	Title          string `json:"title"`
	StatusLine     string `json:"status_line"`
}

// View is everything needed to render the order page at a moment in time.
type View struct {
	UserEmail   string   `json:"user_email"`
	Admin       bool     `json:"admin"`
	Error       string   `json:"error,omitempty"`
	ActiveTab   string   `json:"active_tab"`
	Filters     Filters  `json:"filters"`
	DateOptions []Option `json:"date_options"`
	CountLabel  string   `json:"count_label"`
	KPIs        KPIs     `json:"kpis"`
	Rows        []Row    `json:"rows"`
	EditingID   *int64   `json:"editing_id,omitempty"`
	Form        FormView `json:"form"`
}

// View renders the page from current state: the table rows come from the
// filtered subset, the KPIs from the whole snapshot.
func (p *Page) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()

	filtered := Filtered(p.state.Orders, p.state.ActiveTab, p.filters)
	rows := make([]Row, 0, len(filtered))
	for _, o := range filtered {
		rows = append(rows, BuildRow(o))
	}

	options := make([]Option, 0, len(p.dateOptions))
	for _, v := range p.dateOptions {
		options = append(options, Option{Value: v, Label: dateLabel(v)})
	}

	return View{
		UserEmail:   p.userEmail,
		Admin:       p.admin,
		Error:       p.lastError,
		ActiveTab:   p.state.ActiveTab,
		Filters:     p.filters,
		DateOptions: options,
		CountLabel:  CountLabel(len(rows)),
		KPIs:        BuildKPIs(p.state.Orders),
		Rows:        rows,
		EditingID:   p.state.EditingID,
		Form: FormView{
			CustomerName:   p.form.CustomerName,
			FBProfile:      p.form.FBProfile,
			OrderDetails:   p.form.OrderDetails,
			Status:         p.form.Status,
			OrderDate:      p.form.OrderDate,
			DeliveryMethod: p.form.DeliveryMethod,
			PaidProduct:    p.form.PaidProduct,
			PaidShipping:   p.form.PaidShipping,
			Notes:          p.form.Notes,
			ShippingLocked: p.form.ShippingLocked,
			HasAttachment:  p.form.Attachment != nil,
			Title:          p.form.Title,
			StatusLine:     p.form.StatusLine,
		},
	}
}

// BuildKPIs computes the headline numbers over the unfiltered snapshot.
func BuildKPIs(orders []model.Order) KPIs {
	var total float64
	pending := 0
	for _, o := range orders {
		total += o.PaidProduct + o.PaidShipping
		if statusOf(o) == string(model.StatusPending) {
			pending++
		}
	}
	return KPIs{
		TotalOrders:  len(orders),
		PaidTotal:    Money(total),
		PendingCount: pending,
	}
}

// BuildRow renders one order for the table.
func BuildRow(o model.Order) Row {
	summary := make([]string, 0, 3)
	if d := deref(o.OrderDate); d != "" {
		summary = append(summary, "📅 "+d)
	}
	summary = append(summary, "💰 "+Money(o.PaidProduct+o.PaidShipping))
	if details := collapseWhitespace(o.OrderDetails); details != "" {
		summary = append(summary, truncate(details, detailsPreviewLimit))
	}
	return Row{
		ID:            o.ID,
		Name:          stringOr(o.CustomerName, "(No name)"),
		StatusBadge:   strings.ToUpper(statusOf(o)),
		ChannelBadge:  "🚚 " + strings.ToUpper(deliveryOf(o)),
		Code:          deref(o.OrderCode),
		Summary:       strings.Join(summary, " • "),
		AttachmentURL: deref(o.AttachmentURL),
	}
}

// Money renders an amount as currency: peso sign, thousands separators, at
// most two decimal places with trailing zeros trimmed.
func Money(n float64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.FormatFloat(n, 'f', 2, 64)
	whole, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := sign + "₱" + b.String()
	if frac != "" {
		out += "." + frac
	}
	return out
}

// CountLabel phrases the visible row count.
func CountLabel(n int) string {
	if n == 1 {
		return "1 order"
	}
	return fmt.Sprintf("%d orders", n)
}

func dateLabel(value string) string {
	if value == FilterAll {
		return "All Dates"
	}
	return value
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
