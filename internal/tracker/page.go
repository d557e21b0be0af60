package tracker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "suppliertracker/internal/domain/errors"
	"suppliertracker/internal/domain/model"
	"suppliertracker/internal/domain/repository"
)

// ConfirmFunc asks the user to confirm a destructive action. Returning false
// aborts it before any remote call is issued.
type ConfirmFunc func(prompt string) bool

// FormValues carries raw input-control values into the form.
type FormValues struct {
	CustomerName   string
	FBProfile      string
	OrderDetails   string
	Status         string
	OrderDate      string
	DeliveryMethod string
	PaidProduct    string
	PaidShipping   string
	Notes          string
	Attachment     *Attachment
}

// Page owns one principal's order-page state and coordinates loads, saves
// and deletes against the remote stores. Each operation kind is
// single-flight: a second call while one is running is rejected with
// ErrBusy rather than queued.
type Page struct {
	gate    *SessionGate
	orders  repository.OrderRepository
	objects repository.ObjectStore
	admins  []string
	logger  *slog.Logger

	mu          sync.Mutex
	state       *ViewState
	form        Form
	filters     Filters
	dateOptions []string
	userEmail   string
	admin       bool
	lastError   string

	loadInFlight   bool
	saveInFlight   bool
	deleteInFlight bool
}

func NewPage(gate *SessionGate, orders repository.OrderRepository, objects repository.ObjectStore, admins []string, logger *slog.Logger) *Page {
	p := &Page{
		gate:        gate,
		orders:      orders,
		objects:     objects,
		admins:      admins,
		logger:      logger,
		state:       NewViewState(),
		filters:     DefaultFilters(),
		dateOptions: []string{FilterAll},
	}
	p.form.Reset()
	return p
}

// Load refreshes the snapshot from the order store.
func (p *Page) Load(ctx context.Context, token string) error {
	if err := p.begin(&p.loadInFlight); err != nil {
		return err
	}
	defer p.end(&p.loadInFlight)

	return p.refresh(ctx, token)
}

// Save persists the current form: a create when no record is being edited,
// an update otherwise. On success the snapshot is reloaded and the form
// reset; on failure the form and snapshot stay as they were. The attachment
// selection is cleared after the attempt no matter how it ends.
func (p *Page) Save(ctx context.Context, token string) error {
	if err := p.begin(&p.saveInFlight); err != nil {
		return err
	}
	defer p.end(&p.saveInFlight)

	defer func() {
		p.mu.Lock()
		p.form.Attachment = nil
		p.mu.Unlock()
	}()

	p.mu.Lock()
	p.form.StatusLine = statusLineSaving
	p.lastError = ""
	p.mu.Unlock()

	session, err := p.gate.Require(ctx, token)
	if err != nil {
		if !errors.Is(err, domainErrors.ErrNoSession) {
			p.failSave(err)
		}
		return err
	}

	p.mu.Lock()
	payload := p.form.Payload(session)
	attachment := p.form.Attachment
	editingID := p.state.EditingID
	p.mu.Unlock()

	if attachment != nil {
		url, err := p.uploadAttachment(ctx, attachment)
		if err != nil {
			p.failSave(err)
			return err
		}
		if url != "" {
			payload.AttachmentURL = &url
		}
	}

	if editingID != nil {
		err = p.orders.Update(ctx, *editingID, payload)
	} else {
		_, err = p.orders.Insert(ctx, payload)
	}
	if err != nil {
		p.failSave(err)
		return err
	}

	p.mu.Lock()
	p.form.StatusLine = statusLineSaved
	p.mu.Unlock()

	// Reload before resetting so the table reflects the write; the form is
	// reset even when the reload itself reports a problem.
	if err := p.refresh(ctx, token); err != nil {
		p.logger.Warn("reload after save failed", "error", err)
	}
	p.ResetForm()
	return nil
}

// Delete removes an order after confirmation. A declined prompt returns
// (false, nil) without touching the store; a store failure surfaces the
// error and leaves the snapshot unchanged.
func (p *Page) Delete(ctx context.Context, token string, id int64, confirm ConfirmFunc) (bool, error) {
	if err := p.begin(&p.deleteInFlight); err != nil {
		return false, err
	}
	defer p.end(&p.deleteInFlight)

	p.mu.Lock()
	target, ok := p.findLocked(id)
	p.mu.Unlock()
	if !ok {
		return false, domainErrors.ErrNotFound
	}

	if confirm == nil || !confirm(fmt.Sprintf("Delete order %s?", orderLabel(target))) {
		return false, nil
	}

	if err := p.orders.Delete(ctx, target.ID); err != nil {
		p.setError(err.Error())
		return false, err
	}

	if err := p.refresh(ctx, token); err != nil {
		p.logger.Warn("reload after delete failed", "error", err)
	}
	p.ResetForm()
	return true, nil
}

// StartEdit switches the form into edit mode for an order from the current
// snapshot.
func (p *Page) StartEdit(id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	target, ok := p.findLocked(id)
	if !ok {
		return domainErrors.ErrNotFound
	}
	editID := target.ID
	p.state.EditingID = &editID
	p.form.Hydrate(target)
	return nil
}

// ResetForm returns the form to create mode and drops the edit target.
func (p *Page) ResetForm() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.EditingID = nil
	p.form.Reset()
}

// SetForm replaces the form field values and re-applies the delivery rule.
// A nil attachment leaves any pending selection in place.
func (p *Page) SetForm(v FormValues) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.form.CustomerName = v.CustomerName
	p.form.FBProfile = v.FBProfile
	p.form.OrderDetails = v.OrderDetails
	p.form.Status = v.Status
	p.form.OrderDate = v.OrderDate
	p.form.DeliveryMethod = v.DeliveryMethod
	p.form.PaidProduct = v.PaidProduct
	p.form.PaidShipping = v.PaidShipping
	p.form.Notes = v.Notes
	if v.Attachment != nil {
		p.form.Attachment = v.Attachment
	}
	p.form.ApplyDeliveryRule()
}

// SetDelivery changes the delivery method on the form.
func (p *Page) SetDelivery(method string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form.SetDelivery(method)
}

// SetTab switches the active delivery tab.
func (p *Page) SetTab(tab string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if tab == "" {
		tab = TabAll
	}
	p.state.ActiveTab = tab
}

// SetFilters replaces the filter-widget values. Empty values fall back to
// the "all" sentinel; an unchanged query string is left as given.
func (p *Page) SetFilters(f Filters) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if f.Status == "" {
		f.Status = FilterAll
	}
	if f.Date == "" {
		f.Date = FilterAll
	}
	p.filters = f
}

// refresh runs the full reload sequence: session check, list fetch, snapshot
// replace and date-option rebuild. On a fetch failure the snapshot is
// emptied and a diagnostic message is recorded in place of the table.
func (p *Page) refresh(ctx context.Context, token string) error {
	session, err := p.gate.Require(ctx, token)
	if err != nil {
		if !errors.Is(err, domainErrors.ErrNoSession) {
			p.setError(err.Error())
		}
		return err
	}

	p.mu.Lock()
	p.userEmail = session.Email
	p.admin = isAdmin(session.Email, p.admins)
	p.lastError = ""
	p.mu.Unlock()

	orders, listErr := p.orders.List(ctx)

	p.mu.Lock()
	if listErr != nil {
		p.lastError = loadFailureMessage(listErr)
		p.state.ReplaceOrders(nil)
	} else {
		p.state.ReplaceOrders(orders)
	}
	p.dateOptions, p.filters.Date = DateOptions(p.state.Orders, p.filters.Date)
	p.mu.Unlock()

	if listErr != nil {
		return fmt.Errorf("list orders: %w", listErr)
	}
	return nil
}

// uploadAttachment stores the selected file under a fresh key and returns
// its public URL. Keys never collide, so an existing object is a hard error.
func (p *Page) uploadAttachment(ctx context.Context, att *Attachment) (string, error) {
	key := fmt.Sprintf("orders/%d_%s.%s", time.Now().UnixMilli(), randomSuffix(), attachmentExt(att.Name))
	opts := repository.UploadOptions{
		CacheControl: "3600",
		Upsert:       false,
		ContentType:  stringOr(att.ContentType, "image/jpeg"),
	}
	if err := p.objects.Upload(ctx, key, bytes.NewReader(att.Data), opts); err != nil {
		return "", fmt.Errorf("upload attachment: %w", err)
	}
	return p.objects.PublicURL(key), nil
}

func (p *Page) begin(flag *bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if *flag {
		return domainErrors.ErrBusy
	}
	*flag = true
	return nil
}

func (p *Page) end(flag *bool) {
	p.mu.Lock()
	*flag = false
	p.mu.Unlock()
}

func (p *Page) findLocked(id int64) (model.Order, bool) {
	for _, o := range p.state.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return model.Order{}, false
}

func (p *Page) setError(msg string) {
	p.mu.Lock()
	p.lastError = msg
	p.mu.Unlock()
}

func (p *Page) failSave(err error) {
	p.mu.Lock()
	p.lastError = err.Error()
	p.form.StatusLine = statusLineFailed
	p.mu.Unlock()
}

func loadFailureMessage(err error) string {
	return "Failed to load orders.\n\n" + err.Error() +
		"\n\nIf the table is empty, this is normal. If you have existing rows, check the access policy and table name."
}

func isAdmin(email string, admins []string) bool {
	for _, a := range admins {
		if strings.EqualFold(strings.TrimSpace(a), email) {
			return true
		}
	}
	return false
}

// attachmentExt derives a safe file extension from the original name: the
// last dot-separated segment, lowercased and stripped to [a-z0-9], with
// "jpg" as the fallback for names without one.
func attachmentExt(name string) string {
	parts := strings.Split(name, ".")
	ext := parts[len(parts)-1]
	if ext == "" {
		ext = "jpg"
	}
	ext = strings.ToLower(ext)
	var b strings.Builder
	for _, r := range ext {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "jpg"
	}
	return b.String()
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
