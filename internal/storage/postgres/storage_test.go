package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "suppliertracker/internal/domain/errors"
	"suppliertracker/internal/domain/model"
)

func newMockStorage(t *testing.T) (*Storage, pgxmockv3.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmockv3.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	storage := &Storage{pool: mock, logger: logger}
	return storage, mock
}

func expectSchema(mock pgxmockv3.PgxPoolIface) {
	tableStatements := []string{
		"CREATE TABLE IF NOT EXISTS users",
		"CREATE TABLE IF NOT EXISTS orders",
	}
	for _, stmt := range tableStatements {
		mock.ExpectExec(stmt).WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
	}
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_orders_last_updated").WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
}

func TestNew(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	if _, err := New(context.Background(), ":://bad", logger); err == nil {
		t.Fatal("expected error for unparsable dsn")
	}
}

func TestInitSchema(t *testing.T) {
	storage, mock := newMockStorage(t)
	expectSchema(mock)

	if err := storage.initSchema(context.Background()); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestInitSchemaError(t *testing.T) {
	storage, mock := newMockStorage(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnError(errors.New("boom"))

	if err := storage.initSchema(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestUserRepositoryCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	users := storage.Users()

	created := time.Now()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("user@example.com", "hash").
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "created_at"}).AddRow(int64(7), created))

	u, err := users.Create(context.Background(), "user@example.com", "hash")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID != 7 || u.Email != "user@example.com" {
		t.Fatalf("unexpected user %+v", u)
	}
}

func TestUserRepositoryGetByEmailNotFound(t *testing.T) {
	storage, mock := newMockStorage(t)
	users := storage.Users()

	mock.ExpectQuery("SELECT id, email, password_hash, created_at FROM users WHERE email").
		WithArgs("ghost@example.com").
		WillReturnError(pgx.ErrNoRows)

	if _, err := users.GetByEmail(context.Background(), "ghost@example.com"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOrderRepositoryList(t *testing.T) {
	storage, mock := newMockStorage(t)
	orders := storage.Orders()

	code := "ORD-0001"
	date := "2024-01-02"
	now := time.Now()
	rows := pgxmockv3.NewRows([]string{
		"id", "order_id", "customer_name", "fb_profile", "order_details", "status",
		"order_date", "delivery_method", "paid_product", "paid_shipping", "notes",
		"attachment_url", "created_by_email", "last_updated",
	}).AddRow(int64(1), &code, "Ana", nil, "2x widget", model.StatusPending,
		&date, model.DeliveryJNT, 100.0, 50.0, nil, nil, nil, now)

	mock.ExpectQuery("FROM orders ORDER BY last_updated DESC").WillReturnRows(rows)

	list, err := orders.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one order, got %d", len(list))
	}
	if list[0].CustomerName != "Ana" || *list[0].OrderCode != "ORD-0001" {
		t.Fatalf("unexpected order %+v", list[0])
	}
	if list[0].Notes != nil {
		t.Fatalf("expected nil notes, got %v", *list[0].Notes)
	}
}

func TestOrderRepositoryInsertAssignsCode(t *testing.T) {
	storage, mock := newMockStorage(t)
	orders := storage.Orders()

	draft := model.OrderDraft{
		CustomerName:   "Ana",
		OrderDetails:   "2x widget",
		Status:         model.StatusPending,
		DeliveryMethod: model.DeliveryJNT,
		PaidProduct:    100,
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(draft.CustomerName, draft.FBProfile, draft.OrderDetails, draft.Status,
			draft.OrderDate, draft.DeliveryMethod, draft.PaidProduct, draft.PaidShipping,
			draft.Notes, draft.AttachmentURL, draft.CreatedByEmail).
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "last_updated"}).AddRow(int64(12), time.Now()))
	mock.ExpectQuery("UPDATE orders SET order_id").
		WithArgs(int64(12)).
		WillReturnRows(pgxmockv3.NewRows([]string{"order_id"}).AddRow(strPtr("ORD-0012")))
	mock.ExpectCommit()

	order, err := orders.Insert(context.Background(), draft)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if order.ID != 12 {
		t.Fatalf("unexpected id %d", order.ID)
	}
	if order.OrderCode == nil || *order.OrderCode != "ORD-0012" {
		t.Fatalf("unexpected order code %v", order.OrderCode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestOrderRepositoryInsertRollsBack(t *testing.T) {
	storage, mock := newMockStorage(t)
	orders := storage.Orders()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(),
			pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(),
			pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg()).
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	if _, err := orders.Insert(context.Background(), model.OrderDraft{}); err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestOrderRepositoryUpdate(t *testing.T) {
	storage, mock := newMockStorage(t)
	orders := storage.Orders()

	url := "http://objects.test/attachments/orders/a.jpg"
	draft := model.OrderDraft{CustomerName: "Bo", Status: model.StatusPaid, DeliveryMethod: model.DeliveryWalkIn, AttachmentURL: &url}

	mock.ExpectExec("UPDATE orders SET").
		WithArgs(draft.CustomerName, draft.FBProfile, draft.OrderDetails, draft.Status,
			draft.OrderDate, draft.DeliveryMethod, draft.PaidProduct, draft.PaidShipping,
			draft.Notes, draft.CreatedByEmail, draft.AttachmentURL, int64(5)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))

	if err := orders.Update(context.Background(), 5, draft); err != nil {
		t.Fatalf("update: %v", err)
	}
}

func TestOrderRepositoryUpdateMissingRow(t *testing.T) {
	storage, mock := newMockStorage(t)
	orders := storage.Orders()

	mock.ExpectExec("UPDATE orders SET").
		WithArgs(pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(),
			pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(),
			pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg()).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))

	if err := orders.Update(context.Background(), 999, model.OrderDraft{}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOrderRepositoryDelete(t *testing.T) {
	storage, mock := newMockStorage(t)
	orders := storage.Orders()

	mock.ExpectExec("DELETE FROM orders WHERE id").
		WithArgs(int64(3)).
		WillReturnResult(pgxmockv3.NewResult("DELETE", 1))

	if err := orders.Delete(context.Background(), 3); err != nil {
		t.Fatalf("delete: %v", err)
	}

	mock.ExpectExec("DELETE FROM orders WHERE id").
		WithArgs(int64(4)).
		WillReturnResult(pgxmockv3.NewResult("DELETE", 0))

	if err := orders.Delete(context.Background(), 4); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	storage, mock := newMockStorage(t)
	mock.ExpectPing()

	if err := storage.HealthCheck(context.Background()); err != nil {
		t.Fatalf("health check: %v", err)
	}
}

func strPtr(s string) *string { return &s }
