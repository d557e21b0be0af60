package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "suppliertracker/internal/domain/errors"
	"suppliertracker/internal/domain/model"
	"suppliertracker/internal/domain/repository"
)

// dbPool is the subset of pgxpool.Pool the storage depends on; pgxmock
// satisfies it in tests.
type dbPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   dbPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            order_id TEXT,
            customer_name TEXT NOT NULL DEFAULT '',
            fb_profile TEXT,
            order_details TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL DEFAULT 'pending',
            order_date TEXT,
            delivery_method TEXT NOT NULL DEFAULT 'jnt',
            paid_product DOUBLE PRECISION NOT NULL DEFAULT 0,
            paid_shipping DOUBLE PRECISION NOT NULL DEFAULT 0,
            notes TEXT,
            attachment_url TEXT,
            created_by_email TEXT,
            last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_last_updated ON orders(last_updated DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, email, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, email, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Email = email
	u.PasswordHash = passwordHash
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, email, password_hash, created_at FROM users WHERE email=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, email, password_hash, created_at FROM users WHERE id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, order_id, customer_name, fb_profile, order_details, status, order_date,
                      delivery_method, paid_product, paid_shipping, notes, attachment_url,
                      created_by_email, last_updated`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.OrderCode, &o.CustomerName, &o.FBProfile, &o.OrderDetails,
		&o.Status, &o.OrderDate, &o.DeliveryMethod, &o.PaidProduct, &o.PaidShipping,
		&o.Notes, &o.AttachmentURL, &o.CreatedByEmail, &o.LastUpdated)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY last_updated DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	o, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

// Insert creates the row and assigns a human-facing order code in the same
// transaction.
func (r *orderRepository) Insert(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	const insertQuery = `INSERT INTO orders
            (customer_name, fb_profile, order_details, status, order_date, delivery_method,
             paid_product, paid_shipping, notes, attachment_url, created_by_email)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id, last_updated`

	var order model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, insertQuery,
			draft.CustomerName, draft.FBProfile, draft.OrderDetails, draft.Status,
			draft.OrderDate, draft.DeliveryMethod, draft.PaidProduct, draft.PaidShipping,
			draft.Notes, draft.AttachmentURL, draft.CreatedByEmail,
		).Scan(&order.ID, &order.LastUpdated)
		if err != nil {
			return err
		}

		const codeQuery = `UPDATE orders SET order_id = 'ORD-' || lpad(id::text, 4, '0')
                           WHERE id=$1 RETURNING order_id`
		return tx.QueryRow(ctx, codeQuery, order.ID).Scan(&order.OrderCode)
	})
	if err != nil {
		return nil, err
	}

	order.CustomerName = draft.CustomerName
	order.FBProfile = draft.FBProfile
	order.OrderDetails = draft.OrderDetails
	order.Status = draft.Status
	order.OrderDate = draft.OrderDate
	order.DeliveryMethod = draft.DeliveryMethod
	order.PaidProduct = draft.PaidProduct
	order.PaidShipping = draft.PaidShipping
	order.Notes = draft.Notes
	order.AttachmentURL = draft.AttachmentURL
	order.CreatedByEmail = draft.CreatedByEmail
	return &order, nil
}

// Update rewrites the payload columns. The stored attachment_url is kept
// unless the draft carries a replacement.
func (r *orderRepository) Update(ctx context.Context, id int64, draft model.OrderDraft) error {
	const query = `UPDATE orders SET
            customer_name=$1, fb_profile=$2, order_details=$3, status=$4, order_date=$5,
            delivery_method=$6, paid_product=$7, paid_shipping=$8, notes=$9,
            created_by_email=$10, attachment_url=COALESCE($11, attachment_url),
            last_updated=NOW()
        WHERE id=$12`

	tag, err := r.storage.pool.Exec(ctx, query,
		draft.CustomerName, draft.FBProfile, draft.OrderDetails, draft.Status,
		draft.OrderDate, draft.DeliveryMethod, draft.PaidProduct, draft.PaidShipping,
		draft.Notes, draft.CreatedByEmail, draft.AttachmentURL, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM orders WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
