// internal/adapters/sqlite/store.go
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/ammerola/medstock-be/internal/adapters/db"
	"github.com/ammerola/medstock-be/internal/core/domain"
)

//go:embed schema.sql
var schema string

// timestampLayout is fixed width so text ordering matches time ordering
const timestampLayout = "2006-01-02 15:04:05.000000"

// InMemory opens a private in-memory database
const InMemory = ":memory:"

var columns = []string{
	"id", "name", "category", "quantity", "price_cents",
	"expiry_date", "status", "created_at", "updated_at",
}

var dialect = db.Dialect{
	Placeholder: squirrel.Question,
	// SQLite's LOWER only folds ASCII, so non-ASCII names match
	// case-sensitively here; postgres folds the full Unicode range.
	Contains: func(col, pattern string) squirrel.Sqlizer {
		return squirrel.Expr("LOWER("+col+`) LIKE ? ESCAPE '\'`, strings.ToLower(pattern))
	},
	Columns: map[domain.SortField]string{
		domain.SortByPrice: "price_cents",
	},
}

type medicineRow struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	Category   string `db:"category"`
	Quantity   int    `db:"quantity"`
	PriceCents int64  `db:"price_cents"`
	ExpiryDate string `db:"expiry_date"`
	Status     string `db:"status"`
	CreatedAt  string `db:"created_at"`
	UpdatedAt  string `db:"updated_at"`
}

func toRow(m *domain.Medicine) medicineRow {
	return medicineRow{
		ID:         m.ID.String(),
		Name:       m.Name,
		Category:   m.Category,
		Quantity:   m.Quantity,
		PriceCents: m.Price.Shift(2).Round(0).IntPart(),
		ExpiryDate: domain.NormalizeDate(m.ExpiryDate).Format(domain.DateLayout),
		Status:     string(m.Status),
		CreatedAt:  m.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt:  m.UpdatedAt.UTC().Format(timestampLayout),
	}
}

func (r medicineRow) toDomain() (*domain.Medicine, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid id %q: %w", r.ID, err)
	}
	expiry, err := time.ParseInLocation(domain.DateLayout, r.ExpiryDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid expiry date %q: %w", r.ExpiryDate, err)
	}
	created, err := time.ParseInLocation(timestampLayout, r.CreatedAt, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", r.CreatedAt, err)
	}
	updated, err := time.ParseInLocation(timestampLayout, r.UpdatedAt, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid updated_at %q: %w", r.UpdatedAt, err)
	}

	return &domain.Medicine{
		ID:         id,
		Name:       r.Name,
		Category:   r.Category,
		Quantity:   r.Quantity,
		Price:      decimal.New(r.PriceCents, -2),
		ExpiryDate: expiry,
		Status:     domain.Status(r.Status),
		CreatedAt:  created,
		UpdatedAt:  updated,
	}, nil
}

// Store implements ports.MedicineStore and ports.Database on SQLite
type Store struct {
	db     *sqlx.DB
	path   string
	logger *slog.Logger
}

// Open connects to the database file at path, creating it and the schema
// when missing. Use InMemory for a throwaway database.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if path == "" {
		path = "medstock.db"
	}
	if path != InMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	conn, err := sqlx.ConnectContext(ctx, "sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection keeps :memory: databases alive and serializes writers
	conn.SetMaxOpenConns(1)
	conn.SetConnMaxIdleTime(0)
	conn.SetConnMaxLifetime(0)

	s := NewWithDB(conn, path, logger)
	if err := s.Migrate(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	logger.Info("sqlite store opened", slog.String("path", path))
	return s, nil
}

// NewWithDB wraps an existing connection without touching the schema
func NewWithDB(conn *sqlx.DB, path string, logger *slog.Logger) *Store {
	return &Store{
		db:     conn,
		path:   path,
		logger: logger.With(slog.String("repository", "medicines"), slog.String("driver", "sqlite")),
	}
}

// Migrate creates the schema if it does not exist
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

func (s *Store) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(dialect.Placeholder)
}

// Driver names the backend for health output
func (s *Store) Driver() string {
	return "sqlite"
}

// Ping verifies the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Health returns connection statistics
func (s *Store) Health(ctx context.Context) map[string]interface{} {
	stats := s.db.Stats()
	health := map[string]interface{}{
		"status":           "healthy",
		"driver":           s.Driver(),
		"path":             s.path,
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var one int
	if err := s.db.GetContext(ctx, &one, "SELECT 1"); err != nil {
		health["status"] = "unhealthy"
		health["error"] = err.Error()
	}
	return health
}

// Close closes the database
func (s *Store) Close() {
	if err := s.db.Close(); err != nil {
		s.logger.Warn("failed to close sqlite", slog.String("error", err.Error()))
	}
}

// FindByID retrieves a medicine by id
func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*domain.Medicine, error) {
	query, args, err := s.builder().Select(columns...).
		From(db.MedicinesTable).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var row medicineRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find medicine: %w", err)
	}
	return row.toDomain()
}

// Find returns one page of medicines matching q and the total match count
func (s *Store) Find(ctx context.Context, q domain.ListQuery) ([]domain.Medicine, int64, error) {
	countSQL, countArgs, err := dialect.ApplyFilters(s.builder().Select("COUNT(*)").From(db.MedicinesTable), q).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := s.db.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to count medicines: %w", err)
	}

	qb := dialect.ApplyFilters(s.builder().Select(columns...).From(db.MedicinesTable), q)
	qb = db.Page(qb.OrderBy(dialect.OrderBy(q)...), q)
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []medicineRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to query medicines: %w", err)
	}

	items := make([]domain.Medicine, 0, len(rows))
	for _, r := range rows {
		m, err := r.toDomain()
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *m)
	}
	return items, total, nil
}

// Insert saves a new medicine
func (s *Store) Insert(ctx context.Context, m *domain.Medicine) error {
	r := toRow(m)
	query, args, err := s.builder().Insert(db.MedicinesTable).
		Columns(columns...).
		Values(r.ID, r.Name, r.Category, r.Quantity, r.PriceCents,
			r.ExpiryDate, r.Status, r.CreatedAt, r.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert medicine: %w", err)
	}
	return nil
}

// Update overwrites the mutable fields of an existing medicine
func (s *Store) Update(ctx context.Context, m *domain.Medicine) error {
	r := toRow(m)
	query, args, err := s.builder().Update(db.MedicinesTable).
		SetMap(map[string]interface{}{
			"name":        r.Name,
			"category":    r.Category,
			"quantity":    r.Quantity,
			"price_cents": r.PriceCents,
			"expiry_date": r.ExpiryDate,
			"status":      r.Status,
			"updated_at":  r.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": r.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update medicine: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("medicine %s: %w", m.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a medicine and returns it
func (s *Store) Delete(ctx context.Context, id uuid.UUID) (*domain.Medicine, error) {
	query, args, err := s.builder().Delete(db.MedicinesTable).
		Where(squirrel.Eq{"id": id.String()}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build delete: %w", err)
	}

	var row medicineRow
	if err := s.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to delete medicine: %w", err)
	}
	return row.toDomain()
}

// DeleteAll removes every medicine
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+db.MedicinesTable)
	if err != nil {
		return 0, fmt.Errorf("failed to delete medicines: %w", err)
	}
	return res.RowsAffected()
}

// ExpireBefore marks active medicines with expiry before cutoff as expired
func (s *Store) ExpireBefore(ctx context.Context, cutoff time.Time) (int64, int64, error) {
	query, args, err := s.builder().Update(db.MedicinesTable).
		Set("status", string(domain.StatusExpired)).
		Set("updated_at", time.Now().UTC().Format(timestampLayout)).
		Where(squirrel.Eq{"status": string(domain.StatusActive)}).
		Where(squirrel.Lt{"expiry_date": domain.NormalizeDate(cutoff).Format(domain.DateLayout)}).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to build expiry update: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to expire medicines: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, n, nil
}

type aggregateRow struct {
	Status     string `db:"status"`
	Count      int64  `db:"count"`
	ValueCents int64  `db:"value_cents"`
	InWindow   int64  `db:"in_window"`
}

// AggregateByStatus returns count, stock value and in-window count per status
func (s *Store) AggregateByStatus(ctx context.Context, window domain.ExpiryWindow) ([]domain.StatusAggregate, error) {
	query, args, err := s.builder().
		Select("status", "COUNT(*) AS count", "COALESCE(SUM(price_cents * quantity), 0) AS value_cents").
		Column(squirrel.Expr("COALESCE(SUM(CASE WHEN expiry_date BETWEEN ? AND ? THEN 1 ELSE 0 END), 0) AS in_window",
			window.From.Format(domain.DateLayout), window.To.Format(domain.DateLayout))).
		From(db.MedicinesTable).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build aggregate query: %w", err)
	}

	var rows []aggregateRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to aggregate medicines: %w", err)
	}

	out := make([]domain.StatusAggregate, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.StatusAggregate{
			Status:     domain.Status(r.Status),
			Count:      r.Count,
			StockValue: decimal.New(r.ValueCents, -2),
			InWindow:   r.InWindow,
		})
	}
	return out, nil
}
