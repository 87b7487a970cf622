// internal/adapters/db/medicine_store.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/medstock-be/internal/core/domain"
	"github.com/ammerola/medstock-be/internal/core/ports"
)

var medicineColumns = []string{
	"id", "name", "category", "quantity", "price",
	"expiry_date", "status", "created_at", "updated_at",
}

// medicineStore implements ports.MedicineStore on PostgreSQL
type medicineStore struct {
	db     *Database
	logger *slog.Logger
}

// NewMedicineStore creates the PostgreSQL medicine store
func NewMedicineStore(db *Database, logger *slog.Logger) ports.MedicineStore {
	return &medicineStore{
		db:     db,
		logger: logger.With(slog.String("repository", "medicines")),
	}
}

func psql() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func scanMedicine(row pgx.Row) (*domain.Medicine, error) {
	m := &domain.Medicine{}
	var status string
	err := row.Scan(
		&m.ID, &m.Name, &m.Category, &m.Quantity, &m.Price,
		&m.ExpiryDate, &status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Status = domain.Status(status)
	m.ExpiryDate = domain.NormalizeDate(m.ExpiryDate)
	m.CreatedAt = m.CreatedAt.UTC()
	m.UpdatedAt = m.UpdatedAt.UTC()
	return m, nil
}

// FindByID retrieves a medicine by id
func (s *medicineStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Medicine, error) {
	query, args, err := psql().Select(medicineColumns...).
		From(MedicinesTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	m, err := scanMedicine(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find medicine: %w", err)
	}
	return m, nil
}

// Find returns one page of medicines matching q and the total match count
func (s *medicineStore) Find(ctx context.Context, q domain.ListQuery) ([]domain.Medicine, int64, error) {
	countQB := PostgresDialect.ApplyFilters(psql().Select("COUNT(*)").From(MedicinesTable), q)
	countSQL, countArgs, err := countQB.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := s.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count medicines: %w", err)
	}

	qb := PostgresDialect.ApplyFilters(psql().Select(medicineColumns...).From(MedicinesTable), q)
	qb = Page(qb.OrderBy(PostgresDialect.OrderBy(q)...), q)

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query medicines: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Medicine, 0, q.Limit)
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan medicine: %w", err)
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, total, nil
}

// Insert saves a new medicine
func (s *medicineStore) Insert(ctx context.Context, m *domain.Medicine) error {
	query, args, err := psql().Insert(MedicinesTable).
		Columns(medicineColumns...).
		Values(m.ID, m.Name, m.Category, m.Quantity, m.Price,
			m.ExpiryDate, string(m.Status), m.CreatedAt, m.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert medicine: %w", err)
	}

	s.logger.DebugContext(ctx, "medicine saved",
		slog.String("id", m.ID.String()),
		slog.String("status", string(m.Status)))
	return nil
}

// Update overwrites the mutable fields of an existing medicine
func (s *medicineStore) Update(ctx context.Context, m *domain.Medicine) error {
	query, args, err := psql().Update(MedicinesTable).
		SetMap(map[string]interface{}{
			"name":        m.Name,
			"category":    m.Category,
			"quantity":    m.Quantity,
			"price":       m.Price,
			"expiry_date": m.ExpiryDate,
			"status":      string(m.Status),
			"updated_at":  m.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": m.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update: %w", err)
	}

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update medicine: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("medicine %s: %w", m.ID, domain.ErrNotFound)
	}

	s.logger.DebugContext(ctx, "medicine updated", slog.String("id", m.ID.String()))
	return nil
}

// Delete removes a medicine and returns it
func (s *medicineStore) Delete(ctx context.Context, id uuid.UUID) (*domain.Medicine, error) {
	query, args, err := psql().Delete(MedicinesTable).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(medicineColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build delete: %w", err)
	}

	m, err := scanMedicine(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to delete medicine: %w", err)
	}

	s.logger.InfoContext(ctx, "medicine deleted", slog.String("id", id.String()))
	return m, nil
}

// DeleteAll removes every medicine
func (s *medicineStore) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, "DELETE FROM "+MedicinesTable)
	if err != nil {
		return 0, fmt.Errorf("failed to delete medicines: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ExpireBefore marks active medicines with expiry before cutoff as expired
func (s *medicineStore) ExpireBefore(ctx context.Context, cutoff time.Time) (int64, int64, error) {
	query, args, err := psql().Update(MedicinesTable).
		Set("status", string(domain.StatusExpired)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"status": string(domain.StatusActive)}).
		Where(squirrel.Lt{"expiry_date": domain.NormalizeDate(cutoff)}).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to build expiry update: %w", err)
	}

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to expire medicines: %w", err)
	}

	n := tag.RowsAffected()
	return n, n, nil
}

// AggregateByStatus returns count, stock value and in-window count per status
func (s *medicineStore) AggregateByStatus(ctx context.Context, window domain.ExpiryWindow) ([]domain.StatusAggregate, error) {
	query, args, err := psql().Select("status", "COUNT(*)", "COALESCE(SUM(price * quantity), 0)").
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE expiry_date BETWEEN ? AND ?)", window.From, window.To)).
		From(MedicinesTable).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build aggregate query: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate medicines: %w", err)
	}
	defer rows.Close()

	var out []domain.StatusAggregate
	for rows.Next() {
		var agg domain.StatusAggregate
		var status string
		if err := rows.Scan(&status, &agg.Count, &agg.StockValue, &agg.InWindow); err != nil {
			return nil, fmt.Errorf("failed to scan aggregate: %w", err)
		}
		agg.Status = domain.Status(status)
		out = append(out, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return out, nil
}
