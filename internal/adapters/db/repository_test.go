package db

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/medstock-be/internal/core/domain"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, EscapeLike("100%"))
	assert.Equal(t, `a\_b`, EscapeLike("a_b"))
	assert.Equal(t, `c:\\temp`, EscapeLike(`c:\temp`))
	assert.Equal(t, "plain", EscapeLike("plain"))
}

func TestPostgresDialect_ListQuery(t *testing.T) {
	q := domain.ListQuery{
		Search:    "para",
		Category:  "pain",
		Status:    domain.StatusActive,
		SortField: domain.SortByExpiryDate,
		SortDir:   domain.SortAsc,
		Limit:     10,
		Offset:    20,
	}

	qb := PostgresDialect.ApplyFilters(squirrel.Select("id").From(MedicinesTable), q)
	qb = Page(qb.OrderBy(PostgresDialect.OrderBy(q)...), q).PlaceholderFormat(squirrel.Dollar)

	sql, args, err := qb.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql,
		`WHERE (name ILIKE $1 ESCAPE '\' OR category ILIKE $2 ESCAPE '\') AND category ILIKE $3 ESCAPE '\' AND status = $4`)
	assert.Contains(t, sql, "ORDER BY expiry_date ASC, id ASC")
	assert.Contains(t, sql, "LIMIT")
	assert.Contains(t, sql, "OFFSET")
	require.GreaterOrEqual(t, len(args), 4)
	assert.Equal(t, []interface{}{"%para%", "%para%", "%pain%", "active"}, args[:4])
}

func TestDialect_OrderBy(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    domain.ListQuery
		expected []string
	}{
		{
			name:     "defaults_to_created_at_desc",
			dialect:  PostgresDialect,
			query:    domain.ListQuery{},
			expected: []string{"created_at DESC", "id DESC"},
		},
		{
			name:     "mapped_column",
			dialect:  Dialect{Columns: map[domain.SortField]string{domain.SortByPrice: "price_cents"}},
			query:    domain.ListQuery{SortField: domain.SortByPrice, SortDir: domain.SortAsc},
			expected: []string{"price_cents ASC", "id ASC"},
		},
		{
			name:     "unknown_field_is_never_interpolated",
			dialect:  PostgresDialect,
			query:    domain.ListQuery{SortField: "name; DROP TABLE medicines", SortDir: domain.SortAsc},
			expected: []string{"created_at ASC", "id ASC"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.dialect.OrderBy(tt.query))
		})
	}
}

func TestMigrationFilesEmbedded(t *testing.T) {
	files, err := MigrationFiles()
	require.NoError(t, err)
	assert.Contains(t, files, "migrations/000001_create_medicines.up.sql")
	assert.Contains(t, files, "migrations/000001_create_medicines.down.sql")
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Host:           "db.internal",
		Port:           "5433",
		User:           "medstock",
		Password:       "p@ss word/1",
		Database:       "medstock",
		SSLMode:        "require",
		ConnectTimeout: 10 * time.Second,
	}

	pc, err := buildPoolConfig(cfg, slog.Default())
	require.NoError(t, err)
	assert.Equal(t, "db.internal", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "p@ss word/1", pc.ConnConfig.Password)
	assert.Equal(t, "medstock", pc.ConnConfig.Database)
	assert.Equal(t, 10*time.Second, pc.ConnConfig.ConnectTimeout)
	assert.Equal(t, "UTC", pc.ConnConfig.RuntimeParams["timezone"])
}

func TestBuildPoolConfig_StatementCacheMode(t *testing.T) {
	tests := []struct {
		mode    string
		want    pgx.QueryExecMode
		wantErr bool
	}{
		{mode: "", want: pgx.QueryExecModeCacheDescribe},
		{mode: "describe", want: pgx.QueryExecModeCacheDescribe},
		{mode: "prepare", want: pgx.QueryExecModeCacheStatement},
		{mode: "exec", want: pgx.QueryExecModeExec},
		{mode: "simple", want: pgx.QueryExecModeSimpleProtocol},
		{mode: "bogus", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			cfg := &Config{Host: "localhost", Port: "5432", User: "u", Database: "d", SSLMode: "disable", StatementCacheMode: tt.mode}
			pc, err := buildPoolConfig(cfg, slog.Default())
			if tt.wantErr {
				assert.ErrorContains(t, err, "statement cache mode")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, pc.ConnConfig.DefaultQueryExecMode)
		})
	}
}

func TestQueryLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := queryLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))

	l.Log(context.Background(), tracelog.LogLevelTrace, "Query", map[string]any{"sql": "SELECT 1"})
	assert.Zero(t, buf.Len())

	l.Log(context.Background(), tracelog.LogLevelError, "Query", map[string]any{"sql": "SELECT broken"})
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), `"component":"pgx"`)
	assert.Contains(t, buf.String(), `"sql":"SELECT broken"`)
}
