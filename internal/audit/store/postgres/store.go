package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Registers the postgres driver.
	_ "github.com/lib/pq"

	"onboarding/internal/audit"
)

// Store persists audit records in the api_call_logs table.
type Store struct {
	db *sql.DB
}

// New creates a postgres-backed audit store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects to postgres and verifies the connection.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Append inserts one call-log row.
func (s *Store) Append(ctx context.Context, record audit.Record) error {
	query := `
		INSERT INTO api_call_logs
			(transaction_id, feature_name, fkn, product_code, http_status, request_payload, response_body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		record.TransactionID,
		record.FeatureName,
		record.FKN,
		record.ProductCode,
		record.HTTPStatus,
		record.RequestPayload,
		record.ResponseBody,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert api call log: %w", err)
	}
	return nil
}

// List queries call-log rows, applying only the filter fields that are set.
func (s *Store) List(ctx context.Context, filter audit.Filter) ([]audit.Record, error) {
	var (
		conditions []string
		args       []any
	)
	add := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.TransactionID != "" {
		add("transaction_id = $%d", filter.TransactionID)
	}
	if filter.FeatureName != "" {
		add("feature_name = $%d", filter.FeatureName)
	}
	if filter.FKN != "" {
		add("fkn = $%d", filter.FKN)
	}
	if filter.ProductCode != "" {
		add("product_code = $%d", filter.ProductCode)
	}
	if !filter.From.IsZero() {
		add("created_at >= $%d", filter.From)
	}
	if !filter.To.IsZero() {
		add("created_at <= $%d", filter.To)
	}

	query := `
		SELECT id, transaction_id, feature_name, fkn, product_code, http_status, request_payload, response_body, created_at
		FROM api_call_logs
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query api call logs: %w", err)
	}
	defer rows.Close()

	var out []audit.Record
	for rows.Next() {
		var r audit.Record
		if err := rows.Scan(
			&r.ID,
			&r.TransactionID,
			&r.FeatureName,
			&r.FKN,
			&r.ProductCode,
			&r.HTTPStatus,
			&r.RequestPayload,
			&r.ResponseBody,
			&r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan api call log: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate api call logs: %w", err)
	}
	return out, nil
}
