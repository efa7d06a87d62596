package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/dataset"
	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/model"
)

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// NewPostgresRepositoryFromDB wraps an existing connection pool
func NewPostgresRepositoryFromDB(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// Ping checks the connection
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// LoadDataset reads every row of table into a Dataset. table may be
// schema-qualified ("public.real_estate_data").
func (r *PostgresRepository) LoadDataset(ctx context.Context, table string) (*dataset.Dataset, dataset.LoadStats, error) {
	ident, err := quoteTable(table)
	if err != nil {
		return nil, dataset.LoadStats{}, err
	}

	rows, err := r.db.QueryxContext(ctx, "SELECT * FROM "+ident)
	if err != nil {
		return nil, dataset.LoadStats{}, fmt.Errorf("failed to query dataset table: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, dataset.LoadStats{}, fmt.Errorf("failed to read dataset columns: %w", err)
	}

	var data [][]any
	for rows.Next() {
		row, err := rows.SliceScan()
		if err != nil {
			return nil, dataset.LoadStats{}, fmt.Errorf("failed to scan dataset row: %w", err)
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, dataset.LoadStats{}, fmt.Errorf("failed to iterate dataset rows: %w", err)
	}

	return dataset.FromRows(columns, data)
}

// LogQuery stores one analyzed query
func (r *PostgresRepository) LogQuery(ctx context.Context, entry *model.QueryLog) error {
	query := `
		INSERT INTO query_logs (id, query, intent, area, other_area, row_count, summary_failed, response_time_ms, created_at)
		VALUES (:id, :query, :intent, :area, :other_area, :row_count, :summary_failed, :response_time_ms, :created_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		return fmt.Errorf("failed to log query: %w", err)
	}
	return nil
}

func quoteTable(table string) (string, error) {
	parts := strings.Split(strings.TrimSpace(table), ".")
	if len(parts) > 2 {
		return "", fmt.Errorf("invalid dataset table %q", table)
	}
	for i, p := range parts {
		if p == "" {
			return "", fmt.Errorf("invalid dataset table %q", table)
		}
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, "."), nil
}
