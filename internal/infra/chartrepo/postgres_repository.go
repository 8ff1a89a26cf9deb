package chartrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/natal-chart/internal/domain/chart"
)

const schema = `
CREATE TABLE IF NOT EXISTS charts (
	id          UUID PRIMARY KEY,
	created_at  TIMESTAMPTZ NOT NULL,
	julian_day  DOUBLE PRECISION NOT NULL,
	ephemeris   TEXT NOT NULL,
	ayanamsa    TEXT NOT NULL,
	payload     JSONB NOT NULL
)`

// PostgresRepository implements chart.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the charts table when it does not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create charts table: %w", err)
	}
	return nil
}

// Save stores the full record as JSONB; the scalar columns are for ad hoc queries.
func (r *PostgresRepository) Save(ctx context.Context, record chart.Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO charts (id, created_at, julian_day, ephemeris, ayanamsa, payload)
		VALUES ($1::uuid, $2, $3, $4, $5, $6::jsonb)
		ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload
	`, record.ID, record.CreatedAt, record.View.JD, record.Ephemeris, record.AyanamsaModel, string(payload))
	return err
}

// Get loads a record by id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (chart.Record, bool, error) {
	var payload string
	err := r.pool.QueryRow(ctx, `
		SELECT payload::text
		FROM charts
		WHERE id = $1::uuid
	`, id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return chart.Record{}, false, nil
	}
	if err != nil {
		return chart.Record{}, false, err
	}
	var record chart.Record
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return chart.Record{}, false, fmt.Errorf("decode chart %s: %w", id, err)
	}
	return record, true, nil
}

var _ chart.Repository = (*PostgresRepository)(nil)
