package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/saywith/saywith-server/internal/models"
	"github.com/saywith/saywith-server/internal/ports"
)

// PostgresMessageRepo keeps each message as one JSONB document keyed by its
// push id, so writes are full replacements and updates are server-side merges.
type PostgresMessageRepo struct {
	pool *pgxpool.Pool
	ids  pushIDGenerator
}

func NewPostgresMessageRepo(pool *pgxpool.Pool) *PostgresMessageRepo {
	return &PostgresMessageRepo{pool: pool}
}

// Init creates the backing table. Safe to run on every startup.
func (r *PostgresMessageRepo) Init(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS messages (
			id         TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("init messages table: %w", err)
	}
	return nil
}

func (r *PostgresMessageRepo) NewID() string {
	return r.ids.NewID()
}

func (r *PostgresMessageRepo) Write(ctx context.Context, id string, msg *models.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return &ports.StoreError{Op: "write", Err: err}
	}

	query := `
		INSERT INTO messages (id, data)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE
		SET data = EXCLUDED.data, updated_at = now()
	`
	if _, err := r.pool.Exec(ctx, query, id, data); err != nil {
		return &ports.StoreError{Op: "write", Err: err}
	}
	return nil
}

func (r *PostgresMessageRepo) Fetch(ctx context.Context, id string) (*models.Message, error) {
	var data []byte

	err := r.pool.QueryRow(ctx,
		`SELECT data FROM messages WHERE id = $1`,
		id,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, &ports.StoreError{Op: "fetch", Err: err}
	}

	var m models.Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &ports.StoreError{Op: "fetch", Err: err}
	}
	m.ID = id
	return &m, nil
}

func (r *PostgresMessageRepo) Update(ctx context.Context, id string, patch models.Partial) error {
	data, err := json.Marshal(patch)
	if err != nil {
		return &ports.StoreError{Op: "update", Err: err}
	}

	query := `
		UPDATE messages
		SET data = data || $2::jsonb, updated_at = now()
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, data)
	if err != nil {
		return &ports.StoreError{Op: "update", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrNotFound
	}
	return nil
}
