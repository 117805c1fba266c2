package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/herdline-inc/herd-engine/pkg/apperrors"
	"github.com/herdline-inc/herd-engine/pkg/database"
	"github.com/herdline-inc/herd-engine/pkg/models"
)

// Postgres is the durable replica store. Records are persisted generically
// as JSONB documents in sync_records with the sync-relevant columns lifted
// out for indexing; watermarks live in sync_watermarks. Schema is managed by
// the migrations directory.
type Postgres struct {
	db *database.DB
}

// NewPostgres wraps an open connection pool.
func NewPostgres(db *database.DB) *Postgres {
	return &Postgres{db: db}
}

var _ Store = (*Postgres)(nil)

// Get implements Store.
func (p *Postgres) Get(ctx context.Context, entity models.EntityType, id uuid.UUID) (models.Record, error) {
	query := `
		SELECT doc
		FROM sync_records
		WHERE entity = $1 AND id = $2`

	var doc []byte
	err := p.db.QueryRow(ctx, query, string(entity), id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s record: %w", entity, err)
	}

	return decodeDoc(entity, doc)
}

// Upsert implements Store.
func (p *Postgres) Upsert(ctx context.Context, rec models.Record) error {
	meta := rec.Meta()
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal %s record: %w", rec.Entity(), err)
	}

	query := `
		INSERT INTO sync_records (entity, id, doc, sync_state, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (entity, id) DO UPDATE
		SET doc = EXCLUDED.doc,
		    sync_state = EXCLUDED.sync_state,
		    updated_at = EXCLUDED.updated_at,
		    deleted_at = EXCLUDED.deleted_at`

	_, err = p.db.Exec(ctx, query,
		string(rec.Entity()),
		meta.ID,
		doc,
		string(meta.SyncState),
		meta.UpdatedAt,
		meta.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert %s record: %w", rec.Entity(), err)
	}
	return nil
}

// List implements Store.
func (p *Postgres) List(ctx context.Context, entity models.EntityType) ([]models.Record, error) {
	query := `
		SELECT doc
		FROM sync_records
		WHERE entity = $1
		ORDER BY updated_at`

	return p.queryDocs(ctx, entity, query, string(entity))
}

// ListPending implements Store.
func (p *Postgres) ListPending(ctx context.Context, entity models.EntityType) ([]models.Record, error) {
	query := `
		SELECT doc
		FROM sync_records
		WHERE entity = $1 AND sync_state = $2
		ORDER BY updated_at`

	return p.queryDocs(ctx, entity, query, string(entity), string(models.SyncStatePending))
}

// Tombstone implements Store.
func (p *Postgres) Tombstone(ctx context.Context, entity models.EntityType, id uuid.UUID, at time.Time) error {
	rec, err := p.Get(ctx, entity, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	rec.Meta().Tombstone(at)
	return p.Upsert(ctx, rec)
}

// Watermark implements Store.
func (p *Postgres) Watermark(ctx context.Context, entity models.EntityType) (time.Time, error) {
	query := `SELECT last_pulled_at FROM sync_watermarks WHERE entity = $1`

	var t time.Time
	err := p.db.QueryRow(ctx, query, string(entity)).Scan(&t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to read %s watermark: %w", entity, err)
	}
	return t, nil
}

// SetWatermark implements Store.
func (p *Postgres) SetWatermark(ctx context.Context, entity models.EntityType, t time.Time) error {
	query := `
		INSERT INTO sync_watermarks (entity, last_pulled_at)
		VALUES ($1, $2)
		ON CONFLICT (entity) DO UPDATE
		SET last_pulled_at = GREATEST(sync_watermarks.last_pulled_at, EXCLUDED.last_pulled_at)`

	_, err := p.db.Exec(ctx, query, string(entity), t)
	if err != nil {
		return fmt.Errorf("failed to set %s watermark: %w", entity, err)
	}
	return nil
}

func (p *Postgres) queryDocs(ctx context.Context, entity models.EntityType, query string, args ...any) ([]models.Record, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s records: %w", entity, err)
	}
	defer rows.Close()

	var out []models.Record
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan %s record: %w", entity, err)
		}
		rec, err := decodeDoc(entity, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s records: %w", entity, err)
	}
	return out, nil
}

func decodeDoc(entity models.EntityType, doc []byte) (models.Record, error) {
	rec, ok := models.New(entity)
	if !ok {
		return nil, fmt.Errorf("unknown entity type %q", entity)
	}
	if err := json.Unmarshal(doc, rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s record: %w", entity, err)
	}
	return rec, nil
}
