// Package store defines the local replica the sync engine reads and writes.
// Records are held by identifier per entity type; relationships are plain ID
// fields resolved through lookups, never materialized object graphs.
//
// Implementations serialize writers: concurrent entity passes queue on the
// store rather than race.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/herdline-inc/herd-engine/pkg/models"
)

// Store is the local replica contract used by the orchestrator and resolver.
type Store interface {
	// Get returns the record or apperrors.ErrNotFound.
	Get(ctx context.Context, entity models.EntityType, id uuid.UUID) (models.Record, error)

	// Upsert creates or replaces a record by identifier.
	Upsert(ctx context.Context, rec models.Record) error

	// List returns all records of the entity type, tombstones included.
	List(ctx context.Context, entity models.EntityType) ([]models.Record, error)

	// ListPending returns records awaiting push, locally soft-deleted
	// records included (they stay pending until the delete is pushed).
	ListPending(ctx context.Context, entity models.EntityType) ([]models.Record, error)

	// Tombstone soft-deletes a record in place. Unknown ids are a no-op;
	// a remote delete may reference a row that never synced here.
	Tombstone(ctx context.Context, entity models.EntityType, id uuid.UUID, at time.Time) error

	// Watermark returns the last remote modification timestamp applied for
	// the entity type, zero on first sync.
	Watermark(ctx context.Context, entity models.EntityType) (time.Time, error)

	// SetWatermark advances the entity's pull watermark.
	SetWatermark(ctx context.Context, entity models.EntityType, t time.Time) error
}
