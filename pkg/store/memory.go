package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/herdline-inc/herd-engine/pkg/apperrors"
	"github.com/herdline-inc/herd-engine/pkg/models"
)

// Memory is the arena store: records by identifier in one map per entity
// type. It backs tests and ephemeral runs, and is the reference semantics
// for other Store implementations.
type Memory struct {
	mu         sync.Mutex
	records    map[models.EntityType]map[uuid.UUID]models.Record
	watermarks map[models.EntityType]time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		records:    make(map[models.EntityType]map[uuid.UUID]models.Record),
		watermarks: make(map[models.EntityType]time.Time),
	}
}

var _ Store = (*Memory)(nil)

// Get implements Store.
func (m *Memory) Get(ctx context.Context, entity models.EntityType, id uuid.UUID) (models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[entity][id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return rec, nil
}

// Upsert implements Store.
func (m *Memory) Upsert(ctx context.Context, rec models.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entity := rec.Entity()
	arena, ok := m.records[entity]
	if !ok {
		arena = make(map[uuid.UUID]models.Record)
		m.records[entity] = arena
	}
	arena[rec.Meta().ID] = rec
	return nil
}

// List implements Store. Records are returned in modification-time order so
// push batches mirror the remote's pull ordering.
func (m *Memory) List(ctx context.Context, entity models.EntityType) ([]models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	arena := m.records[entity]
	out := make([]models.Record, 0, len(arena))
	for _, rec := range arena {
		out = append(out, rec)
	}
	sortByUpdated(out)
	return out, nil
}

// ListPending implements Store.
func (m *Memory) ListPending(ctx context.Context, entity models.EntityType) ([]models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Record
	for _, rec := range m.records[entity] {
		if rec.Meta().SyncState == models.SyncStatePending {
			out = append(out, rec)
		}
	}
	sortByUpdated(out)
	return out, nil
}

// Tombstone implements Store.
func (m *Memory) Tombstone(ctx context.Context, entity models.EntityType, id uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[entity][id]
	if !ok {
		return nil
	}
	rec.Meta().Tombstone(at)
	return nil
}

// Watermark implements Store.
func (m *Memory) Watermark(ctx context.Context, entity models.EntityType) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.watermarks[entity], nil
}

// SetWatermark implements Store.
func (m *Memory) SetWatermark(ctx context.Context, entity models.EntityType, t time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.After(m.watermarks[entity]) {
		m.watermarks[entity] = t
	}
	return nil
}

func sortByUpdated(recs []models.Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Meta().UpdatedAt.Before(recs[j].Meta().UpdatedAt)
	})
}
