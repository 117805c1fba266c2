package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncStateLifecycle(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	var m SyncMeta

	m.MarkPending(now)
	assert.Equal(t, SyncStatePending, m.SyncState)
	assert.True(t, m.UpdatedAt.Equal(now))

	m.MarkSynced()
	assert.Equal(t, SyncStateSynced, m.SyncState)

	// A later edit goes back to pending.
	later := now.Add(time.Hour)
	m.MarkPending(later)
	assert.Equal(t, SyncStatePending, m.SyncState)
}

func TestSoftDeleteStaysPendingUntilPushed(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	m := SyncMeta{SyncState: SyncStateSynced}

	m.SoftDelete(now)
	assert.Equal(t, SyncStatePending, m.SyncState, "the delete still needs a push")
	require.NotNil(t, m.DeletedAt)
	assert.True(t, m.DeletedAt.Equal(now))
	assert.True(t, m.IsDeleted())

	// Push acknowledged: the soft-deleted record settles terminal.
	m.MarkSynced()
	assert.Equal(t, SyncStateTombstoned, m.SyncState)
}

func TestSoftDeleteKeepsFirstTimestamp(t *testing.T) {
	first := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)
	var m SyncMeta

	m.SoftDelete(first)
	m.SoftDelete(second)
	assert.True(t, m.DeletedAt.Equal(first))
}

func TestTombstonedIsTerminal(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	var m SyncMeta
	m.Tombstone(now)
	assert.Equal(t, SyncStateTombstoned, m.SyncState)

	m.MarkPending(now.Add(time.Hour))
	assert.Equal(t, SyncStateTombstoned, m.SyncState, "no edit revives a tombstone")

	m.MarkSynced()
	assert.Equal(t, SyncStateTombstoned, m.SyncState)
}

func TestSyncStateIsValid(t *testing.T) {
	assert.True(t, SyncStatePending.IsValid())
	assert.True(t, SyncStateSynced.IsValid())
	assert.True(t, SyncStateTombstoned.IsValid())
	assert.False(t, SyncState("deleted").IsValid())
	assert.False(t, SyncState("").IsValid())
}

func TestFactoryCoversAllEntities(t *testing.T) {
	for _, entity := range AllEntities() {
		rec, ok := New(entity)
		require.True(t, ok, "no factory for %s", entity)
		assert.Equal(t, entity, rec.Entity())
		assert.NotNil(t, rec.Meta())
	}

	_, ok := New(EntityType("unknown"))
	assert.False(t, ok)
}
