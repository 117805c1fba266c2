// Package models contains the local record types the sync engine maintains.
// Records hold relationships as explicit identifier fields; lookups go
// through the resolver, never through implicit graph traversal.
package models

import (
	"time"

	"github.com/google/uuid"
)

// SyncState tracks where a record sits in the sync lifecycle.
type SyncState string

const (
	// SyncStatePending marks a record created or modified locally and not
	// yet acknowledged by the remote.
	SyncStatePending SyncState = "pending"
	// SyncStateSynced marks a record whose last known local and remote
	// versions agree.
	SyncStateSynced SyncState = "synced"
	// SyncStateTombstoned marks a soft-deleted record. Terminal: a record
	// never transitions out of tombstoned.
	SyncStateTombstoned SyncState = "tombstoned"
)

// String returns the string representation of a SyncState.
func (s SyncState) String() string {
	return string(s)
}

// IsValid returns true if the state is a known sync state.
func (s SyncState) IsValid() bool {
	switch s {
	case SyncStatePending, SyncStateSynced, SyncStateTombstoned:
		return true
	default:
		return false
	}
}

// EntityType names one syncable entity family.
type EntityType string

const (
	EntityCattle          EntityType = "cattle"
	EntityPregnancy       EntityType = "pregnancy_record"
	EntityCalving         EntityType = "calving_record"
	EntityHealth          EntityType = "health_record"
	EntityTask            EntityType = "task"
	EntityContact         EntityType = "contact"
	EntityBreed           EntityType = "breed"
	EntityMedication      EntityType = "medication"
	EntityProductionPath  EntityType = "production_path"
	EntityCattleStage     EntityType = "cattle_stage"
	EntityTreatmentPlan   EntityType = "treatment_plan"
	EntityVeterinarian    EntityType = "veterinarian"
	EntityProcessor       EntityType = "processor"
	EntityHealthCondition EntityType = "health_condition_type"
)

// SyncMeta is embedded by every syncable record.
type SyncMeta struct {
	ID            uuid.UUID  `json:"id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
	SyncState     SyncState  `json:"sync_state"`
	LastSyncError string     `json:"last_sync_error,omitempty"`
}

// Meta exposes the embedded metadata through the Record interface.
func (m *SyncMeta) Meta() *SyncMeta {
	return m
}

// MarkPending flags the record for push. Tombstoned records never leave
// tombstoned: their delete is already acknowledged and further local edits
// are not replayed.
func (m *SyncMeta) MarkPending(now time.Time) {
	m.UpdatedAt = now
	if m.SyncState != SyncStateTombstoned {
		m.SyncState = SyncStatePending
	}
}

// MarkSynced records a successful push or pull. A record carrying a
// soft-delete marker settles into the terminal tombstoned state.
func (m *SyncMeta) MarkSynced() {
	if m.DeletedAt != nil {
		m.SyncState = SyncStateTombstoned
	} else if m.SyncState != SyncStateTombstoned {
		m.SyncState = SyncStateSynced
	}
	m.LastSyncError = ""
}

// SoftDelete marks the record deleted locally. The delete still needs a
// push, so the record goes pending rather than straight to tombstoned.
func (m *SyncMeta) SoftDelete(at time.Time) {
	if m.DeletedAt == nil {
		m.DeletedAt = &at
	}
	m.MarkPending(at)
}

// Tombstone applies a remote-acknowledged soft delete. The row is kept for
// history; only the marker and state change.
func (m *SyncMeta) Tombstone(at time.Time) {
	if m.DeletedAt == nil {
		m.DeletedAt = &at
	}
	m.SyncState = SyncStateTombstoned
}

// IsDeleted reports whether the record carries a soft-delete marker.
func (m *SyncMeta) IsDeleted() bool {
	return m.DeletedAt != nil
}

// Record is implemented by every syncable local record.
type Record interface {
	Meta() *SyncMeta
	Entity() EntityType
}
