// Package translate converts between remote payloads and local records, one
// translator pair per entity. Translators are pure functions over already
// fetched data: defaulting, case-folding, legacy-column fallback, and
// mutual-exclusivity rules all live here, so the orchestrator and store stay
// agnostic of entity semantics.
package translate

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/herdline-inc/herd-engine/pkg/codec"
	"github.com/herdline-inc/herd-engine/pkg/models"
)

// decodeMeta reads the columns every syncable table shares. The record id is
// required; timestamps default to zero when absent and the sync state is
// settled by the orchestrator after commit.
func decodeMeta(d *codec.Decoder) models.SyncMeta {
	meta := models.SyncMeta{
		ID:        d.RequiredUUID("id"),
		SyncState: models.SyncStateSynced,
	}
	if t := d.Time("created_at"); t != nil {
		meta.CreatedAt = *t
	}
	if t := d.Time("updated_at"); t != nil {
		meta.UpdatedAt = *t
	}
	meta.DeletedAt = d.Time("deleted_at")
	return meta
}

// encodeMeta writes the shared columns. deleted_at is emitted as explicit
// null for live records so an undelete propagates.
func encodeMeta(b *codec.Builder, meta models.SyncMeta) {
	b.UUID("id", meta.ID)
	created := meta.CreatedAt
	if created.IsZero() {
		created = meta.UpdatedAt
	}
	b.TimeOrNull("created_at", nonZero(created))
	b.TimeOrNull("updated_at", nonZero(meta.UpdatedAt))
	b.TimeOrNull("deleted_at", meta.DeletedAt)
}

func nonZero(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// foldEnum lowercases and trims a free-text status value before it is
// treated as an enum member. Server data has carried mixed-case forms.
func foldEnum(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizeSex folds a remote sex value onto the closed local vocabulary.
// Anything unrecognized becomes Unknown.
func normalizeSex(s string) models.Sex {
	switch foldEnum(s) {
	case "bull":
		return models.SexBull
	case "cow":
		return models.SexCow
	case "heifer":
		return models.SexHeifer
	case "steer":
		return models.SexSteer
	default:
		return models.SexUnknown
	}
}

// nopLogger guards translators called with a nil logger (tests).
func nopLogger(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
