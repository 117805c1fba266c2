package translate

import (
	"go.uber.org/zap"

	"github.com/herdline-inc/herd-engine/pkg/apperrors"
	"github.com/herdline-inc/herd-engine/pkg/codec"
	"github.com/herdline-inc/herd-engine/pkg/models"
)

// The category column has carried two names across schema generations;
// category is current, task_type the original.
var taskCategoryKeys = []string{"category", "task_type"}

func normalizeTaskStatus(s string) models.TaskStatus {
	folded := models.TaskStatus(foldEnum(s))
	if !folded.IsValid() {
		return models.TaskPending
	}
	return folded
}

func normalizeTaskPriority(s string) models.TaskPriority {
	folded := models.TaskPriority(foldEnum(s))
	if !folded.IsValid() {
		return models.PriorityMedium
	}
	return folded
}

// TaskFromPayload decodes one remote task row. The cattle link changed from
// a single cattle_id column to a cattle_ids array in one schema revision;
// rows written before the change still carry the single column.
func TaskFromPayload(p codec.Payload, logger *zap.Logger) (*models.TaskRecord, error) {
	d := codec.NewDecoder(string(models.EntityTask), p, nopLogger(logger))

	rec := &models.TaskRecord{
		SyncMeta: decodeMeta(d),
		Title:    d.RequiredString("title"),
		Category: foldEnum(d.String(taskCategoryKeys...)),
		Priority: normalizeTaskPriority(d.String("priority")),
		Status:   normalizeTaskStatus(d.String("status")),

		DueDate:     d.Time("due_date"),
		CompletedAt: d.Time("completed_at"),
	}

	rec.CattleIDs = d.UUIDSlice("cattle_ids")
	if len(rec.CattleIDs) == 0 {
		if single := d.UUID("cattle_id"); single != nil {
			rec.CattleIDs = append(rec.CattleIDs, *single)
		}
	}

	if err := d.Err(); err != nil {
		return nil, apperrors.NewTranslationError(string(models.EntityTask), "", "decode failed", err)
	}

	return rec, nil
}

// TaskToPayload encodes a local task under the current schema only: the
// array column is written, never the retired single cattle_id.
func TaskToPayload(rec *models.TaskRecord) codec.Payload {
	b := codec.NewBuilder()
	encodeMeta(b, rec.SyncMeta)

	b.String("title", rec.Title).
		StringOrNull("category", rec.Category).
		String("priority", string(rec.Priority)).
		String("status", string(rec.Status)).
		TimeOrNull("due_date", rec.DueDate).
		TimeOrNull("completed_at", rec.CompletedAt).
		UUIDArray("cattle_ids", rec.CattleIDs)

	return b.Payload()
}
