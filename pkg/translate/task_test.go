package translate

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herdline-inc/herd-engine/pkg/jsonutil"
	"github.com/herdline-inc/herd-engine/pkg/models"
)

func TestTaskLegacyCategoryColumn(t *testing.T) {
	p := basePayload(uuid.New(), map[string]jsonutil.Value{
		"title":     jsonutil.String("Vaccinate spring calves"),
		"task_type": jsonutil.String("Health"),
	})

	rec, err := TaskFromPayload(p, nil)
	require.NoError(t, err)
	assert.Equal(t, "health", rec.Category)
}

func TestTaskCategoryWinsOverTaskType(t *testing.T) {
	p := basePayload(uuid.New(), map[string]jsonutil.Value{
		"title":     jsonutil.String("Move herd"),
		"category":  jsonutil.String("grazing"),
		"task_type": jsonutil.String("health"),
	})

	rec, err := TaskFromPayload(p, nil)
	require.NoError(t, err)
	assert.Equal(t, "grazing", rec.Category)
}

func TestTaskSingleCattleIDFallback(t *testing.T) {
	single := uuid.New()
	p := basePayload(uuid.New(), map[string]jsonutil.Value{
		"title":     jsonutil.String("Check heifer"),
		"cattle_id": jsonutil.String(single.String()),
	})

	rec, err := TaskFromPayload(p, nil)
	require.NoError(t, err)
	require.Len(t, rec.CattleIDs, 1)
	assert.Equal(t, single, rec.CattleIDs[0])
}

func TestTaskArrayWinsOverSingle(t *testing.T) {
	a, b, single := uuid.New(), uuid.New(), uuid.New()
	p := basePayload(uuid.New(), map[string]jsonutil.Value{
		"title":      jsonutil.String("Sort pairs"),
		"cattle_ids": jsonutil.Array(jsonutil.String(a.String()), jsonutil.String(b.String())),
		"cattle_id":  jsonutil.String(single.String()),
	})

	rec, err := TaskFromPayload(p, nil)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, rec.CattleIDs)
}

func TestTaskStatusAndPriorityDefaults(t *testing.T) {
	p := basePayload(uuid.New(), map[string]jsonutil.Value{
		"title":    jsonutil.String("Fix fence"),
		"status":   jsonutil.String("someday"),
		"priority": jsonutil.String("urgent-ish"),
	})

	rec, err := TaskFromPayload(p, nil)
	require.NoError(t, err)
	assert.Equal(t, models.TaskPending, rec.Status)
	assert.Equal(t, models.PriorityMedium, rec.Priority)
}

func TestTaskToPayloadWritesArrayOnly(t *testing.T) {
	rec := &models.TaskRecord{
		SyncMeta:  models.SyncMeta{ID: uuid.New()},
		Title:     "Wean calves",
		Priority:  models.PriorityHigh,
		Status:    models.TaskPending,
		CattleIDs: []uuid.UUID{uuid.New()},
	}

	p := TaskToPayload(rec)

	_, present := p["cattle_id"]
	assert.False(t, present, "the retired single column is never written")
	_, present = p["task_type"]
	assert.False(t, present)

	v, present := p["cattle_ids"]
	require.True(t, present)
	arr, ok := v.AsArray()
	require.True(t, ok)
	assert.Len(t, arr, 1)
}
