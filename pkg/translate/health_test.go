package translate

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herdline-inc/herd-engine/pkg/jsonutil"
)

func TestHealthLegacyColumns(t *testing.T) {
	animal := uuid.New()
	p := basePayload(uuid.New(), map[string]jsonutil.Value{
		"cattle_id": jsonutil.String(animal.String()),
		"diagnosis": jsonutil.String("foot rot"),
		"vet_name":  jsonutil.String("Dr. Okafor"),
	})

	rec, err := HealthFromPayload(p, nil)
	require.NoError(t, err)
	assert.Equal(t, animal, rec.AnimalID)
	assert.Equal(t, "foot rot", rec.Condition)
	assert.Equal(t, "Dr. Okafor", rec.Veterinarian)
}

func TestHealthMissingAnimal(t *testing.T) {
	p := basePayload(uuid.New(), map[string]jsonutil.Value{
		"diagnosis": jsonutil.String("foot rot"),
	})
	_, err := HealthFromPayload(p, nil)
	require.Error(t, err)
}
