package syncer

import (
	"go.uber.org/zap"

	"github.com/herdline-inc/herd-engine/pkg/codec"
	"github.com/herdline-inc/herd-engine/pkg/models"
	"github.com/herdline-inc/herd-engine/pkg/translate"
)

// binding ties one entity family to its remote table and its payload
// translation pair.
type binding struct {
	entity models.EntityType
	table  string
	decode func(codec.Payload, *zap.Logger) (models.Record, error)
	encode func(models.Record) codec.Payload
}

// defaultBindings lists every synced entity in pull order: reference data
// first, then herd animals, then the records that point at them. Push and
// link phases reuse the same list.
func defaultBindings() []binding {
	return []binding{
		{
			entity: models.EntityBreed,
			table:  "breeds",
			decode: func(p codec.Payload, l *zap.Logger) (models.Record, error) { return translate.BreedFromPayload(p, l) },
			encode: func(r models.Record) codec.Payload { return translate.BreedToPayload(r.(*models.Breed)) },
		},
		{
			entity: models.EntityMedication,
			table:  "medications",
			decode: func(p codec.Payload, l *zap.Logger) (models.Record, error) { return translate.MedicationFromPayload(p, l) },
			encode: func(r models.Record) codec.Payload { return translate.MedicationToPayload(r.(*models.Medication)) },
		},
		{
			entity: models.EntityProductionPath,
			table:  "production_paths",
			decode: func(p codec.Payload, l *zap.Logger) (models.Record, error) { return translate.ProductionPathFromPayload(p, l) },
			encode: func(r models.Record) codec.Payload { return translate.ProductionPathToPayload(r.(*models.ProductionPath)) },
		},
		{
			entity: models.EntityCattleStage,
			table:  "cattle_stages",
			decode: func(p codec.Payload, l *zap.Logger) (models.Record, error) { return translate.CattleStageFromPayload(p, l) },
			encode: func(r models.Record) codec.Payload { return translate.CattleStageToPayload(r.(*models.CattleStage)) },
		},
		{
			entity: models.EntityTreatmentPlan,
			table:  "treatment_plans",
			decode: func(p codec.Payload, l *zap.Logger) (models.Record, error) { return translate.TreatmentPlanFromPayload(p, l) },
			encode: func(r models.Record) codec.Payload { return translate.TreatmentPlanToPayload(r.(*models.TreatmentPlan)) },
		},
		{
			entity: models.EntityVeterinarian,
			table:  "veterinarians",
			decode: func(p codec.Payload, l *zap.Logger) (models.Record, error) { return translate.VeterinarianFromPayload(p, l) },
			encode: func(r models.Record) codec.Payload { return translate.VeterinarianToPayload(r.(*models.Veterinarian)) },
		},
		{
			entity: models.EntityProcessor,
			table:  "processors",
			decode: func(p codec.Payload, l *zap.Logger) (models.Record, error) { return translate.ProcessorFromPayload(p, l) },
			encode: func(r models.Record) codec.Payload { return translate.ProcessorToPayload(r.(*models.Processor)) },
		},
		{
			entity: models.EntityHealthCondition,
			table:  "health_condition_types",
			decode: func(p codec.Payload, l *zap.Logger) (models.Record, error) { return translate.HealthConditionTypeFromPayload(p, l) },
			encode: func(r models.Record) codec.Payload {
				return translate.HealthConditionTypeToPayload(r.(*models.HealthConditionType))
			},
		},
		{
			entity: models.EntityCattle,
			table:  "cattle",
			decode: func(p codec.Payload, l *zap.Logger) (models.Record, error) { return translate.CattleFromPayload(p, l) },
			encode: func(r models.Record) codec.Payload { return translate.CattleToPayload(r.(*models.Cattle)) },
		},
		{
			entity: models.EntityPregnancy,
			table:  "pregnancy_records",
			decode: func(p codec.Payload, l *zap.Logger) (models.Record, error) { return translate.PregnancyFromPayload(p, l) },
			encode: func(r models.Record) codec.Payload { return translate.PregnancyToPayload(r.(*models.PregnancyRecord)) },
		},
		{
			entity: models.EntityCalving,
			table:  "calving_records",
			decode: func(p codec.Payload, l *zap.Logger) (models.Record, error) { return translate.CalvingFromPayload(p, l) },
			encode: func(r models.Record) codec.Payload { return translate.CalvingToPayload(r.(*models.CalvingRecord)) },
		},
		{
			entity: models.EntityHealth,
			table:  "health_records",
			decode: func(p codec.Payload, l *zap.Logger) (models.Record, error) { return translate.HealthFromPayload(p, l) },
			encode: func(r models.Record) codec.Payload { return translate.HealthToPayload(r.(*models.HealthRecord)) },
		},
		{
			entity: models.EntityTask,
			table:  "tasks",
			decode: func(p codec.Payload, l *zap.Logger) (models.Record, error) { return translate.TaskFromPayload(p, l) },
			encode: func(r models.Record) codec.Payload { return translate.TaskToPayload(r.(*models.TaskRecord)) },
		},
		{
			entity: models.EntityContact,
			table:  "contacts",
			decode: func(p codec.Payload, l *zap.Logger) (models.Record, error) { return translate.ContactFromPayload(p, l) },
			encode: func(r models.Record) codec.Payload { return translate.ContactToPayload(r.(*models.Contact)) },
		},
	}
}
