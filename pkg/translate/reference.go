package translate

import (
	"go.uber.org/zap"

	"github.com/herdline-inc/herd-engine/pkg/apperrors"
	"github.com/herdline-inc/herd-engine/pkg/codec"
	"github.com/herdline-inc/herd-engine/pkg/models"
)

// Reference entities are read-mostly lookup rows sharing the same shape:
// id, name, a few descriptive columns, an active flag, soft delete.

func decodeRefFailed(entity models.EntityType, err error) error {
	return apperrors.NewTranslationError(string(entity), "", "decode failed", err)
}

// BreedFromPayload decodes one remote breed row.
func BreedFromPayload(p codec.Payload, logger *zap.Logger) (*models.Breed, error) {
	d := codec.NewDecoder(string(models.EntityBreed), p, nopLogger(logger))
	rec := &models.Breed{
		SyncMeta:    decodeMeta(d),
		Name:        d.RequiredString("name"),
		Description: d.String("description"),
		Active:      activeOrDefault(d),
	}
	if err := d.Err(); err != nil {
		return nil, decodeRefFailed(models.EntityBreed, err)
	}
	return rec, nil
}

// BreedToPayload encodes a local breed row.
func BreedToPayload(rec *models.Breed) codec.Payload {
	b := codec.NewBuilder()
	encodeMeta(b, rec.SyncMeta)
	b.String("name", rec.Name).
		StringOrNull("description", rec.Description).
		Bool("active", rec.Active)
	return b.Payload()
}

// MedicationFromPayload decodes one remote medication row.
func MedicationFromPayload(p codec.Payload, logger *zap.Logger) (*models.Medication, error) {
	d := codec.NewDecoder(string(models.EntityMedication), p, nopLogger(logger))
	rec := &models.Medication{
		SyncMeta:       decodeMeta(d),
		Name:           d.RequiredString("name"),
		DefaultDosage:  d.String("default_dosage"),
		WithdrawalDays: d.Int("withdrawal_days"),
		Notes:          d.String("notes"),
		Active:         activeOrDefault(d),
	}
	if err := d.Err(); err != nil {
		return nil, decodeRefFailed(models.EntityMedication, err)
	}
	return rec, nil
}

// MedicationToPayload encodes a local medication row.
func MedicationToPayload(rec *models.Medication) codec.Payload {
	b := codec.NewBuilder()
	encodeMeta(b, rec.SyncMeta)
	b.String("name", rec.Name).
		StringOrNull("default_dosage", rec.DefaultDosage).
		IntOrNull("withdrawal_days", rec.WithdrawalDays).
		StringOrNull("notes", rec.Notes).
		Bool("active", rec.Active)
	return b.Payload()
}

// ProductionPathFromPayload decodes one remote production path row.
func ProductionPathFromPayload(p codec.Payload, logger *zap.Logger) (*models.ProductionPath, error) {
	d := codec.NewDecoder(string(models.EntityProductionPath), p, nopLogger(logger))
	rec := &models.ProductionPath{
		SyncMeta:    decodeMeta(d),
		Name:        d.RequiredString("name"),
		Description: d.String("description"),
		Active:      activeOrDefault(d),
	}
	if err := d.Err(); err != nil {
		return nil, decodeRefFailed(models.EntityProductionPath, err)
	}
	return rec, nil
}

// ProductionPathToPayload encodes a local production path row.
func ProductionPathToPayload(rec *models.ProductionPath) codec.Payload {
	b := codec.NewBuilder()
	encodeMeta(b, rec.SyncMeta)
	b.String("name", rec.Name).
		StringOrNull("description", rec.Description).
		Bool("active", rec.Active)
	return b.Payload()
}

// CattleStageFromPayload decodes one remote cattle stage row.
func CattleStageFromPayload(p codec.Payload, logger *zap.Logger) (*models.CattleStage, error) {
	d := codec.NewDecoder(string(models.EntityCattleStage), p, nopLogger(logger))
	rec := &models.CattleStage{
		SyncMeta: decodeMeta(d),
		Name:     d.RequiredString("name"),
		Active:   activeOrDefault(d),
	}
	if n := d.Int("sort_order"); n != nil {
		rec.SortOrder = *n
	}
	if err := d.Err(); err != nil {
		return nil, decodeRefFailed(models.EntityCattleStage, err)
	}
	return rec, nil
}

// CattleStageToPayload encodes a local cattle stage row.
func CattleStageToPayload(rec *models.CattleStage) codec.Payload {
	b := codec.NewBuilder()
	encodeMeta(b, rec.SyncMeta)
	b.String("name", rec.Name).
		Int("sort_order", rec.SortOrder).
		Bool("active", rec.Active)
	return b.Payload()
}

// TreatmentPlanFromPayload decodes one remote treatment plan row with its
// owned, ordered steps.
func TreatmentPlanFromPayload(p codec.Payload, logger *zap.Logger) (*models.TreatmentPlan, error) {
	log := nopLogger(logger)
	d := codec.NewDecoder(string(models.EntityTreatmentPlan), p, log)
	rec := &models.TreatmentPlan{
		SyncMeta:    decodeMeta(d),
		Name:        d.RequiredString("name"),
		Condition:   d.String("condition"),
		Description: d.String("description"),
		Active:      activeOrDefault(d),
	}

	for i, row := range d.ObjectSlice("steps") {
		sd := codec.NewDecoder(string(models.EntityTreatmentPlan), row, log)
		step := models.TreatmentPlanStep{
			ID:          subEntryID(sd),
			Description: sd.String("description"),
			DayOffset:   sd.Int("day_offset"),
			Medication:  sd.String("medication"),
			Dosage:      sd.String("dosage"),
		}
		step.StepNumber = i + 1
		if n := sd.Int("step_number"); n != nil {
			step.StepNumber = *n
		}
		if sd.Err() == nil {
			rec.Steps = append(rec.Steps, step)
		}
	}

	if err := d.Err(); err != nil {
		return nil, decodeRefFailed(models.EntityTreatmentPlan, err)
	}
	return rec, nil
}

// TreatmentPlanToPayload encodes a local treatment plan with its steps.
func TreatmentPlanToPayload(rec *models.TreatmentPlan) codec.Payload {
	b := codec.NewBuilder()
	encodeMeta(b, rec.SyncMeta)
	b.String("name", rec.Name).
		StringOrNull("condition", rec.Condition).
		StringOrNull("description", rec.Description).
		Bool("active", rec.Active)

	steps := make([]codec.Payload, len(rec.Steps))
	for i, step := range rec.Steps {
		steps[i] = codec.NewBuilder().
			UUID("id", step.ID).
			Int("step_number", step.StepNumber).
			String("description", step.Description).
			IntOrNull("day_offset", step.DayOffset).
			StringOrNull("medication", step.Medication).
			StringOrNull("dosage", step.Dosage).
			Payload()
	}
	b.ObjectArray("steps", steps)

	return b.Payload()
}

// VeterinarianFromPayload decodes one remote veterinarian row.
func VeterinarianFromPayload(p codec.Payload, logger *zap.Logger) (*models.Veterinarian, error) {
	d := codec.NewDecoder(string(models.EntityVeterinarian), p, nopLogger(logger))
	rec := &models.Veterinarian{
		SyncMeta: decodeMeta(d),
		Name:     d.RequiredString("name"),
		Clinic:   d.String("clinic"),
		Phone:    d.String("phone"),
		Email:    d.String("email"),
		Active:   activeOrDefault(d),
	}
	if err := d.Err(); err != nil {
		return nil, decodeRefFailed(models.EntityVeterinarian, err)
	}
	return rec, nil
}

// VeterinarianToPayload encodes a local veterinarian row.
func VeterinarianToPayload(rec *models.Veterinarian) codec.Payload {
	b := codec.NewBuilder()
	encodeMeta(b, rec.SyncMeta)
	b.String("name", rec.Name).
		StringOrNull("clinic", rec.Clinic).
		StringOrNull("phone", rec.Phone).
		StringOrNull("email", rec.Email).
		Bool("active", rec.Active)
	return b.Payload()
}

// ProcessorFromPayload decodes one remote processor row.
func ProcessorFromPayload(p codec.Payload, logger *zap.Logger) (*models.Processor, error) {
	d := codec.NewDecoder(string(models.EntityProcessor), p, nopLogger(logger))
	rec := &models.Processor{
		SyncMeta: decodeMeta(d),
		Name:     d.RequiredString("name"),
		Phone:    d.String("phone"),
		Address:  d.String("address"),
		Active:   activeOrDefault(d),
	}
	if err := d.Err(); err != nil {
		return nil, decodeRefFailed(models.EntityProcessor, err)
	}
	return rec, nil
}

// ProcessorToPayload encodes a local processor row.
func ProcessorToPayload(rec *models.Processor) codec.Payload {
	b := codec.NewBuilder()
	encodeMeta(b, rec.SyncMeta)
	b.String("name", rec.Name).
		StringOrNull("phone", rec.Phone).
		StringOrNull("address", rec.Address).
		Bool("active", rec.Active)
	return b.Payload()
}

// HealthConditionTypeFromPayload decodes one remote condition type row.
func HealthConditionTypeFromPayload(p codec.Payload, logger *zap.Logger) (*models.HealthConditionType, error) {
	d := codec.NewDecoder(string(models.EntityHealthCondition), p, nopLogger(logger))
	rec := &models.HealthConditionType{
		SyncMeta:    decodeMeta(d),
		Name:        d.RequiredString("name"),
		Description: d.String("description"),
		Active:      activeOrDefault(d),
	}
	if err := d.Err(); err != nil {
		return nil, decodeRefFailed(models.EntityHealthCondition, err)
	}
	return rec, nil
}

// HealthConditionTypeToPayload encodes a local condition type row.
func HealthConditionTypeToPayload(rec *models.HealthConditionType) codec.Payload {
	b := codec.NewBuilder()
	encodeMeta(b, rec.SyncMeta)
	b.String("name", rec.Name).
		StringOrNull("description", rec.Description).
		Bool("active", rec.Active)
	return b.Payload()
}

// activeOrDefault reads the active flag, defaulting absent values to true so
// reference rows stay usable when older servers omit the column.
func activeOrDefault(d *codec.Decoder) bool {
	if !d.Has("active") {
		return true
	}
	return d.Bool("active")
}
