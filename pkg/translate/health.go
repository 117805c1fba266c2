package translate

import (
	"go.uber.org/zap"

	"github.com/herdline-inc/herd-engine/pkg/apperrors"
	"github.com/herdline-inc/herd-engine/pkg/codec"
	"github.com/herdline-inc/herd-engine/pkg/models"
)

// HealthFromPayload decodes one remote health record row.
func HealthFromPayload(p codec.Payload, logger *zap.Logger) (*models.HealthRecord, error) {
	d := codec.NewDecoder(string(models.EntityHealth), p, nopLogger(logger))

	rec := &models.HealthRecord{
		SyncMeta: decodeMeta(d),
		AnimalID: d.RequiredUUID("animal_id", "cattle_id"),
		Date:     d.Time("date"),

		RecordType: foldEnum(d.String("record_type")),
		Condition:  d.String("condition", "diagnosis"),
		Treatment:  d.String("treatment"),

		Veterinarian: d.String("veterinarian", "vet_name"),
		Medication:   d.String("medication"),
		Dosage:       d.String("dosage"),

		TreatmentPlanID: d.UUID("treatment_plan_id"),

		FollowUpDate: d.Time("follow_up_date"),
		FollowUpDone: d.Bool("follow_up_completed"),
	}

	if err := d.Err(); err != nil {
		return nil, apperrors.NewTranslationError(string(models.EntityHealth), "", "decode failed", err)
	}

	return rec, nil
}

// HealthToPayload encodes a local health record.
func HealthToPayload(rec *models.HealthRecord) codec.Payload {
	b := codec.NewBuilder()
	encodeMeta(b, rec.SyncMeta)

	b.UUID("animal_id", rec.AnimalID).
		DateOrNull("date", rec.Date).
		StringOrNull("record_type", rec.RecordType).
		StringOrNull("condition", rec.Condition).
		StringOrNull("treatment", rec.Treatment).
		StringOrNull("veterinarian", rec.Veterinarian).
		StringOrNull("medication", rec.Medication).
		StringOrNull("dosage", rec.Dosage).
		UUIDOrNull("treatment_plan_id", rec.TreatmentPlanID).
		DateOrNull("follow_up_date", rec.FollowUpDate).
		Bool("follow_up_completed", rec.FollowUpDone)

	return b.Payload()
}
