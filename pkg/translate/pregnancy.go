package translate

import (
	"go.uber.org/zap"

	"github.com/herdline-inc/herd-engine/pkg/apperrors"
	"github.com/herdline-inc/herd-engine/pkg/codec"
	"github.com/herdline-inc/herd-engine/pkg/models"
)

// normalizePregnancyStatus folds a remote status value onto the local
// vocabulary, defaulting to bred for absent or drifted values.
func normalizePregnancyStatus(s string) models.PregnancyStatus {
	folded := models.PregnancyStatus(foldEnum(s))
	if !folded.IsValid() {
		return models.PregnancyBred
	}
	return folded
}

// normalizeBreedingMethod defaults to natural service.
func normalizeBreedingMethod(s string) models.BreedingMethod {
	folded := models.BreedingMethod(foldEnum(s))
	if !folded.IsValid() {
		return models.BreedingNatural
	}
	return folded
}

// PregnancyFromPayload decodes one remote pregnancy row.
//
// Date handling: when a breeding (or expected-calving) range is present it is
// authoritative and the legacy single date is overwritten with the range
// start, keeping older readers of the single field consistent. When only the
// single date is present the range fields stay nil.
func PregnancyFromPayload(p codec.Payload, logger *zap.Logger) (*models.PregnancyRecord, error) {
	d := codec.NewDecoder(string(models.EntityPregnancy), p, nopLogger(logger))

	rec := &models.PregnancyRecord{
		SyncMeta: decodeMeta(d),
		DamID:    d.RequiredUUID(cattleDamKeys...),
		SireID:   d.UUID(cattleSireKeys...),

		ExternalSireName:         d.String(cattleExtSireNameKeys...),
		ExternalSireRegistration: d.String(cattleExtSireRegKeys...),

		Status: normalizePregnancyStatus(d.String("status")),
		Method: normalizeBreedingMethod(d.String("breeding_method", "method")),

		ConfirmationDate:   d.Time("confirmation_date"),
		ConfirmationMethod: d.String("confirmation_method"),
	}

	start := d.Time("breeding_start_date")
	end := d.Time("breeding_end_date")
	single := d.Time("breeding_date")
	if start != nil && end != nil {
		rec.BreedingStartDate = start
		rec.BreedingEndDate = end
		rec.BreedingDate = start
	} else {
		rec.BreedingDate = single
	}

	calvStart := d.Time("expected_calving_start")
	calvEnd := d.Time("expected_calving_end")
	calvSingle := d.Time("expected_calving_date")
	if calvStart != nil && calvEnd != nil {
		rec.ExpectedCalvingStart = calvStart
		rec.ExpectedCalvingEnd = calvEnd
		rec.ExpectedCalvingDate = calvStart
	} else {
		rec.ExpectedCalvingDate = calvSingle
	}

	// Technician and semen source only apply to AI and embryo transfer.
	if rec.Method != models.BreedingNatural {
		rec.AITechnician = d.String("ai_technician", "technician")
		rec.SemenSource = d.String("semen_source")
	}

	rec.Provenance = models.Provenance(foldEnum(d.String("provenance")))
	if rec.Provenance != models.ProvenanceSynthetic {
		rec.Provenance = models.ProvenanceUser
	}
	rec.ProvenanceNote = d.String("provenance_note")

	if err := d.Err(); err != nil {
		return nil, apperrors.NewTranslationError(string(models.EntityPregnancy), "", "decode failed", err)
	}

	rec.ApplySireExclusivity()

	return rec, nil
}

// PregnancyToPayload encodes a local pregnancy record. In range mode both
// the range columns and the mirrored single date are emitted; otherwise only
// the single date carries a value and the range columns are explicit null.
func PregnancyToPayload(rec *models.PregnancyRecord) codec.Payload {
	rec.ApplySireExclusivity()

	b := codec.NewBuilder()
	encodeMeta(b, rec.SyncMeta)

	b.UUID("dam_id", rec.DamID).
		UUIDOrNull("sire_id", rec.SireID).
		StringOrNull("external_sire_name", rec.ExternalSireName).
		StringOrNull("external_sire_registration", rec.ExternalSireRegistration).
		String("status", string(rec.Status)).
		String("breeding_method", string(rec.Method))

	if rec.InRangeMode() {
		b.DateOrNull("breeding_start_date", rec.BreedingStartDate).
			DateOrNull("breeding_end_date", rec.BreedingEndDate).
			DateOrNull("breeding_date", rec.BreedingStartDate)
	} else {
		b.Null("breeding_start_date").
			Null("breeding_end_date").
			DateOrNull("breeding_date", rec.BreedingDate)
	}

	if rec.ExpectedCalvingStart != nil && rec.ExpectedCalvingEnd != nil {
		b.DateOrNull("expected_calving_start", rec.ExpectedCalvingStart).
			DateOrNull("expected_calving_end", rec.ExpectedCalvingEnd).
			DateOrNull("expected_calving_date", rec.ExpectedCalvingStart)
	} else {
		b.Null("expected_calving_start").
			Null("expected_calving_end").
			DateOrNull("expected_calving_date", rec.ExpectedCalvingDate)
	}

	b.DateOrNull("confirmation_date", rec.ConfirmationDate).
		StringOrNull("confirmation_method", rec.ConfirmationMethod)

	if rec.Method == models.BreedingNatural {
		b.Null("ai_technician").Null("semen_source")
	} else {
		b.StringOrNull("ai_technician", rec.AITechnician).
			StringOrNull("semen_source", rec.SemenSource)
	}

	b.String("provenance", string(rec.Provenance)).
		StringOrNull("provenance_note", rec.ProvenanceNote)

	// Gestation-day counts are derived at read time and never pushed.

	return b.Payload()
}
