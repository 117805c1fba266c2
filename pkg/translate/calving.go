package translate

import (
	"go.uber.org/zap"

	"github.com/herdline-inc/herd-engine/pkg/apperrors"
	"github.com/herdline-inc/herd-engine/pkg/codec"
	"github.com/herdline-inc/herd-engine/pkg/models"
)

// The ease column is named difficulty on the remote; calving_ease is the
// pre-rename spelling.
var calvingEaseKeys = []string{"difficulty", "calving_ease"}

// normalizeEase folds a remote difficulty value onto the local vocabulary.
// Drifted values are kept out of the enum rather than guessed at.
func normalizeEase(s string) models.CalvingEase {
	folded := models.CalvingEase(foldEnum(s))
	if !folded.IsValid() {
		return ""
	}
	return folded
}

// CalvingFromPayload decodes one remote calving row.
func CalvingFromPayload(p codec.Payload, logger *zap.Logger) (*models.CalvingRecord, error) {
	d := codec.NewDecoder(string(models.EntityCalving), p, nopLogger(logger))

	rec := &models.CalvingRecord{
		SyncMeta: decodeMeta(d),
		DamID:    d.RequiredUUID(cattleDamKeys...),
		SireID:   d.UUID(cattleSireKeys...),
		CalfID:   d.UUID("calf_id"),

		PregnancyID: d.UUID("pregnancy_id"),
		CalvingDate: d.Time("calving_date"),
		Ease:        normalizeEase(d.String(calvingEaseKeys...)),

		CalfBirthWeight: d.Float("calf_birth_weight", "birth_weight"),
		CalfVigor:       d.String("calf_vigor", "vigor"),

		Complications: d.String("complications"),
		VetCalled:     d.Bool("vet_called"),
	}

	// The remote only ever stores Bull or Heifer here; normalizeSex folds
	// historical mixed-case rows. The local Steer/Cow values cannot come
	// back from the remote because the push map is lossy.
	if raw := d.String("calf_sex"); raw != "" {
		rec.CalfSex = normalizeSex(raw)
	}

	if err := d.Err(); err != nil {
		return nil, apperrors.NewTranslationError(string(models.EntityCalving), "", "decode failed", err)
	}

	return rec, nil
}

// CalvingToPayload encodes a local calving record. The calf sex is remapped
// onto the remote's restricted {Bull, Heifer} vocabulary; unmapped values
// push as "" by contract, not null.
func CalvingToPayload(rec *models.CalvingRecord) codec.Payload {
	b := codec.NewBuilder()
	encodeMeta(b, rec.SyncMeta)

	b.UUID("dam_id", rec.DamID).
		UUIDOrNull("sire_id", rec.SireID).
		UUIDOrNull("calf_id", rec.CalfID).
		UUIDOrNull("pregnancy_id", rec.PregnancyID).
		DateOrNull("calving_date", rec.CalvingDate).
		StringOrNull("difficulty", string(rec.Ease)).
		String("calf_sex", models.RemoteCalfSex(rec.CalfSex)).
		FloatOrNull("calf_birth_weight", rec.CalfBirthWeight).
		StringOrNull("calf_vigor", rec.CalfVigor).
		StringOrNull("complications", rec.Complications).
		Bool("vet_called", rec.VetCalled)

	return b.Payload()
}
