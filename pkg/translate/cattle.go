package translate

import (
	"go.uber.org/zap"

	"github.com/herdline-inc/herd-engine/pkg/apperrors"
	"github.com/herdline-inc/herd-engine/pkg/codec"
	"github.com/herdline-inc/herd-engine/pkg/models"
)

// Cattle column candidates. The dam and sire columns were renamed from the
// original cow_id/bull_id schema; the old names are still seen on rows last
// written by older clients.
var (
	cattleDamKeys         = []string{"dam_id", "cow_id"}
	cattleSireKeys        = []string{"sire_id", "bull_id"}
	cattleExtSireNameKeys = []string{"external_sire_name", "external_bull_name"}
	cattleExtSireRegKeys  = []string{"external_sire_registration", "external_bull_registration"}
	cattlePastureTagsKeys = []string{"pasture_tags", "location_tags"}
)

// CattleFromPayload decodes one remote cattle row.
func CattleFromPayload(p codec.Payload, logger *zap.Logger) (*models.Cattle, error) {
	d := codec.NewDecoder(string(models.EntityCattle), p, nopLogger(logger))

	c := &models.Cattle{
		SyncMeta: decodeMeta(d),
		Tag:      d.RequiredString("tag"),
		Name:     d.String("name"),
		Sex:      normalizeSex(d.String("sex")),

		Stage:          d.String("stage"),
		Status:         d.String("status"),
		ProductionPath: d.String("production_path"),
		Breed:          d.String("breed"),

		CurrentWeight:  d.Float("current_weight"),
		PurchaseWeight: d.Float("purchase_weight"),
		WeaningWeight:  d.Float("weaning_weight"),

		BirthDate:      d.Time("birth_date"),
		PurchaseDate:   d.Time("purchase_date"),
		WeaningDate:    d.Time("weaning_date"),
		ExitDate:       d.Time("exit_date"),
		ProcessingDate: d.Time("processing_date"),

		DamID:  d.UUID(cattleDamKeys...),
		SireID: d.UUID(cattleSireKeys...),

		ExternalSireName:         d.String(cattleExtSireNameKeys...),
		ExternalSireRegistration: d.String(cattleExtSireRegKeys...),

		PastureTags: d.StringSlice(cattlePastureTagsKeys...),
	}

	c.CattleType = d.String("cattle_type")
	if c.CattleType == "" {
		c.CattleType = models.CattleTypeBeef
	}

	if err := d.Err(); err != nil {
		return nil, apperrors.NewTranslationError(string(models.EntityCattle), "", "decode failed", err)
	}

	// A malformed row can carry both an internal sire id and external free
	// text. The internal reference wins deterministically.
	c.ApplySireExclusivity()

	return c, nil
}

// CattleToPayload encodes a local cattle record under the primary remote
// column names. Legacy columns are never written.
func CattleToPayload(c *models.Cattle) codec.Payload {
	c.ApplySireExclusivity()

	b := codec.NewBuilder()
	encodeMeta(b, c.SyncMeta)

	b.String("tag", c.Tag).
		StringOrNull("name", c.Name).
		String("sex", string(c.Sex)).
		StringOrNull("stage", c.Stage).
		StringOrNull("status", c.Status).
		String("cattle_type", c.CattleType).
		StringOrNull("production_path", c.ProductionPath).
		StringOrNull("breed", c.Breed)

	b.FloatOrNull("current_weight", c.CurrentWeight).
		FloatOrNull("purchase_weight", c.PurchaseWeight).
		FloatOrNull("weaning_weight", c.WeaningWeight)

	b.DateOrNull("birth_date", c.BirthDate).
		DateOrNull("purchase_date", c.PurchaseDate).
		DateOrNull("weaning_date", c.WeaningDate).
		DateOrNull("exit_date", c.ExitDate).
		DateOrNull("processing_date", c.ProcessingDate)

	b.UUIDOrNull("dam_id", c.DamID).
		UUIDOrNull("sire_id", c.SireID).
		StringOrNull("external_sire_name", c.ExternalSireName).
		StringOrNull("external_sire_registration", c.ExternalSireRegistration)

	b.StringArray("pasture_tags", c.PastureTags)

	return b.Payload()
}
