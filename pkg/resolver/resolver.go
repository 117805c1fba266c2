// Package resolver turns identifier fields into records via local-store
// lookups, and backfills the pregnancy side of orphaned calvings.
//
// Resolution runs strictly after the owning record has been committed; an
// unresolved reference is never an error, just a link that stays null until
// the referenced record arrives on a later sync pass.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/herdline-inc/herd-engine/pkg/apperrors"
	"github.com/herdline-inc/herd-engine/pkg/models"
	"github.com/herdline-inc/herd-engine/pkg/store"
	"github.com/herdline-inc/herd-engine/pkg/timeutil"
)

// Resolver looks up related records by identifier.
type Resolver struct {
	store  store.Store
	logger *zap.Logger
	now    func() time.Time
}

// New creates a Resolver over the given store.
func New(st store.Store, logger *zap.Logger) *Resolver {
	return &Resolver{
		store:  st,
		logger: logger.Named("resolver"),
		now:    time.Now,
	}
}

// Animal resolves a cattle reference. A nil id or a record that has not
// synced yet resolves to nil; the caller keeps the raw id for the next pass.
func (r *Resolver) Animal(ctx context.Context, id *uuid.UUID) (*models.Cattle, error) {
	if id == nil {
		return nil, nil
	}
	rec, err := r.store.Get(ctx, models.EntityCattle, *id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve animal %s: %w", id, err)
	}
	cattle, ok := rec.(*models.Cattle)
	if !ok {
		return nil, fmt.Errorf("resolve animal %s: unexpected record type %T", id, rec)
	}
	return cattle, nil
}

// TreatmentPlan resolves a health record's plan reference, nil when absent.
func (r *Resolver) TreatmentPlan(ctx context.Context, id *uuid.UUID) (*models.TreatmentPlan, error) {
	if id == nil {
		return nil, nil
	}
	rec, err := r.store.Get(ctx, models.EntityTreatmentPlan, *id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve treatment plan %s: %w", id, err)
	}
	plan, ok := rec.(*models.TreatmentPlan)
	if !ok {
		return nil, fmt.Errorf("resolve treatment plan %s: unexpected record type %T", id, rec)
	}
	return plan, nil
}

// PregnancyForCalving resolves the pregnancy behind a calving. When the
// calving carries a pregnancy id the lookup is plain (nil if not yet
// synced). When it carries none, a pregnancy is synthesized: breeding date
// estimated at calving date minus the average gestation length, terminal
// calved status, provenance tagged synthetic so it is never mistaken for
// user-entered data. The estimate assumes natural service and an average
// gestation; it is an approximation by construction.
func (r *Resolver) PregnancyForCalving(ctx context.Context, calving *models.CalvingRecord) (*models.PregnancyRecord, error) {
	if calving.PregnancyID != nil {
		rec, err := r.store.Get(ctx, models.EntityPregnancy, *calving.PregnancyID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, nil
			}
			return nil, fmt.Errorf("resolve pregnancy %s: %w", calving.PregnancyID, err)
		}
		preg, ok := rec.(*models.PregnancyRecord)
		if !ok {
			return nil, fmt.Errorf("resolve pregnancy %s: unexpected record type %T", calving.PregnancyID, rec)
		}
		return preg, nil
	}

	if calving.CalvingDate == nil {
		// Nothing to estimate from; leave the link for a later pass.
		return nil, nil
	}

	now := r.now()
	breeding := calving.CalvingDate.AddDate(0, 0, -models.GestationDays)
	preg := &models.PregnancyRecord{
		SyncMeta: models.SyncMeta{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
			SyncState: models.SyncStatePending,
		},
		DamID:        calving.DamID,
		SireID:       calving.SireID,
		Status:       models.PregnancyCalved,
		Method:       models.BreedingNatural,
		BreedingDate: &breeding,
		Provenance:   models.ProvenanceSynthetic,
		ProvenanceNote: fmt.Sprintf("backfilled from calving on %s assuming %d-day gestation",
			timeutil.DateOnly(*calving.CalvingDate), models.GestationDays),
	}

	if err := r.store.Upsert(ctx, preg); err != nil {
		return nil, fmt.Errorf("backfill pregnancy for calving %s: %w", calving.ID, err)
	}

	calving.PregnancyID = &preg.ID
	calving.MarkPending(now)
	if err := r.store.Upsert(ctx, calving); err != nil {
		return nil, fmt.Errorf("link backfilled pregnancy to calving %s: %w", calving.ID, err)
	}

	r.logger.Info("backfilled pregnancy for calving",
		zap.String("calving_id", calving.ID.String()),
		zap.String("pregnancy_id", preg.ID.String()),
		zap.String("estimated_breeding", timeutil.DateOnly(breeding)))

	return preg, nil
}

// WithClock overrides the clock, for tests.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}
