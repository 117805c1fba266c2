// Package syncer drives bidirectional reconciliation between the remote
// store and the local replica: watermark-bounded pulls, pending-record
// pushes, and a post-commit link phase that resolves cross-record
// references.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/herdline-inc/herd-engine/pkg/apperrors"
	"github.com/herdline-inc/herd-engine/pkg/codec"
	"github.com/herdline-inc/herd-engine/pkg/logging"
	"github.com/herdline-inc/herd-engine/pkg/models"
	"github.com/herdline-inc/herd-engine/pkg/resolver"
	"github.com/herdline-inc/herd-engine/pkg/store"
)

// Remote is the slice of the remote client the engine needs.
type Remote interface {
	Pull(ctx context.Context, table string, since time.Time) ([]codec.Payload, error)
	Upsert(ctx context.Context, table string, rows []codec.Payload) error
}

// Stats counts what one pass did. Failures are per-record: a row that
// cannot be translated or applied is counted and skipped, never fatal to
// the pass.
type Stats struct {
	Pulled     int
	Pushed     int
	Tombstoned int
	Skipped    int
	Failed     int
	Backfilled int
}

func (s *Stats) add(o Stats) {
	s.Pulled += o.Pulled
	s.Pushed += o.Pushed
	s.Tombstoned += o.Tombstoned
	s.Skipped += o.Skipped
	s.Failed += o.Failed
	s.Backfilled += o.Backfilled
}

// Engine orchestrates sync passes over every registered entity family.
type Engine struct {
	store    store.Store
	remote   Remote
	resolver *resolver.Resolver
	logger   *zap.Logger
	bindings []binding
}

// New creates an Engine over the given store and remote client.
func New(st store.Store, rc Remote, logger *zap.Logger) *Engine {
	return &Engine{
		store:    st,
		remote:   rc,
		resolver: resolver.New(st, logger),
		logger:   logger.Named("syncer"),
		bindings: defaultBindings(),
	}
}

// Cycle runs one full pass: pull everything, push everything, then link.
// Pulls run in registry order so reference rows land before the records
// that point at them; pushes fan out per entity since pending queues are
// independent. Entity-level errors are collected, not short-circuited;
// cancellation and bad credentials are pass-level and abort immediately.
func (e *Engine) Cycle(ctx context.Context) (Stats, error) {
	var total Stats
	var errs []error

	for _, b := range e.bindings {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("%w: %w", apperrors.ErrPassAborted, err)
		}
		st, err := e.pullEntity(ctx, b)
		total.add(st)
		if err != nil {
			if errors.Is(err, apperrors.ErrUnauthorized) {
				return total, fmt.Errorf("%w: pull %s: %w", apperrors.ErrPassAborted, b.entity, err)
			}
			errs = append(errs, fmt.Errorf("pull %s: %w", b.entity, err))
		}
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, b := range e.bindings {
		wg.Add(1)
		go func(b binding) {
			defer wg.Done()
			st, err := e.pushEntity(ctx, b)
			mu.Lock()
			defer mu.Unlock()
			total.add(st)
			if err != nil {
				errs = append(errs, fmt.Errorf("push %s: %w", b.entity, err))
			}
		}(b)
	}
	wg.Wait()

	if joined := errors.Join(errs...); errors.Is(joined, apperrors.ErrUnauthorized) {
		return total, fmt.Errorf("%w: %w", apperrors.ErrPassAborted, joined)
	}

	st, err := e.linkCalvings(ctx)
	total.add(st)
	if err != nil {
		errs = append(errs, fmt.Errorf("link calvings: %w", err))
	}

	e.logger.Info("sync pass complete",
		zap.Int("pulled", total.Pulled),
		zap.Int("pushed", total.Pushed),
		zap.Int("tombstoned", total.Tombstoned),
		zap.Int("skipped", total.Skipped),
		zap.Int("failed", total.Failed),
		zap.Int("backfilled", total.Backfilled))

	return total, errors.Join(errs...)
}

// Run executes Cycle on the given interval until the context is cancelled.
// The first pass fires immediately.
func (e *Engine) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := e.Cycle(ctx); err != nil {
			if errors.Is(err, apperrors.ErrPassAborted) {
				return err
			}
			e.logger.Warn("sync pass finished with errors", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// pullEntity fetches remote rows modified after the entity's watermark and
// applies them one by one. A row that fails translation is logged and
// skipped; it returns when it is next modified remotely, and never blocks
// the rows behind it.
func (e *Engine) pullEntity(ctx context.Context, b binding) (Stats, error) {
	var st Stats

	since, err := e.store.Watermark(ctx, b.entity)
	if err != nil {
		return st, fmt.Errorf("load watermark: %w", err)
	}

	rows, err := e.remote.Pull(ctx, b.table, since)
	if err != nil {
		return st, err
	}

	logger := e.logger.With(zap.String("entity", string(b.entity)))
	var watermark time.Time

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return st, fmt.Errorf("%w: %w", apperrors.ErrPassAborted, err)
		}

		rec, err := b.decode(row, logger)
		if err != nil {
			st.Failed++
			logger.Warn("skipping unreadable remote row", zap.Error(err))
			continue
		}
		meta := rec.Meta()

		applied, tombstoned, err := e.applyRemote(ctx, b.entity, rec)
		if err != nil {
			st.Failed++
			logger.Warn("skipping remote row",
				zap.String("id", meta.ID.String()), zap.Error(err))
			continue
		}
		switch {
		case tombstoned:
			st.Tombstoned++
		case applied:
			st.Pulled++
		default:
			st.Skipped++
		}
		if meta.UpdatedAt.After(watermark) {
			watermark = meta.UpdatedAt
		}
	}

	if watermark.After(since) {
		if err := e.store.SetWatermark(ctx, b.entity, watermark); err != nil {
			return st, fmt.Errorf("advance watermark: %w", err)
		}
	}
	return st, nil
}

// applyRemote merges one remote record into the local replica. Last write
// wins on timestamps: a local pending edit newer than the remote row is
// kept and will overwrite the remote on push.
func (e *Engine) applyRemote(ctx context.Context, entity models.EntityType, rec models.Record) (applied, tombstoned bool, err error) {
	meta := rec.Meta()

	local, err := e.store.Get(ctx, entity, meta.ID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return false, false, err
	}
	if local != nil {
		lm := local.Meta()
		if lm.SyncState == models.SyncStateTombstoned {
			return false, false, nil
		}
		if lm.SyncState == models.SyncStatePending && lm.UpdatedAt.After(meta.UpdatedAt) {
			return false, false, nil
		}
	}

	if meta.DeletedAt != nil {
		if err := e.store.Tombstone(ctx, entity, meta.ID, *meta.DeletedAt); err != nil {
			return false, false, err
		}
		return false, true, nil
	}

	meta.SyncState = models.SyncStateSynced
	if err := e.store.Upsert(ctx, rec); err != nil {
		return false, false, err
	}
	return true, false, nil
}

// pushEntity sends every pending record, soft deletes included (they go up
// as upserts carrying deleted_at). The batch either lands or the whole
// queue stays pending with the failure recorded per record.
func (e *Engine) pushEntity(ctx context.Context, b binding) (Stats, error) {
	var st Stats

	pending, err := e.store.ListPending(ctx, b.entity)
	if err != nil {
		return st, fmt.Errorf("list pending: %w", err)
	}
	if len(pending) == 0 {
		return st, nil
	}

	rows := make([]codec.Payload, 0, len(pending))
	for _, rec := range pending {
		rows = append(rows, b.encode(rec))
	}

	if err := e.remote.Upsert(ctx, b.table, rows); err != nil {
		// Remote errors can echo request headers; never persist or log
		// them raw.
		failure := logging.SanitizeError(err)
		for _, rec := range pending {
			meta := rec.Meta()
			// Stays pending; UpdatedAt untouched so the edit's timestamp survives.
			meta.LastSyncError = failure
			if serr := e.store.Upsert(ctx, rec); serr != nil {
				e.logger.Error("recording push failure",
					zap.String("entity", string(b.entity)),
					zap.String("id", meta.ID.String()),
					zap.Error(serr))
			}
		}
		st.Failed += len(pending)
		e.logger.Warn("push failed, queue retained",
			zap.String("entity", string(b.entity)),
			zap.Int("records", len(pending)),
			zap.String("error", failure))
		return st, err
	}

	for _, rec := range pending {
		rec.Meta().MarkSynced()
		if err := e.store.Upsert(ctx, rec); err != nil {
			return st, fmt.Errorf("settle %s: %w", rec.Meta().ID, err)
		}
		st.Pushed++
	}
	return st, nil
}

// linkCalvings runs the post-commit reference phase: every live calving
// without a pregnancy link gets one resolved or synthesized. Individual
// failures defer to the next pass.
func (e *Engine) linkCalvings(ctx context.Context) (Stats, error) {
	var st Stats

	recs, err := e.store.List(ctx, models.EntityCalving)
	if err != nil {
		return st, fmt.Errorf("list calvings: %w", err)
	}

	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			return st, fmt.Errorf("%w: %w", apperrors.ErrPassAborted, err)
		}
		calving, ok := rec.(*models.CalvingRecord)
		if !ok || calving.IsDeleted() || calving.PregnancyID != nil {
			continue
		}
		preg, err := e.resolver.PregnancyForCalving(ctx, calving)
		if err != nil {
			st.Failed++
			e.logger.Warn("deferring calving link",
				zap.String("id", calving.ID.String()), zap.Error(err))
			continue
		}
		if preg != nil {
			st.Backfilled++
		}
	}
	return st, nil
}
