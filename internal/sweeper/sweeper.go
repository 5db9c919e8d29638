// Package sweeper reclaims stored blobs that no customization references:
// abandoned uploads and images whose best-effort deletion failed.
package sweeper

import (
	"context"
	"errors"
	"fmt"
	"linkbio/internal/database"
	"linkbio/internal/metrics"
	"linkbio/internal/models"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const batchSize = 100

type Store interface {
	ListOrphanBlobs(ctx context.Context, olderThan time.Time, limit int) ([]models.Blob, error)
	ReclaimBlob(ctx context.Context, ref string, remove func(ref string) error) error
}

type BlobDeleter interface {
	Delete(ref string) error
}

type Sweeper struct {
	store Store
	blobs BlobDeleter
	grace time.Duration
	cron  *cron.Cron
	log   *slog.Logger
	now   func() time.Time
}

func New(store Store, blobs BlobDeleter, grace time.Duration, log *slog.Logger) *Sweeper {
	if log == nil {
		log = slog.Default()
	}
	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	return &Sweeper{
		store: store,
		blobs: blobs,
		grace: grace,
		cron:  cron.New(cron.WithParser(parser)),
		log:   log.With(slog.String("component", "sweeper")),
		now:   time.Now,
	}
}

// Start schedules RunOnce on the given cron pattern, e.g. "@hourly".
func (s *Sweeper) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := s.RunOnce(ctx); err != nil {
			s.log.Error("orphan sweep failed", slog.Any("error", err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	s.cron.Start()
	return nil
}

// Stop waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce deletes orphaned blobs older than the grace period and returns how
// many were reclaimed. A failure on one blob does not stop the sweep.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.grace)
	reclaimed := 0

	for {
		orphans, err := s.store.ListOrphanBlobs(ctx, cutoff, batchSize)
		if err != nil {
			return reclaimed, fmt.Errorf("list orphan blobs: %w", err)
		}

		progressed := false
		for _, blob := range orphans {
			if err := ctx.Err(); err != nil {
				return reclaimed, err
			}
			err := s.store.ReclaimBlob(ctx, blob.Ref, s.blobs.Delete)
			if errors.Is(err, database.ErrBlobInUse) {
				metrics.BlobReclaims.WithLabelValues("sweep", "in_use").Inc()
				s.log.Debug("orphan blob was referenced before reclaim", slog.String("ref", blob.Ref))
				continue
			}
			if err != nil {
				metrics.BlobReclaims.WithLabelValues("sweep", "error").Inc()
				s.log.Warn("failed to reclaim orphan blob", slog.String("ref", blob.Ref), slog.Any("error", err))
				continue
			}
			metrics.BlobReclaims.WithLabelValues("sweep", "ok").Inc()
			reclaimed++
			progressed = true
		}

		if len(orphans) < batchSize || !progressed {
			break
		}
	}

	if reclaimed > 0 {
		s.log.Info("orphan sweep finished", slog.Int("reclaimed", reclaimed))
	}
	return reclaimed, nil
}
