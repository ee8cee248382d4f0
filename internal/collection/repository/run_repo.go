// Package repository persists collection runs, their items and the
// append-only collection event log.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/solidaria/backoffice/internal/collection/domain"
	"github.com/solidaria/backoffice/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type runRepo struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	batchSize int
}

// New builds the gorm-backed run repository. batchSize bounds how many
// donor tracking updates go into a single transaction.
func New(db *gorm.DB, log *zap.Logger, genID *snowflake.Node, batchSize int) domain.RunRepository {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &runRepo{
		db:        db,
		log:       log.Named("collection.repository"),
		genID:     genID,
		batchSize: batchSize,
	}
}

func (r *runRepo) SaveRun(ctx context.Context, run *domain.CollectionRun) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(run).Error; err != nil {
			return err
		}

		events := make([]domain.CollectionEvent, 0, len(run.Items))
		for _, item := range run.Items {
			events = append(events, domain.CollectionEvent{
				ID:             r.genID.Generate(),
				DonorID:        item.DonorID,
				RunID:          run.ID,
				UMR:            item.UMR,
				SequenceType:   item.SequenceType,
				AmountCents:    item.AmountCents,
				CollectionDate: run.RequestedCollectionDate,
				CreatedAt:      run.CreatedAt,
			})
		}
		if len(events) == 0 {
			return nil
		}
		return tx.Create(&events).Error
	})
	// message_id carries a unique index; a collision means this run was
	// already recorded, which reads very differently from a storage outage.
	if db.IsDuplicateKeyErr(err) {
		return domain.ErrRunAlreadyRecorded
	}
	return err
}

func (r *runRepo) MarkDonorsCollected(ctx context.Context, runID snowflake.ID, runDate time.Time, donorIDs []snowflake.ID) (int, error) {
	updated := 0
	for start := 0; start < len(donorIDs); start += r.batchSize {
		end := start + r.batchSize
		if end > len(donorIDs) {
			end = len(donorIDs)
		}
		batch := donorIDs[start:end]

		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Exec(
				`UPDATE donors
				 SET sepa_pain008_last_run_at = ?, sepa_pain008_last_run_id = ?, updated_at = ?
				 WHERE id IN ?`,
				runDate,
				runID,
				time.Now().UTC(),
				batch,
			).Error
		})
		if err != nil {
			r.log.Warn("donor tracking batch failed",
				zap.String("run_id", runID.String()),
				zap.Int("updated", updated),
				zap.Int("total", len(donorIDs)),
				zap.Error(err),
			)
			return updated, err
		}
		updated += len(batch)
	}
	return updated, nil
}

func (r *runRepo) ListRuns(ctx context.Context) ([]domain.CollectionRun, error) {
	var runs []domain.CollectionRun
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&runs).Error
	return runs, err
}

func (r *runRepo) GetRun(ctx context.Context, id snowflake.ID) (*domain.CollectionRun, error) {
	var run domain.CollectionRun
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&run, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRunNotFound
		}
		return nil, err
	}
	return &run, nil
}

func (r *runRepo) LastCollection(ctx context.Context, donorID snowflake.ID) (*domain.CollectionEvent, error) {
	var event domain.CollectionEvent
	err := r.db.WithContext(ctx).
		Where("donor_id = ?", donorID).
		Order("collection_date DESC, id DESC").
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}
