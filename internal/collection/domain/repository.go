package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// RunRepository is the persistence adapter for exported runs and the
// per-donor tracking state derived from them.
type RunRepository interface {
	// SaveRun stores the run, its items and one collection event per item
	// atomically.
	SaveRun(ctx context.Context, run *CollectionRun) error

	// MarkDonorsCollected updates each donor's last-run markers in
	// bounded batches. It returns how many donors were updated; on a
	// partial failure the count is smaller than len(donorIDs) and the
	// error describes the first failed batch.
	MarkDonorsCollected(ctx context.Context, runID snowflake.ID, runDate time.Time, donorIDs []snowflake.ID) (int, error)

	ListRuns(ctx context.Context) ([]CollectionRun, error)
	GetRun(ctx context.Context, id snowflake.ID) (*CollectionRun, error)

	// LastCollection derives a donor's most recent collection from the
	// append-only event log.
	LastCollection(ctx context.Context, donorID snowflake.ID) (*CollectionEvent, error)
}
