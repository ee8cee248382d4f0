package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Repository loads donor snapshots for the collection engine.
type Repository interface {
	ListAll(ctx context.Context) ([]Donor, error)
	ListByIDs(ctx context.Context, ids []snowflake.ID) ([]Donor, error)
}
