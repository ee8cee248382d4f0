package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	donordomain "github.com/solidaria/backoffice/internal/donor/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

// New builds the gorm-backed donor repository.
func New(db *gorm.DB) donordomain.Repository {
	return &repo{db: db}
}

func (r *repo) ListAll(ctx context.Context) ([]donordomain.Donor, error) {
	var donors []donordomain.Donor
	err := r.db.WithContext(ctx).Order("id").Find(&donors).Error
	return donors, err
}

func (r *repo) ListByIDs(ctx context.Context, ids []snowflake.ID) ([]donordomain.Donor, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var donors []donordomain.Donor
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&donors).Error
	return donors, err
}
