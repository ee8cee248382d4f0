package collection

import (
	"github.com/bwmarrin/snowflake"
	"github.com/solidaria/backoffice/internal/collection/domain"
	"github.com/solidaria/backoffice/internal/collection/repository"
	"github.com/solidaria/backoffice/internal/collection/service"
	"github.com/solidaria/backoffice/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newRunRepository(db *gorm.DB, log *zap.Logger, genID *snowflake.Node, cfg config.Config) domain.RunRepository {
	return repository.New(db, log, genID, cfg.TrackingBatchSize)
}

var Module = fx.Module("collection",
	fx.Provide(newRunRepository),
	fx.Provide(service.NewService),
)
