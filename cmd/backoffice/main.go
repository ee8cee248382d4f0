package main

import (
	"github.com/bwmarrin/snowflake"
	bankaccountdomain "github.com/solidaria/backoffice/internal/bankaccount/domain"
	"github.com/solidaria/backoffice/internal/clock"
	"github.com/solidaria/backoffice/internal/collection"
	collectiondomain "github.com/solidaria/backoffice/internal/collection/domain"
	"github.com/solidaria/backoffice/internal/config"
	"github.com/solidaria/backoffice/internal/donor"
	donordomain "github.com/solidaria/backoffice/internal/donor/domain"
	"github.com/solidaria/backoffice/internal/logger"
	"github.com/solidaria/backoffice/internal/server"
	"github.com/solidaria/backoffice/pkg/db"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,

		donor.Module,
		collection.Module,
		server.Module,

		fx.Invoke(migrate),
	)
	app.Run()
}

func registerSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

func migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&donordomain.Donor{},
		&bankaccountdomain.BankAccount{},
		&collectiondomain.CollectionRun{},
		&collectiondomain.CollectionItem{},
		&collectiondomain.CollectionEvent{},
	)
}
