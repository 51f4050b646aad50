//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingodeck/internal/adapter/repository"
	"github.com/eslsoft/lingodeck/internal/infrastructure/config"
	"github.com/eslsoft/lingodeck/internal/infrastructure/database"
	"github.com/eslsoft/lingodeck/internal/infrastructure/logging"
	"github.com/eslsoft/lingodeck/internal/usecase"
)

var configSet = wire.NewSet(
	config.Load,
	provideSettings,
)

var loggingSet = wire.NewSet(
	logging.NewLogger,
	wire.Bind(new(logrus.FieldLogger), new(*logrus.Logger)),
)

var databaseSet = wire.NewSet(
	database.NewConnection,
)

var repositorySet = wire.NewSet(
	repository.NewSentenceRepository,
)

var usecaseSet = wire.NewSet(
	provideScheduler,
	usecase.NewReviewUsecase,
	provideBackupService,
)

var workbookSet = wire.NewSet(
	provideShuffleCache,
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		loggingSet,
		databaseSet,
		repositorySet,
		usecaseSet,
		workbookSet,
		wire.Struct(new(Container), "*"),
	)
	return nil, nil, nil
}

// InitializeWorkbench builds the database-free workbook dependencies.
func InitializeWorkbench() (*Workbench, error) {
	wire.Build(
		config.Load,
		loggingSet,
		provideScheduler,
		workbookSet,
		wire.Struct(new(Workbench), "*"),
	)
	return nil, nil
}
