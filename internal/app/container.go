package app

import (
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingodeck/internal/infrastructure/config"
	"github.com/eslsoft/lingodeck/internal/repository"
	"github.com/eslsoft/lingodeck/internal/srs"
	"github.com/eslsoft/lingodeck/internal/usecase"
	"github.com/eslsoft/lingodeck/internal/usecase/backup"
	"github.com/eslsoft/lingodeck/internal/workbook"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Config    *config.Config
	Logger    *logrus.Logger
	Scheduler *srs.Scheduler
	Sentences repository.SentenceRepository
	Reviews   usecase.ReviewUsecase
	Shuffles  *workbook.ShuffleCache
	Backup    *backup.Service
}

// Workbench holds what the workbook quiz needs; it never touches the database.
type Workbench struct {
	Config    *config.Config
	Logger    *logrus.Logger
	Scheduler *srs.Scheduler
	Shuffles  *workbook.ShuffleCache
}
