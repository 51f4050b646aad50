package app

import (
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingodeck/internal/entity"
	"github.com/eslsoft/lingodeck/internal/infrastructure/config"
	"github.com/eslsoft/lingodeck/internal/repository"
	"github.com/eslsoft/lingodeck/internal/srs"
	"github.com/eslsoft/lingodeck/internal/usecase/backup"
	"github.com/eslsoft/lingodeck/internal/workbook"
)

func provideSettings(cfg *config.Config) entity.Settings {
	return cfg.Settings()
}

func provideScheduler() *srs.Scheduler {
	return srs.NewScheduler()
}

func provideShuffleCache(cfg *config.Config, logger *logrus.Logger) *workbook.ShuffleCache {
	idle := workbook.NewTimerScheduler(cfg.Shuffle.IdleDelay, cfg.Shuffle.IdleBudget)
	return workbook.NewShuffleCache(
		cfg.Shuffle.Capacity,
		workbook.WithIdleScheduler(idle),
		workbook.WithLogger(logger.WithField("component", "shuffle")),
	)
}

func provideBackupService(repo repository.SentenceRepository) *backup.Service {
	return backup.NewService(repo)
}
