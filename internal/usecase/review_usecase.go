package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingodeck/internal/entity"
	"github.com/eslsoft/lingodeck/internal/repository"
	"github.com/eslsoft/lingodeck/internal/srs"
)

// ImportResult counts what ImportSentences did.
type ImportResult struct {
	Created int
	Updated int
}

// ReviewUsecase encapsulates the sentence drill workflow on top of the scheduler.
type ReviewUsecase interface {
	AddSentence(ctx context.Context, sentence *entity.Sentence) (*entity.Sentence, error)
	DailyQueue(ctx context.Context, limit int) ([]entity.Sentence, error)
	SubmitReview(ctx context.Context, id string, correct bool) (*entity.Sentence, error)
	Stats(ctx context.Context) (entity.ReviewStats, error)
	ListSentences(ctx context.Context, query *repository.ListSentenceQuery) ([]entity.Sentence, int64, error)
	DeleteSentence(ctx context.Context, id string) error
	ImportSentences(ctx context.Context, r io.Reader) (ImportResult, error)
}

// NewReviewUsecase wires the repository and scheduler with the configured intervals.
func NewReviewUsecase(repo repository.SentenceRepository, scheduler *srs.Scheduler, settings entity.Settings, logger logrus.FieldLogger) ReviewUsecase {
	return &reviewUsecase{
		repo:      repo,
		scheduler: scheduler,
		settings:  settings,
		logger:    logger,
		newID:     uuid.NewString,
	}
}

type reviewUsecase struct {
	repo      repository.SentenceRepository
	scheduler *srs.Scheduler
	settings  entity.Settings
	logger    logrus.FieldLogger
	newID     func() string
}

func (u *reviewUsecase) AddSentence(ctx context.Context, sentence *entity.Sentence) (*entity.Sentence, error) {
	if sentence == nil || strings.TrimSpace(sentence.Text) == "" {
		return nil, entity.ErrInvalidSentenceText
	}

	id := strings.TrimSpace(sentence.ID)
	if id == "" {
		id = u.newID()
	}
	fresh := u.scheduler.NewSentence(id, sentence.Text)
	fresh.Translation = sentence.Translation
	fresh.Language = sentence.Language
	fresh.Tags = sentence.Tags
	fresh.Normalize(u.scheduler.Now())
	if err := fresh.Validate(); err != nil {
		return nil, err
	}

	created, err := u.repo.Create(ctx, &fresh)
	if err != nil {
		return nil, err
	}
	u.logger.WithField("id", created.ID).Info("sentence added")
	return created, nil
}

func (u *reviewUsecase) DailyQueue(ctx context.Context, limit int) ([]entity.Sentence, error) {
	all, err := u.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	queue := u.scheduler.GenerateDailyQueue(all)
	if limit > 0 && len(queue) > limit {
		queue = queue[:limit]
	}
	return queue, nil
}

func (u *reviewUsecase) SubmitReview(ctx context.Context, id string, correct bool) (*entity.Sentence, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, entity.ErrInvalidSentenceID
	}

	existing, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reviewed, err := u.scheduler.UpdateSentenceStatus(*existing, correct, u.settings.ReviewInterval)
	if err != nil {
		return nil, err
	}
	reviewed.UpdatedAt = u.scheduler.Now()

	updated, err := u.repo.Update(ctx, &reviewed)
	if err != nil {
		return nil, err
	}
	u.logger.WithFields(logrus.Fields{
		"id":       updated.ID,
		"correct":  correct,
		"from":     existing.Status,
		"to":       updated.Status,
		"next_due": updated.NextDue,
	}).Info("review recorded")
	return updated, nil
}

func (u *reviewUsecase) Stats(ctx context.Context) (entity.ReviewStats, error) {
	all, err := u.repo.All(ctx)
	if err != nil {
		return entity.ReviewStats{}, err
	}
	return u.scheduler.GetReviewStats(all), nil
}

func (u *reviewUsecase) ListSentences(ctx context.Context, query *repository.ListSentenceQuery) ([]entity.Sentence, int64, error) {
	return u.repo.List(ctx, query)
}

func (u *reviewUsecase) DeleteSentence(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return entity.ErrInvalidSentenceID
	}
	return u.repo.Delete(ctx, id)
}

// ImportSentences reads a JSON array of sentences as stored by the web client and
// upserts every record. The whole payload is validated before anything is written.
func (u *reviewUsecase) ImportSentences(ctx context.Context, r io.Reader) (ImportResult, error) {
	var records []entity.Sentence
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return ImportResult{}, fmt.Errorf("decode sentences: %w", err)
	}

	now := u.scheduler.Now()
	for i := range records {
		if strings.TrimSpace(records[i].ID) == "" {
			records[i].ID = u.newID()
		}
		records[i].Normalize(now)
		if err := records[i].Validate(); err != nil {
			return ImportResult{}, fmt.Errorf("sentence %d (%s): %w", i, records[i].ID, err)
		}
	}

	var result ImportResult
	for i := range records {
		created, err := repository.UpsertSentence(ctx, u.repo, &records[i])
		if err != nil {
			return result, err
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	u.logger.WithFields(logrus.Fields{
		"created": result.Created,
		"updated": result.Updated,
	}).Info("sentences imported")
	return result, nil
}
