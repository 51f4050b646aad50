package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/eslsoft/lingodeck/internal/entity"
)

// ListSentenceQuery holds parameters for listing sentences.
type ListSentenceQuery struct {
	Pagination
	FilterOrder
}

// SentenceRepository abstracts persistence for sentences to keep usecases storage agnostic.
type SentenceRepository interface {
	Create(ctx context.Context, sentence *entity.Sentence) (*entity.Sentence, error)
	Update(ctx context.Context, sentence *entity.Sentence) (*entity.Sentence, error)
	GetByID(ctx context.Context, id string) (*entity.Sentence, error)
	List(ctx context.Context, query *ListSentenceQuery) ([]entity.Sentence, int64, error)
	// All returns every sentence in creation order, as the daily queue needs the full set.
	All(ctx context.Context) ([]entity.Sentence, error)
	Delete(ctx context.Context, id string) error
}

// UpsertSentence creates the sentence or overwrites the stored row with the same id.
// An existing row keeps its creation time. created reports which path was taken.
func UpsertSentence(ctx context.Context, repo SentenceRepository, sentence *entity.Sentence) (created bool, err error) {
	existing, err := repo.GetByID(ctx, sentence.ID)
	switch {
	case errors.Is(err, entity.ErrSentenceNotFound):
		if _, err := repo.Create(ctx, sentence); err != nil {
			return false, fmt.Errorf("insert sentence %s: %w", sentence.ID, err)
		}
		return true, nil
	case err != nil:
		return false, err
	}
	sentence.CreatedAt = existing.CreatedAt
	if _, err := repo.Update(ctx, sentence); err != nil {
		return false, fmt.Errorf("update sentence %s: %w", sentence.ID, err)
	}
	return false, nil
}
