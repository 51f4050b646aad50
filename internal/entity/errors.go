package entity

import "errors"

// Domain errors for sentences and their scheduling settings.
var (
	ErrSentenceNotFound      = errors.New("sentence not found")
	ErrDuplicateSentence     = errors.New("sentence already exists")
	ErrInvalidSentenceID     = errors.New("invalid sentence ID")
	ErrInvalidSentenceText   = errors.New("invalid sentence text")
	ErrInvalidSentenceStatus = errors.New("invalid sentence status")
	ErrInvalidPracticeCount  = errors.New("invalid practice count")
	ErrInvalidDueDate        = errors.New("invalid due date")
	ErrInvalidReviewInterval = errors.New("invalid review interval")
)
