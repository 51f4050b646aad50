package entity

import (
	"strings"
	"time"
)

// DateLayout is the day-granularity format used for due dates.
const DateLayout = "2006-01-02"

// Sentence is a drill item tracked by the spaced-repetition scheduler.
// The JSON shape matches records persisted by the web client.
type Sentence struct {
	ID            string     `json:"id"`
	Text          string     `json:"text"`
	Translation   string     `json:"translation,omitempty"`
	Language      Language   `json:"language,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	Status        Status     `json:"status"`
	PracticeCount int        `json:"practiceCount"`
	LastPracticed *time.Time `json:"lastPracticed"`
	NextDue       string     `json:"nextDue"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Normalize ensures defaults & constraints before persistence.
func (s *Sentence) Normalize(now time.Time) {
	s.ID = strings.TrimSpace(s.ID)
	s.Text = strings.TrimSpace(s.Text)
	s.Translation = strings.TrimSpace(s.Translation)
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	if s.Language.Code() == "" {
		s.Language = LanguageEnglish
	} else {
		s.Language = NormalizeLanguage(s.Language)
	}
	s.Tags = NormalizeTags(s.Tags)
	if s.Status == "" {
		s.Status = StatusRed
	}
	if s.NextDue == "" {
		s.NextDue = now.Format(DateLayout)
	}
}

// Validate checks the fields the scheduler relies on.
func (s *Sentence) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return ErrInvalidSentenceID
	}
	if strings.TrimSpace(s.Text) == "" {
		return ErrInvalidSentenceText
	}
	if !s.Status.Valid() {
		return ErrInvalidSentenceStatus
	}
	if s.PracticeCount < 0 {
		return ErrInvalidPracticeCount
	}
	if _, err := time.Parse(DateLayout, s.NextDue); err != nil {
		return ErrInvalidDueDate
	}
	return nil
}

// Clone returns a deep copy so callers never share the tag slice or timestamp.
func (s Sentence) Clone() Sentence {
	if s.Tags != nil {
		s.Tags = append([]string(nil), s.Tags...)
	}
	if s.LastPracticed != nil {
		practiced := *s.LastPracticed
		s.LastPracticed = &practiced
	}
	return s
}

// NormalizeTags trims, lowercases and de-duplicates tags while keeping their order.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		normalized := normalizeTag(tag)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}
	return result
}
