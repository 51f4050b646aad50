package backup

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/lingodeck/internal/entity"
	"github.com/eslsoft/lingodeck/internal/repository"
)

const (
	defaultBatchSize = 512
	formatVersion    = 1

	tableSentences = "sentences"
	recordMeta     = "meta"
	recordSentence = "sentence"
)

var errNoStatusesSelected = errors.New("backup: no statuses selected")

type ProgressReporter interface {
	StartTable(table string, total int)
	Increment(table string, delta int)
	FinishTable(table string)
}

type noopProgress struct{}

func (noopProgress) StartTable(string, int) {}
func (noopProgress) Increment(string, int)  {}
func (noopProgress) FinishTable(string)     {}

// Service streams sentences to and from the NDJSON backup format.
type Service struct {
	repo      repository.SentenceRepository
	batchSize int
	clock     func() time.Time
}

type Option func(*Service)

func WithBatchSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

// WithClock overrides the timestamp written into the meta record.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewService constructs a backup service on top of the sentence repository.
func NewService(repo repository.SentenceRepository, opts ...Option) *Service {
	svc := &Service{
		repo:      repo,
		batchSize: defaultBatchSize,
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type ExportOption func(*exportConfig)

type exportConfig struct {
	statuses []string
	reporter ProgressReporter
}

// WithStatuses restricts export to sentences in the given mastery tiers.
func WithStatuses(statuses []string) ExportOption {
	return func(cfg *exportConfig) {
		if len(statuses) == 0 {
			return
		}
		cfg.statuses = append([]string{}, statuses...)
	}
}

// WithProgressReporter registers a reporter that receives progress callbacks during export.
func WithProgressReporter(reporter ProgressReporter) ExportOption {
	return func(cfg *exportConfig) {
		cfg.reporter = reporter
	}
}

type ImportOption func(*importConfig)

type importConfig struct {
	statuses []string
}

// WithImportStatuses restricts import to sentences in the given mastery tiers.
func WithImportStatuses(statuses []string) ImportOption {
	return func(cfg *importConfig) {
		if len(statuses) == 0 {
			return
		}
		cfg.statuses = append([]string{}, statuses...)
	}
}

type record struct {
	Type       string         `json:"type"`
	Version    int            `json:"version,omitempty"`
	ExportedAt *time.Time     `json:"exported_at,omitempty"`
	Tables     []string       `json:"tables,omitempty"`
	RowCounts  map[string]int `json:"row_counts,omitempty"`
	Payload    any            `json:"payload,omitempty"`
}

type rawRecord struct {
	Type       string          `json:"type"`
	Version    int             `json:"version"`
	ExportedAt *time.Time      `json:"exported_at"`
	Tables     []string        `json:"tables"`
	RowCounts  map[string]int  `json:"row_counts"`
	Payload    json.RawMessage `json:"payload"`
}

// ImportStats reports what Import wrote.
type ImportStats struct {
	Created int
	Updated int
	Skipped int
}

func (s *Service) Export(ctx context.Context, w io.Writer, opts ...ExportOption) error {
	cfg := exportConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	reporter := cfg.reporter
	if reporter == nil {
		reporter = noopProgress{}
	}
	filter, err := statusFilter(cfg.statuses)
	if err != nil {
		return err
	}

	batch := int32(s.batchSize)
	first, total, err := s.repo.List(ctx, &repository.ListSentenceQuery{
		Pagination:  repository.Pagination{PageNo: 1, PageSize: batch},
		FilterOrder: repository.FilterOrder{Filter: filter, OrderBy: "created_at, id"},
	})
	if err != nil {
		return fmt.Errorf("count %s: %w", tableSentences, err)
	}

	writer := bufio.NewWriter(w)
	defer writer.Flush()

	now := s.clock().UTC()
	meta := record{
		Type:       recordMeta,
		Version:    formatVersion,
		ExportedAt: &now,
		Tables:     []string{tableSentences},
		RowCounts:  map[string]int{tableSentences: int(total)},
	}
	if err := writeRecord(writer, meta); err != nil {
		return err
	}

	reporter.StartTable(tableSentences, int(total))
	page := first
	for pageNo := int32(1); ; pageNo++ {
		if pageNo > 1 {
			page, _, err = s.repo.List(ctx, &repository.ListSentenceQuery{
				Pagination:  repository.Pagination{PageNo: pageNo, PageSize: batch},
				FilterOrder: repository.FilterOrder{Filter: filter, OrderBy: "created_at, id"},
			})
			if err != nil {
				return fmt.Errorf("query %s: %w", tableSentences, err)
			}
		}
		for i := range page {
			if err := writeRecord(writer, record{Type: recordSentence, Payload: page[i]}); err != nil {
				return err
			}
		}
		reporter.Increment(tableSentences, len(page))
		if len(page) < int(batch) {
			break
		}
	}
	reporter.FinishTable(tableSentences)
	return writer.Flush()
}

// Import reads an NDJSON backup and upserts every sentence record. The meta record
// must be present and carry a supported version; rows are decoded and validated
// before any of them is written.
func (s *Service) Import(ctx context.Context, r io.Reader, opts ...ImportOption) (ImportStats, error) {
	cfg := importConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	var keep map[entity.Status]struct{}
	if len(cfg.statuses) > 0 {
		statuses, err := parseStatuses(cfg.statuses)
		if err != nil {
			return ImportStats{}, err
		}
		keep = lo.SliceToMap(statuses, func(st entity.Status) (entity.Status, struct{}) {
			return st, struct{}{}
		})
	}

	br := bufio.NewReader(r)
	var (
		metaSeen  bool
		meta      rawRecord
		sentences []entity.Sentence
		stats     ImportStats
		lineNo    int
	)
	now := s.clock()

	for {
		line, err := br.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return stats, fmt.Errorf("read backup: %w", err)
		}
		lineNo++
		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			var rec rawRecord
			if err := json.Unmarshal(line, &rec); err != nil {
				return stats, fmt.Errorf("decode record on line %d: %w", lineNo, err)
			}

			switch rec.Type {
			case recordMeta:
				metaSeen = true
				meta = rec
			case recordSentence:
				if len(rec.Payload) == 0 {
					return stats, fmt.Errorf("backup: missing payload on line %d", lineNo)
				}
				var sentence entity.Sentence
				if err := json.Unmarshal(rec.Payload, &sentence); err != nil {
					return stats, fmt.Errorf("decode sentence on line %d: %w", lineNo, err)
				}
				if keep != nil {
					if _, ok := keep[sentence.Status]; !ok {
						stats.Skipped++
						break
					}
				}
				updatedAt := sentence.UpdatedAt
				sentence.Normalize(now)
				if !updatedAt.IsZero() {
					sentence.UpdatedAt = updatedAt
				}
				if err := sentence.Validate(); err != nil {
					return stats, fmt.Errorf("sentence on line %d: %w", lineNo, err)
				}
				sentences = append(sentences, sentence)
			default:
				// Records from newer writers are ignored.
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
	}

	if !metaSeen {
		return stats, errors.New("backup: missing meta record")
	}
	if meta.Version != formatVersion {
		return stats, fmt.Errorf("backup: unsupported format version %d", meta.Version)
	}

	for i := range sentences {
		created, err := repository.UpsertSentence(ctx, s.repo, &sentences[i])
		if err != nil {
			return stats, err
		}
		if created {
			stats.Created++
		} else {
			stats.Updated++
		}
	}
	return stats, nil
}

func parseStatuses(raw []string) ([]entity.Status, error) {
	statuses := make([]entity.Status, 0, len(raw))
	for _, item := range raw {
		if strings.TrimSpace(item) == "" {
			continue
		}
		status, err := entity.ParseStatus(item)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	statuses = lo.Uniq(statuses)
	if len(statuses) == 0 {
		return nil, errNoStatusesSelected
	}
	return statuses, nil
}

func statusFilter(raw []string) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	statuses, err := parseStatuses(raw)
	if err != nil {
		return "", err
	}
	quoted := lo.Map(statuses, func(st entity.Status, _ int) string {
		return "'" + st.String() + "'"
	})
	return "status in [" + strings.Join(quoted, ", ") + "]", nil
}

func writeRecord(w io.Writer, rec record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return err
	}
	return nil
}
