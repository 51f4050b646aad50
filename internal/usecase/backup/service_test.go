package backup

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"

	adapterrepo "github.com/eslsoft/lingodeck/internal/adapter/repository"
	"github.com/eslsoft/lingodeck/internal/entity"
	"github.com/eslsoft/lingodeck/internal/infrastructure/config"
	"github.com/eslsoft/lingodeck/internal/infrastructure/database"
	"github.com/eslsoft/lingodeck/internal/repository"
)

var exportedAt = time.Date(2024, 1, 6, 7, 0, 0, 0, time.UTC)

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := openSQLiteRepo(t, "src.db")
	seeded := seedData(t, ctx, src)

	exporter := NewService(src, WithBatchSize(2), WithClock(func() time.Time { return exportedAt }))
	progress := &recordingProgress{}
	var buf bytes.Buffer
	if err := exporter.Export(ctx, &buf, WithProgressReporter(progress)); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	lines := readLines(t, buf.Bytes())
	if len(lines) != len(seeded)+1 {
		t.Fatalf("expected %d lines, got %d", len(seeded)+1, len(lines))
	}
	var meta rawRecord
	if err := json.Unmarshal([]byte(lines[0]), &meta); err != nil {
		t.Fatalf("decode meta: %v", err)
	}
	if meta.Type != recordMeta || meta.Version != formatVersion || meta.RowCounts[tableSentences] != len(seeded) {
		t.Fatalf("unexpected meta record: %+v", meta)
	}
	if meta.ExportedAt == nil || !meta.ExportedAt.Equal(exportedAt) {
		t.Fatalf("unexpected exported_at: %v", meta.ExportedAt)
	}
	if diff := cmp.Diff([]string{"start:sentences:3", "inc:2", "inc:1", "finish:sentences"}, progress.events); diff != "" {
		t.Fatalf("progress mismatch (-want +got):\n%s", diff)
	}

	dst := openSQLiteRepo(t, "dst.db")
	importer := NewService(dst)
	stats, err := importer.Import(ctx, bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if diff := cmp.Diff(ImportStats{Created: 3}, stats); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}

	got, err := dst.All(ctx)
	if err != nil {
		t.Fatalf("list imported: %v", err)
	}
	if diff := cmp.Diff(seeded, got); diff != "" {
		t.Fatalf("imported sentences mismatch (-want +got):\n%s", diff)
	}

	// A second import of the same stream updates in place.
	stats, err = importer.Import(ctx, bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("re-import failed: %v", err)
	}
	if diff := cmp.Diff(ImportStats{Updated: 3}, stats); diff != "" {
		t.Fatalf("re-import stats mismatch (-want +got):\n%s", diff)
	}
}

func TestExportStatusSubset(t *testing.T) {
	ctx := context.Background()
	src := openSQLiteRepo(t, "src.db")
	seedData(t, ctx, src)

	var buf bytes.Buffer
	if err := NewService(src).Export(ctx, &buf, WithStatuses([]string{"Green", "yellow", "green"})); err != nil {
		t.Fatalf("filtered export failed: %v", err)
	}

	lines := readLines(t, buf.Bytes())
	var ids []string
	for _, line := range lines[1:] {
		var rec struct {
			Type    string          `json:"type"`
			Payload entity.Sentence `json:"payload"`
		}
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("decode record: %v", err)
		}
		if rec.Payload.Status == entity.StatusRed {
			t.Fatalf("red sentence leaked into export: %s", rec.Payload.ID)
		}
		ids = append(ids, rec.Payload.ID)
	}
	if diff := cmp.Diff([]string{"s2", "s3"}, ids); diff != "" {
		t.Fatalf("exported ids mismatch (-want +got):\n%s", diff)
	}

	if err := NewService(src).Export(ctx, &bytes.Buffer{}, WithStatuses([]string{"blue"})); !errors.Is(err, entity.ErrInvalidSentenceStatus) {
		t.Fatalf("expected ErrInvalidSentenceStatus, got %v", err)
	}
}

func TestImportStatusSubset(t *testing.T) {
	ctx := context.Background()
	src := openSQLiteRepo(t, "src.db")
	seedData(t, ctx, src)

	var buf bytes.Buffer
	if err := NewService(src).Export(ctx, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	dst := openSQLiteRepo(t, "dst.db")
	stats, err := NewService(dst).Import(ctx, &buf, WithImportStatuses([]string{"red"}))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if diff := cmp.Diff(ImportStats{Created: 1, Skipped: 2}, stats); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
	items, total, err := dst.List(ctx, &repository.ListSentenceQuery{})
	if err != nil || total != 1 || items[0].ID != "s1" {
		t.Fatalf("unexpected destination contents: items=%v total=%d err=%v", items, total, err)
	}
}

func TestImportRejectsMalformedStreams(t *testing.T) {
	sentence := `{"type":"sentence","payload":{"id":"x","text":"hi","status":"red","practiceCount":0,"nextDue":"2024-01-05"}}`
	tests := []struct {
		name    string
		stream  string
		wantErr error
		wantMsg string
	}{
		{name: "missing meta", stream: sentence + "\n", wantMsg: "missing meta"},
		{name: "future version", stream: `{"type":"meta","version":2}` + "\n" + sentence, wantMsg: "unsupported format version"},
		{name: "garbage line", stream: `{"type":"meta","version":1}` + "\nnot json\n", wantMsg: "decode record on line 2"},
		{name: "missing payload", stream: `{"type":"meta","version":1}` + "\n" + `{"type":"sentence"}`, wantMsg: "missing payload"},
		{
			name:    "unknown status",
			stream:  `{"type":"meta","version":1}` + "\n" + strings.Replace(sentence, `"red"`, `"blue"`, 1),
			wantErr: entity.ErrInvalidSentenceStatus,
		},
		{
			name:    "bad due date",
			stream:  `{"type":"meta","version":1}` + "\n" + strings.Replace(sentence, "2024-01-05", "soon", 1),
			wantErr: entity.ErrInvalidDueDate,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &countingRepo{}
			_, err := NewService(repo).Import(context.Background(), strings.NewReader(tt.stream))
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("expected error containing %q, got %v", tt.wantMsg, err)
			}
			if repo.writes != 0 {
				t.Fatalf("no sentence should be written, got %d writes", repo.writes)
			}
		})
	}
}

func TestImportIgnoresUnknownRecordTypes(t *testing.T) {
	repo := &countingRepo{}
	stream := strings.Join([]string{
		`{"type":"meta","version":1}`,
		`{"type":"review_log","payload":{"id":1}}`,
		`{"type":"sentence","payload":{"id":"x","text":"hi","status":"yellow","practiceCount":1,"nextDue":"2024-01-08"}}`,
	}, "\n")
	stats, err := NewService(repo).Import(context.Background(), strings.NewReader(stream))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if stats.Created != 1 || repo.writes != 1 {
		t.Fatalf("unexpected stats %+v writes %d", stats, repo.writes)
	}
}

func TestStatusFilter(t *testing.T) {
	got, err := statusFilter([]string{" yellow", "RED", "red", ""})
	if err != nil {
		t.Fatalf("statusFilter: %v", err)
	}
	if want := "status in ['yellow', 'red']"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if _, err := statusFilter([]string{" "}); !errors.Is(err, errNoStatusesSelected) {
		t.Fatalf("expected errNoStatusesSelected, got %v", err)
	}
}

func openSQLiteRepo(t *testing.T, name string) repository.SentenceRepository {
	t.Helper()
	cfg := &config.Config{Database: config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    "file:" + filepath.Join(t.TempDir(), name),
	}}
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	db, cleanup, err := database.NewConnection(cfg, logger)
	if err != nil {
		t.Skipf("sqlite driver not available: %v", err)
	}
	t.Cleanup(cleanup)
	return adapterrepo.NewSentenceRepository(db)
}

func seedData(t *testing.T, ctx context.Context, repo repository.SentenceRepository) []entity.Sentence {
	t.Helper()
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	practiced := base.Add(24 * time.Hour)
	seed := []entity.Sentence{
		{ID: "s1", Text: "Guten Tag", Translation: "Good day", Language: entity.LanguageGerman, Tags: []string{"greeting"}, Status: entity.StatusRed, NextDue: "2024-01-01", CreatedAt: base, UpdatedAt: base},
		{ID: "s2", Text: "Buenas noches", Language: entity.LanguageSpanish, Tags: []string{}, Status: entity.StatusYellow, PracticeCount: 1, LastPracticed: &practiced, NextDue: "2024-01-05", CreatedAt: base.Add(time.Minute), UpdatedAt: practiced},
		{ID: "s3", Text: "Thank you", Language: entity.LanguageEnglish, Tags: []string{"polite", "a1"}, Status: entity.StatusGreen, PracticeCount: 4, LastPracticed: &practiced, NextDue: "2024-01-09", CreatedAt: base.Add(2 * time.Minute), UpdatedAt: practiced},
	}
	for i := range seed {
		if _, err := repo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("seed %s: %v", seed[i].ID, err)
		}
	}
	return seed
}

func readLines(t *testing.T, data []byte) []string {
	t.Helper()
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan lines: %v", err)
	}
	return lines
}

type recordingProgress struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingProgress) StartTable(table string, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, "start:"+table+":"+strconv.Itoa(total))
}

func (p *recordingProgress) Increment(_ string, delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, "inc:"+strconv.Itoa(delta))
}

func (p *recordingProgress) FinishTable(table string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, "finish:"+table)
}

// countingRepo treats every id as unknown and counts writes.
type countingRepo struct {
	writes int
}

func (r *countingRepo) Create(_ context.Context, s *entity.Sentence) (*entity.Sentence, error) {
	r.writes++
	return s, nil
}

func (r *countingRepo) Update(_ context.Context, s *entity.Sentence) (*entity.Sentence, error) {
	r.writes++
	return s, nil
}

func (r *countingRepo) GetByID(context.Context, string) (*entity.Sentence, error) {
	return nil, entity.ErrSentenceNotFound
}

func (r *countingRepo) List(context.Context, *repository.ListSentenceQuery) ([]entity.Sentence, int64, error) {
	return nil, 0, nil
}

func (r *countingRepo) All(context.Context) ([]entity.Sentence, error) { return nil, nil }

func (r *countingRepo) Delete(context.Context, string) error { return nil }
