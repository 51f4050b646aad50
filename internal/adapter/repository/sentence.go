package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/samber/lo"

	"github.com/eslsoft/lingodeck/internal/entity"
	"github.com/eslsoft/lingodeck/internal/infrastructure/database"
	"github.com/eslsoft/lingodeck/internal/infrastructure/database/types"
	"github.com/eslsoft/lingodeck/internal/repository"
	"github.com/eslsoft/lingodeck/pkg/filterexpr"
)

const sentenceColumns = `id, text, translation, language, tags, status, practice_count, last_practiced, next_due, created_at, updated_at`

type SentenceRepository struct {
	db *database.DB
}

// NewSentenceRepository constructs a database/sql backed repository.
func NewSentenceRepository(db *database.DB) repository.SentenceRepository {
	return &SentenceRepository{db: db}
}

type listSentencesParams struct {
	Status        string
	Statuses      []string
	DueBefore     *string
	DueAfter      *string
	TextPrefix    string
	Language      string
	MinPractice   *int
	MaxPractice   *int
	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

func (r *SentenceRepository) Create(ctx context.Context, sentence *entity.Sentence) (*entity.Sentence, error) {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO sentences (`+sentenceColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), sentenceArgs(sentence)...)
	if err != nil {
		return nil, translateSentenceError(err)
	}
	return r.GetByID(ctx, sentence.ID)
}

func (r *SentenceRepository) Update(ctx context.Context, sentence *entity.Sentence) (*entity.Sentence, error) {
	var lastPracticed sql.NullTime
	if sentence.LastPracticed != nil {
		lastPracticed = sql.NullTime{Time: sentence.LastPracticed.UTC(), Valid: true}
	}
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE sentences
		SET text = ?, translation = ?, language = ?, tags = ?, status = ?, practice_count = ?,
		    last_practiced = ?, next_due = ?, updated_at = ?
		WHERE id = ?
	`),
		sentence.Text,
		sentence.Translation,
		sentence.Language.CodeOrDefault(),
		types.StringList(sentence.Tags),
		string(sentence.Status),
		sentence.PracticeCount,
		lastPracticed,
		sentence.NextDue,
		sentence.UpdatedAt.UTC(),
		sentence.ID,
	)
	if err != nil {
		return nil, translateSentenceError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update sentence %s: %w", sentence.ID, err)
	}
	if affected == 0 {
		return nil, entity.ErrSentenceNotFound
	}
	return r.GetByID(ctx, sentence.ID)
}

func (r *SentenceRepository) GetByID(ctx context.Context, id string) (*entity.Sentence, error) {
	row := r.db.QueryRowContext(ctx, r.db.Rebind(`SELECT `+sentenceColumns+` FROM sentences WHERE id = ?`), id)
	sentence, err := scanSentence(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrSentenceNotFound
		}
		return nil, fmt.Errorf("get sentence %s: %w", id, err)
	}
	return sentence, nil
}

func (r *SentenceRepository) List(ctx context.Context, query *repository.ListSentenceQuery) ([]entity.Sentence, int64, error) {
	if query == nil {
		query = &repository.ListSentenceQuery{}
	}
	var params listSentencesParams
	if err := filterexpr.Bind(query, &params, listSentencesSchema); err != nil {
		return nil, 0, err
	}

	where, args, err := buildSentenceWhere(params)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, r.db.Rebind(`SELECT COUNT(*) FROM sentences`+where), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sentences: %w", err)
	}

	orderBy := filterexpr.OrderClause(listSentencesSchema.Order, params.PrimaryKey, params.PrimaryDesc, params.SecondaryKey, params.SecondaryDesc)
	stmt := `SELECT ` + sentenceColumns + ` FROM sentences` + where + ` ORDER BY ` + orderBy
	if query.PageSize > 0 {
		stmt += ` LIMIT ? OFFSET ?`
		args = append(args, query.PageSize, query.Offset())
	}

	sentences, err := r.query(ctx, stmt, args...)
	if err != nil {
		return nil, 0, err
	}
	return sentences, total, nil
}

func (r *SentenceRepository) All(ctx context.Context) ([]entity.Sentence, error) {
	return r.query(ctx, `SELECT `+sentenceColumns+` FROM sentences ORDER BY created_at ASC, id ASC`)
}

func (r *SentenceRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM sentences WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete sentence %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete sentence %s: %w", id, err)
	}
	if affected == 0 {
		return entity.ErrSentenceNotFound
	}
	return nil
}

func (r *SentenceRepository) query(ctx context.Context, stmt string, args ...any) ([]entity.Sentence, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(stmt), args...)
	if err != nil {
		return nil, fmt.Errorf("list sentences: %w", err)
	}
	defer rows.Close()

	sentences := []entity.Sentence{}
	for rows.Next() {
		sentence, err := scanSentence(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sentence row: %w", err)
		}
		sentences = append(sentences, *sentence)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sentences: %w", err)
	}
	return sentences, nil
}

func buildSentenceWhere(params listSentencesParams) (string, []any, error) {
	var (
		conds []string
		args  []any
	)
	statuses := params.Statuses
	if params.Status != "" {
		statuses = append(statuses, params.Status)
	}
	statuses, err := normalizeStatuses(statuses)
	if err != nil {
		return "", nil, err
	}
	if len(statuses) > 0 {
		conds = append(conds, `status IN (`+placeholders(len(statuses))+`)`)
		args = append(args, lo.ToAnySlice(statuses)...)
	}
	if params.DueBefore != nil {
		conds = append(conds, `next_due <= ?`)
		args = append(args, *params.DueBefore)
	}
	if params.DueAfter != nil {
		conds = append(conds, `next_due >= ?`)
		args = append(args, *params.DueAfter)
	}
	if prefix := strings.TrimSpace(params.TextPrefix); prefix != "" {
		conds = append(conds, `substr(text, 1, ?) = ?`)
		args = append(args, len([]rune(prefix)), prefix)
	}
	if lang := strings.TrimSpace(params.Language); lang != "" {
		conds = append(conds, `language = ?`)
		args = append(args, entity.NormalizeLanguage(entity.ParseLanguage(lang)).Code())
	}
	if params.MinPractice != nil {
		conds = append(conds, `practice_count >= ?`)
		args = append(args, *params.MinPractice)
	}
	if params.MaxPractice != nil {
		conds = append(conds, `practice_count <= ?`)
		args = append(args, *params.MaxPractice)
	}
	if len(conds) == 0 {
		return "", nil, nil
	}
	return ` WHERE ` + strings.Join(conds, ` AND `), args, nil
}

func sentenceArgs(s *entity.Sentence) []any {
	var lastPracticed sql.NullTime
	if s.LastPracticed != nil {
		lastPracticed = sql.NullTime{Time: s.LastPracticed.UTC(), Valid: true}
	}
	return []any{
		s.ID,
		s.Text,
		s.Translation,
		s.Language.CodeOrDefault(),
		types.StringList(s.Tags),
		string(s.Status),
		s.PracticeCount,
		lastPracticed,
		s.NextDue,
		s.CreatedAt.UTC(),
		s.UpdatedAt.UTC(),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSentence(row rowScanner) (*entity.Sentence, error) {
	var (
		s             entity.Sentence
		language      string
		tags          types.StringList
		status        string
		lastPracticed sql.NullTime
		createdAt     time.Time
		updatedAt     time.Time
	)
	if err := row.Scan(
		&s.ID,
		&s.Text,
		&s.Translation,
		&language,
		&tags,
		&status,
		&s.PracticeCount,
		&lastPracticed,
		&s.NextDue,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	parsed, err := entity.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("sentence %s: %w", s.ID, err)
	}
	s.Status = parsed
	s.Language = entity.ParseLanguage(language)
	s.Tags = []string(tags)
	if lastPracticed.Valid {
		t := lastPracticed.Time.UTC()
		s.LastPracticed = &t
	}
	s.CreatedAt = createdAt.UTC()
	s.UpdatedAt = updatedAt.UTC()
	return &s, nil
}

func translateSentenceError(err error) error {
	if err == nil {
		return nil
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && (liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey || liteErr.ExtendedCode == sqlite3.ErrConstraintUnique) {
		return entity.ErrDuplicateSentence
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return entity.ErrDuplicateSentence
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return entity.ErrDuplicateSentence
	}
	return fmt.Errorf("write sentence: %w", err)
}
