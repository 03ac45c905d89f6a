package sqlite

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"dialoq/internal/domain"
)

type CacheRepo struct{ *Repo }

func NewCacheRepo(db *sql.DB) *CacheRepo { return &CacheRepo{NewRepo(db)} }

func (r *CacheRepo) Get(ctx context.Context, src, srcLang, tgtLang, provider string) (*domain.CacheEntry, error) {
	q := r.SQ.Select("id", "source_text", "src_lang", "tgt_lang", "provider", "translation", "created_at").
		From("translation_cache").
		Where(sq.Eq{"source_text": src, "src_lang": srcLang, "tgt_lang": tgtLang, "provider": provider}).
		Limit(1)
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	var e domain.CacheEntry
	var created string
	err = r.DB.QueryRowContext(ctx, sqlStr, args...).
		Scan(&e.ID, &e.SourceText, &e.SrcLang, &e.TgtLang, &e.Provider, &e.Translation, &created)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &e, nil
}

func (r *CacheRepo) Put(ctx context.Context, entry *domain.CacheEntry) error {
	q := r.SQ.Insert("translation_cache").
		Columns("source_text", "src_lang", "tgt_lang", "provider", "translation", "created_at").
		Values(entry.SourceText, entry.SrcLang, entry.TgtLang, entry.Provider, entry.Translation, time.Now().UTC().Format(time.RFC3339)).
		Suffix("ON CONFLICT(source_text, src_lang, tgt_lang, provider) DO UPDATE SET translation=excluded.translation, created_at=excluded.created_at")
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}
