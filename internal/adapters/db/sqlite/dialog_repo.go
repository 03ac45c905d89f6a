package sqlite

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"dialoq/internal/domain"
)

type DialogRepo struct{ *Repo }

func NewDialogRepo(db *sql.DB) *DialogRepo { return &DialogRepo{NewRepo(db)} }

var dialogColumns = []string{"id", "key", "source_text", "target_text", "status", "created_at"}

func (r *DialogRepo) InsertMany(ctx context.Context, dialogs []*domain.Dialog) (int, error) {
	if len(dialogs) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	ib := r.SQ.Insert("dialogs").Columns(dialogColumns...)
	for _, d := range dialogs {
		created := d.CreatedAt
		if created.IsZero() {
			created = now
		}
		ib = ib.Values(d.ID, d.Key, nullable(d.SourceText), nullable(d.TargetText), string(d.Status), created.Format(time.RFC3339))
	}
	sqlStr, args, err := ib.ToSql()
	if err != nil {
		return 0, err
	}
	if _, err := r.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		return 0, err
	}
	return len(dialogs), nil
}

func (r *DialogRepo) Get(ctx context.Context, id string) (*domain.Dialog, error) {
	d, err := r.getRow(ctx, r.DB, id)
	if err != nil {
		return nil, err
	}
	d.History, err = r.listHistory(ctx, r.DB, id)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Update applies mutate inside one transaction so concurrent edits to the
// same id never lose a history entry or a status change.
func (r *DialogRepo) Update(ctx context.Context, id string, mutate func(*domain.Dialog) error) (*domain.Dialog, error) {
	var out *domain.Dialog
	err := WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		d, err := r.getRow(ctx, tx, id)
		if err != nil {
			return err
		}
		d.History, err = r.listHistory(ctx, tx, id)
		if err != nil {
			return err
		}
		before := len(d.History)
		if err := mutate(d); err != nil {
			return err
		}
		uq := r.SQ.Update("dialogs").
			Set("key", d.Key).
			Set("source_text", nullable(d.SourceText)).
			Set("target_text", nullable(d.TargetText)).
			Set("status", string(d.Status)).
			Where(sq.Eq{"id": id})
		sqlStr, args, err := uq.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return err
		}
		for _, h := range d.History[before:] {
			hq := r.SQ.Insert("dialog_history").
				Columns("dialog_id", "edited_by", "old_text", "new_text", "edited_at").
				Values(id, h.EditedBy, nullable(h.OldText), nullable(h.NewText), h.EditedAt.UTC().Format(time.RFC3339))
			sqlStr, args, err := hq.ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
				return err
			}
		}
		out = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *DialogRepo) ListByStatus(ctx context.Context, status domain.Status, limit uint64) ([]*domain.Dialog, error) {
	q := r.SQ.Select(dialogColumns...).From("dialogs").Where(sq.Eq{"status": string(status)})
	if limit > 0 {
		q = q.Limit(limit)
	}
	return r.queryDialogs(ctx, q)
}

func (r *DialogRepo) ListAll(ctx context.Context) ([]*domain.Dialog, error) {
	q := r.SQ.Select(dialogColumns...).From("dialogs").OrderBy("rowid")
	return r.queryDialogs(ctx, q)
}

func (r *DialogRepo) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, r.SQ.Select("COUNT(*)").From("dialogs"))
}

func (r *DialogRepo) CountByStatus(ctx context.Context, status domain.Status) (int64, error) {
	return r.count(ctx, r.SQ.Select("COUNT(*)").From("dialogs").Where(sq.Eq{"status": string(status)}))
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *DialogRepo) getRow(ctx context.Context, q querier, id string) (*domain.Dialog, error) {
	sel := r.SQ.Select(dialogColumns...).From("dialogs").Where(sq.Eq{"id": id}).Limit(1)
	sqlStr, args, err := sel.ToSql()
	if err != nil {
		return nil, err
	}
	d, err := scanDialog(q.QueryRowContext(ctx, sqlStr, args...))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return d, err
}

func (r *DialogRepo) listHistory(ctx context.Context, q querier, id string) ([]domain.HistoryEntry, error) {
	sel := r.SQ.Select("edited_by", "old_text", "new_text", "edited_at").
		From("dialog_history").Where(sq.Eq{"dialog_id": id}).OrderBy("id")
	sqlStr, args, err := sel.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.HistoryEntry
	for rows.Next() {
		var h domain.HistoryEntry
		var old, newt sql.NullString
		var edited string
		if err := rows.Scan(&h.EditedBy, &old, &newt, &edited); err != nil {
			return nil, err
		}
		h.OldText = fromNull(old)
		h.NewText = fromNull(newt)
		h.EditedAt, _ = time.Parse(time.RFC3339, edited)
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *DialogRepo) queryDialogs(ctx context.Context, q sq.SelectBuilder) ([]*domain.Dialog, error) {
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Dialog
	for rows.Next() {
		d, err := scanDialog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DialogRepo) count(ctx context.Context, q sq.SelectBuilder) (int64, error) {
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := r.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

type scanner interface{ Scan(dest ...any) error }

func scanDialog(row scanner) (*domain.Dialog, error) {
	var d domain.Dialog
	var src, tgt sql.NullString
	var status, created string
	if err := row.Scan(&d.ID, &d.Key, &src, &tgt, &status, &created); err != nil {
		return nil, err
	}
	d.SourceText = fromNull(src)
	d.TargetText = fromNull(tgt)
	d.Status = domain.Status(status)
	d.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &d, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func fromNull(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
