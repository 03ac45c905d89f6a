// Package workflow implements the translation-record lifecycle: bulk
// seeding, edits with audit history, status queries, machine translation,
// and patched-document export.
package workflow

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"dialoq/internal/domain"
	"dialoq/internal/ports"
	"dialoq/internal/tokens"
)

type Deps struct {
	Dialogs  ports.DialogRepository
	Provider ports.Provider
	Cache    ports.CacheRepository
}

type Config struct {
	// DefaultActor is attributed to history entries when no authenticated
	// actor is supplied.
	DefaultActor string
	// ProviderName keys translation-cache entries.
	ProviderName string
}

type Service struct {
	d   Deps
	cfg Config
	now func() time.Time
}

func New(d Deps, cfg Config) *Service {
	if cfg.DefaultActor == "" {
		cfg.DefaultActor = "admin"
	}
	return &Service{d: d, cfg: cfg, now: time.Now}
}

// SeedFromSource inserts every entry of an already-parsed seed document as
// a new pending dialog. Entries without a pre-assigned id get a fresh one.
// The batch fails as a unit; an id collision is surfaced, not dropped.
func (s *Service) SeedFromSource(ctx context.Context, doc *domain.Document) (int, error) {
	if doc == nil {
		return 0, domain.Validationf("seed document is required")
	}
	dialogs := make([]*domain.Dialog, 0, len(doc.Text))
	for _, e := range doc.Text {
		id := e.ID
		if id == "" {
			id = domain.NewID()
		}
		dialogs = append(dialogs, &domain.Dialog{
			ID:         id,
			Key:        e.Key,
			SourceText: e.SourceText,
			TargetText: e.TargetText,
			Status:     domain.StatusPending,
		})
	}
	n, err := s.d.Dialogs.InsertMany(ctx, dialogs)
	if err != nil {
		return 0, &domain.StoreError{Err: err}
	}
	return n, nil
}

// ApplyEdit updates a dialog's texts and status and appends one history
// entry, atomically per id. An empty newTargetText means "no translation
// supplied": the target field is filled from the current source text. A
// non-empty value is written to both the target and the source field.
func (s *Service) ApplyEdit(ctx context.Context, id, newTargetText string, status domain.Status) (*domain.Dialog, error) {
	if !status.Valid() {
		return nil, domain.Validationf("invalid status %q", status)
	}
	d, err := s.d.Dialogs.Update(ctx, id, func(d *domain.Dialog) error {
		if newTargetText != "" {
			d.TargetText = &newTargetText
			d.SourceText = &newTargetText
		} else {
			d.TargetText = d.SourceText
		}
		d.Status = status
		// old_text records the value just written to the target field,
		// matching the historical audit format.
		d.History = append(d.History, domain.HistoryEntry{
			EditedBy: s.cfg.DefaultActor,
			OldText:  d.TargetText,
			NewText:  &newTargetText,
			EditedAt: s.now().UTC(),
		})
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, &domain.StoreError{Err: err}
	}
	return d, nil
}

// PendingDialog is the projection returned by ListPending. History is
// omitted; the id stays so callers can edit the record later.
type PendingDialog struct {
	ID         string        `json:"id"`
	Key        string        `json:"key"`
	SourceText *string       `json:"en-US"`
	TargetText *string       `json:"es-ES"`
	Status     domain.Status `json:"status"`
}

// DefaultPendingLimit caps ListPending when the caller passes no limit.
const DefaultPendingLimit = 20

func (s *Service) ListPending(ctx context.Context, limit uint64) ([]PendingDialog, error) {
	if limit == 0 {
		limit = DefaultPendingLimit
	}
	dialogs, err := s.d.Dialogs.ListByStatus(ctx, domain.StatusPending, limit)
	if err != nil {
		return nil, &domain.StoreError{Err: err}
	}
	out := make([]PendingDialog, 0, len(dialogs))
	for _, d := range dialogs {
		out = append(out, PendingDialog{
			ID:         d.ID,
			Key:        d.Key,
			SourceText: d.SourceText,
			TargetText: d.TargetText,
			Status:     d.Status,
		})
	}
	return out, nil
}

// Statistics holds the total record count and a count per status.
type Statistics struct {
	TotalDocuments int64                   `json:"total_documents"`
	StatusCounts   map[domain.Status]int64 `json:"status_counts"`
}

// Statistics issues the total and the three per-status counts as
// independent concurrent aggregate queries.
func (s *Service) Statistics(ctx context.Context) (Statistics, error) {
	stats := Statistics{StatusCounts: make(map[domain.Status]int64, len(domain.Statuses))}
	var counts [3]int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.d.Dialogs.Count(gctx)
		stats.TotalDocuments = n
		return err
	})
	for i, status := range domain.Statuses {
		g.Go(func() error {
			n, err := s.d.Dialogs.CountByStatus(gctx, status)
			counts[i] = n
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Statistics{}, &domain.StoreError{Err: err}
	}
	for i, status := range domain.Statuses {
		stats.StatusCounts[status] = counts[i]
	}
	return stats, nil
}

var errNoProvider = errors.New("no translation provider configured")

// TranslateResult pairs the input text with its normalized translation.
type TranslateResult struct {
	OriginalText   string `json:"originalText"`
	TranslatedText string `json:"translatedText"`
}

// TranslateText machine-translates text and canonicalizes placeholder
// token casing in the result. The translation cache, when configured, is
// consulted first and written through after normalization.
func (s *Service) TranslateText(ctx context.Context, text, from, to string) (TranslateResult, error) {
	if text == "" {
		return TranslateResult{}, domain.Validationf("text is required")
	}
	fromTag, err := language.Parse(from)
	if err != nil {
		return TranslateResult{}, domain.Validationf("invalid source locale %q", from)
	}
	toTag, err := language.Parse(to)
	if err != nil {
		return TranslateResult{}, domain.Validationf("invalid target locale %q", to)
	}
	from, to = fromTag.String(), toTag.String()

	if s.d.Cache != nil {
		if ce, _ := s.d.Cache.Get(ctx, text, from, to, s.cfg.ProviderName); ce != nil {
			return TranslateResult{OriginalText: text, TranslatedText: ce.Translation}, nil
		}
	}
	if s.d.Provider == nil {
		return TranslateResult{}, &domain.ProviderError{Err: errNoProvider}
	}
	raw, err := s.d.Provider.Translate(ctx, text, from, to)
	if err != nil {
		return TranslateResult{}, &domain.ProviderError{Err: err}
	}
	translated := tokens.Normalize(raw)
	if s.d.Cache != nil {
		_ = s.d.Cache.Put(ctx, &domain.CacheEntry{
			SourceText:  text,
			SrcLang:     from,
			TgtLang:     to,
			Provider:    s.cfg.ProviderName,
			Translation: translated,
		})
	}
	return TranslateResult{OriginalText: text, TranslatedText: translated}, nil
}

// ExportPatched returns a copy of the seed document whose text entries are
// replaced by the current store contents, projected to key and source
// text. The result is meant for download, not persistence.
func (s *Service) ExportPatched(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	if doc == nil {
		return nil, domain.Validationf("seed document is required")
	}
	dialogs, err := s.d.Dialogs.ListAll(ctx)
	if err != nil {
		return nil, &domain.StoreError{Err: err}
	}
	entries := make([]domain.DocumentEntry, 0, len(dialogs))
	for _, d := range dialogs {
		entries = append(entries, domain.DocumentEntry{Key: d.Key, SourceText: d.SourceText})
	}
	out := doc.WithText(entries)
	return &out, nil
}
