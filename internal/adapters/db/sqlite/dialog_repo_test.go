package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dialoq/internal/domain"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Init(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func str(s string) *string { return &s }

func testDialogs(n int) []*domain.Dialog {
	out := make([]*domain.Dialog, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &domain.Dialog{
			ID:         fmt.Sprintf("id%04d", i),
			Key:        fmt.Sprintf("key_%d", i),
			SourceText: str(fmt.Sprintf("Line %d", i)),
			Status:     domain.StatusPending,
		})
	}
	return out
}

func TestInsertManyAndGet(t *testing.T) {
	repo := NewDialogRepo(testDB(t))
	ctx := context.Background()

	n, err := repo.InsertMany(ctx, testDialogs(3))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	d, err := repo.Get(ctx, "id0001")
	require.NoError(t, err)
	assert.Equal(t, "key_1", d.Key)
	require.NotNil(t, d.SourceText)
	assert.Equal(t, "Line 1", *d.SourceText)
	assert.Nil(t, d.TargetText)
	assert.Equal(t, domain.StatusPending, d.Status)
	assert.Empty(t, d.History)
	assert.False(t, d.CreatedAt.IsZero())
}

func TestInsertManyIDCollisionFailsWholeBatch(t *testing.T) {
	repo := NewDialogRepo(testDB(t))
	ctx := context.Background()

	_, err := repo.InsertMany(ctx, testDialogs(3))
	require.NoError(t, err)

	_, err = repo.InsertMany(ctx, testDialogs(3))
	require.Error(t, err)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestGetNotFound(t *testing.T) {
	repo := NewDialogRepo(testDB(t))
	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateAppendsHistoryAtomically(t *testing.T) {
	repo := NewDialogRepo(testDB(t))
	ctx := context.Background()
	_, err := repo.InsertMany(ctx, testDialogs(1))
	require.NoError(t, err)

	d, err := repo.Update(ctx, "id0000", func(d *domain.Dialog) error {
		d.TargetText = str("Hola")
		d.SourceText = str("Hola")
		d.Status = domain.StatusTranslated
		d.History = append(d.History, domain.HistoryEntry{
			EditedBy: "admin",
			OldText:  d.TargetText,
			NewText:  str("Hola"),
			EditedAt: time.Now().UTC(),
		})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTranslated, d.Status)
	require.Len(t, d.History, 1)

	// Re-read: history persisted in order, texts updated.
	got, err := repo.Get(ctx, "id0000")
	require.NoError(t, err)
	require.NotNil(t, got.TargetText)
	assert.Equal(t, "Hola", *got.TargetText)
	require.Len(t, got.History, 1)
	assert.Equal(t, "admin", got.History[0].EditedBy)
	require.NotNil(t, got.History[0].NewText)
	assert.Equal(t, "Hola", *got.History[0].NewText)
}

func TestUpdateNotFound(t *testing.T) {
	repo := NewDialogRepo(testDB(t))
	_, err := repo.Update(context.Background(), "missing", func(*domain.Dialog) error { return nil })
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateMutateErrorRollsBack(t *testing.T) {
	repo := NewDialogRepo(testDB(t))
	ctx := context.Background()
	_, err := repo.InsertMany(ctx, testDialogs(1))
	require.NoError(t, err)

	boom := fmt.Errorf("boom")
	_, err = repo.Update(ctx, "id0000", func(d *domain.Dialog) error {
		d.Status = domain.StatusTranslated
		return boom
	})
	assert.ErrorIs(t, err, boom)

	d, err := repo.Get(ctx, "id0000")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, d.Status)
}

func TestConcurrentUpdatesSameIDLoseNothing(t *testing.T) {
	repo := NewDialogRepo(testDB(t))
	ctx := context.Background()
	_, err := repo.InsertMany(ctx, testDialogs(1))
	require.NoError(t, err)

	const workers = 4
	const editsPerWorker = 10
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < editsPerWorker; i++ {
				_, err := repo.Update(ctx, "id0000", func(d *domain.Dialog) error {
					d.History = append(d.History, domain.HistoryEntry{
						EditedBy: "admin",
						NewText:  str(fmt.Sprintf("w%d-%d", w, i)),
						EditedAt: time.Now().UTC(),
					})
					return nil
				})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	d, err := repo.Get(ctx, "id0000")
	require.NoError(t, err)
	assert.Len(t, d.History, workers*editsPerWorker)
}

func TestConcurrentUpdatesDistinctIDsComplete(t *testing.T) {
	repo := NewDialogRepo(testDB(t))
	ctx := context.Background()
	_, err := repo.InsertMany(ctx, testDialogs(2))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, id := range []string{"id0000", "id0001"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				_, err := repo.Update(ctx, id, func(d *domain.Dialog) error {
					d.TargetText = str(fmt.Sprintf("t%d", i))
					return nil
				})
				assert.NoError(t, err)
			}
		}()
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(15 * time.Second):
		t.Fatal("updates on distinct ids did not complete")
	}
}

func TestListByStatusLimit(t *testing.T) {
	repo := NewDialogRepo(testDB(t))
	ctx := context.Background()
	_, err := repo.InsertMany(ctx, testDialogs(30))
	require.NoError(t, err)

	got, err := repo.ListByStatus(ctx, domain.StatusPending, 20)
	require.NoError(t, err)
	assert.Len(t, got, 20)
	for _, d := range got {
		assert.Equal(t, domain.StatusPending, d.Status)
	}

	none, err := repo.ListByStatus(ctx, domain.StatusTranslated, 20)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListAllInsertionOrder(t *testing.T) {
	repo := NewDialogRepo(testDB(t))
	ctx := context.Background()
	_, err := repo.InsertMany(ctx, testDialogs(5))
	require.NoError(t, err)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i, d := range all {
		assert.Equal(t, fmt.Sprintf("id%04d", i), d.ID)
	}
}

func TestCounts(t *testing.T) {
	repo := NewDialogRepo(testDB(t))
	ctx := context.Background()
	_, err := repo.InsertMany(ctx, testDialogs(4))
	require.NoError(t, err)

	_, err = repo.Update(ctx, "id0000", func(d *domain.Dialog) error {
		d.Status = domain.StatusTranslated
		return nil
	})
	require.NoError(t, err)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	pending, err := repo.CountByStatus(ctx, domain.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(3), pending)

	translated, err := repo.CountByStatus(ctx, domain.StatusTranslated)
	require.NoError(t, err)
	assert.Equal(t, int64(1), translated)
}

func TestCacheRepoPutGet(t *testing.T) {
	repo := NewCacheRepo(testDB(t))
	ctx := context.Background()

	miss, err := repo.Get(ctx, "Hello", "en", "es", "mymemory")
	require.NoError(t, err)
	assert.Nil(t, miss)

	require.NoError(t, repo.Put(ctx, &domain.CacheEntry{
		SourceText: "Hello", SrcLang: "en", TgtLang: "es",
		Provider: "mymemory", Translation: "Hola",
	}))

	hit, err := repo.Get(ctx, "Hello", "en", "es", "mymemory")
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, "Hola", hit.Translation)

	// Same key overwrites.
	require.NoError(t, repo.Put(ctx, &domain.CacheEntry{
		SourceText: "Hello", SrcLang: "en", TgtLang: "es",
		Provider: "mymemory", Translation: "Buenas",
	}))
	hit, err = repo.Get(ctx, "Hello", "en", "es", "mymemory")
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, "Buenas", hit.Translation)
}
