package postgres_test

import (
	"context"
	"fmt"
	"moapyr/internal/adapters/repository/postgres"
	"moapyr/internal/core/domain"
	"moapyr/internal/core/port"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSqlResourceRepository(t *testing.T) {
	dbConnection, cleanup, truncate := postgres.NewTestDB(t)
	defer cleanup()
	ctx := context.Background()

	repo := postgres.NewSQLResourceRepository(dbConnection)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	createAt := func(t *testing.T, res domain.Resource, at time.Time) domain.Resource {
		t.Helper()
		res.CreatedAt = at
		require.NoError(t, repo.Create(ctx, res))
		return res
	}

	t.Run("create and find", func(t *testing.T) {
		truncate()
		res := newResource("Linear algebra notes", domain.ResourceStatusPendingUpload)
		res.Description = "chapter 1-3"
		res.Tags = "math, notes"
		require.NoError(t, repo.Create(ctx, res))

		got, err := repo.FindByID(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, res.Title, got.Title)
		assert.Equal(t, res.Description, got.Description)
		assert.Equal(t, res.Tags, got.Tags)
		assert.Equal(t, res.UploaderAddress, got.UploaderAddress)
		assert.Equal(t, res.FileKey, got.FileKey)
		assert.Equal(t, res.FileSize, got.FileSize)
		assert.Equal(t, domain.ResourceStatusPendingUpload, got.Status)
		assert.Zero(t, got.Downloads)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("find unknown", func(t *testing.T) {
		truncate()
		_, err := repo.FindByID(ctx, uuid.New())
		require.ErrorIs(t, err, domain.ErrResourceNotFound)
	})

	t.Run("duplicate id", func(t *testing.T) {
		truncate()
		res := newResource("dup", domain.ResourceStatusPending)
		require.NoError(t, repo.Create(ctx, res))
		err := repo.Create(ctx, res)
		require.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("update status", func(t *testing.T) {
		truncate()
		res := createAt(t, newResource("status", domain.ResourceStatusPendingUpload), base)

		require.NoError(t, repo.UpdateStatus(ctx, res.ID, domain.ResourceStatusPending))
		got, err := repo.FindByID(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ResourceStatusPending, got.Status)
		assert.True(t, got.UpdatedAt.After(base))

		err = repo.UpdateStatus(ctx, uuid.New(), domain.ResourceStatusApproved)
		require.ErrorIs(t, err, domain.ErrResourceNotFound)
	})

	t.Run("search filters approved and orders newest first", func(t *testing.T) {
		truncate()
		old := createAt(t, newResource("Go concurrency", domain.ResourceStatusApproved), base)
		recent := createAt(t, newResource("Rust ownership", domain.ResourceStatusApproved), base.Add(time.Hour))
		createAt(t, newResource("Go pending", domain.ResourceStatusPending), base.Add(2*time.Hour))
		createAt(t, newResource("Go rejected", domain.ResourceStatusRejected), base.Add(3*time.Hour))

		all, err := repo.Search(ctx, domain.SearchQuery{}, domain.SearchLimit)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, recent.ID, all[0].ID)
		assert.Equal(t, old.ID, all[1].ID)

		goOnly, err := repo.Search(ctx, domain.SearchQuery{Query: "go"}, domain.SearchLimit)
		require.NoError(t, err)
		require.Len(t, goOnly, 1)
		assert.Equal(t, old.ID, goOnly[0].ID)
	})

	t.Run("search matches description and tags", func(t *testing.T) {
		truncate()
		byDesc := newResource("Untitled", domain.ResourceStatusApproved)
		byDesc.Description = "Lecture slides on DATABASES"
		byDesc = createAt(t, byDesc, base)

		byTag := newResource("Other", domain.ResourceStatusApproved)
		byTag.Tags = "exam,Physics"
		byTag = createAt(t, byTag, base.Add(time.Minute))

		got, err := repo.Search(ctx, domain.SearchQuery{Query: "databases"}, domain.SearchLimit)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, byDesc.ID, got[0].ID)

		got, err = repo.Search(ctx, domain.SearchQuery{Tag: "physics"}, domain.SearchLimit)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, byTag.ID, got[0].ID)

		got, err = repo.Search(ctx, domain.SearchQuery{Query: "slides", Tag: "physics"}, domain.SearchLimit)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("search treats like metacharacters literally", func(t *testing.T) {
		truncate()
		percent := createAt(t, newResource("100% pass rate", domain.ResourceStatusApproved), base)
		createAt(t, newResource("1000 pass rate", domain.ResourceStatusApproved), base.Add(time.Minute))

		got, err := repo.Search(ctx, domain.SearchQuery{Query: "0%"}, domain.SearchLimit)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, percent.ID, got[0].ID)

		got, err = repo.Search(ctx, domain.SearchQuery{Query: "_"}, domain.SearchLimit)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("search is limited", func(t *testing.T) {
		truncate()
		for i := 0; i < domain.SearchLimit+5; i++ {
			createAt(t, newResource(fmt.Sprintf("item %d", i), domain.ResourceStatusApproved), base.Add(time.Duration(i)*time.Second))
		}

		got, err := repo.Search(ctx, domain.SearchQuery{}, domain.SearchLimit)
		require.NoError(t, err)
		require.Len(t, got, domain.SearchLimit)
		assert.Equal(t, fmt.Sprintf("item %d", domain.SearchLimit+4), got[0].Title)
	})

	t.Run("list by status oldest first", func(t *testing.T) {
		truncate()
		second := createAt(t, newResource("second", domain.ResourceStatusPending), base.Add(time.Hour))
		first := createAt(t, newResource("first", domain.ResourceStatusPending), base)
		createAt(t, newResource("other", domain.ResourceStatusPendingUpload), base)

		got, err := repo.ListByStatus(ctx, domain.ResourceStatusPending)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, first.ID, got[0].ID)
		assert.Equal(t, second.ID, got[1].ID)

		got, err = repo.ListByStatus(ctx, domain.ResourceStatusRejected)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("list tags", func(t *testing.T) {
		truncate()
		a := newResource("a", domain.ResourceStatusApproved)
		a.Tags = "Math, notes,math"
		createAt(t, a, base)
		b := newResource("b", domain.ResourceStatusApproved)
		b.Tags = "math,,exam "
		createAt(t, b, base)
		hidden := newResource("c", domain.ResourceStatusPending)
		hidden.Tags = "secret"
		createAt(t, hidden, base)

		got, err := repo.ListTags(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.TagCount{
			{Name: "math", Count: 2},
			{Name: "exam", Count: 1},
			{Name: "notes", Count: 1},
		}, got)
	})

	t.Run("stats", func(t *testing.T) {
		truncate()
		approved := createAt(t, newResource("a", domain.ResourceStatusApproved), base)
		rejected := createAt(t, newResource("r", domain.ResourceStatusRejected), base)
		require.NoError(t, repo.IncrementDownloads(ctx, approved.ID))
		require.NoError(t, repo.IncrementDownloads(ctx, approved.ID))
		require.NoError(t, repo.IncrementDownloads(ctx, rejected.ID))

		got, err := repo.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, &domain.Stats{Downloads: 3, Resources: 1}, got)
	})

	t.Run("stats on empty table", func(t *testing.T) {
		truncate()
		got, err := repo.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, &domain.Stats{}, got)
	})

	t.Run("abandoned uploads", func(t *testing.T) {
		truncate()
		stale := createAt(t, newResource("stale", domain.ResourceStatusPendingUpload), base)
		createAt(t, newResource("fresh", domain.ResourceStatusPendingUpload), base.Add(48*time.Hour))
		createAt(t, newResource("old but finalized", domain.ResourceStatusPending), base)

		got, err := repo.FindAbandoned(ctx, base.Add(24*time.Hour))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, stale.ID, got[0].ID)
	})

	t.Run("delete only touches pending uploads", func(t *testing.T) {
		truncate()
		pendingUpload := createAt(t, newResource("pu", domain.ResourceStatusPendingUpload), base)
		approved := createAt(t, newResource("ok", domain.ResourceStatusApproved), base)

		require.NoError(t, repo.Delete(ctx, pendingUpload.ID))
		_, err := repo.FindByID(ctx, pendingUpload.ID)
		require.ErrorIs(t, err, domain.ErrResourceNotFound)

		err = repo.Delete(ctx, approved.ID)
		require.ErrorIs(t, err, domain.ErrResourceNotFound)
		_, err = repo.FindByID(ctx, approved.ID)
		require.NoError(t, err)
	})

	t.Run("cleanup keeps uploads with download events", func(t *testing.T) {
		truncate()
		events := postgres.NewSQLDownloadEventRepository(dbConnection)
		downloaded := createAt(t, newResource("downloaded", domain.ResourceStatusPendingUpload), base)
		require.NoError(t, events.Append(ctx, downloaded.ID, domain.DownloadEventType))

		got, err := repo.FindAbandoned(ctx, base.Add(24*time.Hour))
		require.NoError(t, err)
		assert.Empty(t, got)

		err = repo.Delete(ctx, downloaded.ID)
		require.ErrorIs(t, err, domain.ErrResourceNotFound)

		_, err = repo.FindByID(ctx, downloaded.ID)
		require.NoError(t, err)
		logged, err := events.ListByResource(ctx, downloaded.ID)
		require.NoError(t, err)
		assert.Len(t, logged, 1)
	})

	t.Run("advance status only from the expected state", func(t *testing.T) {
		truncate()
		pendingUpload := createAt(t, newResource("pu", domain.ResourceStatusPendingUpload), base)
		approved := createAt(t, newResource("ok", domain.ResourceStatusApproved), base)

		advanced, err := repo.AdvanceStatus(ctx, pendingUpload.ID, domain.ResourceStatusPendingUpload, domain.ResourceStatusPending)
		require.NoError(t, err)
		assert.True(t, advanced)
		got, err := repo.FindByID(ctx, pendingUpload.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ResourceStatusPending, got.Status)

		advanced, err = repo.AdvanceStatus(ctx, approved.ID, domain.ResourceStatusPendingUpload, domain.ResourceStatusPending)
		require.NoError(t, err)
		assert.False(t, advanced)
		got, err = repo.FindByID(ctx, approved.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ResourceStatusApproved, got.Status)

		advanced, err = repo.AdvanceStatus(ctx, uuid.New(), domain.ResourceStatusPendingUpload, domain.ResourceStatusPending)
		require.NoError(t, err)
		assert.False(t, advanced)
	})

	t.Run("concurrent increments are not lost", func(t *testing.T) {
		truncate()
		res := createAt(t, newResource("popular", domain.ResourceStatusApproved), base)
		uow := postgres.NewUnitOfWork(dbConnection)

		const downloads = 20
		var wg sync.WaitGroup
		errs := make(chan error, downloads)
		for i := 0; i < downloads; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- uow.Execute(ctx, func(u port.UnitOfWork) error {
					if err := u.ResourceRepo().IncrementDownloads(ctx, res.ID); err != nil {
						return err
					}
					return u.DownloadEventRepo().Append(ctx, res.ID, domain.DownloadEventType)
				})
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		got, err := repo.FindByID(ctx, res.ID)
		require.NoError(t, err)
		assert.EqualValues(t, downloads, got.Downloads)

		events, err := postgres.NewSQLDownloadEventRepository(dbConnection).ListByResource(ctx, res.ID)
		require.NoError(t, err)
		assert.Len(t, events, downloads)
		for _, ev := range events {
			assert.Equal(t, domain.DownloadEventType, ev.EventType)
		}
	})
}
