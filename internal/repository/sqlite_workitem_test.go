package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rfontaine/stagegate/internal/domain"
	"github.com/rfontaine/stagegate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupWorkItemRepo(t *testing.T) *SQLiteWorkItemRepo {
	t.Helper()
	return NewSQLiteWorkItemRepo(testutil.NewTestDB(t))
}

func TestWorkItemRepo_CreateAndGet(t *testing.T) {
	repo := setupWorkItemRepo(t)
	ctx := context.Background()

	w := testutil.NewTestWorkItem("password reset", testutil.WithMetadata(testutil.DiscoveryReadyMetadata()))
	require.NoError(t, repo.Create(ctx, w))

	fetched, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "password reset", fetched.Title)
	assert.Equal(t, domain.TypeFeature, fetched.Type)
	assert.Equal(t, domain.PhaseNone, fetched.Phase)
	assert.Equal(t, domain.StatusDraft, fetched.Status)
	assert.Len(t, fetched.Metadata.AcceptanceCriteria, 3)
	assert.False(t, fetched.MetadataInvalid)
}

func TestWorkItemRepo_GetByID_NotFound(t *testing.T) {
	repo := setupWorkItemRepo(t)
	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkItemRepo_List(t *testing.T) {
	repo := setupWorkItemRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestWorkItem("one")))
	archived := testutil.NewTestWorkItem("two")
	archived.Status = domain.StatusArchived
	require.NoError(t, repo.Create(ctx, archived))

	active, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestWorkItemRepo_ListByPhase(t *testing.T) {
	repo := setupWorkItemRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestWorkItem("a", testutil.WithPhase(domain.PhasePlan))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestWorkItem("b", testutil.WithPhase(domain.PhasePlan))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestWorkItem("c", testutil.WithPhase(domain.PhaseReview))))

	cancelled := testutil.NewTestWorkItem("d", testutil.WithPhase(domain.PhasePlan))
	cancelled.Status = domain.StatusCancelled
	require.NoError(t, repo.Create(ctx, cancelled))

	inPlan, err := repo.ListByPhase(ctx, domain.PhasePlan)
	require.NoError(t, err)
	assert.Len(t, inPlan, 2, "cancelled items are excluded from phase routing")
}

func TestWorkItemRepo_Update(t *testing.T) {
	repo := setupWorkItemRepo(t)
	ctx := context.Background()

	w := testutil.NewTestWorkItem("item")
	require.NoError(t, repo.Create(ctx, w))

	w.Metadata.BusinessContext = "expanded context for the work"
	w.UpdatedAt = w.UpdatedAt.Add(time.Minute)
	require.NoError(t, repo.Update(ctx, w))

	fetched, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "expanded context for the work", fetched.Metadata.BusinessContext)
}

func TestWorkItemRepo_Update_NotFound(t *testing.T) {
	repo := setupWorkItemRepo(t)
	w := testutil.NewTestWorkItem("ghost")
	err := repo.Update(context.Background(), w)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkItemRepo_UpdatePhaseStatus(t *testing.T) {
	repo := setupWorkItemRepo(t)
	ctx := context.Background()

	w := testutil.NewTestWorkItem("item")
	require.NoError(t, repo.Create(ctx, w))

	err := repo.UpdatePhaseStatus(ctx, w.ID, domain.PhaseNone, domain.PhaseDiscovery,
		domain.StatusReady, time.Now().UTC())
	require.NoError(t, err)

	fetched, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseDiscovery, fetched.Phase)
	assert.Equal(t, domain.StatusReady, fetched.Status)
}

func TestWorkItemRepo_UpdatePhaseStatus_Conflict(t *testing.T) {
	repo := setupWorkItemRepo(t)
	ctx := context.Background()

	w := testutil.NewTestWorkItem("item", testutil.WithPhase(domain.PhasePlan))
	require.NoError(t, repo.Create(ctx, w))

	// Guard phase no longer matches: another caller already advanced it.
	err := repo.UpdatePhaseStatus(ctx, w.ID, domain.PhaseDiscovery, domain.PhasePlan,
		domain.StatusReady, time.Now().UTC())
	assert.ErrorIs(t, err, ErrConflict)

	fetched, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PhasePlan, fetched.Phase, "conflicting update must not change the row")
}

func TestWorkItemRepo_UpdatePhaseStatus_NotFound(t *testing.T) {
	repo := setupWorkItemRepo(t)
	err := repo.UpdatePhaseStatus(context.Background(), "missing", domain.PhaseNone,
		domain.PhaseDiscovery, domain.StatusReady, time.Now().UTC())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkItemRepo_MalformedMetadataFlagged(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteWorkItemRepo(database)
	ctx := context.Background()

	_, err := database.ExecContext(ctx, `INSERT INTO work_items (id, title, type, metadata, created_at, updated_at)
		VALUES ('w1', 'broken', 'feature', '{"tasks": "oops"', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	fetched, err := repo.GetByID(ctx, "w1")
	require.NoError(t, err, "a malformed metadata document must not fail the load")
	assert.True(t, fetched.MetadataInvalid)
}

func TestWorkItemRepo_UpdatePreservesMalformedMetadata(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteWorkItemRepo(database)
	ctx := context.Background()

	const badDoc = `{"business_context": tru`
	_, err := database.ExecContext(ctx, `INSERT INTO work_items (id, title, type, metadata, created_at, updated_at)
		VALUES ('w1', 'broken', 'feature', ?, '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`, badDoc)
	require.NoError(t, err)

	fetched, err := repo.GetByID(ctx, "w1")
	require.NoError(t, err)
	require.True(t, fetched.MetadataInvalid)

	fetched.Status = domain.StatusBlocked
	fetched.UpdatedAt = fetched.UpdatedAt.Add(time.Minute)
	require.NoError(t, repo.Update(ctx, fetched))

	var stored string
	require.NoError(t, database.QueryRowContext(ctx,
		`SELECT metadata FROM work_items WHERE id = 'w1'`).Scan(&stored))
	assert.Equal(t, badDoc, stored, "a status update must not overwrite a document it could not decode")

	again, err := repo.GetByID(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusBlocked, again.Status)
	assert.True(t, again.MetadataInvalid)
}

func TestWorkItemRepo_Delete(t *testing.T) {
	repo := setupWorkItemRepo(t)
	ctx := context.Background()

	w := testutil.NewTestWorkItem("item")
	require.NoError(t, repo.Create(ctx, w))
	require.NoError(t, repo.Delete(ctx, w.ID))

	_, err := repo.GetByID(ctx, w.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
