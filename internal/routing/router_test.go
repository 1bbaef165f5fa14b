package routing

import (
	"context"
	"testing"

	"github.com/rfontaine/stagegate/internal/domain"
	"github.com/rfontaine/stagegate/internal/repository"
	"github.com/rfontaine/stagegate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitFor(t *testing.T) {
	tests := []struct {
		phase domain.Phase
		unit  ProcessingUnit
	}{
		{domain.PhaseDiscovery, DefinitionUnit},
		{domain.PhasePlan, PlanningUnit},
		{domain.PhaseImplementation, ImplementationUnit},
		{domain.PhaseReview, ReviewUnit},
		{domain.PhaseOperations, ReleaseUnit},
		{domain.PhaseEvolution, EvolutionUnit},
	}
	for _, tt := range tests {
		unit, err := UnitFor(tt.phase)
		require.NoError(t, err)
		assert.Equal(t, tt.unit, unit)
	}
}

func TestUnitFor_NoneIsNotRoutable(t *testing.T) {
	_, err := UnitFor(domain.PhaseNone)
	assert.Error(t, err)
}

func TestRouter_Queue(t *testing.T) {
	repo := repository.NewSQLiteWorkItemRepo(testutil.NewTestDB(t))
	router := NewRouter(repo)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestWorkItem("a", testutil.WithPhase(domain.PhaseImplementation))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestWorkItem("b", testutil.WithPhase(domain.PhaseImplementation))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestWorkItem("c", testutil.WithPhase(domain.PhaseReview))))

	cancelled := testutil.NewTestWorkItem("d", testutil.WithPhase(domain.PhaseImplementation))
	cancelled.Status = domain.StatusCancelled
	require.NoError(t, repo.Create(ctx, cancelled))

	queue, err := router.Queue(ctx, ImplementationUnit)
	require.NoError(t, err)
	assert.Len(t, queue, 2)

	_, err = router.Queue(ctx, ProcessingUnit("shipping"))
	assert.Error(t, err)
}

func TestRouter_Queues(t *testing.T) {
	repo := repository.NewSQLiteWorkItemRepo(testutil.NewTestDB(t))
	router := NewRouter(repo)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestWorkItem("a", testutil.WithPhase(domain.PhaseDiscovery))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestWorkItem("b", testutil.WithPhase(domain.PhaseEvolution))))

	queues, err := router.Queues(ctx)
	require.NoError(t, err)
	assert.Len(t, queues, 6)
	assert.Len(t, queues[DefinitionUnit], 1)
	assert.Len(t, queues[EvolutionUnit], 1)
	assert.Empty(t, queues[ReviewUnit])
}
