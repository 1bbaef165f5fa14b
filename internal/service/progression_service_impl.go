package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rfontaine/stagegate/internal/db"
	"github.com/rfontaine/stagegate/internal/domain"
	"github.com/rfontaine/stagegate/internal/gate"
	"github.com/rfontaine/stagegate/internal/repository"
)

// maxAdvanceAttempts bounds retries when a concurrent writer moved the item
// between our read and our guarded commit.
const maxAdvanceAttempts = 3

// ErrProgressionSuspended is returned when progression is attempted on a
// blocked, cancelled, or archived work item.
var ErrProgressionSuspended = errors.New("progression suspended")

type progressionService struct {
	workItems repository.WorkItemRepo
	events    repository.AuditEventRepo
	uow       db.UnitOfWork
	registry  *gate.Registry
	sequencer *gate.Sequencer
	observer  UseCaseObserver

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewProgressionService creates the phase progression service. Advancement
// for any single work item is serialized in-process; cross-process writers
// are handled by the phase-guarded commit.
func NewProgressionService(
	workItems repository.WorkItemRepo,
	events repository.AuditEventRepo,
	uow db.UnitOfWork,
	registry *gate.Registry,
	sequencer *gate.Sequencer,
	observers ...UseCaseObserver,
) ProgressionService {
	return &progressionService{
		workItems: workItems,
		events:    events,
		uow:       uow,
		registry:  registry,
		sequencer: sequencer,
		observer:  useCaseObserverOrNoop(observers),
		locks:     make(map[string]*sync.Mutex),
	}
}

// itemLock returns the mutex serializing progression for one work item ID.
func (s *progressionService) itemLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

func (s *progressionService) ValidateCurrentGate(ctx context.Context, workItemID string) (domain.GateResult, error) {
	started := time.Now()

	w, err := s.workItems.GetByID(ctx, workItemID)
	if err != nil {
		return domain.GateResult{}, err
	}

	result, _, err := s.validate(w)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "validate_gate",
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		StartedAt: started,
		Fields: map[string]any{
			"work_item_id": workItemID,
			"phase":        string(w.Phase),
			"passed":       result.Passed,
			"confidence":   result.Confidence,
		},
	})
	if err != nil {
		return domain.GateResult{}, err
	}
	return result, nil
}

func (s *progressionService) AdvanceToNextPhase(ctx context.Context, workItemID string) (*domain.PhaseTransitionResult, error) {
	lock := s.itemLock(workItemID)
	lock.Lock()
	defer lock.Unlock()

	started := time.Now()
	var result *domain.PhaseTransitionResult
	var err error
	for attempt := 0; attempt < maxAdvanceAttempts; attempt++ {
		result, err = s.tryAdvance(ctx, workItemID)
		if !errors.Is(err, repository.ErrConflict) {
			break
		}
	}

	event := UseCaseEvent{
		Name:      "advance_phase",
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		StartedAt: started,
		Fields:    map[string]any{"work_item_id": workItemID},
	}
	if result != nil {
		event.Fields["advanced"] = result.Advanced
		event.Fields["old_phase"] = string(result.OldPhase)
		event.Fields["new_phase"] = string(result.NewPhase)
		event.Fields["confidence"] = result.Gate.Confidence
		event.Fields["degraded"] = result.Degraded
	}
	s.observer.ObserveUseCase(ctx, event)

	return result, err
}

// tryAdvance runs one read-validate-commit cycle. It returns an error
// wrapping repository.ErrConflict when a concurrent writer invalidated the
// phase guard; the caller re-reads and re-validates against the new phase.
func (s *progressionService) tryAdvance(ctx context.Context, workItemID string) (*domain.PhaseTransitionResult, error) {
	w, err := s.workItems.GetByID(ctx, workItemID)
	if err != nil {
		return nil, err
	}

	if !w.Progressable() {
		return nil, fmt.Errorf("work item %s is %s: %w", w.ID, w.Status, ErrProgressionSuspended)
	}

	if s.sequencer.IsTerminal(w.Type, w.Phase) {
		return &domain.PhaseTransitionResult{
			AlreadyComplete: true,
			OldPhase:        w.Phase,
			NewPhase:        w.Phase,
			OldStatus:       w.Status,
			NewStatus:       w.Status,
		}, nil
	}

	result, gatePhase, err := s.validate(w)
	if err != nil {
		return nil, err
	}

	transition := &domain.PhaseTransitionResult{
		Gate:      result,
		OldPhase:  w.Phase,
		NewPhase:  w.Phase,
		OldStatus: w.Status,
		NewStatus: w.Status,
	}
	if !result.Passed {
		return transition, nil
	}

	next, err := s.sequencer.NextPhase(w.Type, w.Phase)
	if err != nil {
		return nil, fmt.Errorf("resolving next phase: %w", err)
	}
	newStatus := domain.StatusForPhase(next)
	now := time.Now().UTC()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRepo := repository.NewSQLiteWorkItemRepo(tx)
		if err := txRepo.UpdatePhaseStatus(ctx, w.ID, w.Phase, next, newStatus, now); err != nil {
			return err
		}

		if w.Metadata.GateResults == nil {
			w.Metadata.GateResults = make(map[domain.Phase]domain.GateResult)
		}
		w.Metadata.GateResults[gatePhase] = result
		w.Phase = next
		w.Status = newStatus
		w.UpdatedAt = now
		return txRepo.Update(ctx, w)
	})
	if err != nil {
		return nil, err
	}

	transition.Advanced = true
	transition.NewPhase = next
	transition.NewStatus = newStatus

	// The transition is already durable; a failed audit write degrades the
	// result instead of rolling it back.
	audit := &domain.AuditEvent{
		ID:         uuid.New().String(),
		WorkItemID: w.ID,
		OldPhase:   transition.OldPhase,
		NewPhase:   transition.NewPhase,
		OldStatus:  transition.OldStatus,
		NewStatus:  transition.NewStatus,
		Confidence: result.Confidence,
		Band:       result.Band,
		CreatedAt:  now,
	}
	if auditErr := s.events.Create(ctx, audit); auditErr != nil {
		transition.Degraded = true
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "audit_write",
			Success:   false,
			Err:       auditErr,
			StartedAt: now,
			Fields:    map[string]any{"work_item_id": w.ID},
		})
	}

	return transition, nil
}

// validate resolves the governing gate for the item's current position and
// runs it. It returns the phase whose gate was applied.
func (s *progressionService) validate(w *domain.WorkItem) (domain.GateResult, domain.Phase, error) {
	gatePhase, err := s.sequencer.GateFor(w.Type, w.Phase)
	if err != nil {
		return domain.GateResult{}, domain.PhaseNone, err
	}
	validator, ok := s.registry.ForPhase(gatePhase)
	if !ok {
		return domain.GateResult{}, domain.PhaseNone, fmt.Errorf("no gate registered for phase %q", gatePhase)
	}
	return validator.Validate(w), gatePhase, nil
}
