package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rfontaine/stagegate/internal/domain"
	"github.com/rfontaine/stagegate/internal/repository"
)

type workItemService struct {
	workItems repository.WorkItemRepo
	observer  UseCaseObserver
}

// NewWorkItemService creates the work item CRUD and status service.
func NewWorkItemService(workItems repository.WorkItemRepo, observers ...UseCaseObserver) WorkItemService {
	return &workItemService{
		workItems: workItems,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *workItemService) Create(ctx context.Context, w *domain.WorkItem) error {
	if w.Title == "" {
		return fmt.Errorf("work item title is required")
	}
	if w.Type == "" {
		w.Type = domain.TypeFeature
	}
	if !domain.ValidWorkItemTypes[string(w.Type)] {
		return fmt.Errorf("unknown work item type %q", w.Type)
	}
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	w.Phase = domain.PhaseNone
	w.Status = domain.StatusDraft
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now

	started := time.Now()
	err := s.workItems.Create(ctx, w)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "create_work_item",
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		StartedAt: started,
		Fields:    map[string]any{"work_item_id": w.ID, "type": string(w.Type)},
	})
	return err
}

func (s *workItemService) GetByID(ctx context.Context, id string) (*domain.WorkItem, error) {
	return s.workItems.GetByID(ctx, id)
}

func (s *workItemService) List(ctx context.Context, includeArchived bool) ([]*domain.WorkItem, error) {
	return s.workItems.List(ctx, includeArchived)
}

func (s *workItemService) ListByPhase(ctx context.Context, phase domain.Phase) ([]*domain.WorkItem, error) {
	return s.workItems.ListByPhase(ctx, phase)
}

func (s *workItemService) UpdateMetadata(ctx context.Context, id string, m domain.Metadata) error {
	w, err := s.workItems.GetByID(ctx, id)
	if err != nil {
		return err
	}
	// Replacing the document also clears a malformed-metadata flag; the new
	// document is encoded fresh.
	w.Metadata = m
	w.MetadataInvalid = false
	w.UpdatedAt = time.Now().UTC()
	return s.workItems.Update(ctx, w)
}

func (s *workItemService) Block(ctx context.Context, id string) error {
	return s.mutateStatus(ctx, id, "block_work_item", (*domain.WorkItem).Block)
}

func (s *workItemService) Cancel(ctx context.Context, id string) error {
	return s.mutateStatus(ctx, id, "cancel_work_item", (*domain.WorkItem).Cancel)
}

func (s *workItemService) Archive(ctx context.Context, id string) error {
	return s.mutateStatus(ctx, id, "archive_work_item", (*domain.WorkItem).Archive)
}

func (s *workItemService) Reopen(ctx context.Context, id string) error {
	return s.mutateStatus(ctx, id, "reopen_work_item", (*domain.WorkItem).Reopen)
}

func (s *workItemService) Delete(ctx context.Context, id string) error {
	if _, err := s.workItems.GetByID(ctx, id); err != nil {
		return err
	}
	return s.workItems.Delete(ctx, id)
}

func (s *workItemService) mutateStatus(ctx context.Context, id, useCase string, apply func(*domain.WorkItem, time.Time) error) error {
	started := time.Now()
	err := s.applyStatus(ctx, id, apply)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      useCase,
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		StartedAt: started,
		Fields:    map[string]any{"work_item_id": id},
	})
	return err
}

func (s *workItemService) applyStatus(ctx context.Context, id string, apply func(*domain.WorkItem, time.Time) error) error {
	w, err := s.workItems.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := apply(w, time.Now().UTC()); err != nil {
		return err
	}
	return s.workItems.Update(ctx, w)
}
