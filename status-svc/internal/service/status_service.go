package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	core "food-storefront/internal/domain"
	"food-storefront/internal/tracker"
	"food-storefront/status-svc/internal/domain"
	"food-storefront/status-svc/internal/storage"
)

var ErrOrderNotFound = errors.New("order not found")

type StatusService struct {
	Store     StoreInterface
	Publisher EventPublisher
	Stages    []tracker.Stage
}

func NewStatusService(store StoreInterface, publisher EventPublisher) *StatusService {
	return &StatusService{
		Store:     store,
		Publisher: publisher,
		Stages:    tracker.DefaultStages,
	}
}

// Get returns the order's progress. A stored status outside the stage list
// yields tracker.ErrUnknownStage.
func (s *StatusService) Get(ctx context.Context, orderID string) (*domain.StatusView, error) {
	st, err := s.status(ctx, orderID)
	if err != nil {
		return nil, err
	}

	steps, err := tracker.Progress(s.Stages, st.Status)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", orderID, err)
	}
	index, _ := tracker.StageIndex(s.Stages, st.Status)

	return &domain.StatusView{
		OrderID:    orderID,
		Status:     st.Status,
		StageIndex: index,
		Terminal:   tracker.IsTerminal(s.Stages, st.Status),
		Steps:      steps,
		UpdatedAt:  st.UpdatedAt,
	}, nil
}

// Update publishes a status_changed event. The consumer records it.
func (s *StatusService) Update(ctx context.Context, orderID, status string) error {
	if _, err := tracker.StageIndex(s.Stages, status); err != nil {
		return err
	}
	if _, err := s.status(ctx, orderID); err != nil {
		return err
	}

	event := core.OrderEvent{
		Type:      core.EventStatusChanged,
		OrderID:   orderID,
		Status:    status,
		Timestamp: time.Now().UTC(),
	}
	if err := s.Publisher.PublishOrderEvent(ctx, event); err != nil {
		return fmt.Errorf("publish status of order %s: %w", orderID, err)
	}
	log.Printf("[status-svc] order %s moved to %s", orderID, status)
	return nil
}

func (s *StatusService) status(ctx context.Context, orderID string) (*domain.OrderStatus, error) {
	st, err := s.Store.GetStatus(ctx, orderID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	return st, err
}
