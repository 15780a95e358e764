package service

import (
	"context"
	"time"

	core "food-storefront/internal/domain"
	"food-storefront/status-svc/internal/domain"
	"food-storefront/status-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	SetStatus(ctx context.Context, orderID, status string, at time.Time) error
	GetStatus(ctx context.Context, orderID string) (*domain.OrderStatus, error)
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event core.OrderEvent) error
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessEvent(ctx context.Context, event core.OrderEvent)
}

type StatusServiceInterface interface {
	Get(ctx context.Context, orderID string) (*domain.StatusView, error)
	Update(ctx context.Context, orderID, status string) error
}

var (
	_ StoreInterface         = (*storage.Store)(nil)
	_ EventPublisher         = (*storage.KafkaPublisher)(nil)
	_ MessageReader          = (*kafka.Reader)(nil)
	_ ConsumerInterface      = (*Consumer)(nil)
	_ StatusServiceInterface = (*StatusService)(nil)
)
