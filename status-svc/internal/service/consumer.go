package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	core "food-storefront/internal/domain"
	"food-storefront/internal/tracker"
	"food-storefront/status-svc/internal/storage"
)

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
}

func NewConsumer(reader MessageReader, store StoreInterface) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
	}
}

// Start reads the orders topic until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting Status Service consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("Status Service consumer stopped")
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		var event core.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		c.ProcessEvent(ctx, event)
	}
}

func (c *Consumer) ProcessEvent(ctx context.Context, event core.OrderEvent) {
	var status string
	switch event.Type {
	case core.EventOrderPlaced:
		status = tracker.StagePlaced
	case core.EventStatusChanged:
		if !tracker.Valid(tracker.DefaultStages, event.Status) {
			log.Printf("WARNING: order %s: rejecting unknown stage %q", event.OrderID, event.Status)
			return
		}
		status = event.Status
	default:
		return
	}
	if event.OrderID == "" {
		log.Printf("WARNING: %s event without order id", event.Type)
		return
	}

	at := event.Timestamp
	if at.IsZero() {
		at = time.Now().UTC()
	}

	log.Printf("Processing %s: OrderID=%s, Status=%s", event.Type, event.OrderID, status)
	err := c.Store.SetStatus(ctx, event.OrderID, status, at)
	if errors.Is(err, storage.ErrStaleStatus) {
		log.Printf("Skipping out-of-order %s for order %s", event.Type, event.OrderID)
		return
	}
	if err != nil {
		log.Printf("Error updating order status: %v", err)
		return
	}
	log.Printf("Successfully recorded status %s for order %s", status, event.OrderID)
}
