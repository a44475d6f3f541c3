package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/inventory"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/inventory/dto"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const EventOrderCreated = "OrderCreated"

// MessageReader is the part of the Kafka consumer the listener needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type InventoryListener struct {
	consumer   MessageReader
	uc         inventory.UseCase
	logger     logger.ZapLogger
	retryDelay time.Duration
}

func NewInventoryListener(consumer MessageReader, uc inventory.UseCase, logger logger.ZapLogger) *InventoryListener {
	return &InventoryListener{
		consumer:   consumer,
		uc:         uc,
		logger:     logger,
		retryDelay: time.Second,
	}
}

// Start consumes until ctx is cancelled.
func (l *InventoryListener) Start(ctx context.Context) {
	l.logger.Info("starting inventory listener")
	for {
		msg, err := l.consumer.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				l.logger.Info("stopping inventory listener")
				return
			}
			l.logger.Error("failed to read kafka message", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(l.retryDelay):
			}
			continue
		}
		l.processMessage(ctx, msg.Value)
	}
}

type OrderCreatedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID      string             `json:"id"`
	StoreID string             `json:"store_id"`
	Items   []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ProductID   string  `json:"product_id"`
	VariationID *string `json:"variation_id"`
	Quantity    int     `json:"quantity"`
}

func (l *InventoryListener) processMessage(ctx context.Context, value []byte) {
	var event OrderCreatedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != EventOrderCreated {
		return
	}

	l.logger.Info("processing order", zap.String("order_id", event.Payload.ID), zap.Int("items", len(event.Payload.Items)))

	for _, item := range event.Payload.Items {
		if item.Quantity <= 0 {
			continue
		}
		input := &dto.AdjustStockInput{
			StoreID:        event.Payload.StoreID,
			ProductID:      item.ProductID,
			VariationID:    item.VariationID,
			QuantityChange: -item.Quantity,
			Reason:         "order sale",
			ReferenceID:    event.Payload.ID,
			ReferenceType:  "sale",
			UserID:         "system",
		}

		if _, err := l.uc.AdjustStock(ctx, input); err != nil {
			l.logger.Error("failed to deduct stock for order item",
				zap.String("order_id", event.Payload.ID),
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
		}
	}
}
