package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-retail-service/internal/inventory"
	"github.com/fekuna/omnipos-retail-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-retail-service/internal/model"
	"github.com/fekuna/omnipos-retail-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	EventStockReceived    = "StockReceived"
	referenceStockReceipt = "stock_receipt"
	readErrorBackoff      = time.Second
)

// Consumer is satisfied by broker.KafkaConsumer.
type Consumer interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// InventoryListener applies goods-received events from the stock topic as restock movements.
type InventoryListener struct {
	consumer Consumer
	uc       inventory.UseCase
	logger   logger.ZapLogger
	backoff  time.Duration
}

func NewInventoryListener(consumer Consumer, uc inventory.UseCase, logger logger.ZapLogger) *InventoryListener {
	return &InventoryListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
		backoff:  readErrorBackoff,
	}
}

// Start consumes until ctx is cancelled.
func (l *InventoryListener) Start(ctx context.Context) error {
	l.logger.Info("Starting Inventory Kafka Listener")
	for {
		msg, err := l.consumer.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				l.logger.Info("Stopping Inventory Kafka Listener")
				return nil
			}
			l.logger.Error("Failed to read kafka message", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(l.backoff):
			}
			continue
		}
		l.processMessage(ctx, msg.Value)
	}
}

type StockReceivedEvent struct {
	EventID   string               `json:"event_id"`
	EventType string               `json:"event_type"`
	Payload   StockReceivedPayload `json:"payload"`
	Timestamp time.Time            `json:"timestamp"`
}

type StockReceivedPayload struct {
	ReferenceID string             `json:"reference_id"` // purchase order or delivery note
	ReceivedBy  string             `json:"received_by"`
	Items       []StockItemPayload `json:"items"`
}

type StockItemPayload struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (l *InventoryListener) processMessage(ctx context.Context, value []byte) {
	var event StockReceivedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != EventStockReceived {
		return
	}

	l.logger.Info("Processing StockReceived event", zap.String("reference_id", event.Payload.ReferenceID))

	for _, item := range event.Payload.Items {
		if item.Quantity <= 0 {
			l.logger.Warn("Skipping stock line without quantity",
				zap.String("reference_id", event.Payload.ReferenceID),
				zap.String("product_id", item.ProductID),
			)
			continue
		}

		input := &dto.AdjustInventoryInput{
			ProductID:      item.ProductID,
			QuantityChange: item.Quantity,
			MovementType:   model.MovementRestock,
			Reason:         "Stock received",
			ReferenceID:    event.Payload.ReferenceID,
			ReferenceType:  referenceStockReceipt,
			UserID:         event.Payload.ReceivedBy,
		}

		if _, _, err := l.uc.AdjustInventory(ctx, input); err != nil {
			l.logger.Error("Failed to restock product",
				zap.String("reference_id", event.Payload.ReferenceID),
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
		}
	}
}
