package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-retail-service/internal/model"
	"github.com/google/uuid"
)

const EventSaleCompleted = "SaleCompleted"

// Producer is satisfied by broker.KafkaProducer.
type Producer interface {
	Publish(ctx context.Context, key string, value []byte) error
}

type SaleCompletedEvent struct {
	EventID   string      `json:"event_id"`
	EventType string      `json:"event_type"`
	Payload   *model.Sale `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

type KafkaPublisher struct {
	producer Producer
}

func NewKafkaPublisher(p Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: p}
}

// PublishSaleCompleted keys the event by sale id.
func (p *KafkaPublisher) PublishSaleCompleted(ctx context.Context, s *model.Sale) error {
	event := SaleCompletedEvent{
		EventID:   uuid.New().String(),
		EventType: EventSaleCompleted,
		Payload:   s,
		Timestamp: time.Now().UTC(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, s.ID, body)
}
