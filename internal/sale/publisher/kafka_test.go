package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-retail-service/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProducer struct {
	mock.Mock
}

func (m *mockProducer) Publish(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func TestPublishSaleCompleted(t *testing.T) {
	prod := new(mockProducer)
	var body []byte
	prod.On("Publish", mock.Anything, "sale-1", mock.Anything).
		Run(func(args mock.Arguments) { body = args.Get(2).([]byte) }).
		Return(nil)

	s := &model.Sale{
		ID:          "sale-1",
		TotalAmount: decimal.RequireFromString("15.00"),
		Items: []model.SaleItem{
			{ID: "i1", SaleID: "sale-1", LineNo: 1, ProductID: "A", Quantity: 3},
		},
	}
	require.NoError(t, NewKafkaPublisher(prod).PublishSaleCompleted(context.Background(), s))
	prod.AssertExpectations(t)

	var got struct {
		EventID   string          `json:"event_id"`
		EventType string          `json:"event_type"`
		Payload   json.RawMessage `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.NotEmpty(t, got.EventID)
	assert.Equal(t, EventSaleCompleted, got.EventType)
	assert.Contains(t, string(got.Payload), `"total_amount":"15"`)
	assert.Contains(t, string(got.Payload), `"product_id":"A"`)
}

func TestPublishSaleCompleted_ProducerError(t *testing.T) {
	prod := new(mockProducer)
	prod.On("Publish", mock.Anything, "sale-2", mock.Anything).Return(errors.New("no brokers"))

	err := NewKafkaPublisher(prod).PublishSaleCompleted(context.Background(), &model.Sale{ID: "sale-2"})
	assert.EqualError(t, err, "no brokers")
}
