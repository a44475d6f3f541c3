package listener

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/inventory/dto"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/logger"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type queueReader struct {
	messages chan kafka.Message
}

func (q *queueReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	case m := <-q.messages:
		return m, nil
	}
}

type recordingUseCase struct {
	mu     sync.Mutex
	inputs []dto.AdjustStockInput
	done   chan struct{}
	fail   string
}

func (r *recordingUseCase) GetStock(context.Context, string, string, string) (*model.StockLevel, error) {
	return nil, nil
}

func (r *recordingUseCase) AdjustStock(_ context.Context, input *dto.AdjustStockInput) (*model.StockLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inputs = append(r.inputs, *input)
	if r.done != nil {
		r.done <- struct{}{}
	}
	if input.ProductID == r.fail {
		return nil, errors.New("boom")
	}
	return &model.StockLevel{}, nil
}

func (r *recordingUseCase) ListMovements(context.Context, *dto.MovementFilters) ([]model.StockMovement, int, error) {
	return nil, 0, nil
}

func orderMessage(t *testing.T, eventType string, items ...OrderItemPayload) []byte {
	t.Helper()
	data, err := json.Marshal(OrderCreatedEvent{
		EventID:   "evt-1",
		EventType: eventType,
		Payload:   OrderPayload{ID: "order-1", StoreID: "store-1", Items: items},
		Timestamp: time.Now(),
	})
	require.NoError(t, err)
	return data
}

func TestProcessMessageDeductsStock(t *testing.T) {
	uc := &recordingUseCase{fail: "p1"}
	l := NewInventoryListener(nil, uc, logger.NewNop())
	variation := "v1"

	l.processMessage(context.Background(), orderMessage(t, EventOrderCreated,
		OrderItemPayload{ProductID: "p1", Quantity: 2},
		OrderItemPayload{ProductID: "p2", VariationID: &variation, Quantity: 3},
		OrderItemPayload{ProductID: "p3", Quantity: 0},
	))

	require.Len(t, uc.inputs, 2)
	assert.Equal(t, -2, uc.inputs[0].QuantityChange)
	assert.Equal(t, "store-1", uc.inputs[0].StoreID)
	assert.Equal(t, "sale", uc.inputs[0].ReferenceType)
	assert.Equal(t, "order-1", uc.inputs[0].ReferenceID)

	// A failing item does not stop the rest of the order.
	assert.Equal(t, "p2", uc.inputs[1].ProductID)
	assert.Equal(t, &variation, uc.inputs[1].VariationID)
	assert.Equal(t, -3, uc.inputs[1].QuantityChange)
}

func TestProcessMessageIgnoresOtherEvents(t *testing.T) {
	uc := &recordingUseCase{}
	l := NewInventoryListener(nil, uc, logger.NewNop())

	l.processMessage(context.Background(), orderMessage(t, "OrderCancelled", OrderItemPayload{ProductID: "p1", Quantity: 1}))
	l.processMessage(context.Background(), []byte("{not json"))

	assert.Empty(t, uc.inputs)
}

func TestStartStopsOnCancel(t *testing.T) {
	reader := &queueReader{messages: make(chan kafka.Message, 1)}
	uc := &recordingUseCase{done: make(chan struct{}, 1)}
	l := NewInventoryListener(reader, uc, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		l.Start(ctx)
		close(stopped)
	}()

	reader.messages <- kafka.Message{Value: orderMessage(t, EventOrderCreated, OrderItemPayload{ProductID: "p1", Quantity: 1})}
	select {
	case <-uc.done:
	case <-time.After(time.Second):
		t.Fatal("message was not processed")
	}

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("listener did not stop")
	}
}
