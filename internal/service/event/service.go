package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nillow/booking-api/internal/model"
	"github.com/nillow/booking-api/internal/repository"
)

// Service records domain events in the transactional outbox. A separate
// worker publishes them to the broker, so a broker outage never fails the
// originating request.
type Service struct {
	outboxRepo repository.OutboxRepository
}

func NewService(outboxRepo repository.OutboxRepository) *Service {
	return &Service{outboxRepo: outboxRepo}
}

func (s *Service) Emit(ctx context.Context, eventType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	return s.outboxRepo.Create(ctx, &model.OutboxEvent{
		EventType: eventType,
		Payload:   data,
	})
}
