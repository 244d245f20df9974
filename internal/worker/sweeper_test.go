package worker

import (
	"context"
	"testing"
	"time"

	"payment-gateway-sim/internal/core/domain"
	"payment-gateway-sim/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestSweeper_Sweep_EnqueuesDueRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	webhookRepo := mocks.NewMockWebhookLogRepository(ctrl)
	queue := mocks.NewMockJobQueue(ctrl)
	s := NewSweeper(webhookRepo, queue, 5*time.Second, zerolog.Nop())
	ctx := context.Background()

	a := domain.WebhookLog{ID: uuid.New(), Status: domain.WebhookStatusPending}
	b := domain.WebhookLog{ID: uuid.New(), Status: domain.WebhookStatusPending}

	webhookRepo.EXPECT().ListDue(ctx, gomock.Any()).Return([]domain.WebhookLog{a, b}, nil)
	queue.EXPECT().Enqueue(ctx, domain.QueueWebhookDeliver, domain.WebhookJob(a.ID.String())).Return(nil)
	queue.EXPECT().Enqueue(ctx, domain.QueueWebhookDeliver, domain.WebhookJob(b.ID.String())).Return(nil)

	s.Sweep(ctx)
}

func TestSweeper_Sweep_NothingDue(t *testing.T) {
	ctrl := gomock.NewController(t)
	webhookRepo := mocks.NewMockWebhookLogRepository(ctrl)
	queue := mocks.NewMockJobQueue(ctrl)
	s := NewSweeper(webhookRepo, queue, 5*time.Second, zerolog.Nop())
	ctx := context.Background()

	webhookRepo.EXPECT().ListDue(ctx, gomock.Any()).Return(nil, nil)

	s.Sweep(ctx)
}

func TestSweeper_Sweep_EnqueueFailureContinues(t *testing.T) {
	ctrl := gomock.NewController(t)
	webhookRepo := mocks.NewMockWebhookLogRepository(ctrl)
	queue := mocks.NewMockJobQueue(ctrl)
	s := NewSweeper(webhookRepo, queue, 5*time.Second, zerolog.Nop())
	ctx := context.Background()

	a := domain.WebhookLog{ID: uuid.New(), Status: domain.WebhookStatusPending}
	b := domain.WebhookLog{ID: uuid.New(), Status: domain.WebhookStatusPending}

	webhookRepo.EXPECT().ListDue(ctx, gomock.Any()).Return([]domain.WebhookLog{a, b}, nil)
	queue.EXPECT().Enqueue(ctx, domain.QueueWebhookDeliver, domain.WebhookJob(a.ID.String())).Return(assert.AnError)
	// The second record is still enqueued after the first fails.
	queue.EXPECT().Enqueue(ctx, domain.QueueWebhookDeliver, domain.WebhookJob(b.ID.String())).Return(nil)

	s.Sweep(ctx)
}

func TestSweeper_StartAndStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	webhookRepo := mocks.NewMockWebhookLogRepository(ctrl)
	queue := mocks.NewMockJobQueue(ctrl)
	s := NewSweeper(webhookRepo, queue, time.Hour, zerolog.Nop())

	// An hour-long interval never fires during the test; this only
	// exercises the schedule lifecycle.
	assert.NoError(t, s.Start(context.Background()))
	s.Stop()
}
