package kafka_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/siddheshp/ems-api-okta/internal/messaging/kafka"
)

func setupOutboxDB(t *testing.T) (kafka.OutboxRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&kafka.OutboxEvent{}))
	return kafka.NewOutboxRepository(db), db
}

func pendingEvent() kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     uuid.NewString(),
		AggregateType: "employee",
		AggregateID:   "1",
		EventType:     "employee_created",
		Topic:         "ems.employee.lifecycle.v1",
		Payload:       []byte(`{"employeeId":1}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestOutboxRepository_CreateValidates(t *testing.T) {
	repo, _ := setupOutboxDB(t)
	ctx := context.Background()

	t.Run("valid event is accepted", func(t *testing.T) {
		assert.NoError(t, repo.Create(ctx, pendingEvent()))
	})

	t.Run("missing payload is rejected", func(t *testing.T) {
		event := pendingEvent()
		event.Payload = nil
		assert.Error(t, repo.Create(ctx, event))
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		event := pendingEvent()
		event.Status = "queued"
		assert.Error(t, repo.Create(ctx, event))
	})
}

func TestOutboxRepository_ListPending(t *testing.T) {
	repo, _ := setupOutboxDB(t)
	ctx := context.Background()

	first := pendingEvent()
	second := pendingEvent()
	assert.NoError(t, repo.Create(ctx, first))
	assert.NoError(t, repo.Create(ctx, second))

	t.Run("returns pending rows up to the limit", func(t *testing.T) {
		events, err := repo.ListPending(ctx, 10)
		assert.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("sent rows drop out", func(t *testing.T) {
		assert.NoError(t, repo.MarkSent(ctx, first.ID))

		events, err := repo.ListPending(ctx, 10)
		assert.NoError(t, err)
		assert.Len(t, events, 1)
		assert.Equal(t, second.ID, events[0].ID)
	})

	t.Run("failed rows wait for their retry window", func(t *testing.T) {
		assert.NoError(t, repo.MarkFailed(ctx, second.ID, "broker unreachable"))

		// MarkFailed schedules the retry in the future, so the row is
		// invisible until then.
		events, err := repo.ListPending(ctx, 10)
		assert.NoError(t, err)
		assert.Empty(t, events)
	})
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	repo, db := setupOutboxDB(t)
	ctx := context.Background()

	event := pendingEvent()
	assert.NoError(t, repo.Create(ctx, event))
	assert.NoError(t, repo.MarkFailed(ctx, event.ID, "broker unreachable"))

	var stored kafka.OutboxEvent
	assert.NoError(t, db.First(&stored, "id = ?", event.ID).Error)
	assert.Equal(t, kafka.OutboxStatusFailed, stored.Status)
	assert.Equal(t, 1, stored.RetryCount)
	assert.Equal(t, "broker unreachable", stored.ErrorMessage)
	assert.NotNil(t, stored.NextRetryAt)
	assert.True(t, stored.NextRetryAt.After(time.Now()))
}
