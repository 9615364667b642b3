package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"feedback-hub/internal/model"
	"feedback-hub/internal/platform/rabbitmq"
)

type EventStore interface {
	Create(ctx context.Context, event *model.FeedbackEvent) error
}

// EventAuditWorker drains the feedback event queue into the audit table.
type EventAuditWorker struct {
	conn      *amqp.Connection
	store     EventStore
	queueName string
	logger    *slog.Logger
	now       func() time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewEventAuditWorker(conn *amqp.Connection, store EventStore, queueName string, logger *slog.Logger) *EventAuditWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventAuditWorker{
		conn:      conn,
		store:     store,
		queueName: queueName,
		logger:    logger.With("component", "event_audit_worker", "queue", queueName),
		now:       model.Now,
	}
}

func (w *EventAuditWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	if _, err := rabbitmq.DeclareEventQueue(ch, w.queueName); err != nil {
		_ = ch.Close()
		cancel()
		return err
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()
		w.run(workerCtx, deliveries)
	}()

	w.logger.Info("event audit worker started")
	return nil
}

func (w *EventAuditWorker) run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			w.process(ctx, d)
		}
	}
}

// process drops malformed payloads and requeues store failures. Inserts
// ignore duplicate ids, so a redelivered event is stored once.
func (w *EventAuditWorker) process(ctx context.Context, d amqp.Delivery) {
	var event model.FeedbackEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		w.logger.Warn("decode event failed", "error", err)
		_ = d.Nack(false, false)
		return
	}
	if event.ID == "" || event.Kind == "" {
		w.logger.Warn("drop event without id or kind", "message_id", d.MessageId)
		_ = d.Nack(false, false)
		return
	}

	event.RecordedAt = w.now()
	if err := w.store.Create(ctx, &event); err != nil {
		w.logger.Error("persist event failed, requeueing", "event_id", event.ID, "error", err)
		_ = d.Nack(false, true)
		return
	}

	_ = d.Ack(false)
}

func (w *EventAuditWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
