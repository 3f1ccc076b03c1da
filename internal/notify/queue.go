package notify

import (
	"context"
	"encoding/json"
	"time"

	"cleanslot/internal/booking"
	"cleanslot/internal/logger"
	"cleanslot/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey      = "notifications"
	deadLetterKey = "notifications:failed"
	maxTries      = 3

	queueBlockTimeout = 2 * time.Second
)

// Job is one queued customer notification. Delivery is decoupled from
// the request that produced it; a dead queue never fails a booking.
type Job struct {
	Event       string    `json:"event"`
	BookingID   int       `json:"booking_id"`
	Phone       string    `json:"phone"`
	ServiceName string    `json:"service_name"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Tries       int       `json:"tries"`
	Created     time.Time `json:"created"`
}

type Queue struct {
	redis *redis.Client
}

func New(redisAddr string) *Queue {
	return &Queue{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
	}
}

// NewWithClient exists for tests.
func NewWithClient(client *redis.Client) *Queue {
	return &Queue{redis: client}
}

func (q *Queue) Close() error {
	return q.redis.Close()
}

// BookingEvent queues a notification for a booking lifecycle event.
// Best-effort: failures are logged and counted, never surfaced.
func (q *Queue) BookingEvent(ctx context.Context, event string, b *booking.Booking) {
	job := Job{
		Event:       event,
		BookingID:   b.ID,
		Phone:       b.CustomerPhone,
		ServiceName: b.ServiceName,
		Date:        b.BookingDate,
		Time:        b.BookingTime,
		Created:     time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal notification job: %v", err)
		metrics.RecordNotification(event, "error")
		return
	}

	if err := q.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to queue %s notification for booking %d: %v", event, b.ID, err)
		metrics.RecordNotification(event, "error")
		return
	}

	metrics.RecordNotification(event, "queued")
}

// Start drains the queue until ctx is cancelled.
func (q *Queue) Start(ctx context.Context) {
	logger.Info("Notification worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Notification worker stopped")
			return
		default:
			q.processNext(ctx)
		}
	}
}

func (q *Queue) processNext(ctx context.Context) {
	result, err := q.redis.BRPop(ctx, queueBlockTimeout, queueKey).Result()
	if err != nil {
		return
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad notification payload: %v", err)
		return
	}

	job.Tries++
	if err := q.deliver(job); err != nil {
		logger.Errorf("Failed to deliver %s notification for booking %d: %v",
			job.Event, job.BookingID, err)

		if job.Tries < maxTries {
			data, _ := json.Marshal(job)
			q.redis.LPush(context.Background(), queueKey, data)
			return
		}

		data, _ := json.Marshal(job)
		q.redis.LPush(context.Background(), deadLetterKey, data)
		logger.Errorf("Notification for booking %d parked after %d attempts", job.BookingID, maxTries)
		return
	}

	metrics.RecordNotification(job.Event, "delivered")
}

// deliver hands the notification to the SMS gateway. The gateway
// integration is stubbed to a log line; swapping in a provider client
// only touches this function.
func (q *Queue) deliver(job Job) error {
	logger.Infow("notification delivered",
		"event", job.Event,
		"booking_id", job.BookingID,
		"phone", job.Phone,
		"service", job.ServiceName,
		"slot", job.Date+" "+job.Time,
	)
	return nil
}
