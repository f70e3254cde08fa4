package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bookify/config"
	"bookify/models"
	"bookify/services/ledger"
	"bookify/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeBookingReminder = "booking:reminder"

type reminderPayload struct {
	BookingID  string    `json:"bookingId"`
	ResourceID string    `json:"resourceId"`
	Start      time.Time `json:"start"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// ReminderScheduler enqueues reminder tasks for confirmed bookings.
type ReminderScheduler struct {
	client *asynq.Client
}

func NewReminderScheduler() *ReminderScheduler {
	return &ReminderScheduler{client: asynq.NewClient(redisOpts())}
}

// ScheduleReminder queues a reminder task to fire ahead of the booking's
// start time. Bookings starting too soon get the reminder immediately.
func (s *ReminderScheduler) ScheduleReminder(booking *models.Booking) error {
	payload, err := json.Marshal(reminderPayload{
		BookingID:  booking.ID,
		ResourceID: booking.ResourceID,
		Start:      booking.Interval.Start,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}

	lead := time.Duration(config.AppConfig.ReminderLeadMin) * time.Minute
	fireAt := booking.Interval.Start.Add(-lead)
	task := asynq.NewTask(TypeBookingReminder, payload)

	var opts []asynq.Option
	if fireAt.After(time.Now()) {
		opts = append(opts, asynq.ProcessAt(fireAt))
	}
	if _, err := s.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}

func (s *ReminderScheduler) Close() error {
	return s.client.Close()
}

// InitReminderWorker runs the async reminder worker in the background.
func InitReminderWorker(l ledger.BookingLedger) *asynq.Server {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingReminder, handleReminderTask(l))

	go func() {
		logger.Info("reminder worker starting")
		if err := srv.Run(mux); err != nil {
			logger.Error("reminder worker stopped", zap.Error(err))
		}
	}()
	return srv
}

func handleReminderTask(l ledger.BookingLedger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		logger := utils.GetLogger()

		var payload reminderPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("failed to unmarshal reminder payload: %w", err)
		}

		booking, err := l.Booking(payload.BookingID)
		if err != nil {
			// Booking unknown after a restart without persisted state; drop
			// the task rather than retrying forever.
			logger.Warn("reminder for unknown booking", zap.String("bookingID", payload.BookingID))
			return nil
		}
		if booking.Status != models.BookingConfirmed {
			logger.Debug("skipping reminder, booking no longer confirmed",
				zap.String("bookingID", booking.ID),
				zap.String("status", string(booking.Status)))
			return nil
		}

		logger.Info("booking reminder due",
			zap.String("bookingID", booking.ID),
			zap.String("resourceID", booking.ResourceID),
			zap.Time("start", booking.Interval.Start))
		return nil
	}
}
