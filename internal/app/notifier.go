// internal/app/notifier.go
package app

import (
	"context"
	"database/sql"
	"fmt"

	"homework_status_bot/internal/domain/homework"
	domainTelegram "homework_status_bot/internal/domain/telegram"
	"homework_status_bot/internal/infra/metrics"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

// DeliveryError describes a message the chat did not receive.
type DeliveryError struct {
	ChatID int64
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to deliver message to chat %d: %v", e.ChatID, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Notifier sends texts to the configured chat. Delivery problems never escape
// as anything but a *DeliveryError result.
type Notifier struct {
	client     domainTelegram.Client
	chatID     int64
	limiter    *rate.Limiter
	deliveries homework.DeliveryLog // optional
	metrics    *metrics.Collector   // optional
	logger     *logrus.Entry
}

func NewNotifier(
	client domainTelegram.Client,
	chatID int64,
	limiter *rate.Limiter,
	deliveries homework.DeliveryLog,
	m *metrics.Collector,
	logger *logrus.Entry,
) *Notifier {
	return &Notifier{
		client:     client,
		chatID:     chatID,
		limiter:    limiter,
		deliveries: deliveries,
		metrics:    m,
		logger:     logger,
	}
}

// Notify delivers text and returns nil on success or a *DeliveryError.
func (n *Notifier) Notify(ctx context.Context, text string) (err error) {
	logCtx := n.logger.WithField("chat_id", n.chatID)
	defer func() {
		if r := recover(); r != nil {
			err = &DeliveryError{ChatID: n.chatID, Err: fmt.Errorf("panic while sending: %v", r)}
			logCtx.WithError(err).Error("Telegram client panicked")
			n.finish(ctx, text, err)
		}
	}()

	if n.limiter != nil {
		if werr := n.limiter.Wait(ctx); werr != nil {
			err = &DeliveryError{ChatID: n.chatID, Err: fmt.Errorf("rate limiter: %w", werr)}
			logCtx.WithError(err).Error("Message not sent")
			n.finish(ctx, text, err)
			return err
		}
	}

	logCtx.WithField("text", text).Info("Sending message to Telegram")
	if serr := n.client.SendMessage(n.chatID, text, &telebot.SendOptions{DisableWebPagePreview: true}); serr != nil {
		err = &DeliveryError{ChatID: n.chatID, Err: serr}
		logCtx.WithError(serr).Error("Message not sent")
		n.finish(ctx, text, err)
		return err
	}

	logCtx.Debug("Message sent successfully")
	n.finish(ctx, text, nil)
	return nil
}

func (n *Notifier) finish(ctx context.Context, text string, sendErr error) {
	n.metrics.ObserveNotification(sendErr == nil)
	if n.deliveries == nil {
		return
	}

	d := &homework.Delivery{ChatID: n.chatID, Message: text, Delivered: sendErr == nil}
	if sendErr != nil {
		d.Error = sql.NullString{String: sendErr.Error(), Valid: true}
	}
	// Record even when the cycle context is already done.
	if err := n.deliveries.Record(context.WithoutCancel(ctx), d); err != nil {
		n.logger.WithError(err).Warn("Failed to record delivery")
	}
}
