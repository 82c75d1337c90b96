// internal/app/poller.go
package app

import (
	"context"
	"errors"
	"fmt"

	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/infra/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// HomeworkAPI fetches the raw homework status answer.
type HomeworkAPI interface {
	GetAPIAnswer(ctx context.Context, fromDate int64) (any, error)
}

// MessageSender delivers a text to the chat. A non-nil error only means "not delivered".
type MessageSender interface {
	Notify(ctx context.Context, text string) error
}

// Outcome is the result of one poll cycle.
type Outcome string

const (
	OutcomeNotified       Outcome = "notified"
	OutcomeUnchanged      Outcome = "unchanged"
	OutcomeEmpty          Outcome = "empty"
	OutcomeDeliveryFailed Outcome = "delivery_failed"
	OutcomeFailed         Outcome = "failed"
)

// errorReportPrefix starts every failure message sent to the chat.
const errorReportPrefix = "Сбой в работе программы: "

// Poller runs the fetch/validate/format/notify cycle and owns the report state
// and poll cursor. Cycles must not run concurrently.
//
// Every homework in the answer is processed, and each name remembers the last
// delivered message. The cursor moves to current_date only after a cycle in
// which something changed and every change was delivered.
type Poller struct {
	api     HomeworkAPI
	sender  MessageSender
	state   *homework.ReportState
	cursor  int64
	metrics *metrics.Collector
	logger  *logrus.Entry
}

func NewPoller(api HomeworkAPI, sender MessageSender, cursor int64, m *metrics.Collector, logger *logrus.Entry) *Poller {
	m.SetCursor(cursor)
	return &Poller{
		api:     api,
		sender:  sender,
		state:   homework.NewReportState(),
		cursor:  cursor,
		metrics: m,
		logger:  logger,
	}
}

// Poll runs a single cycle. It never returns an error: failures are logged
// and, when new, reported to the chat.
func (p *Poller) Poll(ctx context.Context) (outcome Outcome) {
	logCtx := p.logger.WithField("cycle_id", uuid.NewString()).WithField("cursor", p.cursor)
	defer func() {
		if r := recover(); r != nil {
			outcome = p.reportError(ctx, logCtx, fmt.Errorf("unexpected panic: %v", r))
		}
		p.metrics.ObservePoll(string(outcome))
		p.metrics.SetCursor(p.cursor)
		logCtx.WithField("outcome", outcome).Debug("Poll cycle finished")
	}()

	return p.poll(ctx, logCtx)
}

func (p *Poller) poll(ctx context.Context, logCtx *logrus.Entry) Outcome {
	answer, err := p.api.GetAPIAnswer(ctx, p.cursor)
	if err != nil {
		return p.reportError(ctx, logCtx, err)
	}

	batch, err := homework.CheckResponse(answer)
	if errors.Is(err, homework.ErrEmptyResult) {
		logCtx.Info("No homework status updates")
		return OutcomeEmpty
	}
	if err != nil {
		return p.reportError(ctx, logCtx, err)
	}
	logCtx.WithField("homeworks", len(batch.Homeworks)).Info("Fetched homework statuses")

	changed, delivered := 0, 0
	seen := make(map[string]bool, len(batch.Homeworks))
	for _, hw := range batch.Homeworks {
		message, err := homework.ParseStatus(hw)
		if err != nil {
			return p.reportError(ctx, logCtx, err)
		}
		name := hw[homework.FieldHomeworkName].(string)
		hwLog := logCtx.WithField("homework", name)

		// The list is newest first: older entries for the same homework are stale.
		if seen[name] {
			hwLog.Debug("Older status entry skipped")
			continue
		}
		seen[name] = true

		if !p.state.Changed(name, message) {
			hwLog.Debug("Homework status unchanged")
			continue
		}
		changed++

		if err := p.sender.Notify(ctx, message); err != nil {
			hwLog.Warn("Status change not delivered, will retry next cycle")
			continue
		}
		p.state.Commit(name, message)
		delivered++
		hwLog.WithField("status", hw[homework.FieldStatus]).Info("Status change delivered")
	}
	p.state.ClearError()

	if changed == 0 {
		logCtx.Info("No status changes since last report")
		return OutcomeUnchanged
	}
	if delivered < changed {
		logCtx.WithField("changed", changed).WithField("delivered", delivered).
			Warn("Some status changes were not delivered, keeping cursor")
		return OutcomeDeliveryFailed
	}

	if batch.HasCurrentDate {
		p.cursor = batch.CurrentDate
		logCtx.WithField("new_cursor", p.cursor).Info("Poll cursor advanced")
	} else {
		logCtx.Warn("API answer has no current_date, keeping cursor")
	}
	return OutcomeNotified
}

// reportError logs err and notifies the chat unless the same report was
// already delivered.
func (p *Poller) reportError(ctx context.Context, logCtx *logrus.Entry, err error) Outcome {
	message := errorReportPrefix + err.Error()
	logCtx.WithError(err).Error("Poll cycle failed")

	if !p.state.ErrorChanged(message) {
		logCtx.Debug("Same failure already reported, not notifying")
		return OutcomeFailed
	}
	if notifyErr := p.sender.Notify(ctx, message); notifyErr != nil {
		logCtx.Warn("Failure report not delivered, will retry next cycle")
		return OutcomeFailed
	}
	p.state.CommitError(message)
	return OutcomeFailed
}
