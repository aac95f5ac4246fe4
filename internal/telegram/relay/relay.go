// Package relay delivers outcome notifications to applicants and
// confirmations to the administrator, keeping transport failures out of the
// business transaction wherever the flow tolerates a lost message.
package relay

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	tele "gopkg.in/telebot.v4"

	"github.com/spacecrew/applybot/core/logger"
)

// API is the slice of the telebot client the relay needs. *tele.Bot satisfies it.
type API interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// ErrNotBound is returned when a delivery is attempted before Bind.
var ErrNotBound = errors.New("relay: bot not bound")

// Relay sends messages outside the scope of the current update: to an
// applicant being notified of an outcome, or to the administrator.
// Deliveries are synchronous so callers know the result before returning.
type Relay struct {
	api     atomic.Pointer[apiHolder]
	adminID int64
}

type apiHolder struct{ api API }

// New creates a relay for the given administrator identity. The transport is
// attached later via Bind once the bot is constructed.
func New(adminID int64) *Relay {
	return &Relay{adminID: adminID}
}

// Bind attaches the live transport. Passing nil detaches it.
func (r *Relay) Bind(api API) {
	if api == nil {
		r.api.Store(nil)
		return
	}
	r.api.Store(&apiHolder{api: api})
}

func (r *Relay) send(userID int64, text string, markup *tele.ReplyMarkup) error {
	h := r.api.Load()
	if h == nil {
		return ErrNotBound
	}
	if markup != nil {
		_, err := h.api.Send(tele.ChatID(userID), text, markup)
		return err
	}
	_, err := h.api.Send(tele.ChatID(userID), text)
	return err
}

// NotifyApplicant delivers text to an applicant best-effort: a failure is
// logged and swallowed because the outcome it reports is already persisted.
func (r *Relay) NotifyApplicant(ctx context.Context, userID int64, text string) {
	if err := r.send(userID, text, nil); err != nil {
		logger.Error(ctx, "tg.relay", "applicant.notify.fail",
			slog.String("status", "fail"),
			slog.Int64("applicant_id", userID),
			slog.String("err", err.Error()),
		)
		return
	}
	logger.Debug(ctx, "tg.relay", "applicant.notify",
		slog.String("status", "ok"),
		slog.Int64("applicant_id", userID),
	)
}

// ReplyAndReport delivers text to an applicant and returns the delivery
// result. Used for ad-hoc replies, which leave no persisted record, so the
// administrator must learn about a failure.
func (r *Relay) ReplyAndReport(ctx context.Context, userID int64, text string) error {
	if err := r.send(userID, text, nil); err != nil {
		logger.Error(ctx, "tg.relay", "applicant.reply.fail",
			slog.String("status", "fail"),
			slog.Int64("applicant_id", userID),
			slog.String("err", err.Error()),
		)
		return err
	}
	return nil
}

// NotifyAdmin delivers text (with optional inline keyboard) to the
// administrator. The administrator operates the process, so failures are rare;
// they are still returned for the caller to log.
func (r *Relay) NotifyAdmin(ctx context.Context, text string, markup *tele.ReplyMarkup) error {
	if err := r.send(r.adminID, text, markup); err != nil {
		logger.Error(ctx, "tg.relay", "admin.notify.fail",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return err
	}
	return nil
}
