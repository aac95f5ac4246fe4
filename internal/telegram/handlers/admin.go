package handlers

import (
	"errors"
	"fmt"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/spacecrew/applybot/core/logger"
	"github.com/spacecrew/applybot/core/telegram/callbacks"
	tghelpers "github.com/spacecrew/applybot/core/telegram/helpers"
	"github.com/spacecrew/applybot/internal/storage"
	"github.com/spacecrew/applybot/internal/telegram/dialog"
)

const adminPageSize = 15

// listAll renders up to one page of all applications, each with a view button.
func (h *Handlers) listAll(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	apps, err := h.svc.ListAll(ctx)
	if err != nil {
		logger.Error(ctx, "tg", "admin.list_all.fail",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return tghelpers.EditText(c, msgLoadFailed, adminMenuMarkup())
	}
	if len(apps) == 0 {
		return tghelpers.EditText(c, msgNoApplications, adminMenuMarkup())
	}
	if len(apps) > adminPageSize {
		apps = apps[:adminPageSize]
	}
	return tghelpers.EditText(c, allApplicationsText(apps), listMarkup(apps, true))
}

// listPending renders up to one page of unreviewed applications.
func (h *Handlers) listPending(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	apps, err := h.svc.ListPending(ctx)
	if err != nil {
		logger.Error(ctx, "tg", "admin.list_pending.fail",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return tghelpers.EditText(c, msgLoadFailed, adminMenuMarkup())
	}
	if len(apps) == 0 {
		return tghelpers.EditText(c, msgNoPending, adminMenuMarkup())
	}
	if len(apps) > adminPageSize {
		apps = apps[:adminPageSize]
	}
	return tghelpers.EditText(c, pendingApplicationsText(apps), listMarkup(apps, false))
}

func (h *Handlers) stats(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	st, err := h.svc.Stats(ctx)
	if err != nil {
		logger.Error(ctx, "tg", "admin.stats.fail",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return tghelpers.EditText(c, msgLoadFailed, adminMenuMarkup())
	}
	return tghelpers.EditText(c, statsText(st), adminMenuMarkup())
}

// viewDetail renders one application's full field set with review actions.
func (h *Handlers) viewDetail(c tele.Context) error {
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return tghelpers.EditText(c, msgNotFound, adminMenuMarkup())
	}
	ctx := tghelpers.BuildContext(c)

	app, err := h.svc.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return tghelpers.EditText(c, msgNotFound, adminMenuMarkup())
	}
	if err != nil {
		logger.Error(ctx, "tg", "admin.view.fail",
			slog.String("status", "fail"),
			slog.Int64("app_id", id),
			slog.String("err", err.Error()),
		)
		return tghelpers.EditText(c, msgLoadFailed, adminMenuMarkup())
	}
	return tghelpers.EditText(c, applicationDetail(app), detailMarkup(app.ID))
}

// accept marks the application accepted. Pressing it again re-confirms the
// same outcome and re-notifies the applicant.
func (h *Handlers) accept(c tele.Context) error {
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return tghelpers.EditText(c, msgNotFound, adminMenuMarkup())
	}
	ctx := tghelpers.BuildContext(c)

	app, err := h.svc.Accept(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return tghelpers.EditText(c, msgNotFound, adminMenuMarkup())
	}
	if err != nil {
		logger.Error(ctx, "tg", "admin.accept.fail",
			slog.String("status", "fail"),
			slog.Int64("app_id", id),
			slog.String("err", err.Error()),
		)
		return tghelpers.EditText(c, msgUpdateFailed, adminMenuMarkup())
	}

	_ = h.relay.NotifyAdmin(ctx, fmt.Sprintf("Вы приняли заявку #%d от @%s", id, app.Username), nil)
	return tghelpers.EditText(c, fmt.Sprintf("Заявка #%d принята!", id), adminMenuMarkup())
}

// beginReject opens a sub-task collecting the rejection reason.
func (h *Handlers) beginReject(c tele.Context) error {
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return tghelpers.EditText(c, msgNotFound, adminMenuMarkup())
	}
	h.dialog.BeginTask(c.Sender().ID, dialog.TaskReject, id)
	return tghelpers.EditText(c, msgRejectReasonPrompt, backToDetailMarkup(id))
}

// beginReply opens a sub-task collecting an ad-hoc reply to the applicant.
func (h *Handlers) beginReply(c tele.Context) error {
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return tghelpers.EditText(c, msgNotFound, adminMenuMarkup())
	}
	h.dialog.BeginTask(c.Sender().ID, dialog.TaskReply, id)
	return tghelpers.EditText(c, msgReplyPrompt, backToDetailMarkup(id))
}

// handleTaskText consumes the one free-text message a pending sub-task waits for.
func (h *Handlers) handleTaskText(c tele.Context, task dialog.AdminTask) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID
	text := c.Text()

	h.dialog.Clear(userID)

	switch task.Kind {
	case dialog.TaskReject:
		app, err := h.svc.Reject(ctx, task.AppID, text)
		if errors.Is(err, storage.ErrNotFound) {
			return tghelpers.SendMarkup(c, msgNotFound, adminMenuMarkup())
		}
		if err != nil {
			logger.Error(ctx, "tg", "admin.reject.fail",
				slog.String("status", "fail"),
				slog.Int64("app_id", task.AppID),
				slog.String("err", err.Error()),
			)
			return tghelpers.SendMarkup(c, msgUpdateFailed, adminMenuMarkup())
		}
		_ = h.relay.NotifyAdmin(ctx, fmt.Sprintf("Вы отклонили заявку #%d от @%s", task.AppID, app.Username), nil)
		return tghelpers.SendMarkup(c, fmt.Sprintf("Заявка #%d отклонена.", task.AppID), adminMenuMarkup())

	case dialog.TaskReply:
		app, err := h.svc.ReplyTo(ctx, task.AppID, text)
		if errors.Is(err, storage.ErrNotFound) {
			return tghelpers.SendMarkup(c, msgNotFound, adminMenuMarkup())
		}
		if err != nil {
			// Nothing is persisted for ad-hoc replies, so the failure is
			// reported to the administrator instead of being swallowed.
			return tghelpers.SendText(c, fmt.Sprintf("Не удалось отправить ответ: %v", err))
		}
		return tghelpers.SendText(c, fmt.Sprintf("Ответ отправлен пользователю @%s", app.Username))
	}
	return nil
}
