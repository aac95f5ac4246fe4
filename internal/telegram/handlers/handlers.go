// Package handlers implements the bot-facing conversation flows: the
// five-question application form for ordinary users and the review panel for
// the administrator.
package handlers

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/spacecrew/applybot/core/logger"
	tg "github.com/spacecrew/applybot/core/telegram"
	"github.com/spacecrew/applybot/core/telegram/commands"
	tghelpers "github.com/spacecrew/applybot/core/telegram/helpers"
	"github.com/spacecrew/applybot/internal/service"
	"github.com/spacecrew/applybot/internal/telegram/dialog"
	"github.com/spacecrew/applybot/internal/telegram/relay"
)

const ownAppsPageSize = 10

// Handlers binds the application service, the dialog manager, and the relay
// to Telegram endpoints.
type Handlers struct {
	svc     *service.Applications
	dialog  *dialog.Manager
	relay   *relay.Relay
	adminID int64
}

// New wires the handler set.
func New(svc *service.Applications, dlg *dialog.Manager, rl *relay.Relay, adminID int64) *Handlers {
	return &Handlers{svc: svc, dialog: dlg, relay: rl, adminID: adminID}
}

func (h *Handlers) isAdmin(userID int64) bool {
	return userID == h.adminID
}

// Register wires commands, callbacks, and the text fallback into the registry.
func (h *Handlers) Register(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.start,
		Description: "Главное меню",
	})
	reg.RegisterCommand("/admin", commands.Command{
		Handler:     h.adminPanel,
		Description: "Панель администратора",
		AdminOnly:   true,
		Hidden:      true,
	})

	_ = reg.RegisterCallback(actApply, h.beginForm)
	_ = reg.RegisterCallback(actMyApps, h.myApplications)
	_ = reg.RegisterCallback(actMenu, h.menu)
	_ = reg.RegisterCallback(actCancel, h.cancelForm)

	_ = reg.RegisterCallback(actAdminAll, h.adminOnly(h.listAll))
	_ = reg.RegisterCallback(actAdminPending, h.adminOnly(h.listPending))
	_ = reg.RegisterCallback(actAdminStats, h.adminOnly(h.stats))
	_ = reg.RegisterCallback(actView, h.adminOnly(h.viewDetail))
	_ = reg.RegisterCallback(actAccept, h.adminOnly(h.accept))
	_ = reg.RegisterCallback(actReject, h.adminOnly(h.beginReject))
	_ = reg.RegisterCallback(actReply, h.adminOnly(h.beginReply))

	reg.SetTextFallback(h.unknownText)
}

// adminOnly gates a callback on the administrator identity. Any admin button
// press also cancels a pending sub-task: navigating away from a reason/reply
// prompt abandons it.
func (h *Handlers) adminOnly(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID
		if !h.isAdmin(userID) {
			return tghelpers.EditText(c, msgNoAccess)
		}
		if _, ok := h.dialog.Task(userID); ok {
			h.dialog.Clear(userID)
		}
		return next(c)
	}
}

// InProgress reports whether the user has an active dialog session.
// Together with ManagerHandler it satisfies the text router's FSM contract.
func (h *Handlers) InProgress(userID int64) bool {
	return h.dialog.InProgress(userID)
}

// ManagerHandler routes a free-text message by the sender's session variant.
func (h *Handlers) ManagerHandler(c tele.Context) error {
	userID := c.Sender().ID

	if flow, ok := h.dialog.Form(userID); ok {
		return h.handleFormText(c, flow)
	}
	if task, ok := h.dialog.Task(userID); ok {
		if !h.isAdmin(userID) {
			// A sub-task belongs to the administrator only; drop anything else.
			h.dialog.Clear(userID)
			return nil
		}
		return h.handleTaskText(c, task)
	}
	return nil
}

// OnAdminCommandReject is the denial reply for admin-only commands.
func (h *Handlers) OnAdminCommandReject(c tele.Context) error {
	return tghelpers.SendText(c, msgNoAccessCommand)
}

func (h *Handlers) start(c tele.Context) error {
	if h.isAdmin(c.Sender().ID) {
		return tghelpers.SendMarkup(c, msgAdminPanel, adminMenuMarkup())
	}
	return tghelpers.SendMarkup(c, msgMainMenu, mainMenuMarkup())
}

func (h *Handlers) adminPanel(c tele.Context) error {
	return tghelpers.SendMarkup(c, msgAdminPanel, adminMenuMarkup())
}

func (h *Handlers) menu(c tele.Context) error {
	userID := c.Sender().ID
	if _, ok := h.dialog.Task(userID); ok {
		h.dialog.Clear(userID)
	}
	if h.isAdmin(userID) {
		return tghelpers.EditText(c, msgAdminPanel, adminMenuMarkup())
	}
	return tghelpers.EditText(c, msgMainMenu, mainMenuMarkup())
}

func (h *Handlers) myApplications(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	apps, err := h.svc.ListMine(ctx, userID)
	if err != nil {
		logger.Error(ctx, "tg", "my_applications.list.fail",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return tghelpers.EditText(c, msgLoadFailed, mainMenuMarkup())
	}

	if len(apps) == 0 {
		return tghelpers.EditText(c, msgNoOwnApps, applyMarkup())
	}
	if len(apps) > ownAppsPageSize {
		apps = apps[:ownAppsPageSize]
	}
	return tghelpers.EditText(c, ownApplicationsText(apps), mainMenuMarkup())
}

func (h *Handlers) unknownText(c tele.Context) error {
	if h.isAdmin(c.Sender().ID) {
		return nil
	}
	return tghelpers.SendMarkup(c, msgUseButtons, mainMenuMarkup())
}
