package handlers

import (
	"fmt"
	"strconv"

	"github.com/spacecrew/applybot/core/telegram/keyboard"
	"github.com/spacecrew/applybot/internal/domain"

	tele "gopkg.in/telebot.v4"
)

func mainMenuMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: btnApply, Unique: actApply},
		{Text: btnMyApps, Unique: actMyApps},
	})
}

func adminMenuMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: btnAllApps, Unique: actAdminAll},
		{Text: btnPending, Unique: actAdminPending},
		{Text: btnStats, Unique: actAdminStats},
	})
}

func cancelMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: btnCancel, Unique: actCancel},
	})
}

func applyMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: btnApply, Unique: actApply},
	})
}

// viewMarkup carries a single "view" button keyed by application id.
func viewMarkup(appID int64) *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: btnView, Unique: actView, Data: strconv.FormatInt(appID, 10)},
	})
}

// detailMarkup offers the review actions for one application.
func detailMarkup(appID int64) *tele.ReplyMarkup {
	id := strconv.FormatInt(appID, 10)
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: btnAccept, Unique: actAccept, Data: id},
			{Text: btnReject, Unique: actReject, Data: id},
		},
		[]keyboard.InlineBtn{{Text: btnReply, Unique: actReply, Data: id}},
		[]keyboard.InlineBtn{{Text: btnBack, Unique: actAdminAll}},
	)
}

// backToDetailMarkup cancels a pending admin sub-task by navigating back to
// the application it was bound to.
func backToDetailMarkup(appID int64) *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: btnCancel, Unique: actView, Data: strconv.FormatInt(appID, 10)},
	})
}

// listMarkup renders one view button per application plus a back row.
func listMarkup(apps []domain.Application, withGlyph bool) *tele.ReplyMarkup {
	buttons := make([]keyboard.InlineBtn, 0, len(apps)+1)
	for _, app := range apps {
		label := fmt.Sprintf("#%d - %s", app.ID, app.Name)
		if withGlyph {
			label = statusGlyph(app.Status) + " " + label
		}
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   label,
			Unique: actView,
			Data:   strconv.FormatInt(app.ID, 10),
		})
	}
	buttons = append(buttons, keyboard.InlineBtn{Text: btnBack, Unique: actMenu})
	return keyboard.InlineButtons(buttons)
}
