package handlers

import (
	"log/slog"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/spacecrew/applybot/core/logger"
	tghelpers "github.com/spacecrew/applybot/core/telegram/helpers"
	"github.com/spacecrew/applybot/internal/domain"
	"github.com/spacecrew/applybot/internal/telegram/dialog"
)

// stepSpec describes one questionnaire step: the question asked on entry, the
// step that follows, and how the answer lands in the draft. apply returns a
// re-prompt text when the answer is invalid; the step then does not advance
// and the draft stays untouched.
type stepSpec struct {
	prompt string
	next   dialog.FormStep
	apply  func(d *domain.Draft, text string) string
}

var formSteps = map[dialog.FormStep]stepSpec{
	dialog.StepName: {
		prompt: promptName,
		next:   dialog.StepAge,
		apply: func(d *domain.Draft, text string) string {
			d.Name = text
			return ""
		},
	},
	dialog.StepAge: {
		prompt: promptAge,
		next:   dialog.StepSkills,
		apply:  applyAge,
	},
	dialog.StepSkills: {
		prompt: promptSkills,
		next:   dialog.StepTenure,
		apply: func(d *domain.Draft, text string) string {
			d.Skills = text
			return ""
		},
	},
	dialog.StepTenure: {
		prompt: promptTenure,
		next:   dialog.StepPrior,
		apply: func(d *domain.Draft, text string) string {
			d.Tenure = text
			return ""
		},
	},
	dialog.StepPrior: {
		prompt: promptPrior,
		apply: func(d *domain.Draft, text string) string {
			d.PriorExperience = text
			return ""
		},
	},
}

func applyAge(d *domain.Draft, text string) string {
	age, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return msgAgeInvalid
	}
	if age < domain.MinAge || age > domain.MaxAge {
		return msgAgeRange
	}
	d.Age = age
	return ""
}

// beginForm starts the questionnaire. The administrator is barred from filing.
func (h *Handlers) beginForm(c tele.Context) error {
	userID := c.Sender().ID
	if h.isAdmin(userID) {
		return tghelpers.EditText(c, msgAdminNoApply)
	}

	h.dialog.BeginForm(userID)
	return tghelpers.EditText(c, formSteps[dialog.StepName].prompt, cancelMarkup())
}

// cancelForm drops the session and the draft with no partial persistence.
func (h *Handlers) cancelForm(c tele.Context) error {
	h.dialog.Clear(c.Sender().ID)
	return tghelpers.EditText(c, msgFormCancelled, mainMenuMarkup())
}

// handleFormText consumes one free-text answer for the current step.
func (h *Handlers) handleFormText(c tele.Context, flow dialog.FormFlow) error {
	userID := c.Sender().ID

	spec, ok := formSteps[flow.Step]
	if !ok {
		h.dialog.Clear(userID)
		return nil
	}

	if reprompt := spec.apply(&flow.Draft, c.Text()); reprompt != "" {
		return tghelpers.SendText(c, reprompt)
	}

	if flow.Step == dialog.StepPrior {
		return h.finishForm(c, flow.Draft)
	}

	flow.Step = spec.next
	h.dialog.SetForm(userID, flow)
	return tghelpers.SendMarkup(c, formSteps[flow.Step].prompt, cancelMarkup())
}

// finishForm persists the completed draft, notifies the administrator with a
// summary and a view button, and confirms to the applicant.
func (h *Handlers) finishForm(c tele.Context, draft domain.Draft) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	username := c.Sender().Username
	if username == "" {
		username = noUsername
	}

	app, err := h.svc.Submit(ctx, userID, username, draft)
	if err != nil {
		logger.Error(ctx, "tg", "form.submit.fail",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		h.dialog.Clear(userID)
		return tghelpers.SendMarkup(c, msgSubmitFailed, mainMenuMarkup())
	}

	_ = h.relay.NotifyAdmin(ctx, newApplicationSummary(app), viewMarkup(app.ID))

	h.dialog.Clear(userID)
	return tghelpers.SendMarkup(c, msgSubmitted, mainMenuMarkup())
}
