package handlers

import (
	"fmt"
	"strings"

	"github.com/spacecrew/applybot/core/telegram/format"
	"github.com/spacecrew/applybot/internal/domain"
)

// Button labels.
const (
	btnApply   = "Подать заявку"
	btnMyApps  = "Мои заявки"
	btnAllApps = "Все заявки"
	btnPending = "Ожидающие"
	btnStats   = "Статистика"
	btnAccept  = "Принять"
	btnReject  = "Отклонить"
	btnReply   = "Ответить"
	btnBack    = "Назад"
	btnCancel  = "Отмена"
	btnView    = "Посмотреть заявку"
)

// Messages.
const (
	msgMainMenu   = "Главное меню:"
	msgAdminPanel = "Панель администратора"

	msgNoAccess        = "У вас нет доступа."
	msgNoAccessCommand = "У вас нет доступа к этой команде."
	msgAdminNoApply    = "Администратор не может подавать заявки."

	msgFormCancelled = "Заполнение анкеты отменено."
	msgSubmitted     = "Ваша заявка отправлена на рассмотрение!"
	msgSubmitFailed  = "Не удалось отправить заявку. Попробуйте позже."
	msgUseButtons    = "Используйте кнопки меню для навигации."

	msgAgeRange   = "Возраст должен быть от 14 до 100 лет."
	msgAgeInvalid = "Пожалуйста, введите корректный возраст."

	msgLoadFailed   = "Не удалось загрузить заявки. Попробуйте позже."
	msgUpdateFailed = "Не удалось обновить заявку. Попробуйте позже."

	msgNoApplications = "Нет заявок."
	msgNoPending      = "Нет ожидающих заявок."
	msgNoOwnApps      = "У вас нет поданых заявок."
	msgNotFound       = "Заявка не найдена."

	msgRejectReasonPrompt = "Напишите причину отказа:"
	msgReplyPrompt        = "Напишите ответ пользователю:"

	noUsername = "Без username"
)

// Form prompts in questionnaire order.
const (
	promptName   = "1. Как вас зовут?"
	promptAge    = "2. Сколько вам лет?"
	promptSkills = "3. Что вы умеете? (скриптинг, билдинг и т.д.)"
	promptTenure = "4. Сколько вы уже занимаетесь студией?"
	promptPrior  = "5. Был ли у вас опыт работы? Опишите подробнее."
)

func statusGlyph(s domain.Status) string {
	switch s {
	case domain.StatusAccepted:
		return "✅"
	case domain.StatusRejected:
		return "❌"
	default:
		return "⏳"
	}
}

func statusName(s domain.Status) string {
	switch s {
	case domain.StatusAccepted:
		return "Принята"
	case domain.StatusRejected:
		return "Отклонена"
	default:
		return "Ожидает"
	}
}

const createdAtLayout = "02.01.2006 15:04"

// newApplicationSummary is the admin notification sent on submission.
func newApplicationSummary(app domain.Application) string {
	return fmt.Sprintf(
		"Новая заявка #%d\n\n"+
			"Имя: %s\n"+
			"Возраст: %d\n"+
			"Навыки: %s\n"+
			"Опыт в студии: %s\n"+
			"Предыдущий опыт: %s\n"+
			"Username: @%s\n"+
			"User ID: %d",
		app.ID, app.Name, app.Age, app.Skills, app.Tenure,
		app.PriorExperience, app.Username, app.ApplicantID,
	)
}

// applicationDetail renders the full field set of one application.
func applicationDetail(app domain.Application) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Заявка #%d\n\n", statusGlyph(app.Status), app.ID)
	fmt.Fprintf(&b, "Имя: %s\n", app.Name)
	fmt.Fprintf(&b, "Возраст: %d\n", app.Age)
	fmt.Fprintf(&b, "Навыки: %s\n", app.Skills)
	fmt.Fprintf(&b, "Опыт в студии: %s\n", app.Tenure)
	fmt.Fprintf(&b, "Предыдущий опыт: %s\n", app.PriorExperience)
	fmt.Fprintf(&b, "Username: @%s\n", app.Username)
	fmt.Fprintf(&b, "User ID: %d\n", app.ApplicantID)
	fmt.Fprintf(&b, "Статус: %s\n", statusName(app.Status))
	fmt.Fprintf(&b, "Подана: %s", app.CreatedAt.Format(createdAtLayout))
	if reply := format.DerefString(app.AdminReply, ""); reply != "" {
		fmt.Fprintf(&b, "\n\nОтвет админа: %s", reply)
	}
	return b.String()
}

// ownApplicationsText lists the caller's applications with status and date.
func ownApplicationsText(apps []domain.Application) string {
	var b strings.Builder
	b.WriteString("Ваши заявки:\n\n")
	for _, app := range apps {
		fmt.Fprintf(&b, "%s Заявка #%d - %s\n", statusGlyph(app.Status), app.ID, app.Status)
		fmt.Fprintf(&b, "📅 %s\n\n", app.CreatedAt.Format(createdAtLayout))
	}
	return strings.TrimRight(b.String(), "\n")
}

// allApplicationsText is the admin-facing list with review outcome per row.
func allApplicationsText(apps []domain.Application) string {
	var b strings.Builder
	b.WriteString("Все заявки:\n\n")
	for _, app := range apps {
		fmt.Fprintf(&b, "%s #%d - %s (%d лет) - %s\n",
			statusGlyph(app.Status), app.ID, app.Name, app.Age, app.Status)
	}
	return strings.TrimRight(b.String(), "\n")
}

// pendingApplicationsText is the admin-facing queue of unreviewed applications.
func pendingApplicationsText(apps []domain.Application) string {
	var b strings.Builder
	b.WriteString("Ожидающие заявки:\n\n")
	for _, app := range apps {
		fmt.Fprintf(&b, "#%d - %s (%d лет)\n", app.ID, app.Name, app.Age)
	}
	return strings.TrimRight(b.String(), "\n")
}

func statsText(st domain.Stats) string {
	return fmt.Sprintf(
		"Статистика заявок:\n\n"+
			"Всего заявок: %d\n"+
			"Ожидают: %d\n"+
			"Принято: %d\n"+
			"Отклонено: %d",
		st.Total, st.Pending, st.Accepted, st.Rejected,
	)
}
