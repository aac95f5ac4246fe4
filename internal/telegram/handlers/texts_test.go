package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spacecrew/applybot/internal/domain"
)

func sampleApp() domain.Application {
	return domain.Application{
		ID:              7,
		ApplicantID:     100,
		Username:        "ivan",
		Name:            "Иван Петров",
		Age:             20,
		Skills:          "скриптинг",
		Tenure:          "полгода",
		PriorExperience: "Да",
		Status:          domain.StatusPending,
		CreatedAt:       time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
	}
}

func TestNewApplicationSummary(t *testing.T) {
	got := newApplicationSummary(sampleApp())

	assert.Contains(t, got, "Новая заявка #7")
	assert.Contains(t, got, "Имя: Иван Петров")
	assert.Contains(t, got, "Возраст: 20")
	assert.Contains(t, got, "Навыки: скриптинг")
	assert.Contains(t, got, "Username: @ivan")
	assert.Contains(t, got, "User ID: 100")
}

func TestApplicationDetail(t *testing.T) {
	app := sampleApp()
	got := applicationDetail(app)

	assert.Contains(t, got, "⏳ Заявка #7")
	assert.Contains(t, got, "Статус: Ожидает")
	assert.Contains(t, got, "Подана: 01.06.2025 12:30")
	assert.NotContains(t, got, "Ответ админа")
}

func TestApplicationDetailWithAdminReply(t *testing.T) {
	app := sampleApp()
	app.Status = domain.StatusRejected
	reply := "мало опыта"
	app.AdminReply = &reply

	got := applicationDetail(app)
	assert.Contains(t, got, "❌ Заявка #7")
	assert.Contains(t, got, "Статус: Отклонена")
	assert.Contains(t, got, "Ответ админа: мало опыта")
}

func TestStatusGlyph(t *testing.T) {
	assert.Equal(t, "⏳", statusGlyph(domain.StatusPending))
	assert.Equal(t, "✅", statusGlyph(domain.StatusAccepted))
	assert.Equal(t, "❌", statusGlyph(domain.StatusRejected))
}

func TestListTexts(t *testing.T) {
	apps := []domain.Application{sampleApp()}

	all := allApplicationsText(apps)
	assert.Contains(t, all, "Все заявки:")
	assert.Contains(t, all, "⏳ #7 - Иван Петров (20 лет) - pending")

	pending := pendingApplicationsText(apps)
	assert.Contains(t, pending, "Ожидающие заявки:")
	assert.Contains(t, pending, "#7 - Иван Петров (20 лет)")

	own := ownApplicationsText(apps)
	assert.Contains(t, own, "Ваши заявки:")
	assert.Contains(t, own, "⏳ Заявка #7 - pending")
	assert.Contains(t, own, "📅 01.06.2025 12:30")
}

func TestStatsText(t *testing.T) {
	got := statsText(domain.Stats{Total: 10, Pending: 3, Accepted: 5, Rejected: 2})

	assert.Contains(t, got, "Всего заявок: 10")
	assert.Contains(t, got, "Ожидают: 3")
	assert.Contains(t, got, "Принято: 5")
	assert.Contains(t, got, "Отклонено: 2")
}
