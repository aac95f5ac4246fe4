package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacecrew/applybot/internal/domain"
	"github.com/spacecrew/applybot/internal/telegram/dialog"
)

func TestFormStepsCoverAllQuestions(t *testing.T) {
	order := []dialog.FormStep{
		dialog.StepName, dialog.StepAge, dialog.StepSkills,
		dialog.StepTenure, dialog.StepPrior,
	}
	prompts := []string{promptName, promptAge, promptSkills, promptTenure, promptPrior}

	require.Len(t, formSteps, len(order))
	for i, step := range order {
		spec, ok := formSteps[step]
		require.True(t, ok, "missing step %d", step)
		assert.Equal(t, prompts[i], spec.prompt)
		if i < len(order)-1 {
			assert.Equal(t, order[i+1], spec.next)
		}
	}
}

func TestFormStepsFillDraftVerbatim(t *testing.T) {
	answers := map[dialog.FormStep]string{
		dialog.StepName:   "Иван Петров",
		dialog.StepAge:    "20",
		dialog.StepSkills: "скриптинг, билдинг",
		dialog.StepTenure: "полгода",
		dialog.StepPrior:  "Да, модерировал чат два года",
	}

	var d domain.Draft
	step := dialog.StepName
	for range answers {
		spec := formSteps[step]
		require.Empty(t, spec.apply(&d, answers[step]))
		step = spec.next
	}

	assert.Equal(t, domain.Draft{
		Name:            "Иван Петров",
		Age:             20,
		Skills:          "скриптинг, билдинг",
		Tenure:          "полгода",
		PriorExperience: "Да, модерировал чат два года",
	}, d)
}

func TestApplyAge(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		wantMsg string
		wantAge int
	}{
		{name: "valid", text: "20", wantAge: 20},
		{name: "trims whitespace", text: " 14 ", wantAge: 14},
		{name: "upper bound", text: "100", wantAge: 100},
		{name: "not a number", text: "двадцать", wantMsg: msgAgeInvalid},
		{name: "float", text: "19.5", wantMsg: msgAgeInvalid},
		{name: "too young", text: "13", wantMsg: msgAgeRange},
		{name: "too old", text: "101", wantMsg: msgAgeRange},
		{name: "negative", text: "-5", wantMsg: msgAgeRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var d domain.Draft
			got := applyAge(&d, tc.text)
			assert.Equal(t, tc.wantMsg, got)
			assert.Equal(t, tc.wantAge, d.Age)
		})
	}
}

func TestInvalidAnswerLeavesDraftUntouched(t *testing.T) {
	d := domain.Draft{Name: "Иван"}
	spec := formSteps[dialog.StepAge]

	msg := spec.apply(&d, "abc")
	assert.Equal(t, msgAgeInvalid, msg)
	assert.Equal(t, domain.Draft{Name: "Иван"}, d)
}
