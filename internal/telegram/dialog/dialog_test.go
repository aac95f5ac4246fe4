package dialog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormLifecycle(t *testing.T) {
	m := NewManager()

	assert.False(t, m.InProgress(1))

	m.BeginForm(1)
	require.True(t, m.InProgress(1))

	flow, ok := m.Form(1)
	require.True(t, ok)
	assert.Equal(t, StepName, flow.Step)

	flow.Draft.Name = "Ivan"
	flow.Step = StepAge
	m.SetForm(1, flow)

	got, ok := m.Form(1)
	require.True(t, ok)
	assert.Equal(t, StepAge, got.Step)
	assert.Equal(t, "Ivan", got.Draft.Name)

	// Restarting the form discards the previous draft.
	m.BeginForm(1)
	fresh, ok := m.Form(1)
	require.True(t, ok)
	assert.Equal(t, StepName, fresh.Step)
	assert.Empty(t, fresh.Draft.Name)

	m.Clear(1)
	assert.False(t, m.InProgress(1))
	_, ok = m.Form(1)
	assert.False(t, ok)
}

func TestTaskReplacesForm(t *testing.T) {
	m := NewManager()

	m.BeginForm(7)
	m.BeginTask(7, TaskReject, 42)

	_, formActive := m.Form(7)
	assert.False(t, formActive)

	task, ok := m.Task(7)
	require.True(t, ok)
	assert.Equal(t, TaskReject, task.Kind)
	assert.Equal(t, int64(42), task.AppID)
}

func TestSetFormIgnoredWithoutSession(t *testing.T) {
	m := NewManager()

	m.SetForm(5, FormFlow{Step: StepSkills})
	assert.False(t, m.InProgress(5))
}

func TestSessionsAreIsolatedPerUser(t *testing.T) {
	m := NewManager()

	m.BeginForm(1)
	m.BeginTask(2, TaskReply, 9)

	_, ok := m.Form(1)
	assert.True(t, ok)
	_, ok = m.Task(1)
	assert.False(t, ok)

	m.Clear(1)
	task, ok := m.Task(2)
	require.True(t, ok)
	assert.Equal(t, TaskReply, task.Kind)
}

func TestSweepOlderThan(t *testing.T) {
	m := NewManager()

	now := time.Now()
	m.now = func() time.Time { return now.Add(-2 * time.Hour) }
	m.BeginForm(1)
	m.BeginTask(2, TaskReject, 3)

	m.now = func() time.Time { return now }
	m.BeginForm(3)

	assert.Equal(t, 2, m.SweepOlderThan(time.Hour))
	assert.False(t, m.InProgress(1))
	assert.False(t, m.InProgress(2))
	assert.True(t, m.InProgress(3))
	assert.Equal(t, 1, m.Len())
}
