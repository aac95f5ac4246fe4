// Package dialog tracks what free-text input is expected next from each chat
// participant. A session holds exactly one of two variants: a form flow for an
// applicant filling the questionnaire, or an admin sub-task awaiting one
// free-text message (reject reason or ad-hoc reply). Sessions live in process
// memory only and are lost on restart.
package dialog

import (
	"sync"
	"time"

	"github.com/spacecrew/applybot/internal/domain"
)

// FormStep identifies the questionnaire field expected next.
type FormStep int

const (
	StepName FormStep = iota
	StepAge
	StepSkills
	StepTenure
	StepPrior
)

// TaskKind identifies which admin sub-task is awaiting input.
type TaskKind string

const (
	// TaskReject collects a free-text rejection reason.
	TaskReject TaskKind = "reject"
	// TaskReply collects a free-text ad-hoc reply to an applicant.
	TaskReply TaskKind = "reply"
)

// FormFlow is an applicant's in-progress questionnaire: the current step plus
// the answers collected so far.
type FormFlow struct {
	Step  FormStep
	Draft domain.Draft
}

// AdminTask is a pending admin-side sub-task bound to one application.
type AdminTask struct {
	Kind  TaskKind
	AppID int64
}

type session struct {
	form      *FormFlow
	task      *AdminTask
	startedAt time.Time
}

// Manager owns all active sessions, keyed by user id. The two session
// variants are mutually exclusive for one user; beginning either replaces
// whatever was active before.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*session
	now      func() time.Time
}

// NewManager returns an empty session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*session),
		now:      time.Now,
	}
}

// BeginForm starts a fresh form flow for the user, discarding any prior session.
func (m *Manager) BeginForm(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = &session{
		form:      &FormFlow{Step: StepName},
		startedAt: m.now(),
	}
}

// Form returns a copy of the user's form flow, if one is active.
func (m *Manager) Form(userID int64) (FormFlow, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok || s.form == nil {
		return FormFlow{}, false
	}
	return *s.form, true
}

// SetForm stores an updated form flow for the user. It is a no-op when the
// user has no active form session (e.g. a concurrent cancel won).
func (m *Manager) SetForm(userID int64, flow FormFlow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok || s.form == nil {
		return
	}
	s.form = &flow
}

// BeginTask starts an admin sub-task for the user, discarding any prior session.
func (m *Manager) BeginTask(userID int64, kind TaskKind, appID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = &session{
		task:      &AdminTask{Kind: kind, AppID: appID},
		startedAt: m.now(),
	}
}

// Task returns a copy of the user's pending admin sub-task, if one is active.
func (m *Manager) Task(userID int64) (AdminTask, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok || s.task == nil {
		return AdminTask{}, false
	}
	return *s.task, true
}

// Clear drops the user's session together with any draft it carried.
func (m *Manager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// InProgress reports whether the user has any active session.
func (m *Manager) InProgress(userID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[userID]
	return ok
}

// Len returns the number of active sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// SweepOlderThan drops sessions idle since before the given age and returns
// how many were removed.
func (m *Manager) SweepOlderThan(age time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-age)
	swept := 0
	for id, s := range m.sessions {
		if s.startedAt.Before(cutoff) {
			delete(m.sessions, id)
			swept++
		}
	}
	return swept
}
