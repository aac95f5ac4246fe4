package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacecrew/applybot/internal/domain"
	"github.com/spacecrew/applybot/internal/storage"
)

type fakeStore struct {
	apps   map[int64]domain.Application
	nextID int64

	createErr error
}

func newFakeStore(apps ...domain.Application) *fakeStore {
	s := &fakeStore{apps: make(map[int64]domain.Application), nextID: 1}
	for _, a := range apps {
		s.apps[a.ID] = a
		if a.ID >= s.nextID {
			s.nextID = a.ID + 1
		}
	}
	return s
}

func (s *fakeStore) Create(_ context.Context, app domain.Application) (int64, error) {
	if s.createErr != nil {
		return 0, s.createErr
	}
	app.ID = s.nextID
	s.nextID++
	s.apps[app.ID] = app
	return app.ID, nil
}

func (s *fakeStore) GetByID(_ context.Context, id int64) (domain.Application, error) {
	app, ok := s.apps[id]
	if !ok {
		return domain.Application{}, storage.ErrNotFound
	}
	return app, nil
}

func (s *fakeStore) ListPending(_ context.Context) ([]domain.Application, error) {
	var out []domain.Application
	for _, a := range s.apps {
		if a.Status == domain.StatusPending {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeStore) ListAll(_ context.Context) ([]domain.Application, error) {
	var out []domain.Application
	for _, a := range s.apps {
		out = append(out, a)
	}
	return out, nil
}

func (s *fakeStore) ListByApplicant(_ context.Context, applicantID int64) ([]domain.Application, error) {
	var out []domain.Application
	for _, a := range s.apps {
		if a.ApplicantID == applicantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeStore) SetStatus(_ context.Context, id int64, status domain.Status, reply string) error {
	app, ok := s.apps[id]
	if !ok {
		return storage.ErrNotFound
	}
	app.Status = status
	app.AdminReply = &reply
	s.apps[id] = app
	return nil
}

type notice struct {
	userID int64
	text   string
}

type fakeNotifier struct {
	notices  []notice
	replies  []notice
	replyErr error
}

func (n *fakeNotifier) NotifyApplicant(_ context.Context, userID int64, text string) {
	n.notices = append(n.notices, notice{userID: userID, text: text})
}

func (n *fakeNotifier) ReplyAndReport(_ context.Context, userID int64, text string) error {
	if n.replyErr != nil {
		return n.replyErr
	}
	n.replies = append(n.replies, notice{userID: userID, text: text})
	return nil
}

func TestSubmitPersistsAnswersVerbatim(t *testing.T) {
	store := newFakeStore()
	svc := NewApplications(store, &fakeNotifier{})

	draft := domain.Draft{
		Name:            "Иван Петров",
		Age:             20,
		Skills:          "Go, SQL",
		Tenure:          "полгода",
		PriorExperience: "Да, модерировал чат",
	}

	app, err := svc.Submit(context.Background(), 100, "ivan", draft)
	require.NoError(t, err)
	require.NotZero(t, app.ID)

	stored := store.apps[app.ID]
	assert.Equal(t, domain.StatusPending, stored.Status)
	assert.Equal(t, int64(100), stored.ApplicantID)
	assert.Equal(t, "ivan", stored.Username)
	assert.Equal(t, draft.Name, stored.Name)
	assert.Equal(t, draft.Age, stored.Age)
	assert.Equal(t, draft.Skills, stored.Skills)
	assert.Equal(t, draft.Tenure, stored.Tenure)
	assert.Equal(t, draft.PriorExperience, stored.PriorExperience)
}

func TestSubmitStoreError(t *testing.T) {
	store := newFakeStore()
	store.createErr = errors.New("db down")
	svc := NewApplications(store, &fakeNotifier{})

	_, err := svc.Submit(context.Background(), 100, "ivan", domain.Draft{})
	assert.ErrorIs(t, err, store.createErr)
}

func TestAcceptNotifiesApplicant(t *testing.T) {
	store := newFakeStore(domain.Application{ID: 7, ApplicantID: 100, Status: domain.StatusPending})
	notify := &fakeNotifier{}
	svc := NewApplications(store, notify)

	_, err := svc.Accept(context.Background(), 7)
	require.NoError(t, err)

	got := store.apps[7]
	assert.Equal(t, domain.StatusAccepted, got.Status)
	require.NotNil(t, got.AdminReply)
	assert.Equal(t, AcceptedReply, *got.AdminReply)

	require.Len(t, notify.notices, 1)
	assert.Equal(t, int64(100), notify.notices[0].userID)
	assert.Contains(t, notify.notices[0].text, "#7")
	assert.Contains(t, notify.notices[0].text, "принята")
}

func TestAcceptOverwritesPriorOutcome(t *testing.T) {
	reason := "не подходит"
	store := newFakeStore(domain.Application{
		ID: 7, ApplicantID: 100,
		Status: domain.StatusRejected, AdminReply: &reason,
	})
	notify := &fakeNotifier{}
	svc := NewApplications(store, notify)

	_, err := svc.Accept(context.Background(), 7)
	require.NoError(t, err)

	got := store.apps[7]
	assert.Equal(t, domain.StatusAccepted, got.Status)
	assert.Equal(t, AcceptedReply, *got.AdminReply)
	assert.Len(t, notify.notices, 1)
}

func TestAcceptNotFound(t *testing.T) {
	svc := NewApplications(newFakeStore(), &fakeNotifier{})

	_, err := svc.Accept(context.Background(), 404)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRejectStoresReasonVerbatim(t *testing.T) {
	store := newFakeStore(domain.Application{ID: 7, ApplicantID: 100, Status: domain.StatusPending})
	notify := &fakeNotifier{}
	svc := NewApplications(store, notify)

	reason := "Слишком мало опыта, попробуйте позже"
	_, err := svc.Reject(context.Background(), 7, reason)
	require.NoError(t, err)

	got := store.apps[7]
	assert.Equal(t, domain.StatusRejected, got.Status)
	require.NotNil(t, got.AdminReply)
	assert.Equal(t, reason, *got.AdminReply)

	require.Len(t, notify.notices, 1)
	assert.Contains(t, notify.notices[0].text, reason)
}

func TestReplyToForwardsTextWithoutPersisting(t *testing.T) {
	store := newFakeStore(domain.Application{ID: 7, ApplicantID: 100, Status: domain.StatusPending})
	notify := &fakeNotifier{}
	svc := NewApplications(store, notify)

	app, err := svc.ReplyTo(context.Background(), 7, "Уточните, пожалуйста, ваш возраст")
	require.NoError(t, err)
	assert.Equal(t, int64(7), app.ID)

	require.Len(t, notify.replies, 1)
	assert.Equal(t, int64(100), notify.replies[0].userID)
	assert.Contains(t, notify.replies[0].text, "Уточните, пожалуйста, ваш возраст")

	// Status and reply stay untouched.
	got := store.apps[7]
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Nil(t, got.AdminReply)
}

func TestReplyToSurfacesDeliveryFailure(t *testing.T) {
	store := newFakeStore(domain.Application{ID: 7, ApplicantID: 100, Status: domain.StatusPending})
	notify := &fakeNotifier{replyErr: errors.New("blocked by user")}
	svc := NewApplications(store, notify)

	_, err := svc.ReplyTo(context.Background(), 7, "привет")
	assert.ErrorIs(t, err, notify.replyErr)
}

func TestStatsCountsByStatus(t *testing.T) {
	store := newFakeStore(
		domain.Application{ID: 1, Status: domain.StatusPending},
		domain.Application{ID: 2, Status: domain.StatusPending},
		domain.Application{ID: 3, Status: domain.StatusAccepted},
		domain.Application{ID: 4, Status: domain.StatusRejected},
	)
	svc := NewApplications(store, &fakeNotifier{})

	st, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{Total: 4, Pending: 2, Accepted: 1, Rejected: 1}, st)
}
