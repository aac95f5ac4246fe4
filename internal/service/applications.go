package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spacecrew/applybot/core/logger"
	"github.com/spacecrew/applybot/internal/domain"
)

// Store is the persistence surface the service depends on.
type Store interface {
	Create(ctx context.Context, app domain.Application) (int64, error)
	GetByID(ctx context.Context, id int64) (domain.Application, error)
	ListPending(ctx context.Context) ([]domain.Application, error)
	ListAll(ctx context.Context) ([]domain.Application, error)
	ListByApplicant(ctx context.Context, applicantID int64) ([]domain.Application, error)
	SetStatus(ctx context.Context, id int64, status domain.Status, reply string) error
}

// Notifier delivers outcome messages to applicants.
type Notifier interface {
	// NotifyApplicant is best-effort; failures stay inside the notifier.
	NotifyApplicant(ctx context.Context, userID int64, text string)
	// ReplyAndReport returns the delivery result to the caller.
	ReplyAndReport(ctx context.Context, userID int64, text string) error
}

// Applicant-facing outcome texts. AcceptedReply is also persisted as the
// admin reply on accept.
const (
	AcceptedReply = "Заявка принята!"

	acceptedNotice = "Ваша заявка #%d принята!\n\n" +
		"Администратор рассмотрел вашу заявку и принял ее.\n" +
		"С вами свяжутся в ближайшее время!"
	rejectedNotice = "Ваша заявка #%d отклонена.\n\nПричина: %s"
	replyNotice    = "Ответ на вашу заявку #%d:\n\n%s"
)

// Applications implements the review lifecycle over the store and the relay.
type Applications struct {
	store  Store
	notify Notifier
}

// NewApplications wires the service.
func NewApplications(store Store, notify Notifier) *Applications {
	return &Applications{store: store, notify: notify}
}

// Submit persists a completed questionnaire as a new pending application.
func (s *Applications) Submit(ctx context.Context, applicantID int64, username string, d domain.Draft) (domain.Application, error) {
	app := domain.Application{
		ApplicantID:     applicantID,
		Username:        username,
		Name:            d.Name,
		Age:             d.Age,
		Skills:          d.Skills,
		Tenure:          d.Tenure,
		PriorExperience: d.PriorExperience,
		Status:          domain.StatusPending,
	}

	id, err := s.store.Create(ctx, app)
	if err != nil {
		return domain.Application{}, fmt.Errorf("submit application: %w", err)
	}
	app.ID = id

	logger.Info(ctx, "service.applications", "application.submitted",
		slog.String("status", "ok"),
		slog.Int64("app_id", id),
		slog.Int64("applicant_id", applicantID),
	)
	return app, nil
}

// Get fetches one application.
func (s *Applications) Get(ctx context.Context, id int64) (domain.Application, error) {
	return s.store.GetByID(ctx, id)
}

// ListAll returns all applications, newest first.
func (s *Applications) ListAll(ctx context.Context) ([]domain.Application, error) {
	return s.store.ListAll(ctx)
}

// ListPending returns pending applications, newest first.
func (s *Applications) ListPending(ctx context.Context) ([]domain.Application, error) {
	return s.store.ListPending(ctx)
}

// ListMine returns the caller's own applications, newest first.
func (s *Applications) ListMine(ctx context.Context, applicantID int64) ([]domain.Application, error) {
	return s.store.ListByApplicant(ctx, applicantID)
}

// Accept marks the application accepted with the fixed confirmation reply and
// notifies the applicant best-effort. Re-accepting an already reviewed
// application overwrites the previous outcome and sends a fresh notification.
func (s *Applications) Accept(ctx context.Context, id int64) (domain.Application, error) {
	app, err := s.store.GetByID(ctx, id)
	if err != nil {
		return domain.Application{}, err
	}

	if err := s.store.SetStatus(ctx, id, domain.StatusAccepted, AcceptedReply); err != nil {
		return domain.Application{}, err
	}

	s.notify.NotifyApplicant(ctx, app.ApplicantID, fmt.Sprintf(acceptedNotice, id))

	logger.Info(ctx, "service.applications", "application.accepted",
		slog.String("status", "ok"),
		slog.Int64("app_id", id),
		slog.Int64("applicant_id", app.ApplicantID),
	)
	return app, nil
}

// Reject marks the application rejected, persisting the reason verbatim as
// the admin reply, and notifies the applicant best-effort with the reason.
func (s *Applications) Reject(ctx context.Context, id int64, reason string) (domain.Application, error) {
	app, err := s.store.GetByID(ctx, id)
	if err != nil {
		return domain.Application{}, err
	}

	if err := s.store.SetStatus(ctx, id, domain.StatusRejected, reason); err != nil {
		return domain.Application{}, err
	}

	s.notify.NotifyApplicant(ctx, app.ApplicantID, fmt.Sprintf(rejectedNotice, id, reason))

	logger.Info(ctx, "service.applications", "application.rejected",
		slog.String("status", "ok"),
		slog.Int64("app_id", id),
		slog.Int64("applicant_id", app.ApplicantID),
	)
	return app, nil
}

// ReplyTo forwards text verbatim to the applicant behind the application.
// Nothing is persisted, so a delivery failure is returned for the
// administrator to see.
func (s *Applications) ReplyTo(ctx context.Context, id int64, text string) (domain.Application, error) {
	app, err := s.store.GetByID(ctx, id)
	if err != nil {
		return domain.Application{}, err
	}

	if err := s.notify.ReplyAndReport(ctx, app.ApplicantID, fmt.Sprintf(replyNotice, id, text)); err != nil {
		return app, fmt.Errorf("deliver reply for application %d: %w", id, err)
	}

	logger.Info(ctx, "service.applications", "application.replied",
		slog.String("status", "ok"),
		slog.Int64("app_id", id),
		slog.Int64("applicant_id", app.ApplicantID),
	)
	return app, nil
}

// Stats counts applications by status over a full scan.
func (s *Applications) Stats(ctx context.Context) (domain.Stats, error) {
	apps, err := s.store.ListAll(ctx)
	if err != nil {
		return domain.Stats{}, err
	}

	st := domain.Stats{Total: len(apps)}
	for _, a := range apps {
		switch a.Status {
		case domain.StatusPending:
			st.Pending++
		case domain.StatusAccepted:
			st.Accepted++
		case domain.StatusRejected:
			st.Rejected++
		}
	}
	return st, nil
}
