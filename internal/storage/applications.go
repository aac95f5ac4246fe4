package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/spacecrew/applybot/internal/domain"
)

// ErrNotFound is returned when the requested application does not exist.
var ErrNotFound = errors.New("application not found")

// listLimit bounds admin list queries; the UI renders at most one page.
const listLimit = 15

// ApplicationStore provides keyed CRUD over application records.
// It performs no validation; callers guarantee field shapes.
type ApplicationStore struct {
	db *sqlx.DB
}

// NewApplicationStore wraps an open database handle.
func NewApplicationStore(db *sqlx.DB) *ApplicationStore {
	return &ApplicationStore{db: db}
}

// Create inserts a new pending application and returns its assigned id.
func (s *ApplicationStore) Create(ctx context.Context, app domain.Application) (int64, error) {
	const q = `
		INSERT INTO applications
			(applicant_id, username, name, age, skills, tenure, prior_experience)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id int64
	err := s.db.QueryRowxContext(ctx, q,
		app.ApplicantID, app.Username, app.Name, app.Age,
		app.Skills, app.Tenure, app.PriorExperience,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert application: %w", err)
	}
	return id, nil
}

// GetByID fetches one application or ErrNotFound.
func (s *ApplicationStore) GetByID(ctx context.Context, id int64) (domain.Application, error) {
	const q = `SELECT * FROM applications WHERE id = $1`

	var app domain.Application
	if err := s.db.GetContext(ctx, &app, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Application{}, ErrNotFound
		}
		return domain.Application{}, fmt.Errorf("get application %d: %w", id, err)
	}
	return app, nil
}

// ListPending returns pending applications, newest first.
func (s *ApplicationStore) ListPending(ctx context.Context) ([]domain.Application, error) {
	const q = `
		SELECT * FROM applications
		WHERE status = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	var apps []domain.Application
	if err := s.db.SelectContext(ctx, &apps, q, domain.StatusPending, listLimit); err != nil {
		return nil, fmt.Errorf("list pending applications: %w", err)
	}
	return apps, nil
}

// ListAll returns all applications, newest first.
func (s *ApplicationStore) ListAll(ctx context.Context) ([]domain.Application, error) {
	const q = `SELECT * FROM applications ORDER BY created_at DESC, id DESC`

	var apps []domain.Application
	if err := s.db.SelectContext(ctx, &apps, q); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

// ListByApplicant returns one applicant's applications, newest first.
func (s *ApplicationStore) ListByApplicant(ctx context.Context, applicantID int64) ([]domain.Application, error) {
	const q = `
		SELECT * FROM applications
		WHERE applicant_id = $1
		ORDER BY created_at DESC, id DESC`

	var apps []domain.Application
	if err := s.db.SelectContext(ctx, &apps, q, applicantID); err != nil {
		return nil, fmt.Errorf("list applications of %d: %w", applicantID, err)
	}
	return apps, nil
}

// SetStatus updates the review status and the admin reply for one application.
func (s *ApplicationStore) SetStatus(ctx context.Context, id int64, status domain.Status, reply string) error {
	const q = `UPDATE applications SET status = $1, admin_reply = $2 WHERE id = $3`

	res, err := s.db.ExecContext(ctx, q, status, reply, id)
	if err != nil {
		return fmt.Errorf("update application %d status: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one application. No review flow calls this; it exists as a
// storage capability for operator cleanup.
func (s *ApplicationStore) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM applications WHERE id = $1`

	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete application %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
