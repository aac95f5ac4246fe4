package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacecrew/applybot/internal/domain"
)

var appColumns = []string{
	"id", "applicant_id", "username", "name", "age",
	"skills", "tenure", "prior_experience", "status", "admin_reply", "created_at",
}

func newMockStore(t *testing.T) (*ApplicationStore, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewApplicationStore(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func appRow(app domain.Application) *sqlmock.Rows {
	var reply interface{}
	if app.AdminReply != nil {
		reply = *app.AdminReply
	}
	return sqlmock.NewRows(appColumns).AddRow(
		app.ID, app.ApplicantID, app.Username, app.Name, app.Age,
		app.Skills, app.Tenure, app.PriorExperience, string(app.Status), reply, app.CreatedAt,
	)
}

func TestCreateReturnsAssignedID(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("INSERT INTO applications").
		WithArgs(int64(100), "ivan", "Ivan", 20, "Go, SQL", "2 years", "yes").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := store.Create(context.Background(), domain.Application{
		ApplicantID:     100,
		Username:        "ivan",
		Name:            "Ivan",
		Age:             20,
		Skills:          "Go, SQL",
		Tenure:          "2 years",
		PriorExperience: "yes",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	store, mock := newMockStore(t)

	reply := "welcome"
	want := domain.Application{
		ID:              7,
		ApplicantID:     100,
		Username:        "ivan",
		Name:            "Ivan",
		Age:             20,
		Skills:          "Go",
		Tenure:          "2 years",
		PriorExperience: "no",
		Status:          domain.StatusAccepted,
		AdminReply:      &reply,
		CreatedAt:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	mock.ExpectQuery(`SELECT \* FROM applications WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(appRow(want))

	got, err := store.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM applications WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPendingFiltersByStatus(t *testing.T) {
	store, mock := newMockStore(t)

	rows := appRow(domain.Application{ID: 2, Status: domain.StatusPending}).AddRow(
		int64(1), int64(0), "", "", 0, "", "", "", domain.StatusPending, nil, time.Time{},
	)
	mock.ExpectQuery(`SELECT \* FROM applications\s+WHERE status = \$1`).
		WithArgs(string(domain.StatusPending), listLimit).
		WillReturnRows(rows)

	apps, err := store.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, int64(2), apps[0].ID)
	assert.Equal(t, int64(1), apps[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByApplicant(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM applications\s+WHERE applicant_id = \$1`).
		WithArgs(int64(100)).
		WillReturnRows(appRow(domain.Application{ID: 3, ApplicantID: 100, Status: domain.StatusRejected}))

	apps, err := store.ListByApplicant(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, domain.StatusRejected, apps[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllEmpty(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM applications ORDER BY`).
		WillReturnRows(sqlmock.NewRows(appColumns))

	apps, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, apps)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatus(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE applications SET status = \$1, admin_reply = \$2 WHERE id = \$3`).
		WithArgs(string(domain.StatusRejected), "too young", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.SetStatus(context.Background(), 7, domain.StatusRejected, "too young")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatusNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE applications SET status`).
		WithArgs(string(domain.StatusAccepted), "ok", int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.SetStatus(context.Background(), 404, domain.StatusAccepted, "ok")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM applications WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Delete(context.Background(), 7))

	mock.ExpectExec(`DELETE FROM applications WHERE id = \$1`).
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, store.Delete(context.Background(), 8), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWrapsDriverError(t *testing.T) {
	store, mock := newMockStore(t)

	boom := errors.New("connection reset")
	mock.ExpectQuery("INSERT INTO applications").WillReturnError(boom)

	_, err := store.Create(context.Background(), domain.Application{})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
