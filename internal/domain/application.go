package domain

import "time"

// Status is the review state of an application.
type Status string

const (
	// StatusPending marks a freshly submitted application awaiting review.
	StatusPending Status = "pending"
	// StatusAccepted marks an application the administrator accepted.
	StatusAccepted Status = "accepted"
	// StatusRejected marks an application the administrator rejected.
	StatusRejected Status = "rejected"
)

// Age bounds accepted by the application form, inclusive.
const (
	MinAge = 14
	MaxAge = 100
)

// Application is a persisted membership request.
type Application struct {
	ID              int64     `db:"id"`
	ApplicantID     int64     `db:"applicant_id"`
	Username        string    `db:"username"`
	Name            string    `db:"name"`
	Age             int       `db:"age"`
	Skills          string    `db:"skills"`
	Tenure          string    `db:"tenure"`
	PriorExperience string    `db:"prior_experience"`
	Status          Status    `db:"status"`
	AdminReply      *string   `db:"admin_reply"`
	CreatedAt       time.Time `db:"created_at"`
}

// Draft accumulates form answers before an application is persisted.
type Draft struct {
	Name            string
	Age             int
	Skills          string
	Tenure          string
	PriorExperience string
}

// Stats aggregates application counts by status.
type Stats struct {
	Total    int
	Pending  int
	Accepted int
	Rejected int
}
