package registry

import (
	"context"
	"errors"
	"time"
)

// Store errors shared by the Postgres and in-memory implementations.
var (
	ErrNotFound         = errors.New("member not found")
	ErrEmailTaken       = errors.New("an account with this email already exists")
	ErrTrackLocked      = errors.New("track selection is locked after submission")
	ErrAlreadySubmitted = errors.New("project already submitted")
	ErrNotReviewed      = errors.New("submission must be reviewed before grading")
)

// ProfileUpdate carries the owner-editable profile fields.
type ProfileUpdate struct {
	FullName      string
	Email         string
	StudentID     string
	Department    string
	YearOfStudy   int
	ContactNumber string
}

// Submission carries the one-time project submission fields.
type Submission struct {
	GithubLink         string
	LiveURL            string
	ProjectDescription string
}

// Store is the authoritative persistence boundary for member records.
// Every mutation that carries an invariant (track lock, graded implies
// reviewed, single submission) enforces it here so no caller can bypass it.
type Store interface {
	CreateMember(ctx context.Context, m Member) (Member, error)
	GetMember(ctx context.Context, id string) (Member, error)
	GetMemberByEmail(ctx context.Context, email string) (Member, error)
	ListMembers(ctx context.Context) ([]Member, error)
	ListSubmissions(ctx context.Context) ([]Member, error)
	CountByTrack(ctx context.Context) (TrackCounts, error)

	UpdateProfile(ctx context.Context, id string, p ProfileUpdate) (Member, error)
	SetTrack(ctx context.Context, id, track string, at time.Time) (Member, error)
	SetTaskCompleted(ctx context.Context, id string, at time.Time) (Member, error)
	SaveSubmission(ctx context.Context, id string, s Submission, at time.Time) (Member, error)

	// SetReviewed clears graded in the same operation when reviewed is
	// turned off, keeping graded implies reviewed without a second write.
	SetReviewed(ctx context.Context, id string, reviewed bool) (Member, error)
	// SetGraded refuses graded=true while the submission is unreviewed.
	SetGraded(ctx context.Context, id string, graded bool) (Member, error)

	SetPassword(ctx context.Context, id, passwordHash string) error

	CreateInquiry(ctx context.Context, q ContactInquiry) (ContactInquiry, error)
	GetInquiry(ctx context.Context, id string) (ContactInquiry, error)
	ListInquiries(ctx context.Context) ([]ContactInquiry, error)
	SetInquiryStatus(ctx context.Context, id, status string) error

	SaveRefreshToken(ctx context.Context, memberID, token string, expiresAt time.Time) error
	RefreshTokenValid(ctx context.Context, token string) (string, error)
	RevokeRefreshToken(ctx context.Context, token string) error

	CreatePasswordReset(ctx context.Context, token, memberID string, expiresAt time.Time) error
	ConsumePasswordReset(ctx context.Context, token string) (string, error)
}
