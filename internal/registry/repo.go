package registry

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Repository persists member records in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

var _ Store = (*Repository)(nil)

const memberColumns = `id, email, password_hash, full_name, student_id, department, year_of_study,
	contact_number, role, development_track, track_updated_at, task_completed, task_completed_at,
	github_link, live_url, project_description, submitted_at, submission_reviewed, graded,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (Member, error) {
	var m Member
	err := row.Scan(&m.ID, &m.Email, &m.PasswordHash, &m.FullName, &m.StudentID, &m.Department,
		&m.YearOfStudy, &m.ContactNumber, &m.Role, &m.DevelopmentTrack, &m.TrackUpdatedAt,
		&m.TaskCompleted, &m.TaskCompletedAt, &m.GithubLink, &m.LiveURL, &m.ProjectDescription,
		&m.SubmittedAt, &m.SubmissionReviewed, &m.Graded, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Member{}, ErrNotFound
		}
		return Member{}, err
	}
	return m, nil
}

// CreateMember inserts a new record with submission and status fields at
// their defaults.
func (r *Repository) CreateMember(ctx context.Context, m Member) (Member, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Role == "" {
		m.Role = RoleMember
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO members (id, email, password_hash, full_name, student_id, department, year_of_study, contact_number, role)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at
	`, m.ID, m.Email, m.PasswordHash, m.FullName, m.StudentID, m.Department, m.YearOfStudy, m.ContactNumber, m.Role)
	if err := row.Scan(&m.CreatedAt, &m.UpdatedAt); err != nil {
		if strings.Contains(err.Error(), "members_email_key") {
			return Member{}, ErrEmailTaken
		}
		return Member{}, err
	}
	return m, nil
}

// GetMember returns a single record by id.
func (r *Repository) GetMember(ctx context.Context, id string) (Member, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+memberColumns+` FROM members WHERE id = $1`, id)
	return scanMember(row)
}

// GetMemberByEmail returns a single record by email.
func (r *Repository) GetMemberByEmail(ctx context.Context, email string) (Member, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+memberColumns+` FROM members WHERE email = $1`, email)
	return scanMember(row)
}

// ListMembers returns every registrant, newest first.
func (r *Repository) ListMembers(ctx context.Context) ([]Member, error) {
	return r.queryMembers(ctx, `SELECT `+memberColumns+` FROM members ORDER BY created_at DESC`)
}

// ListSubmissions returns records that carry a project submission.
func (r *Repository) ListSubmissions(ctx context.Context) ([]Member, error) {
	return r.queryMembers(ctx, `
		SELECT `+memberColumns+` FROM members
		WHERE github_link IS NOT NULL
		ORDER BY submitted_at DESC`)
}

func (r *Repository) queryMembers(ctx context.Context, query string, args ...any) ([]Member, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

// CountByTrack aggregates registrants per track.
func (r *Repository) CountByTrack(ctx context.Context) (TrackCounts, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT COALESCE(development_track, ''), COUNT(*)
		FROM members
		GROUP BY development_track
	`)
	if err != nil {
		return TrackCounts{}, err
	}
	defer rows.Close()

	var counts TrackCounts
	for rows.Next() {
		var track string
		var n int
		if err := rows.Scan(&track, &n); err != nil {
			return TrackCounts{}, err
		}
		switch track {
		case TrackAndroid:
			counts.Android = n
		case TrackWeb:
			counts.Web = n
		case TrackML:
			counts.ML = n
		case TrackGame:
			counts.Game = n
		default:
			counts.Unassigned += n
		}
	}
	return counts, rows.Err()
}

// UpdateProfile writes the owner-editable fields and bumps updated_at.
func (r *Repository) UpdateProfile(ctx context.Context, id string, p ProfileUpdate) (Member, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE members
		SET full_name = $2, email = $3, student_id = $4, department = $5,
		    year_of_study = $6, contact_number = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING `+memberColumns+`
	`, id, p.FullName, p.Email, p.StudentID, p.Department, p.YearOfStudy, p.ContactNumber)
	m, err := scanMember(row)
	if err != nil && strings.Contains(err.Error(), "members_email_key") {
		return Member{}, ErrEmailTaken
	}
	return m, err
}

// SetTrack writes the development track. The guard on submitted_at makes the
// post-submission track lock authoritative here rather than in any UI.
func (r *Repository) SetTrack(ctx context.Context, id, track string, at time.Time) (Member, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE members
		SET development_track = $2, track_updated_at = $3, updated_at = NOW()
		WHERE id = $1 AND submitted_at IS NULL
		RETURNING `+memberColumns+`
	`, id, track, at)
	m, err := scanMember(row)
	if errors.Is(err, ErrNotFound) {
		// Either no such member or the row was excluded by the lock guard.
		if _, getErr := r.GetMember(ctx, id); getErr == nil {
			return Member{}, ErrTrackLocked
		}
		return Member{}, ErrNotFound
	}
	return m, err
}

// SetTaskCompleted marks the track task done.
func (r *Repository) SetTaskCompleted(ctx context.Context, id string, at time.Time) (Member, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE members
		SET task_completed = TRUE, task_completed_at = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+memberColumns+`
	`, id, at)
	return scanMember(row)
}

// SaveSubmission writes the submission fields once. Re-submission is refused
// by the submitted_at guard, and the review flags reset in the same statement.
func (r *Repository) SaveSubmission(ctx context.Context, id string, s Submission, at time.Time) (Member, error) {
	var liveURL *string
	if s.LiveURL != "" {
		liveURL = &s.LiveURL
	}
	row := r.db.QueryRowContext(ctx, `
		UPDATE members
		SET github_link = $2, live_url = $3, project_description = $4, submitted_at = $5,
		    submission_reviewed = FALSE, graded = FALSE, updated_at = NOW()
		WHERE id = $1 AND submitted_at IS NULL
		RETURNING `+memberColumns+`
	`, id, s.GithubLink, liveURL, s.ProjectDescription, at)
	m, err := scanMember(row)
	if errors.Is(err, ErrNotFound) {
		if _, getErr := r.GetMember(ctx, id); getErr == nil {
			return Member{}, ErrAlreadySubmitted
		}
		return Member{}, ErrNotFound
	}
	return m, err
}

// SetReviewed toggles the review flag. Turning it off clears graded in the
// same statement so graded never outlives reviewed.
func (r *Repository) SetReviewed(ctx context.Context, id string, reviewed bool) (Member, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE members
		SET submission_reviewed = $2,
		    graded = CASE WHEN $2 THEN graded ELSE FALSE END,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING `+memberColumns+`
	`, id, reviewed)
	return scanMember(row)
}

// SetGraded toggles the grade flag. The WHERE clause refuses grading an
// unreviewed submission, so the invariant holds under concurrent admins.
func (r *Repository) SetGraded(ctx context.Context, id string, graded bool) (Member, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE members
		SET graded = $2, updated_at = NOW()
		WHERE id = $1 AND ($2 = FALSE OR submission_reviewed)
		RETURNING `+memberColumns+`
	`, id, graded)
	m, err := scanMember(row)
	if errors.Is(err, ErrNotFound) {
		if _, getErr := r.GetMember(ctx, id); getErr == nil {
			return Member{}, ErrNotReviewed
		}
		return Member{}, ErrNotFound
	}
	return m, err
}

// SetPassword replaces the stored hash.
func (r *Repository) SetPassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE members SET password_hash = $2, updated_at = NOW() WHERE id = $1
	`, id, passwordHash)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateInquiry writes a contact inquiry record.
func (r *Repository) CreateInquiry(ctx context.Context, q ContactInquiry) (ContactInquiry, error) {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.Status == "" {
		q.Status = "new"
	}
	if q.Source == "" {
		q.Source = "contact_form"
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO contact_inquiries (id, name, email, message, status, source)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at
	`, q.ID, q.Name, q.Email, q.Message, q.Status, q.Source)
	if err := row.Scan(&q.CreatedAt); err != nil {
		return ContactInquiry{}, err
	}
	return q, nil
}

// GetInquiry returns one inquiry by id.
func (r *Repository) GetInquiry(ctx context.Context, id string) (ContactInquiry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, message, status, source, created_at
		FROM contact_inquiries WHERE id = $1
	`, id)
	var q ContactInquiry
	if err := row.Scan(&q.ID, &q.Name, &q.Email, &q.Message, &q.Status, &q.Source, &q.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ContactInquiry{}, ErrNotFound
		}
		return ContactInquiry{}, err
	}
	return q, nil
}

// ListInquiries returns all inquiries, newest first.
func (r *Repository) ListInquiries(ctx context.Context) ([]ContactInquiry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, message, status, source, created_at
		FROM contact_inquiries ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []ContactInquiry
	for rows.Next() {
		var q ContactInquiry
		if err := rows.Scan(&q.ID, &q.Name, &q.Email, &q.Message, &q.Status, &q.Source, &q.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, q)
	}
	return res, rows.Err()
}

// SetInquiryStatus records the delivery outcome for an inquiry.
func (r *Repository) SetInquiryStatus(ctx context.Context, id, status string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE contact_inquiries SET status = $2 WHERE id = $1`, id, status)
	return err
}

// SaveRefreshToken stores a refresh token for rotation checks.
func (r *Repository) SaveRefreshToken(ctx context.Context, memberID, token string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO refresh_tokens (token, member_id, expires_at)
		VALUES ($1, $2, $3)
	`, token, memberID, expiresAt)
	return err
}

// RefreshTokenValid returns the owning member id for a live token.
func (r *Repository) RefreshTokenValid(ctx context.Context, token string) (string, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT member_id FROM refresh_tokens
		WHERE token = $1 AND NOT revoked AND expires_at > NOW()
	`, token)
	var memberID string
	if err := row.Scan(&memberID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return memberID, nil
}

// RevokeRefreshToken marks a token revoked.
func (r *Repository) RevokeRefreshToken(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE refresh_tokens SET revoked = TRUE WHERE token = $1`, token)
	return err
}

// CreatePasswordReset stores a one-shot reset token.
func (r *Repository) CreatePasswordReset(ctx context.Context, token, memberID string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO password_resets (token, member_id, expires_at)
		VALUES ($1, $2, $3)
	`, token, memberID, expiresAt)
	return err
}

// ConsumePasswordReset redeems a reset token, returning the member id.
// The used guard makes each token single-shot.
func (r *Repository) ConsumePasswordReset(ctx context.Context, token string) (string, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE password_resets SET used = TRUE
		WHERE token = $1 AND NOT used AND expires_at > NOW()
		RETURNING member_id
	`, token)
	var memberID string
	if err := row.Scan(&memberID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return memberID, nil
}
