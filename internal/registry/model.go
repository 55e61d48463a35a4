package registry

import "time"

// Development tracks a member can pick. Mirrors the four recruitment
// specializations offered by the club.
const (
	TrackAndroid = "android"
	TrackWeb     = "web"
	TrackML      = "ml"
	TrackGame    = "game"
)

// Tracks lists all valid track values in display order.
var Tracks = []string{TrackAndroid, TrackWeb, TrackML, TrackGame}

// ValidTrack reports whether t is one of the four known tracks.
func ValidTrack(t string) bool {
	for _, known := range Tracks {
		if t == known {
			return true
		}
	}
	return false
}

// Submission lifecycle states derived from the record flags.
const (
	StatusNotSubmitted = "not_submitted"
	StatusUnderReview  = "under_review"
	StatusReviewed     = "reviewed"
	StatusGraded       = "graded"
)

// Roles carried in the session token.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Member is one registrant record. Profile fields are owner-editable,
// the review flags are admin-only, submission fields are written once.
type Member struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	PasswordHash  string `json:"-"`
	FullName      string `json:"fullName"`
	StudentID     string `json:"studentId"`
	Department    string `json:"department"`
	YearOfStudy   int    `json:"yearOfStudy"`
	ContactNumber string `json:"contactNumber"`
	Role          string `json:"role"`

	DevelopmentTrack *string    `json:"developmentTrack"`
	TrackUpdatedAt   *time.Time `json:"trackUpdatedAt,omitempty"`

	TaskCompleted   bool       `json:"taskCompleted"`
	TaskCompletedAt *time.Time `json:"taskCompletedAt,omitempty"`

	GithubLink         *string    `json:"githubLink"`
	LiveURL            *string    `json:"liveUrl"`
	ProjectDescription *string    `json:"projectDescription"`
	SubmittedAt        *time.Time `json:"submittedAt"`

	SubmissionReviewed bool `json:"submissionReviewed"`
	Graded             bool `json:"graded"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Status derives the lifecycle state from the record flags.
// Graded wins over reviewed; anything without a submission is not_submitted.
func (m *Member) Status() string {
	switch {
	case m.SubmittedAt == nil:
		return StatusNotSubmitted
	case m.Graded:
		return StatusGraded
	case m.SubmissionReviewed:
		return StatusReviewed
	default:
		return StatusUnderReview
	}
}

// ContactInquiry is the write-once record behind the contact form.
// The worker flips Status from new to sent or failed after relay.
type ContactInquiry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}

// TrackCounts holds per-track registrant totals for the admin console.
type TrackCounts struct {
	Android    int `json:"android"`
	Web        int `json:"web"`
	ML         int `json:"ml"`
	Game       int `json:"game"`
	Unassigned int `json:"unassigned"`
}
