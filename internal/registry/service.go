package registry

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ValidationError marks a field-level input failure. Handlers map these to
// 400 responses with the message shown inline to the user.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string { return e.Msg }

func invalid(msg string) error { return ValidationError{Msg: msg} }

var (
	emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitRx = regexp.MustCompile(`\D`)
)

// RegisterInput is the full registration form.
type RegisterInput struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	StudentID       string `json:"studentId"`
	Department      string `json:"department"`
	YearOfStudy     int    `json:"yearOfStudy,string"`
	ContactNumber   string `json:"contactNumber"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	AgreeToTerms    bool   `json:"agreeToTerms"`
}

// SubmissionInput is the one-time project submission form.
type SubmissionInput struct {
	GithubLink         string `json:"githubLink"`
	LiveURL            string `json:"liveUrl"`
	ProjectDescription string `json:"projectDescription"`
}

// ContactInput is the public contact form.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// TimelineStep is one entry of the registration progress timeline.
type TimelineStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"` // completed | current | pending
}

// Service owns every record mutation. Invariants that the original product
// only expressed as disabled UI controls (track lock, graded requires
// reviewed, single submission) are rejected here.
type Service struct {
	store  Store
	admins map[string]bool
}

// NewService creates a service. Emails in adminEmails are granted the admin
// role when they register.
func NewService(store Store, adminEmails []string) *Service {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(e)] = true
	}
	return &Service{store: store, admins: admins}
}

// Store exposes the underlying store for read-side consumers.
func (s *Service) Store() Store { return s.store }

func validateRegister(in RegisterInput) error {
	switch {
	case strings.TrimSpace(in.FullName) == "":
		return invalid("Full name is required")
	case strings.TrimSpace(in.Email) == "":
		return invalid("Email is required")
	case strings.TrimSpace(in.StudentID) == "":
		return invalid("Student ID is required")
	case in.Department == "":
		return invalid("Department is required")
	case in.YearOfStudy == 0:
		return invalid("Year of study is required")
	case in.YearOfStudy < 1 || in.YearOfStudy > 4:
		return invalid("Please select a valid year of study")
	case strings.TrimSpace(in.ContactNumber) == "":
		return invalid("Contact number is required")
	}
	if len(digitRx.ReplaceAllString(in.ContactNumber, "")) != 10 {
		return invalid("Please enter a valid 10-digit contact number")
	}
	if len(in.Password) < 6 {
		return invalid("Password must be at least 6 characters long")
	}
	if in.Password != in.ConfirmPassword {
		return invalid("Passwords do not match")
	}
	if !in.AgreeToTerms {
		return invalid("You must agree to the terms and conditions")
	}
	return nil
}

// Register validates the form, hashes the password, and creates the record
// with track, submission, and review fields at their zero state.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Member, error) {
	if err := validateRegister(in); err != nil {
		return Member{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Member{}, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	role := RoleMember
	if s.admins[email] {
		role = RoleAdmin
	}

	return s.store.CreateMember(ctx, Member{
		Email:         email,
		PasswordHash:  string(hash),
		FullName:      strings.TrimSpace(in.FullName),
		StudentID:     strings.TrimSpace(in.StudentID),
		Department:    in.Department,
		YearOfStudy:   in.YearOfStudy,
		ContactNumber: strings.TrimSpace(in.ContactNumber),
		Role:          role,
	})
}

// Authenticate checks credentials and returns the member.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Member, error) {
	m, err := s.store.GetMemberByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return Member{}, invalid("Invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)) != nil {
		return Member{}, invalid("Invalid email or password")
	}
	return m, nil
}

// UpdateProfile applies owner edits after field validation.
func (s *Service) UpdateProfile(ctx context.Context, id string, p ProfileUpdate) (Member, error) {
	switch {
	case strings.TrimSpace(p.FullName) == "":
		return Member{}, invalid("Full name is required")
	case strings.TrimSpace(p.Email) == "":
		return Member{}, invalid("Email is required")
	case !emailRx.MatchString(p.Email):
		return Member{}, invalid("Please enter a valid email address")
	case strings.TrimSpace(p.StudentID) == "":
		return Member{}, invalid("Student ID is required")
	case p.Department == "":
		return Member{}, invalid("Department is required")
	case p.YearOfStudy == 0:
		return Member{}, invalid("Year of study is required")
	case p.YearOfStudy < 1 || p.YearOfStudy > 4:
		return Member{}, invalid("Please select a valid year of study")
	case strings.TrimSpace(p.ContactNumber) == "":
		return Member{}, invalid("Contact number is required")
	}
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	return s.store.UpdateProfile(ctx, id, p)
}

// SelectTrack sets the development track. Reselecting the current value is a
// no-op that does not bump trackUpdatedAt. Locked once a submission exists.
func (s *Service) SelectTrack(ctx context.Context, id, track string) (Member, error) {
	if !ValidTrack(track) {
		return Member{}, invalid("Please select a valid development track")
	}
	m, err := s.store.GetMember(ctx, id)
	if err != nil {
		return Member{}, err
	}
	if m.SubmittedAt != nil {
		return Member{}, ErrTrackLocked
	}
	if m.DevelopmentTrack != nil && *m.DevelopmentTrack == track {
		return m, nil
	}
	return s.store.SetTrack(ctx, id, track, time.Now().UTC())
}

// CompleteTask marks the assigned task done. Requires a selected track.
func (s *Service) CompleteTask(ctx context.Context, id string) (Member, error) {
	m, err := s.store.GetMember(ctx, id)
	if err != nil {
		return Member{}, err
	}
	if m.DevelopmentTrack == nil {
		return Member{}, invalid("Please select a development track first")
	}
	if m.TaskCompleted {
		return m, nil
	}
	return s.store.SetTaskCompleted(ctx, id, time.Now().UTC())
}

func validateSubmission(in SubmissionInput) error {
	if strings.TrimSpace(in.GithubLink) == "" {
		return invalid("GitHub repository link is required")
	}
	if u, err := url.Parse(in.GithubLink); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid("Please enter a valid GitHub URL")
	}
	if len(strings.TrimSpace(in.ProjectDescription)) < 10 {
		return invalid("Project description must be at least 10 characters long")
	}
	if in.LiveURL != "" {
		if u, err := url.Parse(in.LiveURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return invalid("Please enter a valid live demo URL")
		}
	}
	return nil
}

// Submit records the one-time project submission. Validation failures leave
// the record untouched; the store refuses a second submission.
func (s *Service) Submit(ctx context.Context, id string, in SubmissionInput) (Member, error) {
	if err := validateSubmission(in); err != nil {
		return Member{}, err
	}
	return s.store.SaveSubmission(ctx, id, Submission{
		GithubLink:         strings.TrimSpace(in.GithubLink),
		LiveURL:            strings.TrimSpace(in.LiveURL),
		ProjectDescription: strings.TrimSpace(in.ProjectDescription),
	}, time.Now().UTC())
}

// SetReviewed toggles the admin review flag. Turning review off cascades a
// graded reset inside the store, in one operation.
func (s *Service) SetReviewed(ctx context.Context, id string, reviewed bool) (Member, error) {
	m, err := s.store.GetMember(ctx, id)
	if err != nil {
		return Member{}, err
	}
	if m.SubmittedAt == nil {
		return Member{}, invalid("Member has no submission to review")
	}
	return s.store.SetReviewed(ctx, id, reviewed)
}

// SetGraded toggles the admin grade flag. Grading an unreviewed submission
// is refused by the store.
func (s *Service) SetGraded(ctx context.Context, id string, graded bool) (Member, error) {
	m, err := s.store.GetMember(ctx, id)
	if err != nil {
		return Member{}, err
	}
	if m.SubmittedAt == nil {
		return Member{}, invalid("Member has no submission to grade")
	}
	return s.store.SetGraded(ctx, id, graded)
}

// ResetPassword redeems a reset token and installs a new password.
func (s *Service) ResetPassword(ctx context.Context, token, password, confirm string) error {
	if len(password) < 6 {
		return invalid("Password must be at least 6 characters long")
	}
	if password != confirm {
		return invalid("Passwords do not match")
	}
	memberID, err := s.store.ConsumePasswordReset(ctx, token)
	if err != nil {
		return invalid("Reset link is invalid or has expired")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.store.SetPassword(ctx, memberID, string(hash))
}

// NewInquiry validates and stores a contact-form inquiry. The checks mirror
// the public endpoint contract: presence first, then the email shape.
func (s *Service) NewInquiry(ctx context.Context, in ContactInput) (ContactInquiry, error) {
	if in.Name == "" || in.Email == "" || in.Message == "" {
		return ContactInquiry{}, invalid("All fields are required")
	}
	if !emailRx.MatchString(in.Email) {
		return ContactInquiry{}, invalid("Invalid email format")
	}
	return s.store.CreateInquiry(ctx, ContactInquiry{
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
	})
}

// Timeline derives the linear progress steps from the record flags.
// The first step not yet completed is marked current.
func Timeline(m Member) []TimelineStep {
	type milestone struct {
		title, desc string
		done        bool
	}
	milestones := []milestone{
		{"Create Account", "Sign up with your email and complete the registration form", true},
		{"Select Development Track", "Pick one of Android, Web, ML, or Game development", m.DevelopmentTrack != nil},
		{"Complete Your Task", "Work through the assigned task for your chosen track", m.TaskCompleted},
		{"Submit Your Project", "Share your GitHub repository link and project description", m.SubmittedAt != nil},
		{"Submission Review", "The admin team reviews your submitted project", m.SubmissionReviewed},
		{"Final Grade", "Your submission is graded and recruitment completes", m.Graded},
	}

	steps := make([]TimelineStep, len(milestones))
	currentSet := false
	for i, ms := range milestones {
		status := "pending"
		if ms.done {
			status = "completed"
		} else if !currentSet {
			status = "current"
			currentSet = true
		}
		steps[i] = TimelineStep{Title: ms.title, Description: ms.desc, Status: status}
	}
	return steps
}
