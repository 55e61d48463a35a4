package registry

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store used by tests and local development.
// It enforces the same invariants as the Postgres repository.
type MemStore struct {
	mu        sync.Mutex
	members   map[string]Member
	inquiries map[string]ContactInquiry
	refresh   map[string]refreshEntry
	resets    map[string]resetEntry
}

type refreshEntry struct {
	memberID  string
	expiresAt time.Time
	revoked   bool
}

type resetEntry struct {
	memberID  string
	expiresAt time.Time
	used      bool
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		members:   make(map[string]Member),
		inquiries: make(map[string]ContactInquiry),
		refresh:   make(map[string]refreshEntry),
		resets:    make(map[string]resetEntry),
	}
}

var _ Store = (*MemStore)(nil)

func (s *MemStore) CreateMember(_ context.Context, m Member) (Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.members {
		if existing.Email == m.Email {
			return Member{}, ErrEmailTaken
		}
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Role == "" {
		m.Role = RoleMember
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	s.members[m.ID] = m
	return m, nil
}

func (s *MemStore) GetMember(_ context.Context, id string) (Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.members[id]
	if !ok {
		return Member{}, ErrNotFound
	}
	return m, nil
}

func (s *MemStore) GetMemberByEmail(_ context.Context, email string) (Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.members {
		if m.Email == email {
			return m, nil
		}
	}
	return Member{}, ErrNotFound
}

func (s *MemStore) ListMembers(_ context.Context) ([]Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]Member, 0, len(s.members))
	for _, m := range s.members {
		res = append(res, m)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (s *MemStore) ListSubmissions(ctx context.Context) ([]Member, error) {
	all, err := s.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	var res []Member
	for _, m := range all {
		if m.GithubLink != nil {
			res = append(res, m)
		}
	}
	return res, nil
}

func (s *MemStore) CountByTrack(_ context.Context) (TrackCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var counts TrackCounts
	for _, m := range s.members {
		if m.DevelopmentTrack == nil {
			counts.Unassigned++
			continue
		}
		switch *m.DevelopmentTrack {
		case TrackAndroid:
			counts.Android++
		case TrackWeb:
			counts.Web++
		case TrackML:
			counts.ML++
		case TrackGame:
			counts.Game++
		default:
			counts.Unassigned++
		}
	}
	return counts, nil
}

func (s *MemStore) mutate(id string, fn func(*Member) error) (Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.members[id]
	if !ok {
		return Member{}, ErrNotFound
	}
	if err := fn(&m); err != nil {
		return Member{}, err
	}
	m.UpdatedAt = time.Now().UTC()
	s.members[id] = m
	return m, nil
}

func (s *MemStore) UpdateProfile(_ context.Context, id string, p ProfileUpdate) (Member, error) {
	return s.mutate(id, func(m *Member) error {
		for otherID, other := range s.members {
			if otherID != id && other.Email == p.Email {
				return ErrEmailTaken
			}
		}
		m.FullName = p.FullName
		m.Email = p.Email
		m.StudentID = p.StudentID
		m.Department = p.Department
		m.YearOfStudy = p.YearOfStudy
		m.ContactNumber = p.ContactNumber
		return nil
	})
}

func (s *MemStore) SetTrack(_ context.Context, id, track string, at time.Time) (Member, error) {
	return s.mutate(id, func(m *Member) error {
		if m.SubmittedAt != nil {
			return ErrTrackLocked
		}
		m.DevelopmentTrack = &track
		m.TrackUpdatedAt = &at
		return nil
	})
}

func (s *MemStore) SetTaskCompleted(_ context.Context, id string, at time.Time) (Member, error) {
	return s.mutate(id, func(m *Member) error {
		m.TaskCompleted = true
		m.TaskCompletedAt = &at
		return nil
	})
}

func (s *MemStore) SaveSubmission(_ context.Context, id string, sub Submission, at time.Time) (Member, error) {
	return s.mutate(id, func(m *Member) error {
		if m.SubmittedAt != nil {
			return ErrAlreadySubmitted
		}
		m.GithubLink = &sub.GithubLink
		if sub.LiveURL != "" {
			live := sub.LiveURL
			m.LiveURL = &live
		} else {
			m.LiveURL = nil
		}
		m.ProjectDescription = &sub.ProjectDescription
		m.SubmittedAt = &at
		m.SubmissionReviewed = false
		m.Graded = false
		return nil
	})
}

func (s *MemStore) SetReviewed(_ context.Context, id string, reviewed bool) (Member, error) {
	return s.mutate(id, func(m *Member) error {
		m.SubmissionReviewed = reviewed
		if !reviewed {
			m.Graded = false
		}
		return nil
	})
}

func (s *MemStore) SetGraded(_ context.Context, id string, graded bool) (Member, error) {
	return s.mutate(id, func(m *Member) error {
		if graded && !m.SubmissionReviewed {
			return ErrNotReviewed
		}
		m.Graded = graded
		return nil
	})
}

func (s *MemStore) SetPassword(_ context.Context, id, passwordHash string) error {
	_, err := s.mutate(id, func(m *Member) error {
		m.PasswordHash = passwordHash
		return nil
	})
	return err
}

func (s *MemStore) CreateInquiry(_ context.Context, q ContactInquiry) (ContactInquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.Status == "" {
		q.Status = "new"
	}
	if q.Source == "" {
		q.Source = "contact_form"
	}
	q.CreatedAt = time.Now().UTC()
	s.inquiries[q.ID] = q
	return q, nil
}

func (s *MemStore) GetInquiry(_ context.Context, id string) (ContactInquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.inquiries[id]
	if !ok {
		return ContactInquiry{}, ErrNotFound
	}
	return q, nil
}

func (s *MemStore) ListInquiries(_ context.Context) ([]ContactInquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]ContactInquiry, 0, len(s.inquiries))
	for _, q := range s.inquiries {
		res = append(res, q)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (s *MemStore) SetInquiryStatus(_ context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.inquiries[id]
	if !ok {
		return ErrNotFound
	}
	q.Status = status
	s.inquiries[id] = q
	return nil
}

func (s *MemStore) SaveRefreshToken(_ context.Context, memberID, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh[token] = refreshEntry{memberID: memberID, expiresAt: expiresAt}
	return nil
}

func (s *MemStore) RefreshTokenValid(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.refresh[token]
	if !ok || e.revoked || time.Now().After(e.expiresAt) {
		return "", ErrNotFound
	}
	return e.memberID, nil
}

func (s *MemStore) RevokeRefreshToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.refresh[token]; ok {
		e.revoked = true
		s.refresh[token] = e
	}
	return nil
}

func (s *MemStore) CreatePasswordReset(_ context.Context, token, memberID string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets[token] = resetEntry{memberID: memberID, expiresAt: expiresAt}
	return nil
}

func (s *MemStore) ConsumePasswordReset(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.resets[token]
	if !ok || e.used || time.Now().After(e.expiresAt) {
		return "", ErrNotFound
	}
	e.used = true
	s.resets[token] = e
	return e.memberID, nil
}
