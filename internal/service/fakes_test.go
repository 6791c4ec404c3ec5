package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/Livia-1212/user-management-final/internal/domain"
	"github.com/Livia-1212/user-management-final/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository that enforces the same
// uniqueness rules as the real store.
type fakeUserRepo struct {
	mu    sync.Mutex
	users []*domain.User

	// pretend the next N nickname candidates are already taken
	nicknameTaken   int
	nicknameLookups int
	failNextCreate  error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{}
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failNextCreate != nil {
		err := r.failNextCreate
		r.failNextCreate = nil
		return err
	}

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
		if existing.Nickname == user.Nickname {
			return repository.ErrDuplicateNickname
		}
	}
	r.users = append(r.users, cloneUser(user))
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByNickname(ctx context.Context, nickname string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nicknameLookups++
	if r.nicknameTaken > 0 {
		r.nicknameTaken--
		return &domain.User{ID: uuid.New(), Nickname: nickname}, nil
	}
	for _, u := range r.users {
		if u.Nickname == nickname {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == user.ID {
			user.UpdatedAt = time.Now()
			r.users[i] = cloneUser(user)
			return nil
		}
	}
	return errors.New("user not found")
}

func (r *fakeUserRepo) ApplyPatch(ctx context.Context, id uuid.UUID, patch *domain.UserPatch) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID != id {
			continue
		}
		if patch.Email != nil {
			for _, other := range r.users {
				if other.ID != id && other.Email == *patch.Email {
					return 0, repository.ErrDuplicateEmail
				}
			}
			u.Email = *patch.Email
		}
		if patch.FirstName != nil {
			u.FirstName = patch.FirstName
		}
		if patch.LastName != nil {
			u.LastName = patch.LastName
		}
		if patch.Bio != nil {
			u.Bio = patch.Bio
		}
		if patch.ProfilePictureURL != nil {
			u.ProfilePictureURL = patch.ProfilePictureURL
		}
		if patch.LinkedinProfileURL != nil {
			u.LinkedinProfileURL = patch.LinkedinProfileURL
		}
		if patch.GithubProfileURL != nil {
			u.GithubProfileURL = patch.GithubProfileURL
		}
		if patch.Role != nil {
			u.Role = *patch.Role
		}
		if patch.IsProfessional != nil {
			u.IsProfessional = *patch.IsProfessional
			now := time.Now()
			u.ProfessionalStatusUpdatedAt = &now
		}
		u.UpdatedAt = time.Now()
		return 1, nil
	}
	return 0, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeUserRepo) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if offset >= len(r.users) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.users) {
		end = len(r.users)
	}
	page := make([]*domain.User, 0, end-offset)
	for _, u := range r.users[offset:end] {
		page = append(page, cloneUser(u))
	}
	return page, nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users), nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context, role domain.UserRole) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) CountInactiveBefore(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, u := range r.users {
		if u.LastLoginAt == nil || u.LastLoginAt.Before(cutoff) {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID == id {
			t := at
			u.LastLoginAt = &t
			u.UpdatedAt = time.Now()
			return 1, nil
		}
	}
	return 0, nil
}

// fakeRetentionRepo is an in-memory append-only snapshot store.
type fakeRetentionRepo struct {
	mu        sync.Mutex
	snapshots []*domain.RetentionSnapshot
}

func newFakeRetentionRepo() *fakeRetentionRepo {
	return &fakeRetentionRepo{}
}

func (r *fakeRetentionRepo) Create(ctx context.Context, snapshot *domain.RetentionSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *snapshot
	r.snapshots = append(r.snapshots, &c)
	return nil
}

func (r *fakeRetentionRepo) ListAll(ctx context.Context) ([]*domain.RetentionSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.RetentionSnapshot, 0, len(r.snapshots))
	for _, s := range r.snapshots {
		c := *s
		out = append(out, &c)
	}
	// most recent first
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// fakeEmailService records sent emails.
type fakeEmailService struct {
	mu            sync.Mutex
	verifications []string
	invitations   []string
	failSend      error
}

func newFakeEmailService() *fakeEmailService {
	return &fakeEmailService{}
}

func (s *fakeEmailService) SendVerificationEmail(ctx context.Context, to, nickname, verificationURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSend != nil {
		return s.failSend
	}
	s.verifications = append(s.verifications, to)
	return nil
}

func (s *fakeEmailService) SendInvitationEmail(ctx context.Context, to, invitationURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSend != nil {
		return s.failSend
	}
	s.invitations = append(s.invitations, to)
	return nil
}

func (s *fakeEmailService) verificationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.verifications)
}

func (s *fakeEmailService) invitationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.invitations)
}
