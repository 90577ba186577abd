package workspace

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"taskflow/internal/client"
	"taskflow/internal/models"
)

// TeamAPI is the part of the TaskFlow API the team store talks to.
type TeamAPI interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, in models.UserInput) (*models.User, error)
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// Invite is what the team screen collects before sending an invitation.
type Invite struct {
	Name     string
	Email    string
	LoginID  string
	Password string
	Role     string
}

type TeamStore struct {
	api TeamAPI
	log *zap.Logger
	now func() time.Time

	mu      sync.Mutex
	members []models.User
	pending queue
}

func NewTeamStore(api TeamAPI, log *zap.Logger) *TeamStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &TeamStore{api: api, log: log.Named("workspace.team"), now: time.Now}
}

func (s *TeamStore) Load(ctx context.Context) error {
	members, err := s.api.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("load team: %w", err)
	}
	s.mu.Lock()
	s.members = members
	s.mu.Unlock()
	return nil
}

func (s *TeamStore) Members() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, len(s.members))
	copy(out, s.members)
	return out
}

func (s *TeamStore) Member(id string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.members[i], true
	}
	return models.User{}, false
}

func (s *TeamStore) Pending() []PendingOp {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.snapshot()
}

// AddMember adds an active member.
func (s *TeamStore) AddMember(ctx context.Context, in models.UserInput) (*models.User, error) {
	in.Status = models.MemberActive
	return s.create(ctx, in)
}

// InviteMember adds a member in the Invited state; the server mails the
// credentials. A taken email or Login ID yields ErrAlreadyInTeam.
func (s *TeamStore) InviteMember(ctx context.Context, inv Invite) (*models.User, error) {
	u, err := s.create(ctx, models.UserInput{
		Name:     inv.Name,
		Email:    inv.Email,
		LoginID:  inv.LoginID,
		Password: inv.Password,
		Role:     inv.Role,
		Avatar:   "",
		Status:   models.MemberInvited,
	})
	if client.IsDuplicate(err) {
		return nil, fmt.Errorf("%w: %v", ErrAlreadyInTeam, err)
	}
	return u, err
}

func (s *TeamStore) create(ctx context.Context, in models.UserInput) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	op := s.pending.push(OpAddMember, "", s.now())
	temp := models.NewUser(in)
	temp.ID = op.ID
	temp.CreatedAt, temp.UpdatedAt = op.StartedAt, op.StartedAt
	s.members = append(s.members, temp)
	s.mu.Unlock()

	saved, err := s.api.CreateUser(ctx, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.done(op.ID)
	if err != nil {
		s.remove(op.ID)
		s.log.Warn("[workspace][add_member] failed", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}
	if i := s.indexOf(op.ID); i >= 0 {
		s.members[i] = *saved
	} else {
		s.members = append(s.members, *saved)
	}
	return saved, nil
}

func (s *TeamStore) UpdateMember(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, ErrMemberNotFound
	}
	prior := s.members[i]
	next := prior
	if err := next.Apply(patch); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	op := s.pending.push(OpUpdateMember, id, s.now())
	s.members[i] = next
	s.mu.Unlock()

	saved, err := s.api.UpdateUser(ctx, id, patch)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.done(op.ID)
	if err != nil {
		s.restore(prior, i)
		s.log.Warn("[workspace][update_member] failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if j := s.indexOf(id); j >= 0 {
		s.members[j] = *saved
	}
	return saved, nil
}

func (s *TeamStore) DeleteMember(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return ErrMemberNotFound
	}
	prior := s.members[i]
	op := s.pending.push(OpDeleteMember, id, s.now())
	s.members = append(s.members[:i:i], s.members[i+1:]...)
	s.mu.Unlock()

	err := s.api.DeleteUser(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.done(op.ID)
	if err != nil {
		s.restore(prior, i)
		s.log.Warn("[workspace][delete_member] failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *TeamStore) indexOf(id string) int {
	for i := range s.members {
		if s.members[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *TeamStore) remove(id string) {
	if i := s.indexOf(id); i >= 0 {
		s.members = append(s.members[:i], s.members[i+1:]...)
	}
}

func (s *TeamStore) restore(u models.User, at int) {
	if i := s.indexOf(u.ID); i >= 0 {
		s.members[i] = u
		return
	}
	at = min(max(at, 0), len(s.members))
	s.members = append(s.members[:at], append([]models.User{u}, s.members[at:]...)...)
}
