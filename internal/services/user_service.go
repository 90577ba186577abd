package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"taskflow/internal/models"
	"taskflow/internal/repositories"
)

type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, in models.UserInput) (*models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id string) error
	// Login answers ErrInvalidCredentials for both an unknown loginId and a wrong password.
	Login(ctx context.Context, req models.LoginRequest) (*models.User, error)
}

type userService struct {
	repo        repositories.UserRepository
	mailer      Mailer
	authService AuthService
	loginURL    string
	log         *zap.Logger
}

// NewUserService wires the team directory. mailer may be nil, in which case
// no invitation is sent.
func NewUserService(repo repositories.UserRepository, mailer Mailer, authService AuthService, loginURL string, log *zap.Logger) UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &userService{
		repo:        repo,
		mailer:      mailer,
		authService: authService,
		loginURL:    loginURL,
		log:         log.Named("user"),
	}
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *userService) Create(ctx context.Context, in models.UserInput) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	user := models.NewUser(in)

	hashed, err := s.authService.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hashed

	if err := s.repo.Create(ctx, &user); err != nil {
		return nil, translate(err, models.ErrUserNotFound)
	}
	s.log.Info("[user][create] ok", zap.String("id", user.ID), zap.String("login_id", user.LoginID))

	s.sendInvitation(ctx, user, in.Password)
	return &user, nil
}

// sendInvitation warns but does not fail creation.
func (s *userService) sendInvitation(ctx context.Context, user models.User, password string) {
	if s.mailer == nil {
		return
	}
	msg, err := InvitationMessage(Invitation{
		Name:     user.Name,
		Email:    user.Email,
		LoginID:  user.LoginID,
		Password: password,
		LoginURL: s.loginURL,
	}, time.Now())
	if err == nil {
		err = s.mailer.Send(ctx, msg)
	}
	if err != nil {
		s.log.Warn("[user][invite] failed to send invitation", zap.String("email", user.Email), zap.Error(err))
		return
	}
	s.log.Info("[user][invite] sent", zap.String("email", user.Email))
}

func (s *userService) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, models.ErrUserNotFound)
	}
	if err := user.Apply(patch); err != nil {
		return nil, err
	}
	if patch.Password != nil {
		hashed, err := s.authService.HashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, translate(err, models.ErrUserNotFound)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return translate(err, models.ErrUserNotFound)
	}
	s.log.Info("[user][delete] ok", zap.String("id", id))
	return nil
}

// dummyHash keeps the unknown-loginId path as slow as a real comparison.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3Tq5Zc2V4yEJ2D1VhGbZ0W6"

func (s *userService) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	user, err := s.repo.FindByLoginID(ctx, req.LoginID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		_, _ = s.authService.CheckPassword(dummyHash, req.Password)
		return nil, models.ErrInvalidCredentials
	}
	ok, err := s.authService.CheckPassword(user.PasswordHash, req.Password)
	if err != nil || !ok {
		if err != nil {
			s.log.Warn("[user][login] unreadable password hash", zap.String("id", user.ID), zap.Error(err))
		}
		return nil, models.ErrInvalidCredentials
	}
	return user, nil
}
