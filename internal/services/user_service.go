package services

import (
	"context"
	"log"
	"strings"
	"time"

	"taskman/internal/apperr"
	"taskman/internal/models"
	"taskman/internal/repositories"
)

type UserService interface {
	Create(ctx context.Context, in models.UserInput) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id int64, in models.UserInput) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	repo         repositories.UserRepository
	tasks        repositories.TaskRepository
	authService  AuthService
	emailService EmailService
}

func NewUserService(
	repo repositories.UserRepository,
	tasks repositories.TaskRepository,
	authService AuthService,
	emailService EmailService,
) UserService {
	return &userService{
		repo:         repo,
		tasks:        tasks,
		authService:  authService,
		emailService: emailService,
	}
}

func (s *userService) Create(ctx context.Context, in models.UserInput) (*models.User, error) {
	if in.Email == nil || strings.TrimSpace(*in.Email) == "" {
		return nil, apperr.Invalid("email is required")
	}
	if in.Password == nil || strings.TrimSpace(*in.Password) == "" {
		return nil, apperr.Invalid("password is required")
	}

	hash, err := s.authService.HashPassword(*in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        strings.TrimSpace(*in.Email),
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.FirstName); err != nil {
			// warn but do not fail creation
			log.Printf("[user][create] warning: failed to send welcome email to %s: %v", user.Email, err)
		}
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("User with id %d not found", id)
	}
	return user, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *userService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.repo.FindAll(ctx)
}

// Update applies a sparse update; a present password is re-hashed.
func (s *userService) Update(ctx context.Context, id int64, in models.UserInput) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		user.Email = strings.TrimSpace(*in.Email)
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Password != nil && strings.TrimSpace(*in.Password) != "" {
		hash, err := s.authService.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete refuses to remove a user who is still assigned to tasks.
func (s *userService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	assigned, err := s.tasks.ExistsByAssigneeID(ctx, id)
	if err != nil {
		return err
	}
	if assigned {
		return apperr.Integrity("Cannot delete user with tasks")
	}
	return s.repo.Delete(ctx, id)
}
