package services

import (
	"context"
	"strings"
	"time"

	"taskman/internal/apperr"
	"taskman/internal/models"
	"taskman/internal/repositories"
)

type StatusService interface {
	Create(ctx context.Context, name, slug string) (*models.TaskStatus, error)
	GetByID(ctx context.Context, id int64) (*models.TaskStatus, error)
	GetAll(ctx context.Context) ([]models.TaskStatus, error)
	Update(ctx context.Context, id int64, name, slug *string) (*models.TaskStatus, error)
	Delete(ctx context.Context, id int64) error
}

type statusService struct {
	repo  repositories.StatusRepository
	tasks repositories.TaskRepository
}

func NewStatusService(repo repositories.StatusRepository, tasks repositories.TaskRepository) StatusService {
	return &statusService{repo: repo, tasks: tasks}
}

func (s *statusService) Create(ctx context.Context, name, slug string) (*models.TaskStatus, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(slug) == "" {
		return nil, apperr.Invalid("status name and slug are required")
	}
	status := &models.TaskStatus{Name: name, Slug: slug, CreatedAt: time.Now()}
	if err := s.repo.Store(ctx, status); err != nil {
		return nil, err
	}
	return status, nil
}

func (s *statusService) GetByID(ctx context.Context, id int64) (*models.TaskStatus, error) {
	status, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, apperr.NotFound("Task status with id %d not found", id)
	}
	return status, nil
}

func (s *statusService) GetAll(ctx context.Context) ([]models.TaskStatus, error) {
	return s.repo.FindAll(ctx)
}

func (s *statusService) Update(ctx context.Context, id int64, name, slug *string) (*models.TaskStatus, error) {
	status, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		status.Name = *name
	}
	if slug != nil {
		status.Slug = *slug
	}
	if err := s.repo.Update(ctx, status); err != nil {
		return nil, err
	}
	return status, nil
}

// Delete refuses to remove a status still referenced by tasks.
func (s *statusService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	inUse, err := s.tasks.ExistsByStatusID(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return apperr.Integrity("Cannot delete task status with tasks")
	}
	return s.repo.Delete(ctx, id)
}
