package services

import (
	"context"
	"strings"
	"time"

	"taskman/internal/apperr"
	"taskman/internal/models"
	"taskman/internal/repositories"
)

type LabelService interface {
	Create(ctx context.Context, name string) (*models.Label, error)
	GetByID(ctx context.Context, id int64) (*models.Label, error)
	GetAll(ctx context.Context) ([]models.Label, error)
	Update(ctx context.Context, id int64, name string) (*models.Label, error)
	Delete(ctx context.Context, id int64) error
}

type labelService struct {
	repo  repositories.LabelRepository
	tasks repositories.TaskRepository
}

func NewLabelService(repo repositories.LabelRepository, tasks repositories.TaskRepository) LabelService {
	return &labelService{repo: repo, tasks: tasks}
}

func (s *labelService) Create(ctx context.Context, name string) (*models.Label, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Invalid("label name is required")
	}
	label := &models.Label{Name: name, CreatedAt: time.Now()}
	if err := s.repo.Store(ctx, label); err != nil {
		return nil, err
	}
	return label, nil
}

func (s *labelService) GetByID(ctx context.Context, id int64) (*models.Label, error) {
	label, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if label == nil {
		return nil, apperr.NotFound("Label with id %d not found", id)
	}
	return label, nil
}

func (s *labelService) GetAll(ctx context.Context) ([]models.Label, error) {
	return s.repo.FindAll(ctx)
}

func (s *labelService) Update(ctx context.Context, id int64, name string) (*models.Label, error) {
	label, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Invalid("label name is required")
	}
	label.Name = name
	if err := s.repo.Update(ctx, label); err != nil {
		return nil, err
	}
	return label, nil
}

// Delete refuses to remove a label still attached to tasks.
func (s *labelService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	inUse, err := s.tasks.ExistsWithLabel(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return apperr.Integrity("Cannot delete label with tasks")
	}
	return s.repo.Delete(ctx, id)
}
