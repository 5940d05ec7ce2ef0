package services

import (
	"context"
	"time"

	"taskman/internal/apperr"
	"taskman/internal/models"
	"taskman/internal/repositories"
)

// TaskService defines the interface for task-related business logic.
type TaskService interface {
	Create(ctx context.Context, in models.TaskInput) (*models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, id int64, in models.TaskInput) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
}

type taskService struct {
	repo     repositories.TaskRepository
	resolver *TaskResolver
}

func NewTaskService(repo repositories.TaskRepository, resolver *TaskResolver) TaskService {
	return &taskService{repo: repo, resolver: resolver}
}

func (s *taskService) Create(ctx context.Context, in models.TaskInput) (*models.Task, error) {
	task, err := s.resolver.ResolveNew(ctx, in)
	if err != nil {
		return nil, err
	}
	task.CreatedAt = time.Now()
	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperr.NotFound("Task with id %d not found", id)
	}
	return task, nil
}

func (s *taskService) GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *taskService) Update(ctx context.Context, id int64, in models.TaskInput) (*models.Task, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := s.resolver.ResolveUpdate(ctx, current, in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *taskService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
