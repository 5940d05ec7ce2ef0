package services

import (
	"context"
	"strings"

	"taskman/internal/apperr"
	"taskman/internal/models"
	"taskman/internal/repositories"
)

// DefaultTaskTitle is substituted when a task is created without a usable
// title.
const DefaultTaskTitle = "Untitled Task"

// TaskResolver turns reference fields of an inbound task payload (status
// id/slug, assignee id, label ids) into checked links against persisted
// entities. It performs read-only lookups only; persistence stays with the
// caller.
type TaskResolver struct {
	statuses          repositories.StatusRepository
	users             repositories.UserRepository
	labels            repositories.LabelRepository
	defaultStatusSlug string
}

func NewTaskResolver(
	statuses repositories.StatusRepository,
	users repositories.UserRepository,
	labels repositories.LabelRepository,
	defaultStatusSlug string,
) *TaskResolver {
	return &TaskResolver{
		statuses:          statuses,
		users:             users,
		labels:            labels,
		defaultStatusSlug: defaultStatusSlug,
	}
}

// ResolveNew builds a fully-populated task from inbound fields, applying
// create defaults: blank title becomes DefaultTaskTitle, absent content
// becomes "", absent status falls back to the configured default slug,
// absent labels become an empty set.
func (r *TaskResolver) ResolveNew(ctx context.Context, in models.TaskInput) (*models.Task, error) {
	status, err := r.resolveStatus(ctx, in, true)
	if err != nil {
		return nil, err
	}

	var assigneeID *int64
	if in.AssigneeID != nil {
		assignee, err := r.resolveAssignee(ctx, *in.AssigneeID)
		if err != nil {
			return nil, err
		}
		assigneeID = &assignee.ID
	}

	labelIDs := []int64{}
	if in.LabelIDs != nil {
		labelIDs, err = r.resolveLabels(ctx, *in.LabelIDs)
		if err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		Title:      DefaultTaskTitle,
		StatusID:   status.ID,
		StatusSlug: status.Slug,
		AssigneeID: assigneeID,
		LabelIDs:   labelIDs,
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		task.Title = *in.Title
	}
	if in.Content != nil {
		task.Content = *in.Content
	}
	return task, nil
}

// ResolveUpdate applies a sparse update to a copy of current: fields absent
// from the input keep their existing values, a present label list fully
// replaces the old set (an empty list clears it). All references are
// resolved before any field is assigned, so a failed lookup leaves the
// current entity untouched.
func (r *TaskResolver) ResolveUpdate(ctx context.Context, current *models.Task, in models.TaskInput) (*models.Task, error) {
	// resolve phase
	var status *models.TaskStatus
	if in.StatusID != nil || (in.StatusSlug != nil && strings.TrimSpace(*in.StatusSlug) != "") {
		resolved, err := r.resolveStatus(ctx, in, false)
		if err != nil {
			return nil, err
		}
		status = resolved
	}

	var assigneeID *int64
	if in.AssigneeID != nil {
		assignee, err := r.resolveAssignee(ctx, *in.AssigneeID)
		if err != nil {
			return nil, err
		}
		assigneeID = &assignee.ID
	}

	var labelIDs []int64
	if in.LabelIDs != nil {
		resolved, err := r.resolveLabels(ctx, *in.LabelIDs)
		if err != nil {
			return nil, err
		}
		labelIDs = resolved
	}

	// assign phase
	updated := *current
	updated.LabelIDs = append([]int64(nil), current.LabelIDs...)
	if in.Title != nil {
		updated.Title = *in.Title
	}
	if in.Content != nil {
		updated.Content = *in.Content
	}
	if status != nil {
		updated.StatusID = status.ID
		updated.StatusSlug = status.Slug
	}
	if assigneeID != nil {
		updated.AssigneeID = assigneeID
	}
	if in.LabelIDs != nil {
		updated.LabelIDs = labelIDs
	}
	return &updated, nil
}

// resolveStatus looks up a status by id, then by slug, then (create path
// only) by the configured default slug.
func (r *TaskResolver) resolveStatus(ctx context.Context, in models.TaskInput, fallbackToDefault bool) (*models.TaskStatus, error) {
	if in.StatusID != nil {
		status, err := r.statuses.FindByID(ctx, *in.StatusID)
		if err != nil {
			return nil, err
		}
		if status == nil {
			return nil, apperr.NotFound("Task status with id %d not found", *in.StatusID)
		}
		return status, nil
	}
	if in.StatusSlug != nil && strings.TrimSpace(*in.StatusSlug) != "" {
		status, err := r.statuses.FindBySlug(ctx, *in.StatusSlug)
		if err != nil {
			return nil, err
		}
		if status == nil {
			return nil, apperr.NotFound("Task status '%s' not found", *in.StatusSlug)
		}
		return status, nil
	}
	if !fallbackToDefault {
		return nil, nil
	}
	status, err := r.statuses.FindBySlug(ctx, r.defaultStatusSlug)
	if err != nil {
		return nil, err
	}
	if status == nil {
		// the default slug is configuration; its absence is a deployment bug
		return nil, apperr.NotFound("Default task status '%s' not found", r.defaultStatusSlug)
	}
	return status, nil
}

func (r *TaskResolver) resolveAssignee(ctx context.Context, id int64) (*models.User, error) {
	user, err := r.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("Assignee with id %d not found", id)
	}
	return user, nil
}

func (r *TaskResolver) resolveLabels(ctx context.Context, ids []int64) ([]int64, error) {
	resolved := make([]int64, 0, len(ids))
	for _, id := range ids {
		label, err := r.labels.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if label == nil {
			return nil, apperr.NotFound("Label with id %d not found", id)
		}
		resolved = append(resolved, label.ID)
	}
	return resolved, nil
}
