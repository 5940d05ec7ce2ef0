package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"taskman/internal/apperr"
	"taskman/internal/models"
)

// In-memory repository fakes shared by the service tests.

type fakeStatusRepo struct {
	nextID   int64
	statuses map[int64]models.TaskStatus
}

func newFakeStatusRepo() *fakeStatusRepo {
	return &fakeStatusRepo{statuses: map[int64]models.TaskStatus{}}
}

func (r *fakeStatusRepo) add(name, slug string) models.TaskStatus {
	r.nextID++
	s := models.TaskStatus{ID: r.nextID, Name: name, Slug: slug, CreatedAt: time.Now()}
	r.statuses[s.ID] = s
	return s
}

func (r *fakeStatusRepo) Store(_ context.Context, status *models.TaskStatus) error {
	for _, s := range r.statuses {
		if s.Slug == status.Slug {
			return errDuplicate("task status slug already in use")
		}
	}
	r.nextID++
	status.ID = r.nextID
	r.statuses[status.ID] = *status
	return nil
}

func (r *fakeStatusRepo) FindByID(_ context.Context, id int64) (*models.TaskStatus, error) {
	if s, ok := r.statuses[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *fakeStatusRepo) FindBySlug(_ context.Context, slug string) (*models.TaskStatus, error) {
	for _, s := range r.statuses {
		if s.Slug == slug {
			out := s
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeStatusRepo) FindAll(_ context.Context) ([]models.TaskStatus, error) {
	out := make([]models.TaskStatus, 0, len(r.statuses))
	for _, s := range r.statuses {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeStatusRepo) Update(_ context.Context, status *models.TaskStatus) error {
	r.statuses[status.ID] = *status
	return nil
}

func (r *fakeStatusRepo) Delete(_ context.Context, id int64) error {
	delete(r.statuses, id)
	return nil
}

type fakeLabelRepo struct {
	nextID int64
	labels map[int64]models.Label
}

func newFakeLabelRepo() *fakeLabelRepo {
	return &fakeLabelRepo{labels: map[int64]models.Label{}}
}

func (r *fakeLabelRepo) add(name string) models.Label {
	r.nextID++
	l := models.Label{ID: r.nextID, Name: name, CreatedAt: time.Now()}
	r.labels[l.ID] = l
	return l
}

func (r *fakeLabelRepo) Store(_ context.Context, label *models.Label) error {
	for _, l := range r.labels {
		if l.Name == label.Name {
			return errDuplicate("label name already in use")
		}
	}
	r.nextID++
	label.ID = r.nextID
	r.labels[label.ID] = *label
	return nil
}

func (r *fakeLabelRepo) FindByID(_ context.Context, id int64) (*models.Label, error) {
	if l, ok := r.labels[id]; ok {
		return &l, nil
	}
	return nil, nil
}

func (r *fakeLabelRepo) FindAll(_ context.Context) ([]models.Label, error) {
	out := make([]models.Label, 0, len(r.labels))
	for _, l := range r.labels {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeLabelRepo) Update(_ context.Context, label *models.Label) error {
	r.labels[label.ID] = *label
	return nil
}

func (r *fakeLabelRepo) Delete(_ context.Context, id int64) error {
	delete(r.labels, id)
	return nil
}

type fakeUserRepo struct {
	nextID int64
	users  map[int64]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]models.User{}}
}

func (r *fakeUserRepo) add(email string) models.User {
	r.nextID++
	u := models.User{ID: r.nextID, Email: email, CreatedAt: time.Now()}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return errDuplicate("email already in use")
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) UpdateRefresh(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	u, ok := r.users[userID]
	if !ok {
		return nil
	}
	u.RefreshToken = &token
	u.RefreshExpiresAt = &expiresAt
	u.RefreshRevoked = false
	r.users[userID] = u
	return nil
}

func (r *fakeUserRepo) RotateRefresh(_ context.Context, oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	for id, u := range r.users {
		if u.RefreshToken != nil && *u.RefreshToken == oldToken {
			u.RefreshToken = &newToken
			u.RefreshExpiresAt = &newExpiresAt
			r.users[id] = u
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ClearRefresh(_ context.Context, userID int64) error {
	u, ok := r.users[userID]
	if !ok {
		return nil
	}
	u.RefreshToken = nil
	u.RefreshExpiresAt = nil
	u.RefreshRevoked = true
	r.users[userID] = u
	return nil
}

func (r *fakeUserRepo) FindByRefreshToken(_ context.Context, token string) (*models.User, error) {
	for _, u := range r.users {
		if u.RefreshToken != nil && *u.RefreshToken == token {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

type fakeTaskRepo struct {
	nextID int64
	tasks  map[int64]models.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[int64]models.Task{}}
}

func (r *fakeTaskRepo) Store(_ context.Context, task *models.Task) error {
	r.nextID++
	task.ID = r.nextID
	r.tasks[task.ID] = cloneTask(*task)
	return nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id int64) (*models.Task, error) {
	if t, ok := r.tasks[id]; ok {
		out := cloneTask(t)
		return &out, nil
	}
	return nil, nil
}

func (r *fakeTaskRepo) FindAll(_ context.Context, filter models.TaskFilter) ([]models.Task, error) {
	var out []models.Task
	for _, t := range r.tasks {
		if matchesFilter(t, filter) {
			out = append(out, cloneTask(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *models.Task) error {
	r.tasks[task.ID] = cloneTask(*task)
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) ExistsByStatusID(_ context.Context, statusID int64) (bool, error) {
	for _, t := range r.tasks {
		if t.StatusID == statusID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTaskRepo) ExistsByAssigneeID(_ context.Context, userID int64) (bool, error) {
	for _, t := range r.tasks {
		if t.AssigneeID != nil && *t.AssigneeID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTaskRepo) ExistsWithLabel(_ context.Context, labelID int64) (bool, error) {
	for _, t := range r.tasks {
		for _, id := range t.LabelIDs {
			if id == labelID {
				return true, nil
			}
		}
	}
	return false, nil
}

func matchesFilter(t models.Task, f models.TaskFilter) bool {
	if f.TitleCont != nil &&
		!strings.Contains(strings.ToLower(t.Title), strings.ToLower(*f.TitleCont)) {
		return false
	}
	if f.AssigneeID != nil && (t.AssigneeID == nil || *t.AssigneeID != *f.AssigneeID) {
		return false
	}
	if f.StatusSlug != nil && t.StatusSlug != *f.StatusSlug {
		return false
	}
	if f.LabelID != nil {
		found := false
		for _, id := range t.LabelIDs {
			if id == *f.LabelID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func cloneTask(t models.Task) models.Task {
	t.LabelIDs = append([]int64(nil), t.LabelIDs...)
	if t.AssigneeID != nil {
		id := *t.AssigneeID
		t.AssigneeID = &id
	}
	return t
}

// errDuplicate mirrors the integrity error the real repositories produce
// for unique violations.
func errDuplicate(msg string) error {
	return apperr.Integrity("%s", msg)
}
