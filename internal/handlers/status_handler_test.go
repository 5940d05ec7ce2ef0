package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"taskman/internal/apperr"
	"taskman/internal/models"
)

type fakeStatusService struct {
	statuses  []models.TaskStatus
	createErr error
	deleteErr error
}

func (s *fakeStatusService) Create(_ context.Context, name, slug string) (*models.TaskStatus, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.TaskStatus{ID: 1, Name: name, Slug: slug}, nil
}

func (s *fakeStatusService) GetByID(_ context.Context, id int64) (*models.TaskStatus, error) {
	return nil, apperr.NotFound("Task status with id %d not found", id)
}

func (s *fakeStatusService) GetAll(_ context.Context) ([]models.TaskStatus, error) {
	return s.statuses, nil
}

func (s *fakeStatusService) Update(_ context.Context, id int64, name, slug *string) (*models.TaskStatus, error) {
	return nil, apperr.NotFound("Task status with id %d not found", id)
}

func (s *fakeStatusService) Delete(_ context.Context, _ int64) error {
	return s.deleteErr
}

func newStatusRouter(svc *fakeStatusService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewStatusHandler(svc)
	r.GET("/api/task_statuses", h.GetAll)
	r.POST("/api/task_statuses", h.Create)
	r.DELETE("/api/task_statuses/:id", h.Delete)
	return r
}

func TestStatusHandlerListTotalCount(t *testing.T) {
	svc := &fakeStatusService{statuses: []models.TaskStatus{
		{ID: 1, Slug: "draft"}, {ID: 2, Slug: "published"},
	}}
	w := serve(newStatusRouter(svc), http.MethodGet, "/api/task_statuses", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("X-Total-Count"); got != "2" {
		t.Errorf("X-Total-Count = %q, want 2", got)
	}
}

func TestStatusHandlerDuplicateSlugMapsTo422(t *testing.T) {
	svc := &fakeStatusService{createErr: apperr.Integrity("task status slug already in use")}
	w := serve(newStatusRouter(svc), http.MethodPost, "/api/task_statuses",
		`{"name":"Draft","slug":"draft"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
}

func TestStatusHandlerDeleteGuardMapsTo422(t *testing.T) {
	svc := &fakeStatusService{deleteErr: apperr.Integrity("Cannot delete task status with tasks")}
	w := serve(newStatusRouter(svc), http.MethodDelete, "/api/task_statuses/1", "")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body["error"] != "Cannot delete task status with tasks" {
		t.Errorf("error = %q", body["error"])
	}
}
