package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"taskman/internal/apperr"
	"taskman/internal/models"
)

type fakeUserService struct {
	users     map[int64]*models.User
	deleteErr error
	deleted   []int64
	updated   []int64
}

func (s *fakeUserService) Create(_ context.Context, in models.UserInput) (*models.User, error) {
	if in.Email == nil {
		return nil, apperr.Invalid("email is required")
	}
	return &models.User{ID: 1, Email: *in.Email}, nil
}

func (s *fakeUserService) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User with id %d not found", id)
}

func (s *fakeUserService) GetByEmail(_ context.Context, _ string) (*models.User, error) {
	return nil, nil
}

func (s *fakeUserService) GetAll(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *fakeUserService) Update(_ context.Context, id int64, _ models.UserInput) (*models.User, error) {
	s.updated = append(s.updated, id)
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User with id %d not found", id)
}

func (s *fakeUserService) Delete(_ context.Context, id int64) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

// newUserRouter simulates an authenticated caller by injecting identity
// the way the auth middleware does.
func newUserRouter(svc *fakeUserService, callerID int64, isAdmin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", callerID)
		c.Set("is_admin", isAdmin)
	})
	h := NewUserHandler(svc)
	r.POST("/api/users", h.Create)
	r.PUT("/api/users/:id", h.Update)
	r.DELETE("/api/users/:id", h.Delete)
	return r
}

func TestUserHandlerUpdateOwnAccount(t *testing.T) {
	svc := &fakeUserService{users: map[int64]*models.User{5: {ID: 5, Email: "me@example.com"}}}
	r := newUserRouter(svc, 5, false)

	w := serve(r, http.MethodPut, "/api/users/5", `{"firstName":"Me"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestUserHandlerUpdateOtherAccountForbidden(t *testing.T) {
	svc := &fakeUserService{users: map[int64]*models.User{5: {ID: 5}}}
	r := newUserRouter(svc, 7, false)

	w := serve(r, http.MethodPut, "/api/users/5", `{"firstName":"Hax"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if len(svc.updated) != 0 {
		t.Errorf("update reached service: %v", svc.updated)
	}
}

func TestUserHandlerAdminMayUpdateAnyone(t *testing.T) {
	svc := &fakeUserService{users: map[int64]*models.User{5: {ID: 5}}}
	r := newUserRouter(svc, 1, true)

	w := serve(r, http.MethodPut, "/api/users/5", `{"firstName":"Ok"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestUserHandlerDeleteGuardMapsTo422(t *testing.T) {
	svc := &fakeUserService{
		users:     map[int64]*models.User{5: {ID: 5}},
		deleteErr: apperr.Integrity("Cannot delete user with tasks"),
	}
	r := newUserRouter(svc, 5, false)

	w := serve(r, http.MethodDelete, "/api/users/5", "")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
}

func TestUserHandlerCreateInvalidMapsTo400(t *testing.T) {
	r := newUserRouter(&fakeUserService{}, 0, false)

	w := serve(r, http.MethodPost, "/api/users", `{"password":"secret"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
