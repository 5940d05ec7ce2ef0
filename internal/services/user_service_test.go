package services

import (
	"context"
	"strings"
	"testing"

	"taskman/internal/apperr"
	"taskman/internal/models"
)

type recordingEmailService struct {
	sentTo []string
	err    error
}

func (s *recordingEmailService) SendWelcomeEmail(email, _ string) error {
	s.sentTo = append(s.sentTo, email)
	return s.err
}

func newUserFixture(email EmailService) (UserService, *fakeUserRepo, *fakeTaskRepo) {
	users := newFakeUserRepo()
	tasks := newFakeTaskRepo()
	return NewUserService(users, tasks, NewAuthService(), email), users, tasks
}

func TestUserServiceCreate(t *testing.T) {
	mail := &recordingEmailService{}
	svc, _, _ := newUserFixture(mail)

	user, err := svc.Create(context.Background(), models.UserInput{
		Email:     strPtr("jack@example.com"),
		FirstName: strPtr("Jack"),
		Password:  strPtr("secret"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected assigned id")
	}
	if user.PasswordHash == "secret" || user.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
	if len(mail.sentTo) != 1 || mail.sentTo[0] != "jack@example.com" {
		t.Errorf("welcome emails sent to %v", mail.sentTo)
	}
}

func TestUserServiceCreateValidation(t *testing.T) {
	svc, _, _ := newUserFixture(nil)

	if _, err := svc.Create(context.Background(), models.UserInput{Password: strPtr("x")}); !apperr.Is(err, apperr.CodeInvalid) {
		t.Errorf("missing email: err = %v, want invalid", err)
	}
	if _, err := svc.Create(context.Background(), models.UserInput{Email: strPtr("a@b.c")}); !apperr.Is(err, apperr.CodeInvalid) {
		t.Errorf("missing password: err = %v, want invalid", err)
	}
}

func TestUserServiceCreateEmailFailureDoesNotFail(t *testing.T) {
	mail := &recordingEmailService{err: context.DeadlineExceeded}
	svc, _, _ := newUserFixture(mail)

	if _, err := svc.Create(context.Background(), models.UserInput{
		Email:    strPtr("jill@example.com"),
		Password: strPtr("secret"),
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
}

func TestUserServiceDuplicateEmail(t *testing.T) {
	svc, _, _ := newUserFixture(nil)

	in := models.UserInput{Email: strPtr("dup@example.com"), Password: strPtr("secret")}
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), in); !apperr.Is(err, apperr.CodeIntegrity) {
		t.Fatalf("err = %v, want integrity", err)
	}
}

func TestUserServiceUpdateRehashesPassword(t *testing.T) {
	svc, _, _ := newUserFixture(nil)
	auth := NewAuthService()

	created, err := svc.Create(context.Background(), models.UserInput{
		Email:    strPtr("kate@example.com"),
		Password: strPtr("old-password"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, models.UserInput{
		Password: strPtr("new-password"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !auth.CheckPassword(updated.PasswordHash, "new-password") {
		t.Error("new password does not verify")
	}
	if auth.CheckPassword(updated.PasswordHash, "old-password") {
		t.Error("old password still verifies")
	}
	if updated.Email != "kate@example.com" {
		t.Errorf("email changed: %q", updated.Email)
	}
}

func TestUserServiceDeleteGuard(t *testing.T) {
	svc, users, tasks := newUserFixture(nil)

	assigned := users.add("busy@example.com")
	free := users.add("idle@example.com")
	_ = tasks.Store(context.Background(), &models.Task{
		Title: "T", StatusID: 1, StatusSlug: "draft", AssigneeID: &assigned.ID,
	})

	err := svc.Delete(context.Background(), assigned.ID)
	if !apperr.Is(err, apperr.CodeIntegrity) {
		t.Fatalf("err = %v, want integrity", err)
	}
	if !strings.Contains(err.Error(), "Cannot delete user with tasks") {
		t.Errorf("unexpected message: %q", err)
	}

	if err := svc.Delete(context.Background(), free.ID); err != nil {
		t.Fatalf("delete unassigned user: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), free.ID); !apperr.Is(err, apperr.CodeNotFound) {
		t.Fatalf("err = %v, want not-found after delete", err)
	}
}
