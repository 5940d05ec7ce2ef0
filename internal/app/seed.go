package app

import (
	"context"
	"log"
	"time"

	"taskman/internal/apperr"
	"taskman/internal/config"
	"taskman/internal/models"
	"taskman/internal/repositories"
	"taskman/internal/services"
)

// Seed inserts the initial admin account, the default workflow statuses
// and the starter labels. Existing rows are left untouched.
func Seed(
	cfg *config.Config,
	users repositories.UserRepository,
	auth services.AuthService,
	statuses repositories.StatusRepository,
	labels repositories.LabelRepository,
) error {
	ctx := context.Background()

	if cfg.App.AdminEmail != "" && cfg.App.AdminPassword != "" {
		existing, err := users.FindByEmail(ctx, cfg.App.AdminEmail)
		if err != nil {
			return err
		}
		if existing == nil {
			hash, err := auth.HashPassword(cfg.App.AdminPassword)
			if err != nil {
				return err
			}
			admin := &models.User{
				Email:        cfg.App.AdminEmail,
				FirstName:    "Admin",
				LastName:     "User",
				PasswordHash: hash,
				IsAdmin:      true,
				CreatedAt:    time.Now(),
			}
			if err := users.Create(ctx, admin); err != nil {
				return err
			}
			log.Printf("[seed] admin user created: %s", admin.Email)
		}
	}

	defaultStatuses := []models.TaskStatus{
		{Name: "Draft", Slug: "draft"},
		{Name: "ToReview", Slug: "to_review"},
		{Name: "ToBeFixed", Slug: "to_be_fixed"},
		{Name: "ToPublish", Slug: "to_publish"},
		{Name: "Published", Slug: "published"},
	}
	for _, s := range defaultStatuses {
		existing, err := statuses.FindBySlug(ctx, s.Slug)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		s.CreatedAt = time.Now()
		if err := statuses.Store(ctx, &s); err != nil {
			return err
		}
		log.Printf("[seed] task status created: %s", s.Slug)
	}

	for _, name := range []string{"feature", "bug"} {
		l := &models.Label{Name: name, CreatedAt: time.Now()}
		if err := labels.Store(ctx, l); err != nil {
			// already seeded
			if apperr.Is(err, apperr.CodeIntegrity) {
				continue
			}
			return err
		}
		log.Printf("[seed] label created: %s", name)
	}

	return nil
}
