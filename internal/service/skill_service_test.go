package service

import (
	"context"
	"testing"

	"skillswap/internal/models"
)

func TestSkillServiceCreateInvalidCategory(t *testing.T) {
	svc := NewSkillService(noopSkillRepo(), noopUserRepo())
	_, err := svc.CreateSkill(context.Background(), 1, "Juggling", "", "circus", models.SkillTypeOffered)
	assertAppErrCode(t, err, "VALIDATION_ERROR")
}

func TestSkillServiceCreateStartsUnapproved(t *testing.T) {
	var saved *models.Skill
	skills := noopSkillRepo()
	skills.createFn = func(ctx context.Context, skill *models.Skill) error {
		saved = skill
		return nil
	}

	svc := NewSkillService(skills, noopUserRepo())
	skill, err := svc.CreateSkill(context.Background(), 1, "  Juggling  ", "Three balls to start", "sports", models.SkillTypeOffered)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved == nil || skill.Approved {
		t.Fatalf("expected unapproved skill to be created, got %#v", skill)
	}
	if skill.Title != "Juggling" {
		t.Fatalf("expected trimmed title, got %q", skill.Title)
	}
}

func TestSkillServiceUpdateNotOwner(t *testing.T) {
	skills := noopSkillRepo()
	skills.getByIDFn = func(ctx context.Context, id uint) (*models.Skill, error) {
		return &models.Skill{ID: id, UserID: 7, Approved: true}, nil
	}

	svc := NewSkillService(skills, noopUserRepo())
	_, err := svc.UpdateSkill(context.Background(), 1, 5, "Piano", "", "music", models.SkillTypeOffered)
	assertAppErrCode(t, err, "FORBIDDEN")
}

func TestSkillServiceUpdateResetsApproval(t *testing.T) {
	skills := noopSkillRepo()
	skills.getByIDFn = func(ctx context.Context, id uint) (*models.Skill, error) {
		return &models.Skill{ID: id, UserID: 1, Approved: true, Title: "Piano", Category: "music", Type: models.SkillTypeOffered}, nil
	}
	var saved *models.Skill
	skills.updateFn = func(ctx context.Context, skill *models.Skill) error {
		saved = skill
		return nil
	}

	svc := NewSkillService(skills, noopUserRepo())
	skill, err := svc.UpdateSkill(context.Background(), 1, 5, "Jazz piano", "Improvisation focus", "music", models.SkillTypeOffered)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved == nil || skill.Approved {
		t.Fatal("expected edit to reset approval")
	}
}

func TestSkillServiceDeleteNotOwner(t *testing.T) {
	skills := noopSkillRepo()
	skills.getByIDFn = func(ctx context.Context, id uint) (*models.Skill, error) {
		return &models.Skill{ID: id, UserID: 7}, nil
	}

	svc := NewSkillService(skills, noopUserRepo())
	err := svc.DeleteSkill(context.Background(), 1, 5)
	assertAppErrCode(t, err, "FORBIDDEN")
}

func TestSkillServiceVisitorSeesApprovedOnly(t *testing.T) {
	var gotApprovedOnly bool
	skills := noopSkillRepo()
	skills.getByUserFn = func(ctx context.Context, userID uint, approvedOnly bool) ([]models.Skill, error) {
		gotApprovedOnly = approvedOnly
		return nil, nil
	}

	svc := NewSkillService(skills, noopUserRepo())
	if _, err := svc.GetUserSkills(context.Background(), 2, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gotApprovedOnly {
		t.Fatal("visitors must only see approved skills")
	}

	if _, err := svc.GetUserSkills(context.Background(), 1, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotApprovedOnly {
		t.Fatal("owners must see all of their skills")
	}
}

func TestSkillServicePrivateProfileHidden(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(ctx context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, IsPublic: false}, nil
	}

	svc := NewSkillService(noopSkillRepo(), users)
	_, err := svc.GetUserSkills(context.Background(), 2, 1)
	assertAppErrCode(t, err, "NOT_FOUND")
}
