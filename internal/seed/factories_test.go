package seed

import (
	"strings"
	"testing"
	"time"

	"skillswap/internal/models"
)

func TestCreateSkill_DryRunUsesKnownCategories(t *testing.T) {
	f := NewFactory(nil, Options{DryRun: true, MaxDays: 30})
	user := &models.User{ID: 1}

	for i := 0; i < 20; i++ {
		skill, err := f.CreateSkill(user, models.SkillTypeOffered)
		if err != nil {
			t.Fatalf("CreateSkill failed: %v", err)
		}
		if !models.ValidSkillCategory(skill.Category) {
			t.Fatalf("unknown category: %s", skill.Category)
		}
		if skill.Title == "" {
			t.Fatalf("empty skill title")
		}
		if !skill.Approved {
			t.Fatalf("seeded skills should default to approved")
		}
		if time.Since(skill.CreatedAt) > 31*24*time.Hour {
			t.Fatalf("created_at too old: %v", skill.CreatedAt)
		}
	}
}

func TestCreateSwap_TimestampsFollowStatus(t *testing.T) {
	f := NewFactory(nil, Options{DryRun: true})
	requester := &models.User{ID: 1}
	provider := &models.User{ID: 2}
	offered := &models.Skill{ID: 10, UserID: 1}
	wanted := &models.Skill{ID: 20, UserID: 2}

	pending, err := f.CreateSwap(requester, provider, offered, wanted, models.SwapStatusPending)
	if err != nil {
		t.Fatalf("CreateSwap failed: %v", err)
	}
	if pending.AcceptedAt != nil || pending.CompletedAt != nil {
		t.Fatalf("pending swap should have no transition timestamps")
	}

	completed, err := f.CreateSwap(requester, provider, offered, wanted, models.SwapStatusCompleted)
	if err != nil {
		t.Fatalf("CreateSwap failed: %v", err)
	}
	if completed.AcceptedAt == nil || completed.CompletedAt == nil {
		t.Fatalf("completed swap needs accepted_at and completed_at")
	}
	if !completed.CompletedAt.After(*completed.AcceptedAt) {
		t.Fatalf("completed_at must be after accepted_at")
	}
	if !completed.AcceptedAt.After(completed.CreatedAt) {
		t.Fatalf("accepted_at must be after created_at")
	}
}

func TestCreateUser_DryRunGeneratesProfile(t *testing.T) {
	f := NewFactory(nil, Options{DryRun: true, SkipBcrypt: true})

	user, err := f.CreateUser()
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.Username == "" || user.Email == "" {
		t.Fatalf("user missing identity fields: %+v", user)
	}
	if user.Password != "password123" {
		t.Fatalf("SkipBcrypt should store the plain dev password")
	}
	if user.Availability == "" {
		t.Fatalf("expected availability tags")
	}
	for _, slot := range strings.Split(user.Availability, ",") {
		switch slot {
		case "weekday-mornings", "weekday-evenings", "weekends", "flexible":
		default:
			t.Fatalf("unknown availability slot %q", slot)
		}
	}
}
