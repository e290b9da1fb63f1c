package seed

import (
	"fmt"
	"log"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with a realistic marketplace: users with
// skill listings, swaps in every lifecycle state, chat threads on active
// swaps, and ratings with recomputed aggregates on completed ones.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder returns a Seeder bound to the given database.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts)}
}

// ClearAll truncates every seeded table.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE ratings, swap_messages, swap_requests, skills, announcements, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// SeedCommunity creates count users, each with a handful of offered and
// wanted skill listings. A fixed admin and test account are always included
// so local logins stay predictable.
func (s *Seeder) SeedCommunity(count int) ([]models.User, error) {
	users := make([]models.User, 0, count)

	fixed := []struct {
		username string
		admin    bool
	}{
		{"admin", true},
		{"test", false},
	}
	for _, fu := range fixed {
		user, err := s.factory.CreateUser(func(u *models.User) {
			u.Username = fu.username
			u.Email = fmt.Sprintf("%s@example.com", fu.username)
			u.DisplayName = fu.username
			u.IsAdmin = fu.admin
			u.IsPublic = true
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create %s user: %w", fu.username, err)
		}
		users = append(users, *user)
	}

	for i := len(users); i < count; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}

		offered := s.factory.rng.Intn(3) + 1
		wanted := s.factory.rng.Intn(3) + 1
		for j := 0; j < offered; j++ {
			if _, err := s.factory.CreateSkill(user, models.SkillTypeOffered); err != nil {
				return nil, fmt.Errorf("failed to create offered skill: %w", err)
			}
		}
		for j := 0; j < wanted; j++ {
			if _, err := s.factory.CreateSkill(user, models.SkillTypeWanted); err != nil {
				return nil, fmt.Errorf("failed to create wanted skill: %w", err)
			}
		}

		// a few listings stay in the approval queue
		if s.factory.rng.Float32() < 0.15 {
			if _, err := s.factory.CreateSkill(user, models.SkillTypeOffered, func(sk *models.Skill) {
				sk.Approved = false
			}); err != nil {
				return nil, fmt.Errorf("failed to create pending skill: %w", err)
			}
		}

		users = append(users, *user)
		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

// SeedExchanges creates count swap requests between random user pairs,
// distributed across the lifecycle. Accepted swaps get a chat thread;
// completed swaps get mutual ratings and aggregate recomputes.
func (s *Seeder) SeedExchanges(users []models.User, count int) (int, error) {
	if len(users) < 2 {
		return 0, fmt.Errorf("need at least 2 users to seed swaps, have %d", len(users))
	}

	statuses := []models.SwapStatus{
		models.SwapStatusPending, models.SwapStatusPending,
		models.SwapStatusAccepted, models.SwapStatusAccepted,
		models.SwapStatusCompleted, models.SwapStatusCompleted, models.SwapStatusCompleted,
		models.SwapStatusRejected,
		models.SwapStatusCancelled,
	}

	created := 0
	for i := 0; i < count; i++ {
		requester := &users[s.factory.rng.Intn(len(users))]
		provider := &users[s.factory.rng.Intn(len(users))]
		if requester.ID == provider.ID {
			continue
		}

		offered, err := s.pickSkill(requester.ID, models.SkillTypeOffered)
		if err != nil {
			continue
		}
		wanted, err := s.pickSkill(provider.ID, models.SkillTypeOffered)
		if err != nil {
			continue
		}

		status := statuses[s.factory.rng.Intn(len(statuses))]
		swap, err := s.factory.CreateSwap(requester, provider, offered, wanted, status)
		if err != nil {
			// likely the partial unique index on open asks; skip the pair
			continue
		}
		created++

		if status == models.SwapStatusAccepted || status == models.SwapStatusCompleted {
			if err := s.seedThread(swap, requester, provider); err != nil {
				return created, err
			}
		}

		if status == models.SwapStatusCompleted {
			if err := s.seedRatings(swap, requester, provider); err != nil {
				return created, err
			}
		}
	}

	if err := s.recomputeAggregates(); err != nil {
		return created, fmt.Errorf("failed to recompute rating aggregates: %w", err)
	}
	return created, nil
}

// SeedAnnouncements posts a few platform announcements from the first admin.
func (s *Seeder) SeedAnnouncements(users []models.User, count int) error {
	var admin *models.User
	for i := range users {
		if users[i].IsAdmin {
			admin = &users[i]
			break
		}
	}
	if admin == nil {
		return fmt.Errorf("no admin user to author announcements")
	}

	for i := 0; i < count; i++ {
		active := i == 0 || s.factory.rng.Float32() < 0.5
		if _, err := s.factory.CreateAnnouncement(admin, active); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) pickSkill(userID uint, skillType models.SkillType) (*models.Skill, error) {
	if s.factory.opts.DryRun {
		return &models.Skill{ID: userID, UserID: userID, Type: skillType}, nil
	}
	var skill models.Skill
	err := s.db.Where("user_id = ? AND type = ? AND approved = ?", userID, skillType, true).
		Order("random()").
		First(&skill).Error
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (s *Seeder) seedThread(swap *models.SwapRequest, requester, provider *models.User) error {
	turns := s.factory.rng.Intn(6) + 2
	for t := 0; t < turns; t++ {
		sender := requester
		if t%2 == 1 {
			sender = provider
		}
		if _, err := s.factory.CreateSwapMessage(swap, sender); err != nil {
			return fmt.Errorf("failed to create swap message: %w", err)
		}
	}
	return nil
}

func (s *Seeder) seedRatings(swap *models.SwapRequest, requester, provider *models.User) error {
	if _, err := s.factory.CreateRating(swap, requester, provider); err != nil {
		return fmt.Errorf("failed to create rating: %w", err)
	}
	// most, not all, partners rate back
	if s.factory.rng.Float32() < 0.8 {
		if _, err := s.factory.CreateRating(swap, provider, requester); err != nil {
			return fmt.Errorf("failed to create reverse rating: %w", err)
		}
	}
	return nil
}

// recomputeAggregates rewrites every user's average_rating and
// completed_swaps from the seeded rows, matching what the rating
// transaction maintains in production.
func (s *Seeder) recomputeAggregates() error {
	if s.factory.opts.DryRun {
		return nil
	}

	if err := s.db.Exec(`
		UPDATE users SET average_rating = COALESCE(
			(SELECT AVG(score)::numeric(3,2) FROM ratings WHERE ratings.rated_id = users.id), 0
		)`).Error; err != nil {
		return err
	}

	return s.db.Exec(`
		UPDATE users SET completed_swaps = (
			SELECT COUNT(*) FROM swap_requests
			WHERE swap_requests.status = 'completed'
			AND (swap_requests.requester_id = users.id OR swap_requests.provider_id = users.id)
		)`).Error
}
