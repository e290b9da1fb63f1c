// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"skillswap/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumSwaps    int
	ShouldClean bool

	// SkipBcrypt stores plaintext passwords for fast local runs.
	SkipBcrypt bool
	// DryRun logs what would be created without touching the database.
	DryRun bool
	// MaxDays spreads created_at timestamps over this many days back.
	MaxDays int
}

// skillTemplates maps each category to plausible listing titles.
var skillTemplates = map[string][]string{
	"technology": {"Go Programming", "Linux Administration", "SQL Fundamentals", "Web Scraping", "Home Networking", "Docker Basics"},
	"music":      {"Guitar for Beginners", "Piano Improvisation", "Music Theory", "Home Recording", "Singing Technique"},
	"cooking":    {"Sourdough Baking", "Thai Street Food", "Knife Skills", "Fermentation", "Italian Pasta from Scratch"},
	"language":   {"Conversational Spanish", "Japanese for Travelers", "French Grammar", "German Pronunciation", "Sign Language Basics"},
	"art":        {"Watercolor Landscapes", "Figure Drawing", "Digital Illustration", "Pottery Wheel Throwing", "Street Photography"},
	"sports":     {"Rock Climbing Technique", "5k Training Plan", "Yoga Foundations", "Table Tennis Drills", "Swimming Stroke Correction"},
	"crafts":     {"Woodworking Joints", "Knitting Socks", "Bookbinding", "Leather Wallets", "Soap Making"},
	"business":   {"Bootstrapping a Side Project", "Public Speaking", "Spreadsheet Modeling", "Freelance Contracts", "Resume Review"},
	"other":      {"Chess Openings", "Speed Cubing", "Houseplant Care", "Bike Maintenance", "Budget Travel Planning"},
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Factory{db: db, opts: opts, rng: rng, nextID: 1000}
}

func (f *Factory) backdate(maxDays int) time.Time {
	if f.opts.MaxDays > 0 {
		maxDays = f.opts.MaxDays
	}
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	username := fmt.Sprintf("%s%s%d", first, last, gofakeit.Number(100, 999))

	user := &models.User{
		Username:     username,
		Email:        gofakeit.Email(),
		DisplayName:  first + " " + last,
		Location:     gofakeit.City(),
		Bio:          gofakeit.Sentence(12),
		Avatar:       fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Availability: randomAvailability(f.rng),
		IsPublic:     f.rng.Float32() < 0.85,
		CreatedAt:    f.backdate(180),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.Username, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateSkill constructs and persists a skill listing owned by user.
// Seeded skills are approved by default so they show up in browse.
func (f *Factory) CreateSkill(user *models.User, skillType models.SkillType, overrides ...func(*models.Skill)) (*models.Skill, error) {
	category := models.SkillCategories[f.rng.Intn(len(models.SkillCategories))]
	titles := skillTemplates[category]

	skill := &models.Skill{
		UserID:      user.ID,
		Title:       titles[f.rng.Intn(len(titles))],
		Description: gofakeit.Paragraph(1, 2, 8, " "),
		Category:    category,
		Type:        skillType,
		Approved:    true,
		CreatedAt:   f.backdate(120),
	}

	for _, override := range overrides {
		override(skill)
	}

	if f.opts.DryRun {
		f.nextID++
		skill.ID = f.nextID
		log.Printf("[dry-run] CreateSkill: user=%d type=%s title=%q", skill.UserID, skill.Type, skill.Title)
		return skill, nil
	}

	if err := f.db.Create(skill).Error; err != nil {
		return nil, err
	}
	return skill, nil
}

// CreateSwap persists a swap request between two users over two of their
// skills, in the given status with consistent timestamps.
func (f *Factory) CreateSwap(requester, provider *models.User, offered, wanted *models.Skill, status models.SwapStatus, overrides ...func(*models.SwapRequest)) (*models.SwapRequest, error) {
	createdAt := f.backdate(60)
	swap := &models.SwapRequest{
		RequesterID:    requester.ID,
		ProviderID:     provider.ID,
		OfferedSkillID: offered.ID,
		WantedSkillID:  wanted.ID,
		Message:        gofakeit.Sentence(10),
		Status:         status,
		CreatedAt:      createdAt,
	}

	switch status {
	case models.SwapStatusAccepted:
		acceptedAt := createdAt.Add(time.Duration(f.rng.Intn(72)+1) * time.Hour)
		swap.AcceptedAt = &acceptedAt
	case models.SwapStatusCompleted:
		acceptedAt := createdAt.Add(time.Duration(f.rng.Intn(72)+1) * time.Hour)
		completedAt := acceptedAt.Add(time.Duration(f.rng.Intn(240)+24) * time.Hour)
		swap.AcceptedAt = &acceptedAt
		swap.CompletedAt = &completedAt
	}

	for _, override := range overrides {
		override(swap)
	}

	if f.opts.DryRun {
		f.nextID++
		swap.ID = f.nextID
		log.Printf("[dry-run] CreateSwap: %d -> %d status=%s", swap.RequesterID, swap.ProviderID, swap.Status)
		return swap, nil
	}

	if err := f.db.Create(swap).Error; err != nil {
		return nil, err
	}
	return swap, nil
}

// CreateSwapMessage persists a chat message inside the swap's thread.
func (f *Factory) CreateSwapMessage(swap *models.SwapRequest, sender *models.User, overrides ...func(*models.SwapMessage)) (*models.SwapMessage, error) {
	message := &models.SwapMessage{
		SwapRequestID: swap.ID,
		SenderID:      sender.ID,
		Content:       gofakeit.Sentence(10),
		IsRead:        f.rng.Float32() < 0.7,
		CreatedAt:     swap.CreatedAt.Add(time.Duration(f.rng.Intn(96)+1) * time.Hour),
	}
	if message.IsRead {
		readAt := message.CreatedAt.Add(time.Duration(f.rng.Intn(120)+5) * time.Minute)
		message.ReadAt = &readAt
	}

	for _, override := range overrides {
		override(message)
	}

	if f.opts.DryRun {
		f.nextID++
		message.ID = f.nextID
		return message, nil
	}

	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// CreateRating persists a rating from rater about rated on a completed swap.
func (f *Factory) CreateRating(swap *models.SwapRequest, rater, rated *models.User, overrides ...func(*models.Rating)) (*models.Rating, error) {
	// skew toward good experiences, like real marketplaces
	scores := []int{3, 4, 4, 5, 5, 5}
	rating := &models.Rating{
		SwapRequestID: swap.ID,
		RaterID:       rater.ID,
		RatedID:       rated.ID,
		Score:         scores[f.rng.Intn(len(scores))],
		Feedback:      gofakeit.Sentence(8),
	}
	if swap.CompletedAt != nil {
		rating.CreatedAt = swap.CompletedAt.Add(time.Duration(f.rng.Intn(48)+1) * time.Hour)
	}

	for _, override := range overrides {
		override(rating)
	}

	if f.opts.DryRun {
		f.nextID++
		rating.ID = f.nextID
		return rating, nil
	}

	if err := f.db.Create(rating).Error; err != nil {
		return nil, err
	}
	return rating, nil
}

// CreateAnnouncement persists an admin announcement.
func (f *Factory) CreateAnnouncement(author *models.User, active bool, overrides ...func(*models.Announcement)) (*models.Announcement, error) {
	announcement := &models.Announcement{
		Title:       gofakeit.Sentence(4),
		Body:        gofakeit.Paragraph(1, 2, 10, " "),
		Active:      active,
		CreatedByID: author.ID,
	}

	for _, override := range overrides {
		override(announcement)
	}

	if f.opts.DryRun {
		f.nextID++
		announcement.ID = f.nextID
		return announcement, nil
	}

	if err := f.db.Create(announcement).Error; err != nil {
		return nil, err
	}
	return announcement, nil
}

func randomAvailability(r *rand.Rand) string {
	slots := []string{"weekday-mornings", "weekday-evenings", "weekends", "flexible"}
	switch r.Intn(4) {
	case 0:
		return slots[r.Intn(len(slots))]
	case 1:
		return slots[0] + "," + slots[2]
	case 2:
		return slots[1] + "," + slots[2]
	default:
		return "flexible"
	}
}
