// Command main runs the database seeder for SkillSwap.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/seed"

	"gopkg.in/yaml.v3"
)

// profile is an optional YAML file describing a named seed scenario, so
// demo environments can be rebuilt reproducibly without remembering flags.
type profile struct {
	Users         int  `yaml:"users"`
	Swaps         int  `yaml:"swaps"`
	Announcements int  `yaml:"announcements"`
	Clean         bool `yaml:"clean"`
	Fast          bool `yaml:"fast"`
}

func loadProfile(path string) (*profile, error) {
	// #nosec G304: path comes from CLI flags in a dev tool
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := &profile{Announcements: 3, Clean: true}
	if err := yaml.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("parse seed profile: %w", err)
	}
	if p.Users < 2 {
		return nil, fmt.Errorf("seed profile needs at least 2 users, got %d", p.Users)
	}
	return p, nil
}

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numSwaps := flag.Int("swaps", 200, "Number of swap requests to create")
	numAnnouncements := flag.Int("announcements", 3, "Number of announcements to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("fast", false, "Store plaintext passwords (local only, much faster)")
	dryRun := flag.Bool("dry-run", false, "Log what would be created without writing")
	profilePath := flag.String("profile", "", "YAML seed profile (overrides count flags)")
	flag.Parse()

	if *profilePath != "" {
		p, err := loadProfile(*profilePath)
		if err != nil {
			log.Fatalf("Failed to load seed profile: %v", err)
		}
		*numUsers = p.Users
		*numSwaps = p.Swaps
		*numAnnouncements = p.Announcements
		*shouldClean = p.Clean
		*skipBcrypt = p.Fast
		log.Printf("Loaded seed profile %s", *profilePath)
	}

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d users, %d swaps, clean=%v\n", *numUsers, *numSwaps, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{
		NumUsers:    *numUsers,
		NumSwaps:    *numSwaps,
		ShouldClean: *shouldClean,
		SkipBcrypt:  *skipBcrypt,
		DryRun:      *dryRun,
	})

	if *shouldClean && !*dryRun {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := s.SeedCommunity(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	log.Printf("Created %d users with skill listings", len(users))

	created, err := s.SeedExchanges(users, *numSwaps)
	if err != nil {
		log.Fatalf("Swap seeding failed: %v", err)
	}
	log.Printf("Created %d swap requests with chat and ratings", created)

	if err := s.SeedAnnouncements(users, *numAnnouncements); err != nil {
		log.Fatalf("Announcement seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Println("All test users have the password: password123")
}
