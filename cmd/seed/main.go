package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"scholarfind/internal/config"
	"scholarfind/internal/database"
	"scholarfind/internal/domain/scholarship"
	"scholarfind/internal/domain/user"
	"scholarfind/internal/repository/postgres"
)

// Seeds a fresh database with demo accounts and postings. Refuses to run
// against a database that already has users.
func main() {
	cfg := config.Load()
	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	ctx := context.Background()

	var existing int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&existing); err != nil {
		log.Fatalf("failed to inspect users table: %v", err)
	}
	if existing > 0 {
		log.Printf("database already has %d users, nothing to do", existing)
		return
	}

	userRepo := postgres.NewUserRepository(db)
	scholarshipRepo := postgres.NewScholarshipRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), 12)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	gpa := 3.8
	gradYear := 2027
	provider, err := userRepo.Create(ctx, user.User{
		Name:         "Scholarship Foundation",
		Email:        "provider@example.com",
		PasswordHash: string(hash),
	})
	if err != nil {
		log.Fatalf("failed to seed provider: %v", err)
	}
	if _, err := userRepo.Create(ctx, user.User{
		Name:           "Demo Student",
		Email:          "student@example.com",
		PasswordHash:   string(hash),
		University:     "State University",
		Major:          "Computer Science",
		GPA:            &gpa,
		GraduationYear: &gradYear,
	}); err != nil {
		log.Fatalf("failed to seed student: %v", err)
	}

	minGPA := 3.5
	postings := []scholarship.Scholarship{
		{
			Title:        "Merit Excellence Scholarship",
			Description:  "Awarded to students with outstanding academic achievement across all disciplines.",
			Provider:     "Scholarship Foundation",
			Amount:       5000,
			Category:     scholarship.CategoryMeritBased,
			Deadline:     time.Now().UTC().AddDate(0, 3, 0),
			Requirements: []string{"Official transcript", "Two recommendation letters"},
			Eligibility:  scholarship.Eligibility{MinGPA: &minGPA},
			IsActive:     true,
		},
		{
			Title:        "Community Impact Grant",
			Description:  "Supports students with a sustained record of community service and local leadership.",
			Provider:     "Scholarship Foundation",
			Amount:       2500,
			Category:     scholarship.CategoryCommunityService,
			Deadline:     time.Now().UTC().AddDate(0, 2, 0),
			Requirements: []string{"Service hours log", "Essay on community involvement"},
			IsActive:     true,
		},
		{
			Title:        "Undergraduate Research Fellowship",
			Description:  "Funds independent research projects supervised by a faculty mentor during the academic year.",
			Provider:     "Scholarship Foundation",
			Amount:       7500,
			Category:     scholarship.CategoryResearch,
			Deadline:     time.Now().UTC().AddDate(0, 4, 0),
			Requirements: []string{"Research proposal", "Faculty endorsement"},
			IsActive:     true,
		},
	}
	for _, posting := range postings {
		posting.CreatedBy = provider.ID
		if _, err := scholarshipRepo.Create(ctx, posting); err != nil {
			log.Fatalf("failed to seed scholarship %q: %v", posting.Title, err)
		}
	}

	log.Printf("seeded %d users and %d scholarships", 2, len(postings))
}
