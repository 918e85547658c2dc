// Command seed provisions the initial admin account and, optionally, a few
// sample listings. Admin accounts are only ever created out-of-band: the
// public registration endpoint always assigns the user role.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/statewisejobs/statewise-jobs/internal/auth"
	"github.com/statewisejobs/statewise-jobs/internal/database"
	"github.com/statewisejobs/statewise-jobs/internal/listings"
	"github.com/statewisejobs/statewise-jobs/internal/listings/repository"
	"github.com/statewisejobs/statewise-jobs/internal/models"
	"github.com/statewisejobs/statewise-jobs/internal/users"
	"github.com/statewisejobs/statewise-jobs/pkg/logger"
)

func main() {
	withSamples := flag.Bool("samples", false, "also insert sample job listings")
	flag.Parse()

	logger.Init(os.Getenv("LOG_LEVEL"))

	uri := os.Getenv("MONGODB_URI")
	dbName := os.Getenv("MONGODB_DATABASE")
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if uri == "" || email == "" || password == "" {
		logger.Fatalf("MONGODB_URI, ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}
	if dbName == "" {
		dbName = "statewisejobs"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := database.ConnectMongo(ctx, uri, 10*time.Second)
	if err != nil {
		logger.Fatalf("cannot connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()
	db := client.Database(dbName)

	repo, err := users.NewMongoRepository(db.Collection("users"))
	if err != nil {
		logger.Fatalf("prepare users collection: %v", err)
	}
	normalized := users.NormalizeEmail(email)

	existing, err := repo.GetByEmail(ctx, normalized)
	if err != nil {
		logger.Fatalf("lookup admin: %v", err)
	}
	if existing != nil {
		logger.Infof("admin account %s already exists (role=%s), nothing to do", normalized, existing.Role)
	} else {
		hash, err := auth.HashPassword(password)
		if err != nil {
			logger.Fatalf("hash admin password: %v", err)
		}
		u := &models.User{
			Email:    normalized,
			Password: hash,
			Role:     models.RoleAdmin,
			IsActive: true,
		}
		if _, err := repo.Create(ctx, u); err != nil {
			logger.Fatalf("create admin: %v", err)
		}
		logger.Infof("created admin account %s", normalized)
	}

	if *withSamples {
		seedSampleJobs(ctx, repository.NewMongoJobRepository(db.Collection("jobs")))
	}
}

func seedSampleJobs(ctx context.Context, jobs repository.JobRepository) {
	samples := []*listings.Job{
		{
			Title:         "SSC CGL 2026 Recruitment",
			Department:    "Staff Selection Commission",
			State:         "All India",
			Category:      "central",
			Vacancy:       17727,
			LastDate:      "2026-10-15",
			Salary:        "25500-151100",
			Qualification: "Graduate",
			IsActive:      true,
		},
		{
			Title:         "UP Police Constable Recruitment",
			Department:    "Uttar Pradesh Police",
			State:         "Uttar Pradesh",
			Category:      "state",
			Vacancy:       60244,
			LastDate:      "2026-11-30",
			Salary:        "21700-69100",
			Qualification: "12th Pass",
			IsActive:      true,
		},
		{
			Title:         "Kerala PSC Village Extension Officer",
			Department:    "Kerala Public Service Commission",
			State:         "Kerala",
			Category:      "state",
			Vacancy:       312,
			LastDate:      "2026-09-30",
			Salary:        "27900-63700",
			Qualification: "Graduate",
			IsActive:      true,
		},
	}
	for _, j := range samples {
		if _, err := jobs.Create(ctx, j); err != nil {
			logger.Warnf("seed job %q: %v", j.Title, err)
			continue
		}
		logger.Infof("seeded job %q", j.Title)
	}
}
