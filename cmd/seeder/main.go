package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/crewboard/internal/activity"
	"github.com/mauv0809/crewboard/internal/club"
	"github.com/mauv0809/crewboard/internal/database"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"TURSO_PRIMARY_URL": os.Getenv("TURSO_PRIMARY_URL"),
		"TURSO_AUTH_TOKEN":  os.Getenv("TURSO_AUTH_TOKEN"),
		"DB_NAME":           os.Getenv("DB_NAME"),
	}
	if config["TURSO_PRIMARY_URL"] == "" && config["DB_NAME"] == "" {
		log.Fatalf("Error: Either TURSO_PRIMARY_URL or DB_NAME must be set.")
	}
	return config
}

var organisations = []string{"DSR", "Kvik", "Roforeningen"}

var seedPositions = []activity.Position{
	activity.PositionCoxswain,
	activity.PositionPort,
	activity.PositionStarboard,
	activity.PositionSculling,
	activity.PositionCoach,
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()
	log.Info("Successfully connected to the database.")

	ctx := context.Background()
	directory := club.New(db)
	activities := activity.New(db)

	const numMembers = 40
	members := make([]*club.Member, 0, numMembers)
	for i := 0; i < numMembers; i++ {
		members = append(members, &club.Member{
			ID:           uuid.NewString(),
			Name:         fmt.Sprintf("Seeder Rower %02d", i+1),
			Organisation: organisations[i%len(organisations)],
		})
	}
	if err := directory.UpsertMembers(ctx, members); err != nil {
		log.Fatalf("Failed to insert members: %s", err)
	}
	log.Info("Inserted members", "count", len(members))

	const numActivities = 200
	startTime := time.Now()
	for i := 0; i < numActivities; i++ {
		owner := members[rand.Intn(len(members))]
		start := time.Now().Add(time.Duration(24+rand.Intn(60*24)) * time.Hour).Truncate(15 * time.Minute)

		a := &activity.Activity{
			ID:        uuid.NewString(),
			OwnerID:   owner.ID,
			Name:      fmt.Sprintf("Seeded session %d", i+1),
			Kind:      activity.KindTraining,
			Start:     start,
			Location:  "Seeded Boathouse",
			Positions: randomPositions(),
		}
		if i%5 == 0 {
			org := owner.Organisation
			a.Kind = activity.KindCompetition
			a.Competition = &activity.Competition{Organisation: &org}
		}
		if err := a.Validate(time.Now()); err != nil {
			log.Fatalf("Seeded activity is invalid: %s", err)
		}
		if err := activities.Create(ctx, a); err != nil {
			log.Fatalf("Failed to insert activity %s: %s", a.ID, err)
		}
		if (i+1)%50 == 0 {
			log.Info("Inserted activities", "completed", i+1, "total", numActivities)
		}
	}

	log.Info("Successfully seeded the roster.", "duration", time.Since(startTime))
}

func randomPositions() []activity.Position {
	n := 1 + rand.Intn(8)
	positions := make([]activity.Position, 0, n)
	for i := 0; i < n; i++ {
		positions = append(positions, seedPositions[rand.Intn(len(seedPositions))])
	}
	return positions
}
