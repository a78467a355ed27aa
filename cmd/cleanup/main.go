package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/CareBridge-Health/scheduling-service/internal/appointment"
	"github.com/CareBridge-Health/scheduling-service/internal/db"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "count eligible appointments without deleting")
	flag.Parse()

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cleanup := appointment.NewCleanupService(database)

	if *dryRun {
		count, err := cleanup.GetExpiredAppointmentsCount(ctx)
		if err != nil {
			log.Fatalf("failed to count expired appointments: %v", err)
		}
		log.Printf("%d appointments eligible for cleanup (dry run, nothing deleted)", count)
		return
	}

	deleted, err := cleanup.CleanupExpiredAppointments(ctx)
	if err != nil {
		log.Fatalf("cleanup failed: %v", err)
	}
	log.Printf("✓ Cleanup complete: %d appointments purged", deleted)
}
