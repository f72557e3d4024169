// Command seed migrates the configured database and, when the catalog is
// empty, inserts the demo experts with slots for the coming days.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/Tushar07778/expert-session-booking/internal/config"
	"github.com/Tushar07778/expert-session-booking/internal/database"
	"github.com/Tushar07778/expert-session-booking/internal/repository"
	"github.com/Tushar07778/expert-session-booking/internal/seed"
)

func main() {
	days := flag.Int("days", 7, "number of days of slots to create, starting tomorrow")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	n, err := seed.Run(ctx, repository.NewExpertRepo(db), time.Now(), *days)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	if n == 0 {
		log.Printf("seed: catalog already populated, nothing to do")
		return
	}
	log.Printf("seed: inserted %d experts with %d days of slots", n, *days)
}
