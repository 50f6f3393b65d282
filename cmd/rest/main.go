package main

import (
	"context"
	"log"

	"gorm.io/gorm"

	"medical-triage-be/internal/bootstrap"
	"medical-triage-be/internal/config"
	"medical-triage-be/internal/server"
	"medical-triage-be/internal/tracer"
	"medical-triage-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (disabled unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database (only the pgvector index needs it)
	var gormDB *gorm.DB
	if cfg.Retrieval.KnowledgeIndex == "pgvector" {
		var err error
		gormDB, err = database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Audit Consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()
	go func() {
		log.Println("Background: Starting Emergency Alert Listener...")
		if err := container.AlertService.Listen(context.Background()); err != nil {
			log.Printf("Background Alert Listener Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
