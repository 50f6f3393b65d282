package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"medical-triage-be/internal/config"
	"medical-triage-be/internal/model"
	"medical-triage-be/internal/repository/implementation"
	"medical-triage-be/pkg/database"
	"medical-triage-be/pkg/embedding"
	"medical-triage-be/pkg/knowledge"
)

// Rebuilds the pgvector knowledge index from the corpus file. The index
// is a cache of the corpus, so a full rebuild is always safe.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	cfg := config.Load()

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Setting up extensions and schema...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS vector;`).Error; err != nil {
		log.Printf("Warn: Failed to create vector extension: %v. Continuing...", err)
	}
	if err := db.AutoMigrate(&model.KnowledgeChunk{}); err != nil {
		log.Fatal("Error: AutoMigrate failed:", err)
	}

	log.Printf("Step 2: Loading corpus from %s...", cfg.Retrieval.CorpusPath)
	chunks, skipped, err := knowledge.LoadCorpusFile(cfg.Retrieval.CorpusPath)
	if err != nil {
		log.Fatal("Error: Failed to load corpus:", err)
	}
	if skipped > 0 {
		log.Printf("Warn: Skipped %d malformed corpus lines", skipped)
	}
	log.Printf("Loaded %d chunks", len(chunks))

	provider := embedding.NewProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaModel,
		cfg.Ai.GeminiAPIKey,
	)

	log.Println("Step 3: Generating embeddings...")
	embeddings, err := knowledge.EmbedChunks(chunks, provider)
	if err != nil {
		log.Fatal("Error: Failed to embed corpus:", err)
	}

	log.Println("Step 4: Rebuilding index...")
	repo := implementation.NewKnowledgeIndexRepository(db)
	if err := repo.Rebuild(context.Background(), chunks, embeddings); err != nil {
		log.Fatal("Error: Rebuild failed:", err)
	}

	count, err := repo.Count(context.Background())
	if err != nil {
		log.Fatal("Error: Failed to verify index:", err)
	}
	log.Printf("Done. Index now holds %d chunks.", count)
}
