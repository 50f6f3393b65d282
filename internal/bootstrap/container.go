package bootstrap

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"medical-triage-be/internal/config"
	"medical-triage-be/internal/controller"
	"medical-triage-be/internal/pkg/logger"
	"medical-triage-be/internal/repository/contract"
	"medical-triage-be/internal/repository/implementation"
	"medical-triage-be/internal/repository/memory"
	"medical-triage-be/internal/repository/redisstore"
	"medical-triage-be/internal/service"
	"medical-triage-be/pkg/embedding"
	"medical-triage-be/pkg/knowledge"
	"medical-triage-be/pkg/livefetch"
	"medical-triage-be/pkg/llm/factory"
	"medical-triage-be/pkg/reasoning"
	"medical-triage-be/pkg/retrieval"
	"medical-triage-be/pkg/triage"

	pktNats "medical-triage-be/pkg/nats"
)

const auditTopicName = "TRIAGE_COMPLETED"

type Container struct {
	// Controllers
	TriageController controller.ITriageController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	AlertService    service.IAlertService
}

// NewContainer wires the triage pipeline. db may be nil when the
// in-memory knowledge index is configured.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS (emergency alerting, best effort)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	var natsSub *pktNats.Subscriber
	if natsPub != nil {
		natsSub, err = pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
			natsSub = nil
		}
	}

	// Redis (only dialed when the redis session store is configured)
	var rdb *redis.Client
	if cfg.Session.Store == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	// 3. Pipeline Components
	embeddingProvider := embedding.NewProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaModel,
		cfg.Ai.GeminiAPIKey,
	)
	log.Printf("[INFO] Using Embedding Provider: %s", cfg.Ai.EmbeddingProvider)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GeminiAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Knowledge Index
	knowledgeIndex := buildKnowledgeIndex(db, cfg, embeddingProvider)

	// Session Store
	var sessionStore triage.SessionStore
	if cfg.Session.Store == "redis" && rdb != nil {
		sessionStore = redisstore.NewSessionRepository(rdb, cfg.Session.HistoryLimit)
		log.Printf("[INFO] Using Session Store: REDIS")
	} else {
		sessionStore = memory.NewSessionRepository(cfg.Session.HistoryLimit)
		log.Printf("[INFO] Using Session Store: MEMORY")
	}

	// Retrieval + Reasoning + Orchestration
	liveFetcher := livefetch.NewFetcher(sysLogger)
	coordinator := retrieval.NewCoordinator(
		knowledgeIndex,
		embeddingProvider,
		liveFetcher,
		retrieval.Config{
			TopK:               cfg.Retrieval.TopK,
			MinSimilarity:      cfg.Retrieval.MinSimilarity,
			LiveFetchThreshold: cfg.Retrieval.LiveFetchThreshold,
		},
		sysLogger,
	)
	reasoningClient := reasoning.NewClient(llmProvider, sysLogger)
	orchestrator := triage.NewOrchestrator(sessionStore, coordinator, reasoningClient, cfg.Retrieval.TopK, sysLogger)

	// 4. Services
	publisherService := service.NewPublisherService(auditTopicName, pubSub)
	auditLogger := logger.NewIsolatedLogger("logs/audit.log")
	consumerService := service.NewConsumerService(pubSub, auditTopicName, auditLogger)

	alertLogger := logger.NewIsolatedLogger("logs/alerts.log")
	alertService := service.NewAlertService(natsSub, alertLogger)

	triageService := service.NewTriageService(orchestrator, publisherService, natsPub, sysLogger)

	// 5. Controllers
	return &Container{
		TriageController: controller.NewTriageController(triageService),
		ConsumerService:  consumerService,
		AlertService:     alertService,
	}
}

// buildKnowledgeIndex loads the corpus file and stands up the configured
// index backend. A missing corpus is not fatal: retrieval degrades to
// live fetch only.
func buildKnowledgeIndex(db *gorm.DB, cfg *config.Config, provider embedding.EmbeddingProvider) knowledge.Index {
	if cfg.Retrieval.KnowledgeIndex == "pgvector" && db != nil {
		repo := implementation.NewKnowledgeIndexRepository(db)
		if cfg.Retrieval.RebuildOnStart {
			rebuildIndex(repo, cfg, provider)
		}
		log.Printf("[INFO] Using Knowledge Index: PGVECTOR (%d chunks)", repo.Len())
		return repo
	}

	chunks, skipped, err := knowledge.LoadCorpusFile(cfg.Retrieval.CorpusPath)
	if err != nil {
		log.Printf("[WARN] Failed to load corpus %s: %v", cfg.Retrieval.CorpusPath, err)
		return nil
	}
	if skipped > 0 {
		log.Printf("[WARN] Skipped %d malformed corpus lines", skipped)
	}

	idx, err := knowledge.NewMemoryIndex(chunks, provider)
	if err != nil {
		log.Printf("[WARN] Failed to build memory index: %v", err)
		return nil
	}
	log.Printf("[INFO] Using Knowledge Index: MEMORY (%d chunks)", idx.Len())
	return idx
}

// rebuildIndex refreshes the pgvector index from the corpus file before
// serving. The index is a cache of the corpus, so a failed rebuild keeps
// the previous contents and only logs.
func rebuildIndex(repo contract.KnowledgeIndexRepository, cfg *config.Config, provider embedding.EmbeddingProvider) {
	chunks, skipped, err := knowledge.LoadCorpusFile(cfg.Retrieval.CorpusPath)
	if err != nil {
		log.Printf("[WARN] Rebuild skipped, failed to load corpus %s: %v", cfg.Retrieval.CorpusPath, err)
		return
	}
	if skipped > 0 {
		log.Printf("[WARN] Skipped %d malformed corpus lines", skipped)
	}

	embeddings, err := knowledge.EmbedChunks(chunks, provider)
	if err != nil {
		log.Printf("[WARN] Rebuild skipped, embedding failed: %v", err)
		return
	}

	if err := repo.Rebuild(context.Background(), chunks, embeddings); err != nil {
		log.Printf("[WARN] Rebuild failed, keeping existing index: %v", err)
		return
	}
	log.Printf("[INFO] Knowledge index rebuilt from %s (%d chunks)", cfg.Retrieval.CorpusPath, len(chunks))
}
