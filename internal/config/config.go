package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Ai        AIConfig
	Retrieval RetrievalConfig
	Session   SessionConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	EmbeddingProvider string // "simple", "ollama" or "gemini"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama" or "gemini"
	LLMModel          string // e.g. "llama3", "gemini-1.5-flash"
	GeminiAPIKey      string
}

type RetrievalConfig struct {
	TopK               int
	MinSimilarity      float64
	LiveFetchThreshold float64
	CorpusPath         string
	KnowledgeIndex     string // "memory" or "pgvector"
	RebuildOnStart     bool
}

type SessionConfig struct {
	HistoryLimit int
	Store        string // "memory" or "redis"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "simple"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:          getEnv("LLM_MODEL", "gemini-1.5-flash"),
			GeminiAPIKey:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Retrieval: RetrievalConfig{
			TopK:               getEnvAsInt("TOP_K", 5),
			MinSimilarity:      getEnvAsFloat("MIN_SIMILARITY", 0.20),
			LiveFetchThreshold: getEnvAsFloat("LIVE_FETCH_THRESHOLD", 0.60),
			CorpusPath:         getEnv("CORPUS_PATH", "data/corpus.jsonl"),
			KnowledgeIndex:     getEnv("KNOWLEDGE_INDEX", "memory"),
			RebuildOnStart:     getEnvAsBool("REBUILD_INDEX_ON_START", false),
		},
		Session: SessionConfig{
			HistoryLimit: getEnvAsInt("SESSION_HISTORY_LIMIT", 5),
			Store:        getEnv("SESSION_STORE", "memory"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
