package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"medical-triage-be/internal/config"
	"medical-triage-be/internal/pkg/logger"
	"medical-triage-be/internal/repository/memory"
	"medical-triage-be/pkg/embedding"
	"medical-triage-be/pkg/knowledge"
	"medical-triage-be/pkg/livefetch"
	"medical-triage-be/pkg/llm"
	"medical-triage-be/pkg/llm/factory"
	"medical-triage-be/pkg/reasoning"
	"medical-triage-be/pkg/retrieval"
	"medical-triage-be/pkg/triage"
)

var (
	title   = color.New(color.FgCyan, color.Bold)
	prompt  = color.New(color.FgGreen, color.Bold)
	warnCol = color.New(color.FgYellow)
	emerg   = color.New(color.FgRed, color.Bold)
	reply   = color.New(color.FgWhite)
)

// Interactive console front end for the triage pipeline. Runs fully
// in-process: memory index, memory sessions, and the rule-table
// fallback when no reasoning provider is configured.
func main() {
	cfg := config.Load()
	simLogger := logger.NewIsolatedLogger("logs/simulation.log")

	orchestrator := buildPipeline(cfg, simLogger)
	sessionID := uuid.New().String()[:8]

	title.Println("============================================")
	title.Println(" MEDICAL TRIAGE ASSISTANT - CONSOLE MODE")
	title.Println("============================================")
	fmt.Println("Describe your symptoms and I'll help assess your situation.")
	fmt.Println("Commands: 'quit' to exit, 'help' for guidance, 'demo' for automated tests")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		prompt.Print("\nYou: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(input) {
		case "quit", "exit":
			fmt.Println("\nThank you for using Medical Triage Assistant!")
			warnCol.Println("Remember: this is for educational purposes only.")
			warnCol.Println("Always consult real medical professionals for health concerns.")
			return
		case "help":
			showHelp()
			continue
		case "demo":
			runAutomatedDemo(orchestrator)
			fmt.Println("\nDemo completed! You can now continue with manual input.")
			continue
		case "":
			fmt.Println("Please describe your symptoms, or type 'help' for guidance.")
			continue
		}

		processSymptoms(orchestrator, sessionID, input)
	}
}

func buildPipeline(cfg *config.Config, simLogger logger.ILogger) *triage.Orchestrator {
	embedder := embedding.NewProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaModel,
		cfg.Ai.GeminiAPIKey,
	)

	var index knowledge.Index
	chunks, skipped, err := knowledge.LoadCorpusFile(cfg.Retrieval.CorpusPath)
	if err != nil {
		warnCol.Printf("Corpus unavailable (%v); retrieval will rely on live sources.\n", err)
	} else {
		if skipped > 0 {
			log.Printf("Skipped %d malformed corpus lines", skipped)
		}
		memIdx, err := knowledge.NewMemoryIndex(chunks, embedder)
		if err != nil {
			warnCol.Printf("Index build failed (%v); retrieval will rely on live sources.\n", err)
		} else {
			index = memIdx
		}
	}

	coordinator := retrieval.NewCoordinator(
		index,
		embedder,
		livefetch.NewFetcher(simLogger),
		retrieval.Config{
			TopK:               cfg.Retrieval.TopK,
			MinSimilarity:      cfg.Retrieval.MinSimilarity,
			LiveFetchThreshold: cfg.Retrieval.LiveFetchThreshold,
		},
		simLogger,
	)

	var provider llm.LLMProvider
	provider, err = factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GeminiAPIKey,
	)
	if err != nil {
		warnCol.Printf("No reasoning provider available (%v); using rule-table analysis.\n", err)
		provider = nil
	}

	analyzer := reasoning.NewClient(provider, simLogger)
	sessions := memory.NewSessionRepository(cfg.Session.HistoryLimit)

	return triage.NewOrchestrator(sessions, coordinator, analyzer, cfg.Retrieval.TopK, simLogger)
}

func processSymptoms(o *triage.Orchestrator, sessionID, symptoms string) {
	fmt.Println("\nAnalyzing your symptoms...")

	if triage.IsObviouslyNonMedical(symptoms) {
		reply.Println(triage.Responders()[triage.RouteNonMedical].Render(sessionID, symptoms, nil))
		return
	}

	resp := o.Process(context.Background(), sessionID, symptoms)
	printResponse(resp)
}

func printResponse(resp *triage.Response) {
	fmt.Println(strings.Repeat("-", 60))
	if resp.Emergency {
		emerg.Printf("ROUTE: %s\n\n", resp.Route)
	} else {
		prompt.Printf("ROUTE: %s\n\n", resp.Route)
	}
	reply.Println(resp.Reply)
	fmt.Println(strings.Repeat("-", 60))
}

func runAutomatedDemo(o *triage.Orchestrator) {
	testCases := []struct {
		scenario string
		symptoms string
	}{
		{"EMERGENCY SCENARIO", "I have severe crushing chest pain that started 10 minutes ago, radiating down my left arm. I'm sweating and feel nauseous."},
		{"SELF-CARE SCENARIO", "I have a mild headache and runny nose that started this morning. No fever."},
		{"APPOINTMENT SCENARIO", "I've been having recurring headaches for the past 2 weeks, usually in the afternoon."},
		{"COMPLEX EMERGENCY", "Sudden severe shortness of breath, chest pain, and dizziness. Started after long flight."},
		{"AMBIGUOUS SYMPTOMS", "I feel tired and have been coughing occasionally for a few days."},
	}

	fmt.Println("\nRunning automated demo tests...")
	for i, tc := range testCases {
		title.Printf("\nTEST CASE %d: %s\n", i+1, tc.scenario)
		fmt.Printf("Symptoms: %s\n", tc.symptoms)

		sessionID := fmt.Sprintf("demo-%d", i+1)
		resp := o.Process(context.Background(), sessionID, tc.symptoms)
		printResponse(resp)
	}
}

func showHelp() {
	fmt.Println("\nHOW TO USE:")
	fmt.Println("  Describe your symptoms in plain language, for example:")
	fmt.Println("  - 'I have chest pain'")
	fmt.Println("  - 'headache for 3 days'")
	fmt.Println("  - 'fever and cough'")
	fmt.Println("\nCAPABILITIES:")
	fmt.Println("  - Symptom analysis grounded in a medical knowledge base")
	fmt.Println("  - Live NHS / Mayo Clinic / MedlinePlus lookups on low-confidence matches")
	fmt.Println("  - Triage routing (Emergency / Self-Care / Appointment)")
	fmt.Println("  - Session tracking and conversation history")
}
