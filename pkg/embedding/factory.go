package embedding

// NewProvider selects the embedding backend. "simple" is the default:
// deterministic, offline, and the only provider the fallback triage
// path may rely on.
func NewProvider(providerType, ollamaBaseURL, ollamaModel, geminiKey string) EmbeddingProvider {
	switch providerType {
	case "ollama":
		return NewOllamaProvider(ollamaBaseURL, ollamaModel)
	case "gemini":
		return NewGeminiProvider(geminiKey)
	default:
		return NewSimpleProvider()
	}
}
