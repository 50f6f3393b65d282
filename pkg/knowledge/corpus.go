package knowledge

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"medical-triage-be/pkg/embedding"
)

// LoadCorpus reads a line-delimited JSON corpus. Each line carries
// {id, text, source_name, source_url, category, tags[]}. Malformed
// lines are skipped; their count is reported so callers can log it.
func LoadCorpus(r io.Reader) (chunks []Chunk, skipped int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var c Chunk
		if err := json.Unmarshal([]byte(line), &c); err != nil || c.ID == "" || c.Text == "" {
			skipped++
			continue
		}
		c.Score = 0
		chunks = append(chunks, c)
	}

	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("read corpus: %w", err)
	}
	return chunks, skipped, nil
}

// LoadCorpusFile is a convenience wrapper around LoadCorpus.
func LoadCorpusFile(path string) ([]Chunk, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open corpus %s: %w", path, err)
	}
	defer f.Close()
	return LoadCorpus(f)
}

// EmbedChunks generates one document embedding per chunk, in corpus
// order. Used by index rebuilds, where a single failed chunk aborts
// the whole pass rather than leaving a partial index.
func EmbedChunks(chunks []Chunk, provider embedding.EmbeddingProvider) ([][]float32, error) {
	embeddings := make([][]float32, len(chunks))
	for i, c := range chunks {
		res, err := provider.Generate(c.Text, embedding.TaskTypeDocument)
		if err != nil {
			return nil, fmt.Errorf("embed chunk %s: %w", c.ID, err)
		}
		embeddings[i] = res.Embedding.Values
	}
	return embeddings, nil
}
