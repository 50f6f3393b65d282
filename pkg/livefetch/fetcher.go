package livefetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"medical-triage-be/internal/pkg/logger"
	"medical-triage-be/pkg/knowledge"

	"github.com/PuerkitoBio/goquery"
)

const (
	connectTimeout = 10 * time.Second
	readTimeout    = 15 * time.Second

	// Pages thinner than this are navigation shells, not guidance.
	minContentLength = 100
)

// Fetcher pulls fresh guidance pages from trusted medical sources when
// the local corpus has no strong match. Every source is attempted once,
// independently; a failed source is simply omitted.
type Fetcher struct {
	client *http.Client
	logger logger.ILogger
}

func NewFetcher(log logger.ILogger) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: connectTimeout + readTimeout,
			Transport: &http.Transport{
				ResponseHeaderTimeout: connectTimeout,
			},
		},
		logger: log,
	}
}

// FetchMedicalInfo queries all configured sources for a symptom keyword
// concurrently and returns whatever succeeded, highest-trust first.
func (f *Fetcher) FetchMedicalInfo(ctx context.Context, symptom, sessionID string) []knowledge.Chunk {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make([]knowledge.Chunk, 0, len(sources))
	)

	for _, src := range sources {
		wg.Add(1)
		go func(src source) {
			defer wg.Done()
			chunk, err := f.fetchSource(ctx, src, symptom, sessionID)
			if err != nil {
				f.logger.Warn("livefetch", "source fetch failed", map[string]interface{}{
					"source":  src.name,
					"symptom": symptom,
					"error":   err.Error(),
				})
				return
			}
			mu.Lock()
			results = append(results, chunk)
			mu.Unlock()
		}(src)
	}
	wg.Wait()

	// Deterministic order: sources are few, sort by descending trust.
	for i := 0; i < len(results); i++ {
		for j := i + 1; j < len(results); j++ {
			if results[j].Score > results[i].Score {
				results[i], results[j] = results[j], results[i]
			}
		}
	}

	f.logger.Info("livefetch", "live retrieval complete", map[string]interface{}{
		"symptom": symptom,
		"chunks":  len(results),
	})
	return results
}

func (f *Fetcher) fetchSource(ctx context.Context, src source, symptom, sessionID string) (knowledge.Chunk, error) {
	pageURL := src.buildURL(cleanSymptomForURL(symptom))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return knowledge.Chunk{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Medical-Triage-Assistant)")

	resp, err := f.client.Do(req)
	if err != nil {
		return knowledge.Chunk{}, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return knowledge.Chunk{}, fmt.Errorf("fetch %s: HTTP %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return knowledge.Chunk{}, fmt.Errorf("parse %s: %w", pageURL, err)
	}

	content := extractContent(doc, src.selectors)
	if len(content) < minContentLength {
		return knowledge.Chunk{}, fmt.Errorf("fetch %s: content too short (%d chars)", pageURL, len(content))
	}

	return knowledge.Chunk{
		ID:         fmt.Sprintf("live_%s_%s", src.slug, sessionID),
		Text:       content,
		SourceName: src.name,
		SourceURL:  pageURL,
		Category:   DetermineCategory(content),
		Tags:       []string{symptom},
		Score:      src.score,
	}, nil
}

// extractContent walks the selector groups in priority order and
// accumulates readable paragraphs up to a fixed length cap.
func extractContent(doc *goquery.Document, selectorGroups []string) string {
	var b strings.Builder

	for _, sel := range selectorGroups {
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := strings.TrimSpace(s.Text())
			if len(text) > 30 && len(text) < 500 {
				b.WriteString(text)
				b.WriteString(" ")
			}
			return b.Len() <= 1000
		})
		if b.Len() > 300 {
			break
		}
	}

	return cleanMedicalContent(b.String())
}

func cleanMedicalContent(raw string) string {
	content := strings.Join(strings.Fields(raw), " ")
	for _, noise := range []string{"Cookie policy", "Privacy policy", "Advertisement"} {
		if i := strings.Index(content, noise); i >= 0 {
			content = content[:i]
		}
	}
	return strings.TrimSpace(content)
}

func cleanSymptomForURL(symptom string) string {
	s := strings.ToLower(symptom)
	for _, prefix := range []string{"i have ", "i am ", "facing ", "experiencing ", "feeling "} {
		s = strings.ReplaceAll(s, prefix, "")
	}
	s = strings.ReplaceAll(s, " pain", "-pain")
	s = strings.ReplaceAll(s, " ", "-")

	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DetermineCategory tags fetched content with the triage category its
// wording suggests. Defaults to appointment when unclear.
func DetermineCategory(content string) string {
	lower := strings.ToLower(content)

	redFlags := []string{
		"call 911", "emergency", "immediate", "urgent", "life threatening",
		"seek immediate care", "emergency room", "ambulance", "critical",
		"severe", "heart attack", "stroke", "breathing difficulty", "chest pain",
	}
	for _, marker := range redFlags {
		if strings.Contains(lower, marker) {
			return knowledge.CategoryRedFlag
		}
	}

	selfCare := []string{
		"home treatment", "self care", "rest", "over-the-counter",
		"home remedies", "usually resolves", "mild", "minor",
		"self-limiting", "home management",
	}
	for _, marker := range selfCare {
		if strings.Contains(lower, marker) {
			return knowledge.CategorySelfCare
		}
	}

	return knowledge.CategoryAppointment
}
