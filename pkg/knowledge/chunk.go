package knowledge

import "fmt"

// Category tags attached to corpus entries. They hint the classifier at
// the kind of guidance a chunk carries.
const (
	CategoryRedFlag     = "red_flag"
	CategorySelfCare    = "self_care"
	CategoryAppointment = "appointment"
)

// Chunk is one retrievable unit of medical guidance. Produced by the
// index or the live fetcher and read-only downstream.
type Chunk struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	SourceName string   `json:"source_name"`
	SourceURL  string   `json:"source_url"`
	Category   string   `json:"category"`
	Tags       []string `json:"tags"`

	// Score is the similarity against the current query, in roughly
	// [0,1] for normalized embeddings. Populated during search.
	Score float64 `json:"score"`
}

func (c Chunk) String() string {
	return fmt.Sprintf("Chunk{id=%q, category=%q, source=%q, score=%.3f}",
		c.ID, c.Category, c.SourceName, c.Score)
}
