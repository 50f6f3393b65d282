package embedding

import (
	"strings"

	"medical-triage-be/pkg/utils"
)

// SimpleDimensions is the fixed dimensionality of the hash embedding.
const SimpleDimensions = 384

// SimpleProvider is a deterministic, fully offline embedding function.
// Each token is murmur-hashed into one of 384 buckets and the resulting
// count vector is L2 normalized. Not a learned model, but stable across
// runs, which keeps the fallback triage path reproducible.
type SimpleProvider struct{}

func NewSimpleProvider() EmbeddingProvider {
	return &SimpleProvider{}
}

func (p *SimpleProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	vector := make([]float32, SimpleDimensions)

	for _, token := range strings.Fields(strings.ToLower(text)) {
		h := murmur32([]byte(token))
		if h < 0 {
			h = -h
		}
		vector[h%SimpleDimensions] += 1.0
	}

	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{
			Values: utils.NormalizeVector(vector),
		},
	}, nil
}

// murmur32 is a small MurmurHash2 variant, kept local so the bucket
// assignment never changes underneath an already-built index.
func murmur32(data []byte) int {
	const m = 0x5bd1e995
	h := int32(-1750423412) // 0x9747b28c
	i := 0
	length := len(data)

	for length >= 4 {
		k := int32(data[i]) | int32(data[i+1])<<8 | int32(data[i+2])<<16 | int32(data[i+3])<<24
		k *= m
		k ^= int32(uint32(k) >> 24)
		k *= m
		h *= m
		h ^= k
		i += 4
		length -= 4
	}

	switch length {
	case 3:
		h ^= int32(data[i+2]) << 16
		fallthrough
	case 2:
		h ^= int32(data[i+1]) << 8
		fallthrough
	case 1:
		h ^= int32(data[i])
		h *= m
	}

	h ^= int32(uint32(h) >> 13)
	h *= m
	h ^= int32(uint32(h) >> 15)
	return int(h)
}
