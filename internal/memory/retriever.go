package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/easeaico/moodjournal/internal/types"
)

// EntryIndex 存取条目向量。
type EntryIndex interface {
	UpdateEmbedding(ctx context.Context, id int, embedding []float32) error
	SearchSimilar(ctx context.Context, userID string, excludeID int, embedding []float32, topK int, threshold float64) ([]types.SimilarEntry, error)
}

// Retriever provides semantic search over a user's journal entries.
type Retriever struct {
	embedder            Embedder
	index               EntryIndex
	topK                int
	similarityThreshold float64
}

// NewRetriever creates a new Retriever.
func NewRetriever(embedder Embedder, index EntryIndex, topK int, threshold float64) *Retriever {
	if topK <= 0 {
		topK = 5
	}
	if threshold <= 0 {
		threshold = 0.7
	}
	return &Retriever{
		embedder:            embedder,
		index:               index,
		topK:                topK,
		similarityThreshold: threshold,
	}
}

// DocumentText is the text embedded for an entry: its title and AI summaries,
// or the raw content before analysis.
func DocumentText(entry *types.JournalEntry) string {
	if entry == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	for _, part := range []string{entry.Title, entry.Nutshell, entry.Summary} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if entry.Nutshell == "" && entry.Summary == "" {
		if content := strings.TrimSpace(entry.Content); content != "" {
			parts = append(parts, content)
		}
	}
	return strings.Join(parts, "\n")
}

// Index embeds entry and stores the vector.
func (r *Retriever) Index(ctx context.Context, entry *types.JournalEntry) error {
	if r.embedder == nil || r.index == nil {
		return fmt.Errorf("retriever not properly configured")
	}
	text := DocumentText(entry)
	if text == "" {
		return nil
	}

	vec, err := r.embedder.EmbedDocument(ctx, text)
	if err != nil {
		return err
	}
	if len(vec) == 0 {
		return nil
	}
	if err := r.index.UpdateEmbedding(ctx, entry.ID, vec); err != nil {
		return err
	}
	entry.Embedding = vec
	return nil
}

// Similar returns the top-k entries closest to entry, excluding entry itself.
func (r *Retriever) Similar(ctx context.Context, entry *types.JournalEntry) ([]types.SimilarEntry, error) {
	if entry == nil {
		return nil, nil
	}
	if r.embedder == nil || r.index == nil {
		return nil, fmt.Errorf("retriever not properly configured")
	}

	vec := entry.Embedding
	if len(vec) == 0 {
		text := DocumentText(entry)
		if text == "" {
			return nil, nil
		}
		var err error
		vec, err = r.embedder.EmbedQuery(ctx, text)
		if err != nil {
			return nil, err
		}
	}

	return r.index.SearchSimilar(ctx, entry.UserID, entry.ID, vec, r.topK, r.similarityThreshold)
}
