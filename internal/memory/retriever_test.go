package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/easeaico/moodjournal/internal/types"
)

type mockEmbedder struct {
	queries   []string
	documents []string
	err       error
}

func (m *mockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	m.queries = append(m.queries, text)
	return []float32{0.1, 0.2}, m.err
}

func (m *mockEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	m.documents = append(m.documents, text)
	return []float32{0.3, 0.4}, m.err
}

type mockIndex struct {
	updated   map[int][]float32
	searched  []float32
	userID    string
	excludeID int
	topK      int
	threshold float64
}

func (m *mockIndex) UpdateEmbedding(ctx context.Context, id int, embedding []float32) error {
	if m.updated == nil {
		m.updated = make(map[int][]float32)
	}
	m.updated[id] = embedding
	return nil
}

func (m *mockIndex) SearchSimilar(ctx context.Context, userID string, excludeID int, embedding []float32, topK int, threshold float64) ([]types.SimilarEntry, error) {
	m.searched = embedding
	m.userID = userID
	m.excludeID = excludeID
	m.topK = topK
	m.threshold = threshold
	return []types.SimilarEntry{{ID: 2, Title: "Another walk", Similarity: 0.91}}, nil
}

func TestDocumentText(t *testing.T) {
	entry := &types.JournalEntry{Title: "Park", Content: "raw text"}
	if got := DocumentText(entry); got != "Park\nraw text" {
		t.Fatalf("unexpected document text before analysis: %q", got)
	}

	entry.Nutshell = "A calm walk."
	entry.Summary = "I walked in the park."
	if got := DocumentText(entry); got != "Park\nA calm walk.\nI walked in the park." {
		t.Fatalf("unexpected document text after analysis: %q", got)
	}

	if got := DocumentText(nil); got != "" {
		t.Fatalf("expected empty text for nil entry, got %q", got)
	}
}

func TestRetrieverIndexStoresEmbedding(t *testing.T) {
	embedder := &mockEmbedder{}
	index := &mockIndex{}
	retriever := NewRetriever(embedder, index, 0, 0)

	entry := &types.JournalEntry{ID: 9, Nutshell: "Good day.", Summary: "It was good."}
	if err := retriever.Index(context.Background(), entry); err != nil {
		t.Fatalf("Index returned error: %v", err)
	}
	if len(index.updated[9]) != 2 {
		t.Fatalf("expected embedding stored for entry 9, got %v", index.updated)
	}
	if len(entry.Embedding) != 2 {
		t.Fatalf("expected entry embedding set, got %v", entry.Embedding)
	}
	if len(embedder.documents) != 1 {
		t.Fatalf("expected one document embedding, got %d", len(embedder.documents))
	}
}

func TestRetrieverIndexSkipsEmptyEntry(t *testing.T) {
	embedder := &mockEmbedder{}
	retriever := NewRetriever(embedder, &mockIndex{}, 3, 0.5)

	if err := retriever.Index(context.Background(), &types.JournalEntry{ID: 1}); err != nil {
		t.Fatalf("Index returned error: %v", err)
	}
	if len(embedder.documents) != 0 {
		t.Fatalf("expected no embedding call, got %d", len(embedder.documents))
	}
}

func TestRetrieverSimilarUsesStoredEmbedding(t *testing.T) {
	embedder := &mockEmbedder{}
	index := &mockIndex{}
	retriever := NewRetriever(embedder, index, 3, 0.5)

	entry := &types.JournalEntry{ID: 4, UserID: "u1", Embedding: []float32{1, 0}}
	results, err := retriever.Similar(context.Background(), entry)
	if err != nil {
		t.Fatalf("Similar returned error: %v", err)
	}
	if len(results) != 1 || results[0].ID != 2 {
		t.Fatalf("unexpected results: %+v", results)
	}
	if len(embedder.queries) != 0 {
		t.Fatalf("expected stored embedding to be reused")
	}
	if index.userID != "u1" || index.excludeID != 4 || index.topK != 3 || index.threshold != 0.5 {
		t.Fatalf("unexpected search arguments: %+v", index)
	}
}

func TestRetrieverSimilarEmbedsQuery(t *testing.T) {
	embedder := &mockEmbedder{}
	index := &mockIndex{}
	retriever := NewRetriever(embedder, index, 0, 0)

	entry := &types.JournalEntry{ID: 4, UserID: "u1", Content: "rainy afternoon"}
	if _, err := retriever.Similar(context.Background(), entry); err != nil {
		t.Fatalf("Similar returned error: %v", err)
	}
	if len(embedder.queries) != 1 || embedder.queries[0] != "rainy afternoon" {
		t.Fatalf("unexpected queries: %v", embedder.queries)
	}
	if index.topK != 5 || index.threshold != 0.7 {
		t.Fatalf("expected default topK/threshold, got %d/%v", index.topK, index.threshold)
	}
}

func TestRetrieverPropagatesEmbedError(t *testing.T) {
	embedder := &mockEmbedder{err: errors.New("quota")}
	retriever := NewRetriever(embedder, &mockIndex{}, 0, 0)

	_, err := retriever.Similar(context.Background(), &types.JournalEntry{Content: "x"})
	if err == nil {
		t.Fatalf("expected error from embedder")
	}
}

func TestRetrieverRequiresDependencies(t *testing.T) {
	retriever := NewRetriever(nil, nil, 0, 0)
	if _, err := retriever.Similar(context.Background(), &types.JournalEntry{Content: "x"}); err == nil {
		t.Fatalf("expected configuration error")
	}
}

func TestFitDimensions(t *testing.T) {
	long := make([]float32, EmbeddingDimensions+10)
	got, err := fitDimensions(long, "m")
	if err != nil || len(got) != EmbeddingDimensions {
		t.Fatalf("expected truncation, got len=%d err=%v", len(got), err)
	}
	if _, err := fitDimensions(make([]float32, 3), "m"); err == nil {
		t.Fatalf("expected mismatch error")
	}
}
