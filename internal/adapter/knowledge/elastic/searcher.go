package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	"github.com/haven-wellness/concierge/internal/domain"
	"github.com/haven-wellness/concierge/internal/observability/telemetry"
	"github.com/haven-wellness/concierge/internal/ports"
)

const maxAttempts = 2

// Searcher queries the document knowledge base. It absorbs every failure:
// after bounded retries the caller gets an empty slice, never an error, so a
// degraded search cluster degrades answers instead of breaking turns.
type Searcher struct {
	client *elasticsearch.Client
	index  string
	log    *zap.Logger
}

func NewSearcher(addresses []string, username, password, index string, log *zap.Logger) (ports.KnowledgeSearcher, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: addresses,
		Username:  username,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("elastic: create client: %w", err)
	}
	return &Searcher{client: client, index: index, log: log}, nil
}

type searchHit struct {
	Score  float64 `json:"_score"`
	Source struct {
		Content string `json:"content"`
		Source  string `json:"source"`
		Type    string `json:"type"`
	} `json:"_source"`
}

type searchResult struct {
	Hits struct {
		Hits []searchHit `json:"hits"`
	} `json:"hits"`
}

func (s *Searcher) Search(ctx context.Context, query string, k int) []domain.KnowledgeChunk {
	defer func(start time.Time) {
		telemetry.KnowledgeSearchLatency.Observe(time.Since(start).Seconds())
	}(time.Now())

	body, err := json.Marshal(map[string]any{
		"size": k,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"content^2", "source", "type"},
			},
		},
	})
	if err != nil {
		s.log.Error("elastic: marshal query", zap.Error(err))
		return nil
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		chunks, err := s.doSearch(ctx, body)
		if err == nil {
			return chunks
		}
		s.log.Warn("elastic: search attempt failed",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if ctx.Err() != nil {
			break
		}
	}
	return nil
}

func (s *Searcher) doSearch(ctx context.Context, body []byte) ([]domain.KnowledgeChunk, error) {
	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elastic: search status %s", res.Status())
	}

	var result searchResult
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("elastic: decode response: %w", err)
	}

	chunks := make([]domain.KnowledgeChunk, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		chunks = append(chunks, domain.KnowledgeChunk{
			Content:        hit.Source.Content,
			Source:         hit.Source.Source,
			Type:           hit.Source.Type,
			RelevanceScore: hit.Score,
		})
	}
	return chunks, nil
}
