// Package search adapts the external Meilisearch index to the thread
// retrieval contract: it owns index configuration, document shape and the
// translation of the visibility filter into an index-level condition.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	meili "github.com/meilisearch/meilisearch-go"

	"github.com/talkboard/talkboard/internal/domain"
	"github.com/talkboard/talkboard/internal/logger"
)

const idxThreads = "threads"

// ThreadDocument is the indexed projection of a thread. Body carries the
// first reply's text so queries match thread content, not just titles.
type ThreadDocument struct {
	Id          int64  `json:"id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	CategoryId  int64  `json:"category_id"`
	IsTrusted   bool   `json:"is_trusted"`
	ReplyCount  int    `json:"reply_count"`
	LastReplyAt int64  `json:"last_reply_at"` // unix seconds so the index can sort on it
}

type Query struct {
	Text           string
	Limit          int64
	Offset         int64
	IncludeTrusted bool
}

// Meili talks to the external index and tracks its health.
type Meili struct {
	client  meili.ServiceManager
	healthy atomic.Bool
	done    chan struct{}
}

// NewMeili creates the client and configures the threads index. An
// unreachable index is tolerated at startup; the health loop reconfigures
// once it recovers.
func NewMeili(url, apiKey string) *Meili {
	m := &Meili{
		client: meili.New(url, meili.WithAPIKey(apiKey)),
		done:   make(chan struct{}),
	}

	if _, err := m.client.Health(); err != nil {
		logger.Log.Warn("meilisearch unavailable", "url", url, "err", err)
		m.healthy.Store(false)
	} else {
		m.healthy.Store(true)
		m.configureIndex()
	}

	go m.healthLoop()
	return m
}

func (m *Meili) configureIndex() {
	if _, err := m.client.CreateIndex(&meili.IndexConfig{
		Uid:        idxThreads,
		PrimaryKey: "id",
	}); err != nil {
		logger.Log.Debug("create index (may already exist)", "err", err)
	}

	index := m.client.Index(idxThreads)
	filterable := []interface{}{"category_id", "is_trusted"}
	if _, err := index.UpdateFilterableAttributes(&filterable); err != nil {
		logger.Log.Error("update filterable attributes", "err", err)
	}
	sortable := []string{"reply_count", "last_reply_at"}
	if _, err := index.UpdateSortableAttributes(&sortable); err != nil {
		logger.Log.Error("update sortable attributes", "err", err)
	}
	searchable := []string{"title", "body"}
	if _, err := index.UpdateSearchableAttributes(&searchable); err != nil {
		logger.Log.Error("update searchable attributes", "err", err)
	}
}

func (m *Meili) healthLoop() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			_, err := m.client.Health()
			wasHealthy := m.healthy.Load()
			m.healthy.Store(err == nil)
			if err == nil && !wasHealthy {
				logger.Log.Info("meilisearch recovered, reconfiguring index")
				m.configureIndex()
			}
		}
	}
}

// Close stops the background health monitor.
func (m *Meili) Close() {
	close(m.done)
}

// Healthy reports whether the index is reachable.
func (m *Meili) Healthy() bool {
	return m.healthy.Load()
}

// Search returns a relevance-ordered page of thread identifiers plus the
// total match count. The sort expresses the vitality bias: relevance stays
// primary, reply count and recency break ties within relevance buckets.
// The caller bounds the call with ctx; this is the one cross-process
// dependency with unbounded latency risk.
func (m *Meili) Search(ctx context.Context, q Query) ([]domain.ThreadId, int, error) {
	if !m.healthy.Load() {
		return nil, 0, fmt.Errorf("meilisearch unhealthy")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 30
	}

	req := &meili.SearchRequest{
		Limit:                limit,
		Offset:               q.Offset,
		Sort:                 []string{"reply_count:desc", "last_reply_at:desc"},
		AttributesToRetrieve: []string{"id"},
	}
	if !q.IncludeTrusted {
		req.Filter = "is_trusted = false"
	}

	resp, err := m.client.Index(idxThreads).SearchWithContext(ctx, q.Text, req)
	if err != nil {
		m.healthy.Store(false)
		return nil, 0, fmt.Errorf("meilisearch search: %w", err)
	}

	ids := make([]domain.ThreadId, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		if id, ok := decodeId(hit); ok {
			ids = append(ids, id)
		}
	}
	return ids, int(resp.EstimatedTotalHits), nil
}

func decodeId(hit meili.Hit) (int64, bool) {
	raw, ok := hit["id"]
	if !ok {
		return 0, false
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, false
	}
	return id, true
}

// IndexThread adds or updates a thread document.
func (m *Meili) IndexThread(doc ThreadDocument) error {
	_, err := m.client.Index(idxThreads).AddDocuments([]ThreadDocument{doc}, nil)
	return err
}

// DeleteThread removes a thread document.
func (m *Meili) DeleteThread(id domain.ThreadId) error {
	_, err := m.client.Index(idxThreads).DeleteDocument(fmt.Sprintf("%d", id), nil)
	return err
}
