package service

import (
	"github.com/talkboard/talkboard/internal/domain"
	"github.com/talkboard/talkboard/internal/logger"
	"github.com/talkboard/talkboard/internal/search"
)

// SearchIndex is what the indexer needs from the external search client.
type SearchIndex interface {
	Healthy() bool
	IndexThread(doc search.ThreadDocument) error
	DeleteThread(id domain.ThreadId) error
}

// Indexer pushes thread documents to the search index, fire-and-forget:
// index lag is tolerated, mutations never fail because search is down.
type Indexer struct {
	index SearchIndex
}

func NewIndexer(index SearchIndex) *Indexer {
	return &Indexer{index: index}
}

func (i *Indexer) ThreadUpserted(m domain.ThreadMetadata, firstReplyBody domain.ReplyBody) {
	if i == nil || i.index == nil || !i.index.Healthy() {
		return
	}
	doc := search.ThreadDocument{
		Id:          m.Id,
		Title:       m.Title,
		Body:        firstReplyBody,
		CategoryId:  m.Category,
		IsTrusted:   m.Trusted,
		ReplyCount:  m.ReplyCount,
		LastReplyAt: m.LastReplyAt.Unix(),
	}
	go func() {
		if err := i.index.IndexThread(doc); err != nil {
			logger.Log.Error("index thread", "thread", m.Id, "err", err)
		}
	}()
}

func (i *Indexer) ThreadDeleted(id domain.ThreadId) {
	if i == nil || i.index == nil || !i.index.Healthy() {
		return
	}
	go func() {
		if err := i.index.DeleteThread(id); err != nil {
			logger.Log.Error("deindex thread", "thread", id, "err", err)
		}
	}()
}
