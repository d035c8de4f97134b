package service

import (
	"github.com/talkboard/talkboard/internal/domain"
	internal_errors "github.com/talkboard/talkboard/internal/errors"
)

type ReplyService interface {
	Create(threadId domain.ThreadId, author *domain.User, body domain.ReplyBody) (domain.ReplyId, error)
}

type ReplyStorage interface {
	CreateReply(threadId domain.ThreadId, author *domain.User, body domain.ReplyBody) (domain.ReplyId, error)
	ThreadMeta(id domain.ThreadId) (domain.ThreadMetadata, error)
	FirstReply(id domain.ThreadId) (*domain.Reply, error)
}

type Reply struct {
	storage ReplyStorage
	indexer ThreadIndexer
}

func NewReply(storage ReplyStorage, indexer ThreadIndexer) *Reply {
	return &Reply{storage, indexer}
}

func (r *Reply) Create(threadId domain.ThreadId, author *domain.User, body domain.ReplyBody) (domain.ReplyId, error) {
	clean := sanitizeBody(body)
	if clean == "" {
		return -1, &internal_errors.ValidationError{Field: "body", Message: "Body can't be empty"}
	}

	id, err := r.storage.CreateReply(threadId, author, clean)
	if err != nil {
		return -1, err
	}

	// Reply counters changed; refresh the search document.
	if r.indexer != nil {
		if meta, err := r.storage.ThreadMeta(threadId); err == nil {
			var firstBody domain.ReplyBody
			if first, err := r.storage.FirstReply(threadId); err == nil && first != nil {
				firstBody = first.Body
			}
			r.indexer.ThreadUpserted(meta, firstBody)
		}
	}
	return id, nil
}
