package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/talkboard/talkboard/internal/domain"
	internal_errors "github.com/talkboard/talkboard/internal/errors"
	"github.com/talkboard/talkboard/internal/logger"
)

// to mock service in tests
type ThreadService interface {
	Create(ctx context.Context, creationData domain.ThreadCreationData) (domain.ThreadId, error)
	Get(ctx context.Context, id domain.ThreadId, viewer *domain.User) (domain.Thread, error)
	Update(ctx context.Context, id domain.ThreadId, upd domain.ThreadUpdateData, acting *domain.User) error
	Delete(ctx context.Context, id domain.ThreadId) error
}

type ThreadStorage interface {
	CreateThread(creationData domain.ThreadCreationData) (domain.ThreadId, error)
	ThreadMeta(id domain.ThreadId) (domain.ThreadMetadata, error)
	GetThread(id domain.ThreadId) (domain.Thread, error)
	UpdateThread(id domain.ThreadId, patch domain.ThreadPatch) error
	DeleteThread(id domain.ThreadId) (domain.CategoryId, error)
	RecordThreadView(id domain.ThreadId, viewer domain.UserId) error
	FirstReply(id domain.ThreadId) (*domain.Reply, error)
	EditReplyBody(id domain.ReplyId, body domain.ReplyBody) error
}

type ThreadValidator interface {
	Title(title domain.ThreadTitle) error
}

// ThreadIndexer keeps the search index in step with thread mutations.
type ThreadIndexer interface {
	ThreadUpserted(m domain.ThreadMetadata, firstReplyBody domain.ReplyBody)
	ThreadDeleted(id domain.ThreadId)
}

// CategoryCounter maintains the pre-computed per-category thread counts.
type CategoryCounter interface {
	Incr(ctx context.Context, category domain.CategoryId) error
	Decr(ctx context.Context, category domain.CategoryId) error
}

type Thread struct {
	storage   ThreadStorage
	validator ThreadValidator
	authz     Authorizer
	indexer   ThreadIndexer
	counts    CategoryCounter
}

func NewThread(storage ThreadStorage, validator ThreadValidator, authz Authorizer, indexer ThreadIndexer, counts CategoryCounter) *Thread {
	return &Thread{storage, validator, authz, indexer, counts}
}

// Create validates, persists, then runs side effects, in that order.
// A non-empty body becomes the first reply inside the storage transaction.
func (t *Thread) Create(ctx context.Context, creationData domain.ThreadCreationData) (domain.ThreadId, error) {
	if err := t.validator.Title(creationData.Title); err != nil {
		return -1, err
	}
	creationData.Body = sanitizeBody(creationData.Body)

	id, err := t.storage.CreateThread(creationData)
	if err != nil {
		return -1, err
	}

	if t.counts != nil {
		if err := t.counts.Incr(ctx, creationData.Category); err != nil {
			logger.Log.Warn("category count incr failed", "category", creationData.Category, "err", err)
		}
	}
	t.reindex(id)
	return id, nil
}

// Get returns the thread with its replies and records a read receipt for
// an identified viewer. Trust-gated threads read as not found to viewers
// without access.
func (t *Thread) Get(ctx context.Context, id domain.ThreadId, viewer *domain.User) (domain.Thread, error) {
	thread, err := t.storage.GetThread(id)
	if err != nil {
		return domain.Thread{}, err
	}
	if !domain.ThreadVisible(&thread.ThreadMetadata, viewer.TrustedAccess()) {
		return domain.Thread{}, &internal_errors.ErrorWithStatusCode{
			Message:    "Thread not found",
			StatusCode: http.StatusNotFound,
		}
	}

	if viewer != nil {
		if err := t.storage.RecordThreadView(id, viewer.Id); err != nil {
			logger.Log.Warn("record thread view failed", "thread", id, "err", err)
		}
	}
	return thread, nil
}

// Update runs the ordered steps of the aggregate's update contract:
// validate, check the close/reopen transition, persist the main update,
// and only then sync the mirrored first-reply body.
func (t *Thread) Update(ctx context.Context, id domain.ThreadId, upd domain.ThreadUpdateData, acting *domain.User) error {
	if err := t.validator.Title(upd.Title); err != nil {
		return err
	}

	current, err := t.storage.ThreadMeta(id)
	if err != nil {
		return err
	}

	patch := domain.ThreadPatch{Title: upd.Title, Sticky: upd.Sticky, Nsfw: upd.Nsfw}
	if upd.Closed != nil && *upd.Closed != current.Closed {
		closer, err := closeTransition(&current, *upd.Closed, acting, t.authz)
		if err != nil {
			return err
		}
		patch.SetClosed = true
		patch.Closed = *upd.Closed
		patch.Closer = closer
	}

	if err := t.storage.UpdateThread(id, patch); err != nil {
		return err
	}

	if err := t.syncFirstReply(id, upd.Body); err != nil {
		return fmt.Errorf("thread updated but first reply sync failed: %w", err)
	}

	t.reindex(id)
	return nil
}

// syncFirstReply keeps the mirrored body in lockstep with the first stored
// reply. It never runs on creation, only after a successful update, and
// only when a differing non-empty body was supplied.
func (t *Thread) syncFirstReply(id domain.ThreadId, body *domain.ReplyBody) error {
	if body == nil {
		return nil
	}
	clean := sanitizeBody(*body)
	if clean == "" {
		return nil
	}

	first, err := t.storage.FirstReply(id)
	if err != nil {
		return err
	}
	if first == nil || first.Body == clean {
		return nil
	}
	return t.storage.EditReplyBody(first.Id, clean)
}

// Delete cascades to replies and read receipts; irreversible.
func (t *Thread) Delete(ctx context.Context, id domain.ThreadId) error {
	category, err := t.storage.DeleteThread(id)
	if err != nil {
		return err
	}

	if t.counts != nil {
		if err := t.counts.Decr(ctx, category); err != nil {
			logger.Log.Warn("category count decr failed", "category", category, "err", err)
		}
	}
	if t.indexer != nil {
		t.indexer.ThreadDeleted(id)
	}
	return nil
}

func (t *Thread) reindex(id domain.ThreadId) {
	if t.indexer == nil {
		return
	}
	meta, err := t.storage.ThreadMeta(id)
	if err != nil {
		logger.Log.Warn("reindex skipped, metadata fetch failed", "thread", id, "err", err)
		return
	}
	var body domain.ReplyBody
	if first, err := t.storage.FirstReply(id); err == nil && first != nil {
		body = first.Body
	}
	t.indexer.ThreadUpserted(meta, body)
}
