package service

import (
	"github.com/talkboard/talkboard/internal/domain"
	"github.com/talkboard/talkboard/internal/logger"
)

// to mock service in tests
type RepairService interface {
	Repair(threadId domain.ThreadId) error
}

type RepairStorage interface {
	CachedReplyCount(threadId domain.ThreadId) (int, error)
	CountReplies(threadId domain.ThreadId) (int, error)
	AdjustReplyCount(threadId domain.ThreadId, delta int) error
}

// Repairer restores the reply_count invariant. It is a maintenance
// operation, not part of the write path: reply creation keeps the counter
// in its own transaction, and transient drift between concurrent appends
// is tolerated until the next repair.
type Repairer struct {
	storage RepairStorage
}

func NewRepairer(storage RepairStorage) *Repairer {
	return &Repairer{storage}
}

// Repair recounts from the reply store and applies the signed delta to the
// cached value. Adjusting instead of overwriting means increments committed
// after the recount are preserved. A detected mismatch is a consistency
// warning: logged, corrected, never surfaced as a failure.
func (r *Repairer) Repair(threadId domain.ThreadId) error {
	cached, err := r.storage.CachedReplyCount(threadId)
	if err != nil {
		return err
	}
	actual, err := r.storage.CountReplies(threadId)
	if err != nil {
		return err
	}

	delta := actual - cached
	if delta == 0 {
		return nil
	}

	logger.Log.Warn("reply count mismatch detected",
		"thread", threadId, "cached", cached, "actual", actual, "delta", delta)
	return r.storage.AdjustReplyCount(threadId, delta)
}
