package service

import (
	"github.com/talkboard/talkboard/internal/domain"
	internal_errors "github.com/talkboard/talkboard/internal/errors"
)

// closeTransition validates a requested open/closed change against the
// acting identity. Callers must only invoke it when the requested value
// differs from the current one; a no-op request is never checked against
// authorization. Returns the closer to persist: the acting user's id when
// closing, nil when reopening.
//
// Reopening deliberately requires the same authority as closing; there are
// no separate "reopen" rights.
func closeTransition(current *domain.ThreadMetadata, requested bool, acting *domain.User, authz Authorizer) (*domain.UserId, error) {
	if acting == nil {
		return nil, &internal_errors.ValidationError{
			Field:   "closed",
			Message: "An acting user is required to change the closed state",
		}
	}
	if !authz.CloseableBy(current, acting) {
		msg := "You are not allowed to close this thread"
		if !requested {
			msg = "You are not allowed to reopen this thread"
		}
		return nil, &internal_errors.ValidationError{Field: "closed", Message: msg}
	}

	if requested {
		closer := acting.Id
		return &closer, nil
	}
	return nil, nil
}
