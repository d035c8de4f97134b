package service

import (
	"github.com/talkboard/talkboard/internal/domain"
)

// Authorizer is the boundary to the external identity/authorization
// collaborator: can this identity close (and, symmetrically, reopen)
// this thread.
type Authorizer interface {
	CloseableBy(t *domain.ThreadMetadata, acting *domain.User) bool
}

// StaffAuthorizer is the default capability check: staff, or the thread's
// original poster.
type StaffAuthorizer struct{}

func (StaffAuthorizer) CloseableBy(t *domain.ThreadMetadata, acting *domain.User) bool {
	if acting == nil {
		return false
	}
	return acting.Admin || acting.Moderator || acting.Id == t.Poster
}
