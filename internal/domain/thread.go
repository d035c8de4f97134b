package domain

import (
	"time"
)

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	Title    ThreadTitle
	Category CategoryId
	Poster   User
	Body     ReplyBody // optional; non-empty creates the first reply atomically
	Trusted  bool
	Nsfw     bool
}

// ThreadUpdateData carries the caller-supplied fields of a thread update.
// Nil pointers mean "leave unchanged". Body mirrors the first reply's text.
type ThreadUpdateData struct {
	Title  ThreadTitle
	Body   *ReplyBody
	Sticky *bool
	Closed *bool
	Nsfw   *bool
}

type ThreadMetadata struct {
	Id          ThreadId
	Title       ThreadTitle
	Category    CategoryId
	Poster      UserId
	Closer      *UserId // non-nil iff the thread is closed
	LastReplier *UserId
	ReplyCount  int
	LastReplyAt time.Time
	Sticky      bool
	Closed      bool
	Trusted     bool
	Nsfw        bool
	CreatedAt   time.Time
}

type Thread struct {
	ThreadMetadata
	Replies []*Reply
}

// FirstReply returns the chronologically first reply, or nil for a thread
// created without an initiating body.
func (t *Thread) FirstReply() *Reply {
	if len(t.Replies) == 0 {
		return nil
	}
	return t.Replies[0]
}
