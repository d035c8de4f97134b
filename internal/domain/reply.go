package domain

import (
	"database/sql"
	"time"
)

type Reply struct {
	Id         ReplyId
	ThreadId   ThreadId
	Author     User
	Body       ReplyBody
	CreatedAt  time.Time
	ModifiedAt sql.NullTime // set only when the body was edited after creation
}

// ThreadView is a read receipt; rows are destroyed with the owning thread.
type ThreadView struct {
	Id       int64
	ThreadId ThreadId
	Viewer   UserId
	ViewedAt time.Time
}
