package domain

type (
	UserId     = int64
	CategoryId = int64
	ThreadId   = int64
	ReplyId    = int64

	ThreadTitle = string
	ReplyBody   = string
)
