// Package api holds the request and response DTOs of the public surface.
// Every response type is an explicit field allow-list: schema changes never
// leak into the wire format implicitly.
package api

import (
	"math"
	"time"

	"github.com/talkboard/talkboard/internal/domain"
)

type CreateThreadRequest struct {
	Title    string `json:"title" validate:"required"`
	Category int64  `json:"category" validate:"required"`
	Body     string `json:"body"`
	Trusted  bool   `json:"trusted"`
	Nsfw     bool   `json:"nsfw"`
}

type UpdateThreadRequest struct {
	Title  string  `json:"title" validate:"required"`
	Body   *string `json:"body,omitempty"`
	Sticky *bool   `json:"sticky,omitempty"`
	Closed *bool   `json:"closed,omitempty"`
	Nsfw   *bool   `json:"nsfw,omitempty"`
}

type CreateReplyRequest struct {
	Body string `json:"body" validate:"required"`
}

// UserPublic is the only shape in which a user ever leaves the service.
type UserPublic struct {
	Id        int64 `json:"id"`
	Admin     bool  `json:"admin"`
	Moderator bool  `json:"moderator"`
}

type ReplyJSON struct {
	Id         int64      `json:"id"`
	Author     UserPublic `json:"author"`
	Body       string     `json:"body"`
	CreatedAt  time.Time  `json:"created_at"`
	ModifiedAt *time.Time `json:"modified_at,omitempty"`
}

type ThreadSummary struct {
	Id          int64     `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Category    int64     `json:"category"`
	ReplyCount  int       `json:"reply_count"`
	LastReplyAt time.Time `json:"last_reply_at"`
	Sticky      bool      `json:"sticky"`
	Closed      bool      `json:"closed"`
	Nsfw        bool      `json:"nsfw"`
}

type ThreadResponse struct {
	ThreadSummary
	Replies []ReplyJSON `json:"replies"`
}

// Page is the pagination contract shared by listing and search so callers
// stay agnostic to which path produced it.
type Page struct {
	Items      []ThreadSummary `json:"items"`
	TotalCount int             `json:"total_count"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
}

func (p *Page) TotalPages() int {
	if p.PerPage <= 0 {
		return 0
	}
	return int(math.Ceil(float64(p.TotalCount) / float64(p.PerPage)))
}

func NewThreadSummary(t *domain.ThreadMetadata, slug string) ThreadSummary {
	return ThreadSummary{
		Id:          t.Id,
		Slug:        slug,
		Title:       t.Title,
		Category:    t.Category,
		ReplyCount:  t.ReplyCount,
		LastReplyAt: t.LastReplyAt,
		Sticky:      t.Sticky,
		Closed:      t.Closed,
		Nsfw:        t.Nsfw,
	}
}

func NewReplyJSON(r *domain.Reply) ReplyJSON {
	out := ReplyJSON{
		Id:        r.Id,
		Author:    UserPublic{Id: r.Author.Id, Admin: r.Author.Admin, Moderator: r.Author.Moderator},
		Body:      r.Body,
		CreatedAt: r.CreatedAt,
	}
	if r.ModifiedAt.Valid {
		modified := r.ModifiedAt.Time
		out.ModifiedAt = &modified
	}
	return out
}
