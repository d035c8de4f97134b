package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/talkboard/talkboard/internal/domain"
	internal_errors "github.com/talkboard/talkboard/internal/errors"
)

// CreateReply appends a reply and bumps the thread's denormalized summary
// (reply_count, last_reply_at, last_replier) in the same transaction.
func (s *Storage) CreateReply(threadId domain.ThreadId, author *domain.User, body domain.ReplyBody) (domain.ReplyId, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return -1, err
	}
	defer tx.Rollback() // The rollback will be ignored if the tx has been committed later in the function.

	var closed bool
	err = tx.QueryRow("SELECT is_closed FROM threads WHERE id = $1", threadId).Scan(&closed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return -1, &internal_errors.ErrorWithStatusCode{Message: "Thread not found", StatusCode: http.StatusNotFound}
		}
		return -1, err
	}
	if closed {
		return -1, &internal_errors.ErrorWithStatusCode{Message: "Thread is closed", StatusCode: http.StatusConflict}
	}

	createdTs := time.Now().UTC().Round(time.Microsecond) // database anyway rounds to microsecond
	_, err = tx.Exec(`
	UPDATE threads
	SET reply_count = reply_count + 1, last_reply_at = $2, last_replier_id = $3
	WHERE id = $1
	`, threadId, createdTs, author.Id)
	if err != nil {
		return -1, err
	}

	var id domain.ReplyId
	err = tx.QueryRow(`
	INSERT INTO replies (thread_id, author_id, body, created)
	VALUES ($1, $2, $3, $4)
	RETURNING id`,
		threadId, author.Id, body, createdTs).Scan(&id)
	if err != nil {
		return -1, err
	}

	if err := tx.Commit(); err != nil {
		return -1, err
	}
	return id, nil
}

// FirstReply returns the chronologically first reply of a thread, or nil
// when the thread was created without an initiating body.
func (s *Storage) FirstReply(threadId domain.ThreadId) (*domain.Reply, error) {
	var r domain.Reply
	err := s.db.QueryRow(`
	SELECT id, thread_id, author_id, body, created, modified
	FROM replies
	WHERE thread_id = $1
	ORDER BY created, id
	LIMIT 1`, threadId).Scan(&r.Id, &r.ThreadId, &r.Author.Id, &r.Body, &r.CreatedAt, &r.ModifiedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

// EditReplyBody rewrites a reply's body and stamps its edit timestamp.
func (s *Storage) EditReplyBody(id domain.ReplyId, body domain.ReplyBody) error {
	result, err := s.db.Exec(`
	UPDATE replies SET
		body = $2,
		modified = NOW() AT TIME ZONE 'utc'
	WHERE id = $1`, id, body)
	if err != nil {
		return err
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if updated == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "Reply not found", StatusCode: http.StatusNotFound}
	}
	return nil
}

// CountReplies recomputes the true reply count from the reply store.
func (s *Storage) CountReplies(threadId domain.ThreadId) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM replies WHERE thread_id = $1", threadId).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count replies: %w", err)
	}
	return n, nil
}

// CachedReplyCount reads the denormalized counter as currently stored.
func (s *Storage) CachedReplyCount(threadId domain.ThreadId) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT reply_count FROM threads WHERE id = $1", threadId).Scan(&n)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, &internal_errors.ErrorWithStatusCode{Message: "Thread not found", StatusCode: http.StatusNotFound}
		}
		return 0, err
	}
	return n, nil
}

// AdjustReplyCount applies a signed delta rather than overwriting, so
// increments committed after the recount are not clobbered.
func (s *Storage) AdjustReplyCount(threadId domain.ThreadId, delta int) error {
	result, err := s.db.Exec(
		"UPDATE threads SET reply_count = reply_count + $2 WHERE id = $1",
		threadId, delta,
	)
	if err != nil {
		return fmt.Errorf("failed to adjust reply count: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "Thread not found", StatusCode: http.StatusNotFound}
	}
	return nil
}
