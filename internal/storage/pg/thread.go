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

// CreateThread inserts the thread row and, when an initiating body was
// supplied, the first reply in the same transaction. A create-with-first-
// reply is atomic from an external observer's perspective.
func (s *Storage) CreateThread(creationData domain.ThreadCreationData) (domain.ThreadId, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return -1, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Verify category exists
	var category domain.CategoryId
	err = tx.QueryRow(
		"SELECT id FROM categories WHERE id = $1",
		creationData.Category,
	).Scan(&category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return -1, &internal_errors.ErrorWithStatusCode{
				Message:    "Category not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return -1, fmt.Errorf("failed to validate category: %w", err)
	}

	var id domain.ThreadId
	var createdTs time.Time
	err = tx.QueryRow(`
        INSERT INTO threads (title, category_id, poster_id, is_trusted, is_nsfw)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created
    `, creationData.Title, creationData.Category, creationData.Poster.Id,
		creationData.Trusted, creationData.Nsfw,
	).Scan(&id, &createdTs)
	if err != nil {
		return -1, fmt.Errorf("failed to insert thread: %w", err)
	}

	// Empty body legitimately leaves the thread with zero replies.
	if creationData.Body != "" {
		_, err = tx.Exec(`
            INSERT INTO replies (thread_id, author_id, body, created)
            VALUES ($1, $2, $3, $4)
        `, id, creationData.Poster.Id, creationData.Body, createdTs)
		if err != nil {
			return -1, fmt.Errorf("failed to insert first reply: %w", err)
		}

		_, err = tx.Exec(`
            UPDATE threads
            SET reply_count = 1, last_reply_at = $2, last_replier_id = $3
            WHERE id = $1
        `, id, createdTs, creationData.Poster.Id)
		if err != nil {
			return -1, fmt.Errorf("failed to seed reply counters: %w", err)
		}

		// First-reply creation also bumps the poster's own running count.
		_, err = tx.Exec(
			"UPDATE users SET threads_started = threads_started + 1 WHERE id = $1",
			creationData.Poster.Id,
		)
		if err != nil {
			return -1, fmt.Errorf("failed to bump poster thread count: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return -1, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return id, nil
}

// ThreadMeta fetches the summary row alone; the update path needs the
// current state before deciding on a close transition.
func (s *Storage) ThreadMeta(id domain.ThreadId) (domain.ThreadMetadata, error) {
	var m domain.ThreadMetadata
	var closer, lastReplier sql.NullInt64
	err := s.db.QueryRow(`
        SELECT id, title, category_id, poster_id, closer_id, last_replier_id,
               reply_count, last_reply_at, is_sticky, is_closed, is_trusted, is_nsfw, created
        FROM threads
        WHERE id = $1
    `, id).Scan(
		&m.Id, &m.Title, &m.Category, &m.Poster, &closer, &lastReplier,
		&m.ReplyCount, &m.LastReplyAt, &m.Sticky, &m.Closed, &m.Trusted, &m.Nsfw, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ThreadMetadata{}, &internal_errors.ErrorWithStatusCode{
				Message:    "Thread not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return domain.ThreadMetadata{}, fmt.Errorf("failed to fetch thread metadata: %w", err)
	}
	if closer.Valid {
		m.Closer = &closer.Int64
	}
	if lastReplier.Valid {
		m.LastReplier = &lastReplier.Int64
	}
	return m, nil
}

func (s *Storage) GetThread(id domain.ThreadId) (domain.Thread, error) {
	metadata, err := s.ThreadMeta(id)
	if err != nil {
		return domain.Thread{}, err
	}

	rows, err := s.db.Query(`
        SELECT r.id, r.thread_id, r.author_id, u.is_admin, u.is_moderator, r.body, r.created, r.modified
        FROM replies r
        JOIN users u ON u.id = r.author_id
        WHERE r.thread_id = $1
        ORDER BY r.created, r.id
    `, id)
	if err != nil {
		return domain.Thread{}, fmt.Errorf("failed to fetch replies: %w", err)
	}
	defer rows.Close()

	var replies []*domain.Reply
	for rows.Next() {
		var r domain.Reply
		if err := rows.Scan(
			&r.Id, &r.ThreadId, &r.Author.Id, &r.Author.Admin, &r.Author.Moderator,
			&r.Body, &r.CreatedAt, &r.ModifiedAt,
		); err != nil {
			return domain.Thread{}, fmt.Errorf("failed to scan reply: %w", err)
		}
		replies = append(replies, &r)
	}
	if err = rows.Err(); err != nil {
		return domain.Thread{}, fmt.Errorf("rows iteration error: %w", err)
	}

	return domain.Thread{ThreadMetadata: metadata, Replies: replies}, nil
}

// UpdateThread applies a validated patch in one statement, so the closed
// flag and the closer reference can never drift apart.
func (s *Storage) UpdateThread(id domain.ThreadId, patch domain.ThreadPatch) error {
	result, err := s.db.Exec(`
        UPDATE threads SET
            title = $2,
            is_sticky = COALESCE($3, is_sticky),
            is_nsfw = COALESCE($4, is_nsfw),
            is_closed = CASE WHEN $5 THEN $6 ELSE is_closed END,
            closer_id = CASE WHEN $5 THEN $7 ELSE closer_id END
        WHERE id = $1
    `, id, patch.Title, patch.Sticky, patch.Nsfw, patch.SetClosed, patch.Closed, patch.Closer)
	if err != nil {
		return fmt.Errorf("failed to update thread: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return &internal_errors.ErrorWithStatusCode{
			Message:    "Thread not found",
			StatusCode: http.StatusNotFound,
		}
	}
	return nil
}

// DeleteThread destroys the thread; replies and read receipts cascade via
// foreign keys. Returns the category so the caller can maintain its count.
func (s *Storage) DeleteThread(id domain.ThreadId) (domain.CategoryId, error) {
	var category domain.CategoryId
	err := s.db.QueryRow(
		"DELETE FROM threads WHERE id = $1 RETURNING category_id",
		id,
	).Scan(&category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, &internal_errors.ErrorWithStatusCode{
				Message:    "Thread not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return 0, fmt.Errorf("failed to delete thread: %w", err)
	}
	return category, nil
}

// RecordThreadView upserts a read receipt for the viewer.
func (s *Storage) RecordThreadView(id domain.ThreadId, viewer domain.UserId) error {
	_, err := s.db.Exec(`
        INSERT INTO thread_views (thread_id, viewer_id)
        VALUES ($1, $2)
        ON CONFLICT (thread_id, viewer_id)
        DO UPDATE SET viewed_at = NOW() AT TIME ZONE 'utc'
    `, id, viewer)
	if err != nil {
		return fmt.Errorf("failed to record thread view: %w", err)
	}
	return nil
}
