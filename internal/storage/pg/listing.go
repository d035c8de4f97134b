package pg

import (
	"database/sql"
	"fmt"

	"github.com/talkboard/talkboard/internal/domain"
)

// ListThreads returns one page of thread summaries. Ordering is the hard
// listing contract: pinned threads first, then recency.
func (s *Storage) ListThreads(filter domain.ListingFilter, limit, offset int) ([]domain.ThreadMetadata, error) {
	rows, err := s.db.Query(`
        SELECT id, title, category_id, poster_id, closer_id, last_replier_id,
               reply_count, last_reply_at, is_sticky, is_closed, is_trusted, is_nsfw, created
        FROM threads
        WHERE ($1::bigint IS NULL OR category_id = $1)
          AND (is_trusted = FALSE OR $2)
        ORDER BY is_sticky DESC, last_reply_at DESC
        LIMIT $3 OFFSET $4
    `, filter.Category, filter.IncludeTrusted, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}
	defer rows.Close()

	var threads []domain.ThreadMetadata
	for rows.Next() {
		var m domain.ThreadMetadata
		var closer, lastReplier sql.NullInt64
		if err := rows.Scan(
			&m.Id, &m.Title, &m.Category, &m.Poster, &closer, &lastReplier,
			&m.ReplyCount, &m.LastReplyAt, &m.Sticky, &m.Closed, &m.Trusted, &m.Nsfw, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan thread row: %w", err)
		}
		if closer.Valid {
			m.Closer = &closer.Int64
		}
		if lastReplier.Valid {
			m.LastReplier = &lastReplier.Int64
		}
		threads = append(threads, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return threads, nil
}

// CountListedThreads runs a full count under the identical predicate the
// page query uses. The listing service prefers the per-category cache and
// falls back here.
func (s *Storage) CountListedThreads(filter domain.ListingFilter) (int, error) {
	var n int
	err := s.db.QueryRow(`
        SELECT COUNT(*)
        FROM threads
        WHERE ($1::bigint IS NULL OR category_id = $1)
          AND (is_trusted = FALSE OR $2)
    `, filter.Category, filter.IncludeTrusted).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count threads: %w", err)
	}
	return n, nil
}
