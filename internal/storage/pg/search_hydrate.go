package pg

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/talkboard/talkboard/internal/domain"
)

// ThreadsByIds hydrates summaries for a list of identifiers coming back
// from the search index, preserving the index's relevance order. Ids that
// no longer exist are silently dropped: the index may lag deletions.
func (s *Storage) ThreadsByIds(ids []domain.ThreadId) ([]domain.ThreadMetadata, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.db.Query(`
        SELECT id, title, category_id, poster_id, closer_id, last_replier_id,
               reply_count, last_reply_at, is_sticky, is_closed, is_trusted, is_nsfw, created
        FROM threads
        WHERE id = ANY($1)
    `, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch threads by ids: %w", err)
	}
	defer rows.Close()

	byId := make(map[domain.ThreadId]domain.ThreadMetadata, len(ids))
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
		byId[m.Id] = m
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	ordered := make([]domain.ThreadMetadata, 0, len(ids))
	for _, id := range ids {
		if m, ok := byId[id]; ok {
			ordered = append(ordered, m)
		}
	}
	return ordered, nil
}
