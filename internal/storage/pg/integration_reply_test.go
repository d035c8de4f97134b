package pg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkboard/talkboard/internal/domain"
	internal_errors "github.com/talkboard/talkboard/internal/errors"
)

// ==================
// CreateReply Tests
// ==================

func TestCreateReply(t *testing.T) {
	poster := setupUser(t)
	replier := setupUser(t)
	category := setupCategory(t)

	t.Run("Success bumps the thread summary", func(t *testing.T) {
		threadId, err := storage.CreateThread(domain.ThreadCreationData{
			Title: "Reply Target", Category: category, Poster: poster, Body: "op",
		})
		require.NoError(t, err)
		before, err := storage.ThreadMeta(threadId)
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
		replyId, err := storage.CreateReply(threadId, &replier, "a reply")
		require.NoError(t, err)
		require.Greater(t, replyId, int64(0))

		after, err := storage.ThreadMeta(threadId)
		require.NoError(t, err)
		assert.Equal(t, before.ReplyCount+1, after.ReplyCount)
		assert.True(t, after.LastReplyAt.After(before.LastReplyAt), "reply must advance last_reply_at")
		require.NotNil(t, after.LastReplier)
		assert.Equal(t, replier.Id, *after.LastReplier)
	})

	t.Run("Closed thread answers conflict", func(t *testing.T) {
		threadId, err := storage.CreateThread(domain.ThreadCreationData{
			Title: "Closing", Category: category, Poster: poster, Body: "op",
		})
		require.NoError(t, err)
		require.NoError(t, storage.UpdateThread(threadId, domain.ThreadPatch{
			Title: "Closing", SetClosed: true, Closed: true, Closer: &poster.Id,
		}))
		countBefore, err := storage.CountReplies(threadId)
		require.NoError(t, err)

		_, err = storage.CreateReply(threadId, &replier, "too late")

		var statusErr *internal_errors.ErrorWithStatusCode
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, 409, statusErr.StatusCode)

		countAfter, err := storage.CountReplies(threadId)
		require.NoError(t, err)
		assert.Equal(t, countBefore, countAfter, "rejected reply must not change the store")
	})

	t.Run("ThreadNotFound", func(t *testing.T) {
		_, err := storage.CreateReply(-999, &replier, "orphan")
		requireNotFoundError(t, err)
	})
}

// ==================
// FirstReply / EditReplyBody Tests
// ==================

func TestFirstReplyAndEdit(t *testing.T) {
	poster := setupUser(t)
	replier := setupUser(t)
	category := setupCategory(t)

	threadId, err := storage.CreateThread(domain.ThreadCreationData{
		Title: "Editable", Category: category, Poster: poster, Body: "original first",
	})
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = storage.CreateReply(threadId, &replier, "second")
	require.NoError(t, err)

	t.Run("FirstReply is the chronologically first", func(t *testing.T) {
		first, err := storage.FirstReply(threadId)
		require.NoError(t, err)
		require.NotNil(t, first)
		assert.Equal(t, "original first", first.Body)
		assert.Equal(t, poster.Id, first.Author.Id)
		assert.False(t, first.ModifiedAt.Valid)
	})

	t.Run("EditReplyBody stamps the edit", func(t *testing.T) {
		first, err := storage.FirstReply(threadId)
		require.NoError(t, err)
		require.NotNil(t, first)

		require.NoError(t, storage.EditReplyBody(first.Id, "revised first"))

		edited, err := storage.FirstReply(threadId)
		require.NoError(t, err)
		require.NotNil(t, edited)
		assert.Equal(t, first.Id, edited.Id, "edit must not change which reply is first")
		assert.Equal(t, "revised first", edited.Body)
		assert.True(t, edited.ModifiedAt.Valid)
	})

	t.Run("EditReplyBody NotFound", func(t *testing.T) {
		requireNotFoundError(t, storage.EditReplyBody(-999, "x"))
	})
}

// ==================
// Reply count repair primitives
// ==================

func TestReplyCountRepairPrimitives(t *testing.T) {
	poster := setupUser(t)
	category := setupCategory(t)

	threadId, err := storage.CreateThread(domain.ThreadCreationData{
		Title: "Drifting", Category: category, Poster: poster, Body: "op",
	})
	require.NoError(t, err)
	_, err = storage.CreateReply(threadId, &poster, "second")
	require.NoError(t, err)

	t.Run("Cached and recounted values agree on the healthy path", func(t *testing.T) {
		cached, err := storage.CachedReplyCount(threadId)
		require.NoError(t, err)
		actual, err := storage.CountReplies(threadId)
		require.NoError(t, err)
		assert.Equal(t, actual, cached)
	})

	t.Run("AdjustReplyCount applies a signed delta", func(t *testing.T) {
		// Inject drift the way a lost update would.
		_, err := storage.db.Exec("UPDATE threads SET reply_count = reply_count + 5 WHERE id = $1", threadId)
		require.NoError(t, err)

		cached, err := storage.CachedReplyCount(threadId)
		require.NoError(t, err)
		actual, err := storage.CountReplies(threadId)
		require.NoError(t, err)
		require.NoError(t, storage.AdjustReplyCount(threadId, actual-cached))

		repaired, err := storage.CachedReplyCount(threadId)
		require.NoError(t, err)
		assert.Equal(t, actual, repaired)
	})

	t.Run("AdjustReplyCount NotFound", func(t *testing.T) {
		requireNotFoundError(t, storage.AdjustReplyCount(-999, 1))
	})
}
