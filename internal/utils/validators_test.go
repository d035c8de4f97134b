package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internal_errors "github.com/talkboard/talkboard/internal/errors"
)

func TestThreadTitleValidator(t *testing.T) {
	v := &ThreadTitleValidator{}

	t.Run("accepts ordinary title", func(t *testing.T) {
		assert.NoError(t, v.Title("A perfectly ordinary толк"))
	})

	t.Run("accepts title at the limit", func(t *testing.T) {
		assert.NoError(t, v.Title(strings.Repeat("a", TitleMaxLen)))
	})

	t.Run("rejects empty title", func(t *testing.T) {
		err := v.Title("")
		require.Error(t, err)
		var verr *internal_errors.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "title", verr.Field)
	})

	t.Run("rejects whitespace-only title", func(t *testing.T) {
		assert.Error(t, v.Title("   \t "))
	})

	t.Run("rejects title over the limit", func(t *testing.T) {
		err := v.Title(strings.Repeat("a", TitleMaxLen+1))
		require.Error(t, err)
		var verr *internal_errors.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "title", verr.Field)
	})

	t.Run("limit counts runes not bytes", func(t *testing.T) {
		assert.NoError(t, v.Title(strings.Repeat("ё", TitleMaxLen)))
	})
}
