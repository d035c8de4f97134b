package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/talkboard/talkboard/internal/domain"
	internal_errors "github.com/talkboard/talkboard/internal/errors"
)

const TitleMaxLen = 100

// ThreadTitleValidator enforces the title contract shared by create and update.
type ThreadTitleValidator struct{}

func (v *ThreadTitleValidator) Title(title domain.ThreadTitle) error {
	if strings.TrimSpace(title) == "" {
		return &internal_errors.ValidationError{Field: "title", Message: "Title can't be empty"}
	}
	if utf8.RuneCountInString(title) > TitleMaxLen {
		return &internal_errors.ValidationError{Field: "title", Message: "Title can't exceed 100 characters"}
	}
	return nil
}
