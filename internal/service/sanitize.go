package service

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/talkboard/talkboard/internal/domain"
)

// Reply bodies are stored as plain text; markup is stripped at the boundary.
var bodyPolicy = bluemonday.StrictPolicy()

func sanitizeBody(body domain.ReplyBody) domain.ReplyBody {
	return strings.TrimSpace(bodyPolicy.Sanitize(body))
}
