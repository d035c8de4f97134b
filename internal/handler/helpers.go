package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/talkboard/talkboard/internal/api"
	"github.com/talkboard/talkboard/internal/domain"
	"github.com/talkboard/talkboard/internal/slug"
)

func parseIntParam(value, name string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return n, nil
}

// parsePage reads the page query parameter; anything unparsable or below
// one reads as page one.
func parsePage(r *http.Request) int {
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			return page
		}
	}
	return 1
}

func (h *Handler) pageResponse(page *domain.ThreadPage) api.Page {
	items := make([]api.ThreadSummary, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, h.threadSummary(&page.Items[i]))
	}
	return api.Page{Items: items, TotalCount: page.TotalCount, Page: page.Page, PerPage: page.PerPage}
}

func (h *Handler) threadSummary(m *domain.ThreadMetadata) api.ThreadSummary {
	return api.NewThreadSummary(m, slug.Thread(m.Id, m.Title, h.cfg.Public.SafeURLs))
}
