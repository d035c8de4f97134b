package handler

import (
	"net/http"
	"strings"

	mw "github.com/talkboard/talkboard/internal/middleware"
	"github.com/talkboard/talkboard/internal/service"
	"github.com/talkboard/talkboard/internal/utils"
)

// SearchThreads serves the full-text path. The response shape matches the
// listing exactly; a degraded index answers 503, never an empty page.
func (h *Handler) SearchThreads(w http.ResponseWriter, r *http.Request) {
	text := strings.TrimSpace(r.URL.Query().Get("q"))
	if text == "" {
		http.Error(w, "Missing query parameter q", http.StatusBadRequest)
		return
	}

	viewer := mw.GetUserFromContext(r)
	page, err := h.search.Search(r.Context(), service.SearchQuery{
		Text:           text,
		Page:           parsePage(r),
		IncludeTrusted: viewer.TrustedAccess(),
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.pageResponse(page))
}
