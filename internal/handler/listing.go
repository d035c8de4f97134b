package handler

import (
	"net/http"
	"strconv"

	mw "github.com/talkboard/talkboard/internal/middleware"
	"github.com/talkboard/talkboard/internal/service"
	"github.com/talkboard/talkboard/internal/utils"
)

// ListThreads serves the paginated listing. Trust-gated threads are only
// included when the (optional) viewer has trusted access.
func (h *Handler) ListThreads(w http.ResponseWriter, r *http.Request) {
	viewer := mw.GetUserFromContext(r)

	q := service.ListingQuery{
		Page:           parsePage(r),
		IncludeTrusted: viewer.TrustedAccess(),
	}
	if perPageStr := r.URL.Query().Get("per_page"); perPageStr != "" {
		if perPage, err := strconv.Atoi(perPageStr); err == nil && perPage > 0 {
			q.PerPage = perPage
		}
	}
	if categoryStr := r.URL.Query().Get("category"); categoryStr != "" {
		category, err := parseIntParam(categoryStr, "category")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		q.Category = &category
	}

	page, err := h.listing.List(r.Context(), q)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.pageResponse(page))
}
