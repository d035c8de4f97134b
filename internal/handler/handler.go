package handler

import (
	"encoding/json"
	"net/http"

	"github.com/talkboard/talkboard/internal/config"
	"github.com/talkboard/talkboard/internal/logger"
	"github.com/talkboard/talkboard/internal/service"
)

type Handler struct {
	thread   service.ThreadService
	reply    service.ReplyService
	listing  service.ListingService
	search   service.SearchService
	repairer service.RepairService
	cfg      *config.Config
}

func New(thread service.ThreadService, reply service.ReplyService, listing service.ListingService, search service.SearchService, repairer service.RepairService, cfg *config.Config) *Handler {
	return &Handler{thread, reply, listing, search, repairer, cfg}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("encode response", "err", err)
	}
}
