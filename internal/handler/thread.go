package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/talkboard/talkboard/internal/api"
	"github.com/talkboard/talkboard/internal/domain"
	mw "github.com/talkboard/talkboard/internal/middleware"
	"github.com/talkboard/talkboard/internal/utils"
)

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body api.CreateThreadRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	creation := domain.ThreadCreationData{
		Title:    domain.ThreadTitle(body.Title),
		Category: body.Category,
		Poster:   *user,
		Body:     domain.ReplyBody(body.Body),
		Trusted:  body.Trusted,
		Nsfw:     body.Nsfw,
	}

	threadId, err := h.thread.Create(r.Context(), creation)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	meta := domain.ThreadMetadata{Id: threadId, Title: body.Title}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":   threadId,
		"slug": h.threadSummary(&meta).Slug,
	})
}

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIntParam(mux.Vars(r)["thread"], "thread ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	viewer := mw.GetUserFromContext(r)
	thread, err := h.thread.Get(r.Context(), threadId, viewer)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	response := api.ThreadResponse{ThreadSummary: h.threadSummary(&thread.ThreadMetadata)}
	response.Replies = make([]api.ReplyJSON, 0, len(thread.Replies))
	for _, reply := range thread.Replies {
		response.Replies = append(response.Replies, api.NewReplyJSON(reply))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) UpdateThread(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIntParam(mux.Vars(r)["thread"], "thread ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body api.UpdateThreadRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	upd := domain.ThreadUpdateData{
		Title:  body.Title,
		Body:   body.Body,
		Sticky: body.Sticky,
		Closed: body.Closed,
		Nsfw:   body.Nsfw,
	}
	if err := h.thread.Update(r.Context(), threadId, upd, user); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIntParam(mux.Vars(r)["thread"], "thread ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.thread.Delete(r.Context(), threadId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) CreateReply(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIntParam(mux.Vars(r)["thread"], "thread ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body api.CreateReplyRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	replyId, err := h.reply.Create(threadId, user, domain.ReplyBody(body.Body))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": replyId})
}

// RepairThread recomputes a thread's reply counter. Maintenance endpoint,
// admin-gated in the router.
func (h *Handler) RepairThread(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIntParam(mux.Vars(r)["thread"], "thread ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.repairer.Repair(threadId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
