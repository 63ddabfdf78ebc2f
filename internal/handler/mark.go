package handler

import (
	"net/http"

	"github.com/kevxviikw/noted/internal/model"
	"github.com/kevxviikw/noted/internal/service"
)

type MarkHandler struct {
	markService *service.MarkService
}

func NewMarkHandler(markService *service.MarkService) *MarkHandler {
	return &MarkHandler{
		markService: markService,
	}
}

type setMarkRequest struct {
	Done bool `json:"done"`
}

type marksResponse struct {
	Marks map[string]bool `json:"marks"`
}

// List returns a goal's marks, optionally bounded by ?start= and ?end=
// (inclusive, both required for filtering to apply).
func (h *MarkHandler) List(w http.ResponseWriter, r *http.Request) {
	goalID, ok := goalIDFromPath(w, r)
	if !ok {
		return
	}

	var from, to *model.Day
	if start, end := r.URL.Query().Get("start"), r.URL.Query().Get("end"); start != "" && end != "" {
		startDay, err := model.ParseDay(start)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		endDay, err := model.ParseDay(end)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		from, to = &startDay, &endDay
	}

	marks, err := h.markService.Marks(goalID, from, to)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	out := make(map[string]bool, len(marks))
	for day, done := range marks {
		out[day.String()] = done
	}

	respondJSON(w, http.StatusOK, marksResponse{Marks: out})
}

// Set upserts the boolean mark for one (goal, day).
func (h *MarkHandler) Set(w http.ResponseWriter, r *http.Request) {
	goalID, ok := goalIDFromPath(w, r)
	if !ok {
		return
	}

	day, err := model.ParseDay(r.PathValue("day"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req setMarkRequest
	err = decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.markService.SetMark(goalID, day, req.Done)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"ok":   true,
		"day":  day.String(),
		"done": req.Done,
	})
}
