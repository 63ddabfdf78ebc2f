package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/kevxviikw/noted/internal/model"
	"github.com/kevxviikw/noted/internal/service"
	"github.com/kevxviikw/noted/internal/stats"
)

var errInvalidMonth = errors.New("year and month must be given together, month in 1..12")

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// Get returns current streak, longest streak and, when ?year= and ?month=
// are both given, that month's completion rate.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	goalID, ok := goalIDFromPath(w, r)
	if !ok {
		return
	}

	month, err := monthFromQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.statsService.Stats(goalID, model.Today(), month)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func monthFromQuery(r *http.Request) (*stats.Month, error) {
	yearStr := r.URL.Query().Get("year")
	monthStr := r.URL.Query().Get("month")
	if yearStr == "" && monthStr == "" {
		return nil, nil
	}
	if yearStr == "" || monthStr == "" {
		return nil, errInvalidMonth
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1 {
		return nil, errInvalidMonth
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return nil, errInvalidMonth
	}

	return &stats.Month{Year: year, Month: time.Month(month)}, nil
}
