package handlers

import (
	"errors"
	"net/http"

	"trackclash/internal/charts"
	"trackclash/internal/service"
	"trackclash/internal/validation"
)

// ChartHandler serves chart metadata used by the game-setup screens
type ChartHandler struct {
	chartClient  *charts.Client
	chartService *service.ChartService
}

// NewChartHandler creates a new chart handler
func NewChartHandler(chartClient *charts.Client, chartService *service.ChartService) *ChartHandler {
	return &ChartHandler{
		chartClient:  chartClient,
		chartService: chartService,
	}
}

// ListCharts returns the available chart slugs
func (h *ChartHandler) ListCharts(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"charts": charts.KnownCharts,
	})
}

// ListWeeks returns the valid weeks for one chart, newest first
func (h *ChartHandler) ListWeeks(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if err := validation.ValidateChartSlug(slug); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}
	if !charts.IsKnownChart(slug) {
		respondWithError(w, http.StatusNotFound, "Unknown chart", "", nil)
		return
	}

	weeks, err := h.chartClient.ValidWeeks(r.Context(), slug)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Chart data source unavailable", "Failed to list chart weeks", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"chart": slug,
		"weeks": weeks,
	})
}

// GetArchivedWeek returns one imported chart week's entries in rank order
func (h *ChartHandler) GetArchivedWeek(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	week := r.PathValue("week")

	entries, err := h.chartService.ArchivedWeek(slug, week)
	if err != nil {
		var verr validation.ValidationError
		if errors.As(err, &verr) {
			respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load archived week", err)
		return
	}
	if len(entries) == 0 {
		respondWithError(w, http.StatusNotFound, "Week not in archive", "", nil)
		return
	}

	views := make([]map[string]interface{}, len(entries))
	for i, e := range entries {
		views[i] = map[string]interface{}{
			"rank":   e.RankThisWeek,
			"song":   e.Song,
			"artist": e.Artist,
			"peak":   e.PeakRank,
			"weeks":  e.WeeksOnChart,
		}
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"chart":   slug,
		"week":    week,
		"entries": views,
	})
}

// ListArchivedWeeks returns the locally imported weeks available to quick play
func (h *ChartHandler) ListArchivedWeeks(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if err := validation.ValidateChartSlug(slug); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	weeks, err := h.chartService.ArchivedWeeks(slug)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to list archived weeks", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"chart": slug,
		"weeks": weeks,
	})
}
