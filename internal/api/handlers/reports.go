package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/pochun/chipscan/internal/contracts"
	"github.com/pochun/chipscan/internal/report"
	"github.com/pochun/chipscan/pkg/logger"
)

// ReportsHandler handles report API endpoints
// ⭐ SSOT: 報表 API 處理只在這個結構
type ReportsHandler struct {
	service *report.Service
	logger  *logger.Logger
}

// NewReportsHandler creates a new reports handler
func NewReportsHandler(service *report.Service, log *logger.Logger) *ReportsHandler {
	return &ReportsHandler{
		service: service,
		logger:  log,
	}
}

// queryDate reads the date query parameter, defaulting to today.
func queryDate(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}

// GetMomentum returns the daily gainer/loser leaderboards
// GET /api/v1/reports/momentum?date=2026-08-28
func (h *ReportsHandler) GetMomentum(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	rep, err := h.service.Momentum(r.Context(), date)
	if err != nil {
		h.writeServiceError(w, date, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":   date.Format("2006-01-02"),
		"report": rep,
	})
}

// GetFlow returns the institutional net buy/sell leaderboards
// GET /api/v1/reports/flow?date=2026-08-28
func (h *ReportsHandler) GetFlow(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	rep, err := h.service.Flow(r.Context(), date)
	if err != nil {
		h.writeServiceError(w, date, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":   date.Format("2006-01-02"),
		"report": rep,
	})
}

// GetStreak returns the consecutive buy/sell leaderboards
// GET /api/v1/reports/streak?date=2026-08-28
func (h *ReportsHandler) GetStreak(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	rep, err := h.service.Streak(r.Context(), date)
	if err != nil {
		h.writeServiceError(w, date, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":   date.Format("2006-01-02"),
		"report": rep,
	})
}

// GetPortfolio resolves holdings quotes against the day's snapshot
// GET /api/v1/portfolio?holdings=2330%20台積電&date=2026-08-28
func (h *ReportsHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	holdings := r.URL.Query().Get("holdings")
	if holdings == "" {
		writeError(w, http.StatusBadRequest, "holdings query parameter is required")
		return
	}

	date, err := queryDate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	rows, err := h.service.Portfolio(r.Context(), date, holdings)
	if err != nil {
		h.writeServiceError(w, date, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":  date.Format("2006-01-02"),
		"count": len(rows),
		"rows":  rows,
	})
}

func (h *ReportsHandler) writeServiceError(w http.ResponseWriter, date time.Time, err error) {
	if errors.Is(err, contracts.ErrNoMarketData) {
		writeError(w, http.StatusNotFound, "no market data for "+date.Format("2006-01-02"))
		return
	}
	h.logger.WithError(err).Error("Report generation failed")
	writeError(w, http.StatusInternalServerError, "report generation failed")
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
