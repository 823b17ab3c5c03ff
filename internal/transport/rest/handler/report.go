package handler

import (
	"context"
	"net/http"
	"strconv"

	"mindwell/internal/model"
)

// ReportAPI is the part of the report service the handlers use
type ReportAPI interface {
	RiskDistribution(ctx context.Context) (*model.RiskDistribution, error)
	RiskTrends(ctx context.Context, weeks int) ([]model.RiskTrendWeek, error)
	CriticalCases(ctx context.Context, limit int) ([]model.CaseSummary, error)
}

// ReportHandler handles staff report endpoints
type ReportHandler struct {
	reportSvc ReportAPI
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportSvc ReportAPI) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// RiskDistribution handles GET /v1/reports/risk-distribution
//
//	@Summary	Assessment counts per risk level
//	@Tags		reports
//	@Success	200	{object}	model.RiskDistribution
//	@Router		/v1/reports/risk-distribution [get]
func (h *ReportHandler) RiskDistribution(w http.ResponseWriter, r *http.Request) {
	d, err := h.reportSvc.RiskDistribution(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// RiskTrends handles GET /v1/reports/risk-trends?weeks=
//
//	@Summary	Weekly assessment counts per risk level, oldest week first
//	@Tags		reports
//	@Param		weeks	query	int	false	"number of weeks (default 4, max 52)"
//	@Success	200		{array}	model.RiskTrendWeek
//	@Router		/v1/reports/risk-trends [get]
func (h *ReportHandler) RiskTrends(w http.ResponseWriter, r *http.Request) {
	weeks, ok := queryCount(w, r, "weeks")
	if !ok {
		return
	}
	trend, err := h.reportSvc.RiskTrends(r.Context(), weeks)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trend)
}

// CriticalCases handles GET /v1/reports/critical-cases?limit=
func (h *ReportHandler) CriticalCases(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryCount(w, r, "limit")
	if !ok {
		return
	}

	cases, err := h.reportSvc.CriticalCases(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cases)
}

// queryCount reads an optional non-negative integer; 0 when absent
func queryCount(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, name+" must be a positive number")
		return 0, false
	}
	return n, true
}
