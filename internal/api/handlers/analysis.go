package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cashflow-forecast/internal/analysis"
	"cashflow-forecast/internal/api/models"
	"cashflow-forecast/internal/model"
)

// AnalysisHandler serves the seasonality, trend, and decomposition endpoints.
type AnalysisHandler struct{}

func NewAnalysisHandler() *AnalysisHandler {
	return &AnalysisHandler{}
}

// Seasonality handles POST /api/v1/analysis/seasonality
func (h *AnalysisHandler) Seasonality(c *gin.Context) {
	req, series, ok := bindAnalysisRequest(c)
	if !ok {
		return
	}
	stats, err := analysis.AnalyzeSeasonality(series, req.Column)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewSeasonalityResponse(stats))
}

// Trend handles POST /api/v1/analysis/trend
func (h *AnalysisHandler) Trend(c *gin.Context) {
	req, series, ok := bindAnalysisRequest(c)
	if !ok {
		return
	}
	stats, err := analysis.TrendAnalysis(series, req.Column)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewTrendResponse(stats))
}

// Decompose handles POST /api/v1/analysis/decompose
func (h *AnalysisHandler) Decompose(c *gin.Context) {
	req, series, ok := bindAnalysisRequest(c)
	if !ok {
		return
	}
	d, err := analysis.Decompose(series, req.Column, req.Period)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	periods := make([]model.MonthPeriod, series.Len())
	for i := range series.Observations {
		periods[i] = series.Observations[i].Period
	}
	c.JSON(http.StatusOK, models.NewDecomposeResponse(d, periods))
}

func bindAnalysisRequest(c *gin.Context) (*models.AnalysisRequest, *model.TimeSeries, bool) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return nil, nil, false
	}
	if req.Column == "" {
		req.Column = model.ColumnNetCashFlow
	}
	series, err := model.NewTimeSeries(req.Observations)
	if err != nil {
		writeDomainError(c, err)
		return nil, nil, false
	}
	return &req, series, true
}

// writeDomainError maps engine error kinds to HTTP responses.
func writeDomainError(c *gin.Context, err error) {
	var inputErr *model.InputError
	if errors.As(err, &inputErr) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_INPUT", Message: inputErr.Error()},
		})
		return
	}
	var consErr *model.ConsistencyError
	if errors.As(err, &consErr) {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "ENSEMBLE_INCONSISTENT", Message: consErr.Error()},
		})
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: models.ErrorDetail{Code: "INTERNAL_ERROR", Message: err.Error()},
	})
}
