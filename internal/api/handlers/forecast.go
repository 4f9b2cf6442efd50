package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cashflow-forecast/internal/api/models"
	"cashflow-forecast/internal/forecast"
	"cashflow-forecast/internal/model"
)

// ForecastHandler serves the forecasting endpoint.
type ForecastHandler struct {
	log *logrus.Logger
}

func NewForecastHandler(log *logrus.Logger) *ForecastHandler {
	return &ForecastHandler{log: log}
}

// RunForecast handles POST /api/v1/forecast
func (h *ForecastHandler) RunForecast(c *gin.Context) {
	var req models.ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}
	if req.Column == "" {
		req.Column = model.ColumnNetCashFlow
	}
	if req.Horizon == 0 {
		req.Horizon = 12
	}
	if req.Method == "" {
		req.Method = string(model.MethodEnsemble)
	}

	series, err := model.NewTimeSeries(req.Observations)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	result, err := h.runMethod(series, &req)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	if req.Options.IncludeIntervals {
		if err := forecast.CalculateConfidenceIntervals(result, series, req.Column); err != nil {
			writeDomainError(c, err)
			return
		}
	}
	if req.Options.IncludeScenarios {
		forecast.ScenarioAnalysis(result, req.Options.Scenarios)
	}

	status := "ok"
	if len(result.Warnings) > 0 {
		status = "degraded"
	}
	c.JSON(http.StatusOK, models.ForecastResponse{Status: status, Result: result})
}

func (h *ForecastHandler) runMethod(series *model.TimeSeries, req *models.ForecastRequest) (*model.ForecastResult, error) {
	method := model.Method(req.Method)
	if method == model.MethodEnsemble {
		ens := forecast.NewEnsemble(h.log)
		ens.Window = req.Options.MovingAverageWindow
		ens.Period = req.Options.SeasonalPeriod
		return ens.Forecast(series, req.Column, req.Horizon)
	}
	m, err := forecast.NewModel(method, req.Options.MovingAverageWindow, req.Options.SeasonalPeriod)
	if err != nil {
		return nil, err
	}
	return forecast.ForecastWithFallback(m, series, req.Column, req.Horizon, h.log)
}
