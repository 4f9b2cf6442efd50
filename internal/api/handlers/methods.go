package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cashflow-forecast/internal/api/models"
	"cashflow-forecast/internal/forecast"
	"cashflow-forecast/internal/model"
)

// ListMethods handles GET /api/v1/methods
func ListMethods(c *gin.Context) {
	resp := models.MethodsResponse{
		Methods: []models.MethodInfo{
			{
				Name:        string(model.MethodMovingAverage),
				Description: "Trailing simple moving average, repeated flat across the horizon",
				Parameters: []models.ParameterInfo{
					{
						Name:        "moving_average_window",
						Type:        "int",
						Description: "Trailing window length in months",
						Default:     forecast.DefaultMovingAverageWindow,
					},
				},
			},
			{
				Name:        string(model.MethodSeasonalNaive),
				Description: "Same calendar month one year prior, falling back to the month's historical mean",
			},
			{
				Name:        string(model.MethodExponentialSmoothing),
				Description: "Holt-Winters with additive trend and additive seasonality",
				Parameters: []models.ParameterInfo{
					{
						Name:        "seasonal_period",
						Type:        "int",
						Description: "Seasonal cycle length in months",
						Default:     forecast.DefaultHoltWintersPeriod,
					},
				},
			},
			{
				Name:        string(model.MethodEnsemble),
				Description: "Arithmetic mean of the three model variants, with per-model components retained",
			},
		},
	}
	c.JSON(http.StatusOK, resp)
}
