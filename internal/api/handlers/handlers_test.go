package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	ah := NewAnalysisHandler()
	fh := NewForecastHandler(nil)

	api := r.Group("/api/v1")
	api.GET("/methods", ListMethods)
	api.POST("/analysis/seasonality", ah.Seasonality)
	api.POST("/analysis/trend", ah.Trend)
	api.POST("/analysis/decompose", ah.Decompose)
	api.POST("/forecast", fh.RunForecast)
	return r
}

// observationsJSON renders n months of net_cash_flow values starting 2021-01.
func observationsJSON(values []float64) string {
	var buf bytes.Buffer
	buf.WriteString(`[`)
	year, month := 2021, 1
	for i, v := range values {
		if i > 0 {
			buf.WriteString(",")
		}
		fmt.Fprintf(&buf, `{"period":"%04d-%02d","net_cash_flow":%g}`, year, month, v)
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	buf.WriteString(`]`)
	return buf.String()
}

func rampValues(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1000 + 50*float64(i)
	}
	return out
}

func doPost(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListMethods(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/methods", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Methods []struct {
			Name string `json:"name"`
		} `json:"methods"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Methods, 4)
	assert.Equal(t, "moving_average", resp.Methods[0].Name)
	assert.Equal(t, "ensemble", resp.Methods[3].Name)
}

func TestSeasonalityEndpoint(t *testing.T) {
	r := newTestRouter()
	body := fmt.Sprintf(`{"observations":%s}`, observationsJSON(rampValues(24)))

	w := doPost(t, r, "/api/v1/analysis/seasonality", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Column      string  `json:"column"`
		OverallMean float64 `json:"overall_mean"`
		Months      []struct {
			Month int `json:"month"`
		} `json:"months"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "net_cash_flow", resp.Column)
	assert.Len(t, resp.Months, 12)
}

func TestTrendEndpoint(t *testing.T) {
	r := newTestRouter()
	body := fmt.Sprintf(`{"observations":%s}`, observationsJSON(rampValues(12)))

	w := doPost(t, r, "/api/v1/analysis/trend", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Slope        float64 `json:"slope"`
		RSquared     float64 `json:"r_squared"`
		IsStationary bool    `json:"is_stationary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 50, resp.Slope, 1e-6)
	assert.InDelta(t, 1, resp.RSquared, 1e-9)
	assert.False(t, resp.IsStationary)
}

func TestDecomposeEndpointRendersNaNAsNull(t *testing.T) {
	r := newTestRouter()
	body := fmt.Sprintf(`{"observations":%s,"period":12}`, observationsJSON(rampValues(36)))

	w := doPost(t, r, "/api/v1/analysis/decompose", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Period   int        `json:"period"`
		Periods  []string   `json:"periods"`
		Trend    []*float64 `json:"trend"`
		Observed []*float64 `json:"observed"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 12, resp.Period)
	require.Len(t, resp.Trend, 36)
	assert.Equal(t, "2021-01", resp.Periods[0])
	// The centered moving average is undefined at the edges.
	assert.Nil(t, resp.Trend[0])
	assert.NotNil(t, resp.Trend[18])
	assert.NotNil(t, resp.Observed[0])
}

func TestForecastEndpointDefaults(t *testing.T) {
	r := newTestRouter()
	body := fmt.Sprintf(`{"observations":%s}`, observationsJSON(rampValues(36)))

	w := doPost(t, r, "/api/v1/forecast", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string `json:"status"`
		Result struct {
			Method  string `json:"method"`
			Entries []struct {
				Period     string             `json:"period"`
				Forecast   float64            `json:"forecast"`
				Components map[string]float64 `json:"components"`
			} `json:"entries"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ensemble", resp.Result.Method)
	require.Len(t, resp.Result.Entries, 12)
	assert.Equal(t, "2024-01", resp.Result.Entries[0].Period)
	assert.Len(t, resp.Result.Entries[0].Components, 3)
}

func TestForecastEndpointDegradedStatus(t *testing.T) {
	r := newTestRouter()
	// 12 months is not enough for exponential smoothing, so the ensemble
	// reports a degraded (but successful) result.
	body := fmt.Sprintf(`{"observations":%s}`, observationsJSON(rampValues(12)))

	w := doPost(t, r, "/api/v1/forecast", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string `json:"status"`
		Result struct {
			Warnings []string `json:"warnings"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	require.Len(t, resp.Result.Warnings, 1)
	assert.Contains(t, resp.Result.Warnings[0], "exponential_smoothing")
}

func TestForecastEndpointIntervalsAndScenarios(t *testing.T) {
	r := newTestRouter()
	body := fmt.Sprintf(
		`{"observations":%s,"method":"moving_average","horizon":3,"options":{"include_intervals":true,"include_scenarios":true}}`,
		observationsJSON(rampValues(36)))

	w := doPost(t, r, "/api/v1/forecast", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Result struct {
			Method  string `json:"method"`
			Entries []struct {
				Forecast  float64            `json:"forecast"`
				Lower95   float64            `json:"lower_95"`
				Upper95   float64            `json:"upper_95"`
				Scenarios map[string]float64 `json:"scenarios"`
			} `json:"entries"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "moving_average", resp.Result.Method)
	require.Len(t, resp.Result.Entries, 3)
	e := resp.Result.Entries[0]
	assert.Less(t, e.Lower95, e.Forecast)
	assert.Greater(t, e.Upper95, e.Forecast)
	assert.InDelta(t, e.Forecast*0.8, e.Scenarios["pessimistic"], 1e-6)
}

func TestInvalidInputMapsTo400(t *testing.T) {
	r := newTestRouter()

	// Duplicate periods are an input error.
	body := `{"observations":[{"period":"2023-01","net_cash_flow":1},{"period":"2023-01","net_cash_flow":2}]}`
	w := doPost(t, r, "/api/v1/analysis/trend", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
}

func TestMissingObservationsMapsTo400(t *testing.T) {
	r := newTestRouter()
	w := doPost(t, r, "/api/v1/forecast", `{"horizon":6}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}

func TestUnknownForecastMethodMapsTo400(t *testing.T) {
	r := newTestRouter()
	body := fmt.Sprintf(`{"observations":%s,"method":"arima"}`, observationsJSON(rampValues(24)))
	w := doPost(t, r, "/api/v1/forecast", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "arima")
}
