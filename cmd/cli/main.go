package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"cashflow-forecast/internal/analysis"
	"cashflow-forecast/internal/config"
	"cashflow-forecast/internal/data"
	"cashflow-forecast/internal/forecast"
	"cashflow-forecast/internal/model"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "analyze":
		cmdAnalyze(os.Args[2:])
	case "forecast":
		cmdForecast(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli analyze --data data/sample_data.csv --config examples/config.yaml --out output")
	fmt.Println("  cli forecast --data data/sample_data.csv --config examples/config.yaml --out output --method ensemble --horizon 12")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - analyze writes monthly aggregates, seasonal statistics, and trend diagnostics")
	fmt.Println("  - forecast methods: moving_average, seasonal_naive, exponential_smoothing, ensemble")
}

// loadConfig reads the YAML config if given, otherwise uses defaults.
func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	lvl, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

// loadMonthly runs the shared data pipeline: daily CSV -> outlier capping ->
// monthly aggregation -> working-capital KPIs.
func loadMonthly(path string) *model.TimeSeries {
	records, err := data.LoadDailyCSV(path)
	if err != nil {
		panic(err)
	}
	records = data.CapOutliersIQR(records)
	monthly, err := data.AggregateMonthly(records)
	if err != nil {
		panic(err)
	}
	return data.ComputeKPIs(monthly)
}

func cmdAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to daily cash-flow CSV")
	cfgPath := fs.String("config", "", "Path to YAML config")
	outDir := fs.String("out", "", "Output directory for CSV reports")
	column := fs.String("column", "", "Column to analyze (default from config)")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	if *dataPath == "" {
		*dataPath = cfg.Data.DailyCSV
	}
	if *outDir == "" {
		*outDir = cfg.Data.OutputDir
	}
	if *column == "" {
		*column = cfg.Forecast.Column
	}

	monthly := loadMonthly(*dataPath)

	seasonal, err := analysis.AnalyzeSeasonality(monthly, *column)
	if err != nil {
		panic(err)
	}
	trend, err := analysis.TrendAnalysis(monthly, *column)
	if err != nil {
		panic(err)
	}
	decomp, err := analysis.Decompose(monthly, *column, cfg.Forecast.SeasonalPeriod)
	if err != nil {
		panic(err)
	}
	corr, err := analysis.CorrelationAnalysis(monthly)
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		panic(err)
	}
	monthlyPath := filepath.Join(*outDir, "monthly.csv")
	if err := data.WriteMonthlyCSV(monthlyPath, monthly); err != nil {
		panic(err)
	}
	seasonalPath := filepath.Join(*outDir, "seasonal_stats.csv")
	if err := data.WriteSeasonalStatsCSV(seasonalPath, seasonal); err != nil {
		panic(err)
	}

	fmt.Printf("Aggregated %d months from %s\n", monthly.Len(), *dataPath)
	fmt.Printf("Wrote %s and %s\n", monthlyPath, seasonalPath)
	fmt.Println("")

	fmt.Printf("Seasonality of %s (overall mean %.2f):\n", seasonal.Column, seasonal.OverallMean)
	fmt.Printf("%-10s %-12s %-12s %-8s %-10s\n", "month", "mean", "std", "count", "index")
	for _, ms := range seasonal.Months {
		fmt.Printf("%-10s %-12.2f %-12.2f %-8d %-10.3f\n", ms.Month, ms.Mean, ms.Std, ms.Count, ms.SeasonalIndex)
	}
	fmt.Printf("Peak %s, trough %s, range %.2f, CoV %.3f\n",
		seasonal.PeakMonth, seasonal.TroughMonth, seasonal.SeasonalRange, seasonal.CoefficientOfVariation)
	fmt.Println("")

	fmt.Printf("Trend of %s:\n", trend.Column)
	fmt.Printf("  slope=%.4f/month  r2=%.4f  p=%.4g\n", trend.Slope, trend.RSquared, trend.PValue)
	fmt.Printf("  total change %.1f%%  monthly growth %.2f%%\n", trend.TotalChangePct, trend.MonthlyGrowthPct)
	fmt.Printf("  ADF stat=%.3f p=%.4f lag=%d stationary=%v\n",
		trend.ADFStat, trend.ADFPValue, trend.ADFLag, trend.IsStationary)
	fmt.Println("")

	fmt.Printf("Decomposition period: %d (observed %d months)\n", decomp.Period, len(decomp.Observed))

	if len(corr.StrongPairs) > 0 {
		fmt.Println("Strongly correlated metrics (|r| > 0.7):")
		for _, p := range corr.StrongPairs {
			fmt.Printf("  %-22s %-22s r=%.3f\n", p.Var1, p.Var2, p.Correlation)
		}
	}
}

func cmdForecast(args []string) {
	fs := flag.NewFlagSet("forecast", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to daily cash-flow CSV")
	cfgPath := fs.String("config", "", "Path to YAML config")
	outDir := fs.String("out", "", "Output directory for CSV reports")
	column := fs.String("column", "", "Column to forecast (default from config)")
	method := fs.String("method", "ensemble", "Forecast method")
	horizon := fs.Int("horizon", 0, "Months ahead to forecast (default from config)")
	intervals := fs.Bool("intervals", true, "Attach 80%/95% confidence intervals")
	scenarios := fs.Bool("scenarios", true, "Attach scenario projections")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	if *dataPath == "" {
		*dataPath = cfg.Data.DailyCSV
	}
	if *outDir == "" {
		*outDir = cfg.Data.OutputDir
	}
	if *column == "" {
		*column = cfg.Forecast.Column
	}
	if *horizon == 0 {
		*horizon = cfg.Forecast.Horizon
	}

	log := newLogger(cfg)
	monthly := loadMonthly(*dataPath)

	var result *model.ForecastResult
	var err error
	if model.Method(*method) == model.MethodEnsemble {
		ens := forecast.NewEnsemble(log)
		ens.Window = cfg.Forecast.MovingAverageWindow
		ens.Period = cfg.Forecast.SeasonalPeriod
		result, err = ens.Forecast(monthly, *column, *horizon)
	} else {
		var m forecast.Model
		m, err = forecast.NewModel(model.Method(*method), cfg.Forecast.MovingAverageWindow, cfg.Forecast.SeasonalPeriod)
		if err == nil {
			result, err = forecast.ForecastWithFallback(m, monthly, *column, *horizon, log)
		}
	}
	if err != nil {
		panic(err)
	}

	if *intervals {
		if err := forecast.CalculateConfidenceIntervals(result, monthly, *column); err != nil {
			panic(err)
		}
	}
	if *scenarios {
		forecast.ScenarioAnalysis(result, cfg.Scenarios)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		panic(err)
	}
	outPath := filepath.Join(*outDir, "forecast.csv")
	if err := data.WriteForecastCSV(outPath, result); err != nil {
		panic(err)
	}

	fmt.Printf("Forecast of %s via %s, %d months ahead:\n", result.Column, result.Method, result.Horizon())
	fmt.Printf("%-9s %-14s %-14s %-14s\n", "period", "forecast", "lower95", "upper95")
	for _, e := range result.Entries {
		if e.HasIntervals {
			fmt.Printf("%-9s %-14.2f %-14.2f %-14.2f\n", e.Period, e.Forecast, e.Lower95, e.Upper95)
		} else {
			fmt.Printf("%-9s %-14.2f\n", e.Period, e.Forecast)
		}
	}
	for _, w := range result.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	fmt.Printf("Wrote %s\n", outPath)
}
