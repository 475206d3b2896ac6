package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"fundamental-screener/internal/interfaces"
	"fundamental-screener/internal/logger"
	"fundamental-screener/internal/marketdata"
	"fundamental-screener/internal/resultlog"
	"fundamental-screener/internal/store"
	"fundamental-screener/internal/technical"
)

func main() {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	defer logger.Shutdown(ctx)

	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("╔══════════════════════════════════════════════════════════════╗")
	fmt.Println("║      Technical Confidence Engine - Bar-Driven Analysis       ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════╝")
	fmt.Println()

	provider := initializeProvider(ctx, cfg)

	symbols := cfg.Technical.Symbols
	if len(symbols) == 0 {
		symbols = cfg.Universe
	}
	if len(symbols) == 0 {
		fmt.Println("⚠️  No symbols configured for analysis")
		os.Exit(1)
	}

	fmt.Printf("🔍 Analyzing %d symbols...\n\n", len(symbols))

	reports := make([]*technical.Report, 0, len(symbols))
	for _, symbol := range symbols {
		bars, err := provider.FetchBars(ctx, symbol, cfg.Technical.Period)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to fetch bars", err, "symbol", symbol)
			continue
		}

		var analyzer interfaces.TechnicalAnalyzer = technical.NewEngine(symbol, cfg.Technical.Period, cfg.Technical.Params)
		for _, bar := range bars {
			analyzer.Update(ctx, bar)
		}
		report := analyzer.Report()
		reports = append(reports, report)
		printReport(report)
		fmt.Println()

		if err := resultlog.AppendTechnical(resultlog.TechnicalEntry{
			Symbol:     report.Symbol,
			Period:     report.Period,
			Confidence: report.Confidence.Score,
			Rating:     report.Confidence.Rating,
			Adaptive:   report.Adaptive.FinalAdaptiveScore,
		}); err != nil {
			logger.Warn(ctx, "Failed to append run history", "error", err)
		}
	}

	if len(os.Args) > 1 && os.Args[1] == "--json" {
		saveReportsJSON(reports, "technical_results.json")
	}
}

func initializeProvider(ctx context.Context, cfg *store.Config) marketdata.Provider {
	if cfg.Technical.DataSource == "KITE" {
		logger.Info(ctx, "Using LIVE candle data from Zerodha Kite")
		return marketdata.NewKiteProvider(
			os.Getenv(cfg.Technical.Kite.APIKeyEnv),
			os.Getenv(cfg.Technical.Kite.AccessTokenEnv),
			cfg.Technical.Kite.InstrumentTokens,
			cfg.Technical.Kite.HistoryDays,
		)
	}
	logger.Info(ctx, "Using MOCK candle data for testing")
	return marketdata.NewMockProvider(cfg.Technical.MockSeed, cfg.Technical.MockBars)
}

func printReport(r *technical.Report) {
	emoji := "📊"
	switch r.Confidence.Rating {
	case "very strong":
		emoji = "🔥"
	case "strong":
		emoji = "✅"
	case "weak":
		emoji = "⚠️"
	case "very weak":
		emoji = "❌"
	}

	fmt.Printf("%s %s (%s, %d bars): confidence %.1f/100 (%s)\n",
		emoji, r.Symbol, r.Period, r.Bars, r.Confidence.Score, r.Confidence.Rating)
	fmt.Println("─────────────────────────────────────────────────────────────")

	for _, ma := range r.MovingAverages {
		status := "warming up"
		if ma.Filled {
			status = fmt.Sprintf("%.2f (%s, %+.2f%% from price)", ma.Current, ma.Trend, ma.DistanceFromPrice)
		}
		fmt.Printf("  📉 SMA-%-3d           %s\n", ma.Window, status)
	}
	if r.GoldenCross {
		fmt.Println("  ✨ GOLDEN CROSS on latest bar")
	}
	if r.DeathCross {
		fmt.Println("  💀 DEATH CROSS on latest bar")
	}

	fmt.Printf("  🌀 Fib position:      %.2f (golden ratio strength %.1f)\n",
		r.Fibonacci.CurrentFibPosition, r.Fibonacci.GoldenRatioStrength)

	p := r.Patterns
	fmt.Printf("  🕯  Patterns:          %d bullish / %d bearish / %d neutral\n",
		p.BullishCount, p.BearishCount, p.NeutralCount)
	if p.Strongest != nil {
		fmt.Printf("     Strongest: %s (%s, strength %.0f, reliability %.0f)\n",
			p.Strongest.PatternName, p.Strongest.Direction, p.Strongest.Strength, p.Strongest.Reliability)
	}

	a := r.Adaptation
	if a.SampleSize > 0 {
		fmt.Printf("  🧠 Adaptation:        %.0f%% success over %d outcomes (regime: %s)\n",
			a.SuccessRate*100, a.SampleSize, a.CurrentRegime)
		if a.RegimeShiftDetected {
			fmt.Printf("     ⚡ Regime shift detected (magnitude %.0f%%)\n", a.RegimeShiftMagnitude)
		}
	}

	ad := r.Adaptive
	fmt.Printf("  🎯 Adaptive score:    %.1f (base %.1f, trend %+.1f, freq %+.1f, evol %+.1f)\n",
		ad.FinalAdaptiveScore, ad.BaseScore, ad.TrendFollowingAdj, ad.FrequencyShiftAdj, ad.ReliabilityEvolutionAdj)

	fmt.Println()
	fmt.Println("  Confidence Components:")
	fmt.Printf("    • MA alignment:        %.2f\n", r.Confidence.MAAlignment)
	fmt.Printf("    • Fib alignment:       %.2f\n", r.Confidence.FibAlignment)
	fmt.Printf("    • Volume confirmation: %.2f\n", r.Confidence.VolumeConfirmation)
	fmt.Printf("    • Pattern confirmation: %.2f\n", r.Confidence.PatternConfirmation)
}

func saveReportsJSON(reports []*technical.Report, filename string) {
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create JSON file: %v\n", err)
		return
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(reports); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write JSON: %v\n", err)
		return
	}

	fmt.Printf("💾 Results saved to %s\n", filename)
}
