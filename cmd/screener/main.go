package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"fundamental-screener/internal/interfaces"
	"fundamental-screener/internal/logger"
	"fundamental-screener/internal/resultlog"
	"fundamental-screener/internal/screening"
)

func main() {
	if err := initializeSystem(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	defer logger.Shutdown(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	compressOldLogs(ctx, cfg)

	fmt.Println("╔══════════════════════════════════════════════════════════════╗")
	fmt.Println("║        Fundamental Screener - Revenue Quality Analysis       ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════╝")
	fmt.Println()

	provider, closeProvider, err := initializeProvider(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize data provider: %v\n", err)
		os.Exit(1)
	}
	defer closeProvider()

	var screener interfaces.CompanyScreener = screening.NewScreener(cfg.Screening.Params, provider)

	fmt.Printf("🔍 Screening %d companies...\n\n", len(cfg.Universe))

	result, err := screener.ScreenUniverse(ctx, cfg.Universe)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Screening failed: %v\n", err)
		os.Exit(1)
	}

	printResults(result)

	if err := appendRunHistory(cfg.Universe, result); err != nil {
		logger.Warn(ctx, "Failed to append run history", "error", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "--json" {
		saveResultsJSON(result, "screening_results.json")
	}
}

func appendRunHistory(universe []string, result *screening.ScreeningResult) error {
	return resultlog.AppendScreening(resultlog.ScreeningEntry{
		Universe:       universe,
		TotalCompanies: result.Summary.TotalCompanies,
		Skipped:        result.Summary.Skipped,
		Failed:         result.Summary.Failed,
		AverageScore:   result.Summary.AverageScore,
		StrongBuys:     result.Summary.ActionCounts[string(screening.ActionStrongBuy)],
		Avoids:         result.Summary.ActionCounts[string(screening.ActionAvoid)],
	})
}

func printResults(result *screening.ScreeningResult) {
	s := result.Summary

	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("                      SCREENING SUMMARY")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("Generated:          %s\n", s.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Total Screened:     %d companies\n", s.TotalCompanies)
	fmt.Printf("Skipped:            %d (invalid data)\n", s.Skipped)
	fmt.Printf("Failed:             %d\n", s.Failed)
	fmt.Printf("Average Score:      %.1f\n", s.AverageScore)
	fmt.Printf("Median Score:       %.1f\n", s.MedianScore)
	fmt.Printf("Score Range:        %.1f - %.1f\n", s.MinScore, s.MaxScore)
	fmt.Println()

	if len(result.Companies) == 0 {
		fmt.Println("⚠️  No companies produced usable scores")
		return
	}

	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("                     RANKED COMPANIES")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	for i, company := range result.Companies {
		printCompany(i+1, &company)
		fmt.Println()
	}

	if len(s.Insights) > 0 {
		fmt.Println("═══════════════════════════════════════════════════════════════")
		fmt.Println("💡 Insights:")
		for _, insight := range s.Insights {
			fmt.Printf("  • %s\n", insight)
		}
		fmt.Println()
	}
}

func printCompany(rank int, company *screening.CompanyScreeningResult) {
	emoji := "📊"
	switch company.Recommendation.Action {
	case screening.ActionStrongBuy:
		emoji = "🔥"
	case screening.ActionBuy:
		emoji = "✅"
	case screening.ActionHold:
		emoji = "⚠️"
	case screening.ActionWatch:
		emoji = "👀"
	case screening.ActionAvoid:
		emoji = "❌"
	}

	fmt.Printf("%s Rank #%d: %s (%.1f/100 - Grade %s - %s)\n",
		emoji, rank, company.Ticker,
		company.Quality.OverallScore, company.Quality.OverallGrade,
		company.Recommendation.Action)
	fmt.Println("─────────────────────────────────────────────────────────────")

	pred := company.Predictability
	fmt.Printf("  📈 Predictability:    %.1f/100 (%s, trend %s)\n",
		pred.OverallScore, pred.Grade, pred.Trend)
	fmt.Printf("     • QoQ consistency: %.1f  • QoY consistency: %.1f\n",
		pred.QoQScore, pred.QoYScore)

	depth := company.Depth
	fmt.Printf("  📚 10-K Depth:        %.1f/100 (%s, %s)\n",
		depth.DepthScore, depth.Grade, depth.ExpansionTrend)

	fmt.Println()
	fmt.Println("  Component Points:")
	for _, name := range []string{"predictability", "depth", "expansion_trend", "growth"} {
		fmt.Printf("    • %-18s %.1f\n", name+":", company.Quality.Components[name])
	}

	fmt.Println()
	fmt.Printf("  🎯 Confidence:        %.0f%%\n", company.Recommendation.Confidence)
	for _, reason := range company.Recommendation.Reasons {
		fmt.Printf("  📝 %s\n", reason)
	}
}

func saveResultsJSON(result *screening.ScreeningResult, filename string) {
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create JSON file: %v\n", err)
		return
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write JSON: %v\n", err)
		return
	}

	fmt.Printf("💾 Results saved to %s\n", filename)
}
