package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/riddhi2106/VentureValuator/pkg/core/calc"
	"github.com/riddhi2106/VentureValuator/pkg/core/config"
	"github.com/riddhi2106/VentureValuator/pkg/core/pipeline"
	"github.com/riddhi2106/VentureValuator/pkg/core/projection"
	"github.com/riddhi2106/VentureValuator/pkg/core/utils"
)

func main() {
	input := flag.String("input", "-", "Record file (JSON/HJSON), or - for stdin")
	configPath := flag.String("config", "", "Engine config file (defaults to VV_CONFIG, then built-ins)")
	granularity := flag.String("granularity", "", "Override step granularity: monthly or annual")
	scenarios := flag.String("scenarios", "", "Override scenario source: presets or derived")
	asJSON := flag.Bool("json", false, "Emit the full evaluation result as JSON")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	cfg := loadConfig(*configPath)
	if *granularity != "" {
		cfg.Granularity = projection.Granularity(*granularity)
	}
	if *scenarios != "" {
		cfg.ScenarioSource = config.ScenarioSource(*scenarios)
	}

	raw, err := readInput(*input)
	if err != nil {
		log.Fatalf("Reading input: %v", err)
	}
	payload, err := utils.SmartParse(raw)
	if err != nil {
		log.Fatalf("Parsing input: %v", err)
	}

	result, err := pipeline.NewEvaluator(cfg).Evaluate(payload)
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}

	if *asJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("Encoding result: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	printReport(result)
}

func loadConfig(path string) *config.EngineConfig {
	if path == "" {
		path = os.Getenv("VV_CONFIG")
	}
	if path == "" {
		return config.Default()
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		log.Fatalf("Engine config %s rejected: %v", path, err)
	}
	return cfg
}

func readInput(input string) (string, error) {
	if input == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(input)
	return string(data), err
}

// orderedScenarios returns the projection names with the standard presets
// first, any custom names after them alphabetically.
func orderedScenarios(result *pipeline.EvaluationResult) []string {
	names := make([]string, 0, len(result.Projections))
	for _, preset := range []string{projection.ScenarioConservative, projection.ScenarioBase, projection.ScenarioOptimistic} {
		if _, ok := result.Projections[preset]; ok {
			names = append(names, preset)
		}
	}
	var extras []string
	for name := range result.Projections {
		switch name {
		case projection.ScenarioConservative, projection.ScenarioBase, projection.ScenarioOptimistic:
		default:
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	return append(names, extras...)
}

func metricLine(label string, m calc.Metric, format string) {
	if !m.Available {
		fmt.Printf("%-22s n/a (%s)\n", label+":", m.Reason)
		return
	}
	fmt.Printf("%-22s "+format+"\n", label+":", m.Value)
}

func periodLabel(periods int, gran projection.Granularity) string {
	if periods < 0 {
		return "not reached"
	}
	unit := "mo"
	if gran == projection.GranularityAnnual {
		unit = "yr"
	}
	return fmt.Sprintf("%d %s", periods, unit)
}

func printReport(result *pipeline.EvaluationResult) {
	fmt.Println("\n################################################################################")
	fmt.Println("                 VENTUREVALUATOR - STARTUP EVALUATION REPORT")
	fmt.Printf("                 Evaluation %s\n", result.EvaluationID)
	fmt.Printf("                 Generated %s\n", result.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Println("################################################################################")

	// [1] UNIT ECONOMICS
	fmt.Println("\n[1] UNIT ECONOMICS")
	ue := result.UnitEconomics
	metricLine("CAC", ue.CAC, "$ %10.2f")
	metricLine("ARPU", ue.ARPU, "$ %10.2f")
	metricLine("LTV", ue.LTV, "$ %10.2f")
	metricLine("LTV:CAC", ue.LTVToCAC, "%12.2f")
	metricLine("Payback (months)", ue.PaybackMonths, "%12.2f")
	metricLine("Monthly Burn", ue.MonthlyBurn, "$ %10.2f")
	metricLine("Burn Multiple", ue.BurnMultiple, "%12.2f")
	metricLine("Gross Margin", ue.GrossMargin, "%12.2f")

	// [2] SCENARIO PROJECTIONS
	names := orderedScenarios(result)
	first := result.Projections[names[0]]
	fmt.Printf("\n[2] SCENARIO PROJECTIONS (5-year horizon, %s steps)\n", first.Granularity)
	fmt.Printf("%-14s | %16s | %16s | %12s | %12s | %8s\n",
		"Scenario", "Total Revenue", "Final Cash", "Breakeven", "Runway", "CAGR")
	fmt.Println(strings.Repeat("-", 92))
	for _, name := range names {
		proj := result.Projections[name]
		s := proj.Summary
		fmt.Printf("%-14s | $ %14.0f | $ %14.0f | %12s | %12s | %7.1f%%\n",
			name, s.CumulativeRevenue, s.FinalCash,
			periodLabel(s.BreakevenPeriod, proj.Granularity),
			periodLabel(s.RunwayPeriods, proj.Granularity),
			s.RevenueCAGR*100)
	}
	fmt.Println(strings.Repeat("-", 92))

	// [3] SENSITIVITY
	if sens := result.Sensitivity; sens != nil {
		fmt.Printf("\n[3] SENSITIVITY (%d cells around %q)\n", len(sens.Cells), sens.Scenario)
		fmt.Printf("Final cash:            mean $ %14.0f   stddev $ %14.0f\n", sens.MeanFinalCash, sens.StdDevFinalCash)
		fmt.Printf("                        min $ %14.0f      max $ %14.0f\n", sens.MinFinalCash, sens.MaxFinalCash)
		fmt.Printf("Revenue elasticity:    growth %7.2f   churn %7.2f\n", sens.GrowthElasticity, sens.ChurnElasticity)
	}

	// [4] SCORECARD
	fmt.Println("\n[4] SCORECARD")
	fmt.Printf("%-12s | %6s | %6s | %10s | %s\n", "Dimension", "Score", "Weight", "Provenance", "Rationale")
	fmt.Println(strings.Repeat("-", 70))
	for _, sub := range result.Scorecard.SubScores {
		fmt.Printf("%-12s | %6.1f | %6.2f | %10s | %s\n",
			sub.Dimension, sub.Score, sub.Weight, sub.Provenance, strings.Join(sub.Rationale, ", "))
	}
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("COMPOSITE: %d/100\n", result.Scorecard.Composite)
	for _, f := range result.Scorecard.Flags {
		fmt.Printf("Flag: %-26s %s\n", f.Name, f.Detail)
	}

	// [5] WARNINGS
	if len(result.Warnings) > 0 || len(result.CalculationErrors) > 0 {
		fmt.Println("\n[5] WARNINGS")
		for _, w := range result.Warnings {
			fmt.Printf("  - %s\n", w)
		}
		for _, ce := range result.CalculationErrors {
			fmt.Printf("  - %s: %s (%s)\n", ce.Metric, ce.Detail, ce.Kind)
		}
	}

	fmt.Printf("\n[Done] Evaluation complete.\n")
}
