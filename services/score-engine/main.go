package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/riddhi2106/VentureValuator/pkg/core/config"
	"github.com/riddhi2106/VentureValuator/pkg/core/pipeline"
	"github.com/riddhi2106/VentureValuator/pkg/core/utils"
)

// score-engine is the single-shot evaluation binary: one JSON payload in,
// one JSON document out. Meant for shelling out from other services.
func main() {
	mode := flag.String("mode", "evaluate", "Mode: evaluate, uniteconomics, project or score")
	dataStr := flag.String("data", "", "JSON record payload")
	configPath := flag.String("config", "", "Engine config file (optional)")
	flag.Parse()

	if *dataStr == "" {
		fmt.Println("Error: No data provided")
		os.Exit(1)
	}

	payload, err := utils.SmartParse(*dataStr)
	if err != nil {
		fmt.Printf("Error parsing data: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	evaluator := pipeline.NewEvaluator(cfg)

	var out any
	switch *mode {
	case "uniteconomics":
		out, err = evaluator.EvaluateUnitEconomics(payload)
	case "evaluate":
		out, err = evaluator.Evaluate(payload)
	case "project":
		var result *pipeline.EvaluationResult
		if result, err = evaluator.Evaluate(payload); err == nil {
			out = result.Projections
		}
	case "score":
		var result *pipeline.EvaluationResult
		if result, err = evaluator.Evaluate(payload); err == nil {
			out = result.Scorecard
		}
	default:
		fmt.Printf("Unknown mode: %s\n", *mode)
		os.Exit(1)
	}
	if err != nil {
		fmt.Printf("Error running %s: %v\n", *mode, err)
		os.Exit(1)
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Printf("Error encoding output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(encoded))
}
