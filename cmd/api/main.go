package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/riddhi2106/VentureValuator/pkg/api/evaluation"
	"github.com/riddhi2106/VentureValuator/pkg/core/config"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Engine config: documented defaults, overridable from VV_CONFIG
	cfg := config.Default()
	if path := os.Getenv("VV_CONFIG"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			fmt.Printf("[FATAL] Engine config %s rejected: %v\n", path, err)
			os.Exit(1)
		}
		cfg = loaded
		fmt.Printf("[CONFIG] Loaded engine config from %s\n", path)
	}

	// Evaluation endpoints
	handler := evaluation.NewHandler(cfg)
	http.HandleFunc("/api/evaluate", handler.HandleEvaluate)
	http.HandleFunc("/api/evaluate/uniteconomics", handler.HandleUnitEconomics)
	http.HandleFunc("/api/evaluate/scenarios", handler.HandleScenarios)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("API server starting on :%s...\n", port)
	fmt.Println("  - POST /api/evaluate  (?granularity=monthly|annual, ?scenarios=presets|derived, ?pretty=true)")
	fmt.Println("  - POST /api/evaluate/uniteconomics")
	fmt.Println("  - GET  /api/evaluate/scenarios")

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
