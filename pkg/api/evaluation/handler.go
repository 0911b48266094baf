package evaluation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/riddhi2106/VentureValuator/pkg/core/config"
	"github.com/riddhi2106/VentureValuator/pkg/core/pipeline"
	"github.com/riddhi2106/VentureValuator/pkg/core/projection"
	"github.com/riddhi2106/VentureValuator/pkg/core/utils"
	"github.com/riddhi2106/VentureValuator/pkg/models"
)

// Handler holds dependencies for the evaluation endpoints.
type Handler struct {
	cfg *config.EngineConfig
}

// NewHandler creates an evaluation handler bound to one engine config.
func NewHandler(cfg *config.EngineConfig) *Handler {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Handler{cfg: cfg}
}

type errorResponse struct {
	Error   string              `json:"error"`
	Fields  []models.FieldError `json:"fields,omitempty"`
	Setting string              `json:"setting,omitempty"`
}

// HandleEvaluate runs the full pipeline on a raw record payload.
// Query params: granularity=monthly|annual, scenarios=presets|derived,
// pretty=true.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	payload, ok := h.readPayload(w, r)
	if !ok {
		return
	}

	cfg := h.requestConfig(r)
	fmt.Printf("[EVALUATION] Request: %d field(s), granularity=%s, scenarios=%s\n",
		len(payload), cfg.Granularity, cfg.ScenarioSource)

	result, err := pipeline.NewEvaluator(cfg).Evaluate(payload)
	if err != nil {
		respondError(w, err)
		return
	}

	fmt.Printf("[EVALUATION] %s: composite %d, %d flag(s), %d warning(s)\n",
		result.EvaluationID, result.Scorecard.Composite, len(result.Scorecard.Flags), len(result.Warnings))
	respondJSON(w, r, result)
}

// HandleUnitEconomics runs only normalization and the ratio suite.
func (h *Handler) HandleUnitEconomics(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	payload, ok := h.readPayload(w, r)
	if !ok {
		return
	}

	result, err := pipeline.NewEvaluator(h.cfg).EvaluateUnitEconomics(payload)
	if err != nil {
		respondError(w, err)
		return
	}

	fmt.Printf("[EVALUATION] %s: unit economics served (%d unavailable)\n",
		result.EvaluationID, len(result.CalculationErrors))
	respondJSON(w, r, result)
}

// HandleScenarios lists the configured scenario table.
func (h *Handler) HandleScenarios(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := map[string]any{
		"scenario_source": h.cfg.ScenarioSource,
		"granularity":     h.cfg.Granularity,
		"horizon_years":   h.cfg.HorizonYears,
		"scenarios":       h.cfg.Scenarios,
	}
	respondJSON(w, r, resp)
}

// readPayload reads the body through the lenient intake. Extractor output
// is often damaged JSON; strict decoding happens nowhere at this boundary.
func (h *Handler) readPayload(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondStatus(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("reading body: %v", err)})
		return nil, false
	}
	payload, err := utils.SmartParse(string(body))
	if err != nil {
		fmt.Printf("[EVALUATION] Intake failed: %v\n", err)
		respondStatus(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return nil, false
	}
	return payload, true
}

// requestConfig copies the handler config with per-request overrides from
// query parameters. Invalid values fail configuration validation inside the
// pipeline and come back as a 400.
func (h *Handler) requestConfig(r *http.Request) *config.EngineConfig {
	cfg := *h.cfg
	if g := r.URL.Query().Get("granularity"); g != "" {
		cfg.Granularity = projection.Granularity(g)
	}
	if src := r.URL.Query().Get("scenarios"); src != "" {
		cfg.ScenarioSource = config.ScenarioSource(src)
	}
	return &cfg
}

func respondJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	if r.URL.Query().Get("pretty") == "true" {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		fmt.Printf("[EVALUATION] Encoding response failed: %v\n", err)
	}
}

func respondStatus(w http.ResponseWriter, status int, body errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// respondError maps the error taxonomy onto HTTP statuses: client-side
// input and configuration problems are 400s, anything else is a 500.
func respondError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		respondStatus(w, http.StatusBadRequest, errorResponse{Error: verr.Error(), Fields: verr.Fields})
		return
	}
	var cfgErr *models.ConfigurationError
	if errors.As(err, &cfgErr) {
		respondStatus(w, http.StatusBadRequest, errorResponse{Error: cfgErr.Error(), Setting: cfgErr.Setting})
		return
	}
	respondStatus(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}
