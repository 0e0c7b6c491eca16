package models

import (
	"encoding/json"
	"fmt"
)

// AnalysisResult is what the result pane renders. Produced either by the
// coordinator or by Fallback when the coordinator is unreachable. Immutable
// once adopted by the workflow.
type AnalysisResult struct {
	Summary          string             `json:"summary"`
	DetailedPlan     []string           `json:"detailed_plan"`
	KeyInsights      []string           `json:"key_insights"`
	NextActions      []string           `json:"next_actions"`
	Monitoring       string             `json:"monitoring,omitempty"`
	ConfidenceScores map[string]float64 `json:"confidence_scores,omitempty"`
}

// DecodeAnalysisResult parses a coordinator response body. The coordinator
// either wraps the payload as {"status":..., "result": {...}} or returns the
// result object directly. It also reports failures as {"error": "..."} with a
// 200, which must be treated as a failed call.
func DecodeAnalysisResult(body []byte) (*AnalysisResult, error) {
	var envelope struct {
		Status string          `json:"status"`
		Error  string          `json:"error"`
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if envelope.Error != "" {
		return nil, fmt.Errorf("coordinator error: %s", envelope.Error)
	}

	payload := body
	if len(envelope.Result) > 0 {
		payload = envelope.Result
	}

	var result AnalysisResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}
	result.applyDefaults()
	return &result, nil
}

// applyDefaults keeps every display field renderable when the coordinator
// omits it.
func (r *AnalysisResult) applyDefaults() {
	if r.DetailedPlan == nil {
		r.DetailedPlan = []string{}
	}
	if r.KeyInsights == nil {
		r.KeyInsights = []string{}
	}
	if r.NextActions == nil {
		r.NextActions = []string{}
	}
}

// Fallback synthesizes the result shown when the live backend cannot be
// reached. The copy explains that displayed agent activity is simulated so the
// demo stays coherent.
func Fallback(query string) *AnalysisResult {
	return &AnalysisResult{
		Summary: "The live advisor backend could not be reached, so this analysis was " +
			"generated locally. The agent activity shown on the dashboard is simulated.",
		DetailedPlan: []string{
			"Reconnect to the coordinator service to get a personalized plan",
			"Review your budget with the spending breakdown in your banking app",
			"Set aside a fixed amount each month toward your goal",
		},
		KeyInsights: []string{
			fmt.Sprintf("Your query %q was received but not analyzed by the live agents", query),
			"Budget, investment and security agents were unavailable",
		},
		NextActions: []string{
			"Retry the request once the backend is reachable",
			"Verify the coordinator service is running",
		},
		Monitoring: "Resubmit your query to track progress once the agents are back online",
		ConfidenceScores: map[string]float64{
			AgentCoordinator: 0,
			AgentBudget:      0,
			AgentInvestment:  0,
			AgentSecurity:    0,
		},
	}
}
