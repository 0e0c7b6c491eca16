package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAnalysisResult_WrappedResult(t *testing.T) {
	body := []byte(`{"status":"success","result":{"summary":"S","detailed_plan":["p1"],"key_insights":["k1"],"next_actions":["n1"]}}`)

	result, err := DecodeAnalysisResult(body)
	require.NoError(t, err)
	assert.Equal(t, "S", result.Summary)
	assert.Equal(t, []string{"p1"}, result.DetailedPlan)
	assert.Equal(t, []string{"k1"}, result.KeyInsights)
	assert.Equal(t, []string{"n1"}, result.NextActions)
}

func TestDecodeAnalysisResult_DirectBody(t *testing.T) {
	body := []byte(`{"summary":"direct","monitoring":"monthly"}`)

	result, err := DecodeAnalysisResult(body)
	require.NoError(t, err)
	assert.Equal(t, "direct", result.Summary)
	assert.Equal(t, "monthly", result.Monitoring)
}

func TestDecodeAnalysisResult_DefaultsMissingFields(t *testing.T) {
	result, err := DecodeAnalysisResult([]byte(`{"result":{"summary":"only summary"}}`))
	require.NoError(t, err)

	assert.Equal(t, "only summary", result.Summary)
	assert.NotNil(t, result.DetailedPlan)
	assert.Empty(t, result.DetailedPlan)
	assert.NotNil(t, result.KeyInsights)
	assert.Empty(t, result.KeyInsights)
	assert.NotNil(t, result.NextActions)
	assert.Empty(t, result.NextActions)
	assert.Empty(t, result.Monitoring)
}

func TestDecodeAnalysisResult_ErrorEnvelope(t *testing.T) {
	// the coordinator reports failures with a 200 and an error field
	_, err := DecodeAnalysisResult([]byte(`{"error":"Analysis failed: boom"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestDecodeAnalysisResult_RejectsBadJSON(t *testing.T) {
	_, err := DecodeAnalysisResult([]byte(`<html>not json</html>`))
	require.Error(t, err)
}

func TestFallback(t *testing.T) {
	result := Fallback("help me save")

	assert.NotEmpty(t, result.Summary)
	assert.Contains(t, result.Summary, "simulated")
	assert.NotEmpty(t, result.DetailedPlan)
	assert.NotEmpty(t, result.KeyInsights)
	assert.NotEmpty(t, result.NextActions)
	for _, id := range AgentIDs() {
		assert.Contains(t, result.ConfidenceScores, id)
	}
}

func TestReadyStatuses(t *testing.T) {
	statuses := ReadyStatuses()

	require.Len(t, statuses, 4)
	for _, id := range AgentIDs() {
		status, ok := statuses[id]
		require.True(t, ok, "missing agent %s", id)
		assert.Equal(t, AgentReady, status.State)
		assert.Equal(t, "Ready", status.StatusText)
		assert.Zero(t, status.Confidence)
	}
}

func TestQueryRequestValidate(t *testing.T) {
	valid := QueryRequest{UserID: "u1", AccountID: "a1", Query: "q"}
	require.NoError(t, valid.Validate())

	cases := []QueryRequest{
		{AccountID: "a1", Query: "q"},
		{UserID: "u1", Query: "q"},
		{UserID: "u1", AccountID: "a1"},
		{UserID: "  ", AccountID: "a1", Query: "q"},
	}
	for _, c := range cases {
		assert.Error(t, c.Validate())
	}
}

func TestWorkflowStateClone(t *testing.T) {
	state := NewWorkflowState()
	state.Result = &AnalysisResult{Summary: "S"}

	clone := state.Clone()
	clone.AgentStatuses[AgentBudget] = AgentStatus{State: AgentActive, StatusText: "done", Confidence: 1}
	clone.Result.Summary = "mutated"

	assert.Equal(t, AgentReady, state.AgentStatuses[AgentBudget].State)
	assert.Equal(t, "S", state.Result.Summary)
}
