// Package sim holds the cosmetic agent-activity schedule. Steps animate the
// dashboard on fixed delays and carry no information about real backend
// progress.
package sim

import (
	"time"

	"advisor-dash/pkg/models"
)

// Mutation is one agent's status change within a step.
type Mutation struct {
	Agent      string
	State      models.AgentState
	StatusText string
	Confidence float64
}

// Step applies one or more mutations at a fixed offset from submission time.
// Mutations within a step become visible together.
type Step struct {
	Offset    time.Duration
	Mutations []Mutation
}

type Schedule []Step

// Default is the observed production sequence. The literal offsets, texts and
// confidences are load-bearing for behavioral parity with the web dashboard.
func Default() Schedule {
	return Schedule{
		{Offset: 500 * time.Millisecond, Mutations: []Mutation{
			{models.AgentCoordinator, models.AgentProcessing, "Analyzing query...", 0.1},
		}},
		{Offset: 1500 * time.Millisecond, Mutations: []Mutation{
			{models.AgentBudget, models.AgentProcessing, "Analyzing spending...", 0.3},
		}},
		{Offset: 2500 * time.Millisecond, Mutations: []Mutation{
			{models.AgentInvestment, models.AgentProcessing, "Evaluating options...", 0.5},
		}},
		{Offset: 3500 * time.Millisecond, Mutations: []Mutation{
			{models.AgentSecurity, models.AgentProcessing, "Risk assessment...", 0.7},
		}},
		{Offset: 4500 * time.Millisecond, Mutations: []Mutation{
			{models.AgentBudget, models.AgentActive, "Budget analysis complete", 0.88},
			{models.AgentInvestment, models.AgentActive, "Investment analysis complete", 0.91},
			{models.AgentSecurity, models.AgentActive, "Security check complete", 0.95},
			{models.AgentCoordinator, models.AgentProcessing, "Synthesizing results...", 0.8},
		}},
		{Offset: 6 * time.Second, Mutations: []Mutation{
			{models.AgentCoordinator, models.AgentActive, "Analysis complete", 0.92},
		}},
	}
}

// Apply writes a step into the status map. Unknown agent ids are dropped: the
// four-entry invariant beats animating a typo.
func (s Step) Apply(statuses map[string]models.AgentStatus) {
	for _, m := range s.Mutations {
		if !models.KnownAgent(m.Agent) {
			continue
		}
		statuses[m.Agent] = models.AgentStatus{
			State:      m.State,
			StatusText: m.StatusText,
			Confidence: m.Confidence,
		}
	}
}
