package models

type AgentState string

const (
	AgentReady      AgentState = "ready"
	AgentProcessing AgentState = "processing"
	AgentActive     AgentState = "active"
)

// Agent ids are fixed; nothing else may ever appear in a status map.
const (
	AgentCoordinator = "coordinator"
	AgentBudget      = "budget"
	AgentInvestment  = "investment"
	AgentSecurity    = "security"
)

func AgentIDs() []string {
	return []string{AgentCoordinator, AgentBudget, AgentInvestment, AgentSecurity}
}

func KnownAgent(id string) bool {
	switch id {
	case AgentCoordinator, AgentBudget, AgentInvestment, AgentSecurity:
		return true
	}
	return false
}

type AgentStatus struct {
	State      AgentState `json:"state"`
	StatusText string     `json:"status_text"`
	Confidence float64    `json:"confidence"`
}

// ReadyStatuses is the four-entry initial state, used at workflow start and on
// every reset.
func ReadyStatuses() map[string]AgentStatus {
	statuses := make(map[string]AgentStatus, 4)
	for _, id := range AgentIDs() {
		statuses[id] = AgentStatus{State: AgentReady, StatusText: "Ready", Confidence: 0}
	}
	return statuses
}
