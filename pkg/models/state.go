package models

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseCompleted  Phase = "completed"
	PhaseFailed     Phase = "failed" // settled with a fallback result, not fatal
)

// WorkflowState is the snapshot the display layer reads. The workflow owns the
// underlying data; snapshots are copies and safe to hold across updates.
type WorkflowState struct {
	Phase         Phase                  `json:"phase"`
	IsLoading     bool                   `json:"is_loading"`
	Result        *AnalysisResult        `json:"result,omitempty"`
	Error         string                 `json:"error,omitempty"`
	AgentStatuses map[string]AgentStatus `json:"agent_statuses"`
}

func NewWorkflowState() WorkflowState {
	return WorkflowState{
		Phase:         PhaseIdle,
		AgentStatuses: ReadyStatuses(),
	}
}

// Clone deep-copies the snapshot so readers never alias the workflow's map.
func (s WorkflowState) Clone() WorkflowState {
	out := s
	out.AgentStatuses = make(map[string]AgentStatus, len(s.AgentStatuses))
	for id, status := range s.AgentStatuses {
		out.AgentStatuses[id] = status
	}
	if s.Result != nil {
		result := *s.Result
		out.Result = &result
	}
	return out
}
