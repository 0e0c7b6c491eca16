// Package ui renders the advisor dashboard in the terminal: a query input, the
// four-agent status panel and the results viewer. It only reads workflow
// snapshots; every mutation goes through the workflow actor.
package ui

import (
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"advisor-dash/internal/client"
	"advisor-dash/pkg/models"
)

const (
	statePollInterval  = 200 * time.Millisecond
	healthPollInterval = 5 * time.Second
)

// agentOrder fixes panel rows; maps would shuffle them every frame.
var agentOrder = []string{
	models.AgentCoordinator,
	models.AgentBudget,
	models.AgentInvestment,
	models.AgentSecurity,
}

type Model struct {
	root        *actor.RootContext
	pid         *actor.PID
	coordinator *client.Client

	userID    string
	accountID string

	input   textinput.Model
	spin    spinner.Model
	state   models.WorkflowState
	healthy bool

	width    int
	height   int
	quitting bool

	inputErr string
}

func NewModel(root *actor.RootContext, pid *actor.PID, coordinator *client.Client, userID, accountID string) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask the advisor, e.g. how do I save $80,000 in 3 years?"
	ti.CharLimit = 500
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		root:        root,
		pid:         pid,
		coordinator: coordinator,
		userID:      userID,
		accountID:   accountID,
		input:       ti,
		spin:        sp,
		state:       models.NewWorkflowState(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick, m.pollState(), m.pollHealth())
}
