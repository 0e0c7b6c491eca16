package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"advisor-dash/pkg/messages"
	"advisor-dash/pkg/models"
)

type stateMsg models.WorkflowState

type healthMsg bool

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyCtrlR:
			m.inputErr = ""
			m.root.Send(m.pid, messages.Reset{})
			return m, nil
		case tea.KeyEnter:
			return m.submit()
		}

	case stateMsg:
		m.state = models.WorkflowState(msg)
		return m, m.pollState()

	case healthMsg:
		m.healthy = bool(msg)
		return m, m.pollHealth()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit is the caller-side validation gate: the workflow itself assumes
// non-empty fields.
func (m Model) submit() (tea.Model, tea.Cmd) {
	query := strings.TrimSpace(m.input.Value())
	req := models.QueryRequest{UserID: m.userID, AccountID: m.accountID, Query: query}
	if err := req.Validate(); err != nil {
		m.inputErr = err.Error()
		return m, nil
	}

	m.inputErr = ""
	m.input.Reset()
	m.root.Send(m.pid, messages.SubmitQuery{RequestID: uuid.New(), Request: req})
	return m, nil
}

func (m Model) pollState() tea.Cmd {
	root, pid, last := m.root, m.pid, m.state
	return tea.Tick(statePollInterval, func(time.Time) tea.Msg {
		future := root.RequestFuture(pid, messages.GetState{}, time.Second)
		res, err := future.Result()
		if err != nil {
			return stateMsg(last)
		}
		if state, ok := res.(models.WorkflowState); ok {
			return stateMsg(state)
		}
		return stateMsg(last)
	})
}

func (m Model) pollHealth() tea.Cmd {
	coordinator := m.coordinator
	return tea.Tick(healthPollInterval, func(time.Time) tea.Msg {
		return healthMsg(coordinator.Health(context.Background()).Healthy())
	})
}
