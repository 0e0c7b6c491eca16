package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"advisor-dash/pkg/models"
)

const confidenceBarWidth = 10

func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	b.WriteString(m.renderAgents())
	b.WriteString("\n")

	if m.state.Error != "" {
		b.WriteString(errorBannerStyle.Render("! " + m.state.Error))
		b.WriteString("\n")
	}

	if m.state.Result != nil {
		b.WriteString(m.renderResult(*m.state.Result))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.inputErr != "" {
		b.WriteString(errorBannerStyle.Render(m.inputErr))
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("AI FINANCIAL ADVISOR")

	backend := unreachableStyle.Render("backend: unreachable (simulated)")
	if m.healthy {
		backend = healthyStyle.Render("backend: healthy")
	}

	loading := ""
	if m.state.IsLoading {
		loading = " " + m.spin.View() + "analyzing"
	}

	return title + "  " + backend + loading
}

func (m Model) renderAgents() string {
	var b strings.Builder
	for _, id := range agentOrder {
		status, ok := m.state.AgentStatuses[id]
		if !ok {
			continue
		}

		icon, style := agentGlyph(status.State)
		b.WriteString(fmt.Sprintf("%s %s %s %s\n",
			style.Render(icon),
			agentNameStyle.Render(id),
			confidenceStyle.Render(confidenceBar(status.Confidence)),
			style.Render(status.StatusText),
		))
	}
	return b.String()
}

func agentGlyph(state models.AgentState) (string, lipgloss.Style) {
	switch state {
	case models.AgentProcessing:
		return "◐", agentProcessingStyle
	case models.AgentActive:
		return "✓", agentActiveStyle
	default:
		return "○", agentReadyStyle
	}
}

func confidenceBar(confidence float64) string {
	filled := int(confidence * confidenceBarWidth)
	if filled > confidenceBarWidth {
		filled = confidenceBarWidth
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", confidenceBarWidth-filled) + "]"
}

func (m Model) renderResult(result models.AnalysisResult) string {
	var b strings.Builder

	b.WriteString(sectionTitleStyle.Render("Summary"))
	b.WriteString("\n" + result.Summary + "\n")

	writeSection(&b, "Plan", result.DetailedPlan)
	writeSection(&b, "Key Insights", result.KeyInsights)
	writeSection(&b, "Next Actions", result.NextActions)

	if result.Monitoring != "" {
		b.WriteString(sectionTitleStyle.Render("Monitoring"))
		b.WriteString("\n" + result.Monitoring + "\n")
	}

	return resultPaneStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func writeSection(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(sectionTitleStyle.Render(title))
	b.WriteString("\n")
	for _, item := range items {
		b.WriteString("  • " + item + "\n")
	}
}

func (m Model) renderHelp() string {
	return helpStyle.Render(
		helpKeyStyle.Render("enter") + " submit  " +
			helpKeyStyle.Render("ctrl+r") + " reset  " +
			helpKeyStyle.Render("esc") + " quit",
	)
}
