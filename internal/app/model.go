package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Kumar-509/voice-ai-frontend/internal/dispatcher"
	"github.com/Kumar-509/voice-ai-frontend/internal/models"
	"github.com/Kumar-509/voice-ai-frontend/internal/update"
	"github.com/Kumar-509/voice-ai-frontend/ui/components"
)

type AppModel struct {
	appModel   models.AppModel
	widgets    *update.Widgets
	dispatcher *dispatcher.EventDispatcher
}

func newAppModel(disp *dispatcher.EventDispatcher, newMarkdown func(width int) components.Markdown) *AppModel {
	widgets := update.NewWidgets()
	widgets.NewMarkdown = newMarkdown
	// Messages start empty; the core is the single source of truth and pushes them.
	return &AppModel{
		appModel: models.AppModel{
			Messages:   make([]models.Message, 0),
			Connection: models.ConnectionChecking,
		},
		widgets:    widgets,
		dispatcher: disp,
	}
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.widgets.Spinner.Tick,
		m.dispatcher.ListenForUIEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dispatcher.CoreEventMsg:
		cmd := update.HandleCoreEvent(&m.appModel, m.widgets, msg)
		return m, tea.Batch(cmd, m.dispatcher.ListenForUIEvents())
	case dispatcher.BusClosedMsg:
		return m, tea.Quit
	}

	cmd := update.HandleUpdate(&m.appModel, m.widgets, msg, m.dispatcher)
	return m, cmd
}

func (m *AppModel) View() string {
	var b strings.Builder
	width := m.appModel.Width

	b.WriteString(components.RenderHeader(m.appModel.Connection, m.appModel.Listening, width))
	b.WriteString("\n")
	b.WriteString(m.widgets.Viewport.View())
	b.WriteString("\n")

	switch m.appModel.Mode {
	case models.ModeSearch:
		b.WriteString(components.RenderSearchPrompt(m.widgets.Search.View(), width))
	case models.ModeReminder:
		b.WriteString(components.RenderReminderForm(m.widgets.ReminderText.View(), m.widgets.ReminderTime.View(), width))
	case models.ModeNotice:
		b.WriteString(components.RenderNotice(m.appModel.Notice, width))
	default:
		b.WriteString(components.RenderInput(m.widgets.Chat.View(), m.appModel.Busy, width))
	}
	b.WriteString("\n")
	b.WriteString(components.RenderStatus(m.appModel.Status, width))

	return b.String()
}
