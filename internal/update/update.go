package update

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Kumar-509/voice-ai-frontend/internal/dispatcher"
	"github.com/Kumar-509/voice-ai-frontend/internal/eventbus"
	"github.com/Kumar-509/voice-ai-frontend/internal/models"
)

// Sender forwards UI events to the core. *dispatcher.EventDispatcher satisfies it.
type Sender interface {
	Send(event eventbus.UIEvent) error
}

func HandleUpdate(appModel *models.AppModel, w *Widgets, msg tea.Msg, out Sender) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsg(appModel, w, msg, out)
	case tea.WindowSizeMsg:
		HandleWindowSizeMsg(appModel, w, msg)
		return nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		w.Spinner, cmd = w.Spinner.Update(msg)
		if hasPlaceholder(appModel.Messages) {
			w.Refresh(appModel, false)
		}
		return cmd
	case dispatcher.CoreEventMsg:
		return HandleCoreEvent(appModel, w, msg)
	}
	return nil
}
