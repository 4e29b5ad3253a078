package dispatcher

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Kumar-509/voice-ai-frontend/internal/eventbus"
)

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// BusClosedMsg is delivered once the core side of the bus has shut down.
type BusClosedMsg struct{}

// EventDispatcher handles routing events between core and UI
type EventDispatcher struct {
	eventBus *eventbus.EventBus
}

func NewEventDispatcher(eventBus *eventbus.EventBus) *EventDispatcher {
	return &EventDispatcher{eventBus: eventBus}
}

// ListenForUIEvents waits for the next core event. The model re-issues it after every
// delivered event so exactly one listener is pending at a time.
func (ed *EventDispatcher) ListenForUIEvents() tea.Cmd {
	ch := ed.eventBus.CoreToUI()
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return BusClosedMsg{}
		}
		return CoreEventMsg{Event: event}
	}
}

// Send forwards a UI event to the core.
func (ed *EventDispatcher) Send(event eventbus.UIEvent) error {
	return ed.eventBus.SendToCore(event)
}

func (ed *EventDispatcher) GetEventBus() *eventbus.EventBus {
	return ed.eventBus
}
