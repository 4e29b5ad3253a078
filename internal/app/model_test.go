package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kumar-509/voice-ai-frontend/internal/dispatcher"
	"github.com/Kumar-509/voice-ai-frontend/internal/eventbus"
	"github.com/Kumar-509/voice-ai-frontend/internal/models"
)

func newTestAppModel(t *testing.T) (*AppModel, *eventbus.EventBus) {
	t.Helper()
	eb := eventbus.NewEventBus()
	t.Cleanup(eb.Close)
	return newAppModel(dispatcher.NewEventDispatcher(eb), nil), eb
}

func TestView_ChatSurface(t *testing.T) {
	m, _ := newTestAppModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m.Update(dispatcher.CoreEventMsg{Event: eventbus.StateUpdateEvent{
		Messages:   []models.Message{{Content: "hello", Role: models.User}},
		Status:     "✅ Connected to AI backend",
		Connection: models.ConnectionConnected,
	}})

	view := m.View()
	assert.Contains(t, view, "Connected")
	assert.Contains(t, view, "You: hello")
	assert.Contains(t, view, "✅ Connected to AI backend")
}

func TestView_ModalSurfaces(t *testing.T) {
	m, _ := newTestAppModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Contains(t, m.View(), "Enter search query:")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Contains(t, m.View(), "Set Reminder")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m.Update(dispatcher.CoreEventMsg{Event: eventbus.NoticeEvent{Text: "Voice input not supported."}})
	assert.Contains(t, m.View(), "Voice input not supported.")
}

func TestUpdate_KeysReachCore(t *testing.T) {
	m, eb := newTestAppModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	select {
	case ev := <-eb.UIToCore():
		assert.Equal(t, eventbus.SendMessageEvent{Message: "hi"}, ev)
	default:
		t.Fatal("expected a send event")
	}
}

func TestUpdate_BusClosedQuits(t *testing.T) {
	m, _ := newTestAppModel(t)

	_, cmd := m.Update(dispatcher.BusClosedMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
