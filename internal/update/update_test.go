package update

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kumar-509/voice-ai-frontend/internal/dispatcher"
	"github.com/Kumar-509/voice-ai-frontend/internal/eventbus"
	"github.com/Kumar-509/voice-ai-frontend/internal/models"
)

type recordingSender struct {
	events []eventbus.UIEvent
	err    error
}

func (r *recordingSender) Send(event eventbus.UIEvent) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, event)
	return nil
}

func newTestModel() (*models.AppModel, *Widgets, *recordingSender) {
	return &models.AppModel{}, NewWidgets(), &recordingSender{}
}

func typeText(appModel *models.AppModel, w *Widgets, out Sender, text string) {
	HandleKeyMsg(appModel, w, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}, out)
}

func press(appModel *models.AppModel, w *Widgets, out Sender, key tea.KeyType) tea.Cmd {
	return HandleKeyMsg(appModel, w, tea.KeyMsg{Type: key}, out)
}

func core(appModel *models.AppModel, w *Widgets, event eventbus.CoreEvent) tea.Cmd {
	return HandleCoreEvent(appModel, w, dispatcher.CoreEventMsg{Event: event})
}

func TestEnter_SendsMessageAndClearsInput(t *testing.T) {
	m, w, out := newTestModel()

	typeText(m, w, out, "hello")
	press(m, w, out, tea.KeyEnter)

	assert.Equal(t, []eventbus.UIEvent{eventbus.SendMessageEvent{Message: "hello"}}, out.events)
	assert.Empty(t, w.Chat.Value())
}

func TestEnter_BlankInputIgnored(t *testing.T) {
	m, w, out := newTestModel()

	typeText(m, w, out, "   ")
	press(m, w, out, tea.KeyEnter)

	assert.Empty(t, out.events)
}

func TestEnter_SendFailureKeepsInput(t *testing.T) {
	m, w, out := newTestModel()
	out.err = errors.New("channel full")

	typeText(m, w, out, "hello")
	press(m, w, out, tea.KeyEnter)

	assert.Equal(t, "hello", w.Chat.Value())
	assert.Contains(t, m.Status, "channel full")
}

func TestBusy_DisablesAffordances(t *testing.T) {
	m, w, out := newTestModel()
	core(m, w, eventbus.StateUpdateEvent{Busy: true, Messages: []models.Message{{ID: "typing-1", Role: models.Typing}}})
	require.True(t, m.Busy)
	assert.False(t, w.Chat.Focused())

	typeText(m, w, out, "more")
	press(m, w, out, tea.KeyEnter)
	press(m, w, out, tea.KeyCtrlS)
	press(m, w, out, tea.KeyCtrlR)
	press(m, w, out, tea.KeyCtrlV)

	assert.Empty(t, out.events)
	assert.Equal(t, models.ModeChat, m.Mode)
	assert.Empty(t, w.Chat.Value())

	core(m, w, eventbus.StateUpdateEvent{Busy: false})
	assert.True(t, w.Chat.Focused())
}

func TestSearchPrompt(t *testing.T) {
	m, w, out := newTestModel()

	press(m, w, out, tea.KeyCtrlS)
	require.Equal(t, models.ModeSearch, m.Mode)
	typeText(m, w, out, "golang")
	press(m, w, out, tea.KeyEnter)

	assert.Equal(t, models.ModeChat, m.Mode)
	assert.Equal(t, []eventbus.UIEvent{eventbus.SearchEvent{Query: "golang"}}, out.events)
}

func TestSearchPrompt_CancelSendsNothing(t *testing.T) {
	m, w, out := newTestModel()

	press(m, w, out, tea.KeyCtrlS)
	typeText(m, w, out, "golang")
	press(m, w, out, tea.KeyEsc)

	assert.Equal(t, models.ModeChat, m.Mode)
	assert.Empty(t, out.events)
	assert.True(t, w.Chat.Focused())
}

func TestReminderForm_SubmitAndConfirm(t *testing.T) {
	m, w, out := newTestModel()

	press(m, w, out, tea.KeyCtrlR)
	require.Equal(t, models.ModeReminder, m.Mode)
	typeText(m, w, out, "Call mom")
	press(m, w, out, tea.KeyTab)
	typeText(m, w, out, "2025-03-01 09:30")
	press(m, w, out, tea.KeyEnter)

	assert.Equal(t, []eventbus.UIEvent{eventbus.ReminderEvent{Text: "Call mom", Time: "2025-03-01 09:30"}}, out.events)
	assert.Equal(t, models.ModeReminder, m.Mode, "form stays open until confirmed")

	core(m, w, eventbus.ReminderCreatedEvent{})
	assert.Equal(t, models.ModeChat, m.Mode)
	assert.Empty(t, w.ReminderText.Value())
	assert.Empty(t, w.ReminderTime.Value())
}

func TestReminderForm_IncompleteNotSubmitted(t *testing.T) {
	m, w, out := newTestModel()

	press(m, w, out, tea.KeyCtrlR)
	typeText(m, w, out, "Call mom")
	press(m, w, out, tea.KeyEnter)

	assert.Empty(t, out.events)
	assert.Equal(t, models.ModeReminder, m.Mode)
}

func TestVoiceToggleKey(t *testing.T) {
	m, w, out := newTestModel()

	press(m, w, out, tea.KeyCtrlV)

	assert.Equal(t, []eventbus.UIEvent{eventbus.ToggleVoiceEvent{}}, out.events)
}

func TestTranscriptReplacesInput(t *testing.T) {
	m, w, out := newTestModel()
	typeText(m, w, out, "draft")

	core(m, w, eventbus.TranscriptEvent{Text: "set a timer"})

	assert.Equal(t, "set a timer", w.Chat.Value())
	assert.Empty(t, out.events)
}

func TestNoticeDismissedByAnyKey(t *testing.T) {
	m, w, out := newTestModel()

	core(m, w, eventbus.NoticeEvent{Text: "Voice input not supported."})
	require.Equal(t, models.ModeNotice, m.Mode)
	assert.Equal(t, "Voice input not supported.", m.Notice)

	typeText(m, w, out, "x")
	assert.Equal(t, models.ModeChat, m.Mode)
	assert.Empty(t, m.Notice)
	assert.Empty(t, w.Chat.Value())
}

func TestStateUpdateCopiesCoreState(t *testing.T) {
	m, w, _ := newTestModel()
	msgs := []models.Message{{Content: "hello", Role: models.User}}

	core(m, w, eventbus.StateUpdateEvent{
		Messages:       msgs,
		Status:         "✅ Connected to AI backend",
		Connection:     models.ConnectionConnected,
		Listening:      true,
		ConversationID: "conv-1",
	})

	assert.Equal(t, msgs, m.Messages)
	assert.Equal(t, "✅ Connected to AI backend", m.Status)
	assert.Equal(t, models.ConnectionConnected, m.Connection)
	assert.True(t, m.Listening)
	assert.Equal(t, "conv-1", m.ConversationID)
	assert.Contains(t, w.Viewport.View(), "You: hello")
}

func TestCtrlCQuits(t *testing.T) {
	m, w, out := newTestModel()

	cmd := press(m, w, out, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestWindowSizeResizesWidgets(t *testing.T) {
	m, w, _ := newTestModel()

	HandleWindowSizeMsg(m, w, tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Equal(t, 100, m.Width)
	assert.Equal(t, 100, w.Viewport.Width)
	assert.Equal(t, 40-chromeHeight, w.Viewport.Height)
}

func TestEnter_GatesInputUntilCoreReplies(t *testing.T) {
	m, w, out := newTestModel()

	typeText(m, w, out, "first")
	press(m, w, out, tea.KeyEnter)
	require.True(t, m.Busy)

	typeText(m, w, out, "second")
	press(m, w, out, tea.KeyEnter)

	assert.Equal(t, []eventbus.UIEvent{eventbus.SendMessageEvent{Message: "first"}}, out.events)
	assert.Empty(t, w.Chat.Value())

	core(m, w, eventbus.StateUpdateEvent{Busy: false})
	assert.False(t, m.Busy)
	typeText(m, w, out, "second")
	press(m, w, out, tea.KeyEnter)
	assert.Len(t, out.events, 2)
}
