package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Kumar-509/voice-ai-frontend/internal/dispatcher"
	"github.com/Kumar-509/voice-ai-frontend/internal/eventbus"
	"github.com/Kumar-509/voice-ai-frontend/internal/models"
)

// HandleKeyMsg routes a key press to the surface that currently owns the keyboard.
func HandleKeyMsg(appModel *models.AppModel, w *Widgets, keyMsg tea.KeyMsg, out Sender) tea.Cmd {
	if keyMsg.Type == tea.KeyCtrlC {
		return tea.Quit
	}

	switch appModel.Mode {
	case models.ModeNotice:
		appModel.Mode = models.ModeChat
		appModel.Notice = ""
		return focusChat(appModel, w)
	case models.ModeSearch:
		return handleSearchKey(appModel, w, keyMsg, out)
	case models.ModeReminder:
		return handleReminderKey(appModel, w, keyMsg, out)
	}
	return handleChatKey(appModel, w, keyMsg, out)
}

func handleChatKey(appModel *models.AppModel, w *Widgets, keyMsg tea.KeyMsg, out Sender) tea.Cmd {
	switch keyMsg.String() {
	case "pgup", "pgdown":
		var cmd tea.Cmd
		w.Viewport, cmd = w.Viewport.Update(keyMsg)
		return cmd
	}

	// Every affordance is disabled while a chat request is in flight.
	if appModel.Busy {
		return nil
	}

	switch keyMsg.String() {
	case "enter":
		text := w.Chat.Value()
		if strings.TrimSpace(text) == "" {
			return nil
		}
		if !send(appModel, out, eventbus.SendMessageEvent{Message: text}) {
			return nil
		}
		// Gate further input until the core's next state update clears it.
		appModel.Busy = true
		w.Chat.Reset()
		w.Chat.Blur()
		return nil
	case "ctrl+s":
		appModel.Mode = models.ModeSearch
		w.Chat.Blur()
		w.Search.Reset()
		return w.Search.Focus()
	case "ctrl+r":
		appModel.Mode = models.ModeReminder
		w.Chat.Blur()
		w.resetReminder()
		return w.ReminderText.Focus()
	case "ctrl+v":
		send(appModel, out, eventbus.ToggleVoiceEvent{})
		return nil
	}

	var cmd tea.Cmd
	w.Chat, cmd = w.Chat.Update(keyMsg)
	return cmd
}

func handleSearchKey(appModel *models.AppModel, w *Widgets, keyMsg tea.KeyMsg, out Sender) tea.Cmd {
	switch keyMsg.String() {
	case "esc":
		w.Search.Blur()
		appModel.Mode = models.ModeChat
		return focusChat(appModel, w)
	case "enter":
		query := strings.TrimSpace(w.Search.Value())
		w.Search.Blur()
		appModel.Mode = models.ModeChat
		if query != "" {
			send(appModel, out, eventbus.SearchEvent{Query: query})
		}
		return focusChat(appModel, w)
	}

	var cmd tea.Cmd
	w.Search, cmd = w.Search.Update(keyMsg)
	return cmd
}

func handleReminderKey(appModel *models.AppModel, w *Widgets, keyMsg tea.KeyMsg, out Sender) tea.Cmd {
	switch keyMsg.String() {
	case "esc":
		w.resetReminder()
		appModel.Mode = models.ModeChat
		return focusChat(appModel, w)
	case "tab", "shift+tab", "up", "down":
		w.ReminderField = 1 - w.ReminderField
		if w.ReminderField == 0 {
			w.ReminderTime.Blur()
			return w.ReminderText.Focus()
		}
		w.ReminderText.Blur()
		return w.ReminderTime.Focus()
	case "enter":
		text := strings.TrimSpace(w.ReminderText.Value())
		at := strings.TrimSpace(w.ReminderTime.Value())
		if text == "" || at == "" {
			return nil
		}
		// The form stays open until the core confirms the reminder.
		send(appModel, out, eventbus.ReminderEvent{Text: text, Time: at})
		return nil
	}

	var cmd tea.Cmd
	if w.ReminderField == 0 {
		w.ReminderText, cmd = w.ReminderText.Update(keyMsg)
	} else {
		w.ReminderTime, cmd = w.ReminderTime.Update(keyMsg)
	}
	return cmd
}

func send(appModel *models.AppModel, out Sender, event eventbus.UIEvent) bool {
	if err := out.Send(event); err != nil {
		appModel.Status = "Error sending event: " + err.Error()
		return false
	}
	return true
}

func focusChat(appModel *models.AppModel, w *Widgets) tea.Cmd {
	if appModel.Mode != models.ModeChat || appModel.Busy {
		return nil
	}
	return w.Chat.Focus()
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, w *Widgets, coreEventMsg dispatcher.CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		appModel.Messages = event.Messages
		appModel.Busy = event.Busy
		appModel.Status = event.Status
		appModel.Connection = event.Connection
		appModel.Listening = event.Listening
		appModel.ConversationID = event.ConversationID
		w.Refresh(appModel, true)
		if appModel.Busy {
			w.Chat.Blur()
			return nil
		}
		return focusChat(appModel, w)
	case eventbus.TranscriptEvent:
		w.Chat.SetValue(event.Text)
		w.Chat.CursorEnd()
		return focusChat(appModel, w)
	case eventbus.ReminderCreatedEvent:
		w.resetReminder()
		if appModel.Mode == models.ModeReminder {
			appModel.Mode = models.ModeChat
		}
		return focusChat(appModel, w)
	case eventbus.FocusInputEvent:
		return focusChat(appModel, w)
	case eventbus.NoticeEvent:
		appModel.Mode = models.ModeNotice
		appModel.Notice = event.Text
		w.Chat.Blur()
	}
	return nil
}

func HandleWindowSizeMsg(appModel *models.AppModel, w *Widgets, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
	w.Resize(sizeMsg.Width, sizeMsg.Height)
	if w.NewMarkdown != nil {
		w.Markdown = w.NewMarkdown(sizeMsg.Width)
	}
	w.Refresh(appModel, false)
}
