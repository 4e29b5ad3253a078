package update

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/Kumar-509/voice-ai-frontend/internal/models"
	"github.com/Kumar-509/voice-ai-frontend/ui/components"
)

// ReminderTimeLayout is the input format of the reminder form.
const ReminderTimeLayout = "2006-01-02 15:04"

// Rows reserved around the message viewport: the header, the tallest bottom surface
// (the reminder form) and the status line.
const chromeHeight = 9

// Widgets holds the bubbles components owned by the UI thread.
type Widgets struct {
	Chat         textinput.Model
	Search       textinput.Model
	ReminderText textinput.Model
	ReminderTime textinput.Model
	// ReminderField is 0 while the text field has focus and 1 for the time field.
	ReminderField int
	Viewport      viewport.Model
	Spinner       spinner.Model
	// Markdown renders assistant replies; nil shows them verbatim.
	Markdown components.Markdown
	// NewMarkdown, when set, rebuilds Markdown for a new terminal width.
	NewMarkdown func(width int) components.Markdown
}

func NewWidgets() *Widgets {
	chat := textinput.New()
	chat.Placeholder = "Type your message..."
	chat.Prompt = "> "
	chat.CharLimit = 2000
	chat.Focus()

	search := textinput.New()
	search.Placeholder = "golang release notes"
	search.Prompt = "🔍 "

	text := textinput.New()
	text.Placeholder = "Call mom"
	text.Prompt = ""

	at := textinput.New()
	at.Placeholder = ReminderTimeLayout
	at.Prompt = ""
	at.CharLimit = len("2006-01-02T15:04:05")

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Widgets{
		Chat:         chat,
		Search:       search,
		ReminderText: text,
		ReminderTime: at,
		Viewport:     viewport.New(80, 20),
		Spinner:      sp,
	}
}

// Resize fits the widgets to the terminal.
func (w *Widgets) Resize(width, height int) {
	w.Viewport.Width = width
	w.Viewport.Height = max(height-chromeHeight, 3)
	inputWidth := max(width-8, 10)
	w.Chat.Width = inputWidth
	w.Search.Width = inputWidth
	w.ReminderText.Width = inputWidth - 10
	w.ReminderTime.Width = inputWidth - 10
}

func (w *Widgets) resetReminder() {
	w.ReminderText.Reset()
	w.ReminderTime.Reset()
	w.ReminderField = 0
	w.ReminderText.Blur()
	w.ReminderTime.Blur()
}

// Refresh re-renders the message list into the viewport. Core state updates always
// scroll to the newest message; spinner redraws keep the reader's position.
func (w *Widgets) Refresh(appModel *models.AppModel, scroll bool) {
	follow := scroll || w.Viewport.AtBottom()
	w.Viewport.SetContent(components.RenderMessages(appModel.Messages, w.Markdown, w.Spinner.View()))
	if follow {
		w.Viewport.GotoBottom()
	}
}

func hasPlaceholder(messages []models.Message) bool {
	for _, msg := range messages {
		if msg.Role == models.Typing {
			return true
		}
	}
	return false
}
