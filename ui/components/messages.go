package components

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/Kumar-509/voice-ai-frontend/internal/models"
	"github.com/Kumar-509/voice-ai-frontend/ui/styles"
)

// Markdown renders assistant replies. *glamour.TermRenderer satisfies it.
type Markdown interface {
	Render(in string) (string, error)
}

func NewMarkdown(width int) (*glamour.TermRenderer, error) {
	if width < 20 {
		width = 80
	}
	return glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-8),
	)
}

// RenderMessages renders the conversation. typing is drawn in place of every placeholder;
// md may be nil, in which case assistant text is shown verbatim.
func RenderMessages(messages []models.Message, md Markdown, typing string) string {
	var b strings.Builder

	systemStyle := styles.SystemStyle()
	userStyle := styles.UserStyle()
	assistantStyle := styles.AssistantStyle()
	typingStyle := styles.TypingStyle()

	for _, msg := range messages {
		switch msg.Role {
		case models.System:
			b.WriteString(systemStyle.Render(msg.Content) + "\n\n")
		case models.User:
			b.WriteString(userStyle.Render("You: "+msg.Content) + "\n\n")
		case models.Assistant:
			b.WriteString(assistantStyle.Render("Assistant: "+renderMarkdown(md, msg.Content)) + "\n\n")
		case models.Typing:
			b.WriteString(typingStyle.Render(typing+" Assistant is typing") + "\n\n")
		}
	}

	return b.String()
}

func renderMarkdown(md Markdown, content string) string {
	if md == nil {
		return content
	}
	out, err := md.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSpace(out)
}
