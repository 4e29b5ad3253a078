package components

import (
	"github.com/Kumar-509/voice-ai-frontend/internal/models"
	"github.com/Kumar-509/voice-ai-frontend/ui/styles"
)

func RenderStatus(status string, width int) string {
	return styles.StatusStyle(width).Render(status)
}

// ConnectionLabel is the indicator text for each connection state.
func ConnectionLabel(status models.ConnectionStatus) string {
	switch status {
	case models.ConnectionConnected:
		return "Connected"
	case models.ConnectionError:
		return "Connection Error"
	default:
		return "Connecting..."
	}
}

func RenderConnection(status models.ConnectionStatus) string {
	label := "● " + ConnectionLabel(status)
	switch status {
	case models.ConnectionConnected:
		return styles.ConnectedStyle().Render(label)
	case models.ConnectionError:
		return styles.ErrorStyle().Render(label)
	default:
		return styles.CheckingStyle().Render(label)
	}
}

// RenderHeader shows the title, the connection indicator and the voice state.
func RenderHeader(connection models.ConnectionStatus, listening bool, width int) string {
	line := "Voice AI Assistant  " + RenderConnection(connection)
	if listening {
		line += "  " + styles.ListeningStyle().Render("🎤 Listening")
	}
	return styles.HeaderStyle(width).Render(line)
}
