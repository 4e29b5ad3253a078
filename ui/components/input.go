package components

import (
	"github.com/Kumar-509/voice-ai-frontend/ui/styles"
)

// RenderInput boxes the text input view; a busy session greys it out.
func RenderInput(view string, busy bool, width int) string {
	if busy {
		return styles.DisabledInputStyle(width).Render(view)
	}
	return styles.InputStyle(width).Render(view)
}

func RenderSearchPrompt(view string, width int) string {
	body := styles.LabelStyle().Render("Enter search query:") + "\n" + view + "\n" +
		styles.HintStyle().Render("enter search · esc cancel")
	return styles.ModalStyle(width).Render(body)
}

func RenderReminderForm(textView, timeView string, width int) string {
	body := styles.LabelStyle().Render("Set Reminder") + "\n" +
		"Reminder: " + textView + "\n" +
		"When:     " + timeView + "\n" +
		styles.HintStyle().Render("tab switch field · enter save · esc cancel")
	return styles.ModalStyle(width).Render(body)
}

func RenderNotice(text string, width int) string {
	body := text + "\n" + styles.HintStyle().Render("press any key")
	return styles.ModalStyle(width).Render(body)
}
