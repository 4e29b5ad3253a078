package models

// Mode selects which input surface currently owns the keyboard.
type Mode int

const (
	ModeChat Mode = iota
	ModeSearch
	ModeReminder
	ModeNotice
)

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Messages       []Message        // Snapshot pushed by the core
	Status         string           // Transient status line
	Connection     ConnectionStatus // Backend reachability
	Busy           bool             // Chat request in flight, inputs disabled
	Listening      bool             // Voice session active
	ConversationID string
	Mode           Mode
	Notice         string // Text shown in ModeNotice
	Width          int    // Terminal width
	Height         int    // Terminal height
}
