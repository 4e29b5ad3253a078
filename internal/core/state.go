package core

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Kumar-509/voice-ai-frontend/internal/models"
)

// ChatState holds everything the session shows. Writes come from the service event
// loop; the mutex keeps snapshot reads from other goroutines consistent.
type ChatState struct {
	mu             sync.RWMutex
	messages       []models.Message
	busy           bool
	conversationID string
	connection     models.ConnectionStatus
	listening      bool
	status         string
	statusSeq      uint64
}

// Snapshot is an immutable copy of ChatState.
type Snapshot struct {
	Messages       []models.Message
	Busy           bool
	ConversationID string
	Connection     models.ConnectionStatus
	Listening      bool
	Status         string
}

func NewChatState() *ChatState {
	return &ChatState{
		messages:   make([]models.Message, 0),
		connection: models.ConnectionChecking,
	}
}

func (cs *ChatState) Snapshot() Snapshot {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return Snapshot{
		Messages:       cs.copyMessages(),
		Busy:           cs.busy,
		ConversationID: cs.conversationID,
		Connection:     cs.connection,
		Listening:      cs.listening,
		Status:         cs.status,
	}
}

func (cs *ChatState) Messages() []models.Message {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.copyMessages()
}

func (cs *ChatState) copyMessages() []models.Message {
	result := make([]models.Message, len(cs.messages))
	copy(result, cs.messages)
	return result
}

func (cs *ChatState) AddMessage(content string, role models.Role) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.messages = append(cs.messages, models.Message{Content: content, Role: role})
}

// AddPlaceholder appends a typing placeholder and returns its ID.
func (cs *ChatState) AddPlaceholder() string {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.addPlaceholderLocked()
}

func (cs *ChatState) addPlaceholderLocked() string {
	id := "typing-" + uuid.NewString()
	cs.messages = append(cs.messages, models.Message{ID: id, Role: models.Typing})
	return id
}

// RemovePlaceholder deletes the placeholder with the given ID. It reports false when no
// such placeholder exists, which makes a second removal a no-op.
func (cs *ChatState) RemovePlaceholder(id string) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.removePlaceholderLocked(id)
}

func (cs *ChatState) removePlaceholderLocked(id string) bool {
	for i, msg := range cs.messages {
		if msg.Role == models.Typing && msg.ID == id {
			cs.messages = append(cs.messages[:i], cs.messages[i+1:]...)
			return true
		}
	}
	return false
}

func (cs *ChatState) PlaceholderCount() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	n := 0
	for _, msg := range cs.messages {
		if msg.Role == models.Typing {
			n++
		}
	}
	return n
}

// StartChat atomically records the user turn, raises the busy gate and shows a placeholder.
func (cs *ChatState) StartChat(content string) string {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.messages = append(cs.messages, models.Message{Content: content, Role: models.User})
	cs.busy = true
	return cs.addPlaceholderLocked()
}

// FinishChat atomically replaces the placeholder with the assistant reply. A non-empty
// conversationID always overwrites the stored one.
func (cs *ChatState) FinishChat(placeholderID, reply, conversationID string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if conversationID != "" {
		cs.conversationID = conversationID
	}
	cs.removePlaceholderLocked(placeholderID)
	cs.messages = append(cs.messages, models.Message{Content: reply, Role: models.Assistant})
	cs.busy = false
}

// FinishChatWithError atomically replaces the placeholder with a system notice.
func (cs *ChatState) FinishChatWithError(placeholderID, notice string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.removePlaceholderLocked(placeholderID)
	cs.messages = append(cs.messages, models.Message{Content: notice, Role: models.System})
	cs.busy = false
}

func (cs *ChatState) IsBusy() bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.busy
}

func (cs *ChatState) ConversationID() string {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.conversationID
}

func (cs *ChatState) SetConnection(status models.ConnectionStatus) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.connection = status
}

func (cs *ChatState) Connection() models.ConnectionStatus {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.connection
}

func (cs *ChatState) SetListening(listening bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listening = listening
}

func (cs *ChatState) Listening() bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.listening
}

// SetStatus replaces the status line and returns a token for ClearStatusIf.
func (cs *ChatState) SetStatus(status string) uint64 {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.status = status
	cs.statusSeq++
	return cs.statusSeq
}

// ClearStatusIf clears the status line only if it has not been replaced since seq.
func (cs *ChatState) ClearStatusIf(seq uint64) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.statusSeq != seq || cs.status == "" {
		return false
	}
	cs.status = ""
	cs.statusSeq++
	return true
}

func (cs *ChatState) Status() string {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.status
}
