package eventbus

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Kumar-509/voice-ai-frontend/internal/models"
)

// UIEvent represents events sent from UI to Core
type UIEvent interface {
	UIEvent()
}

// CoreEvent represents events sent from Core to UI
type CoreEvent interface {
	CoreEvent()
}

// SendMessageEvent - UI submits the message input
type SendMessageEvent struct {
	Message string
}

func (e SendMessageEvent) UIEvent() {}

// SearchEvent - UI submits a web search query
type SearchEvent struct {
	Query string
}

func (e SearchEvent) UIEvent() {}

// ReminderEvent - UI submits the reminder form; Time is the local date/time as typed
type ReminderEvent struct {
	Text string
	Time string
}

func (e ReminderEvent) UIEvent() {}

// ToggleVoiceEvent - UI presses the microphone affordance
type ToggleVoiceEvent struct{}

func (e ToggleVoiceEvent) UIEvent() {}

// StateUpdateEvent - Core pushes a full snapshot of the session to the UI
type StateUpdateEvent struct {
	Messages       []models.Message
	Busy           bool
	Status         string
	Connection     models.ConnectionStatus
	Listening      bool
	ConversationID string
}

func (e StateUpdateEvent) CoreEvent() {}

// TranscriptEvent - recognized speech replaces the message input
type TranscriptEvent struct {
	Text string
}

func (e TranscriptEvent) CoreEvent() {}

// ReminderCreatedEvent - the reminder form should close and reset
type ReminderCreatedEvent struct{}

func (e ReminderCreatedEvent) CoreEvent() {}

// FocusInputEvent - a chat round trip finished; the message input takes focus again
type FocusInputEvent struct{}

func (e FocusInputEvent) CoreEvent() {}

// NoticeEvent - a blocking notice the user has to dismiss
type NoticeEvent struct {
	Text string
}

func (e NoticeEvent) CoreEvent() {}

var (
	ErrClosed = errors.New("event bus closed")
	ErrFull   = errors.New("event channel is full")
)

// EventBusError represents errors in event processing
type EventBusError struct {
	Operation string
	Err       error
	Timestamp time.Time
}

func (e EventBusError) Error() string {
	return e.Operation + ": " + e.Err.Error()
}

func (e EventBusError) Unwrap() error {
	return e.Err
}

// EventBus carries events between the UI loop and the core loop
type EventBus struct {
	uiToCore      chan UIEvent
	coreToUI      chan CoreEvent
	mu            sync.RWMutex
	closed        bool
	errorCallback func(EventBusError)
}

func NewEventBus() *EventBus {
	return NewEventBusWithBuffer(100)
}

func NewEventBusWithBuffer(size int) *EventBus {
	return &EventBus{
		uiToCore: make(chan UIEvent, size),
		coreToUI: make(chan CoreEvent, size),
	}
}

func (eb *EventBus) SetErrorCallback(callback func(EventBusError)) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.errorCallback = callback
}

func (eb *EventBus) reportError(operation string, err error) error {
	busError := EventBusError{
		Operation: operation,
		Err:       err,
		Timestamp: time.Now(),
	}
	if eb.errorCallback != nil {
		eb.errorCallback(busError)
	}
	return busError
}

func (eb *EventBus) SendToCore(event UIEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if eb.closed {
		return eb.reportError("SendToCore", ErrClosed)
	}

	select {
	case eb.uiToCore <- event:
		return nil
	default:
		return eb.reportError("SendToCore", ErrFull)
	}
}

func (eb *EventBus) SendToUI(event CoreEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if eb.closed {
		return eb.reportError("SendToUI", ErrClosed)
	}

	select {
	case eb.coreToUI <- event:
		return nil
	default:
		return eb.reportError("SendToUI", ErrFull)
	}
}

// SendToUIWait blocks until the event is queued or ctx ends. Cancel ctx before Close.
func (eb *EventBus) SendToUIWait(ctx context.Context, event CoreEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if eb.closed {
		return eb.reportError("SendToUI", ErrClosed)
	}

	select {
	case eb.coreToUI <- event:
		return nil
	case <-ctx.Done():
		return eb.reportError("SendToUI", ctx.Err())
	}
}

func (eb *EventBus) UIToCore() <-chan UIEvent {
	return eb.uiToCore
}

func (eb *EventBus) CoreToUI() <-chan CoreEvent {
	return eb.coreToUI
}

// Close is idempotent; sends after Close fail with ErrClosed.
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	if eb.closed {
		return
	}
	eb.closed = true
	close(eb.uiToCore)
	close(eb.coreToUI)
}
