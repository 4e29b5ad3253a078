package core

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kumar-509/voice-ai-frontend/internal/eventbus"
	"github.com/Kumar-509/voice-ai-frontend/internal/logging"
	"github.com/Kumar-509/voice-ai-frontend/internal/models"
	"github.com/Kumar-509/voice-ai-frontend/internal/monitor"
	"github.com/Kumar-509/voice-ai-frontend/internal/transport"
	"github.com/Kumar-509/voice-ai-frontend/internal/voice"
)

// User-facing texts.
const (
	ChatErrorNotice        = "Sorry, I encountered an error. Please ensure the backend is running."
	NoResultsNotice        = "No results found."
	SearchFailedNotice     = "Search failed. Please try again."
	VoiceUnsupportedNotice = "Voice input not supported. Configure voice_command in your profile."

	StatusConnected     = "✅ Connected to AI backend"
	StatusChatError     = "❌ Error sending message"
	StatusSearching     = "🔍 Searching..."
	StatusSearchError   = "❌ Search error"
	StatusReminderError = "❌ Failed to create reminder"
	StatusListening     = "🎤 Listening..."
	StatusVoiceError    = "❌ Voice input error"
)

// Backend is the subset of the transport client the session drives.
type Backend interface {
	Health(ctx context.Context) (*transport.HealthResponse, error)
	Chat(ctx context.Context, req transport.ChatRequest) (*transport.ChatResponse, error)
	Search(ctx context.Context, req transport.SearchRequest) (*transport.SearchResponse, error)
	CreateReminder(ctx context.Context, req transport.ReminderRequest) error
}

type Options struct {
	ProfileName      string
	BackendURL       string
	RetryDelay       time.Duration
	StatusClearAfter time.Duration
	TimeLayout       string
	Location         *time.Location
	// DisableHealthCheck skips the connection monitor.
	DisableHealthCheck bool
	Logger             logrus.FieldLogger
}

// ChatService runs the conversation session. Every state change happens on its event
// loop goroutine; backend calls run in workers and post their completion back to it.
type ChatService struct {
	backend  Backend
	state    *ChatState
	voice    *voice.Session
	monitor  *monitor.Monitor
	eventBus *eventbus.EventBus
	opts     Options
	logger   logrus.FieldLogger
	tasks    chan func()
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewChatService(backend Backend, recognizer voice.Recognizer, eb *eventbus.EventBus, opts Options) *ChatService {
	if opts.StatusClearAfter <= 0 {
		opts.StatusClearAfter = 3 * time.Second
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = monitor.DefaultRetryDelay
	}
	if opts.TimeLayout == "" {
		opts.TimeLayout = "1/2/2006, 3:04:05 PM"
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	service := &ChatService{
		backend:  backend,
		state:    NewChatState(),
		voice:    voice.NewSession(recognizer),
		eventBus: eb,
		opts:     opts,
		logger:   logger,
		tasks:    make(chan func(), 64),
		ctx:      ctx,
		cancel:   cancel,
	}
	service.monitor = monitor.New(backend, opts.RetryDelay, func(t monitor.Transition) {
		service.post(func() { service.onConnectionChange(t) })
	}, logger.WithField("component", "monitor"))

	service.addWelcomeMessages()
	return service
}

// Start runs the event loop and the connection monitor in the background.
func (cs *ChatService) Start() {
	cs.pushStateToUI()

	cs.wg.Add(1)
	go cs.eventLoop()

	if !cs.opts.DisableHealthCheck {
		cs.wg.Add(1)
		go func() {
			defer cs.wg.Done()
			_ = cs.monitor.Run(cs.ctx)
		}()
	}
}

func (cs *ChatService) Stop() {
	cs.stopOnce.Do(func() {
		cs.cancel()
		cs.wg.Wait()
	})
}

// State exposes the session state for read-only inspection.
func (cs *ChatService) State() *ChatState {
	return cs.state
}

func (cs *ChatService) VoiceAvailable() bool {
	return cs.voice.Available()
}

func (cs *ChatService) eventLoop() {
	defer cs.wg.Done()
	for {
		select {
		case <-cs.ctx.Done():
			if cs.voice.Stop() {
				cs.state.SetListening(false)
			}
			return
		case event, ok := <-cs.eventBus.UIToCore():
			if !ok {
				return
			}
			cs.handleUIEvent(event)
		case task := <-cs.tasks:
			task()
		}
	}
}

// post schedules fn on the event loop. It gives up once the service is stopped.
func (cs *ChatService) post(fn func()) {
	select {
	case cs.tasks <- fn:
	case <-cs.ctx.Done():
	}
}

// goBackend runs call in a worker goroutine tracked by Stop.
func (cs *ChatService) goBackend(call func(ctx context.Context)) {
	cs.wg.Add(1)
	go func() {
		defer cs.wg.Done()
		call(cs.ctx)
	}()
}

func (cs *ChatService) handleUIEvent(event eventbus.UIEvent) {
	if cs.state.IsBusy() {
		cs.logger.WithField("event", fmt.Sprintf("%T", event)).Debug("ignoring event while awaiting response")
		return
	}

	switch e := event.(type) {
	case eventbus.SendMessageEvent:
		cs.sendMessage(e.Message)
	case eventbus.SearchEvent:
		cs.performSearch(e.Query)
	case eventbus.ReminderEvent:
		cs.createReminder(e.Text, e.Time)
	case eventbus.ToggleVoiceEvent:
		cs.toggleVoice()
	}
}

func (cs *ChatService) sendMessage(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	placeholderID := cs.state.StartChat(text)
	req := transport.ChatRequest{Message: text, ConversationID: cs.state.ConversationID()}
	cs.pushStateToUI()

	cs.goBackend(func(ctx context.Context) {
		resp, err := cs.backend.Chat(ctx, req)
		cs.post(func() { cs.finishChat(placeholderID, resp, err) })
	})
}

func (cs *ChatService) finishChat(placeholderID string, resp *transport.ChatResponse, err error) {
	if err != nil {
		cs.logger.WithError(err).Error("chat request failed")
		cs.state.FinishChatWithError(placeholderID, ChatErrorNotice)
		cs.setStatus(StatusChatError, 0)
	} else {
		if resp.ConversationID != "" && resp.ConversationID != cs.state.ConversationID() {
			cs.logger.WithField("conversation_id", resp.ConversationID).Debug("adopting conversation id")
		}
		cs.state.FinishChat(placeholderID, resp.Response, resp.ConversationID)
	}
	cs.pushStateToUI()
	cs.deliverToUI(eventbus.FocusInputEvent{})
}

func (cs *ChatService) performSearch(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	cs.setStatus(StatusSearching, 0)
	cs.state.AddMessage("Search: "+query, models.User)
	placeholderID := cs.state.AddPlaceholder()
	cs.pushStateToUI()

	req := transport.SearchRequest{Query: query, Type: transport.SearchTypeWeb}
	cs.goBackend(func(ctx context.Context) {
		resp, err := cs.backend.Search(ctx, req)
		cs.post(func() { cs.finishSearch(placeholderID, resp, err) })
	})
}

func (cs *ChatService) finishSearch(placeholderID string, resp *transport.SearchResponse, err error) {
	cs.state.RemovePlaceholder(placeholderID)
	switch {
	case err != nil:
		cs.logger.WithError(err).Error("search request failed")
		cs.state.AddMessage(SearchFailedNotice, models.System)
		cs.setStatus(StatusSearchError, 0)
	case len(resp.Results) > 0:
		cs.state.AddMessage(FormatSearchResults(resp.Results), models.Assistant)
		cs.setStatus("", 0)
	default:
		cs.state.AddMessage(NoResultsNotice, models.System)
		cs.setStatus("", 0)
	}
	cs.pushStateToUI()
}

func (cs *ChatService) createReminder(text, localTime string) {
	at, err := ParseReminderTime(localTime, cs.opts.Location)
	if err != nil || strings.TrimSpace(text) == "" {
		cs.logger.WithError(err).Warn("rejecting reminder form")
		cs.setStatus(StatusReminderError, 0)
		cs.pushStateToUI()
		return
	}

	req := transport.ReminderRequest{Text: text, Time: ISOTimestamp(at)}
	cs.goBackend(func(ctx context.Context) {
		err := cs.backend.CreateReminder(ctx, req)
		cs.post(func() { cs.finishReminder(text, at, err) })
	})
}

func (cs *ChatService) finishReminder(text string, at time.Time, err error) {
	if err != nil {
		cs.logger.WithError(err).Error("reminder request failed")
		cs.setStatus(StatusReminderError, 0)
		cs.pushStateToUI()
		return
	}
	cs.state.AddMessage(fmt.Sprintf("✅ Reminder set: \"%s\" for %s", text, at.Format(cs.opts.TimeLayout)), models.System)
	cs.pushStateToUI()
	cs.deliverToUI(eventbus.ReminderCreatedEvent{})
}

func (cs *ChatService) toggleVoice() {
	if !cs.voice.Available() {
		cs.deliverToUI(eventbus.NoticeEvent{Text: VoiceUnsupportedNotice})
		return
	}
	if cs.voice.Listening() {
		cs.endVoice(cs.voice.Generation())
		return
	}

	if _, err := cs.voice.Start(cs.ctx, cs.voiceCallbacks); err != nil {
		cs.logger.WithError(err).Error("voice input failed to start")
		cs.setStatus(StatusVoiceError, 0)
		cs.pushStateToUI()
		return
	}
	cs.state.SetListening(true)
	cs.pushStateToUI()
}

func (cs *ChatService) voiceCallbacks(gen uint64) voice.Callbacks {
	return voice.Callbacks{
		OnStart: func() {
			cs.post(func() {
				if cs.voice.Current(gen) {
					cs.setStatus(StatusListening, 0)
					cs.pushStateToUI()
				}
			})
		},
		OnResult: func(transcript string) {
			cs.post(func() {
				if !cs.voice.Current(gen) {
					return
				}
				cs.deliverToUI(eventbus.TranscriptEvent{Text: transcript})
				cs.endVoice(gen)
			})
		},
		OnError: func(err error) {
			cs.post(func() {
				if !cs.voice.Current(gen) {
					return
				}
				cs.logger.WithError(err).Warn("voice input error")
				cs.endVoice(gen)
				cs.setStatus(StatusVoiceError, 0)
				cs.pushStateToUI()
			})
		},
		OnEnd: func() {
			cs.post(func() { cs.endVoice(gen) })
		},
	}
}

// endVoice is the one teardown path for every way a voice session finishes.
func (cs *ChatService) endVoice(gen uint64) {
	if !cs.voice.Teardown(gen) {
		return
	}
	cs.state.SetListening(false)
	cs.setStatus("", 0)
	cs.pushStateToUI()
}

func (cs *ChatService) onConnectionChange(t monitor.Transition) {
	cs.state.SetConnection(t.Status)
	switch t.Status {
	case models.ConnectionConnected:
		cs.setStatus(StatusConnected, cs.opts.StatusClearAfter)
	case models.ConnectionError:
		cs.setStatus(fmt.Sprintf("⚠️ Connecting... Retrying in %s", cs.opts.RetryDelay), 0)
	}
	cs.pushStateToUI()
}

// setStatus replaces the status line; a positive clearAfter clears it later unless it
// has been replaced in the meantime.
func (cs *ChatService) setStatus(status string, clearAfter time.Duration) {
	seq := cs.state.SetStatus(status)
	if clearAfter <= 0 || status == "" {
		return
	}
	time.AfterFunc(clearAfter, func() {
		cs.post(func() {
			if cs.state.ClearStatusIf(seq) {
				cs.pushStateToUI()
			}
		})
	})
}

func (cs *ChatService) pushStateToUI() {
	snap := cs.state.Snapshot()
	cs.sendToUI(eventbus.StateUpdateEvent{
		Messages:       snap.Messages,
		Busy:           snap.Busy,
		Status:         snap.Status,
		Connection:     snap.Connection,
		Listening:      snap.Listening,
		ConversationID: snap.ConversationID,
	})
}

// deliverToUI waits for room on the bus; one-shot events have no later snapshot to
// recover them.
func (cs *ChatService) deliverToUI(event eventbus.CoreEvent) {
	if err := cs.eventBus.SendToUIWait(cs.ctx, event); err != nil {
		cs.logger.WithError(err).WithField("event", fmt.Sprintf("%T", event)).Warn("dropping core event")
	}
}

func (cs *ChatService) sendToUI(event eventbus.CoreEvent) {
	if err := cs.eventBus.SendToUI(event); err != nil {
		cs.logger.WithError(err).WithField("event", fmt.Sprintf("%T", event)).Warn("dropping core event")
	}
}

func (cs *ChatService) addWelcomeMessages() {
	if cs.opts.ProfileName != "" {
		cs.state.AddMessage(fmt.Sprintf("Active Profile: %s", cs.opts.ProfileName), models.System)
	}
	if cs.opts.BackendURL != "" {
		cs.state.AddMessage(fmt.Sprintf("Backend: %s", cs.opts.BackendURL), models.System)
	}
	if cs.opts.ProfileName == "" && cs.opts.BackendURL == "" {
		return
	}
	controls := "Enter send · Ctrl+S search · Ctrl+R reminder · Ctrl+C quit"
	if cs.voice.Available() {
		controls = "Enter send · Ctrl+S search · Ctrl+R reminder · Ctrl+V voice · Ctrl+C quit"
	}
	cs.state.AddMessage(controls, models.System)
}
