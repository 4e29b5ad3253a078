package app

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/Kumar-509/voice-ai-frontend/internal/config"
	"github.com/Kumar-509/voice-ai-frontend/internal/core"
	"github.com/Kumar-509/voice-ai-frontend/internal/dispatcher"
	"github.com/Kumar-509/voice-ai-frontend/internal/eventbus"
	"github.com/Kumar-509/voice-ai-frontend/internal/logging"
	"github.com/Kumar-509/voice-ai-frontend/internal/transport"
	"github.com/Kumar-509/voice-ai-frontend/internal/update"
	"github.com/Kumar-509/voice-ai-frontend/internal/voice"
	"github.com/Kumar-509/voice-ai-frontend/ui/components"
)

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	logger     *logrus.Logger
	logCloser  io.Closer
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.ChatService
	model      *AppModel
}

// NewLogger opens the log file next to the config. Failing to open it only loses logs.
func NewLogger(cfg *config.Config) (*logrus.Logger, io.Closer) {
	logger, closer, _ := logging.New(cfg.Dir(), cfg.GetLogLevel())
	return logger, closer
}

// NewBackend builds the transport client for the active profile.
func NewBackend(cfg *config.Config) *transport.Client {
	return transport.NewClient(cfg.GetBackendURL(), cfg.GetRequestTimeout())
}

func NewApplication(cfg *config.Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closer := NewLogger(cfg)
	logger.WithFields(logrus.Fields{
		"profile": cfg.ActiveProfile,
		"backend": cfg.GetBackendURL(),
	}).Info("starting session")

	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(err eventbus.EventBusError) {
		logger.WithError(err).Warn("event bus error")
	})
	disp := dispatcher.NewEventDispatcher(eb)

	chatService := core.NewChatService(NewBackend(cfg), voice.NewCommandRecognizer(cfg.GetVoiceCommand()), eb, core.Options{
		ProfileName:      cfg.ActiveProfile,
		BackendURL:       cfg.GetBackendURL(),
		RetryDelay:       cfg.GetRetryDelay(),
		StatusClearAfter: cfg.GetStatusClearAfter(),
		TimeLayout:       cfg.GetTimeDisplayLayout(),
		Location:         time.Local,
		Logger:           logger,
	})

	return &Application{
		config:     cfg,
		logger:     logger,
		logCloser:  closer,
		eventBus:   eb,
		dispatcher: disp,
		service:    chatService,
		model:      newAppModel(disp, markdownFactory(logger)),
	}, nil
}

func (app *Application) Start() error {
	app.service.Start()

	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()

	return err
}

func (app *Application) Stop() {
	app.service.Stop()
	app.eventBus.Close()
	app.logger.Info("session ended")
	_ = app.logCloser.Close()
}

func markdownFactory(logger logrus.FieldLogger) func(width int) components.Markdown {
	return func(width int) components.Markdown {
		md, err := components.NewMarkdown(width)
		if err != nil {
			logger.WithError(err).Warn("markdown rendering disabled")
			return nil
		}
		return md
	}
}

var _ update.Sender = (*dispatcher.EventDispatcher)(nil)
