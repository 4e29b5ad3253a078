package voice

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
)

// waitDelay bounds how long Wait blocks on pipes held open by orphaned children after Stop.
const waitDelay = 500 * time.Millisecond

// ErrCapabilityUnavailable is returned when no speech recognizer is configured.
var ErrCapabilityUnavailable error = errbuilder.New().
	WithCode(errbuilder.CodeFailedPrecondition).
	WithMsg("speech recognition is not available")

// Callbacks receive recognition events. OnEnd is always the last call of a session.
type Callbacks struct {
	OnStart  func()
	OnResult func(transcript string)
	OnError  func(err error)
	OnEnd    func()
}

func (c Callbacks) start() {
	if c.OnStart != nil {
		c.OnStart()
	}
}

func (c Callbacks) result(transcript string) {
	if c.OnResult != nil {
		c.OnResult(transcript)
	}
}

func (c Callbacks) fail(err error) {
	if c.OnError != nil {
		c.OnError(err)
	}
}

func (c Callbacks) end() {
	if c.OnEnd != nil {
		c.OnEnd()
	}
}

// Handle releases a running recognition.
type Handle interface {
	Stop()
}

// Recognizer is a single-utterance, final-results-only speech-to-text capability.
type Recognizer interface {
	Start(ctx context.Context, cb Callbacks) (Handle, error)
}

// CommandRecognizer delegates speech capture to an external program that records one
// utterance and prints its transcript on stdout, e.g. a whisper.cpp or vosk wrapper.
type CommandRecognizer struct {
	Argv []string
}

// NewCommandRecognizer returns nil when argv is empty so callers can treat a missing
// command as a missing capability.
func NewCommandRecognizer(argv []string) Recognizer {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil
	}
	return &CommandRecognizer{Argv: argv}
}

func (r *CommandRecognizer) Start(ctx context.Context, cb Callbacks) (Handle, error) {
	runCtx, cancel := context.WithCancel(ctx)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, r.Argv[0], r.Argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("failed to start speech recognizer").
			WithCause(fmt.Errorf("cmd=%s err=%w", cmd.String(), err))
	}

	h := &commandHandle{cancel: cancel}
	go func() {
		defer cb.end()
		cb.start()

		err := cmd.Wait()
		if h.stopped.Load() {
			return
		}
		if err != nil {
			cb.fail(errbuilder.New().
				WithCode(errbuilder.CodeUnavailable).
				WithMsg("speech recognizer failed").
				WithCause(fmt.Errorf("cmd=%s err=%w out=%s", cmd.String(), err, strings.TrimSpace(stderr.String()))))
			return
		}

		transcript := firstLine(stdout.String())
		if transcript == "" {
			cb.fail(errbuilder.New().
				WithCode(errbuilder.CodeUnavailable).
				WithMsg("no speech recognized"))
			return
		}
		cb.result(transcript)
	}()

	return h, nil
}

type commandHandle struct {
	cancel  context.CancelFunc
	stopped atomic.Bool
	once    sync.Once
}

func (h *commandHandle) Stop() {
	h.once.Do(func() {
		h.stopped.Store(true)
		h.cancel()
	})
}

func firstLine(out string) string {
	s := bufio.NewScanner(strings.NewReader(out))
	for s.Scan() {
		if line := strings.TrimSpace(s.Text()); line != "" {
			return line
		}
	}
	return ""
}
