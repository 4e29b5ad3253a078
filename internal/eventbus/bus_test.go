package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendToCore_Delivers(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	require.NoError(t, eb.SendToCore(SendMessageEvent{Message: "hi"}))

	ev := <-eb.UIToCore()
	assert.Equal(t, SendMessageEvent{Message: "hi"}, ev)
}

func TestSendToUI_FullChannelReportsError(t *testing.T) {
	eb := NewEventBusWithBuffer(1)
	defer eb.Close()
	var reported []EventBusError
	eb.SetErrorCallback(func(e EventBusError) { reported = append(reported, e) })

	require.NoError(t, eb.SendToUI(FocusInputEvent{}))
	err := eb.SendToUI(FocusInputEvent{})

	assert.ErrorIs(t, err, ErrFull)
	require.Len(t, reported, 1)
	assert.Equal(t, "SendToUI", reported[0].Operation)
}

func TestClose_IdempotentAndRejectsSends(t *testing.T) {
	eb := NewEventBus()
	eb.Close()
	eb.Close()

	assert.ErrorIs(t, eb.SendToCore(ToggleVoiceEvent{}), ErrClosed)
	assert.ErrorIs(t, eb.SendToUI(ReminderCreatedEvent{}), ErrClosed)

	_, ok := <-eb.CoreToUI()
	assert.False(t, ok)
}

func TestSendToUIWait_BlocksUntilDrained(t *testing.T) {
	eb := NewEventBusWithBuffer(1)
	defer eb.Close()
	require.NoError(t, eb.SendToUI(FocusInputEvent{}))

	done := make(chan error, 1)
	go func() { done <- eb.SendToUIWait(context.Background(), TranscriptEvent{Text: "set a timer"}) }()

	select {
	case <-done:
		t.Fatal("send returned while the channel was full")
	case <-time.After(20 * time.Millisecond):
	}

	assert.Equal(t, FocusInputEvent{}, <-eb.CoreToUI())
	require.NoError(t, <-done)
	assert.Equal(t, TranscriptEvent{Text: "set a timer"}, <-eb.CoreToUI())
}

func TestSendToUIWait_Cancelled(t *testing.T) {
	eb := NewEventBusWithBuffer(1)
	defer eb.Close()
	require.NoError(t, eb.SendToUI(FocusInputEvent{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, eb.SendToUIWait(ctx, ReminderCreatedEvent{}), context.Canceled)
}
