package dispatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kumar-509/voice-ai-frontend/internal/eventbus"
)

func TestListenForUIEvents_WrapsCoreEvent(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	ed := NewEventDispatcher(eb)

	require.NoError(t, eb.SendToUI(eventbus.NoticeEvent{Text: "hi"}))

	msg := ed.ListenForUIEvents()()
	assert.Equal(t, CoreEventMsg{Event: eventbus.NoticeEvent{Text: "hi"}}, msg)
}

func TestListenForUIEvents_ClosedBus(t *testing.T) {
	eb := eventbus.NewEventBus()
	ed := NewEventDispatcher(eb)
	eb.Close()

	assert.Equal(t, BusClosedMsg{}, ed.ListenForUIEvents()())
}

func TestSend_ReachesCore(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	ed := NewEventDispatcher(eb)

	require.NoError(t, ed.Send(eventbus.SearchEvent{Query: "go"}))
	assert.Equal(t, eventbus.SearchEvent{Query: "go"}, <-eb.UIToCore())
}
