package broadcast

import (
	"context"
	"sync"

	"github.com/alex-pricope/live-polling-system/logging"
	"github.com/alex-pricope/live-polling-system/poll"
	"github.com/google/uuid"
)

const subscriberBuffer = 16

// closedPayload is the poll:end body: the final snapshot plus the
// length of the results countdown that follows.
type closedPayload struct {
	poll.Snapshot
	FinalResults     bool `json:"finalResults"`
	ResultsRemaining int  `json:"resultsRemaining"`
}

type subscriber struct {
	ch            chan Event
	connectionID  string
	participantID string
}

// Gateway fans lifecycle, tally and session events out to every
// connected observer and answers the synchronous snapshot query used
// for reconciliation. Delivery is fire-and-forget: a subscriber whose
// buffer is full loses the event and recovers through Snapshot.
type Gateway struct {
	mu           sync.RWMutex
	subscribers  map[chan Event]*subscriber
	byConnection map[string]chan Event
	lifecycle    *poll.Lifecycle
}

func NewGateway() *Gateway {
	return &Gateway{
		subscribers:  make(map[chan Event]*subscriber),
		byConnection: make(map[string]chan Event),
	}
}

// SetLifecycle wires the snapshot source after construction, the
// lifecycle broadcasts through this gateway in turn.
func (gw *Gateway) SetLifecycle(lifecycle *poll.Lifecycle) {
	gw.lifecycle = lifecycle
}

// Subscribe registers a new observer connection and returns its
// connection id together with the event channel to drain. The channel
// is closed by Unsubscribe or CloseConnection.
func (gw *Gateway) Subscribe(participantID string) (string, chan Event) {
	sub := &subscriber{
		ch:            make(chan Event, subscriberBuffer),
		connectionID:  uuid.NewString(),
		participantID: participantID,
	}

	gw.mu.Lock()
	gw.subscribers[sub.ch] = sub
	gw.byConnection[sub.connectionID] = sub.ch
	count := len(gw.subscribers)
	gw.mu.Unlock()

	logging.Log.Infof("SSE: client connected (%s), now %d clients", sub.connectionID, count)
	return sub.connectionID, sub.ch
}

// Unsubscribe removes the observer and closes its channel. Safe to call
// for a connection already removed by CloseConnection.
func (gw *Gateway) Unsubscribe(ch chan Event) {
	gw.mu.Lock()
	sub, exists := gw.subscribers[ch]
	if exists {
		delete(gw.subscribers, ch)
		delete(gw.byConnection, sub.connectionID)
	}
	count := len(gw.subscribers)
	gw.mu.Unlock()

	if exists {
		close(ch)
		logging.Log.Infof("SSE: client removed (%s), now %d clients", sub.connectionID, count)
	}
}

// CloseConnection drops one observer by connection id, used after a
// kick so the stream terminates server-side.
func (gw *Gateway) CloseConnection(connectionID string) {
	gw.mu.Lock()
	ch, exists := gw.byConnection[connectionID]
	if exists {
		delete(gw.byConnection, connectionID)
		delete(gw.subscribers, ch)
	}
	gw.mu.Unlock()

	if exists {
		close(ch)
	}
}

// Broadcast sends the event to every connected observer without ever
// blocking the caller. Full subscriber buffers drop the event.
func (gw *Gateway) Broadcast(name string, data interface{}) {
	event := Event{Name: name, Data: data}

	// Sends happen under the read lock. Channels are only ever closed
	// under the write lock, so a send can not race a close.
	gw.mu.RLock()
	defer gw.mu.RUnlock()
	for ch := range gw.subscribers {
		select {
		case ch <- event:
		default:
			logging.Log.Warnf("SSE: dropped %s event for a slow client", name)
		}
	}
}

// SendTo delivers one event to a single connection. Reports false when
// the connection is gone or its buffer is full.
func (gw *Gateway) SendTo(connectionID, name string, data interface{}) bool {
	gw.mu.RLock()
	defer gw.mu.RUnlock()
	ch, exists := gw.byConnection[connectionID]
	if !exists {
		return false
	}

	select {
	case ch <- Event{Name: name, Data: data}:
		return true
	default:
		logging.Log.Warnf("SSE: dropped %s event for connection %s", name, connectionID)
		return false
	}
}

// Snapshot is the reconciliation path: the same state a continuously
// connected observer would have, computed on demand.
func (gw *Gateway) Snapshot(ctx context.Context) (poll.Snapshot, error) {
	return gw.lifecycle.Current(ctx)
}

// ClientCount returns the number of connected observers.
func (gw *Gateway) ClientCount() int {
	gw.mu.RLock()
	defer gw.mu.RUnlock()
	return len(gw.subscribers)
}

// PollOpened implements poll.Broadcaster.
func (gw *Gateway) PollOpened(snap poll.Snapshot) {
	gw.Broadcast(EventPollStart, snap)
}

// TallyUpdated implements poll.Broadcaster.
func (gw *Gateway) TallyUpdated(snap poll.Snapshot) {
	gw.Broadcast(EventPollUpdate, snap)
}

// PollClosed implements poll.Broadcaster.
func (gw *Gateway) PollClosed(snap poll.Snapshot, countdownTotal int) {
	gw.Broadcast(EventPollEnd, closedPayload{
		Snapshot:         snap,
		FinalResults:     true,
		ResultsRemaining: countdownTotal,
	})
}

// ResetToIdle implements poll.Broadcaster.
func (gw *Gateway) ResetToIdle(snap poll.Snapshot) {
	gw.Broadcast(EventPollIdle, snap)
}
