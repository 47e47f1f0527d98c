package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	broadcastBuffer = 64
	writeWait       = 10 * time.Second
)

// Conn is the part of a websocket connection the hub writes to
type Conn interface {
	WriteJSON(v interface{}) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

var _ Conn = (*websocket.Conn)(nil)

// ApprovalEvent is pushed to every connected client when an admin approves something
type ApprovalEvent struct {
	Kind  string `json:"kind"` // "challenge" or "solution"
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// Hub fans approval events out to the connected websocket clients
type Hub struct {
	clients   map[Conn]bool
	broadcast chan ApprovalEvent
	mutex     sync.Mutex
	log       logrus.FieldLogger
	writeWait time.Duration
}

func NewHub(log logrus.FieldLogger) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{
		clients:   make(map[Conn]bool),
		broadcast: make(chan ApprovalEvent, broadcastBuffer),
		log:       log,
		writeWait: writeWait,
	}
}

// RegisterClient adds a websocket client to the hub
func (h *Hub) RegisterClient(conn Conn) {
	h.mutex.Lock()
	h.clients[conn] = true
	h.mutex.Unlock()
}

// UnregisterClient removes a websocket client from the hub
func (h *Hub) UnregisterClient(conn Conn) {
	h.mutex.Lock()
	delete(h.clients, conn)
	h.mutex.Unlock()
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// BroadcastApproval queues an event. When the queue is full the event is dropped.
func (h *Hub) BroadcastApproval(event ApprovalEvent) {
	select {
	case h.broadcast <- event:
	default:
		h.log.WithField("kind", event.Kind).WithField("id", event.ID).Warn("approval feed is full, dropping event")
	}
}

// NotifyApproval lets the hub be handed to the services as their notifier
func (h *Hub) NotifyApproval(kind string, id uint, title string) {
	h.BroadcastApproval(ApprovalEvent{Kind: kind, ID: id, Title: title})
}

// Run delivers queued events until ctx is done, then closes every client
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

// deliver writes outside the lock so a slow client never blocks
// registration. Only Run calls it, so each connection has one writer.
func (h *Hub) deliver(event ApprovalEvent) {
	h.mutex.Lock()
	clients := make([]Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mutex.Unlock()

	for _, client := range clients {
		err := client.SetWriteDeadline(time.Now().Add(h.writeWait))
		if err == nil {
			err = client.WriteJSON(event)
		}
		if err != nil {
			h.log.WithError(err).Warn("websocket write error")
			client.Close()
			h.UnregisterClient(client)
		}
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}
