// Package notify fans committed workflow events out to connected staff
// dashboards over WebSocket and to supervisors over Telegram. Events arrive
// through Redis Pub/Sub, so every server instance sees transitions committed
// by any of them.
package notify

import (
	"encoding/json"
	"log"

	"freightdesk/backend/internal/models"
	"freightdesk/backend/internal/storage"
)

// Client is one connected dashboard subscriber. It abstracts the underlying
// connection so the hub can manage WebSocket clients and test doubles
// uniformly.
type Client interface {
	// GetID returns the unique identifier of this connection.
	GetID() string
	// GetDepartment returns the department scope the client subscribed with.
	// An empty scope receives every event (admin view).
	GetDepartment() string
	// GetSendChannel returns the channel the hub delivers events on.
	GetSendChannel() chan<- models.WorkflowEvent
	// Run starts the client's read and write pumps.
	Run()
	// Close shuts the client down and releases its channels.
	Close()
}

// Alerter receives every event the hub dispatches; implementations decide
// which ones are worth an out-of-band notification.
type Alerter interface {
	Alert(ev models.WorkflowEvent)
}

// Hub tracks connected dashboard clients and routes events to the ones whose
// scope matches the event's department.
type Hub struct {
	Clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client
	EventCh      chan models.WorkflowEvent

	Storage  *storage.Service
	Alerters []Alerter
}

// NewHub creates a new notification hub.
func NewHub(s *storage.Service) *Hub {
	return &Hub{
		Clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		EventCh:      make(chan models.WorkflowEvent, 64),
		Storage:      s,
	}
}

// AddAlerter registers an out-of-band notifier. Call before Run.
func (h *Hub) AddAlerter(a Alerter) {
	h.Alerters = append(h.Alerters, a)
}

// StartPubSubListener subscribes to the workflow events channel and feeds
// incoming events into the hub loop.
func (h *Hub) StartPubSubListener() {
	go func() {
		pubsub := h.Storage.Redis.Subscribe(h.Storage.Ctx, storage.WorkflowEventsChannel)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for msg := range ch {
			var ev models.WorkflowEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("ERROR: Failed to unmarshal workflow event: %v", err)
				continue
			}
			h.EventCh <- ev
		}
	}()
}

// Run is the hub's main loop. It owns the Clients map; register, unregister
// and dispatch all happen on this goroutine.
func (h *Hub) Run() {
	h.StartPubSubListener()

	for {
		select {
		case client := <-h.RegisterCh:
			h.Clients[client.GetID()] = client
			log.Printf("Dashboard client %s registered (scope %q)", client.GetID(), client.GetDepartment())

		case client := <-h.UnregisterCh:
			if _, ok := h.Clients[client.GetID()]; ok {
				delete(h.Clients, client.GetID())
				client.Close()
			}

		case ev := <-h.EventCh:
			h.Dispatch(ev)
		}
	}
}

// Dispatch delivers one event to every matching client and to the alerters.
// A client that cannot keep up is dropped rather than allowed to block the
// hub.
func (h *Hub) Dispatch(ev models.WorkflowEvent) {
	for id, client := range h.Clients {
		if scope := client.GetDepartment(); scope != "" && scope != ev.Department {
			continue
		}
		select {
		case client.GetSendChannel() <- ev:
		default:
			log.Printf("WARNING: Dropping slow dashboard client %s", id)
			delete(h.Clients, id)
			client.Close()
		}
	}

	for _, a := range h.Alerters {
		a.Alert(ev)
	}
}
