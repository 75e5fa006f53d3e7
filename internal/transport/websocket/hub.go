// Package websocket
package websocket

import (
	"encoding/json"

	"github.com/wilsonritt/snmp-monitor/internal/domain"
	"github.com/wilsonritt/snmp-monitor/internal/logger"
)

type Hub struct {
	clients  map[*Client]bool
	channels map[string]map[*Client]bool

	register    chan *Client
	unregister  chan *Client
	subscribe   chan *Subscription
	unsubscribe chan *Subscription

	events chan *domain.WsEvent

	log logger.Logger
}

type Subscription struct {
	client  *Client
	channel string
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		clients:  make(map[*Client]bool),
		channels: make(map[string]map[*Client]bool),

		register:    make(chan *Client),
		unregister:  make(chan *Client),
		subscribe:   make(chan *Subscription),
		unsubscribe: make(chan *Subscription),

		events: make(chan *domain.WsEvent, 100),

		log: log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.log.Info("ws: client registered", "total_clients", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.log.Info("ws: client unregistered", "total_clients", len(h.clients))

				for channel, subs := range h.channels {
					if _, subscribed := subs[client]; subscribed {
						delete(subs, client)
						if len(subs) == 0 {
							delete(h.channels, channel)
						}
					}
				}
			}

		case sub := <-h.subscribe:
			if h.channels[sub.channel] == nil {
				h.channels[sub.channel] = make(map[*Client]bool)
			}
			h.channels[sub.channel][sub.client] = true
			h.log.Debug("ws: client subscribed", "channel", sub.channel)

		case sub := <-h.unsubscribe:
			if subs, ok := h.channels[sub.channel]; ok {
				if _, subscribed := subs[sub.client]; subscribed {
					delete(subs, sub.client)
					if len(subs) == 0 {
						delete(h.channels, sub.channel)
					}
					h.log.Debug("ws: client unsubscribed", "channel", sub.channel)
				}
			}

		case event := <-h.events:
			h.handleEvent(event)
		}
	}
}

func (h *Hub) handleEvent(event *domain.WsEvent) {
	message, err := json.Marshal(event)
	if err != nil {
		h.log.Error("ws: failed to marshal event", "error", err)
		return
	}

	targetClients := h.clients

	if event.Channel != "" {
		subs, ok := h.channels[event.Channel]
		if !ok {
			return
		}
		targetClients = subs
	}

	for client := range targetClients {
		select {
		case client.send <- message:
		default:
			h.log.Warn("ws: client channel full, dropping message")
		}
	}
}

// Broadcast queues an event for every subscriber of channel. Safe to call
// from any goroutine; the hub loop does the fan-out.
func (h *Hub) Broadcast(channel, event string, payload any) {
	h.events <- &domain.WsEvent{
		Channel: channel,
		Event:   event,
		Payload: payload,
	}
}
