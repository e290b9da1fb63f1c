package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// ChatHub manages WebSocket connections for swap conversations.
// Unlike Hub (which is user-centric), ChatHub is thread-centric: users
// join the thread of a swap they participate in and receive its messages,
// typing and read events.
type ChatHub struct {
	mu sync.RWMutex

	// Map: swapID -> set of userIDs viewing the thread
	threads map[uint]map[uint]struct{}

	// Map: userID -> set of swapIDs they're actively viewing
	userActiveThreads map[uint]map[uint]struct{}

	// Map: userID -> set of active Clients (multi-device support)
	userConns map[uint]map[*Client]bool
}

// Name returns a human-readable identifier for this hub.
func (h *ChatHub) Name() string { return "chat hub" }

// ChatMessage represents a message broadcast to a swap thread
type ChatMessage struct {
	Type     string      `json:"type"` // "message", "typing", "read", "user_status", "connected_users"
	SwapID   uint        `json:"swap_id"`
	UserID   uint        `json:"user_id,omitempty"`
	Username string      `json:"username,omitempty"`
	Payload  interface{} `json:"payload"`
}

// NewChatHub creates a new ChatHub instance
func NewChatHub() *ChatHub {
	return &ChatHub{
		threads:           make(map[uint]map[uint]struct{}),
		userActiveThreads: make(map[uint]map[uint]struct{}),
		userConns:         make(map[uint]map[*Client]bool),
	}
}

// Register registers a user's websocket connection. Returns Client or error if limits exceeded.
func (h *ChatHub) Register(userID uint, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()

	if h.userConns[userID] == nil {
		h.userConns[userID] = make(map[*Client]bool)
	}

	if len(h.userConns[userID]) >= maxConnsPerUser {
		h.mu.Unlock()
		return nil, fmt.Errorf("user connection limit reached")
	}

	client := NewClient(h, conn, userID)
	h.userConns[userID][client] = true

	onlineIDs := make([]uint, 0, len(h.userConns))
	for id := range h.userConns {
		if id != userID {
			onlineIDs = append(onlineIDs, id)
		}
	}
	h.mu.Unlock()

	log.Printf("ChatHub: Registered user %d (Active clients: %d)", userID, len(h.userConns[userID]))

	// Send initial snapshot of who else is online.
	if len(onlineIDs) > 0 {
		snapshotMsg := ChatMessage{
			Type:    "connected_users",
			Payload: map[string]interface{}{"user_ids": onlineIDs},
		}
		if jsonMsg, err := json.Marshal(snapshotMsg); err == nil {
			client.TrySend(jsonMsg)
		}
	}

	h.BroadcastGlobalStatus(userID, "online")
	return client, nil
}

// UnregisterClient removes a user's websocket connection and cleans up all their thread subscriptions
func (h *ChatHub) UnregisterClient(client *Client) {
	h.mu.Lock()

	if clients, ok := h.userConns[client.UserID]; ok {
		delete(clients, client)
		if len(clients) > 0 {
			// User still has other connections.
			h.mu.Unlock()
			log.Printf("ChatHub: Unregistered client for user %d (Remaining clients: %d)", client.UserID, len(clients))
			return
		}
		delete(h.userConns, client.UserID)
	} else {
		h.mu.Unlock()
		return
	}

	// All connections for this user are gone; leave every thread.
	if threads, ok := h.userActiveThreads[client.UserID]; ok {
		for swapID := range threads {
			if users, ok := h.threads[swapID]; ok {
				delete(users, client.UserID)
				if len(users) == 0 {
					delete(h.threads, swapID)
				}
			}
		}
		delete(h.userActiveThreads, client.UserID)
	}

	h.mu.Unlock()

	log.Printf("ChatHub: Unregistered user %d (All connections closed)", client.UserID)

	h.BroadcastGlobalStatus(client.UserID, "offline")
}

// IsUserOnline returns true when the user has at least one active chat websocket client.
func (h *ChatHub) IsUserOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.userConns[userID]
	return ok && len(clients) > 0
}

// JoinThread subscribes a user to a swap thread's messages
func (h *ChatHub) JoinThread(userID, swapID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.userConns[userID]; !ok {
		log.Printf("ChatHub: User %d not connected, cannot join swap thread %d", userID, swapID)
		return
	}

	if h.threads[swapID] == nil {
		h.threads[swapID] = make(map[uint]struct{})
	}
	h.threads[swapID][userID] = struct{}{}

	if h.userActiveThreads[userID] == nil {
		h.userActiveThreads[userID] = make(map[uint]struct{})
	}
	h.userActiveThreads[userID][swapID] = struct{}{}

	log.Printf("ChatHub: User %d joined swap thread %d", userID, swapID)
}

// LeaveThread unsubscribes a user from a swap thread
func (h *ChatHub) LeaveThread(userID, swapID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if users, ok := h.threads[swapID]; ok {
		delete(users, userID)
		if len(users) == 0 {
			delete(h.threads, swapID)
		}
	}

	if threads, ok := h.userActiveThreads[userID]; ok {
		delete(threads, swapID)
	}

	log.Printf("ChatHub: User %d left swap thread %d", userID, swapID)
}

// BroadcastToThread sends a message to all users viewing a swap thread
func (h *ChatHub) BroadcastToThread(swapID uint, message ChatMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users, ok := h.threads[swapID]
	if !ok {
		return
	}

	messageJSON, err := json.Marshal(message)
	if err != nil {
		log.Printf("ChatHub: Failed to marshal message: %v", err)
		return
	}

	// Each user may have several devices connected.
	for userID := range users {
		if clients, ok := h.userConns[userID]; ok {
			for client := range clients {
				client.TrySend(messageJSON)
			}
		}
	}
}

// GetActiveUsers returns the list of userIDs currently viewing a swap thread
func (h *ChatHub) GetActiveUsers(swapID uint) []uint {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users, ok := h.threads[swapID]
	if !ok {
		return []uint{}
	}

	result := make([]uint, 0, len(users))
	for userID := range users {
		result = append(result, userID)
	}
	return result
}

// IsUserActive checks if a user is currently viewing a swap thread
func (h *ChatHub) IsUserActive(userID, swapID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if threads, ok := h.userActiveThreads[userID]; ok {
		_, active := threads[swapID]
		return active
	}
	return false
}

// StartWiring connects the ChatHub to Redis pub/sub for swap thread messages
func (h *ChatHub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartChatSubscriber(ctx, func(channel, payload string) {
		// channel format: chat:swap:<id>, typing:swap:<id> or read:swap:<id>
		var swapID uint
		var msgType string

		if _, err := fmt.Sscanf(channel, "chat:swap:%d", &swapID); err == nil {
			msgType = "message"
		} else if _, err := fmt.Sscanf(channel, "typing:swap:%d", &swapID); err == nil {
			msgType = "typing"
		} else if _, err := fmt.Sscanf(channel, "read:swap:%d", &swapID); err == nil {
			msgType = "read"
		} else {
			log.Printf("ChatHub: Invalid channel format: %s", channel)
			return
		}

		var message ChatMessage
		if err := json.Unmarshal([]byte(payload), &message); err != nil {
			log.Printf("ChatHub: Failed to parse message from channel %s: %v", channel, err)
			return
		}

		if message.Type == "" {
			message.Type = msgType
		}
		message.SwapID = swapID

		h.BroadcastToThread(swapID, message)
	})
}

// BroadcastGlobalStatus sends a "user_status" event (online/offline) to ALL connected users
func (h *ChatHub) BroadcastGlobalStatus(userID uint, status string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	message := ChatMessage{
		Type:    "user_status",
		UserID:  userID,
		Payload: map[string]interface{}{"status": status, "user_id": userID},
	}

	jsonMsg, err := json.Marshal(message)
	if err != nil {
		log.Printf("ChatHub: Failed to marshal status message: %v", err)
		return
	}

	for id, clients := range h.userConns {
		if id == userID {
			continue
		}
		for client := range clients {
			client.TrySend(jsonMsg)
		}
	}
}

// Shutdown gracefully closes all websocket connections
func (h *ChatHub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, clients := range h.userConns {
		for client := range clients {
			if err := client.Conn.WriteMessage(websocket.TextMessage,
				[]byte(`{"type":"server_shutdown","message":"Server is shutting down"}`)); err != nil {
				log.Printf("failed to write shutdown message for user %d: %v", userID, err)
			}
			if err := client.Conn.Close(); err != nil {
				log.Printf("failed to close websocket for user %d: %v", userID, err)
			}
		}
	}

	h.threads = make(map[uint]map[uint]struct{})
	h.userActiveThreads = make(map[uint]map[uint]struct{})
	h.userConns = make(map[uint]map[*Client]bool)

	return nil
}
