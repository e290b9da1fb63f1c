package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"skillswap/internal/middleware"
	"skillswap/internal/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebsocketHandler handles the per-user event stream: swap lifecycle
// notifications, new-message pings, rating events and announcements.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		middleware.ActiveWebSockets.WithLabelValues("events").Inc()
		defer middleware.ActiveWebSockets.WithLabelValues("events").Dec()

		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			if cerr := conn.Close(); cerr != nil {
				log.Printf("websocket close error: %v", cerr)
			}
			return
		}
		uid, ok := userIDVal.(uint)
		if !ok {
			if cerr := conn.Close(); cerr != nil {
				log.Printf("websocket close error: %v", cerr)
			}
			return
		}

		if s.hub == nil {
			_ = conn.Close()
			return
		}

		// Register connection with scaling guardrails
		client, err := s.hub.Register(uid, conn)
		if err != nil {
			log.Printf("WebSocket Notification: Failed to register user %d: %v", uid, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		defer s.hub.UnregisterClient(client)
		s.consumeWSTicket(context.Background(), conn.Locals("wsTicket"))

		// Start pumps
		go client.WritePump()
		client.ReadPump()
	})
}

// WebSocketChatHandler handles WebSocket connections for real-time swap chat
func (s *Server) WebSocketChatHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		middleware.ActiveWebSockets.WithLabelValues("chat").Inc()
		defer middleware.ActiveWebSockets.WithLabelValues("chat").Dec()

		ctx := context.Background()

		// Get userID from context locals (set by AuthRequired middleware)
		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			log.Printf("WebSocket Chat: Unauthenticated connection attempt")
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}
		userID := userIDVal.(uint)

		// Get user info for username
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil || user == nil {
			log.Printf("WebSocket Chat: Failed to get user %d: %v", userID, err)
			_ = conn.Close()
			return
		}
		username := user.Username

		log.Printf("WebSocket: User %d (%s) connected to chat", userID, username)

		// Register user with ChatHub
		if s.chatHub == nil {
			_ = conn.Close()
			return
		}

		client, err := s.chatHub.Register(userID, conn)
		if err != nil {
			log.Printf("WebSocket Chat: Failed to register user %d: %v", userID, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		s.consumeWSTicket(ctx, conn.Locals("wsTicket"))

		// Define Incoming Message Handler
		client.IncomingHandler = func(c *notifications.Client, message []byte) {
			// Parse incoming message
			var incomingMsg map[string]interface{}
			if err := json.Unmarshal(message, &incomingMsg); err != nil {
				log.Printf("WebSocket: Invalid message format from user %d", userID)
				return
			}

			msgType, ok := incomingMsg["type"].(string)
			if !ok {
				return
			}

			// Handle different message types
			switch msgType {
			case "join":
				// Join a swap thread
				if swapIDFloat, ok := incomingMsg["swap_id"].(float64); ok {
					swapID := uint(swapIDFloat)
					// Verify user is participant before joining
					if s.isSwapParticipant(ctx, userID, swapID) {
						s.chatHub.JoinThread(userID, swapID)

						// Send confirmation to user
						response := notifications.ChatMessage{
							Type:    "joined",
							SwapID:  swapID,
							Payload: map[string]interface{}{"swap_id": swapID},
						}
						responseJSON, _ := json.Marshal(response)
						c.TrySend(responseJSON)
					}
				}

			case "leave":
				// Leave a swap thread
				if swapIDFloat, ok := incomingMsg["swap_id"].(float64); ok {
					s.chatHub.LeaveThread(userID, uint(swapIDFloat))
				}

			case "typing":
				// Typing indicator - limit to 10 per 10 seconds to prevent spam
				if swapIDFloat, ok := incomingMsg["swap_id"].(float64); ok {
					swapID := uint(swapIDFloat)
					isTyping, _ := incomingMsg["is_typing"].(bool)

					if s.notifier != nil && s.isSwapParticipant(ctx, userID, swapID) {
						// Rate limit typing indicators
						id := fmt.Sprintf("user:%d", userID)
						allowed, _ := middleware.CheckRateLimit(ctx, s.redis, "typing", id, 10, 10*time.Second)
						if !allowed {
							return // Silently drop spammy typing indicators
						}

						if perr := s.notifier.PublishTypingIndicator(ctx, swapID, userID, username, isTyping); perr != nil {
							log.Printf("publish typing indicator error: %v", perr)
						}
					}
				}

			case "message":
				// Send a message (alternative to the HTTP endpoint)
				if swapIDFloat, ok := incomingMsg["swap_id"].(float64); ok {
					swapID := uint(swapIDFloat)
					content, _ := incomingMsg["content"].(string)

					if content == "" {
						return
					}

					// Rate limit messages - same as HTTP (15 per minute)
					id := fmt.Sprintf("user:%d", userID)
					allowed, _ := middleware.CheckRateLimit(ctx, s.redis, "send_chat", id, 15, time.Minute)
					if !allowed {
						response := notifications.ChatMessage{
							Type: "error",
							Payload: map[string]string{
								"message": "Rate limit exceeded. Please wait a moment.",
							},
						}
						if respJSON, err := json.Marshal(response); err == nil {
							c.TrySend(respJSON)
						}
						return
					}

					// The service re-checks participation and that chat is open
					stored, serr := s.chatSvc().SendMessage(ctx, userID, swapID, content)
					if serr != nil {
						response := notifications.ChatMessage{
							Type:    "error",
							SwapID:  swapID,
							Payload: map[string]string{"message": serr.Error()},
						}
						if respJSON, jerr := json.Marshal(response); jerr == nil {
							c.TrySend(respJSON)
						}
						return
					}

					frame := notifications.ChatMessage{
						Type:     "message",
						SwapID:   swapID,
						UserID:   userID,
						Username: username,
						Payload:  stored,
					}

					s.chatHub.BroadcastToThread(swapID, frame)

					// Broadcast via Redis for other instances
					if s.notifier != nil {
						if frameJSON, jerr := json.Marshal(frame); jerr == nil {
							if perr := s.notifier.PublishChatMessage(ctx, swapID, string(frameJSON)); perr != nil {
								log.Printf("publish chat message error: %v", perr)
							}
						}
					}
				}

			case "read":
				// Mark the thread as read
				if swapIDFloat, ok := incomingMsg["swap_id"].(float64); ok {
					swapID := uint(swapIDFloat)
					updated, uerr := s.chatSvc().MarkRead(ctx, userID, swapID)
					if uerr != nil {
						log.Printf("mark read error: %v", uerr)
						return
					}

					// Broadcast read receipt
					if updated > 0 && s.notifier != nil {
						if perr := s.notifier.PublishReadReceipt(ctx, swapID, userID); perr != nil {
							log.Printf("publish read receipt error: %v", perr)
						}
					}
				}
			}
		}

		// Send welcome message
		welcomeMsg := notifications.ChatMessage{
			Type:    "connected",
			Payload: map[string]interface{}{"user_id": userID, "username": username},
		}
		if welcomeJSON, err := json.Marshal(welcomeMsg); err == nil {
			client.TrySend(welcomeJSON)
		}

		// Start write pump in a goroutine
		go client.WritePump()

		// Read pump runs in the main handler goroutine (blocking)
		client.ReadPump()

		// Last connection dropped — let thread partners see the status change
		if !s.chatHub.IsUserOnline(userID) {
			s.chatHub.BroadcastGlobalStatus(userID, "offline")
		}
	})
}

// isSwapParticipant checks if a user is one of the two parties on a swap
func (s *Server) isSwapParticipant(ctx context.Context, userID, swapID uint) bool {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil || swap == nil {
		return false
	}
	return swap.IsParticipant(userID)
}
