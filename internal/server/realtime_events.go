package server

import (
	"context"
	"encoding/json"
	"log"

	"skillswap/internal/models"
)

// Event type constants prevent typos in event names.
const (
	EventSwapRequestReceived  = "swap_request_received"
	EventSwapRequestSent      = "swap_request_sent"
	EventSwapAccepted         = "swap_accepted"
	EventSwapRejected         = "swap_rejected"
	EventSwapCancelled        = "swap_cancelled"
	EventSwapCompleted        = "swap_completed"
	EventMessageReceived      = "message_received"
	EventRatingReceived       = "rating_received"
	EventAnnouncementPublished = "announcement_published"
)

func (s *Server) publishUserEvent(userID uint, eventType string, payload map[string]interface{}) {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	message := string(eventJSON)
	if s.hub != nil {
		s.hub.Broadcast(userID, message)
	}
	if s.notifier != nil {
		if err := s.notifier.PublishUser(context.Background(), userID, message); err != nil {
			log.Printf("failed to publish %s event to user %d: %v", eventType, userID, err)
		}
	}
}

func (s *Server) publishBroadcastEvent(eventType string, payload map[string]interface{}) {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	message := string(eventJSON)
	if s.hub != nil {
		s.hub.BroadcastAll(message)
	}
	if s.notifier != nil {
		if err := s.notifier.PublishBroadcast(context.Background(), message); err != nil {
			log.Printf("failed to publish %s broadcast event: %v", eventType, err)
		}
	}
}

func userSummary(user models.User) map[string]interface{} {
	return map[string]interface{}{
		"id":           user.ID,
		"username":     user.Username,
		"display_name": user.DisplayName,
		"avatar":       user.Avatar,
	}
}

func swapSummary(swap *models.SwapRequest) map[string]interface{} {
	if swap == nil {
		return nil
	}
	return map[string]interface{}{
		"id":           swap.ID,
		"status":       swap.Status,
		"requester_id": swap.RequesterID,
		"provider_id":  swap.ProviderID,
	}
}
