package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"travelassist_server/services"
)

// ChatController handles HTTP requests for direct messages
type ChatController struct {
	Chat *services.ChatService
}

func NewChatController(chat *services.ChatService) *ChatController {
	return &ChatController{Chat: chat}
}

// HandleSendMessage stores a message and notifies the recipient
func (cc *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var request struct {
		SenderID    string `json:"senderId"`
		RecipientID string `json:"recipientId"`
		Content     string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	message, err := cc.Chat.SendMessage(r.Context(), request.SenderID, request.RecipientID, request.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"message": message})
}

// HandleGetMessages returns the messages of a conversation, oldest first
func (cc *ChatController) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	userA := r.URL.Query().Get("userA")
	userB := r.URL.Query().Get("userB")
	if userA == "" || userB == "" {
		http.Error(w, "userA and userB are required", http.StatusBadRequest)
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "limit must be a number", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	messages, err := cc.Chat.GetMessages(r.Context(), userA, userB, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

// HandleMarkRead flips the unread flag on messages the reader has seen
func (cc *ChatController) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ReaderID string `json:"readerId"`
		OtherID  string `json:"otherId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.ReaderID == "" || request.OtherID == "" {
		http.Error(w, "readerId and otherId are required", http.StatusBadRequest)
		return
	}

	if err := cc.Chat.MarkRead(r.Context(), request.ReaderID, request.OtherID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Messages marked as read"})
}
