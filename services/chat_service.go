package services

import (
	"context"
	"time"

	"travelassist_server/models"
	apperrors "travelassist_server/pkg/errors"

	"github.com/google/uuid"
)

// ChatService stores and fetches messages between connected users.
type ChatService struct {
	Messages MessageStore
	Notifier Notifier

	// OnMessage, when set, receives each stored message for fan-out to live
	// conversation listeners.
	OnMessage func(models.Message)
}

// SendMessage stores a new chat message and notifies the recipient.
func (s *ChatService) SendMessage(ctx context.Context, senderID, recipientID, content string) (*models.Message, error) {
	if content == "" {
		return nil, apperrors.Validation("message content is required")
	}

	msg := models.Message{
		ConversationID: ConversationID(senderID, recipientID),
		MessageID:      uuid.NewString(),
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      time.Now().UTC().Format(models.MessageTimeLayout),
		IsUnread:       true,
	}
	if err := s.Messages.PutMessage(ctx, msg); err != nil {
		return nil, apperrors.External("failed to store message", err)
	}

	if s.OnMessage != nil {
		s.OnMessage(msg)
	}
	if s.Notifier != nil {
		s.Notifier.Notify(recipientID, "New Message", content)
	}
	return &msg, nil
}

// GetMessages returns the conversation's most recent messages, ordered
// oldest first so the latest appears at the bottom.
func (s *ChatService) GetMessages(ctx context.Context, userA, userB string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 100
	}

	messages, err := s.Messages.ListMessages(ctx, ConversationID(userA, userB), limit)
	if err != nil {
		return nil, apperrors.External("failed to fetch messages", err)
	}
	return messages, nil
}

// MarkRead marks the messages readerID received in the conversation as read.
func (s *ChatService) MarkRead(ctx context.Context, readerID, otherID string) error {
	if err := s.Messages.MarkMessagesRead(ctx, ConversationID(readerID, otherID), readerID); err != nil {
		return apperrors.External("failed to mark messages as read", err)
	}
	return nil
}
