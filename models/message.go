package models

// Message is one chat message between two connected users. ConversationID is
// the sorted pair of user ids joined with "_", so both parties resolve the
// same conversation. The Messages table is keyed by conversationId with
// createdAt as the sort key, so a bounded query returns the newest messages
// first; CreatedAt uses the fixed-width MessageTimeLayout to keep the sort
// key lexically ordered.
type Message struct {
	ConversationID string `dynamodbav:"conversationId" json:"conversationId"`
	MessageID      string `dynamodbav:"messageId" json:"messageId"`
	SenderID       string `dynamodbav:"senderId" json:"senderId"`
	Content        string `dynamodbav:"content" json:"content"`
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
	IsUnread       bool   `dynamodbav:"isUnread" json:"isUnread"`
}

// MessagesTable is the DynamoDB table name for chat messages
const MessagesTable = "Messages"

// MessageTimeLayout formats createdAt with fixed-width fractional seconds.
// RFC3339Nano trims trailing zeros, which breaks lexical ordering of the
// sort key.
const MessageTimeLayout = "2006-01-02T15:04:05.000000000Z"
