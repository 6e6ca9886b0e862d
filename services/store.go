package services

import (
	"context"

	"travelassist_server/models"
)

// Store interfaces sit between the domain services and DynamoDB. Absent
// records surface as ErrItemNotFound; domain services translate that into the
// coded errors controllers present.

type UserStore interface {
	PutUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUserLocation(ctx context.Context, userID string, loc models.Location) error
	UpdateUserSkills(ctx context.Context, userID string, skills []string) error
	UpdateTrustedContacts(ctx context.Context, userID string, contacts []models.TrustedContact) error
	// AppendRating appends one rating and stores the recomputed average in
	// the same update.
	AppendRating(ctx context.Context, userID string, rating models.Rating, newAverage float64) error
}

type ConnectionStore interface {
	PutRequest(ctx context.Context, req models.ConnectionRequest) error
	GetRequest(ctx context.Context, requestID string) (*models.ConnectionRequest, error)
	// DeleteRequest removes a request only if it still exists, so a request
	// cannot be answered twice.
	DeleteRequest(ctx context.Context, requestID string) error
	ListRequestsFor(ctx context.Context, userID string) ([]models.ConnectionRequest, error)

	// AcceptRequest atomically deletes the request and creates the
	// connection. Either both writes land or neither does.
	AcceptRequest(ctx context.Context, requestID string, conn models.Connection) error
	GetConnection(ctx context.Context, connectionID string) (*models.Connection, error)
	DeleteConnection(ctx context.Context, connectionID string) error
	ListConnectionsFor(ctx context.Context, userID string) ([]models.Connection, error)

	// CompleteConnection atomically writes the history entry and deletes the
	// connection.
	CompleteConnection(ctx context.Context, connectionID string, entry models.ConnectionHistoryEntry) error
	HistoryForPairSince(ctx context.Context, pairKey string, sinceMillis int64) ([]models.ConnectionHistoryEntry, error)
	ListHistoryFor(ctx context.Context, userID string) ([]models.ConnectionHistoryEntry, error)
}

type MessageStore interface {
	PutMessage(ctx context.Context, msg models.Message) error
	ListMessages(ctx context.Context, conversationID string, limit int) ([]models.Message, error)
	MarkMessagesRead(ctx context.Context, conversationID, readerID string) error
}

// Notifier pushes in-app notifications to a user's live sessions. Delivery is
// best-effort.
type Notifier interface {
	Notify(userID, title, body string)
}

// SMSSender sends best-effort out-of-band messages. Send errors are logged,
// never propagated into state-machine results.
type SMSSender interface {
	Available() bool
	Send(phoneNumber, message string) error
}
