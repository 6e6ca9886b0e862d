package models

// ConnectionRequest is a pending ask from one user to another. Requests are
// removed when resolved; no declined record is kept.
type ConnectionRequest struct {
	RequestID string `dynamodbav:"requestId" json:"requestId"`
	From      string `dynamodbav:"from" json:"from"`
	FromEmail string `dynamodbav:"fromEmail,omitempty" json:"fromEmail,omitempty"`
	FromName  string `dynamodbav:"fromName,omitempty" json:"fromName,omitempty"`
	To        string `dynamodbav:"to" json:"to"`
	Status    string `dynamodbav:"status" json:"status"`
	Timestamp int64  `dynamodbav:"timestamp" json:"timestamp"`
}

// Connection is an active pairing between two users. At most one active
// connection exists per unordered pair; PairKey is the sorted user ids and
// backs that check.
type Connection struct {
	ConnectionID string   `dynamodbav:"connectionId" json:"connectionId"`
	Users        []string `dynamodbav:"users" json:"users"`
	PairKey      string   `dynamodbav:"pairKey" json:"pairKey"`
	Timestamp    int64    `dynamodbav:"timestamp" json:"timestamp"`
}

// Other returns the counterpart id for selfID, or "" when selfID is not part
// of the connection.
func (c Connection) Other(selfID string) string {
	for _, id := range c.Users {
		if id != selfID {
			return id
		}
	}
	return ""
}

// Involves reports whether userID is one of the two parties.
func (c Connection) Involves(userID string) bool {
	for _, id := range c.Users {
		if id == userID {
			return true
		}
	}
	return false
}

// ConnectionHistoryEntry is the immutable record of a completed in-person
// meeting, written by the auto-completion path.
type ConnectionHistoryEntry struct {
	HistoryID string    `dynamodbav:"historyId" json:"historyId"`
	PairKey   string    `dynamodbav:"pairKey" json:"pairKey"`
	Users     []string  `dynamodbav:"users" json:"users"`
	Names     []string  `dynamodbav:"names" json:"names"`
	Timestamp int64     `dynamodbav:"timestamp" json:"timestamp"`
	Location  *Location `dynamodbav:"location,omitempty" json:"location,omitempty"`
}

// Request status values
const (
	RequestStatusPending = "pending"
)

// Table and index names
const (
	ConnectionRequestsTable = "ConnectionRequests"
	ConnectionsTable        = "Connections"
	ConnectionHistoryTable  = "ConnectionHistory"

	// RequestToIndex is the GSI on ConnectionRequests keyed by recipient.
	RequestToIndex = "to-index"
	// HistoryPairKeyIndex is the GSI on ConnectionHistory keyed by PairKey,
	// sorted by timestamp. Backs the auto-complete de-duplication guard.
	HistoryPairKeyIndex = "pairKey-index"
)
