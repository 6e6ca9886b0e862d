package services

import (
	"context"
	"sort"
	"sync"

	"travelassist_server/models"
)

// memStore is an in-memory stand-in for DynamoStore. It mirrors the store
// contract, including ErrItemNotFound for absent records and all-or-nothing
// behavior for AcceptRequest and CompleteConnection.
type memStore struct {
	mu          sync.Mutex
	users       map[string]models.User
	requests    map[string]models.ConnectionRequest
	connections map[string]models.Connection
	history     []models.ConnectionHistoryEntry
	messages    []models.Message
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[string]models.User),
		requests:    make(map[string]models.ConnectionRequest),
		connections: make(map[string]models.Connection),
	}
}

func (m *memStore) PutUser(_ context.Context, user models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.UserID] = user
	return nil
}

func (m *memStore) GetUser(_ context.Context, userID string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &user, nil
}

func (m *memStore) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].UserID < users[j].UserID })
	return users, nil
}

func (m *memStore) UpdateUserLocation(_ context.Context, userID string, loc models.Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return ErrItemNotFound
	}
	user.Location = &loc
	m.users[userID] = user
	return nil
}

func (m *memStore) UpdateUserSkills(_ context.Context, userID string, skills []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return ErrItemNotFound
	}
	user.Skills = skills
	m.users[userID] = user
	return nil
}

func (m *memStore) UpdateTrustedContacts(_ context.Context, userID string, contacts []models.TrustedContact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return ErrItemNotFound
	}
	user.TrustedContacts = contacts
	m.users[userID] = user
	return nil
}

func (m *memStore) AppendRating(_ context.Context, userID string, rating models.Rating, newAverage float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return ErrItemNotFound
	}
	user.Ratings = append(user.Ratings, rating)
	user.AverageRating = newAverage
	m.users[userID] = user
	return nil
}

func (m *memStore) PutRequest(_ context.Context, req models.ConnectionRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[req.RequestID] = req
	return nil
}

func (m *memStore) GetRequest(_ context.Context, requestID string) (*models.ConnectionRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[requestID]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &req, nil
}

func (m *memStore) DeleteRequest(_ context.Context, requestID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[requestID]; !ok {
		return ErrItemNotFound
	}
	delete(m.requests, requestID)
	return nil
}

func (m *memStore) ListRequestsFor(_ context.Context, userID string) ([]models.ConnectionRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ConnectionRequest
	for _, req := range m.requests {
		if req.To == userID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (m *memStore) AcceptRequest(_ context.Context, requestID string, conn models.Connection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[requestID]; !ok {
		return ErrItemNotFound
	}
	if _, ok := m.connections[conn.ConnectionID]; ok {
		return ErrItemNotFound
	}
	delete(m.requests, requestID)
	m.connections[conn.ConnectionID] = conn
	return nil
}

func (m *memStore) GetConnection(_ context.Context, connectionID string) (*models.Connection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conn, ok := m.connections[connectionID]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &conn, nil
}

func (m *memStore) DeleteConnection(_ context.Context, connectionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.connections[connectionID]; !ok {
		return ErrItemNotFound
	}
	delete(m.connections, connectionID)
	return nil
}

func (m *memStore) ListConnectionsFor(_ context.Context, userID string) ([]models.Connection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Connection
	for _, conn := range m.connections {
		if conn.Involves(userID) {
			out = append(out, conn)
		}
	}
	return out, nil
}

func (m *memStore) CompleteConnection(_ context.Context, connectionID string, entry models.ConnectionHistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.connections[connectionID]; !ok {
		return ErrItemNotFound
	}
	delete(m.connections, connectionID)
	m.history = append(m.history, entry)
	return nil
}

func (m *memStore) HistoryForPairSince(_ context.Context, pairKey string, sinceMillis int64) ([]models.ConnectionHistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ConnectionHistoryEntry
	for _, entry := range m.history {
		if entry.PairKey == pairKey && entry.Timestamp >= sinceMillis {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (m *memStore) ListHistoryFor(_ context.Context, userID string) ([]models.ConnectionHistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ConnectionHistoryEntry
	for _, entry := range m.history {
		for _, u := range entry.Users {
			if u == userID {
				out = append(out, entry)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out, nil
}

func (m *memStore) PutMessage(_ context.Context, msg models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

func (m *memStore) ListMessages(_ context.Context, conversationID string, limit int) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Message
	for _, msg := range m.messages {
		if msg.ConversationID == conversationID {
			out = append(out, msg)
		}
	}
	// Newest limit messages, oldest first, like the createdAt sort key query.
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (m *memStore) MarkMessagesRead(ctx context.Context, conversationID, readerID string) error {
	// Same shape as the production store: an unbounded list, then per-message
	// flips.
	messages, err := m.ListMessages(ctx, conversationID, 0)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range messages {
		if msg.SenderID == readerID {
			continue
		}
		for i := range m.messages {
			if m.messages[i].ConversationID == conversationID && m.messages[i].MessageID == msg.MessageID {
				m.messages[i].IsUnread = false
			}
		}
	}
	return nil
}

var (
	_ UserStore       = (*memStore)(nil)
	_ ConnectionStore = (*memStore)(nil)
	_ MessageStore    = (*memStore)(nil)
)

// recordingNotifier captures in-app notifications for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []notification
}

type notification struct {
	UserID string
	Title  string
	Body   string
}

func (n *recordingNotifier) Notify(userID, title, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notification{UserID: userID, Title: title, Body: body})
}

func (n *recordingNotifier) sentTo(userID string) []notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []notification
	for _, e := range n.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

// recordingSMS captures outbound texts for assertions.
type recordingSMS struct {
	mu   sync.Mutex
	sent []struct{ Phone, Message string }
}

func (s *recordingSMS) Available() bool { return true }

func (s *recordingSMS) Send(phone, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, struct{ Phone, Message string }{phone, message})
	return nil
}
