package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"travelassist_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoStore implements the store interfaces on top of DynamoService.
type DynamoStore struct {
	Dynamo *DynamoService
}

func NewDynamoStore(dynamo *DynamoService) *DynamoStore {
	return &DynamoStore{Dynamo: dynamo}
}

// PairKey returns the canonical key for an unordered user pair.
func PairKey(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return strings.Join(ids, "#")
}

// ConversationID returns the canonical chat id for an unordered user pair.
func ConversationID(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return strings.Join(ids, "_")
}

func stringKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		name: &types.AttributeValueMemberS{Value: value},
	}
}

// --- UserStore ---

func (s *DynamoStore) PutUser(ctx context.Context, user models.User) error {
	return s.Dynamo.PutItem(ctx, models.UsersTable, user)
}

func (s *DynamoStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	item, err := s.Dynamo.GetItem(ctx, models.UsersTable, stringKey("userId", userID))
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

func (s *DynamoStore) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.Dynamo.ScanWithFilter(ctx, models.UsersTable, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *DynamoStore) UpdateUserLocation(ctx context.Context, userID string, loc models.Location) error {
	locAttr, err := attributevalue.Marshal(loc)
	if err != nil {
		return fmt.Errorf("failed to marshal location: %w", err)
	}

	_, err = s.Dynamo.UpdateItem(ctx, models.UsersTable, "SET #location = :loc",
		stringKey("userId", userID),
		map[string]types.AttributeValue{":loc": locAttr},
		map[string]string{"#location": "location"},
	)
	return err
}

func (s *DynamoStore) UpdateUserSkills(ctx context.Context, userID string, skills []string) error {
	skillsAttr, err := attributevalue.Marshal(skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}

	_, err = s.Dynamo.UpdateItem(ctx, models.UsersTable, "SET skills = :skills",
		stringKey("userId", userID),
		map[string]types.AttributeValue{":skills": skillsAttr},
		nil,
	)
	return err
}

func (s *DynamoStore) UpdateTrustedContacts(ctx context.Context, userID string, contacts []models.TrustedContact) error {
	contactsAttr, err := attributevalue.Marshal(contacts)
	if err != nil {
		return fmt.Errorf("failed to marshal trusted contacts: %w", err)
	}

	_, err = s.Dynamo.UpdateItem(ctx, models.UsersTable, "SET trustedContacts = :contacts",
		stringKey("userId", userID),
		map[string]types.AttributeValue{":contacts": contactsAttr},
		nil,
	)
	return err
}

func (s *DynamoStore) AppendRating(ctx context.Context, userID string, rating models.Rating, newAverage float64) error {
	ratingAttr, err := attributevalue.Marshal(rating)
	if err != nil {
		return fmt.Errorf("failed to marshal rating: %w", err)
	}
	avgAttr, err := attributevalue.Marshal(newAverage)
	if err != nil {
		return fmt.Errorf("failed to marshal average: %w", err)
	}

	updateExpression := "SET ratings = list_append(if_not_exists(ratings, :empty), :newRating), averageRating = :avg"
	_, err = s.Dynamo.UpdateItem(ctx, models.UsersTable, updateExpression,
		stringKey("userId", userID),
		map[string]types.AttributeValue{
			":empty":     &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":newRating": &types.AttributeValueMemberL{Value: []types.AttributeValue{ratingAttr}},
			":avg":       avgAttr,
		}, nil,
	)
	return err
}

// --- ConnectionStore ---

func (s *DynamoStore) PutRequest(ctx context.Context, req models.ConnectionRequest) error {
	return s.Dynamo.PutItem(ctx, models.ConnectionRequestsTable, req)
}

func (s *DynamoStore) GetRequest(ctx context.Context, requestID string) (*models.ConnectionRequest, error) {
	item, err := s.Dynamo.GetItem(ctx, models.ConnectionRequestsTable, stringKey("requestId", requestID))
	if err != nil {
		return nil, err
	}

	var req models.ConnectionRequest
	if err := attributevalue.UnmarshalMap(item, &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal request: %w", err)
	}
	return &req, nil
}

func (s *DynamoStore) DeleteRequest(ctx context.Context, requestID string) error {
	return s.Dynamo.DeleteItemConditional(ctx, models.ConnectionRequestsTable,
		stringKey("requestId", requestID), "attribute_exists(requestId)")
}

func (s *DynamoStore) ListRequestsFor(ctx context.Context, userID string) ([]models.ConnectionRequest, error) {
	// "to" is a DynamoDB reserved word, hence the name placeholder.
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.ConnectionRequestsTable, models.RequestToIndex,
		"#to = :to",
		map[string]types.AttributeValue{":to": &types.AttributeValueMemberS{Value: userID}},
		map[string]string{"#to": "to"},
		100,
	)
	if err != nil {
		return nil, err
	}

	var requests []models.ConnectionRequest
	if err := attributevalue.UnmarshalListOfMaps(items, &requests); err != nil {
		return nil, fmt.Errorf("failed to unmarshal requests: %w", err)
	}
	return requests, nil
}

func (s *DynamoStore) AcceptRequest(ctx context.Context, requestID string, conn models.Connection) error {
	connItem, err := attributevalue.MarshalMap(conn)
	if err != nil {
		return fmt.Errorf("failed to marshal connection: %w", err)
	}

	requestsTable := models.ConnectionRequestsTable
	connectionsTable := models.ConnectionsTable
	deleteCondition := "attribute_exists(requestId)"
	putCondition := "attribute_not_exists(connectionId)"

	return s.Dynamo.TransactWrite(ctx, []types.TransactWriteItem{
		{
			Delete: &types.Delete{
				TableName:           &requestsTable,
				Key:                 stringKey("requestId", requestID),
				ConditionExpression: &deleteCondition,
			},
		},
		{
			Put: &types.Put{
				TableName:           &connectionsTable,
				Item:                connItem,
				ConditionExpression: &putCondition,
			},
		},
	})
}

func (s *DynamoStore) GetConnection(ctx context.Context, connectionID string) (*models.Connection, error) {
	item, err := s.Dynamo.GetItem(ctx, models.ConnectionsTable, stringKey("connectionId", connectionID))
	if err != nil {
		return nil, err
	}

	var conn models.Connection
	if err := attributevalue.UnmarshalMap(item, &conn); err != nil {
		return nil, fmt.Errorf("failed to unmarshal connection: %w", err)
	}
	return &conn, nil
}

func (s *DynamoStore) DeleteConnection(ctx context.Context, connectionID string) error {
	return s.Dynamo.DeleteItemConditional(ctx, models.ConnectionsTable,
		stringKey("connectionId", connectionID), "attribute_exists(connectionId)")
}

func (s *DynamoStore) ListConnectionsFor(ctx context.Context, userID string) ([]models.Connection, error) {
	var all []models.Connection
	if err := s.Dynamo.ScanWithFilter(ctx, models.ConnectionsTable, nil, &all); err != nil {
		return nil, err
	}

	var connections []models.Connection
	for _, conn := range all {
		if conn.Involves(userID) {
			connections = append(connections, conn)
		}
	}
	return connections, nil
}

func (s *DynamoStore) CompleteConnection(ctx context.Context, connectionID string, entry models.ConnectionHistoryEntry) error {
	entryItem, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	historyTable := models.ConnectionHistoryTable
	connectionsTable := models.ConnectionsTable
	deleteCondition := "attribute_exists(connectionId)"

	return s.Dynamo.TransactWrite(ctx, []types.TransactWriteItem{
		{
			Put: &types.Put{
				TableName: &historyTable,
				Item:      entryItem,
			},
		},
		{
			Delete: &types.Delete{
				TableName:           &connectionsTable,
				Key:                 stringKey("connectionId", connectionID),
				ConditionExpression: &deleteCondition,
			},
		},
	})
}

func (s *DynamoStore) HistoryForPairSince(ctx context.Context, pairKey string, sinceMillis int64) ([]models.ConnectionHistoryEntry, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.ConnectionHistoryTable, models.HistoryPairKeyIndex,
		"pairKey = :pairKey AND #ts >= :since",
		map[string]types.AttributeValue{
			":pairKey": &types.AttributeValueMemberS{Value: pairKey},
			":since":   &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", sinceMillis)},
		},
		map[string]string{"#ts": "timestamp"},
		100,
	)
	if err != nil {
		return nil, err
	}

	var entries []models.ConnectionHistoryEntry
	if err := attributevalue.UnmarshalListOfMaps(items, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history entries: %w", err)
	}
	return entries, nil
}

func (s *DynamoStore) ListHistoryFor(ctx context.Context, userID string) ([]models.ConnectionHistoryEntry, error) {
	var all []models.ConnectionHistoryEntry
	if err := s.Dynamo.ScanWithFilter(ctx, models.ConnectionHistoryTable, nil, &all); err != nil {
		return nil, err
	}

	var entries []models.ConnectionHistoryEntry
	for _, entry := range all {
		for _, id := range entry.Users {
			if id == userID {
				entries = append(entries, entry)
				break
			}
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	return entries, nil
}

// --- MessageStore ---

func (s *DynamoStore) PutMessage(ctx context.Context, msg models.Message) error {
	return s.Dynamo.PutItem(ctx, models.MessagesTable, msg)
}

// ListMessages returns the conversation's most recent limit messages.
// createdAt is the table's sort key, so the bounded query reads newest-first
// and the result is reversed so the latest message lands at the end.
func (s *DynamoStore) ListMessages(ctx context.Context, conversationID string, limit int) ([]models.Message, error) {
	items, err := s.Dynamo.QueryItemsWithOptions(ctx, models.MessagesTable,
		"conversationId = :conversationId",
		map[string]types.AttributeValue{
			":conversationId": &types.AttributeValueMemberS{Value: conversationID},
		},
		nil, int32(limit), true,
	)
	if err != nil {
		return nil, err
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (s *DynamoStore) MarkMessagesRead(ctx context.Context, conversationID, readerID string) error {
	// Unbounded: every unread message from the counterpart flips, however
	// far back it sits.
	messages, err := s.ListMessages(ctx, conversationID, 0)
	if err != nil {
		return err
	}

	for _, msg := range messages {
		if msg.SenderID == readerID || !msg.IsUnread {
			continue
		}

		key := map[string]types.AttributeValue{
			"conversationId": &types.AttributeValueMemberS{Value: conversationID},
			"createdAt":      &types.AttributeValueMemberS{Value: msg.CreatedAt},
		}
		_, err := s.Dynamo.UpdateItem(ctx, models.MessagesTable, "SET isUnread = :false",
			key,
			map[string]types.AttributeValue{":false": &types.AttributeValueMemberBOOL{Value: false}},
			nil,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// ensure interface compliance
var (
	_ UserStore       = (*DynamoStore)(nil)
	_ ConnectionStore = (*DynamoStore)(nil)
	_ MessageStore    = (*DynamoStore)(nil)
)
