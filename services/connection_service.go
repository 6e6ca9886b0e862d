package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"travelassist_server/models"
	apperrors "travelassist_server/pkg/errors"
	"travelassist_server/utils"

	"github.com/google/uuid"
)

// RouteCache is the part of the route annotator the state machine needs:
// dropping a connection's cached route when the connection ends.
type RouteCache interface {
	ClearRoute(connectionID string)
}

// RatingPrompt asks Rater to rate Ratee after a connection ended. The prompt
// is mandatory for the party that initiated the disconnect, and for both
// parties after an auto-completion.
type RatingPrompt struct {
	Rater string `json:"rater"`
	Ratee string `json:"ratee"`
}

// ConnectionService drives the pairwise lifecycle:
// request -> pending -> connected -> ended/completed, with ratings after.
type ConnectionService struct {
	Users       UserStore
	Connections ConnectionStore
	Matcher     *MatchService
	Routes      RouteCache
	Notifier    Notifier
	SMS         SMSSender

	// MeetThresholdKm and MeetDedupWindow govern auto-completion: below the
	// threshold the parties are presumed to have met; the window suppresses
	// duplicate completions from repeated location pings.
	MeetThresholdKm float64
	MeetDedupWindow time.Duration

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func (cs *ConnectionService) now() time.Time {
	if cs.Now != nil {
		return cs.Now()
	}
	return time.Now()
}

// SendRequest creates a pending connection request from fromID to toID.
func (cs *ConnectionService) SendRequest(ctx context.Context, fromID, toID string) (*models.ConnectionRequest, error) {
	sender, err := cs.Users.GetUser(ctx, fromID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, apperrors.Validation("sender record not found")
		}
		return nil, apperrors.External("failed to fetch sender", err)
	}
	if sender.UserID == "" || sender.FullName == "" {
		return nil, apperrors.Validation("sender record is missing id or full name")
	}

	req := models.ConnectionRequest{
		RequestID: uuid.NewString(),
		From:      fromID,
		FromEmail: sender.Email,
		FromName:  sender.FullName,
		To:        toID,
		Status:    models.RequestStatusPending,
		Timestamp: cs.now().UnixMilli(),
	}
	if err := cs.Connections.PutRequest(ctx, req); err != nil {
		return nil, apperrors.External("failed to save connection request", err)
	}

	cs.notify(toID, "New Connection Request", fmt.Sprintf("%s wants to connect with you!", sender.FullName))
	return &req, nil
}

// RespondToRequest resolves a pending request addressed to selfID. The
// request is consumed either way; acceptance additionally requires the
// requester to still be in selfID's nearby snapshot, and commits the request
// deletion and connection creation in one transaction so an aborted accept
// leaves nothing behind and a double accept can never create two
// connections.
func (cs *ConnectionService) RespondToRequest(ctx context.Context, requestID, selfID string, accept bool) (*models.Connection, error) {
	req, err := cs.Connections.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, apperrors.NotFound("connection request not found")
		}
		return nil, apperrors.External("failed to fetch connection request", err)
	}
	if req.To != selfID {
		return nil, apperrors.PermissionDenied("request is not addressed to this user")
	}

	if !accept {
		if err := cs.Connections.DeleteRequest(ctx, requestID); err != nil {
			if errors.Is(err, ErrItemNotFound) {
				return nil, apperrors.NotFound("connection request not found")
			}
			return nil, apperrors.External("failed to delete connection request", err)
		}
		return nil, nil
	}

	candidate, ok := cs.Matcher.CachedCandidate(selfID, req.From)
	if !ok {
		return nil, apperrors.NotFound("requester is no longer in the nearby snapshot")
	}

	conn := models.Connection{
		ConnectionID: uuid.NewString(),
		Users:        []string{selfID, req.From},
		PairKey:      PairKey(selfID, req.From),
		Timestamp:    cs.now().UnixMilli(),
	}
	if err := cs.Connections.AcceptRequest(ctx, requestID, conn); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, apperrors.NotFound("connection request already resolved")
		}
		return nil, apperrors.External("failed to accept connection request", err)
	}

	cs.announceConnection(ctx, selfID, req.From, candidate.DistanceKm)
	return &conn, nil
}

// announceConnection notifies and messages both parties after an acceptance.
// All of it is best-effort; the connection is already committed.
func (cs *ConnectionService) announceConnection(ctx context.Context, selfID, requesterID string, distanceKm float64) {
	self, selfErr := cs.Users.GetUser(ctx, selfID)
	requester, reqErr := cs.Users.GetUser(ctx, requesterID)
	if selfErr != nil || reqErr != nil {
		log.Printf("connection announcement skipped: self=%v requester=%v", selfErr, reqErr)
		return
	}

	body := fmt.Sprintf("You are now connected. Distance: %.2f km", distanceKm)
	cs.notify(selfID, "Connection Accepted", body)
	cs.notify(requesterID, "Connection Accepted", body)

	cs.sendSMS(requester.PhoneNumber, connectionMessage(self, distanceKm))
	cs.sendSMS(self.PhoneNumber, connectionMessage(requester, distanceKm))
}

// connectionMessage builds the out-of-band text describing the counterpart.
func connectionMessage(counterpart *models.User, distanceKm float64) string {
	skills := "None listed"
	if len(counterpart.Skills) > 0 {
		skills = strings.Join(counterpart.Skills, ", ")
	}

	var location string
	if counterpart.Location != nil {
		location = fmt.Sprintf("https://www.google.com/maps?q=%f,%f",
			counterpart.Location.Latitude, counterpart.Location.Longitude)
	}

	return fmt.Sprintf(
		"Travel Assist Connection!\n\n%s (%s) is now connected with you.\n\nThey are %.2f km away.\n\nTheir location: %s\n\nTheir skills: %s",
		counterpart.FullName, counterpart.PhoneNumber, distanceKm, location, skills,
	)
}

// Disconnect ends a connection at byUserID's request and returns the
// mandatory rating prompt for the initiator.
func (cs *ConnectionService) Disconnect(ctx context.Context, connectionID, byUserID string) (*RatingPrompt, error) {
	conn, err := cs.Connections.GetConnection(ctx, connectionID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, apperrors.NotFound("connection not found")
		}
		return nil, apperrors.External("failed to fetch connection", err)
	}
	if !conn.Involves(byUserID) {
		return nil, apperrors.PermissionDenied("user is not part of this connection")
	}

	if err := cs.Connections.DeleteConnection(ctx, connectionID); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, apperrors.NotFound("connection not found")
		}
		return nil, apperrors.External("failed to delete connection", err)
	}

	if cs.Routes != nil {
		cs.Routes.ClearRoute(connectionID)
	}

	other := conn.Other(byUserID)
	cs.notify(other, "Connection Ended", "Your connection has been closed.")
	cs.notify(byUserID, "Connection Ended", "Please rate your experience.")
	cs.messageBothParties(ctx, byUserID, other, "Travel Assist: your connection has ended.")

	return &RatingPrompt{Rater: byUserID, Ratee: other}, nil
}

// AutoComplete closes every connection of selfID whose counterpart is within
// the meet threshold, writing a history entry for each. A pair that already
// completed inside the dedup window is skipped, so repeated location pings
// cannot produce duplicate history.
func (cs *ConnectionService) AutoComplete(ctx context.Context, selfID string, selfLoc models.Location) ([]RatingPrompt, error) {
	connections, err := cs.Connections.ListConnectionsFor(ctx, selfID)
	if err != nil {
		return nil, apperrors.External("failed to list connections", err)
	}
	if len(connections) == 0 {
		return nil, nil
	}

	self, err := cs.Users.GetUser(ctx, selfID)
	if err != nil {
		return nil, apperrors.External("failed to fetch user", err)
	}

	var prompts []RatingPrompt
	for _, conn := range connections {
		otherID := conn.Other(selfID)
		other, err := cs.Users.GetUser(ctx, otherID)
		if err != nil || other.Location == nil {
			continue
		}

		distance := utils.CalculateDistance(
			selfLoc.Latitude, selfLoc.Longitude,
			other.Location.Latitude, other.Location.Longitude,
		)
		if distance >= cs.MeetThresholdKm {
			continue
		}

		since := cs.now().Add(-cs.MeetDedupWindow).UnixMilli()
		recent, err := cs.Connections.HistoryForPairSince(ctx, conn.PairKey, since)
		if err != nil {
			log.Printf("auto-complete: history check failed for %s: %v", conn.PairKey, err)
			continue
		}
		if len(recent) > 0 {
			continue
		}

		entry := models.ConnectionHistoryEntry{
			HistoryID: uuid.NewString(),
			PairKey:   conn.PairKey,
			Users:     []string{selfID, otherID},
			Names:     []string{self.FullName, other.FullName},
			Timestamp: cs.now().UnixMilli(),
			Location:  &selfLoc,
		}
		if err := cs.Connections.CompleteConnection(ctx, conn.ConnectionID, entry); err != nil {
			if errors.Is(err, ErrItemNotFound) {
				continue // lost a race with another completion
			}
			return prompts, apperrors.External("failed to complete connection", err)
		}

		if cs.Routes != nil {
			cs.Routes.ClearRoute(conn.ConnectionID)
		}

		body := fmt.Sprintf("You met %s. The connection is complete - please rate your experience.", other.FullName)
		cs.notify(selfID, "Connection Completed", body)
		cs.notify(otherID, "Connection Completed",
			fmt.Sprintf("You met %s. The connection is complete - please rate your experience.", self.FullName))
		cs.messageBothParties(ctx, selfID, otherID, "Travel Assist: you met your helper, the connection is complete.")

		prompts = append(prompts, RatingPrompt{Rater: selfID, Ratee: otherID})
	}
	return prompts, nil
}

// SubmitRating appends one rating and returns the recipient's new average,
// the exact arithmetic mean over every rating ever received.
func (cs *ConnectionService) SubmitRating(ctx context.Context, fromID, toID string, stars int, comment string) (float64, error) {
	if stars < 1 || stars > 5 {
		return 0, apperrors.Validation("stars must be between 1 and 5")
	}

	recipient, err := cs.Users.GetUser(ctx, toID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return 0, apperrors.NotFound("rating recipient not found")
		}
		return 0, apperrors.External("failed to fetch rating recipient", err)
	}

	rating := models.Rating{
		From:      fromID,
		To:        toID,
		Stars:     stars,
		Comment:   comment,
		Timestamp: cs.now().UnixMilli(),
	}

	sum := stars
	for _, r := range recipient.Ratings {
		sum += r.Stars
	}
	newAverage := float64(sum) / float64(len(recipient.Ratings)+1)

	if err := cs.Users.AppendRating(ctx, toID, rating, newAverage); err != nil {
		return 0, apperrors.External("failed to save rating", err)
	}
	return newAverage, nil
}

// ListRequests returns the pending requests addressed to userID.
func (cs *ConnectionService) ListRequests(ctx context.Context, userID string) ([]models.ConnectionRequest, error) {
	requests, err := cs.Connections.ListRequestsFor(ctx, userID)
	if err != nil {
		return nil, apperrors.External("failed to list connection requests", err)
	}
	return requests, nil
}

// ListConnections returns userID's active connections.
func (cs *ConnectionService) ListConnections(ctx context.Context, userID string) ([]models.Connection, error) {
	connections, err := cs.Connections.ListConnectionsFor(ctx, userID)
	if err != nil {
		return nil, apperrors.External("failed to list connections", err)
	}
	return connections, nil
}

// ListHistory returns userID's completed meetings, newest first.
func (cs *ConnectionService) ListHistory(ctx context.Context, userID string) ([]models.ConnectionHistoryEntry, error) {
	entries, err := cs.Connections.ListHistoryFor(ctx, userID)
	if err != nil {
		return nil, apperrors.External("failed to list connection history", err)
	}
	return entries, nil
}

func (cs *ConnectionService) notify(userID, title, body string) {
	if cs.Notifier != nil {
		cs.Notifier.Notify(userID, title, body)
	}
}

// messageBothParties sends a best-effort SMS to each party's phone number.
func (cs *ConnectionService) messageBothParties(ctx context.Context, a, b, message string) {
	for _, id := range []string{a, b} {
		user, err := cs.Users.GetUser(ctx, id)
		if err != nil {
			log.Printf("sms skipped for %s: %v", id, err)
			continue
		}
		cs.sendSMS(user.PhoneNumber, message)
	}
}

func (cs *ConnectionService) sendSMS(phoneNumber, message string) {
	if cs.SMS == nil || phoneNumber == "" {
		return
	}
	if !cs.SMS.Available() {
		log.Println("sms unavailable, skipping outbound message")
		return
	}
	if err := cs.SMS.Send(phoneNumber, message); err != nil {
		log.Printf("failed to send sms: %v", err)
	}
}
