package socket

import (
	"log"

	"travelassist_server/models"

	socketio "github.com/googollee/go-socket.io"
)

// NewSocketServer initializes the Socket.IO server. Clients join their own
// user room after connecting ("join" with their user id) and per-conversation
// rooms for live chat ("joinChat" with a conversation id).
func NewSocketServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("socket connected:", c.ID())
		return nil
	})

	server.OnEvent("/", "join", func(c socketio.Conn, data map[string]string) {
		userID := data["userId"]
		if userID == "" {
			log.Println("invalid userId in join request")
			return
		}
		c.Join(userRoom(userID))
	})

	server.OnEvent("/", "joinChat", func(c socketio.Conn, data map[string]string) {
		conversationID := data["conversationId"]
		if conversationID == "" {
			log.Println("invalid conversationId in joinChat request")
			return
		}
		c.Join(chatRoom(conversationID))
	})

	server.OnError("/", func(c socketio.Conn, err error) {
		log.Println("socket error:", err)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("socket disconnected:", c.ID(), reason)
	})

	return server
}

func userRoom(userID string) string         { return "user:" + userID }
func chatRoom(conversationID string) string { return "chat:" + conversationID }

// Broadcaster pushes server-side events to connected clients. It implements
// the notifier used by the domain services.
type Broadcaster struct {
	Server *socketio.Server
}

// Notify delivers an in-app notification to every live session of userID.
func (b *Broadcaster) Notify(userID, title, body string) {
	b.Server.BroadcastToRoom("/", userRoom(userID), "notification", map[string]string{
		"title": title,
		"body":  body,
	})
}

// NearbyUpdate pushes a fresh candidate list to userID. Wired to the
// matcher's polling loop.
func (b *Broadcaster) NearbyUpdate(userID string, candidates []models.Candidate) {
	b.Server.BroadcastToRoom("/", userRoom(userID), "nearbyUsers", candidates)
}

// ChatMessage fans a stored message out to the conversation room.
func (b *Broadcaster) ChatMessage(msg models.Message) {
	b.Server.BroadcastToRoom("/", chatRoom(msg.ConversationID), "newMessage", msg)
}
