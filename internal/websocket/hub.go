package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/SubrataD27/vaani/usecase"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Voice frames carry
	// base64 audio, so the cap is generous.
	maxMessageSize = 10 << 20
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The demo surface is public; session tokens gate the upgrade.
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Hub maintains the set of active demo clients. One client per session;
// a reconnect replaces the previous connection.
type Hub struct {
	clients   map[string]*Client
	mu        sync.RWMutex
	validator *MessageValidator
	logger    *zap.Logger
}

// NewHub creates a new WebSocket hub
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:   make(map[string]*Client),
		validator: NewMessageValidator(),
		logger:    logger,
	}
}

// Client is a middleman between one websocket connection and the
// session's conversation store
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	sessionID string
	store     *usecase.ConversationStore
}

// HandleConnection upgrades the request and serves the client until it
// disconnects
func (h *Hub) HandleConnection(c echo.Context, sessionID string, store *usecase.ConversationStore) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", zap.Error(err))
		return err
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, 16),
		done:      make(chan struct{}),
		sessionID: sessionID,
		store:     store,
	}

	// The previous connection's read goroutine may still be mid-turn
	// and about to enqueue its response, so its send channel must stay
	// open. Signal done instead; drop is the only closer of send.
	h.mu.Lock()
	if previous, ok := h.clients[sessionID]; ok {
		close(previous.done)
	}
	h.clients[sessionID] = client
	h.mu.Unlock()

	h.logger.Info("WebSocket client connected", zap.String("sessionID", sessionID))

	go client.writePump()
	go client.readPump()
	return nil
}

func (h *Hub) drop(client *Client) {
	h.mu.Lock()
	if current, ok := h.clients[client.sessionID]; ok && current == client {
		delete(h.clients, client.sessionID)
		close(client.send)
	}
	h.mu.Unlock()
	h.logger.Info("WebSocket client disconnected", zap.String("sessionID", client.sessionID))
}

// readPump pumps messages from the websocket connection to the store
func (c *Client) readPump() {
	defer func() {
		c.hub.drop(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}
		c.handleMessage(data)
	}
}

// writePump pumps messages from the send channel to the connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

func (c *Client) handleMessage(data []byte) {
	msgType, err := c.hub.validator.ParseType(data)
	if err != nil {
		c.sendError("invalid_message", err.Error())
		return
	}

	switch msgType {
	case MessageTypeTextQuery:
		msg, err := c.hub.validator.ValidateTextQuery(data)
		if err != nil {
			c.sendError("invalid_message", err.Error())
			return
		}
		// The store's busy gate serializes turns; the pipeline runs on
		// this read goroutine so a session has one turn in flight.
		accepted := c.store.SubmitText(context.Background(), msg.Text)
		c.sendTurn(accepted)

	case MessageTypeVoiceQuery:
		_, audio, err := c.hub.validator.ValidateVoiceQuery(data)
		if err != nil {
			c.sendError("invalid_message", err.Error())
			return
		}
		accepted := c.store.SubmitVoice(context.Background(), audio)
		c.sendTurn(accepted)

	case MessageTypeSetLanguage:
		msg, err := c.hub.validator.ValidateSetLanguage(data)
		if err != nil {
			c.sendError("unsupported_language", err.Error())
			return
		}
		c.store.SetLanguage(msg.Language)
		c.sendTurn(true)

	case MessageTypePing:
		c.enqueue(BaseMessage{Type: MessageTypePong, Timestamp: time.Now().Format(time.RFC3339)})

	default:
		c.sendError("unknown_type", "unsupported message type")
	}
}

func (c *Client) sendTurn(accepted bool) {
	c.enqueue(QueryResponseMessage{
		BaseMessage: BaseMessage{
			Type:      MessageTypeQueryResponse,
			Timestamp: time.Now().Format(time.RFC3339),
		},
		Accepted: accepted,
		Messages: c.store.Messages(),
	})
}

func (c *Client) sendError(code, message string) {
	c.enqueue(ErrorMessage{
		BaseMessage: BaseMessage{
			Type:      MessageTypeError,
			Timestamp: time.Now().Format(time.RFC3339),
		},
		Code:    code,
		Message: message,
	})
}

func (c *Client) enqueue(msg interface{}) {
	payload, err := json.Marshal(msg)
	if err != nil {
		c.hub.logger.Error("Failed to marshal outbound message", zap.Error(err))
		return
	}

	select {
	case c.send <- payload:
	default:
		c.hub.logger.Warn("Dropping outbound message, send buffer full",
			zap.String("sessionID", c.sessionID))
	}
}
