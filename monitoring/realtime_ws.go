package monitoring

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// MessageType tags events pushed over the monitor feed.
type MessageType string

const (
	PredictionEvent MessageType = "prediction"
	OperatorAlert   MessageType = "alert"
	Heartbeat       MessageType = "heartbeat"
)

// Message is the envelope broadcast to monitor clients.
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// PredictionMessage mirrors the verdict surface of a completed prediction.
// It deliberately excludes the submitted parameters.
type PredictionMessage struct {
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
	Duration   string  `json:"duration"`
}

// AlertMessage flags an operator-facing problem, such as a changed or
// corrupted model artifact.
type AlertMessage struct {
	Level   string `json:"level"` // warning, error
	Source  string `json:"source"`
	Message string `json:"message"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans prediction events and alerts out to connected WebSocket clients.
type Hub struct {
	logger     *zap.Logger
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	upgrader   websocket.Upgrader
	ctx        context.Context
	cancel     context.CancelFunc
	mu         sync.RWMutex
}

// NewHub creates a monitor hub.
func NewHub(logger *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		logger:     logger,
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		ctx:    ctx,
		cancel: cancel,
	}
}

// Run processes client churn and broadcasts until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("monitor client connected", zap.Int("total", total))

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("monitor client disconnected", zap.Int("total", total))

		case message := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					close(c.send)
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()

		case <-h.ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop shuts the hub down and disconnects all clients.
func (h *Hub) Stop() {
	h.cancel()
}

// HandleWebSocket upgrades an HTTP request to a monitor feed connection.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &client{conn: conn, send: make(chan []byte, 64)}
	h.register <- c

	go c.writePump()
	go c.readPump(h)
}

// PublishPrediction broadcasts a completed prediction.
func (h *Hub) PublishPrediction(msg PredictionMessage) {
	h.publish(PredictionEvent, msg)
}

// PublishAlert broadcasts an operator alert.
func (h *Hub) PublishAlert(msg AlertMessage) {
	h.publish(OperatorAlert, msg)
}

func (h *Hub) publish(kind MessageType, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("marshal monitor payload", zap.Error(err))
		return
	}
	envelope, err := json.Marshal(Message{Type: kind, Timestamp: time.Now(), Data: data})
	if err != nil {
		h.logger.Error("marshal monitor envelope", zap.Error(err))
		return
	}
	select {
	case h.broadcast <- envelope:
	default:
		h.logger.Warn("monitor broadcast queue full, dropping message")
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(30 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(30 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *client) readPump(h *Hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
