// Package realtime keeps the registry of online users and pushes
// notifications to their websocket connections.
package realtime

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/wire"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewHub)

const (
	// 每條連線的待送佇列長度；滿了直接丟棄
	DefaultBufferSize = 16
	writeTimeout      = 10 * time.Second
	MessageNotify     = "notification"
)

// Message 推播給前端的封包
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Client 單一連線；同一使用者可有多條
type Client struct {
	userID string
	send   chan Message
}

func (c *Client) UserID() string {
	return c.userID
}

// Messages 待送出的訊息
func (c *Client) Messages() <-chan Message {
	return c.send
}

type Hub struct {
	logger     *zap.Logger
	bufferSize int

	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

func NewHub(logger *zap.Logger) *Hub {
	return NewHubWithBuffer(logger, DefaultBufferSize)
}

func NewHubWithBuffer(logger *zap.Logger, bufferSize int) *Hub {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Hub{
		logger:     logger.Named("realtime"),
		bufferSize: bufferSize,
		clients:    make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(userID string) *Client {
	client := &Client{userID: userID, send: make(chan Message, h.bufferSize)}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*Client]struct{})
	}
	h.clients[userID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	connections, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := connections[client]; !ok {
		return
	}
	delete(connections, client)
	close(client.send)
	if len(connections) == 0 {
		delete(h.clients, client.userID)
	}
}

// Push 不阻塞：佇列已滿的連線跳過。回傳實際排入的連線數
func (h *Hub) Push(userID string, data any) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for client := range h.clients[userID] {
		select {
		case client.send <- Message{Type: MessageNotify, Data: data}:
			delivered++
		default:
			h.logger.Warn("realtime buffer full, drop message", zap.String("user_id", userID))
		}
	}
	return delivered
}

// Online 指定使用者的連線數
func (h *Hub) Online(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *Hub) OnlineUsers() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	users := make([]string, 0, len(h.clients))
	for userID := range h.clients {
		users = append(users, userID)
	}
	sort.Strings(users)
	return users
}

// Serve 在連線關閉或 ctx 結束前持續寫出推播；前端送來的訊息一律忽略
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn, userID string) error {
	client := h.Register(userID)
	defer h.Unregister(client)
	defer conn.CloseNow()

	ctx = conn.CloseRead(ctx)
	h.logger.Debug("realtime client connected", zap.String("user_id", userID))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case message, ok := <-client.send:
			if !ok {
				return nil
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(writeCtx, conn, message)
			cancel()
			if err != nil {
				h.logger.Debug("realtime write failed", zap.String("user_id", userID), zap.Error(err))
				return err
			}
		}
	}
}
