package memory

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/qrave1/RoomSignal/internal/application/config"
	"github.com/qrave1/RoomSignal/internal/application/constant"
	"github.com/qrave1/RoomSignal/internal/application/metric"
	"github.com/qrave1/RoomSignal/internal/domain/events"
)

// WebsocketConnectionRepository интерфейс для работы с активными сокетами в памяти.
// Отправка не блокирует: у каждого сокета своя очередь и своя горутина записи.
type WebsocketConnectionRepository interface {
	Add(connID string, conn *websocket.Conn)
	Remove(connID string)

	Send(connID string, msg events.Message)
	// Disconnect закрывает сокет через after. Обработчик чтения увидит ошибку и сам всё почистит.
	Disconnect(connID string, after time.Duration)

	Count() int
}

type wsClient struct {
	conn *websocket.Conn
	send chan events.Message

	closed bool
	mu     sync.Mutex
}

type wsConnectionRepository struct {
	cfg config.WebSocketConfig

	// wsConns хранит map[conn_id]*wsClient
	wsConns map[string]*wsClient

	mu sync.RWMutex
}

func NewWSConnectionRepository(cfg config.WebSocketConfig) WebsocketConnectionRepository {
	return &wsConnectionRepository{
		cfg:     cfg,
		wsConns: make(map[string]*wsClient, 10),
	}
}

func (w *wsConnectionRepository) Add(connID string, conn *websocket.Conn) {
	client := &wsClient{
		conn: conn,
		send: make(chan events.Message, w.cfg.SendBuffer),
	}

	w.mu.Lock()
	old, exists := w.wsConns[connID]
	w.wsConns[connID] = client
	w.mu.Unlock()

	if exists {
		old.close()
	} else {
		metric.IncrementWSActiveConnections()
	}

	go w.writePump(connID, client)
}

func (w *wsConnectionRepository) Remove(connID string) {
	w.mu.Lock()
	client, exists := w.wsConns[connID]
	if exists {
		delete(w.wsConns, connID)
	}
	w.mu.Unlock()

	if !exists {
		return
	}

	client.close()

	metric.DecrementWSActiveConnections()
}

func (w *wsConnectionRepository) Send(connID string, msg events.Message) {
	client, ok := w.getClient(connID)
	if !ok {
		return
	}

	client.mu.Lock()
	defer client.mu.Unlock()

	if client.closed {
		return
	}

	select {
	case client.send <- msg:
	default:
		// Медленный клиент: очередь забита, рвём соединение
		slog.Warn(
			"websocket send buffer is full, dropping connection",
			slog.String(constant.ConnID, connID),
			slog.String(constant.MessageType, msg.Type),
		)

		client.closed = true
		close(client.send)
	}
}

func (w *wsConnectionRepository) Disconnect(connID string, after time.Duration) {
	client, ok := w.getClient(connID)
	if !ok {
		return
	}

	time.AfterFunc(after, func() {
		if err := client.conn.Close(); err != nil {
			slog.Debug(
				"close websocket",
				slog.Any(constant.Error, err),
				slog.String(constant.ConnID, connID),
			)
		}
	})
}

func (w *wsConnectionRepository) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return len(w.wsConns)
}

func (w *wsConnectionRepository) getClient(connID string) (*wsClient, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	client, ok := w.wsConns[connID]
	return client, ok
}

// writePump - единственная горутина, которая пишет в сокет
func (w *wsConnectionRepository) writePump(connID string, client *wsClient) {
	ticker := time.NewTicker(w.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(w.cfg.WriteWait))

			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.conn.WriteJSON(msg); err != nil {
				slog.Error(
					"write to websocket",
					slog.Any(constant.Error, err),
					slog.String(constant.ConnID, connID),
				)
				return
			}

		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(w.cfg.WriteWait))

			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				slog.Debug(
					"ping failed",
					slog.Any(constant.Error, err),
					slog.String(constant.ConnID, connID),
				)
				return
			}
		}
	}
}

func (c *wsClient) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	close(c.send)
}
