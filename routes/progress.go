// routes/progress.go
package routes

import (
	"net/http"
	"sync"
	"time"

	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/utils"
	"github.com/gorilla/websocket"
)

// ProgressEvent представляет событие прогресса запуска,
// рассылаемое подключенным клиентам
type ProgressEvent struct {
	RunID     string    `json:"runId"`
	Stage     string    `json:"stage"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ProgressHub управляет WebSocket-подписчиками прогресса запуска.
// Раннер публикует событие на каждой фазе конвейера; отвалившиеся
// клиенты отключаются при первой неудачной отправке.
type ProgressHub struct {
	logger   *utils.ETLLogger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewProgressHub создает новый экземпляр ProgressHub
func NewProgressHub(logger *utils.ETLLogger) *ProgressHub {
	return &ProgressHub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

// HandleConnections обрабатывает новые WebSocket-подключения
func (h *ProgressHub) HandleConnections(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Ошибка при установке WebSocket-соединения: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	h.logger.Debug("Новый подписчик прогресса подключен")

	// Читаем соединение только ради обнаружения разрыва
	go func() {
		defer h.removeClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast рассылает событие прогресса всем подписчикам
func (h *ProgressHub) Broadcast(event ProgressEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(event); err != nil {
			h.logger.Debug("Подписчик прогресса отключен: %v", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// removeClient закрывает соединение и удаляет подписчика
func (h *ProgressHub) removeClient(conn *websocket.Conn) {
	conn.Close()

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}
