package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"portalBack/internal/models"
)

const (
	readLimit     = 1 << 20 // 1 MB
	readDeadline  = 120 * time.Second
	writeDeadline = 5 * time.Second
	pingInterval  = 15 * time.Second
	sendTimeout   = 3 * time.Second
)

type directMsg struct {
	accountID string
	msg       models.Message
}

type unreg struct {
	accountID string
	conn      *websocket.Conn
}

type WebSocketManager struct {
	clients    map[string]*websocket.Conn
	direct     chan directMsg
	register   chan Client
	unregister chan unreg
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[string]*websocket.Conn),
		direct:     make(chan directMsg),
		register:   make(chan Client),
		unregister: make(chan unreg),
	}
}

type Client struct {
	ID     string
	Socket *websocket.Conn
}

// Push delivers a stored message to the recipient's live connection, if any.
func (ws *WebSocketManager) Push(msg models.Message) {
	ws.direct <- directMsg{accountID: msg.RecipientID, msg: msg}
}

// All operations on clients happen here.
func (ws *WebSocketManager) Run() {
	for {
		select {
		case client := <-ws.register:
			// a new socket for the same account replaces the old one
			if old, ok := ws.clients[client.ID]; ok && old != nil && old != client.Socket {
				_ = old.Close()
			}
			ws.clients[client.ID] = client.Socket
			log.Printf("WS register account=%s", client.ID)

		case u := <-ws.unregister:
			if cur, ok := ws.clients[u.accountID]; ok && cur == u.conn {
				_ = cur.Close()
				delete(ws.clients, u.accountID)
				log.Printf("WS unregister account=%s", u.accountID)
			}

		case dm := <-ws.direct:
			if conn, ok := ws.clients[dm.accountID]; ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(dm.msg); err != nil {
					log.Printf("direct send error to=%s: %v", dm.accountID, err)
					_ = conn.Close()
					delete(ws.clients, dm.accountID)
				}
			} else {
				log.Printf("direct skip: account=%s offline", dm.accountID)
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(r *http.Request) bool { return true },
	ReadBufferSize:    1024,
	WriteBufferSize:   1024,
	EnableCompression: true,
}

// WebSocketHandler upgrades an authenticated request to a live message
// connection. The account identity comes from the JWT middleware, not from
// a hello frame.
func (app *application) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	id, _ := r.Context().Value("account_id").(string)
	if id == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}

	conn.SetReadLimit(readLimit)
	conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	app.wsManager.register <- Client{ID: id, Socket: conn}

	go pingLoop(app.wsManager, conn, id)
	go app.handleWebSocketMessages(conn, id)
}

func pingLoop(ws *WebSocketManager, conn *websocket.Conn, id string) {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for range t.C {
		_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			_ = writeClose(conn, websocket.CloseGoingAway, "ping error")
			ws.unregister <- unreg{accountID: id, conn: conn}
			return
		}
	}
}

func (app *application) handleWebSocketMessages(conn *websocket.Conn, accountID string) {
	defer func() {
		app.wsManager.unregister <- unreg{accountID: accountID, conn: conn}
		_ = conn.Close()
	}()

	for {
		var msg models.Message
		if err := conn.ReadJSON(&msg); err != nil {
			log.Println("read json error:", err)
			_ = writeClose(conn, websocket.CloseNormalClosure, "read error")
			return
		}

		if msg.SenderID != accountID {
			log.Println("reject: sender_id != authenticated account")
			continue
		}
		if msg.RecipientID == "" || strings.TrimSpace(msg.MessageText) == "" {
			log.Println("reject: empty recipient or text")
			continue
		}

		// SendMessage stores the message and pushes it to the recipient.
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		_, err := app.messageService.SendMessage(ctx, msg)
		cancel()
		if err != nil {
			log.Println("save message error:", err)
			continue
		}
	}
}

func writeClose(conn *websocket.Conn, code int, reason string) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	return conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason))
}
