package notify

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	RoleCustomer   = "customer"
	RoleTechnician = "technician"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The browser front end runs on a different origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is the middleman between one websocket connection and the hub.
type Client struct {
	hub *Hub

	conn *websocket.Conn

	// Buffered channel of outbound messages.
	send chan []byte

	// Set once the subscribe message arrives.
	key        subscriber
	subscribed bool
}

// inboundMessage covers the two client-to-server shapes: subscribe and
// ping.
type inboundMessage struct {
	Type         string `json:"type"`
	CustomerID   uint   `json:"customerId,omitempty"`
	TechnicianID uint   `json:"technicianId,omitempty"`
}

// readPump consumes subscribe/ping messages until the connection drops.
func (c *Client) readPump() {
	defer func() {
		if c.subscribed {
			c.hub.unregister <- c
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ws error: %v", err)
			}
			break
		}

		var msg inboundMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "subscribe":
			switch {
			case msg.CustomerID != 0:
				c.key = subscriber{role: RoleCustomer, id: msg.CustomerID}
			case msg.TechnicianID != 0:
				c.key = subscriber{role: RoleTechnician, id: msg.TechnicianID}
			default:
				continue
			}
			c.subscribed = true
			c.hub.register <- c

		case "ping":
			c.sendJSON(map[string]string{"type": "pong"})
		}
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) sendJSON(v any) {
	msg, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

// ServeWs upgrades an HTTP request to a websocket listener connection.
// The connection stays anonymous until its subscribe message arrives.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	client := &Client{hub: hub, conn: conn, send: make(chan []byte, 32)}

	go client.writePump()
	go client.readPump()
}
