package events

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event types pushed to connected dashboard clients.
const (
	EventPaymentSettled      = "payment_settled"
	EventReceiptGenerated    = "receipt_generated"
	EventReceiptEmailed      = "receipt_emailed"
	EventRefundRequested     = "refund_requested"
	EventRefundProcessed     = "refund_processed"
	EventReservationCreated  = "reservation_created"
	EventReservationCanceled = "reservation_cancelled"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

const writeTimeout = 5 * time.Second

// client wraps a connection with its own write mutex; gorilla conns do
// not allow concurrent writers.
type client struct {
	conn *websocket.Conn
	role string
	mu   sync.Mutex
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub holds every connected dashboard client (receptionist, admin,
// payment_manager) and fans events out to them.
type Hub struct {
	clients map[*websocket.Conn]*client
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]*client),
}

// RegisterClient adds a connection to the set with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = &client{conn: conn, role: role}
}

// UnregisterClient removes and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastPaymentSettled notifies clients of a settlement decision.
func BroadcastPaymentSettled(data interface{}) {
	broadcast(Message{Event: EventPaymentSettled, Data: data})
}

// BroadcastReceiptGenerated notifies clients a receipt was issued.
func BroadcastReceiptGenerated(data interface{}) {
	broadcast(Message{Event: EventReceiptGenerated, Data: data})
}

// BroadcastReceiptEmailed notifies clients a receipt email went out.
func BroadcastReceiptEmailed(data interface{}) {
	broadcast(Message{Event: EventReceiptEmailed, Data: data})
}

// BroadcastRefundRequested notifies clients of a new refund request.
func BroadcastRefundRequested(data interface{}) {
	broadcast(Message{Event: EventRefundRequested, Data: data})
}

// BroadcastRefundProcessed notifies clients of an adjudicated refund.
func BroadcastRefundProcessed(data interface{}) {
	broadcast(Message{Event: EventRefundProcessed, Data: data})
}

// BroadcastReservationCreated notifies clients of a new reservation.
func BroadcastReservationCreated(data interface{}) {
	broadcast(Message{Event: EventReservationCreated, Data: data})
}

// BroadcastReservationCancelled notifies clients of a cancellation.
func BroadcastReservationCancelled(data interface{}) {
	broadcast(Message{Event: EventReservationCanceled, Data: data})
}

// broadcast fans the message out to every client. The client set is
// copied under the hub lock and the writes happen outside it, each
// bounded by a write deadline, so one stalled socket cannot hold up
// the caller or the other clients. Failed connections are dropped.
func broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	hub.mutex.Lock()
	clients := make([]*client, 0, len(hub.clients))
	for _, cl := range hub.clients {
		clients = append(clients, cl)
	}
	hub.mutex.Unlock()

	for _, cl := range clients {
		if err := cl.write(data); err != nil {
			log.Printf("Error sending message to client: %v", err)
			UnregisterClient(cl.conn)
		}
	}
}
