package realtime

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// ChangeEvent tells subscribers that some row in a watched table changed.
// It carries no row data on purpose: subscribers refetch, they never trust
// a pushed payload.
type ChangeEvent struct {
	Table string `json:"table"`
}

type Client struct {
	Conn *websocket.Conn
}

var subscribers = make(map[*websocket.Conn]bool)
var subscribersMu sync.RWMutex

var Register = make(chan *Client)
var Unregister = make(chan *Client)
var changes = make(chan ChangeEvent, 16)

// Publish queues a change notification for every connected subscriber.
// Safe to call from request handlers; never blocks a handler on a slow
// websocket peer.
func Publish(table string) {
	select {
	case changes <- ChangeEvent{Table: table}:
	default:
		log.Printf("⚠️ Realtime change queue full, dropping notification for table %s", table)
	}
}

func RunHub() {
	for {
		select {
		case client := <-Register:
			subscribersMu.Lock()
			subscribers[client.Conn] = true
			subscribersMu.Unlock()
			log.Printf("Realtime subscriber connected (%d active)", subscriberCount())
		case client := <-Unregister:
			subscribersMu.Lock()
			delete(subscribers, client.Conn)
			subscribersMu.Unlock()
			log.Printf("Realtime subscriber disconnected (%d active)", subscriberCount())
		case event := <-changes:
			broadcast(event)
		}
	}
}

func subscriberCount() int {
	subscribersMu.RLock()
	defer subscribersMu.RUnlock()
	return len(subscribers)
}

func broadcast(event ChangeEvent) {
	subscribersMu.RLock()
	conns := make([]*websocket.Conn, 0, len(subscribers))
	for conn := range subscribers {
		conns = append(conns, conn)
	}
	subscribersMu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("Error notifying realtime subscriber: %v", err)
			conn.Close()
			subscribersMu.Lock()
			delete(subscribers, conn)
			subscribersMu.Unlock()
		}
	}
}
