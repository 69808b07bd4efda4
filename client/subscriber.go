package client

import (
	"log"
	"sync"

	"github.com/fasthttp/websocket"
)

// Subscription is a live connection to the server's change feed.
type Subscription struct {
	conn      *websocket.Conn
	closeOnce sync.Once
}

// Subscribe dials the feed and invokes onChange with the table name for
// every change event until the connection drops or Close is called. The
// callback must treat the event as a refetch hint only.
func Subscribe(wsURL string, onChange func(table string)) (*Subscription, error) {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return nil, err
	}

	sub := &Subscription{conn: conn}

	go func() {
		for {
			var event struct {
				Table string `json:"table"`
			}
			if err := conn.ReadJSON(&event); err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return
				}
				log.Printf("Change feed closed: %v", err)
				return
			}
			onChange(event.Table)
		}
	}()

	return sub, nil
}

// Close releases the connection. Idempotent.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.conn.Close()
	})
}
