package handlers

import (
	"log"

	"github.com/amrshakerr/editor_portfolio/realtime"
	websocketcontrib "github.com/gofiber/contrib/websocket"
)

// ServeRealtime registers a websocket subscriber on the change feed. The
// feed is public: it only ever says "a watched table changed", so there is
// nothing to authenticate.
func ServeRealtime(c *websocketcontrib.Conn) {
	client := &realtime.Client{Conn: c}
	realtime.Register <- client
	defer func() {
		realtime.Unregister <- client
		c.Close()
	}()

	// Subscribers never send anything meaningful; the read loop just
	// detects the close.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseAbnormalClosure) {
				log.Printf("Realtime subscriber closed: %v", err)
			}
			break
		}
	}
}
