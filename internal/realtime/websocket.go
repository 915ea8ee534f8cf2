package realtime

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// Upgrade gates the /ws route to websocket upgrade requests.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler runs the per-connection read loop. Read errors end the connection;
// everything else is handled (or swallowed) by the relay.
func Handler(relay *Relay) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := relay.Hub().Register(conn)
		defer relay.Hub().Unregister(client)

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			relay.HandleEnvelope(client, data)
		}
	})
}
