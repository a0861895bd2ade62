package cli

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <code>",
		Short: "Stream live events from a session",
		Long: `watch connects to the session's websocket and prints every event
and snapshot as it arrives. Press Ctrl-C to stop.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wsURL, err := watchURL(cfg.ServerURL, args[0], cfg.PlayerID)
			if err != nil {
				return err
			}

			conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
			if err != nil {
				return fmt.Errorf("failed to connect: %w", err)
			}
			defer func() { _ = conn.Close() }()

			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, os.Interrupt)

			done := make(chan struct{})
			go func() {
				defer close(done)
				for {
					_, data, err := conn.ReadMessage()
					if err != nil {
						return
					}
					printWireMessage(data)
				}
			}()

			select {
			case <-done:
				return nil
			case <-interrupt:
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				<-done
				return nil
			}
		},
	}
}

// watchURL converts the HTTP server URL into the websocket watch endpoint
func watchURL(server, code, playerID string) (string, error) {
	u, err := url.Parse(server)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + fmt.Sprintf("/api/v1/sessions/%s/watch", code)
	if playerID != "" {
		q := u.Query()
		q.Set("player_id", playerID)
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

func printWireMessage(data []byte) {
	if cfg.Output == "json" {
		fmt.Println(string(data))
		return
	}

	var msg struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		fmt.Println(string(data))
		return
	}

	if msg.Type == "snapshot" {
		var snap Snapshot
		if err := json.Unmarshal(msg.Payload, &snap); err == nil {
			fmt.Printf("-- snapshot: phase=%s pot=%d hand=%d\n", snap.Phase, snap.Pot, snap.HandNumber)
			return
		}
	}

	if len(msg.Payload) > 0 {
		fmt.Printf("[%s] %s\n", msg.Type, string(msg.Payload))
	} else {
		fmt.Printf("[%s]\n", msg.Type)
	}
}
