package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"blackjack-server/pkg/playable"
	"blackjack-server/pkg/room"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/synacor/argon2id"
	"golang.org/x/term"
)

const minKeyLength = 12

var command = flag.String("c", "session", "specifies the command (session, hash)")
var addr = flag.String("addr", "ws://localhost:5555/ws", "the websocket URL of the server")
var lobby = flag.String("lobby", "", "the lobby id of the server")

// serverResponse mirrors playable.Response with the payload left undecoded
type serverResponse struct {
	Key   string          `json:"key"`
	Value string          `json:"value"`
	Data  json.RawMessage `json:"data"`
}

func main() {
	flag.Parse()

	switch *command {
	case "hash":
		key := getKey("New admin key")
		if key == "" {
			os.Exit(1)
		}

		if confirm := getKey("Confirm admin key"); confirm != key {
			logrus.Fatal("keys do not match")
		}

		hash, err := argon2id.DefaultHashPassword(key)
		if err != nil {
			logrus.WithError(err).Fatal("could not hash key")
		}

		fmt.Printf("adminKeyHash: %s\n", hash)
	case "session":
		key := getKey("Admin key")
		if key == "" {
			os.Exit(1)
		}

		if err := session(key); err != nil {
			logrus.WithError(err).Fatal("admin session failed")
		}
	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

func session(key string) error {
	conn, _, err := websocket.DefaultDialer.Dial(*addr, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(*lobby+","+key)); err != nil {
		return err
	}

	var resp serverResponse
	if err := conn.ReadJSON(&resp); err != nil {
		return err
	}

	var result room.HandshakeResult
	if resp.Key != playable.KeyHandshake || json.Unmarshal(resp.Data, &result) != nil {
		return fmt.Errorf("unexpected reply: %s %s", resp.Key, resp.Value)
	}

	if result.Status != room.StatusAdmin {
		return fmt.Errorf("not an admin session: %s (%d)", result.Status, result.Code)
	}

	fmt.Println("admin session open. commands: get, set_money <seat> <amount>, shutdown")

	done := make(chan bool)
	go func() {
		defer close(done)
		for {
			var resp serverResponse
			if err := conn.ReadJSON(&resp); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					logrus.WithError(err).Warn("connection closed")
				}

				return
			}

			printResponse(&resp)
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		cmd := strings.TrimSpace(scanner.Text())
		if cmd == "" {
			continue
		}

		if err := conn.WriteMessage(websocket.TextMessage, []byte(cmd)); err != nil {
			return err
		}

		if cmd == string(room.AdminShutdown) {
			break
		}
	}

	<-done
	return scanner.Err()
}

func printResponse(resp *serverResponse) {
	switch resp.Key {
	case playable.KeyError:
		_, _ = fmt.Fprintf(os.Stderr, "error: %s\n", resp.Value)
	case playable.KeyState:
		var pretty interface{}
		if err := json.Unmarshal(resp.Data, &pretty); err != nil {
			fmt.Println(string(resp.Data))
			return
		}

		b, _ := json.MarshalIndent(pretty, "", "  ")
		fmt.Println(string(b))
	default:
		fmt.Printf("%s: %s\n", resp.Key, resp.Value)
	}
}

func getKey(prompt string) string {
	for {
		fmt.Printf("%s: ", prompt)
		keyBytes, err := term.ReadPassword(0)
		if err != nil {
			logrus.WithError(err).Warn("could not read key")
			return ""
		}
		fmt.Println("")

		key := strings.TrimRight(string(keyBytes), "\r\n")

		if key == "" {
			return ""
		}

		if *command == "hash" && len(key) < minKeyLength {
			_, _ = fmt.Fprintf(os.Stderr, "key must be %d or more characters\n", minKeyLength)
			continue
		}

		return key
	}
}
