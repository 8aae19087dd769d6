package mux

import (
	"encoding/json"
	"net/http"
	"time"

	"blackjack-server/pkg/room"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10
const maxMessageSize = 1024

func (m *Mux) getWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		conn.SetReadLimit(maxMessageSize)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		client := room.NewClient(conn)
		m.pitBoss.ClientConnected(client)

		readDone := make(chan bool)
		writeDone := make(chan bool)
		go func() {
			m.webSocketWriteLoop(client, readDone)
			close(writeDone)
		}()

		m.webSocketReadLoop(client)
		close(readDone)
		m.pitBoss.ClientDisconnected(client)
		<-writeDone
	}
}

func (m *Mux) webSocketWriteLoop(client *room.Client, readDone chan bool) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = client.Conn.Close()
	}()

	for {
		select {
		case <-ticker.C:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-readDone:
			return
		case reason := <-client.Close:
			if !writePending(client) {
				return
			}

			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = client.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))

			// wait for the close frame
			select {
			case <-readDone:
			case <-time.After(time.Second):
			}
			return
		case msg := <-client.SendChan():
			if !writeMessage(client, msg) {
				return
			}
		}
	}
}

// writePending writes whatever is already queued for the client
func writePending(client *room.Client) bool {
	for {
		select {
		case msg := <-client.SendChan():
			if !writeMessage(client, msg) {
				return false
			}
		default:
			return true
		}
	}
}

func writeMessage(client *room.Client, msg interface{}) bool {
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		msgBytes, _ := json.Marshal(msg)
		logrus.WithField("message", string(msgBytes)).WithField("client", client.ID()).Trace("sending message to client")
	}

	_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := client.Conn.WriteJSON(msg); err != nil {
		logrus.WithError(err).WithField("client", client.ID()).Error("could not write message")
		return false
	}

	return true
}

func (m *Mux) webSocketReadLoop(client *room.Client) {
	for {
		msgType, data, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).WithField("client", client.ID()).Info("connection lost")
			}

			client.CloseError = err
			return
		}

		if msgType != websocket.TextMessage {
			continue
		}

		client.ReceivedMessage(string(data))
	}
}
