package room

import (
	"fmt"

	"blackjack-server/pkg/playable"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close receives the reason when the server wants the connection closed
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	uuid    string
	seat    int
	name    string
	isAdmin bool
	pitBoss *PitBoss

	// handshook and closing are only touched by the read loop
	handshook bool
	closing   bool
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		Conn:  conn,
		send:  make(chan interface{}, 256),
		Close: make(chan string, 1),
		uuid:  uuid.New().String(),
		seat:  playable.NoSeat,
	}
}

// Send send a message to the web client
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// Disconnect asks the write loop to close the connection once pending messages are written
func (c *Client) Disconnect(reason string) {
	select {
	case c.Close <- reason:
	default:
	}
}

// ID returns the connection id
func (c *Client) ID() string {
	return c.uuid
}

// Seat returns the client's seat, or playable.NoSeat
func (c *Client) Seat() int {
	return c.seat
}

// IsAdmin returns true if the client opened an admin session
func (c *Client) IsAdmin() bool {
	return c.isAdmin
}

// String returns a traceable identifier for the client
// NOTE: must only be called from the client's read loop
func (c *Client) String() string {
	if c.isAdmin {
		return fmt.Sprintf("admin:%s", c.uuid)
	}

	return fmt.Sprintf("%s:%d:%s", c.name, c.seat, c.uuid)
}

// closeWith queues a final message and closes the connection
func (c *Client) closeWith(reason string, msg interface{}) {
	if msg != nil {
		c.Send(msg)
	}

	c.closing = true
	c.Disconnect(reason)
}

// ReceivedMessage is called when the server receives a message from a connected client
// The first message is the handshake.
func (c *Client) ReceivedMessage(msg string) {
	if c.pitBoss == nil || c.closing {
		return
	}

	if !c.handshook {
		c.handshook = true
		c.pitBoss.handshake(c, msg)
		return
	}

	if c.isAdmin {
		c.pitBoss.adminCommand(c, msg)
		return
	}

	c.pitBoss.command(c, msg)
}
