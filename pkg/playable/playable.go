package playable

import (
	"fmt"
	"time"

	"blackjack-server/pkg/deck"
	"github.com/google/uuid"
)

// NoSeat is used in log messages that do not concern a specific seat
const NoSeat = -1

// LogMessage is the format a game should send log messages in
// If Seats is empty, assume it's a general statement, otherwise the message will be rendered like "{player} did X, Y, Z"
type LogMessage struct {
	UUID    string       `json:"uuid"`
	Seats   []int        `json:"seats"`
	Cards   []*deck.Card `json:"cards"`
	Message string       `json:"message"`
	Time    time.Time    `json:"time"`
}

// Response is the envelope for every message the server sends to a client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Context string      `json:"context,omitempty"`
}

// response keys
const (
	KeyHandshake = "handshake"
	KeyState     = "state"
	KeyStatus    = "status"
	KeyError     = "error"
)

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   KeyStatus,
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// ErrorResponse wraps an error in a response
func ErrorResponse(err error) *Response {
	return &Response{
		Key:   KeyError,
		Value: err.Error(),
	}
}

// DataResponse returns a response carrying a payload
func DataResponse(key string, data interface{}) *Response {
	return &Response{
		Key:  key,
		Data: data,
	}
}

// SimpleLogMessage returns a new LogMessage
func SimpleLogMessage(seat int, format string, a ...interface{}) *LogMessage {
	var seats []int
	if seat > NoSeat {
		seats = []int{seat}
	}

	return &LogMessage{
		UUID:    uuid.New().String(),
		Seats:   seats,
		Message: fmt.Sprintf(format, a...),
		Time:    time.Now(),
	}
}

// CardLogMessage returns a new LogMessage that shows cards
func CardLogMessage(seat int, cards []*deck.Card, format string, a ...interface{}) *LogMessage {
	lm := SimpleLogMessage(seat, format, a...)
	lm.Cards = cards
	return lm
}
