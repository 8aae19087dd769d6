package room

import (
	"errors"
	"strings"

	"blackjack-server/pkg/playable"
	"github.com/synacor/argon2id"
)

// ErrMalformedHandshake is returned when the first message is not "<lobby>,<name>"
var ErrMalformedHandshake = errors.New("malformed handshake")

// HandshakeStatus is the outcome of a handshake
type HandshakeStatus string

// HandshakeStatus constants
const (
	StatusSeated     HandshakeStatus = "seated"
	StatusBadLobby   HandshakeStatus = "badLobby"
	StatusFull       HandshakeStatus = "full"
	StatusInProgress HandshakeStatus = "inProgress"
	StatusAdmin      HandshakeStatus = "admin"
)

// codes for everything but seated, where the code is the seat
const (
	CodeBadLobby   = -1
	CodeFull       = -2
	CodeInProgress = -3
	CodeAdmin      = -4
)

// HandshakeResult is the reply to a handshake
type HandshakeResult struct {
	Status HandshakeStatus `json:"status"`

	// Seat is playable.NoSeat unless Status is seated
	Seat int `json:"seat"`

	// Code is the seat when seated, otherwise a negative code
	Code int `json:"code"`
}

func seatedResult(seat int) HandshakeResult {
	return HandshakeResult{Status: StatusSeated, Seat: seat, Code: seat}
}

func rejectedResult(status HandshakeStatus, code int) HandshakeResult {
	return HandshakeResult{Status: status, Seat: playable.NoSeat, Code: code}
}

// ParseHandshake splits the handshake on the first comma
func ParseHandshake(msg string) (lobbyID string, name string, err error) {
	i := strings.IndexByte(msg, ',')
	if i < 0 {
		return "", "", ErrMalformedHandshake
	}

	return msg[:i], msg[i+1:], nil
}

// Lobby is the shared secret clients must know to sit down, plus the admin credential
type Lobby struct {
	id           string
	adminKeyHash string
}

// NewLobby returns a lobby. If adminKeyHash is empty, admin sessions are disabled
func NewLobby(id, adminKeyHash string) *Lobby {
	return &Lobby{
		id:           id,
		adminKeyHash: adminKeyHash,
	}
}

// Matches returns true if the lobby id is correct
func (l *Lobby) Matches(id string) bool {
	return l.id == id
}

// IsAdminKey returns true if the key verifies against the admin hash
func (l *Lobby) IsAdminKey(key string) bool {
	if l.adminKeyHash == "" || key == "" {
		return false
	}

	return argon2id.Compare(l.adminKeyHash, key) == nil
}
