package room

import (
	"errors"
	"sync"

	"blackjack-server/pkg/playable"
	"blackjack-server/pkg/playable/blackjack"
	"github.com/sirupsen/logrus"
)

// PitBoss keeps track of the connected clients and routes their messages to the dealer
type PitBoss struct {
	logger logrus.FieldLogger
	lobby  *Lobby
	dealer *Dealer

	lock    sync.RWMutex
	clients map[*Client]bool

	shutdown     chan bool
	shutdownOnce sync.Once
}

// NewPitBoss returns a new pit boss for the lobby
func NewPitBoss(logger logrus.FieldLogger, lobby *Lobby, dealer *Dealer) *PitBoss {
	return &PitBoss{
		logger:   logger,
		lobby:    lobby,
		dealer:   dealer,
		clients:  make(map[*Client]bool),
		shutdown: make(chan bool),
	}
}

// Dealer returns the table's dealer
func (p *PitBoss) Dealer() *Dealer {
	return p.dealer
}

// Clients will return a slice of connected (at the time) clients
func (p *PitBoss) Clients() []*Client {
	p.lock.RLock()
	defer p.lock.RUnlock()

	clients := make([]*Client, 0, len(p.clients))
	for client := range p.clients {
		clients = append(clients, client)
	}

	return clients
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.lock.Lock()
	client.pitBoss = p
	p.clients[client] = true
	p.lock.Unlock()

	p.logger.WithField("client", client.String()).Debug("client connected")
}

// ClientDisconnected is called when a client disconnects from the server
// A seated client leaves the table.
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.lock.Lock()
	delete(p.clients, client)
	p.lock.Unlock()

	log := p.logger.WithField("client", client.String())
	if client.CloseError != nil {
		log = log.WithError(client.CloseError)
	}

	log.Debug("client disconnected")

	if client.seat == playable.NoSeat {
		return
	}

	if err := p.dealer.Leave(client.seat); err != nil {
		log.WithError(err).Error("could not remove player from the table")
	}

	client.seat = playable.NoSeat
}

// Shutdown closes every client and signals ShutdownRequested
func (p *PitBoss) Shutdown() {
	p.shutdownOnce.Do(func() {
		p.logger.Warn("shutting down")
		for _, client := range p.Clients() {
			client.Disconnect("server is shutting down")
		}

		close(p.shutdown)
	})
}

// ShutdownRequested is closed once an admin asks the server to shut down
func (p *PitBoss) ShutdownRequested() <-chan bool {
	return p.shutdown
}

// NOTE: must only be called from the client's read loop
func (p *PitBoss) handshake(c *Client, msg string) {
	lobbyID, name, err := ParseHandshake(msg)
	if err != nil {
		p.logger.WithField("client", c.String()).WithError(err).Info("rejected handshake")
		c.closeWith("malformed handshake", playable.ErrorResponse(err))
		return
	}

	if !p.lobby.Matches(lobbyID) {
		c.closeWith("invalid lobby", handshakeResponse(rejectedResult(StatusBadLobby, CodeBadLobby)))
		return
	}

	if p.lobby.IsAdminKey(name) {
		c.isAdmin = true
		p.logger.WithField("client", c.String()).Warn("admin session opened")
		c.Send(handshakeResponse(rejectedResult(StatusAdmin, CodeAdmin)))
		return
	}

	seat, err := p.dealer.Join(name)
	switch {
	case errors.Is(err, blackjack.ErrTableFull):
		c.closeWith("table is full", handshakeResponse(rejectedResult(StatusFull, CodeFull)))
		return
	case errors.Is(err, blackjack.ErrRoundInProgress):
		c.closeWith("round in progress", handshakeResponse(rejectedResult(StatusInProgress, CodeInProgress)))
		return
	case err != nil:
		p.logger.WithError(err).Error("could not seat player")
		c.closeWith("internal error", playable.ErrorResponse(err))
		return
	}

	c.seat = seat
	c.name = name
	p.logger.WithField("client", c.String()).Info("player seated")
	c.Send(handshakeResponse(seatedResult(seat)))
}

// NOTE: must only be called from the client's read loop
func (p *PitBoss) command(c *Client, msg string) {
	state, err := p.dealer.Apply(c.seat, msg)
	if errors.Is(err, blackjack.ErrUnknownCommand) {
		p.logger.WithField("client", c.String()).WithError(err).Info("protocol error")
		c.closeWith("unknown command", playable.ErrorResponse(err))
		return
	}

	if err != nil {
		p.logger.WithField("client", c.String()).WithError(err).Error("could not apply command")
		c.Send(playable.ErrorResponse(err))
	}

	if state != nil {
		c.Send(playable.DataResponse(playable.KeyState, state))
	}
}

// NOTE: must only be called from the client's read loop
func (p *PitBoss) adminCommand(c *Client, msg string) {
	cmd, err := ParseAdminCommand(msg)
	if err != nil {
		c.Send(playable.ErrorResponse(err))
		return
	}

	log := p.logger.WithFields(logrus.Fields{"client": c.String(), "command": cmd.Action})
	switch cmd.Action {
	case AdminShutdown:
		log.Warn("shutdown requested")
		c.Send(playable.OK(string(AdminShutdown)))
		p.Shutdown()
	case AdminGet:
		c.Send(playable.DataResponse(playable.KeyState, p.dealer.PublicState()))
	case AdminSetMoney:
		state, err := p.dealer.SetMoney(cmd.Seat, cmd.Amount)
		if err != nil {
			log.WithError(err).Info("could not set money")
			c.Send(playable.ErrorResponse(err))
			return
		}

		c.Send(playable.DataResponse(playable.KeyState, state))
	}
}

func handshakeResponse(result HandshakeResult) *playable.Response {
	return playable.DataResponse(playable.KeyHandshake, result)
}
