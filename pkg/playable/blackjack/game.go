package blackjack

import (
	"strings"
	"unicode/utf8"

	"blackjack-server/internal/util"
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/playable"
	"github.com/sirupsen/logrus"
)

// NoTurn is the turn pointer when nobody is on the clock
const NoTurn = -1

// maxNameLength is the longest display name we keep
const maxNameLength = 32

// Game is a single blackjack table.
// Game is not safe for concurrent use; every call must be serialized by the owner.
type Game struct {
	options Options
	logger  logrus.FieldLogger

	// seats is indexed by seat id. Ascending seat order is join order.
	seats  []*Player
	dealer *Dealer
	deck   *deck.Deck
	phase  Phase
	turn   int

	logMessages []*playable.LogMessage
	results     []*RoundResult
	round       *roundInfo
}

// NewGame returns a new table in the lobby phase
func NewGame(logger logrus.FieldLogger, options Options) (*Game, error) {
	if err := options.validate(); err != nil {
		return nil, err
	}

	return &Game{
		options: options,
		logger:  logger,
		seats:   make([]*Player, options.MaxSeats),
		dealer:  &Dealer{Hand: deck.Hand{}},
		deck:    deck.New(options.Generator),
		phase:   PhaseLobby,
		turn:    NoTurn,
	}, nil
}

// Options returns the table options
func (g *Game) Options() Options {
	return g.options
}

// Phase returns the current phase
func (g *Game) Phase() Phase {
	return g.phase
}

// CurrentTurn returns the seat on the clock, or NoTurn
func (g *Game) CurrentTurn() int {
	return g.turn
}

// SeatedCount returns the number of players at the table
func (g *Game) SeatedCount() int {
	count := 0
	for _, p := range g.seats {
		if p != nil {
			count++
		}
	}

	return count
}

// Player returns a copy of the player in the seat
func (g *Game) Player(seat int) (*Player, error) {
	p, err := g.player(seat)
	if err != nil {
		return nil, err
	}

	return p.clone(), nil
}

func (g *Game) player(seat int) (*Player, error) {
	if seat < 0 || seat >= len(g.seats) || g.seats[seat] == nil {
		return nil, ErrSeatNotFound
	}

	return g.seats[seat], nil
}

// players returns the seated players in seat order
func (g *Game) players() []*Player {
	players := make([]*Player, 0, len(g.seats))
	for _, p := range g.seats {
		if p != nil {
			players = append(players, p)
		}
	}

	return players
}

// Join seats a new player in the lowest free seat
func (g *Game) Join(name string) (int, error) {
	seat := NoTurn
	for i, p := range g.seats {
		if p == nil {
			seat = i
			break
		}
	}

	if seat == NoTurn {
		return NoTurn, ErrTableFull
	}

	if g.phase != PhaseLobby {
		return NoTurn, ErrRoundInProgress
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = util.GetRandomName()
	}

	if utf8.RuneCountInString(name) > maxNameLength {
		name = string([]rune(name)[:maxNameLength])
	}

	g.seats[seat] = newPlayer(seat, name, g.options.StartingMoney)
	g.logger.WithFields(logrus.Fields{"seat": seat, "name": name}).Info("player joined")
	g.addLogMessages(playable.SimpleLogMessage(seat, "{} joined the table"))

	return seat, nil
}

// Leave removes the player from the table.
// If the player was on the clock, it counts as a stand.
func (g *Game) Leave(seat int) error {
	return g.atomically(func() error {
		p, err := g.player(seat)
		if err != nil {
			return err
		}

		wasOnTheClock := g.phase == PhasePlaying && g.turn == seat
		g.seats[seat] = nil
		g.logger.WithFields(logrus.Fields{"seat": seat, "name": p.Name, "phase": g.phase}).Info("player left")
		g.addLogMessages(playable.SimpleLogMessage(playable.NoSeat, "%s left the table", p.Name))

		if g.SeatedCount() == 0 {
			g.resetTable()
			return nil
		}

		switch g.phase {
		case PhaseLobby:
			g.checkLobbyReady()
		case PhaseBetting:
			return g.checkBetsConfirmed()
		case PhasePlaying:
			if wasOnTheClock {
				return g.advanceTurn()
			}
		case PhaseSettlement:
			g.checkContinued()
		}

		return nil
	})
}

// MarkReady marks the player ready in the lobby.
// Once every seated player is ready, betting opens.
func (g *Game) MarkReady(seat int) error {
	return g.atomically(func() error {
		p, err := g.player(seat)
		if err != nil {
			return err
		}

		if g.phase != PhaseLobby || p.Ready {
			return nil
		}

		p.Ready = true
		g.addLogMessages(playable.SimpleLogMessage(seat, "{} is ready"))
		g.checkLobbyReady()
		return nil
	})
}

// AdjustBet moves delta chips from the player's money into their bet (or back if negative)
func (g *Game) AdjustBet(seat int, delta int) error {
	return g.atomically(func() error {
		p, err := g.player(seat)
		if err != nil {
			return err
		}

		if g.phase != PhaseBetting || p.Ready {
			return nil
		}

		p.adjustBet(delta)
		return nil
	})
}

// ConfirmBet locks in the player's bet.
// Once every seated player confirmed, the cards are dealt.
func (g *Game) ConfirmBet(seat int) error {
	return g.atomically(func() error {
		p, err := g.player(seat)
		if err != nil {
			return err
		}

		if g.phase != PhaseBetting || p.Ready || p.Bet == 0 {
			return nil
		}

		p.Ready = true
		g.addLogMessages(playable.SimpleLogMessage(seat, "{} bet ${%d}", p.Bet))
		return g.checkBetsConfirmed()
	})
}

// Hit draws a card for the player on the clock
func (g *Game) Hit(seat int) error {
	return g.atomically(func() error {
		p, err := g.player(seat)
		if err != nil {
			return err
		}

		if g.phase != PhasePlaying || g.turn != seat || p.Busted {
			return nil
		}

		card, err := g.deck.Draw()
		if err != nil {
			return err
		}

		p.Hand.AddCard(card)
		if !IsBust(p.Hand) {
			g.addLogMessages(playable.CardLogMessage(seat, []*deck.Card{card}, "{} hit for %d", p.Total()))
			return nil
		}

		p.Busted = true
		g.addLogMessages(playable.CardLogMessage(seat, []*deck.Card{card}, "{} busted with %d", p.Total()))
		return g.advanceTurn()
	})
}

// Stand ends the turn of the player on the clock
func (g *Game) Stand(seat int) error {
	return g.atomically(func() error {
		if _, err := g.player(seat); err != nil {
			return err
		}

		if g.phase != PhasePlaying || g.turn != seat {
			return nil
		}

		g.addLogMessages(playable.SimpleLogMessage(seat, "{} stands"))
		return g.advanceTurn()
	})
}

// Continue acknowledges the settlement.
// Once every seated player acknowledged, the table returns to the lobby with a fresh deck.
func (g *Game) Continue(seat int) error {
	return g.atomically(func() error {
		p, err := g.player(seat)
		if err != nil {
			return err
		}

		if g.phase != PhaseSettlement || p.Ready {
			return nil
		}

		p.Ready = true
		g.checkContinued()
		return nil
	})
}

// SetMoney overrides a player's balance
func (g *Game) SetMoney(seat int, amount int) error {
	return g.atomically(func() error {
		p, err := g.player(seat)
		if err != nil {
			return err
		}

		if amount < 0 {
			return ErrInvalidAmount
		}

		g.logger.WithFields(logrus.Fields{"seat": seat, "from": p.Money, "to": amount}).Warn("balance overridden")
		p.Money = amount
		g.addLogMessages(playable.SimpleLogMessage(seat, "{} now has ${%d}", amount))
		return nil
	})
}

// Apply performs a parsed command on behalf of the seat
func (g *Game) Apply(seat int, cmd Command) error {
	switch cmd.Action {
	case ActionGet:
		_, err := g.player(seat)
		return err
	case ActionReady:
		return g.MarkReady(seat)
	case ActionIncreaseBet:
		return g.AdjustBet(seat, cmd.Amount)
	case ActionDecreaseBet:
		return g.AdjustBet(seat, -cmd.Amount)
	case ActionBet:
		return g.ConfirmBet(seat)
	case ActionHit:
		return g.Hit(seat)
	case ActionStand:
		return g.Stand(seat)
	case ActionContinue:
		return g.Continue(seat)
	}

	return ErrUnknownCommand
}

// TakeResults returns the rounds settled since the last call
func (g *Game) TakeResults() []*RoundResult {
	results := g.results
	g.results = nil
	return results
}

// allReady returns true if at least one player is seated and all of them are ready
func (g *Game) allReady() bool {
	players := g.players()
	if len(players) == 0 {
		return false
	}

	for _, p := range players {
		if !p.Ready {
			return false
		}
	}

	return true
}

func (g *Game) clearReady() {
	for _, p := range g.players() {
		p.Ready = false
	}
}

func (g *Game) setPhase(phase Phase) {
	g.logger.WithFields(logrus.Fields{"from": g.phase, "to": phase}).Debug("phase changed")
	g.phase = phase
}

func (g *Game) checkLobbyReady() {
	if !g.allReady() {
		return
	}

	g.clearReady()
	g.setPhase(PhaseBetting)
	g.addLogMessages(playable.SimpleLogMessage(playable.NoSeat, "Place your bets"))
}

func (g *Game) checkBetsConfirmed() error {
	if !g.allReady() {
		return nil
	}

	g.clearReady()
	return g.deal()
}

func (g *Game) checkContinued() {
	if !g.allReady() {
		return
	}

	for _, p := range g.players() {
		p.resetRound()
	}

	g.resetTable()
}

// resetTable clears the dealer, rebuilds the deck and returns to the lobby
func (g *Game) resetTable() {
	g.dealer.Hand.Clear()
	g.deck.Reset()
	g.turn = NoTurn
	g.round = nil
	g.setPhase(PhaseLobby)
}

// atomically runs fn and restores the table to its prior state if fn fails
func (g *Game) atomically(fn func() error) error {
	saved := g.clone()
	if err := fn(); err != nil {
		*g = *saved
		g.logger.WithError(err).Error("command failed, table state restored")
		return err
	}

	return nil
}

func (g *Game) clone() *Game {
	cp := *g
	cp.seats = make([]*Player, len(g.seats))
	for i, p := range g.seats {
		if p != nil {
			cp.seats[i] = p.clone()
		}
	}

	cp.dealer = g.dealer.clone()
	cp.deck = g.deck.Clone()
	cp.logMessages = append([]*playable.LogMessage(nil), g.logMessages...)
	cp.results = append([]*RoundResult(nil), g.results...)
	if g.round != nil {
		round := *g.round
		cp.round = &round
	}

	return &cp
}
