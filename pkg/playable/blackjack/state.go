package blackjack

import (
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/playable"
)

// SchemaVersion is bumped whenever State changes incompatibly
const SchemaVersion = 1

// State is the snapshot sent to clients after every command
type State struct {
	Version int   `json:"version"`
	Phase   Phase `json:"phase"`

	// CurrentTurn is null when nobody is on the clock
	CurrentTurn *int `json:"currentTurn"`

	// Seat is the requesting client's seat, null for spectators
	Seat *int `json:"seat"`

	MaxSeats       int                    `json:"maxSeats"`
	Players        []*PlayerState         `json:"players"`
	Dealer         *DealerState           `json:"dealer"`
	CardsRemaining int                    `json:"cardsRemaining"`
	Actions        []Action               `json:"actions"`
	Log            []*playable.LogMessage `json:"log"`
}

// PlayerState is a seated player in the snapshot
type PlayerState struct {
	Seat    int          `json:"seat"`
	Name    string       `json:"name"`
	Money   int          `json:"money"`
	Bet     int          `json:"bet"`
	Ready   bool         `json:"ready"`
	Busted  bool         `json:"busted"`
	Natural bool         `json:"natural"`
	Outcome Outcome      `json:"outcome"`
	Cards   []*CardState `json:"cards"`
	Total   int          `json:"total"`
}

// DealerState is the dealer in the snapshot
type DealerState struct {
	Cards []*CardState `json:"cards"`

	// Total only counts face up cards
	Total int `json:"total"`
}

// CardState is a card in the snapshot. Face down cards carry no rank or suit.
type CardState struct {
	Rank   int       `json:"rank,omitempty"`
	Suit   deck.Suit `json:"suit,omitempty"`
	Hidden bool      `json:"hidden,omitempty"`
}

func newCardStates(hand deck.Hand) []*CardState {
	cards := make([]*CardState, len(hand))
	for i, card := range hand {
		if card.Hidden {
			cards[i] = &CardState{Hidden: true}
			continue
		}

		cards[i] = &CardState{Rank: card.Rank, Suit: card.Suit}
	}

	return cards
}

// State returns the snapshot as seen from the seat
func (g *Game) State(seat int) *State {
	state := g.PublicState()
	if _, err := g.player(seat); err == nil {
		s := seat
		state.Seat = &s
		state.Actions = append(state.Actions, g.actionsForSeat(seat)...)
	}

	return state
}

// PublicState returns the snapshot as seen by a spectator
func (g *Game) PublicState() *State {
	var currentTurn *int
	if g.turn != NoTurn {
		turn := g.turn
		currentTurn = &turn
	}

	players := make([]*PlayerState, 0, len(g.seats))
	for _, p := range g.players() {
		players = append(players, &PlayerState{
			Seat:    p.Seat,
			Name:    p.Name,
			Money:   p.Money,
			Bet:     p.Bet,
			Ready:   p.Ready,
			Busted:  p.Busted,
			Natural: p.Natural,
			Outcome: p.Outcome,
			Cards:   newCardStates(p.Hand),
			Total:   p.Total(),
		})
	}

	return &State{
		Version:     SchemaVersion,
		Phase:       g.phase,
		CurrentTurn: currentTurn,
		MaxSeats:    len(g.seats),
		Players:     players,
		Dealer: &DealerState{
			Cards: newCardStates(g.dealer.Hand),
			Total: g.dealer.VisibleTotal(),
		},
		CardsRemaining: g.deck.CardsLeft(),
		Actions:        []Action{},
		Log:            append([]*playable.LogMessage(nil), g.logMessages...),
	}
}
