package blackjack

import (
	"encoding/json"
	"fmt"

	"blackjack-server/pkg/deck"
)

// Outcome is how a player's bet was settled
type Outcome int

// Outcome constants
const (
	OutcomeNone Outcome = iota
	OutcomeLost
	OutcomePush
	OutcomeWon
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeLost:
		return "lost"
	case OutcomePush:
		return "push"
	case OutcomeWon:
		return "won"
	}

	panic(fmt.Sprintf("invalid outcome: %d", o))
}

// ParseOutcome returns the outcome with the name
func ParseOutcome(s string) (Outcome, error) {
	for _, o := range []Outcome{OutcomeNone, OutcomeLost, OutcomePush, OutcomeWon} {
		if o.String() == s {
			return o, nil
		}
	}

	return OutcomeNone, fmt.Errorf("invalid outcome: %q", s)
}

// MarshalJSON encodes the outcome by name
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON decodes the outcome from its name
func (o *Outcome) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}

	outcome, err := ParseOutcome(name)
	if err != nil {
		return err
	}

	*o = outcome
	return nil
}

// Player is a seated participant
type Player struct {
	Seat  int
	Name  string
	Money int
	Bet   int

	// Ready is the per-phase acknowledgement: ready in the lobby, bet confirmed while betting,
	// continue after settlement
	Ready bool

	Busted bool

	// Natural marks a two-card 21. The seat is skipped in turn order and settled with the dealer.
	Natural bool

	Outcome Outcome
	Hand    deck.Hand
}

func newPlayer(seat int, name string, money int) *Player {
	return &Player{
		Seat:  seat,
		Name:  name,
		Money: money,
		Hand:  deck.Hand{},
	}
}

// Total returns the best total of the player's hand
func (p *Player) Total() int {
	return Total(p.Hand)
}

// adjustBet moves chips between the player's money and bet.
// The delta is clamped so neither goes negative. Returns the applied delta.
func (p *Player) adjustBet(delta int) int {
	if delta > p.Money {
		delta = p.Money
	}

	if -delta > p.Bet {
		delta = -p.Bet
	}

	p.Money -= delta
	p.Bet += delta
	return delta
}

// payout settles the bet for the outcome and returns the net change relative to the pre-bet balance
func (p *Player) payout(outcome Outcome) int {
	bet := p.Bet
	p.Outcome = outcome
	p.Bet = 0

	switch outcome {
	case OutcomeWon:
		p.Money += bet * 2
		return bet
	case OutcomePush:
		p.Money += bet
		return 0
	}

	return -bet
}

func (p *Player) resetRound() {
	p.Ready = false
	p.Busted = false
	p.Natural = false
	p.Outcome = OutcomeNone
	p.Hand.Clear()
}

func (p *Player) clone() *Player {
	cp := *p
	cp.Hand = p.Hand.Clone()
	return &cp
}

// Dealer holds the house hand
type Dealer struct {
	Hand deck.Hand
}

// Total returns the best total of every card, including a hidden one
func (d *Dealer) Total() int {
	return Total(d.Hand)
}

// VisibleTotal returns the total of the face up cards
func (d *Dealer) VisibleTotal() int {
	return Total(d.Hand.Visible())
}

// shouldHit returns true while the dealer must keep drawing
func (d *Dealer) shouldHit(hitSoft17 bool) bool {
	total := d.Total()
	if total < dealerStandsOn {
		return true
	}

	return hitSoft17 && total == dealerStandsOn && IsSoft(d.Hand)
}

func (d *Dealer) clone() *Dealer {
	return &Dealer{Hand: d.Hand.Clone()}
}
