package blackjack

import (
	"time"

	"blackjack-server/pkg/deck"
)

// RoundResult is the record of a settled round
type RoundResult struct {
	UUID          string        `json:"uuid"`
	DeckHash      string        `json:"deckHash"`
	DealerCards   string        `json:"dealerCards"`
	DealerTotal   int           `json:"dealerTotal"`
	DealerNatural bool          `json:"dealerNatural"`
	Seats         []*SeatResult `json:"seats"`
	Started       time.Time     `json:"started"`
	Ended         time.Time     `json:"ended"`
}

// SeatResult is how a single seat fared in a round
type SeatResult struct {
	Seat    int     `json:"seat"`
	Name    string  `json:"name"`
	Bet     int     `json:"bet"`
	Cards   string  `json:"cards"`
	Total   int     `json:"total"`
	Natural bool    `json:"natural"`
	Busted  bool    `json:"busted"`
	Outcome Outcome `json:"outcome"`

	// Delta is the change relative to the balance before the bet was placed
	Delta int `json:"delta"`

	// Money is the balance after settlement
	Money int `json:"money"`
}

func newRoundResult(round *roundInfo, dealer *Dealer, dealerNatural bool) *RoundResult {
	r := &RoundResult{
		DealerCards:   deck.CardsToString(dealer.Hand),
		DealerTotal:   dealer.Total(),
		DealerNatural: dealerNatural,
		Seats:         make([]*SeatResult, 0),
		Ended:         time.Now(),
	}

	if round != nil {
		r.UUID = round.UUID
		r.DeckHash = round.DeckHash
		r.Started = round.Started
	}

	return r
}

func (r *RoundResult) addSeat(p *Player, bet int, delta int) {
	r.Seats = append(r.Seats, &SeatResult{
		Seat:    p.Seat,
		Name:    p.Name,
		Bet:     bet,
		Cards:   deck.CardsToString(p.Hand),
		Total:   p.Total(),
		Natural: p.Natural,
		Busted:  p.Busted,
		Outcome: p.Outcome,
		Delta:   delta,
		Money:   p.Money,
	})
}
