package blackjack

import (
	"time"

	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/playable"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type roundInfo struct {
	UUID     string
	DeckHash string
	Started  time.Time
}

// deal shuffles and deals two cards to the dealer and to every seated player.
// NOTE: must only be called once every bet is confirmed
func (g *Game) deal() error {
	players := g.players()
	if !g.deck.CanDraw(2 * (len(players) + 1)) {
		return deck.ErrEndOfDeck
	}

	g.deck.Shuffle()
	g.round = &roundInfo{
		UUID:     uuid.New().String(),
		DeckHash: g.deck.HashCode(),
		Started:  time.Now(),
	}

	g.logger.WithFields(logrus.Fields{
		"round":   g.round.UUID,
		"deck":    g.round.DeckHash,
		"players": len(players),
	}).Info("dealing")

	for i := 0; i < 2; i++ {
		if err := g.drawInto(&g.dealer.Hand); err != nil {
			return err
		}
	}

	g.dealer.Hand[1].Hidden = true

	for _, p := range players {
		for i := 0; i < 2; i++ {
			if err := g.drawInto(&p.Hand); err != nil {
				return err
			}
		}
	}

	g.addLogMessages(playable.CardLogMessage(playable.NoSeat, g.dealer.Hand.Visible(), "Dealer shows"))

	if IsNatural(g.dealer.Hand) {
		g.dealer.Hand.Reveal()
		g.addLogMessages(playable.CardLogMessage(playable.NoSeat, g.dealer.Hand, "Dealer has blackjack"))
		for _, p := range players {
			p.Natural = IsNatural(p.Hand)
		}

		g.settle(true)
		return nil
	}

	for _, p := range players {
		if IsNatural(p.Hand) {
			p.Natural = true
			g.addLogMessages(playable.CardLogMessage(p.Seat, p.Hand, "{} has blackjack"))
		}
	}

	g.setPhase(PhasePlaying)
	g.turn = NoTurn
	return g.advanceTurn()
}

func (g *Game) drawInto(hand *deck.Hand) error {
	card, err := g.deck.Draw()
	if err != nil {
		return err
	}

	hand.AddCard(card)
	return nil
}

// advanceTurn moves the clock to the next seat after the current one, skipping naturals.
// When no seat is left, the dealer plays out its hand.
func (g *Game) advanceTurn() error {
	for seat := g.turn + 1; seat < len(g.seats); seat++ {
		p := g.seats[seat]
		if p == nil || p.Natural || p.Busted {
			continue
		}

		g.turn = seat
		return nil
	}

	g.turn = NoTurn
	return g.dealerPlay()
}

// dealerPlay reveals the hole card and draws until the dealer stands
func (g *Game) dealerPlay() error {
	g.dealer.Hand.Reveal()
	for g.dealer.shouldHit(g.options.HitSoft17) {
		if err := g.drawInto(&g.dealer.Hand); err != nil {
			return err
		}
	}

	total := g.dealer.Total()
	if total > Blackjack {
		g.addLogMessages(playable.CardLogMessage(playable.NoSeat, g.dealer.Hand, "Dealer busted with %d", total))
	} else {
		g.addLogMessages(playable.CardLogMessage(playable.NoSeat, g.dealer.Hand, "Dealer stands on %d", total))
	}

	g.settle(false)
	return nil
}

// outcomeFor compares a player's hand to the dealer's
func outcomeFor(p *Player, dealerTotal int, dealerNatural bool) Outcome {
	if dealerNatural {
		if p.Natural {
			return OutcomePush
		}

		return OutcomeLost
	}

	total := p.Total()
	switch {
	case p.Busted || total > Blackjack:
		return OutcomeLost
	case p.Natural:
		return OutcomeWon
	case dealerTotal > Blackjack:
		return OutcomeWon
	case total > dealerTotal:
		return OutcomeWon
	case total == dealerTotal:
		return OutcomePush
	}

	return OutcomeLost
}

// settle pays out every seated player, records the round and moves to settlement
func (g *Game) settle(dealerNatural bool) {
	dealerTotal := g.dealer.Total()
	result := newRoundResult(g.round, g.dealer, dealerNatural)

	for _, p := range g.players() {
		bet := p.Bet
		outcome := outcomeFor(p, dealerTotal, dealerNatural)
		delta := p.payout(outcome)
		result.addSeat(p, bet, delta)

		g.logger.WithFields(logrus.Fields{
			"seat":    p.Seat,
			"outcome": outcome,
			"delta":   delta,
		}).Debug("seat settled")

		switch outcome {
		case OutcomeWon:
			g.addLogMessages(playable.SimpleLogMessage(p.Seat, "{} won ${%d}", bet))
		case OutcomePush:
			g.addLogMessages(playable.SimpleLogMessage(p.Seat, "{} pushed"))
		case OutcomeLost:
			g.addLogMessages(playable.SimpleLogMessage(p.Seat, "{} lost ${%d}", bet))
		}
	}

	g.results = append(g.results, result)
	g.turn = NoTurn
	g.setPhase(PhaseSettlement)
}
