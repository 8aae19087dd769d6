package blackjack

import (
	"testing"

	"blackjack-server/pkg/deck"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// noShuffle leaves the deck in the order it was stacked
type noShuffle struct{}

func (noShuffle) Intn(n int) int {
	return n - 1
}

func newTestGame(t *testing.T, names ...string) *Game {
	t.Helper()

	opts := DefaultOptions()
	opts.Generator = noShuffle{}
	g, err := NewGame(logrus.StandardLogger(), opts)
	if err != nil {
		t.Fatal(err)
	}

	for i, name := range names {
		seat, err := g.Join(name)
		if err != nil {
			t.Fatal(err)
		}

		assert.Equal(t, i, seat)
	}

	return g
}

// stackDeck sets the order cards will be drawn: two for the dealer, two for each seat, then hits
func stackDeck(g *Game, cards string) {
	g.deck.Cards = deck.CardsFromString(cards)
}

// readyAll moves the table from the lobby to betting
func readyAll(t *testing.T, g *Game) {
	t.Helper()
	for _, p := range g.players() {
		assert.NoError(t, g.MarkReady(p.Seat))
	}

	assert.Equal(t, PhaseBetting, g.phase)
}

// betAll places and confirms the same bet for every seat, which deals the cards
func betAll(t *testing.T, g *Game, bet int) {
	t.Helper()
	for _, p := range g.players() {
		assert.NoError(t, g.AdjustBet(p.Seat, bet))
		assert.NoError(t, g.ConfirmBet(p.Seat))
	}
}

func cards(g *Game, seat int) string {
	return deck.CardsToString(g.seats[seat].Hand)
}
