package blackjack

import (
	"blackjack-server/pkg/deck"
)

const (
	// Blackjack is the best possible total
	Blackjack = 21

	// dealerStandsOn is the total the dealer stops drawing at
	dealerStandsOn = 17

	// aceBonus is added when an ace counts as 11 instead of 1
	aceBonus = 10
)

// cardValue is the hard value of a card: aces are 1 and face cards are 10
func cardValue(card *deck.Card) int {
	if card.Rank >= 10 {
		return 10
	}

	return card.Rank
}

// hardTotal counts every ace as 1
func hardTotal(cards []*deck.Card) (total int, aces int) {
	for _, card := range cards {
		total += cardValue(card)
		if card.IsAce() {
			aces++
		}
	}

	return total, aces
}

// Total returns the best total for the cards.
// Every ace starts at 1 and is promoted to 11 while the total stays <= 21.
// If every choice busts, the minimum total is returned.
func Total(cards []*deck.Card) int {
	total, aces := hardTotal(cards)
	for ; aces > 0 && total+aceBonus <= Blackjack; aces-- {
		total += aceBonus
	}

	return total
}

// IsSoft returns true if an ace is currently counted as 11
func IsSoft(cards []*deck.Card) bool {
	total, aces := hardTotal(cards)
	return aces > 0 && total+aceBonus <= Blackjack
}

// IsNatural returns true for a two-card 21
func IsNatural(cards []*deck.Card) bool {
	return len(cards) == 2 && Total(cards) == Blackjack
}

// IsBust returns true if the best total is over 21
func IsBust(cards []*deck.Card) bool {
	return Total(cards) > Blackjack
}
