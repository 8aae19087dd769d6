package deck

// Hand represents a collection of cards
// A hand only grows by appending freshly drawn cards and is emptied at the end of a round.
type Hand []*Card

// AddCard adds a card to the hand
func (h *Hand) AddCard(card *Card) {
	*h = append(*h, card)
}

// Clear empties the hand
func (h *Hand) Clear() {
	*h = Hand{}
}

// HasCard returns true if the hand contains the specified card
func (h Hand) HasCard(card *Card) bool {
	for _, c := range h {
		if c.Equal(card) {
			return true
		}
	}

	return false
}

// HasHidden returns true if any card in the hand is face down
func (h Hand) HasHidden() bool {
	for _, c := range h {
		if c.Hidden {
			return true
		}
	}

	return false
}

// Reveal turns every card in the hand face up
func (h Hand) Reveal() {
	for _, c := range h {
		c.Hidden = false
	}
}

// Visible returns the face up cards
func (h Hand) Visible() Hand {
	visible := make(Hand, 0, len(h))
	for _, c := range h {
		if !c.Hidden {
			visible = append(visible, c)
		}
	}

	return visible
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a deep copy of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	for i, c := range h {
		h2[i] = c.Clone()
	}

	return h2
}
