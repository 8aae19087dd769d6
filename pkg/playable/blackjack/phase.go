package blackjack

import (
	"encoding/json"
	"fmt"
)

// Phase is the table's position in the round
type Phase int

// Phase constants
const (
	// PhaseLobby is before a round: players join, leave and mark themselves ready
	PhaseLobby Phase = iota

	// PhaseBetting is when players adjust and confirm their bets
	PhaseBetting

	// PhasePlaying is when the cards are out and players hit or stand in seat order
	PhasePlaying

	// PhaseSettlement is after the dealer resolved. Players acknowledge to return to the lobby
	PhaseSettlement
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseBetting:
		return "betting"
	case PhasePlaying:
		return "playing"
	case PhaseSettlement:
		return "settlement"
	}

	panic(fmt.Sprintf("invalid phase: %d", p))
}

// MarshalJSON encodes the phase by name
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes the phase from its name
func (p *Phase) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}

	for _, phase := range []Phase{PhaseLobby, PhaseBetting, PhasePlaying, PhaseSettlement} {
		if phase.String() == name {
			*p = phase
			return nil
		}
	}

	return fmt.Errorf("invalid phase: %q", name)
}
