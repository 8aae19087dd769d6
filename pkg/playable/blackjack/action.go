package blackjack

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Action is a command a client can send after the handshake
type Action int

// Action constants
const (
	ActionGet Action = iota
	ActionReady
	ActionDecreaseBet
	ActionIncreaseBet
	ActionBet
	ActionHit
	ActionStand
	ActionContinue
)

var actionTokens = map[string]Action{
	"get":      ActionGet,
	"Ready":    ActionReady,
	"-":        ActionDecreaseBet,
	"+":        ActionIncreaseBet,
	"Bet":      ActionBet,
	"Hit":      ActionHit,
	"Stand":    ActionStand,
	"Continue": ActionContinue,
}

// String returns the wire token of the action
func (a Action) String() string {
	switch a {
	case ActionGet:
		return "get"
	case ActionReady:
		return "Ready"
	case ActionDecreaseBet:
		return "-"
	case ActionIncreaseBet:
		return "+"
	case ActionBet:
		return "Bet"
	case ActionHit:
		return "Hit"
	case ActionStand:
		return "Stand"
	case ActionContinue:
		return "Continue"
	}

	panic(fmt.Sprintf("invalid action: %d", int(a)))
}

// MarshalJSON encodes the action as its wire token
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes the action from its wire token
func (a *Action) UnmarshalJSON(b []byte) error {
	var token string
	if err := json.Unmarshal(b, &token); err != nil {
		return err
	}

	action, ok := actionTokens[token]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, token)
	}

	*a = action
	return nil
}

// Command is a parsed client command
type Command struct {
	Action Action

	// Amount is the bet delta for + and -
	Amount int
}

// ParseCommand validates a raw command token.
// + and - take an optional positive amount ("+ 10"), otherwise increment is used.
func ParseCommand(token string, increment int) (Command, error) {
	fields := strings.Fields(token)
	if len(fields) == 0 {
		return Command{}, ErrUnknownCommand
	}

	action, ok := actionTokens[fields[0]]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}

	cmd := Command{Action: action}
	if action != ActionIncreaseBet && action != ActionDecreaseBet {
		if len(fields) > 1 {
			return Command{}, fmt.Errorf("%w: %s takes no arguments", ErrUnknownCommand, action)
		}

		return cmd, nil
	}

	cmd.Amount = increment
	switch len(fields) {
	case 1:
	case 2:
		amount, err := strconv.Atoi(fields[1])
		if err != nil || amount <= 0 {
			return Command{}, fmt.Errorf("%w: bad amount %q", ErrUnknownCommand, fields[1])
		}

		cmd.Amount = amount
	default:
		return Command{}, fmt.Errorf("%w: too many arguments", ErrUnknownCommand)
	}

	return cmd, nil
}

// actionsForSeat returns the actions that would change the table if the seat sent them now
func (g *Game) actionsForSeat(seat int) []Action {
	p, err := g.player(seat)
	if err != nil {
		return nil
	}

	switch g.phase {
	case PhaseLobby:
		if !p.Ready {
			return []Action{ActionReady}
		}
	case PhaseBetting:
		if p.Ready {
			return nil
		}

		actions := make([]Action, 0, 3)
		if p.Bet > 0 {
			actions = append(actions, ActionDecreaseBet)
		}

		if p.Money > 0 {
			actions = append(actions, ActionIncreaseBet)
		}

		if p.Bet > 0 {
			actions = append(actions, ActionBet)
		}

		return actions
	case PhasePlaying:
		if g.turn == seat {
			return []Action{ActionHit, ActionStand}
		}
	case PhaseSettlement:
		if !p.Ready {
			return []Action{ActionContinue}
		}
	}

	return nil
}
