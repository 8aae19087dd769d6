package room

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownAdminCommand is returned for anything an admin session does not understand
var ErrUnknownAdminCommand = errors.New("unknown admin command")

// AdminAction is a command available to an admin session
type AdminAction string

// AdminAction constants
const (
	AdminShutdown AdminAction = "shutdown"
	AdminSetMoney AdminAction = "set_money"
	AdminGet      AdminAction = "get"
)

// AdminCommand is a parsed admin command
type AdminCommand struct {
	Action AdminAction
	Seat   int
	Amount int
}

// ParseAdminCommand parses "shutdown", "get" or "set_money <seat> <amount>"
func ParseAdminCommand(msg string) (AdminCommand, error) {
	fields := strings.Fields(msg)
	if len(fields) == 0 {
		return AdminCommand{}, ErrUnknownAdminCommand
	}

	cmd := AdminCommand{Action: AdminAction(fields[0])}
	switch cmd.Action {
	case AdminShutdown, AdminGet:
		if len(fields) != 1 {
			return AdminCommand{}, fmt.Errorf("%w: %s takes no arguments", ErrUnknownAdminCommand, cmd.Action)
		}

		return cmd, nil
	case AdminSetMoney:
		if len(fields) != 3 {
			return AdminCommand{}, fmt.Errorf("%w: usage: set_money <seat> <amount>", ErrUnknownAdminCommand)
		}

		seat, err := strconv.Atoi(fields[1])
		if err != nil || seat < 0 {
			return AdminCommand{}, fmt.Errorf("%w: bad seat %q", ErrUnknownAdminCommand, fields[1])
		}

		amount, err := strconv.Atoi(fields[2])
		if err != nil || amount < 0 {
			return AdminCommand{}, fmt.Errorf("%w: bad amount %q", ErrUnknownAdminCommand, fields[2])
		}

		cmd.Seat = seat
		cmd.Amount = amount
		return cmd, nil
	}

	return AdminCommand{}, fmt.Errorf("%w: %q", ErrUnknownAdminCommand, fields[0])
}
