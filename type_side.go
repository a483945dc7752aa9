package lots

import (
	"fmt"
	"strings"
)

// Side tells in which direction a trade moves the inventory.
type Side int

const (
	// None is the side of a zero-quantity trade, it has no effect.
	None Side = iota
	// Buy adds a new lot to the inventory.
	Buy
	// Sell consumes the oldest lots first.
	Sell
)

func (s Side) String() string {
	switch s {
	case None:
		return "none"
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseSide parses a string into a Side.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy", "b", "bot":
		return Buy, nil
	case "sell", "s", "sld":
		return Sell, nil
	default:
		return None, fmt.Errorf("unknown trade side: %q", s)
	}
}
