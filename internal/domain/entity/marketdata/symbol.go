package marketdata

import (
	"fmt"
	"strings"

	"supersimplestocks/internal/domain/errs"
)

// TickerSymbol identifies one of the instruments traded on the exchange.
type TickerSymbol string

const (
	TickerTEA TickerSymbol = "TEA"
	TickerPOP TickerSymbol = "POP"
	TickerALE TickerSymbol = "ALE"
	TickerGIN TickerSymbol = "GIN"
	TickerJOE TickerSymbol = "JOE"
)

func (s TickerSymbol) String() string {
	return string(s)
}

// IsValid reports whether s belongs to the listed symbols.
func (s TickerSymbol) IsValid() bool {
	switch s {
	case TickerTEA, TickerPOP, TickerALE, TickerGIN, TickerJOE:
		return true
	default:
		return false
	}
}

// TickerSymbols lists the closed set of symbols in listing order.
func TickerSymbols() []TickerSymbol {
	return []TickerSymbol{TickerTEA, TickerPOP, TickerALE, TickerGIN, TickerJOE}
}

// ParseTickerSymbol accepts a symbol in any case, ignoring surrounding space.
func ParseTickerSymbol(s string) (TickerSymbol, error) {
	symbol := TickerSymbol(strings.ToUpper(strings.TrimSpace(s)))
	if !symbol.IsValid() {
		return "", fmt.Errorf("%w: unknown ticker symbol %q", errs.ErrValidation, s)
	}
	return symbol, nil
}

// Side is the buy/sell indicator that accompanies every trade.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

func (s Side) String() string {
	return string(s)
}

func (s Side) IsValid() bool {
	return s == SideBuy || s == SideSell
}

func ParseSide(s string) (Side, error) {
	side := Side(strings.ToUpper(strings.TrimSpace(s)))
	if !side.IsValid() {
		return "", fmt.Errorf("%w: unknown buy/sell indicator %q", errs.ErrValidation, s)
	}
	return side, nil
}
