package model

// Mode is the directional bias of a signal.
type Mode int

const (
	ModeWait Mode = iota
	ModeBuy
	ModeSell
)

func (m Mode) String() string {
	switch m {
	case ModeBuy:
		return "BUY"
	case ModeSell:
		return "SELL"
	default:
		return "WAIT"
	}
}

// Signal is the output of the signal engine. Entry, TakeProfit and
// StopLoss are zero when Mode is ModeWait.
type Signal struct {
	Mode       Mode
	Entry      float64
	TakeProfit float64
	StopLoss   float64
	Volatility float64
	Confirmed  bool
}

// Directional reports whether the signal carries price levels.
func (s Signal) Directional() bool { return s.Mode != ModeWait }
